package app

import (
	"fmt"
	"log"
	"sort"

	"spatialviz/domain/dataset"
	"spatialviz/internal/errors"
	"spatialviz/ports"
)

// Visualizer renders diagnostic figures from precomputed results in an
// AnnData annotation store. Each operation is a stateless single pass:
// fetch-or-fail, reshape, delegate to the figure port. Drawing happens
// in the port's current figure; figure lifecycle belongs to the caller.
type Visualizer struct {
	fig    ports.Figure
	logger *log.Logger
}

// NewVisualizer creates a visualizer drawing through fig
func NewVisualizer(fig ports.Figure) *Visualizer {
	return &Visualizer{fig: fig, logger: log.Default()}
}

// WithLogger routes soft diagnostics (e.g. a missing palette) to logger
func (v *Visualizer) WithLogger(logger *log.Logger) *Visualizer {
	v.logger = logger
	return v
}

// fetchUns is the shared fetch-or-fail step: a missing key is the hard
// failure, reported with the key and the upstream remediation.
func fetchUns(ad *dataset.AnnData, key, hint string) (interface{}, error) {
	if !ad.HasUns(key) {
		return nil, errors.MissingResult(key, hint)
	}
	return ad.Uns[key], nil
}

// RenderCentralityScores draws the per-cluster centrality stripplot:
// four side-by-side panels in fixed metric order sharing the cluster row
// axis. An empty key falls back to the conventional
// "cluster_centrality_scores" slot.
func (v *Visualizer) RenderCentralityScores(ad *dataset.AnnData, key string) error {
	if key == "" {
		key = dataset.CentralityScoresKey
	}
	raw, err := fetchUns(ad, key,
		"run nhood.ClusterCentralityScores on the dataset first or choose a different key")
	if err != nil {
		return err
	}
	scores, ok := raw.(*dataset.CentralityScores)
	if !ok {
		return errors.InvalidInput(fmt.Sprintf("uns[%q] does not hold a centrality scores table", key))
	}
	if err := scores.Validate(); err != nil {
		return errors.Wrap(err, "invalid centrality scores table")
	}

	spec := ports.StripPlotSpec{
		RowLabels:      scores.Clusters,
		RowAxisTitle:   "cluster",
		MarkerSize:     10,
		HideSpines:     true,
		HorizontalGrid: true,
	}
	for i, m := range dataset.CentralityMetrics {
		spec.Panels = append(spec.Panels, ports.StripPanel{
			Label:         m.DisplayLabel(),
			Values:        scores.Metric(m),
			ShowRowLabels: i == 0,
		})
	}
	return errors.RenderFailed(v.fig.StripPlot(spec), "centrality stripplot failed")
}

// RenderClusterInteractions draws the cluster interaction counts as a
// heat-matrix with a color bar, both axes ticked with the cluster labels
// in supplied order. An empty key falls back to the conventional
// "cluster_interactions" slot.
func (v *Visualizer) RenderClusterInteractions(ad *dataset.AnnData, key string) error {
	if key == "" {
		key = dataset.ClusterInteractionsKey
	}
	raw, err := fetchUns(ad, key,
		"run nhood.ClusterInteractions on the dataset first or choose a different key")
	if err != nil {
		return err
	}
	matrix, ok := raw.(*dataset.InteractionMatrix)
	if !ok {
		return errors.InvalidInput(fmt.Sprintf("uns[%q] does not hold an interaction matrix", key))
	}
	if err := matrix.Validate(); err != nil {
		return errors.Wrap(err, "invalid interaction matrix")
	}

	spec := ports.HeatMatrixSpec{
		Matrix:       matrix,
		ColorBar:     true,
		TickFontSize: 8,
	}
	return errors.RenderFailed(v.fig.HeatMatrix(spec), "interaction heat-matrix failed")
}

// RipleyKSource selects where the Ripley-K table comes from: supplied
// explicitly by the caller, or derived from the annotation store under
// the "ripley_k_{clusterKey}" convention.
type RipleyKSource struct {
	table *dataset.RipleyKTable
}

// ExplicitRipleyK plots the supplied table directly; no container
// lookups are performed and order/palette stay default.
func ExplicitRipleyK(table *dataset.RipleyKTable) RipleyKSource {
	return RipleyKSource{table: table}
}

// DerivedRipleyK looks the table up in the annotation store
func DerivedRipleyK() RipleyKSource {
	return RipleyKSource{}
}

// RenderRipleyK draws the K statistic versus distance, one line per
// cluster label. In derived mode the display order comes from the sorted
// obs categories and the palette from the "{clusterKey}_colors" slot; a
// failed palette lookup is a single logged warning, never an error.
func (v *Visualizer) RenderRipleyK(ad *dataset.AnnData, clusterKey string, source RipleyKSource) error {
	table := source.table
	var hueOrder, palette []string

	if table == nil {
		key := dataset.RipleyKKey(clusterKey)
		raw, err := fetchUns(ad, key, fmt.Sprintf(
			"run nhood.RipleyK with cluster key %q first, or pass an explicit table", clusterKey))
		if err != nil {
			return err
		}
		var ok bool
		table, ok = raw.(*dataset.RipleyKTable)
		if !ok {
			return errors.InvalidInput(fmt.Sprintf("uns[%q] does not hold a ripley k table", key))
		}
		hueOrder, palette = v.lookupOrderAndPalette(ad, clusterKey)
	}

	if err := table.Validate(); err != nil {
		return errors.Wrap(err, "invalid ripley k table")
	}
	if hueOrder == nil {
		hueOrder = table.ClusterValues()
		sort.Strings(hueOrder)
	}

	spec := ports.LinePlotSpec{
		XLabel:   dataset.ColDistance,
		YLabel:   dataset.ColRipleyK,
		HueLabel: dataset.ColCluster,
	}
	for i, cluster := range hueOrder {
		xs, ys := table.Series(cluster)
		if len(xs) == 0 {
			continue
		}
		series := ports.LineSeries{Name: cluster, X: xs, Y: ys}
		if palette != nil {
			series.Color = palette[i]
		}
		spec.Series = append(spec.Series, series)
	}
	return errors.RenderFailed(v.fig.LinePlot(spec), "ripley k line plot failed")
}

// lookupOrderAndPalette derives the display order and color sequence for
// derived-mode Ripley-K plots. Any failure here is soft: one warning,
// plot proceeds with defaults.
func (v *Visualizer) lookupOrderAndPalette(ad *dataset.AnnData, clusterKey string) (hueOrder, palette []string) {
	hueOrder, err := ad.ObsCategories(clusterKey)
	if err != nil {
		v.logger.Printf("Warning: no color palette in uns for %q: %v", clusterKey, err)
		return nil, nil
	}
	palette, err = ad.Palette(clusterKey, len(hueOrder))
	if err != nil {
		v.logger.Printf("Warning: no color palette in uns for %q: %v", clusterKey, err)
		return hueOrder, nil
	}
	return hueOrder, palette
}
