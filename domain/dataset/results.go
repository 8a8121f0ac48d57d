package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CentralityMetric identifies one of the four per-cluster graph
// centrality scores, in the fixed display order used by the stripplot.
type CentralityMetric int

const (
	MetricDegree CentralityMetric = iota
	MetricClustering
	MetricCloseness
	MetricBetweenness
)

// CentralityMetrics is the fixed rendering order {degree, clustering,
// closeness, betweenness}
var CentralityMetrics = []CentralityMetric{
	MetricDegree,
	MetricClustering,
	MetricCloseness,
	MetricBetweenness,
}

// ColumnName returns the canonical table column name for the metric
func (m CentralityMetric) ColumnName() string {
	switch m {
	case MetricDegree:
		return "degree centrality"
	case MetricClustering:
		return "clustering coefficient"
	case MetricCloseness:
		return "closeness centrality"
	case MetricBetweenness:
		return "betweenness centrality"
	}
	return "unknown"
}

// DisplayLabel returns the two-line label used on plot axes
func (m CentralityMetric) DisplayLabel() string {
	switch m {
	case MetricDegree:
		return "degree\ncentrality"
	case MetricClustering:
		return "clustering\ncoefficient"
	case MetricCloseness:
		return "closeness\ncentrality"
	case MetricBetweenness:
		return "betweenness\ncentrality"
	}
	return "unknown"
}

// CentralityScores is the per-cluster centrality result: one row per
// cluster, four numeric metric columns. Produced upstream by
// nhood.ClusterCentralityScores; read-only here.
type CentralityScores struct {
	Clusters    []string  `json:"clusters"`
	Degree      []float64 `json:"degree_centrality"`
	Clustering  []float64 `json:"clustering_coefficient"`
	Closeness   []float64 `json:"closeness_centrality"`
	Betweenness []float64 `json:"betweenness_centrality"`
}

// Metric returns the values for one metric column
func (c *CentralityScores) Metric(m CentralityMetric) []float64 {
	switch m {
	case MetricDegree:
		return c.Degree
	case MetricClustering:
		return c.Clustering
	case MetricCloseness:
		return c.Closeness
	case MetricBetweenness:
		return c.Betweenness
	}
	return nil
}

// Rows returns the number of cluster rows
func (c *CentralityScores) Rows() int {
	return len(c.Clusters)
}

// Validate checks that all metric columns align with the cluster rows
func (c *CentralityScores) Validate() error {
	n := len(c.Clusters)
	if n == 0 {
		return fmt.Errorf("centrality scores table has no cluster rows")
	}
	for _, m := range CentralityMetrics {
		if len(c.Metric(m)) != n {
			return fmt.Errorf("column %q has %d values, want %d", m.ColumnName(), len(c.Metric(m)), n)
		}
	}
	return nil
}

// InteractionMatrix is the cluster-cluster interaction count result: a
// square matrix paired with the ordered cluster labels for both axes.
// Typically symmetric, but symmetry is not enforced here.
type InteractionMatrix struct {
	Counts *mat.Dense
	Labels []string
}

// Dim returns the matrix dimension
func (m *InteractionMatrix) Dim() int {
	if m.Counts == nil {
		return 0
	}
	r, _ := m.Counts.Dims()
	return r
}

// Validate checks that the matrix is square and matches the label order
func (m *InteractionMatrix) Validate() error {
	if m.Counts == nil {
		return fmt.Errorf("interaction matrix has no counts")
	}
	r, c := m.Counts.Dims()
	if r != c {
		return fmt.Errorf("interaction matrix is %dx%d, want square", r, c)
	}
	if r != len(m.Labels) {
		return fmt.Errorf("interaction matrix is %dx%d but has %d labels", r, c, len(m.Labels))
	}
	return nil
}

// Canonical Ripley-K table column names. These literals are part of the
// contract with the upstream computation and with tabular loaders.
const (
	ColDistance = "distance"
	ColRipleyK  = "ripley_k"
	ColCluster  = "leiden"
)

// RipleyKTable is the per-cluster spatial Ripley-K result: long-form
// rows of (distance, ripley_k, leiden) values.
type RipleyKTable struct {
	Distance []float64 `json:"distance"`
	RipleyK  []float64 `json:"ripley_k"`
	Cluster  []string  `json:"leiden"`
}

// Rows returns the number of table rows
func (t *RipleyKTable) Rows() int {
	return len(t.Distance)
}

// Validate checks that the three columns align
func (t *RipleyKTable) Validate() error {
	if len(t.Distance) == 0 {
		return fmt.Errorf("ripley k table has no rows")
	}
	if len(t.RipleyK) != len(t.Distance) || len(t.Cluster) != len(t.Distance) {
		return fmt.Errorf("ripley k table columns misaligned: %s=%d %s=%d %s=%d",
			ColDistance, len(t.Distance), ColRipleyK, len(t.RipleyK), ColCluster, len(t.Cluster))
	}
	return nil
}

// ClusterValues returns the unique cluster labels in first-seen order
func (t *RipleyKTable) ClusterValues() []string {
	seen := make(map[string]bool, len(t.Cluster))
	out := make([]string, 0)
	for _, c := range t.Cluster {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Series extracts the (distance, ripley_k) pairs for one cluster label,
// preserving row order
func (t *RipleyKTable) Series(cluster string) (xs, ys []float64) {
	for i, c := range t.Cluster {
		if c == cluster {
			xs = append(xs, t.Distance[i])
			ys = append(ys, t.RipleyK[i])
		}
	}
	return xs, ys
}
