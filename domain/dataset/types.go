package dataset

import (
	"fmt"
	"sort"

	"spatialviz/domain/core"
)

// Conventional annotation store keys populated by the upstream
// neighborhood/spatial computations.
const (
	CentralityScoresKey    = "cluster_centrality_scores"
	ClusterInteractionsKey = "cluster_interactions"
	RipleyKKeyPrefix       = "ripley_k_"
	ColorsKeySuffix        = "_colors"
)

// RipleyKKey derives the annotation store key for a Ripley-K result.
// The string-concatenation convention is an interface contract with the
// upstream computation step.
func RipleyKKey(clusterKey string) string {
	return RipleyKKeyPrefix + clusterKey
}

// ColorsKey derives the annotation store key for a cluster palette.
func ColorsKey(clusterKey string) string {
	return clusterKey + ColorsKeySuffix
}

// AnnData is the annotated data container shared across the analysis
// pipeline. Precomputed results live in the string-keyed Uns store;
// per-observation categorical labels live in Obs. This module only reads
// it — creation and mutation belong to the upstream computation steps.
type AnnData struct {
	ID core.DatasetID

	// Uns holds named derived results (unstructured annotations)
	Uns map[string]interface{}

	// Obs holds per-observation categorical columns, e.g. cluster labels
	Obs map[string][]string

	// Metadata
	CreatedAt   core.Timestamp
	Fingerprint core.Hash
}

// NewAnnData creates an empty container
func NewAnnData() *AnnData {
	return &AnnData{
		ID:        core.DatasetID(core.NewID()),
		Uns:       make(map[string]interface{}),
		Obs:       make(map[string][]string),
		CreatedAt: core.Now(),
	}
}

// HasUns reports whether a result is present in the annotation store
func (a *AnnData) HasUns(key string) bool {
	_, ok := a.Uns[key]
	return ok
}

// UnsKeys returns the annotation store keys in sorted order
func (a *AnnData) UnsKeys() []string {
	keys := make([]string, 0, len(a.Uns))
	for k := range a.Uns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetUns stores a result under key
func (a *AnnData) SetUns(key string, value interface{}) {
	if a.Uns == nil {
		a.Uns = make(map[string]interface{})
	}
	a.Uns[key] = value
}

// ObsColumn returns a per-observation categorical column
func (a *AnnData) ObsColumn(name string) ([]string, error) {
	col, ok := a.Obs[name]
	if !ok {
		return nil, fmt.Errorf("obs column %q not present", name)
	}
	return col, nil
}

// ObsCategories returns the sorted unique values of an obs column
func (a *AnnData) ObsCategories(name string) ([]string, error) {
	col, err := a.ObsColumn(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(col))
	cats := make([]string, 0, len(col))
	for _, v := range col {
		if !seen[v] {
			seen[v] = true
			cats = append(cats, v)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// Palette returns the color list stored under the "{clusterKey}_colors"
// convention. Returns an error when the slot is absent, holds a
// non-string-slice value, or its length does not match want (want < 0
// skips the length check).
func (a *AnnData) Palette(clusterKey string, want int) ([]string, error) {
	raw, ok := a.Uns[ColorsKey(clusterKey)]
	if !ok {
		return nil, fmt.Errorf("no color palette in uns for %q", clusterKey)
	}
	colors, ok := raw.([]string)
	if !ok {
		return nil, fmt.Errorf("color palette for %q is not a string list", clusterKey)
	}
	if want >= 0 && len(colors) != want {
		return nil, fmt.Errorf("color palette for %q has %d entries, want %d", clusterKey, len(colors), want)
	}
	return colors, nil
}
