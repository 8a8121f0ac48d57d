package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRipleyKKeyConvention(t *testing.T) {
	// The derived-key convention is an interface contract and must be
	// preserved exactly
	assert.Equal(t, "ripley_k_leiden", RipleyKKey("leiden"))
	assert.Equal(t, "ripley_k_louvain", RipleyKKey("louvain"))
	assert.Equal(t, "leiden_colors", ColorsKey("leiden"))
}

func TestAnnDataUnsStore(t *testing.T) {
	ad := NewAnnData()
	assert.False(t, ad.HasUns("x"))

	ad.SetUns("b", 1)
	ad.SetUns("a", 2)
	assert.True(t, ad.HasUns("a"))
	assert.Equal(t, []string{"a", "b"}, ad.UnsKeys())
}

func TestObsCategoriesSortedUnique(t *testing.T) {
	ad := NewAnnData()
	ad.Obs["leiden"] = []string{"2", "0", "1", "0", "2", "2"}

	cats, err := ad.ObsCategories("leiden")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, cats)

	_, err = ad.ObsCategories("missing")
	assert.Error(t, err)
}

func TestPalette(t *testing.T) {
	ad := NewAnnData()

	_, err := ad.Palette("leiden", 2)
	assert.Error(t, err, "absent palette slot")

	ad.SetUns(ColorsKey("leiden"), []string{"#111111", "#222222"})
	colors, err := ad.Palette("leiden", 2)
	require.NoError(t, err)
	assert.Len(t, colors, 2)

	_, err = ad.Palette("leiden", 3)
	assert.Error(t, err, "length mismatch")

	ad.SetUns(ColorsKey("bad"), 42)
	_, err = ad.Palette("bad", -1)
	assert.Error(t, err, "wrong type")
}

func TestCentralityScoresValidate(t *testing.T) {
	tests := []struct {
		name      string
		scores    CentralityScores
		expectErr bool
	}{
		{
			name: "aligned columns",
			scores: CentralityScores{
				Clusters:    []string{"0", "1"},
				Degree:      []float64{1, 2},
				Clustering:  []float64{1, 2},
				Closeness:   []float64{1, 2},
				Betweenness: []float64{1, 2},
			},
			expectErr: false,
		},
		{
			name:      "empty table",
			scores:    CentralityScores{},
			expectErr: true,
		},
		{
			name: "short metric column",
			scores: CentralityScores{
				Clusters:    []string{"0", "1"},
				Degree:      []float64{1, 2},
				Clustering:  []float64{1},
				Closeness:   []float64{1, 2},
				Betweenness: []float64{1, 2},
			},
			expectErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.scores.Validate()
			if test.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCentralityMetricLabels(t *testing.T) {
	assert.Equal(t, "degree centrality", MetricDegree.ColumnName())
	assert.Equal(t, "degree\ncentrality", MetricDegree.DisplayLabel())
	assert.Equal(t, "betweenness\ncentrality", MetricBetweenness.DisplayLabel())
	require.Len(t, CentralityMetrics, 4)
}

func TestInteractionMatrixValidate(t *testing.T) {
	square := &InteractionMatrix{
		Counts: mat.NewDense(2, 2, []float64{1, 2, 2, 1}),
		Labels: []string{"a", "b"},
	}
	assert.NoError(t, square.Validate())
	assert.Equal(t, 2, square.Dim())

	mismatched := &InteractionMatrix{
		Counts: mat.NewDense(2, 2, nil),
		Labels: []string{"a", "b", "c"},
	}
	assert.Error(t, mismatched.Validate())

	empty := &InteractionMatrix{Labels: []string{"a"}}
	assert.Error(t, empty.Validate())
	assert.Equal(t, 0, empty.Dim())
}

func TestRipleyKTable(t *testing.T) {
	table := &RipleyKTable{
		Distance: []float64{0, 1, 0, 1},
		RipleyK:  []float64{0, 2, 0, 4},
		Cluster:  []string{"b", "b", "a", "a"},
	}
	require.NoError(t, table.Validate())
	assert.Equal(t, 4, table.Rows())

	// First-seen order
	assert.Equal(t, []string{"b", "a"}, table.ClusterValues())

	xs, ys := table.Series("a")
	assert.Equal(t, []float64{0, 1}, xs)
	assert.Equal(t, []float64{0, 4}, ys)

	xs, _ = table.Series("zzz")
	assert.Empty(t, xs)

	misaligned := &RipleyKTable{Distance: []float64{1}, RipleyK: []float64{1, 2}, Cluster: []string{"a"}}
	assert.Error(t, misaligned.Validate())
}
