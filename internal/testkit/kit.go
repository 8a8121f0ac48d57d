// Package testkit generates synthetic annotated datasets so cmds and
// tests can exercise the visualizer without running the upstream
// spatial computations.
package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"spatialviz/domain/dataset"
)

// GeneratorConfig controls the synthetic dataset shape
type GeneratorConfig struct {
	Seed         int64
	ClusterKey   string
	Clusters     int
	Observations int
	// DistanceSteps is the number of Ripley-K support points per cluster
	DistanceSteps int
	// WithPalette stores a "{clusterKey}_colors" entry
	WithPalette bool
}

// DefaultGeneratorConfig returns a small but realistic dataset shape
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:          42,
		ClusterKey:    dataset.ColCluster,
		Clusters:      8,
		Observations:  400,
		DistanceSteps: 50,
		WithPalette:   true,
	}
}

// defaultPalette cycles the usual categorical hex colors
var defaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// GenerateAnnData builds a container populated with every result kind
// the visualizer reads: obs cluster labels, centrality scores,
// interaction counts, a Ripley-K table, and (optionally) a palette.
func GenerateAnnData(config GeneratorConfig) *dataset.AnnData {
	rng := rand.New(rand.NewSource(config.Seed))
	ad := dataset.NewAnnData()

	labels := make([]string, config.Clusters)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i)
	}

	// Per-observation cluster assignments
	obs := make([]string, config.Observations)
	for i := range obs {
		obs[i] = labels[rng.Intn(len(labels))]
	}
	ad.Obs[config.ClusterKey] = obs

	ad.SetUns(dataset.CentralityScoresKey, generateCentrality(rng, labels))
	ad.SetUns(dataset.ClusterInteractionsKey, generateInteractions(rng, labels))
	ad.SetUns(dataset.RipleyKKey(config.ClusterKey), generateRipleyK(rng, labels, config.DistanceSteps))

	if config.WithPalette {
		palette := make([]string, len(labels))
		for i := range labels {
			palette[i] = defaultPalette[i%len(defaultPalette)]
		}
		ad.SetUns(dataset.ColorsKey(config.ClusterKey), palette)
	}
	return ad
}

func generateCentrality(rng *rand.Rand, labels []string) *dataset.CentralityScores {
	scores := &dataset.CentralityScores{Clusters: append([]string(nil), labels...)}
	for range labels {
		scores.Degree = append(scores.Degree, rng.Float64())
		scores.Clustering = append(scores.Clustering, rng.Float64()*0.6)
		scores.Closeness = append(scores.Closeness, 0.2+rng.Float64()*0.7)
		scores.Betweenness = append(scores.Betweenness, rng.Float64()*0.3)
	}
	return scores
}

func generateInteractions(rng *rand.Rand, labels []string) *dataset.InteractionMatrix {
	n := len(labels)
	counts := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := float64(rng.Intn(500))
			if i == j {
				v = float64(500 + rng.Intn(1500))
			}
			// Interaction counts are symmetric in typical use
			counts.Set(i, j, v)
			counts.Set(j, i, v)
		}
	}
	return &dataset.InteractionMatrix{Counts: counts, Labels: append([]string(nil), labels...)}
}

func generateRipleyK(rng *rand.Rand, labels []string, steps int) *dataset.RipleyKTable {
	table := &dataset.RipleyKTable{}
	for _, label := range labels {
		// K grows roughly with the disc area, plus cluster-specific noise
		scale := 0.5 + rng.Float64()
		for s := 0; s < steps; s++ {
			d := float64(s) / float64(steps-1) * 100
			k := scale * math.Pi * d * d * (1 + 0.1*rng.NormFloat64())
			table.Distance = append(table.Distance, d)
			table.RipleyK = append(table.RipleyK, k)
			table.Cluster = append(table.Cluster, label)
		}
	}
	return table
}
