package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spatialviz/adapters/chart"
	"spatialviz/adapters/excel"
	"spatialviz/adapters/report"
	"spatialviz/app"
	"spatialviz/domain/dataset"
	"spatialviz/internal/config"
	"spatialviz/internal/testkit"
)

const methodNotes = `## Method notes

* **Centrality stripplot**: per-cluster degree, clustering coefficient,
  closeness and betweenness scores from the neighborhood graph.
* **Interaction heat-matrix**: pairwise cluster-cluster edge counts.
* **Ripley-K**: spatial clustering statistic per cluster label over
  increasing distance.
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ad, err := loadDataset(cfg)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	if err := os.MkdirAll(cfg.Data.OutputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	figureConfig := chart.Config{Width: cfg.Figure.Width, Height: cfg.Figure.Height}
	figures := make(map[string][]byte, 3)
	var group errgroup.Group
	render := func(name string, draw func(v *app.Visualizer) error) (get func() []byte) {
		var png []byte
		group.Go(func() error {
			fig := chart.NewFigureAdapter(figureConfig)
			if err := draw(app.NewVisualizer(fig)); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			var buf bytes.Buffer
			if err := fig.WritePNG(&buf); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			png = buf.Bytes()
			return nil
		})
		return func() []byte { return png }
	}

	centrality := render("centrality", func(v *app.Visualizer) error {
		return v.RenderCentralityScores(ad, "")
	})
	interactions := render("interactions", func(v *app.Visualizer) error {
		return v.RenderClusterInteractions(ad, "")
	})
	ripley := render("ripley_k", func(v *app.Visualizer) error {
		return v.RenderRipleyK(ad, cfg.Data.ClusterKey, app.DerivedRipleyK())
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}
	figures["centrality_scores.png"] = centrality()
	figures["cluster_interactions.png"] = interactions()
	figures["ripley_k.png"] = ripley()

	for name, png := range figures {
		path := filepath.Join(cfg.Data.OutputDir, name)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		log.Printf("Wrote %s (%d bytes)", path, len(png))
	}

	if err := writeReport(cfg, ad, figures); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

func loadDataset(cfg *config.Config) (*dataset.AnnData, error) {
	if cfg.Data.ResultsFile != "" {
		return excel.NewResultsReader(cfg.Data.ResultsFile).Load()
	}
	log.Printf("No results file configured, generating synthetic dataset (seed %d)", cfg.Data.Seed)
	gen := testkit.DefaultGeneratorConfig()
	gen.Seed = cfg.Data.Seed
	gen.ClusterKey = cfg.Data.ClusterKey
	return testkit.GenerateAnnData(gen), nil
}

func writeReport(cfg *config.Config, ad *dataset.AnnData, figures map[string][]byte) error {
	rep := report.NewReport(ad.ID)
	rep.Notes = methodNotes
	if scores, ok := ad.Uns[dataset.CentralityScoresKey].(*dataset.CentralityScores); ok {
		if err := rep.Summarize(scores); err != nil {
			return err
		}
	}
	rep.AddFigure("Cluster centrality scores",
		"Stripplot of the four centrality metrics per cluster.", figures["centrality_scores.png"])
	rep.AddFigure("Cluster interactions",
		"Heat-matrix of cluster-cluster interaction counts.", figures["cluster_interactions.png"])
	rep.AddFigure("Ripley K",
		fmt.Sprintf("Ripley K estimate per %q cluster.", cfg.Data.ClusterKey), figures["ripley_k.png"])

	path := filepath.Join(cfg.Data.OutputDir, "report.html")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rep.WriteHTML(f); err != nil {
		return err
	}
	log.Printf("Wrote %s", path)
	return nil
}
