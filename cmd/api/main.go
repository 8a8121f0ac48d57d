package main

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"spatialviz/adapters/chart"
	"spatialviz/adapters/excel"
	"spatialviz/app"
	"spatialviz/domain/dataset"
	"spatialviz/internal/config"
	"spatialviz/internal/errors"
	"spatialviz/internal/testkit"
)

// Server serves the diagnostic figures of one loaded dataset as PNGs
type Server struct {
	config *config.Config
	ad     *dataset.AnnData
	router *gin.Engine
}

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

	gin.SetMode(cfg.Server.GinMode)
	server := &Server{config: cfg, ad: ad, router: gin.Default()}
	server.registerRoutes()

	log.Printf("Figure server listening on :%s", cfg.Server.Port)
	if err := server.router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
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

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "uns_keys": s.ad.UnsKeys()})
	})
	s.router.GET("/figures/centrality", s.handleCentrality)
	s.router.GET("/figures/interactions", s.handleInteractions)
	s.router.GET("/figures/ripley_k", s.handleRipleyK)
}

func (s *Server) handleCentrality(c *gin.Context) {
	key := c.Query("key")
	s.renderFigure(c, func(v *app.Visualizer) error {
		return v.RenderCentralityScores(s.ad, key)
	})
}

func (s *Server) handleInteractions(c *gin.Context) {
	key := c.Query("key")
	s.renderFigure(c, func(v *app.Visualizer) error {
		return v.RenderClusterInteractions(s.ad, key)
	})
}

func (s *Server) handleRipleyK(c *gin.Context) {
	clusterKey := c.DefaultQuery("cluster_key", s.config.Data.ClusterKey)
	s.renderFigure(c, func(v *app.Visualizer) error {
		return v.RenderRipleyK(s.ad, clusterKey, app.DerivedRipleyK())
	})
}

// renderFigure runs one visualizer operation into a fresh figure and
// writes the PNG response
func (s *Server) renderFigure(c *gin.Context, draw func(v *app.Visualizer) error) {
	fig := chart.NewFigureAdapter(chart.Config{
		Width:  s.config.Figure.Width,
		Height: s.config.Figure.Height,
	})
	if err := draw(app.NewVisualizer(fig)); err != nil {
		if missing, ok := errors.AsMissingResult(err); ok {
			c.JSON(http.StatusNotFound, gin.H{"error": missing.Error(), "key": missing.Key})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := fig.WritePNG(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
