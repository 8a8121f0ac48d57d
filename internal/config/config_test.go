package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialviz/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Figure.Width)
	assert.Equal(t, 420, cfg.Figure.Height)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "leiden", cfg.Data.ClusterKey)
	assert.Equal(t, "./out", cfg.Data.OutputDir)
	assert.Equal(t, int64(42), cfg.Data.Seed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FIGURE_WIDTH", "640")
	t.Setenv("CLUSTER_KEY", "louvain")
	t.Setenv("DATASET_SEED", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Figure.Width)
	assert.Equal(t, "louvain", cfg.Data.ClusterKey)
	assert.Equal(t, int64(7), cfg.Data.Seed)
}

func TestLoadRejectsInvalidFigure(t *testing.T) {
	t.Setenv("FIGURE_WIDTH", "-10")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
