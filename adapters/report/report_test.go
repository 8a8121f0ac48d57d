package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialviz/domain/core"
	"spatialviz/domain/dataset"
)

func TestSummarize(t *testing.T) {
	rep := NewReport(core.DatasetID("ds-1"))
	scores := &dataset.CentralityScores{
		Clusters:    []string{"0", "1", "2"},
		Degree:      []float64{0.2, 0.4, 0.6},
		Clustering:  []float64{0.1, 0.1, 0.1},
		Closeness:   []float64{0.5, 0.6, 0.7},
		Betweenness: []float64{0.0, 0.1, 0.2},
	}
	require.NoError(t, rep.Summarize(scores))
	require.Len(t, rep.Summary, 4)

	assert.Equal(t, "degree centrality", rep.Summary[0].Metric)
	assert.InDelta(t, 0.4, rep.Summary[0].Mean, 1e-9)
	assert.InDelta(t, 0.4, rep.Summary[0].Median, 1e-9)
	assert.InDelta(t, 0.1, rep.Summary[1].Mean, 1e-9)

	assert.Error(t, rep.Summarize(&dataset.CentralityScores{}))
}

func TestWriteHTML(t *testing.T) {
	rep := NewReport(core.DatasetID("ds-1"))
	rep.Notes = "## Method notes\n\nRipley-K per *cluster*.\n"
	id := rep.AddFigure("Ripley K", "per-cluster curves", []byte{0x89, 0x50, 0x4e, 0x47})
	assert.False(t, core.ID(id).IsEmpty())

	var buf bytes.Buffer
	require.NoError(t, rep.WriteHTML(&buf))
	html := buf.String()

	assert.Contains(t, html, "Ripley K")
	assert.Contains(t, html, "per-cluster curves")
	assert.Contains(t, html, "data:image/png;base64,")
	// Markdown notes are rendered, not escaped
	assert.Contains(t, html, "Method notes</h2>")
	assert.Contains(t, html, "<em>cluster</em>")
	assert.True(t, strings.Contains(html, rep.ID.String()))
}

func TestWriteHTMLWithoutNotes(t *testing.T) {
	rep := NewReport(core.DatasetID("ds-2"))
	var buf bytes.Buffer
	require.NoError(t, rep.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), "Method notes")
}
