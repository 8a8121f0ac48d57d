// Package report assembles the rendered diagnostic figures into a single
// HTML page: embedded PNGs, markdown method notes, and per-metric
// summary rows.
package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"spatialviz/domain/core"
	"spatialviz/domain/dataset"
)

// FigureEntry is one rendered figure in the report
type FigureEntry struct {
	ID      core.FigureID
	Title   string
	PNG     []byte
	Caption string
}

// SummaryRow is one per-metric summary line
type SummaryRow struct {
	Metric string
	Mean   float64
	Median float64
}

// Report bundles figures and notes for one dataset
type Report struct {
	ID        core.ReportID
	DatasetID core.DatasetID
	CreatedAt core.Timestamp
	Notes     string // markdown method notes
	Figures   []FigureEntry
	Summary   []SummaryRow
}

// NewReport creates an empty report for a dataset
func NewReport(datasetID core.DatasetID) *Report {
	return &Report{
		ID:        core.ReportID(core.NewID()),
		DatasetID: datasetID,
		CreatedAt: core.Now(),
	}
}

// AddFigure appends a rendered figure
func (r *Report) AddFigure(title, caption string, png []byte) core.FigureID {
	id := core.FigureID(core.NewID())
	r.Figures = append(r.Figures, FigureEntry{ID: id, Title: title, PNG: png, Caption: caption})
	return id
}

// Summarize fills the summary rows from a centrality scores table
func (r *Report) Summarize(scores *dataset.CentralityScores) error {
	if err := scores.Validate(); err != nil {
		return err
	}
	r.Summary = r.Summary[:0]
	for _, m := range dataset.CentralityMetrics {
		values := scores.Metric(m)
		mean, err := stats.Mean(values)
		if err != nil {
			return fmt.Errorf("summary for %q: %w", m.ColumnName(), err)
		}
		median, err := stats.Median(values)
		if err != nil {
			return fmt.Errorf("summary for %q: %w", m.ColumnName(), err)
		}
		r.Summary = append(r.Summary, SummaryRow{Metric: m.ColumnName(), Mean: mean, Median: median})
	}
	return nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cluster diagnostics {{.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 1100px; color: #222; }
figure { margin: 2rem 0; }
figcaption { color: #666; font-size: 0.9rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>Cluster diagnostics</h1>
<p>Report {{.ID}} for dataset {{.DatasetID}}, generated {{.CreatedAt}}.</p>
{{.NotesHTML}}
{{if .Summary}}
<h2>Centrality summary</h2>
<table>
<tr><th>metric</th><th>mean</th><th>median</th></tr>
{{range .Summary}}<tr><td>{{.Metric}}</td><td>{{printf "%.4f" .Mean}}</td><td>{{printf "%.4f" .Median}}</td></tr>
{{end}}</table>
{{end}}
{{range .Figures}}
<figure>
<h2>{{.Title}}</h2>
<img alt="{{.Title}}" src="data:image/png;base64,{{.PNGBase64}}">
<figcaption>{{.Caption}}</figcaption>
</figure>
{{end}}
</body>
</html>
`))

type reportView struct {
	ID        core.ReportID
	DatasetID core.DatasetID
	CreatedAt core.Timestamp
	NotesHTML template.HTML
	Summary   []SummaryRow
	Figures   []figureView
}

type figureView struct {
	Title     string
	Caption   string
	PNGBase64 string
}

// WriteHTML renders the report page
func (r *Report) WriteHTML(w io.Writer) error {
	view := reportView{
		ID:        r.ID,
		DatasetID: r.DatasetID,
		CreatedAt: r.CreatedAt,
		NotesHTML: renderNotes(r.Notes),
		Summary:   r.Summary,
	}
	for _, fig := range r.Figures {
		view.Figures = append(view.Figures, figureView{
			Title:     fig.Title,
			Caption:   fig.Caption,
			PNGBase64: base64.StdEncoding.EncodeToString(fig.PNG),
		})
	}
	return reportTemplate.Execute(w, view)
}

// renderNotes converts the markdown method notes to HTML
func renderNotes(notes string) template.HTML {
	if strings.TrimSpace(notes) == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(notes), p, renderer)
	return template.HTML(out)
}
