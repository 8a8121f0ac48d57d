// Package excel loads precomputed analysis results from a workbook into
// the AnnData annotation store. Sheet conventions: "centrality_scores"
// and "interactions" feed the conventional uns slots, any
// "ripley_k_<clusterKey>" sheet feeds the derived-key slot of the same
// name, "<clusterKey>_colors" sheets feed palettes, and an optional
// "obs" sheet feeds the per-observation categorical columns.
package excel

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"spatialviz/domain/dataset"
)

// Sheet names for the fixed result kinds
const (
	SheetCentrality   = "centrality_scores"
	SheetInteractions = "interactions"
	SheetObs          = "obs"
)

// ResultsReader reads a results workbook
type ResultsReader struct {
	filePath string
}

// NewResultsReader creates a reader for filePath
func NewResultsReader(filePath string) *ResultsReader {
	return &ResultsReader{filePath: filePath}
}

// Load reads every recognized sheet into a fresh AnnData container
func (r *ResultsReader) Load() (*dataset.AnnData, error) {
	start := time.Now()
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("results workbook not found: %s", r.filePath)
	}
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open results workbook: %w", err)
	}
	defer f.Close()

	ad := dataset.NewAnnData()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		switch {
		case sheet == SheetCentrality:
			scores, err := parseCentralitySheet(rows)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
			ad.SetUns(dataset.CentralityScoresKey, scores)
		case sheet == SheetInteractions:
			matrix, err := parseInteractionSheet(rows)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
			ad.SetUns(dataset.ClusterInteractionsKey, matrix)
		case sheet == SheetObs:
			if err := parseObsSheet(rows, ad); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
		case strings.HasPrefix(sheet, dataset.RipleyKKeyPrefix):
			table, err := parseRipleyKSheet(rows)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
			ad.SetUns(sheet, table)
		case strings.HasSuffix(sheet, dataset.ColorsKeySuffix):
			ad.SetUns(sheet, parseColorsSheet(rows))
		default:
			log.Printf("[ResultsReader] skipping unrecognized sheet %q", sheet)
		}
	}
	log.Printf("[ResultsReader] loaded %s in %.2fms (%d uns entries)",
		r.filePath, float64(time.Since(start).Nanoseconds())/1e6, len(ad.Uns))
	return ad, nil
}

// parseCentralitySheet expects a header of cluster plus the four metric
// column names, one row per cluster
func parseCentralitySheet(rows [][]string) (*dataset.CentralityScores, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row")
	}
	header := rows[0]
	wantCols := []string{"cluster"}
	for _, m := range dataset.CentralityMetrics {
		wantCols = append(wantCols, m.ColumnName())
	}
	if len(header) < len(wantCols) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(wantCols))
	}
	for i, want := range wantCols {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("header column %d is %q, want %q", i, header[i], want)
		}
	}

	scores := &dataset.CentralityScores{}
	for rowIdx, row := range rows[1:] {
		if len(row) < len(wantCols) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", rowIdx+2, len(row), len(wantCols))
		}
		values := make([]float64, len(dataset.CentralityMetrics))
		for i := range dataset.CentralityMetrics {
			v, err := parseCell(row[i+1])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", rowIdx+2, wantCols[i+1], err)
			}
			values[i] = v
		}
		scores.Clusters = append(scores.Clusters, strings.TrimSpace(row[0]))
		scores.Degree = append(scores.Degree, values[0])
		scores.Clustering = append(scores.Clustering, values[1])
		scores.Closeness = append(scores.Closeness, values[2])
		scores.Betweenness = append(scores.Betweenness, values[3])
	}
	return scores, scores.Validate()
}

// parseInteractionSheet expects the cluster labels across the header
// (first cell blank) and one labelled count row per cluster
func parseInteractionSheet(rows [][]string) (*dataset.InteractionMatrix, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row")
	}
	labels := make([]string, 0, len(rows[0])-1)
	for _, cell := range rows[0][1:] {
		labels = append(labels, strings.TrimSpace(cell))
	}
	n := len(labels)
	if len(rows)-1 != n {
		return nil, fmt.Errorf("matrix has %d rows for %d labels", len(rows)-1, n)
	}

	counts := mat.NewDense(n, n, nil)
	for i, row := range rows[1:] {
		if len(row) < n+1 {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i+2, len(row), n+1)
		}
		if strings.TrimSpace(row[0]) != labels[i] {
			return nil, fmt.Errorf("row %d is labelled %q, want %q", i+2, row[0], labels[i])
		}
		for j := 0; j < n; j++ {
			v, err := parseCell(row[j+1])
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i+2, j+2, err)
			}
			counts.Set(i, j, v)
		}
	}
	matrix := &dataset.InteractionMatrix{Counts: counts, Labels: labels}
	return matrix, matrix.Validate()
}

// parseRipleyKSheet expects the literal columns distance, ripley_k, leiden
func parseRipleyKSheet(rows [][]string) (*dataset.RipleyKTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("need a header row and at least one data row")
	}
	header := rows[0]
	want := []string{dataset.ColDistance, dataset.ColRipleyK, dataset.ColCluster}
	if len(header) < len(want) {
		return nil, fmt.Errorf("header has %d columns, want %d", len(header), len(want))
	}
	for i, name := range want {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, fmt.Errorf("header column %d is %q, want %q", i, header[i], name)
		}
	}

	table := &dataset.RipleyKTable{}
	for rowIdx, row := range rows[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d has %d cells, want 3", rowIdx+2, len(row))
		}
		d, err := parseCell(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", rowIdx+2, dataset.ColDistance, err)
		}
		k, err := parseCell(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d %s: %w", rowIdx+2, dataset.ColRipleyK, err)
		}
		table.Distance = append(table.Distance, d)
		table.RipleyK = append(table.RipleyK, k)
		table.Cluster = append(table.Cluster, strings.TrimSpace(row[2]))
	}
	return table, table.Validate()
}

// parseColorsSheet reads one hex color per row, first column
func parseColorsSheet(rows [][]string) []string {
	colors := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		colors = append(colors, strings.TrimSpace(row[0]))
	}
	return colors
}

// parseObsSheet reads categorical columns: header names, one value per
// observation row
func parseObsSheet(rows [][]string, ad *dataset.AnnData) error {
	if len(rows) < 2 {
		return fmt.Errorf("need a header row and at least one data row")
	}
	header := rows[0]
	columns := make([][]string, len(header))
	for rowIdx, row := range rows[1:] {
		if len(row) > len(header) {
			return fmt.Errorf("row %d has %d cells for %d columns", rowIdx+2, len(row), len(header))
		}
		for i := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			columns[i] = append(columns[i], value)
		}
	}
	for i, name := range header {
		ad.Obs[strings.TrimSpace(name)] = columns[i]
	}
	return nil
}

func parseCell(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a number", cell)
	}
	return v, nil
}
