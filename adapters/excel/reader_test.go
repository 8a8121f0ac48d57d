package excel

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"spatialviz/domain/dataset"
)

// writeWorkbook builds a results workbook with every recognized sheet
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", SheetCentrality))
	centralityRows := [][]interface{}{
		{"cluster", "degree centrality", "clustering coefficient", "closeness centrality", "betweenness centrality"},
		{"0", 0.5, 0.2, 0.7, 0.01},
		{"1", 0.6, 0.3, 0.8, 0.02},
	}
	for i, row := range centralityRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetCentrality, cell, &row))
	}

	_, err := f.NewSheet(SheetInteractions)
	require.NoError(t, err)
	interactionRows := [][]interface{}{
		{"", "0", "1"},
		{"0", 10, 3},
		{"1", 3, 20},
	}
	for i, row := range interactionRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetInteractions, cell, &row))
	}

	ripleySheet := dataset.RipleyKKey("leiden")
	_, err = f.NewSheet(ripleySheet)
	require.NoError(t, err)
	ripleyRows := [][]interface{}{
		{"distance", "ripley_k", "leiden"},
		{0.0, 0.0, "0"},
		{1.0, 3.1, "0"},
		{0.0, 0.0, "1"},
		{1.0, 2.7, "1"},
	}
	for i, row := range ripleyRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(ripleySheet, cell, &row))
	}

	colorsSheet := dataset.ColorsKey("leiden")
	_, err = f.NewSheet(colorsSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(colorsSheet, "A1", "#1f77b4"))
	require.NoError(t, f.SetCellValue(colorsSheet, "A2", "#ff7f0e"))

	_, err = f.NewSheet(SheetObs)
	require.NoError(t, err)
	obsRows := [][]interface{}{
		{"leiden"},
		{"0"},
		{"1"},
		{"0"},
	}
	for i, row := range obsRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetObs, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadWorkbook(t *testing.T) {
	path := writeWorkbook(t)

	ad, err := NewResultsReader(path).Load()
	require.NoError(t, err)

	scores, ok := ad.Uns[dataset.CentralityScoresKey].(*dataset.CentralityScores)
	require.True(t, ok)
	assert.Equal(t, []string{"0", "1"}, scores.Clusters)
	assert.Equal(t, []float64{0.5, 0.6}, scores.Degree)
	assert.Equal(t, []float64{0.01, 0.02}, scores.Betweenness)

	matrix, ok := ad.Uns[dataset.ClusterInteractionsKey].(*dataset.InteractionMatrix)
	require.True(t, ok)
	require.NoError(t, matrix.Validate())
	assert.Equal(t, []string{"0", "1"}, matrix.Labels)
	assert.Equal(t, 10.0, matrix.Counts.At(0, 0))
	assert.Equal(t, 3.0, matrix.Counts.At(1, 0))

	table, ok := ad.Uns[dataset.RipleyKKey("leiden")].(*dataset.RipleyKTable)
	require.True(t, ok)
	assert.Equal(t, 4, table.Rows())
	assert.Equal(t, []string{"0", "1"}, table.ClusterValues())

	colors, err := ad.Palette("leiden", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"#1f77b4", "#ff7f0e"}, colors)

	cats, err := ad.ObsCategories("leiden")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, cats)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewResultsReader(filepath.Join(t.TempDir(), "nope.xlsx")).Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadCentralityHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", SheetCentrality))
	header := []interface{}{"cluster", "degree centrality", "wrong", "closeness centrality", "betweenness centrality"}
	require.NoError(t, f.SetSheetRow(SheetCentrality, "A1", &header))
	row := []interface{}{"0", 1, 2, 3, 4}
	require.NoError(t, f.SetSheetRow(SheetCentrality, "A2", &row))

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := NewResultsReader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong")
}

func TestLoadRejectsNonNumericCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := dataset.RipleyKKey("leiden")
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	rows := [][]interface{}{
		{"distance", "ripley_k", "leiden"},
		{"abc", 1.0, "0"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := NewResultsReader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("sheet %q", sheet))
}
