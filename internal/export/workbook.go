package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
)

const (
	sheetSummary   = "Summary"
	sheetRegions   = "Regions"
	sheetTrend     = "Monthly_Trend"
	sheetVariables = "Variables"
)

// Report is the content of the dashboard workbook.
type Report struct {
	Summary   fuel.Summary
	Regions   []fuel.RegionAggregate
	Trend     []fuel.MonthlyMean
	Variables []fuel.Variable
}

// Workbook renders r as an XLSX document.
func Workbook(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}

	summary := [][2]interface{}{
		{"Records", r.Summary.Records},
		{"Mean price", r.Summary.MeanPrice},
		{"Stations", r.Summary.Stations},
		{"Regions", r.Summary.Regions},
		{"First date", r.Summary.FirstDate.Format("2006-01-02")},
		{"Last date", r.Summary.LastDate.Format("2006-01-02")},
	}
	for i, kv := range summary {
		row := i + 1
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), kv[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), kv[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "B", 18); err != nil {
		return nil, err
	}

	if err := writeTable(f, sheetRegions, []string{"Region", "Mean price"}, len(r.Regions), func(i int) []interface{} {
		return []interface{}{r.Regions[i].Region, r.Regions[i].MeanPrice}
	}); err != nil {
		return nil, err
	}

	if err := writeTable(f, sheetTrend, []string{"Month", "Mean price"}, len(r.Trend), func(i int) []interface{} {
		return []interface{}{r.Trend[i].Month, r.Trend[i].MeanPrice}
	}); err != nil {
		return nil, err
	}

	if err := writeTable(f, sheetVariables, []string{"Variable", "Description"}, len(r.Variables), func(i int) []interface{} {
		return []interface{}{r.Variables[i].Name, r.Variables[i].Description}
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, headers []string, n int, row func(int) []interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", last, 24); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
