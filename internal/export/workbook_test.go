package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
)

func TestWorkbook(t *testing.T) {
	data, err := Workbook(Report{
		Summary: fuel.Summary{
			Records:   3,
			MeanPrice: 2500,
			FirstDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Regions:   []fuel.RegionAggregate{{Region: "BOGOTA", MeanPrice: 2400}, {Region: "CESAR", MeanPrice: 2700}},
		Trend:     []fuel.MonthlyMean{{Month: "2024-01", MeanPrice: 2500}},
		Variables: fuel.Variables,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{sheetSummary, sheetRegions, sheetTrend, sheetVariables}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sheets %v, got %v", want, got)
		}
	}

	region, err := f.GetCellValue(sheetRegions, "A3")
	if err != nil || region != "CESAR" {
		t.Fatalf("expected CESAR in A3, got %q (%v)", region, err)
	}
	last, err := f.GetCellValue(sheetSummary, "B6")
	if err != nil || last != "2024-03-01" {
		t.Fatalf("expected last date, got %q (%v)", last, err)
	}
	rows, err := f.GetRows(sheetVariables)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != len(fuel.Variables)+1 {
		t.Fatalf("expected %d variable rows, got %d", len(fuel.Variables)+1, len(rows))
	}
}

func TestWriteTableReportsCellErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTable(f, "Empty", nil, 0, func(int) []interface{} { return nil }); err == nil {
		t.Fatalf("expected error for a table without columns")
	}
	if err := writeTable(f, "Bad:Name", []string{"A"}, 0, func(int) []interface{} { return nil }); err == nil {
		t.Fatalf("expected error for an invalid sheet name")
	}
}
