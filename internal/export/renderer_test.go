package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/twpayne/go-geom"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
	"github.com/i474232898/fuel-price-dashboard/internal/store"
)

func testService() *fuel.Service {
	records := []fuel.PriceRecord{
		{Region: "BOGOTA", Price: 2500, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), StationName: "EDS A"},
		{Region: "CESAR", Price: 3100, Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), StationName: "EDS B"},
	}
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	boundaries := []fuel.RegionGeometry{{Region: "BOGOTA", Geometry: poly}}
	return fuel.NewService(fuel.NewBaseline(records, boundaries))
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	st := store.NewMemoryStore(3)
	svc := testService()

	if err := NewRenderer(svc, st, dir).RenderAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{HistogramPNG, TrendPNG, BoxPlotPNG, ReportXLSX} {
		a, err := st.GetLatest(name)
		if err != nil {
			t.Fatalf("expected %s in store: %v", name, err)
		}
		if len(a.Data) == 0 || a.BaselineID != svc.Baseline().ID() {
			t.Fatalf("unexpected artifact %s: %d bytes, baseline %q", name, len(a.Data), a.BaselineID)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s on disk: %v", name, err)
		}
	}
}

func TestRenderAllSkipsEmptyCharts(t *testing.T) {
	st := store.NewMemoryStore(0)
	svc := fuel.NewService(fuel.NewBaseline(nil, nil))

	if err := NewRenderer(svc, st, "").RenderAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := st.GetLatest(TrendPNG); err == nil {
		t.Fatalf("expected no trend chart for an empty baseline")
	}
	if _, err := st.GetLatest(ReportXLSX); err != nil {
		t.Fatalf("expected workbook even without data: %v", err)
	}
}
