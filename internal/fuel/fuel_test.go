package fuel

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/twpayne/go-geom"
)

func square(x0, y0, size float64) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
		{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0},
	}})
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRecords() []PriceRecord {
	return []PriceRecord{
		{Region: "BOGOTA", Price: 100, Date: day("2024-01-05"), StationName: "EDS A"},
		{Region: "bogota ", Price: 200, Date: day("2024-01-20"), StationName: "EDS B"},
		{Region: " Antioquia", Price: 300, Date: day("2024-02-01"), StationName: "EDS A"},
		{Region: "CESAR", Price: 6000, Date: day("2024-03-01"), StationName: "EDS C"},
	}
}

func sampleBoundaries() []RegionGeometry {
	return []RegionGeometry{
		{Region: "Bogota", Geometry: square(0, 0, 1)},
		{Region: "ANTIOQUIA ", Geometry: square(2, 2, 1)},
		{Region: "AMAZONAS", Geometry: square(5, 5, 1)},
	}
}

func TestAggregateMeanPerRegion(t *testing.T) {
	got := Aggregate([]PriceRecord{
		{Region: "BOGOTA", Price: 100},
		{Region: "bogota ", Price: 200},
	})
	want := []RegionAggregate{{Region: "BOGOTA", MeanPrice: 150}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAggregateOneRowPerRegion(t *testing.T) {
	got := Aggregate(sampleRecords())
	if len(got) != 3 {
		t.Fatalf("expected 3 regions, got %d: %v", len(got), got)
	}
	seen := map[string]bool{}
	for _, a := range got {
		if seen[a.Region] {
			t.Fatalf("region %s appears twice", a.Region)
		}
		seen[a.Region] = true
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestNormalizeRegion(t *testing.T) {
	for _, in := range []string{"Bogota", " BOGOTA ", "bogota\t"} {
		if got := NormalizeRegion(in); got != "BOGOTA" {
			t.Fatalf("NormalizeRegion(%q) = %q, expected BOGOTA", in, got)
		}
	}
	if NormalizeRegion("bogotá") == NormalizeRegion("bogota") {
		t.Fatalf("accented and unaccented names must stay distinct")
	}
	if got := NormalizeRegion("bogotá"); got != "BOGOTÁ" {
		t.Fatalf("expected BOGOTÁ, got %q", got)
	}
}

func TestJoinIsInner(t *testing.T) {
	enriched := Join(sampleBoundaries(), Aggregate(sampleRecords()))
	if len(enriched) != 2 {
		t.Fatalf("expected 2 enriched regions, got %d", len(enriched))
	}
	for _, e := range enriched {
		if e.Region == "AMAZONAS" || e.Region == "CESAR" {
			t.Fatalf("region %s present on one side only must be dropped", e.Region)
		}
	}
}

func TestJoinIdempotent(t *testing.T) {
	aggs := Aggregate(sampleRecords())
	first := Join(sampleBoundaries(), aggs)
	second := Join(sampleBoundaries(), aggs)
	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	index := map[string]float64{}
	for _, e := range first {
		index[e.Region] = e.MeanPrice
	}
	for _, e := range second {
		if mean, ok := index[e.Region]; !ok || mean != e.MeanPrice {
			t.Fatalf("row %v missing from first join", e)
		}
	}
}

func TestNarrow(t *testing.T) {
	enriched := Join(sampleBoundaries(), Aggregate(sampleRecords()))

	tests := []struct {
		name      string
		selection string
		want      []string
	}{
		{"no selection", "", []string{"BOGOTA", "ANTIOQUIA"}},
		{"blank selection", "   ", []string{"BOGOTA", "ANTIOQUIA"}},
		{"exact", "ANTIOQUIA", []string{"ANTIOQUIA"}},
		{"case and spaces", " bogota ", []string{"BOGOTA"}},
		{"unknown", "UNKNOWN_REGION", []string{}},
		{"one side only", "AMAZONAS", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := Narrow(enriched, tc.selection)
			if rows == nil {
				t.Fatalf("expected non-nil result")
			}
			got := make([]string, 0, len(rows))
			for _, r := range rows {
				got = append(got, r.Region)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNarrowRoundTrip(t *testing.T) {
	records := sampleRecords()
	rows := Narrow(Join(sampleBoundaries(), Aggregate(records)), "Bogota")
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].MeanPrice != 150 {
		t.Fatalf("expected mean 150, got %v", rows[0].MeanPrice)
	}
}

func TestServiceFilter(t *testing.T) {
	svc := NewService(NewBaseline(sampleRecords(), sampleBoundaries()))

	if got := len(svc.GetBaseline()); got != 2 {
		t.Fatalf("expected 2 baseline rows, got %d", got)
	}
	if got := svc.Filter("antioquia"); len(got) != 1 || got[0].MeanPrice != 300 {
		t.Fatalf("unexpected filter result: %v", got)
	}
	// Previous selections must not leak into later requests.
	if got := len(svc.Filter("")); got != 2 {
		t.Fatalf("expected unfiltered result after reset, got %d rows", got)
	}
	if got := svc.Filter("NOWHERE"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestBaselineRegionNames(t *testing.T) {
	b := NewBaseline(sampleRecords(), sampleBoundaries())
	want := []string{"ANTIOQUIA", "BOGOTA"}
	if got := b.RegionNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if b.ID() == "" {
		t.Fatalf("expected baseline id")
	}
	for _, r := range b.Records() {
		if r.Region != NormalizeRegion(r.Region) {
			t.Fatalf("record region %q not normalized", r.Region)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.Records != 4 || s.Stations != 3 || s.Regions != 3 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.MeanPrice != 1650 {
		t.Fatalf("expected mean 1650, got %v", s.MeanPrice)
	}
	if !s.FirstDate.Equal(day("2024-01-05")) || !s.LastDate.Equal(day("2024-03-01")) {
		t.Fatalf("unexpected date range: %v - %v", s.FirstDate, s.LastDate)
	}
	if empty := Summarize(nil); empty.Records != 0 || empty.MeanPrice != 0 {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestHistogram(t *testing.T) {
	records := []PriceRecord{{Price: 1000}, {Price: 1075}, {Price: 4000}, {Price: 999}, {Price: 4001}}
	bins := Histogram(records, 1000, 4000, 40)
	if len(bins) != 40 {
		t.Fatalf("expected 40 bins, got %d", len(bins))
	}
	if bins[0].Count != 1 || bins[1].Count != 1 || bins[39].Count != 1 {
		t.Fatalf("unexpected counts: first=%d second=%d last=%d", bins[0].Count, bins[1].Count, bins[39].Count)
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 3 {
		t.Fatalf("expected 3 prices in band, got %d", total)
	}
	if math.Abs(bins[0].Upper-1075) > 1e-9 || bins[39].Upper != 4000 {
		t.Fatalf("unexpected bin edges: %+v %+v", bins[0], bins[39])
	}
	if got := Histogram(records, 10, 10, 5); len(got) != 0 {
		t.Fatalf("expected no bins for empty band, got %d", len(got))
	}
}

func TestMonthlyTrend(t *testing.T) {
	got := MonthlyTrend(sampleRecords())
	want := []MonthlyMean{
		{Month: "2024-01", MeanPrice: 150},
		{Month: "2024-02", MeanPrice: 300},
		{Month: "2024-03", MeanPrice: 6000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRegionDistribution(t *testing.T) {
	got := RegionDistribution(sampleRecords(), 5000)
	if _, ok := got["CESAR"]; ok {
		t.Fatalf("prices at or above the ceiling must be excluded")
	}
	if !reflect.DeepEqual(got["BOGOTA"], []float64{100, 200}) {
		t.Fatalf("unexpected BOGOTA prices: %v", got["BOGOTA"])
	}
}

func TestFeatureCollection(t *testing.T) {
	enriched := Join(sampleBoundaries(), Aggregate(sampleRecords()))
	fc := FeatureCollection(enriched)
	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(fc.Features))
	}
	if fc.Features[0].Properties["region"] != "BOGOTA" {
		t.Fatalf("unexpected properties: %v", fc.Features[0].Properties)
	}
	if fc.BBox == nil || fc.BBox.Min(0) != 0 || fc.BBox.Max(0) != 3 {
		t.Fatalf("unexpected bbox: %v", fc.BBox)
	}

	empty := FeatureCollection(Narrow(enriched, "NOWHERE"))
	if len(empty.Features) != 0 || empty.BBox != nil {
		t.Fatalf("expected empty collection without bbox, got %+v", empty)
	}
}

func TestBoundsSkipsGeometryWithoutCoordinates(t *testing.T) {
	rows := []EnrichedRegion{
		{Region: "HOLLOW", MeanPrice: 1, Geometry: geom.NewPolygon(geom.XY)},
		{Region: "NONE", MeanPrice: 2},
	}
	if b := Bounds(rows); b != nil {
		t.Fatalf("expected nil bounds, got %v", b)
	}
	if Extent(rows[0].Geometry) != nil || Extent(nil) != nil {
		t.Fatalf("expected nil extent for empty or missing geometry")
	}

	rows = append(rows, EnrichedRegion{Region: "BOGOTA", Geometry: square(1, 2, 1)})
	b := Bounds(rows)
	if b == nil || b.Min(0) != 1 || b.Min(1) != 2 || b.Max(0) != 2 || b.Max(1) != 3 {
		t.Fatalf("unexpected bounds: %v", b)
	}
	for _, v := range []float64{b.Min(0), b.Min(1), b.Max(0), b.Max(1)} {
		if math.IsInf(v, 0) {
			t.Fatalf("bounds must be finite: %v", b)
		}
	}
}
