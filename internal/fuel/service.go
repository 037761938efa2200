package fuel

import (
	"log"
)

// Price band and bin count used by the dashboard histogram.
const (
	HistogramMin  = 1000
	HistogramMax  = 4000
	HistogramBins = 40

	// DistributionCeiling drops outliers from the per-region distribution.
	DistributionCeiling = 5000
)

// Service answers map filter requests against an immutable Baseline.
// Every call is evaluated independently; no filter state is kept between calls.
type Service struct {
	baseline *Baseline
}

// NewService creates a new Service.
func NewService(baseline *Baseline) *Service {
	return &Service{baseline: baseline}
}

// Baseline returns the dataset context the service was built with.
func (s *Service) Baseline() *Baseline {
	return s.baseline
}

// GetBaseline returns every enriched region.
func (s *Service) GetBaseline() []EnrichedRegion {
	return s.baseline.Enriched()
}

// Filter returns the enriched rows for selection. A blank selection returns
// the whole baseline; an unknown region returns an empty result.
func (s *Service) Filter(selection string) []EnrichedRegion {
	rows := Narrow(s.baseline.Enriched(), selection)
	if len(rows) == 0 {
		log.Printf("DEBUG: filter %q matched no regions", selection)
	}
	return rows
}

// Summary describes the full price table.
func (s *Service) Summary() Summary {
	return Summarize(s.baseline.Records())
}

// Histogram buckets prices inside the dashboard price band.
func (s *Service) Histogram() []HistogramBin {
	return Histogram(s.baseline.Records(), HistogramMin, HistogramMax, HistogramBins)
}

// Trend returns the monthly mean price series.
func (s *Service) Trend() []MonthlyMean {
	return MonthlyTrend(s.baseline.Records())
}

// Distribution returns prices per region below DistributionCeiling.
func (s *Service) Distribution() map[string][]float64 {
	return RegionDistribution(s.baseline.Records(), DistributionCeiling)
}
