package fuel

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Baseline is the immutable dataset context built once at startup: the
// normalized price records, their per-region means and the full enriched
// region set. Slices returned by its accessors are shared and must not be
// modified.
type Baseline struct {
	id         string
	loadedAt   time.Time
	records    []PriceRecord
	aggregates []RegionAggregate
	enriched   []EnrichedRegion
}

// NewBaseline aggregates records and joins the result with boundaries.
// It is meant to be called exactly once per process.
func NewBaseline(records []PriceRecord, boundaries []RegionGeometry) *Baseline {
	normalized := make([]PriceRecord, len(records))
	for i, r := range records {
		r.Region = NormalizeRegion(r.Region)
		normalized[i] = r
	}

	aggregates := Aggregate(normalized)

	return &Baseline{
		id:         uuid.NewString(),
		loadedAt:   time.Now().UTC(),
		records:    normalized,
		aggregates: aggregates,
		enriched:   Join(boundaries, aggregates),
	}
}

// ID uniquely identifies this baseline instance.
func (b *Baseline) ID() string { return b.id }

// LoadedAt is the time the baseline was built (UTC).
func (b *Baseline) LoadedAt() time.Time { return b.loadedAt }

// Records returns the normalized price records.
func (b *Baseline) Records() []PriceRecord { return b.records }

// Aggregates returns the per-region means over all records, including
// regions without a boundary.
func (b *Baseline) Aggregates() []RegionAggregate { return b.aggregates }

// Enriched returns the full joined region set.
func (b *Baseline) Enriched() []EnrichedRegion { return b.enriched }

// RegionNames returns the sorted distinct regions of the enriched set.
func (b *Baseline) RegionNames() []string {
	seen := make(map[string]struct{}, len(b.enriched))
	names := make([]string, 0, len(b.enriched))
	for _, e := range b.enriched {
		if _, ok := seen[e.Region]; ok {
			continue
		}
		seen[e.Region] = struct{}{}
		names = append(names, e.Region)
	}
	sort.Strings(names)
	return names
}
