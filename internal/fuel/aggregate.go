package fuel

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Aggregate groups records by normalized region and averages their prices.
// The result has exactly one row per distinct region. Rows are sorted by
// region, but callers should treat the output as a set.
func Aggregate(records []PriceRecord) []RegionAggregate {
	if len(records) == 0 {
		return []RegionAggregate{}
	}

	type bucket struct {
		sum   decimal.Decimal
		count int64
	}

	buckets := make(map[string]*bucket)
	for _, r := range records {
		key := NormalizeRegion(r.Region)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{sum: decimal.Zero}
			buckets[key] = b
		}
		b.sum = b.sum.Add(decimal.NewFromFloat(r.Price))
		b.count++
	}

	out := make([]RegionAggregate, 0, len(buckets))
	for region, b := range buckets {
		mean := b.sum.Div(decimal.NewFromInt(b.count))
		out = append(out, RegionAggregate{
			Region:    region,
			MeanPrice: mean.InexactFloat64(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out
}

// meanPrice averages the prices of records, returning 0 for an empty slice.
func meanPrice(records []PriceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(decimal.NewFromFloat(r.Price))
	}
	return sum.Div(decimal.NewFromInt(int64(len(records)))).InexactFloat64()
}
