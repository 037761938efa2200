package fuel

// Join attaches mean prices to region boundaries. It is an inner join on the
// normalized region key: boundaries without price data and aggregates without
// a boundary are dropped. Boundary order is preserved.
func Join(boundaries []RegionGeometry, aggregates []RegionAggregate) []EnrichedRegion {
	means := make(map[string]float64, len(aggregates))
	for _, a := range aggregates {
		means[NormalizeRegion(a.Region)] = a.MeanPrice
	}

	out := make([]EnrichedRegion, 0, len(boundaries))
	for _, b := range boundaries {
		key := NormalizeRegion(b.Region)
		mean, ok := means[key]
		if !ok {
			continue
		}
		out = append(out, EnrichedRegion{
			Region:    key,
			Geometry:  b.Geometry,
			MeanPrice: mean,
		})
	}
	return out
}

// Narrow restricts enriched to the rows of a single region.
//
// A blank selection means "no selection" and returns enriched unchanged. A
// region absent from enriched yields an empty, non-nil slice.
func Narrow(enriched []EnrichedRegion, selection string) []EnrichedRegion {
	key := NormalizeRegion(selection)
	if key == "" {
		return enriched
	}

	out := make([]EnrichedRegion, 0, 1)
	for _, e := range enriched {
		if e.Region == key {
			out = append(out, e)
		}
	}
	return out
}
