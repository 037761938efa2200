package fuel

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Extent returns the bounds of g, or nil when g is nil or has no
// coordinates.
func Extent(g geom.T) *geom.Bounds {
	if g == nil || len(g.FlatCoords()) == 0 {
		return nil
	}
	return g.Bounds()
}

// Bounds returns the extent covering every row's geometry, or nil when rows
// carry no coordinates.
func Bounds(rows []EnrichedRegion) *geom.Bounds {
	var b *geom.Bounds
	for _, r := range rows {
		if Extent(r.Geometry) == nil {
			continue
		}
		if b == nil {
			b = geom.NewBounds(geom.XY)
		}
		b.Extend(r.Geometry)
	}
	return b
}

// FeatureCollection renders rows as GeoJSON features carrying region and
// meanPrice properties. The collection bbox covers all returned geometries.
func FeatureCollection(rows []EnrichedRegion) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(rows)),
		BBox:     Bounds(rows),
	}
	for _, r := range rows {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       r.Region,
			Geometry: r.Geometry,
			Properties: map[string]interface{}{
				"region":    r.Region,
				"meanPrice": r.MeanPrice,
			},
		})
	}
	return fc
}
