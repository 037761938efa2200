package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
)

// ReadBoundaries parses a GeoJSON FeatureCollection of region polygons.
// The region name is read from the string property named by property.
func ReadBoundaries(r io.Reader, property string) ([]fuel.RegionGeometry, error) {
	var fc geojson.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: decode geojson: %v", ErrMalformed, err)
	}

	out := make([]fuel.RegionGeometry, 0, len(fc.Features))
	for i, f := range fc.Features {
		raw, ok := f.Properties[property]
		if !ok {
			return nil, fmt.Errorf("%w: feature %d has no %q property", ErrMissingColumn, i, property)
		}
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d: %q is not a string", ErrMalformed, i, property)
		}
		region := fuel.NormalizeRegion(name)
		if region == "" {
			return nil, fmt.Errorf("%w: feature %d has an empty region name", ErrMalformed, i)
		}

		switch f.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			return nil, fmt.Errorf("%w: feature %d (%s): geometry must be Polygon or MultiPolygon", ErrMalformed, i, region)
		}
		if len(f.Geometry.FlatCoords()) == 0 {
			return nil, fmt.Errorf("%w: feature %d (%s): geometry has no coordinates", ErrMalformed, i, region)
		}

		out = append(out, fuel.RegionGeometry{
			Region:   region,
			Geometry: f.Geometry,
		})
	}

	return out, nil
}
