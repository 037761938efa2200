package fuel

import (
	"strings"
	"time"

	"github.com/twpayne/go-geom"
)

// PriceRecord is a single published price observation for a service station.
// Region is always stored in normalized form.
type PriceRecord struct {
	Region       string    `json:"region"`
	Price        float64   `json:"price"`
	Date         time.Time `json:"date"`
	Municipality string    `json:"municipality,omitempty"`
	StationName  string    `json:"stationName,omitempty"`
	FuelType     string    `json:"fuelType,omitempty"`
}

// RegionAggregate is the mean published price for one normalized region.
type RegionAggregate struct {
	Region    string  `json:"region"`
	MeanPrice float64 `json:"meanPrice"`
}

// RegionGeometry is the boundary of one region. Geometry is a *geom.Polygon
// or *geom.MultiPolygon.
type RegionGeometry struct {
	Region   string
	Geometry geom.T
}

// EnrichedRegion is a region boundary annotated with its mean price.
type EnrichedRegion struct {
	Region    string
	Geometry  geom.T
	MeanPrice float64
}

// NormalizeRegion returns the join key for a region name: upper-cased with
// surrounding whitespace removed. Accents are left untouched, so "BOGOTÁ" and
// "BOGOTA" are different keys.
func NormalizeRegion(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
