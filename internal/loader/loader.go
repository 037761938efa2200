package loader

import (
	"context"
	"log"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
	"github.com/i474232898/fuel-price-dashboard/internal/source"
)

// Dataset is the raw input of the dashboard.
type Dataset struct {
	Prices     []fuel.PriceRecord
	Boundaries []fuel.RegionGeometry
}

// Loader reads the price table and the boundary collection through an opener.
type Loader struct {
	opener           source.Opener
	prices           PriceOptions
	boundaryProperty string
}

// New creates a new Loader.
func New(opener source.Opener, prices PriceOptions, boundaryProperty string) *Loader {
	return &Loader{
		opener:           opener,
		prices:           prices,
		boundaryProperty: boundaryProperty,
	}
}

// Load reads both datasets. Failures are returned as *DataLoadError naming
// the offending source; nothing is returned on partial success.
func (l *Loader) Load(ctx context.Context, pricesRef, boundariesRef string) (Dataset, error) {
	prices, err := l.loadPrices(ctx, pricesRef)
	if err != nil {
		return Dataset{}, &DataLoadError{Source: pricesRef, Err: err}
	}

	boundaries, err := l.loadBoundaries(ctx, boundariesRef)
	if err != nil {
		return Dataset{}, &DataLoadError{Source: boundariesRef, Err: err}
	}

	log.Printf("INFO: loaded %d price records from %s and %d boundaries from %s",
		len(prices), pricesRef, len(boundaries), boundariesRef)

	return Dataset{Prices: prices, Boundaries: boundaries}, nil
}

func (l *Loader) loadPrices(ctx context.Context, ref string) ([]fuel.PriceRecord, error) {
	rc, err := l.opener.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadPrices(rc, l.prices)
}

func (l *Loader) loadBoundaries(ctx context.Context, ref string) ([]fuel.RegionGeometry, error) {
	rc, err := l.opener.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ReadBoundaries(rc, l.boundaryProperty)
}
