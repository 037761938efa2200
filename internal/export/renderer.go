package export

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/fuel-price-dashboard/internal/charts"
	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
	"github.com/i474232898/fuel-price-dashboard/internal/store"
)

// Artifact names served by the API and written to the export directory.
const (
	HistogramPNG = "histogram.png"
	TrendPNG     = "trend.png"
	BoxPlotPNG   = "boxplot.png"
	ReportXLSX   = "report.xlsx"
)

const (
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Store receives rendered artifacts.
type Store interface {
	Save(a store.Artifact)
}

// Renderer draws the report artifacts for a baseline.
type Renderer struct {
	service *fuel.Service
	store   Store
	dir     string
}

// NewRenderer creates a Renderer. When dir is non-empty every artifact is
// also written there.
func NewRenderer(service *fuel.Service, st Store, dir string) *Renderer {
	return &Renderer{
		service: service,
		store:   st,
		dir:     dir,
	}
}

type job struct {
	name        string
	contentType string
	render      func() ([]byte, error)
}

// RenderAll renders every artifact. Artifacts without data are skipped; the
// first other failure is returned after the remaining artifacts are tried.
func (r *Renderer) RenderAll() error {
	jobs := []job{
		{HistogramPNG, contentTypePNG, func() ([]byte, error) { return charts.Histogram(r.service.Histogram()) }},
		{TrendPNG, contentTypePNG, func() ([]byte, error) { return charts.Trend(r.service.Trend()) }},
		{BoxPlotPNG, contentTypePNG, func() ([]byte, error) { return charts.BoxPlot(r.service.Distribution()) }},
		{ReportXLSX, contentTypeXLSX, r.workbook},
	}

	if r.dir != "" {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	baselineID := r.service.Baseline().ID()
	var firstErr error
	for _, j := range jobs {
		data, err := j.render()
		if errors.Is(err, charts.ErrNoData) {
			log.Printf("INFO: skipping %s: no data", j.name)
			continue
		}
		if err != nil {
			log.Printf("ERROR: render %s failed: %v", j.name, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("render %s: %w", j.name, err)
			}
			continue
		}

		r.store.Save(store.Artifact{
			ID:          uuid.NewString(),
			Name:        j.name,
			ContentType: j.contentType,
			RenderedAt:  time.Now().UTC(),
			BaselineID:  baselineID,
			Data:        data,
		})

		if r.dir != "" {
			if err := os.WriteFile(filepath.Join(r.dir, j.name), data, 0o644); err != nil {
				log.Printf("ERROR: write %s failed: %v", j.name, err)
				if firstErr == nil {
					firstErr = fmt.Errorf("write %s: %w", j.name, err)
				}
			}
		}
	}

	return firstErr
}

func (r *Renderer) workbook() ([]byte, error) {
	b := r.service.Baseline()
	return Workbook(Report{
		Summary:   r.service.Summary(),
		Regions:   b.Aggregates(),
		Trend:     r.service.Trend(),
		Variables: fuel.Variables,
	})
}
