package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
	"github.com/i474232898/fuel-price-dashboard/internal/store"
)

var validate = validator.New()

// ArtifactStore exposes the rendered report artifacts.
type ArtifactStore interface {
	GetLatest(name string) (store.Artifact, error)
	History(name string) ([]store.Artifact, error)
	Names() []string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *fuel.Service, artifacts ArtifactStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/baseline", func(c *fiber.Ctx) error {
		b := service.Baseline()
		return c.JSON(fiber.Map{
			"id":       b.ID(),
			"loadedAt": b.LoadedAt(),
			"regions":  toRows(service.GetBaseline()),
		})
	})

	v1.Get("/regions", func(c *fiber.Ctx) error {
		return c.JSON(service.Baseline().RegionNames())
	})

	v1.Get("/regions/filter", func(c *fiber.Ctx) error {
		q, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"region":  q.Region,
			"regions": toRows(service.Filter(q.Region)),
		})
	})

	v1.Get("/map", func(c *fiber.Ctx) error {
		q, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := json.Marshal(fuel.FeatureCollection(service.Filter(q.Region)))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode map")
		}

		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(body)
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		return c.JSON(service.Summary())
	})

	v1.Get("/histogram", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"min":  fuel.HistogramMin,
			"max":  fuel.HistogramMax,
			"bins": service.Histogram(),
		})
	})

	v1.Get("/trend", func(c *fiber.Ctx) error {
		return c.JSON(service.Trend())
	})

	v1.Get("/variables", func(c *fiber.Ctx) error {
		return c.JSON(fuel.Variables)
	})

	v1.Get("/artifacts", func(c *fiber.Ctx) error {
		return c.JSON(artifacts.Names())
	})

	v1.Get("/artifacts/:name", func(c *fiber.Ctx) error {
		a, err := artifacts.GetLatest(c.Params("name"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "artifact has not been rendered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch artifact")
		}

		c.Set(fiber.HeaderContentType, a.ContentType)
		c.Set("X-Baseline-Id", a.BaselineID)
		c.Set(fiber.HeaderLastModified, a.RenderedAt.Format(http.TimeFormat))
		return c.Send(a.Data)
	})

	v1.Get("/artifacts/:name/history", func(c *fiber.Ctx) error {
		history, err := artifacts.History(c.Params("name"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "artifact has not been rendered")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch artifact history")
		}

		// Newest first; payloads are served by /artifacts/:name only.
		out := make([]store.Artifact, 0, len(history))
		for i := len(history) - 1; i >= 0; i-- {
			out = append(out, history[i])
		}
		return c.JSON(out)
	})
}

// regionRow is the attribute view of an enriched region.
type regionRow struct {
	Region    string     `json:"region"`
	MeanPrice float64    `json:"meanPrice"`
	BBox      [4]float64 `json:"bbox"` // minX, minY, maxX, maxY
}

func toRows(rows []fuel.EnrichedRegion) []regionRow {
	out := make([]regionRow, 0, len(rows))
	for _, r := range rows {
		row := regionRow{Region: r.Region, MeanPrice: r.MeanPrice}
		if b := fuel.Extent(r.Geometry); b != nil {
			row.BBox = [4]float64{b.Min(0), b.Min(1), b.Max(0), b.Max(1)}
		}
		out = append(out, row)
	}
	return out
}

// filterQuery holds the optional region selection.
type filterQuery struct {
	Region string `validate:"max=128"`
}

func parseFilterQuery(c *fiber.Ctx) (filterQuery, error) {
	var q filterQuery

	q.Region = c.Query("region")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
