package fuel

import (
	"sort"
	"time"
)

// Summary is a descriptive overview of a price table.
type Summary struct {
	Records   int       `json:"records"`
	MeanPrice float64   `json:"meanPrice"`
	Stations  int       `json:"stations"`
	Regions   int       `json:"regions"`
	FirstDate time.Time `json:"firstDate"`
	LastDate  time.Time `json:"lastDate"`
}

// Summarize computes record count, overall mean price, distinct stations and
// regions, and the covered date range.
func Summarize(records []PriceRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	stations := make(map[string]struct{})
	regions := make(map[string]struct{})
	first, last := records[0].Date, records[0].Date

	for _, r := range records {
		if r.StationName != "" {
			stations[r.StationName] = struct{}{}
		}
		regions[NormalizeRegion(r.Region)] = struct{}{}
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}

	return Summary{
		Records:   len(records),
		MeanPrice: meanPrice(records),
		Stations:  len(stations),
		Regions:   len(regions),
		FirstDate: first,
		LastDate:  last,
	}
}

// HistogramBin counts prices in [Lower, Upper). The last bin also includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets the prices within [min, max] into equal-width bins.
// Prices outside the band are ignored.
func Histogram(records []PriceRecord, min, max float64, bins int) []HistogramBin {
	if bins <= 0 || max <= min {
		return []HistogramBin{}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = min + float64(i)*width
		out[i].Upper = min + float64(i+1)*width
	}
	out[bins-1].Upper = max

	for _, r := range records {
		if r.Price < min || r.Price > max {
			continue
		}
		idx := int((r.Price - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// MonthlyMean is the mean price of one calendar month.
type MonthlyMean struct {
	Month     string  `json:"month"` // YYYY-MM
	MeanPrice float64 `json:"meanPrice"`
}

// MonthlyTrend averages prices per calendar month, oldest first.
func MonthlyTrend(records []PriceRecord) []MonthlyMean {
	byMonth := make(map[string][]PriceRecord)
	for _, r := range records {
		k := r.Date.Format("2006-01")
		byMonth[k] = append(byMonth[k], r)
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlyMean, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlyMean{Month: k, MeanPrice: meanPrice(byMonth[k])})
	}
	return out
}

// RegionDistribution collects, per normalized region, the prices strictly
// below ceiling.
func RegionDistribution(records []PriceRecord, ceiling float64) map[string][]float64 {
	out := make(map[string][]float64)
	for _, r := range records {
		if r.Price >= ceiling {
			continue
		}
		key := NormalizeRegion(r.Region)
		out[key] = append(out[key], r.Price)
	}
	return out
}

// Variable documents one column of the source price dataset.
type Variable struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Variables is the field catalogue of the SICOM price dataset.
var Variables = []Variable{
	{"FECHA_PRECIO", "Date the price was reported"},
	{"ANIO_PRECIO, MES_PRECIO, DIA_PRECIO", "Year, month and day of the report"},
	{"DEPARTAMENTO_EDS", "Department where the station is located"},
	{"MUNICIPIO_EDS", "Municipality of the service station"},
	{"NOMBRE_COMERCIAL_EDS", "Commercial name of the service station"},
	{"PRECIO_PROMEDIO_PUBLICADO", "Average published price at the station (COP)"},
	{"TIPO_COMBUSTIBLE", "Fuel type"},
	{"CODIGO_MUNICIPIO_DANE", "DANE municipality code"},
	{"LATITUD_MUNICIPIO, LONGITUD_MUNICIPIO", "Municipality coordinates"},
}
