package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/i474232898/fuel-price-dashboard/internal/common"
	"github.com/i474232898/fuel-price-dashboard/internal/fuel"
)

// Columns names the price table headers. Region, Price and Date are
// required; the rest are read when present.
type Columns struct {
	Region       string
	Price        string
	Date         string
	Municipality string
	Station      string
	FuelType     string
}

// PriceOptions controls how the price table is decoded.
type PriceOptions struct {
	Columns   Columns
	Encoding  string // utf-8, latin1 or windows-1252
	Delimiter rune
}

// Header names tried, after folding, when a configured required column is
// missing. Only whole names match: FECHA_PRECIO is never a price column.
var (
	regionAliases = []string{"DEPARTAMENTO_EDS", "DEPARTAMENTO", "REGION"}
	priceAliases  = []string{"PRECIO_PROMEDIO_PUBLICADO", "PRECIO", "PRICE"}
	dateAliases   = []string{"FECHA_PRECIO", "FECHA", "DATE"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 03:04:05 PM",
}

// ReadPrices parses a price table. Any unreadable row fails the whole read.
func ReadPrices(r io.Reader, opts PriceOptions) ([]fuel.PriceRecord, error) {
	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, dec.NewDecoder()))
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty price table", ErrMalformed)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := resolveColumns(header, opts.Columns)
	if err != nil {
		return nil, err
	}

	var records []fuel.PriceRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

type columnIndex struct {
	region, price, date             int
	municipality, station, fuelType int
}

func resolveColumns(header []string, cols Columns) (columnIndex, error) {
	folded := make([]string, len(header))
	for i, h := range header {
		folded[i] = common.FoldHeader(h)
	}

	find := func(name string) int {
		want := common.FoldHeader(name)
		if want == "" {
			return -1
		}
		for i, h := range folded {
			if h == want {
				return i
			}
		}
		return -1
	}
	claimed := make(map[int]bool, 3)
	findRequired := func(name string, aliases []string) (int, error) {
		if i := find(name); i >= 0 && !claimed[i] {
			claimed[i] = true
			return i, nil
		}
		for i, h := range folded {
			if !claimed[i] && common.OneOf(h, aliases...) {
				claimed[i] = true
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}

	var idx columnIndex
	var err error
	if idx.region, err = findRequired(cols.Region, regionAliases); err != nil {
		return idx, err
	}
	if idx.price, err = findRequired(cols.Price, priceAliases); err != nil {
		return idx, err
	}
	if idx.date, err = findRequired(cols.Date, dateAliases); err != nil {
		return idx, err
	}
	idx.municipality = find(cols.Municipality)
	idx.station = find(cols.Station)
	idx.fuelType = find(cols.FuelType)
	return idx, nil
}

func parseRow(row []string, idx columnIndex) (fuel.PriceRecord, error) {
	region := fuel.NormalizeRegion(row[idx.region])
	if region == "" {
		return fuel.PriceRecord{}, errors.New("empty region")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(row[idx.price]), 64)
	if err != nil {
		return fuel.PriceRecord{}, fmt.Errorf("invalid price %q", row[idx.price])
	}

	date, err := parseDate(row[idx.date])
	if err != nil {
		return fuel.PriceRecord{}, err
	}

	return fuel.PriceRecord{
		Region:       region,
		Price:        price,
		Date:         date,
		Municipality: optional(row, idx.municipality),
		StationName:  optional(row, idx.station),
		FuelType:     optional(row, idx.fuelType),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func optional(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		// Strips a leading BOM, which spreadsheet exports often carry.
		return unicode.UTF8BOM, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
