// Package catalog reads star and asterism data into a sky.CatalogueBuilder.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/sky"
)

// ErrMalformed is returned for input that cannot be parsed.
var ErrMalformed = errors.New("malformed catalogue data")

// HYG v3 column names used by HygLoader.
const (
	colHip    = "hip"
	colProper = "proper"
	colMag    = "mag"
	colCI     = "ci"
	colRA     = "rarad"
	colDec    = "decrad"
	colBayer  = "bayer"
	colCon    = "con"
)

var hygColumns = []string{colHip, colProper, colMag, colCI, colRA, colDec, colBayer, colCon}

// HygLoader reads the HYG database CSV (v3 layout). Rows are added to the
// builder in file order. An empty hip, mag or ci field reads as 0.
type HygLoader struct{}

var _ sky.Loader = HygLoader{}

// Load implements sky.Loader.
func (HygLoader) Load(r io.Reader, b *sky.CatalogueBuilder) error {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("%w: reading header: %v", ErrMalformed, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range hygColumns {
		if _, ok := col[name]; !ok {
			return fmt.Errorf("%w: missing column %q", ErrMalformed, name)
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)

		s, err := hygStar(rec, col)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := b.AddStar(s); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func hygStar(rec []string, col map[string]int) (*sky.Star, error) {
	field := func(name string) string { return strings.TrimSpace(rec[col[name]]) }

	hip, err := parseInt(colHip, field(colHip))
	if err != nil {
		return nil, err
	}
	mag, err := parseFloat(colMag, field(colMag), true)
	if err != nil {
		return nil, err
	}
	ci, err := parseFloat(colCI, field(colCI), true)
	if err != nil {
		return nil, err
	}
	ra, err := parseFloat(colRA, field(colRA), false)
	if err != nil {
		return nil, err
	}
	dec, err := parseFloat(colDec, field(colDec), false)
	if err != nil {
		return nil, err
	}

	pos, err := astro.NewEquatorial(ra, dec)
	if err != nil {
		return nil, err
	}
	return sky.NewStar(hip, StarName(field(colProper), field(colBayer), field(colCon)), pos, mag, ci)
}

// StarName picks a display name: the proper name when there is one, else the
// Bayer designation with its constellation, else "?" with the constellation.
func StarName(proper, bayer, con string) string {
	switch {
	case proper != "":
		return proper
	case bayer != "":
		return bayer + " " + con
	default:
		return "? " + con
	}
}

func parseInt(name, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformed, name, s)
	}
	return v, nil
}

func parseFloat(name, s string, optional bool) (float64, error) {
	if s == "" && optional {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformed, name, s)
	}
	return v, nil
}
