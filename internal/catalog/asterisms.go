package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/litescript/ls-rigel/internal/sky"
)

// AsterismLoader reads one asterism per line as comma-separated Hipparcos
// numbers. Each number must name a star already added to the builder. Blank
// lines and lines starting with '#' are ignored.
type AsterismLoader struct{}

var _ sky.Loader = AsterismLoader{}

// Load implements sky.Loader.
func (AsterismLoader) Load(r io.Reader, b *sky.CatalogueBuilder) error {
	byHip := make(map[int]*sky.Star)
	for _, s := range b.Stars() {
		if _, ok := byHip[s.HipparcosID()]; !ok {
			byHip[s.HipparcosID()] = s
		}
	}

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, ",")
		stars := make([]*sky.Star, 0, len(fields))
		for _, f := range fields {
			id, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return fmt.Errorf("line %d: %w: hip %q", line, ErrMalformed, f)
			}
			s, ok := byHip[id]
			if !ok {
				return fmt.Errorf("line %d: %w: HIP %d", line, sky.ErrUnresolvedStar, id)
			}
			stars = append(stars, s)
		}

		a, err := sky.NewAsterism(stars)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := b.AddAsterism(a); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}
