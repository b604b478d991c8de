package sky

import (
	"fmt"
	"math"

	"github.com/litescript/ls-rigel/internal/astro"
)

const (
	sunName      = "Soleil"
	sunMagnitude = -26.7
	moonName     = "Lune"
)

var (
	colorIndexRange = mustClosed(-0.5, 5.5)
	phaseRange      = mustClosed(0, 1)
)

func mustClosed(low, high float64) astro.ClosedInterval {
	iv, err := astro.NewClosedInterval(low, high)
	if err != nil {
		panic(err)
	}
	return iv
}

// Star is a catalogued star. Stars are point sources: their angular size is
// always zero.
type Star struct {
	object
	hipparcosID int
	colorIndex  float64
}

// NewStar validates and builds a star. hipparcosID must be non-negative and
// colorIndex (B-V) must lie in [-0.5, 5.5].
func NewStar(hipparcosID int, name string, equ astro.Equatorial, magnitude, colorIndex float64) (*Star, error) {
	if hipparcosID < 0 {
		return nil, fmt.Errorf("%w: hipparcos id %d", ErrInvalidArgument, hipparcosID)
	}
	if !colorIndexRange.Contains(colorIndex) {
		return nil, fmt.Errorf("%w: color index %g not in %v", ErrInvalidArgument, colorIndex, colorIndexRange)
	}
	o, err := newObject(name, equ, 0, magnitude)
	if err != nil {
		return nil, err
	}
	return &Star{object: o, hipparcosID: hipparcosID, colorIndex: colorIndex}, nil
}

func (s *Star) HipparcosID() int    { return s.hipparcosID }
func (s *Star) ColorIndex() float64 { return s.colorIndex }

// ColorTemperature returns the approximate effective temperature in kelvins,
// derived from the B-V color index with Ballesteros' formula.
func (s *Star) ColorTemperature() int {
	c := 0.92 * s.colorIndex
	return int(4600 * (1/(c+1.7) + 1/(c+0.62)))
}

// Planet is a planet of the solar system other than the Earth.
type Planet struct {
	object
}

// NewPlanet validates and builds a planet.
func NewPlanet(name string, equ astro.Equatorial, angularSize, magnitude float64) (*Planet, error) {
	o, err := newObject(name, equ, angularSize, magnitude)
	if err != nil {
		return nil, err
	}
	return &Planet{object: o}, nil
}

// Sun is the Sun as seen from the Earth.
type Sun struct {
	object
	ecl         astro.Ecliptic
	meanAnomaly float64
}

// NewSun validates and builds the Sun.
func NewSun(ecl astro.Ecliptic, equ astro.Equatorial, angularSize, meanAnomaly float64) (*Sun, error) {
	o, err := newObject(sunName, equ, angularSize, sunMagnitude)
	if err != nil {
		return nil, err
	}
	return &Sun{object: o, ecl: ecl, meanAnomaly: meanAnomaly}, nil
}

func (s *Sun) Ecliptic() astro.Ecliptic { return s.ecl }
func (s *Sun) MeanAnomaly() float64     { return s.meanAnomaly }

// Moon is the Moon as seen from the Earth.
type Moon struct {
	object
	phase float64
}

// NewMoon validates and builds the Moon. phase is the illuminated fraction in
// [0, 1].
func NewMoon(equ astro.Equatorial, angularSize, magnitude, phase float64) (*Moon, error) {
	if !phaseRange.Contains(phase) {
		return nil, fmt.Errorf("%w: moon phase %g not in %v", ErrInvalidArgument, phase, phaseRange)
	}
	o, err := newObject(moonName, equ, angularSize, magnitude)
	if err != nil {
		return nil, err
	}
	return &Moon{object: o, phase: phase}, nil
}

func (m *Moon) Phase() float64 { return m.phase }

// Info returns the name followed by the illuminated percentage, e.g.
// "Lune (22.5%)".
func (m *Moon) Info() string {
	return fmt.Sprintf("%s (%.1f%%)", m.name, m.phase*100)
}

func (m *Moon) String() string { return m.Info() }

// Asterism is a non-empty ordered group of catalogue stars. It holds the
// stars themselves, not copies.
type Asterism struct {
	stars []*Star
}

// NewAsterism builds an asterism from at least one star.
func NewAsterism(stars []*Star) (*Asterism, error) {
	if len(stars) == 0 {
		return nil, fmt.Errorf("%w: asterism without stars", ErrInvalidArgument)
	}
	for i, s := range stars {
		if s == nil {
			return nil, fmt.Errorf("%w: asterism star %d", ErrRequired, i)
		}
	}
	return &Asterism{stars: append([]*Star(nil), stars...)}, nil
}

// Stars returns the member stars in order.
func (a *Asterism) Stars() []*Star {
	return append([]*Star(nil), a.stars...)
}

// Len returns the number of member stars.
func (a *Asterism) Len() int { return len(a.stars) }

var (
	_ Object = (*Star)(nil)
	_ Object = (*Planet)(nil)
	_ Object = (*Sun)(nil)
	_ Object = (*Moon)(nil)
)

// clipPhase guards the computed phase against rounding just outside [0, 1].
func clipPhase(f float64) float64 {
	return phaseRange.Clip(math.Abs(f))
}
