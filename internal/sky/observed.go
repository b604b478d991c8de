package sky

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/litescript/ls-rigel/internal/astro"
)

// ObservedSky is the sky seen by one observer at one instant through one
// projection. It is built fresh for every query and never changes.
type ObservedSky struct {
	when         time.Time
	where        astro.Geographic
	projection   *astro.StereographicProjection
	catalogue    *Catalogue
	toHorizontal *astro.EquatorialToHorizontal

	sun     *Sun
	moon    *Moon
	planets []*Planet

	sunPos    astro.Cartesian
	moonPos   astro.Cartesian
	planetPos []float64
	starPos   []float64
}

// NewObservedSky computes the positions of the Sun, the Moon, the planets
// and the catalogue stars at when, seen from where, projected with projection.
func NewObservedSky(when time.Time, where astro.Geographic, projection *astro.StereographicProjection, catalogue *Catalogue) (*ObservedSky, error) {
	switch {
	case when.IsZero():
		return nil, fmt.Errorf("%w: observation time", ErrRequired)
	case projection == nil:
		return nil, fmt.Errorf("%w: projection", ErrRequired)
	case catalogue == nil:
		return nil, fmt.Errorf("%w: catalogue", ErrRequired)
	}

	days := astro.J2010.DaysUntil(when)
	toEquatorial := astro.NewEclipticToEquatorial(when)

	s := &ObservedSky{
		when:         when,
		where:        where,
		projection:   projection,
		catalogue:    catalogue,
		toHorizontal: astro.NewEquatorialToHorizontal(when, where),
		sun:          SunModel{}.At(days, toEquatorial),
		moon:         MoonModel{}.At(days, toEquatorial),
	}

	models := PlanetsExceptEarth()
	s.planets = make([]*Planet, len(models))
	for i, m := range models {
		s.planets[i] = m.At(days, toEquatorial)
	}

	s.sunPos = s.Project(s.sun)
	s.moonPos = s.Project(s.moon)
	s.planetPos = flatten(s.planets, s.Project)
	s.starPos = flatten(catalogue.stars, s.Project)
	return s, nil
}

func flatten[T Object](objects []T, project func(Object) astro.Cartesian) []float64 {
	out := make([]float64, 0, 2*len(objects))
	for _, o := range objects {
		p := project(o)
		out = append(out, p.X, p.Y)
	}
	return out
}

func (s *ObservedSky) Time() time.Time                            { return s.when }
func (s *ObservedSky) Where() astro.Geographic                    { return s.where }
func (s *ObservedSky) Projection() *astro.StereographicProjection { return s.projection }
func (s *ObservedSky) Sun() *Sun                                  { return s.sun }
func (s *ObservedSky) Moon() *Moon                                { return s.moon }

// Planets returns the seven planets other than the Earth, from Mercury out.
func (s *ObservedSky) Planets() []*Planet { return append([]*Planet(nil), s.planets...) }

// Stars returns the catalogue's stars. The slice must not be modified.
func (s *ObservedSky) Stars() []*Star { return slices.Clip(s.catalogue.stars) }

// Asterisms returns the catalogue's asterisms.
func (s *ObservedSky) Asterisms() []*Asterism { return s.catalogue.Asterisms() }

// AsterismIndices returns the positions in Stars of the stars of a.
func (s *ObservedSky) AsterismIndices(a *Asterism) ([]int, error) {
	return s.catalogue.AsterismIndices(a)
}

// SunPosition returns the projected position of the Sun.
func (s *ObservedSky) SunPosition() astro.Cartesian { return s.sunPos }

// MoonPosition returns the projected position of the Moon.
func (s *ObservedSky) MoonPosition() astro.Cartesian { return s.moonPos }

// PlanetPositions returns x0, y0, x1, y1, … for the planets, in Planets order.
func (s *ObservedSky) PlanetPositions() []float64 { return append([]float64(nil), s.planetPos...) }

// StarPositions returns x0, y0, x1, y1, … for the stars, in Stars order.
func (s *ObservedSky) StarPositions() []float64 { return append([]float64(nil), s.starPos...) }

// Horizontal returns the horizontal coordinates of o for this observer.
func (s *ObservedSky) Horizontal(o Object) astro.Horizontal {
	return s.toHorizontal.Apply(o.Equatorial())
}

// Project returns the position of o on the projection plane.
func (s *ObservedSky) Project(o Object) astro.Cartesian {
	return s.projection.Apply(s.Horizontal(o))
}

// ObjectClosestTo returns the body whose projected position is nearest to p,
// provided it lies within maxDistance. Equal distances favour the Sun, then
// the Moon, then planets, then stars, each group in its own order.
func (s *ObservedSky) ObjectClosestTo(p astro.Cartesian, maxDistance float64) (Object, bool) {
	var best Object
	bestDist := math.Inf(1)

	consider := func(o Object, x, y float64) {
		d := math.Hypot(x-p.X, y-p.Y)
		if d <= maxDistance && d < bestDist {
			best, bestDist = o, d
		}
	}

	consider(s.sun, s.sunPos.X, s.sunPos.Y)
	consider(s.moon, s.moonPos.X, s.moonPos.Y)
	for i, pl := range s.planets {
		consider(pl, s.planetPos[2*i], s.planetPos[2*i+1])
	}
	for i, st := range s.catalogue.stars {
		consider(st, s.starPos[2*i], s.starPos[2*i+1])
	}

	return best, best != nil
}
