package astro

import (
	"fmt"
	"math"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// Legal ranges shared by the spherical frames.
var (
	positiveLon  = mustRightOpen(0, Tau)
	symmetricLon = mustRightOpen(-math.Pi, math.Pi)
	latitude     = mustClosed(-math.Pi/2, math.Pi/2)
)

// spherical is the longitude/latitude pair underlying every frame. Frames embed
// it privately so values of different frames never mix.
type spherical struct {
	// Coordinates are not value objects; comparing them with == is a compile error.
	_   [0]func()
	lon float64
	lat float64
}

func newSpherical(frame string, lon, lat float64, lonRange RightOpenInterval) (spherical, error) {
	if !lonRange.Contains(lon) {
		return spherical{}, fmt.Errorf("%w: %s longitude %g not in %v", ErrInvalidArgument, frame, lon, lonRange)
	}
	if !latitude.Contains(lat) {
		return spherical{}, fmt.Errorf("%w: %s latitude %g not in %v", ErrInvalidArgument, frame, lat, latitude)
	}
	return spherical{lon: lon, lat: lat}, nil
}

// angularDistance is the great-circle distance between two points (haversine).
func angularDistance(a, b spherical) float64 {
	dLon := b.lon - a.lon
	dLat := b.lat - a.lat
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.lat)*math.Cos(b.lat)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * math.Asin(math.Sqrt(h))
}

// Equatorial holds right ascension in [0, 2π) and declination in [-π/2, π/2].
type Equatorial struct {
	s spherical
}

// NewEquatorial validates ra and dec (radians).
func NewEquatorial(ra, dec float64) (Equatorial, error) {
	s, err := newSpherical("equatorial", ra, dec, positiveLon)
	if err != nil {
		return Equatorial{}, err
	}
	return Equatorial{s: s}, nil
}

func (e Equatorial) RA() float64     { return e.s.lon }
func (e Equatorial) RADeg() float64  { return ToDeg(e.s.lon) }
func (e Equatorial) RAHr() float64   { return ToHr(e.s.lon) }
func (e Equatorial) Dec() float64    { return e.s.lat }
func (e Equatorial) DecDeg() float64 { return ToDeg(e.s.lat) }

// AngularDistanceTo returns the great-circle angle to other, in radians.
func (e Equatorial) AngularDistanceTo(other Equatorial) float64 {
	return angularDistance(e.s, other.s)
}

func (e Equatorial) String() string {
	return fmt.Sprintf("(α=%.1s, δ=%.1s)",
		sexa.FmtRA(unit.RA(e.s.lon)), sexa.FmtAngle(unit.Angle(e.s.lat)))
}

// Ecliptic holds ecliptic longitude in [0, 2π) and latitude in [-π/2, π/2].
type Ecliptic struct {
	s spherical
}

// NewEcliptic validates lon and lat (radians).
func NewEcliptic(lon, lat float64) (Ecliptic, error) {
	s, err := newSpherical("ecliptic", lon, lat, positiveLon)
	if err != nil {
		return Ecliptic{}, err
	}
	return Ecliptic{s: s}, nil
}

func (e Ecliptic) Lon() float64    { return e.s.lon }
func (e Ecliptic) LonDeg() float64 { return ToDeg(e.s.lon) }
func (e Ecliptic) Lat() float64    { return e.s.lat }
func (e Ecliptic) LatDeg() float64 { return ToDeg(e.s.lat) }

func (e Ecliptic) String() string {
	return fmt.Sprintf("(λ=%.4f°, β=%.4f°)", e.LonDeg(), e.LatDeg())
}

// Horizontal holds azimuth in [0, 2π) (0 = north, π/2 = east) and altitude in
// [-π/2, π/2].
type Horizontal struct {
	s spherical
}

// NewHorizontal validates az and alt (radians).
func NewHorizontal(az, alt float64) (Horizontal, error) {
	s, err := newSpherical("horizontal", az, alt, positiveLon)
	if err != nil {
		return Horizontal{}, err
	}
	return Horizontal{s: s}, nil
}

// NewHorizontalDeg validates az and alt given in degrees.
func NewHorizontalDeg(azDeg, altDeg float64) (Horizontal, error) {
	return NewHorizontal(OfDeg(azDeg), OfDeg(altDeg))
}

func (h Horizontal) Az() float64     { return h.s.lon }
func (h Horizontal) AzDeg() float64  { return ToDeg(h.s.lon) }
func (h Horizontal) Alt() float64    { return h.s.lat }
func (h Horizontal) AltDeg() float64 { return ToDeg(h.s.lat) }

// AzOctantName names the compass octant of the azimuth, building the
// intermediate directions from the four cardinal names (e.g. "N"+"E").
func (h Horizontal) AzOctantName(n, e, s, w string) string {
	names := [8]string{n, n + e, e, s + e, s, s + w, w, n + w}
	i := int(NormalizePositive(h.s.lon+math.Pi/8)/(math.Pi/4)) % 8
	return names[i]
}

// AngularDistanceTo returns the great-circle distance to other.
func (h Horizontal) AngularDistanceTo(other Horizontal) float64 {
	return angularDistance(h.s, other.s)
}

func (h Horizontal) String() string {
	return fmt.Sprintf("(az=%.4f°, alt=%.4f°)", h.AzDeg(), h.AltDeg())
}

// Geographic holds longitude in [-π, π) (east positive) and latitude in
// [-π/2, π/2].
type Geographic struct {
	s spherical
}

// NewGeographicDeg validates a location given in degrees.
func NewGeographicDeg(lonDeg, latDeg float64) (Geographic, error) {
	s, err := newSpherical("geographic", OfDeg(lonDeg), OfDeg(latDeg), symmetricLon)
	if err != nil {
		return Geographic{}, err
	}
	return Geographic{s: s}, nil
}

// IsValidLonDeg reports whether lonDeg is a legal geographic longitude.
func IsValidLonDeg(lonDeg float64) bool {
	return symmetricLon.Contains(OfDeg(lonDeg))
}

// IsValidLatDeg reports whether latDeg is a legal geographic latitude.
func IsValidLatDeg(latDeg float64) bool {
	return latitude.Contains(OfDeg(latDeg))
}

func (g Geographic) Lon() float64    { return g.s.lon }
func (g Geographic) LonDeg() float64 { return ToDeg(g.s.lon) }
func (g Geographic) Lat() float64    { return g.s.lat }
func (g Geographic) LatDeg() float64 { return ToDeg(g.s.lat) }

func (g Geographic) String() string {
	return fmt.Sprintf("(lon=%.4f°, lat=%.4f°)", g.LonDeg(), g.LatDeg())
}

// Cartesian is a point on the projection plane.
type Cartesian struct {
	_ [0]func()
	X float64
	Y float64
}

// Pt builds a Cartesian point.
func Pt(x, y float64) Cartesian {
	return Cartesian{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance to p.
func (c Cartesian) DistanceTo(p Cartesian) float64 {
	return math.Hypot(c.X-p.X, c.Y-p.Y)
}

func (c Cartesian) String() string {
	return fmt.Sprintf("(x=%.4f, y=%.4f)", c.X, c.Y)
}

// EclipticOf builds ecliptic coordinates from computed angles: lon is
// normalized into [0, 2π) and lat clipped into [-π/2, π/2]. Models use it
// for values that are in range up to rounding.
func EclipticOf(lon, lat float64) Ecliptic {
	return Ecliptic{s: spherical{lon: NormalizePositive(lon), lat: latitude.Clip(lat)}}
}
