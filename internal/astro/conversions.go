package astro

import (
	"math"
	"time"
)

// Mean obliquity coefficients in arcseconds, highest degree first.
var (
	obliquityCoeffs = []float64{0.00181, -0.0006, -46.815, 0}
	obliquityJ2000  = 23*3600 + 26*60 + 21.45 // 23°26′21.45″
	declinations    = mustRightOpen(-math.Pi, math.Pi)
)

// Obliquity returns the mean obliquity of the ecliptic at t.
func Obliquity(t time.Time) float64 {
	T := J2000.JulianCenturiesUntil(t)
	return OfArcsec(Polynomial(T, obliquityCoeffs...) + obliquityJ2000)
}

// EclipticToEquatorial converts ecliptic coordinates to equatorial ones at a
// fixed instant. It is immutable once built.
type EclipticToEquatorial struct {
	_      [0]func()
	cosEps float64
	sinEps float64
}

// NewEclipticToEquatorial builds the conversion valid at t.
func NewEclipticToEquatorial(t time.Time) *EclipticToEquatorial {
	sin, cos := math.Sincos(Obliquity(t))
	return &EclipticToEquatorial{cosEps: cos, sinEps: sin}
}

// Apply converts ecl to equatorial coordinates.
func (c *EclipticToEquatorial) Apply(ecl Ecliptic) Equatorial {
	sinLon, cosLon := math.Sincos(ecl.Lon())
	sinLat, cosLat := math.Sincos(ecl.Lat())

	ra := math.Atan2(sinLon*c.cosEps-math.Tan(ecl.Lat())*c.sinEps, cosLon)
	dec := math.Asin(sinLat*c.cosEps + cosLat*c.sinEps*sinLon)

	// Asin already lands in [-π/2, π/2]; the fold only guards rounding.
	return Equatorial{s: spherical{lon: NormalizePositive(ra), lat: declinations.Reduce(dec)}}
}

// EquatorialToHorizontal converts equatorial coordinates to horizontal ones for
// an observer at a fixed instant. It is immutable once built.
type EquatorialToHorizontal struct {
	_             [0]func()
	sinLat        float64
	cosLat        float64
	localSidereal float64
}

// NewEquatorialToHorizontal builds the conversion for an observer at where and
// instant t.
func NewEquatorialToHorizontal(t time.Time, where Geographic) *EquatorialToHorizontal {
	sin, cos := math.Sincos(where.Lat())
	return &EquatorialToHorizontal{
		sinLat:        sin,
		cosLat:        cos,
		localSidereal: SiderealLocal(t, where),
	}
}

// LocalSidereal returns the local sidereal angle the conversion was built with.
func (c *EquatorialToHorizontal) LocalSidereal() float64 { return c.localSidereal }

// Apply converts equ to horizontal coordinates.
func (c *EquatorialToHorizontal) Apply(equ Equatorial) Horizontal {
	hourAngle := NormalizePositive(c.localSidereal - equ.RA())
	sinH, cosH := math.Sincos(hourAngle)
	sinDec, cosDec := math.Sincos(equ.Dec())

	sinAlt := sinDec*c.sinLat + cosDec*c.cosLat*cosH
	alt := math.Asin(clampUnit(sinAlt))
	az := math.Atan2(-cosDec*c.cosLat*sinH, sinDec-c.sinLat*sinAlt)

	return Horizontal{s: spherical{lon: NormalizePositive(az), lat: alt}}
}

// clampUnit keeps rounding noise from pushing an asin argument outside [-1, 1].
func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
