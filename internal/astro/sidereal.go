package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// SiderealGreenwich returns Greenwich sidereal time at t as an angle in
// [0, 2π). It uses the low-order polynomial in Julian centuries at 0h UT,
// advanced by the sidereal rate over the hours elapsed since midnight.
func SiderealGreenwich(t time.Time) float64 {
	utc := t.UTC()
	y, m, d := utc.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	T := J2000.JulianCenturiesUntil(midnight)
	hours := utc.Sub(midnight).Hours()

	s0 := Polynomial(T, 0.000025862, 2400.051336, 6.697374558)
	s1 := 1.002737909 * hours
	return NormalizePositive(OfHr(s0 + s1))
}

// SiderealLocal returns local sidereal time at t for an observer at where.
func SiderealLocal(t time.Time, where Geographic) float64 {
	return NormalizePositive(SiderealGreenwich(t) + where.Lon())
}

// GreenwichMeanSidereal returns the IAU 1982 mean sidereal time at Greenwich
// as an angle in [0, 2π).
func GreenwichMeanSidereal(t time.Time) float64 {
	return NormalizePositive(sidereal.Mean(julian.TimeToJD(t)).Rad())
}
