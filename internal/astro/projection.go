package astro

import (
	"fmt"
	"math"
)

// StereographicProjection maps horizontal coordinates onto a plane tangent to
// the celestial sphere at a chosen center. It is immutable once built.
type StereographicProjection struct {
	_         [0]func()
	centerAz  float64
	centerAlt float64
	sinCenter float64
	cosCenter float64
}

// NewStereographicProjection builds a projection centered on center.
func NewStereographicProjection(center Horizontal) *StereographicProjection {
	sin, cos := math.Sincos(center.Alt())
	return &StereographicProjection{
		centerAz:  center.Az(),
		centerAlt: center.Alt(),
		sinCenter: sin,
		cosCenter: cos,
	}
}

// Center returns the horizontal coordinates mapped to the plane origin.
func (p *StereographicProjection) Center() Horizontal {
	return Horizontal{s: spherical{lon: p.centerAz, lat: p.centerAlt}}
}

// Apply projects h onto the plane. The antipode of the center maps to
// infinity.
func (p *StereographicProjection) Apply(h Horizontal) Cartesian {
	sinDAz, cosDAz := math.Sincos(h.Az() - p.centerAz)
	sinAlt, cosAlt := math.Sincos(h.Alt())

	d := 1 / (1 + sinAlt*p.sinCenter + cosAlt*p.cosCenter*cosDAz)
	return Cartesian{
		X: d * cosAlt * sinDAz,
		Y: d * (sinAlt*p.cosCenter - cosAlt*p.sinCenter*cosDAz),
	}
}

// InverseApply recovers the horizontal coordinates of a plane point.
func (p *StereographicProjection) InverseApply(c Cartesian) Horizontal {
	rho := math.Hypot(c.X, c.Y)
	if rho == 0 {
		return p.Center()
	}

	rho2 := rho * rho
	sinC := 2 * rho / (rho2 + 1)
	cosC := (1 - rho2) / (rho2 + 1)

	az := math.Atan2(c.X*sinC, rho*p.cosCenter*cosC-c.Y*p.sinCenter*sinC) + p.centerAz
	alt := math.Asin(clampUnit(cosC*p.sinCenter + c.Y*sinC*p.cosCenter/rho))

	return Horizontal{s: spherical{lon: NormalizePositive(az), lat: alt}}
}

// CircleCenterForParallel returns the center of the projected circle of the
// altitude parallel through h. The center lies on the vertical axis and
// moves to infinity when the parallel passes through the antipode of the
// projection center.
func (p *StereographicProjection) CircleCenterForParallel(h Horizontal) Cartesian {
	return Cartesian{Y: p.cosCenter / (math.Sin(h.Alt()) + p.sinCenter)}
}

// CircleRadiusForParallel returns the radius of the projected circle of the
// altitude parallel through h. The radius is infinite (possibly negative)
// when the parallel passes through the antipode of the projection center.
func (p *StereographicProjection) CircleRadiusForParallel(h Horizontal) float64 {
	return math.Cos(h.Alt()) / (math.Sin(h.Alt()) + p.sinCenter)
}

// ApplyToAngle returns the projected diameter of a disk of angular size rad
// centered on the projection center.
func (p *StereographicProjection) ApplyToAngle(rad float64) float64 {
	return 2 * math.Tan(rad/4)
}

func (p *StereographicProjection) String() string {
	return fmt.Sprintf("StereographicProjection centered at %v", p.Center())
}
