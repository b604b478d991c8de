package sky

import (
	"math"

	"github.com/litescript/ls-rigel/internal/astro"
)

// PlanetModel holds the orbital elements of one planet at J2010 and computes
// its geocentric position.
type PlanetModel struct {
	name           string
	period         float64 // tropical years
	lonAtEpoch     float64
	lonAtPerigee   float64
	eccentricity   float64
	semiMajorAxis  float64 // AU
	inclination    float64
	ascendingNode  float64
	angularSizeAU1 float64 // angular size seen from 1 AU
	magnitudeAU1   float64 // magnitude seen from 1 AU
}

func newPlanetModel(name string, period, lonAtEpochDeg, lonAtPerigeeDeg, eccentricity, semiMajorAxis,
	inclinationDeg, ascendingNodeDeg, angularSizeArcsec, magnitude float64) PlanetModel {
	return PlanetModel{
		name:           name,
		period:         period,
		lonAtEpoch:     astro.OfDeg(lonAtEpochDeg),
		lonAtPerigee:   astro.OfDeg(lonAtPerigeeDeg),
		eccentricity:   eccentricity,
		semiMajorAxis:  semiMajorAxis,
		inclination:    astro.OfDeg(inclinationDeg),
		ascendingNode:  astro.OfDeg(ascendingNodeDeg),
		angularSizeAU1: astro.OfArcsec(angularSizeArcsec),
		magnitudeAU1:   magnitude,
	}
}

// The eight planets.
var (
	Mercury = newPlanetModel("Mercure", 0.24085, 75.5671, 77.612, 0.205627, 0.387098, 7.0051, 48.449, 6.74, -0.42)
	Venus   = newPlanetModel("Vénus", 0.615207, 272.30044, 131.54, 0.006773, 0.723329, 3.3947, 76.769, 16.92, -4.40)
	Earth   = newPlanetModel("Terre", 0.999996, 99.556772, 103.2055, 0.016671, 0.999985, 0, 0, 0, 0)
	Mars    = newPlanetModel("Mars", 1.880765, 109.09646, 336.217, 0.093348, 1.523689, 1.8497, 49.632, 9.36, -1.52)
	Jupiter = newPlanetModel("Jupiter", 11.857911, 337.917132, 14.6633, 0.048907, 5.20278, 1.3035, 100.595, 196.74, -9.40)
	Saturn  = newPlanetModel("Saturne", 29.310579, 172.398316, 89.567, 0.053853, 9.51134, 2.4873, 113.752, 165.60, -8.88)
	Uranus  = newPlanetModel("Uranus", 84.039492, 356.135400, 172.884833, 0.046321, 19.21814, 0.773059, 73.926961, 65.80, -7.19)
	Neptune = newPlanetModel("Neptune", 165.84539, 326.895127, 23.07, 0.010483, 30.1985, 1.7673, 131.879, 62.20, -6.87)
)

// Planets returns all eight planet models in order from the Sun, Earth
// included.
func Planets() []PlanetModel {
	return []PlanetModel{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
}

// PlanetsExceptEarth returns the planets that appear in the sky.
func PlanetsExceptEarth() []PlanetModel {
	return []PlanetModel{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}
}

// Name returns the planet's name.
func (p PlanetModel) Name() string { return p.name }

// heliocentric is a planet's position around the Sun.
type heliocentric struct {
	lon       float64 // heliocentric longitude in the orbital plane
	radius    float64 // AU
	lat       float64 // heliocentric ecliptic latitude
	eclLon    float64 // heliocentric longitude projected on the ecliptic
	eclRadius float64 // radius projected on the ecliptic
}

func (p PlanetModel) heliocentric(days float64) heliocentric {
	mean := (astro.Tau/tropicalYear)*(days/p.period) + p.lonAtEpoch - p.lonAtPerigee
	trueAnomaly := mean + 2*p.eccentricity*math.Sin(mean)

	radius := p.semiMajorAxis * (1 - p.eccentricity*p.eccentricity) / (1 + p.eccentricity*math.Cos(trueAnomaly))
	lon := trueAnomaly + p.lonAtPerigee

	sinArg, cosArg := math.Sincos(lon - p.ascendingNode)
	lat := math.Asin(sinArg * math.Sin(p.inclination))

	return heliocentric{
		lon:       lon,
		radius:    radius,
		lat:       lat,
		eclLon:    math.Atan2(sinArg*math.Cos(p.inclination), cosArg) + p.ascendingNode,
		eclRadius: radius * math.Cos(lat),
	}
}

// At implements Model. Calling it on Earth yields the Sun's direction, which
// is meaningless; the Earth only serves as the observer's reference.
func (p PlanetModel) At(days float64, conv *astro.EclipticToEquatorial) *Planet {
	planet := p.heliocentric(days)
	earth := Earth.heliocentric(days)

	L, R := earth.lon, earth.radius
	l, r := planet.eclLon, planet.eclRadius

	var geoLon float64
	if p.semiMajorAxis < Earth.semiMajorAxis {
		geoLon = math.Pi + L + math.Atan2(r*math.Sin(L-l), R-r*math.Cos(L-l))
	} else {
		geoLon = l + math.Atan2(R*math.Sin(l-L), r-R*math.Cos(l-L))
	}
	geoLat := math.Atan(r * math.Tan(planet.lat) * math.Sin(geoLon-l) / (R * math.Sin(l-L)))

	distance := math.Sqrt(R*R + planet.radius*planet.radius -
		2*R*planet.radius*math.Cos(planet.lon-L)*math.Cos(planet.lat))

	phase := (1 + math.Cos(geoLon-planet.lon)) / 2
	magnitude := p.magnitudeAU1 + 5*math.Log10(planet.radius*distance/math.Sqrt(phase))

	return &Planet{object: object{
		name:        p.name,
		equ:         conv.Apply(astro.EclipticOf(geoLon, geoLat)),
		angularSize: p.angularSizeAU1 / distance,
		magnitude:   magnitude,
	}}
}
