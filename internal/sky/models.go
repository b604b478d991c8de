package sky

import (
	"math"

	"github.com/litescript/ls-rigel/internal/astro"
)

// Model places a body on the sky for a given time. Implementations are
// stateless: the same inputs always produce the same body.
type Model[T Object] interface {
	// At computes the body daysSinceJ2010 days after the J2010 epoch, using
	// conv (built for the same instant) to obtain equatorial coordinates.
	At(daysSinceJ2010 float64, conv *astro.EclipticToEquatorial) T
}

// Days in a tropical year.
const tropicalYear = 365.242191

var (
	_ Model[*Sun]    = SunModel{}
	_ Model[*Moon]   = MoonModel{}
	_ Model[*Planet] = PlanetModel{}
)

// Solar orbit at J2010.
var (
	sunLonAtEpoch    = astro.OfDeg(279.557208)
	sunLonAtPerigee  = astro.OfDeg(283.112438)
	sunEccentricity  = 0.016705
	sunAngularSizeAt = astro.OfDeg(0.533128)
)

// SunModel computes the apparent position of the Sun.
type SunModel struct{}

// meanAnomalyAndLongitude returns the Sun's mean anomaly, true anomaly and
// ecliptic longitude at days after J2010.
func (SunModel) meanAnomalyAndLongitude(days float64) (mean, trueAnomaly, lon float64) {
	mean = (astro.Tau/tropicalYear)*days + sunLonAtEpoch - sunLonAtPerigee
	trueAnomaly = mean + 2*sunEccentricity*math.Sin(mean)
	lon = trueAnomaly + sunLonAtPerigee
	return mean, trueAnomaly, lon
}

// At implements Model.
func (m SunModel) At(days float64, conv *astro.EclipticToEquatorial) *Sun {
	mean, trueAnomaly, lon := m.meanAnomalyAndLongitude(days)

	ecl := astro.EclipticOf(lon, 0)
	size := sunAngularSizeAt * (1 + sunEccentricity*math.Cos(trueAnomaly)) / (1 - sunEccentricity*sunEccentricity)

	return &Sun{
		object: object{
			name:        sunName,
			equ:         conv.Apply(ecl),
			angularSize: size,
			magnitude:   sunMagnitude,
		},
		ecl:         ecl,
		meanAnomaly: astro.NormalizePositive(mean),
	}
}

// Lunar orbit at J2010.
var (
	moonMeanLonAtEpoch   = astro.OfDeg(91.929336)
	moonPerigeeAtEpoch   = astro.OfDeg(130.143076)
	moonNodeAtEpoch      = astro.OfDeg(291.682547)
	moonInclination      = astro.OfDeg(5.145396)
	moonEccentricity     = 0.0549
	moonAngularSizeAt    = astro.OfDeg(0.5181)
	moonMeanLonRate      = astro.OfDeg(13.1763966)
	moonAnomalyLag       = astro.OfDeg(0.1114041)
	moonNodeRate         = astro.OfDeg(0.0529539)
	moonEvection         = astro.OfDeg(1.2739)
	moonAnnualEquation   = astro.OfDeg(0.1858)
	moonThirdCorrection  = astro.OfDeg(0.37)
	moonEquationCenter   = astro.OfDeg(6.2886)
	moonFourthCorrection = astro.OfDeg(0.214)
	moonVariation        = astro.OfDeg(0.6583)
	moonNodeCorrection   = astro.OfDeg(0.16)
)

// MoonModel computes the apparent position of the Moon. It needs the Sun's
// mean anomaly and ecliptic longitude at the same time.
type MoonModel struct{}

// At implements Model.
func (m MoonModel) At(days float64, conv *astro.EclipticToEquatorial) *Moon {
	ecl, angularSize, phase := m.orbit(days)
	return &Moon{
		object: object{
			name:        moonName,
			equ:         conv.Apply(ecl),
			angularSize: angularSize,
		},
		phase: clipPhase(phase),
	}
}

// orbit returns the Moon's geocentric ecliptic position, angular size and
// illuminated fraction at days after J2010.
func (MoonModel) orbit(days float64) (ecl astro.Ecliptic, angularSize, phase float64) {
	sunMean, _, sunLon := SunModel{}.meanAnomalyAndLongitude(days)
	sinSunMean := math.Sin(sunMean)

	meanLon := moonMeanLonRate*days + moonMeanLonAtEpoch
	meanAnomaly := meanLon - moonAnomalyLag*days - moonPerigeeAtEpoch

	evection := moonEvection * math.Sin(2*(meanLon-sunLon)-meanAnomaly)
	annual := moonAnnualEquation * sinSunMean
	third := moonThirdCorrection * sinSunMean

	correctedAnomaly := meanAnomaly + evection - annual - third
	center := moonEquationCenter * math.Sin(correctedAnomaly)
	fourth := moonFourthCorrection * math.Sin(2*correctedAnomaly)

	correctedLon := meanLon + evection + center - annual + fourth
	variation := moonVariation * math.Sin(2*(correctedLon-sunLon))
	trueLon := correctedLon + variation

	node := moonNodeAtEpoch - moonNodeRate*days
	correctedNode := node - moonNodeCorrection*sinSunMean

	sinArg, cosArg := math.Sincos(trueLon - correctedNode)
	eclLon := math.Atan2(sinArg*math.Cos(moonInclination), cosArg) + correctedNode
	eclLat := math.Asin(sinArg * math.Sin(moonInclination))

	phase = (1 - math.Cos(trueLon-sunLon)) / 2
	distance := (1 - moonEccentricity*moonEccentricity) / (1 + moonEccentricity*math.Cos(correctedAnomaly+center))

	return astro.EclipticOf(eclLon, eclLat), moonAngularSizeAt / distance, phase
}
