package sky

import (
	"errors"
	"math"
	"time"

	"github.com/litescript/ls-rigel/internal/astro"
)

// ErrTooFewSamples is returned by RiseSet when span holds fewer than three
// samples.
var ErrTooFewSamples = errors.New("at least three samples are needed")

// Window is the rise-transit-set cycle of a body within a sampled span.
type Window struct {
	Rise        time.Time // first rise; zero if none within the span
	Transit     time.Time // highest point within the span
	Set         time.Time // first set; zero if none within the span
	MaxAltitude float64   // radians, at Transit
	AlwaysUp    bool      // above the horizon at every sample
	NeverUp     bool      // below the horizon at every sample
}

type altitudeSample struct {
	t   time.Time
	alt float64
}

// AltitudeAt returns the altitude, seen from where, of the body m places at t.
func AltitudeAt[T Object](m Model[T], where astro.Geographic, t time.Time) float64 {
	o := m.At(astro.J2010.DaysUntil(t), astro.NewEclipticToEquatorial(t))
	return astro.NewEquatorialToHorizontal(t, where).Apply(o.Equatorial()).Alt()
}

// RiseSet samples the altitude of the body m places every step over
// [start, start+span]. Rise and Set are the first upward and downward horizon
// crossings within the span, so Set precedes Rise when the body starts up.
// Crossings are interpolated linearly, the transit by a parabola through the
// three samples around the highest one.
func RiseSet[T Object](m Model[T], where astro.Geographic, start time.Time, span, step time.Duration) (Window, error) {
	if step <= 0 || span < 2*step {
		return Window{}, ErrTooFewSamples
	}

	samples := make([]altitudeSample, int(span/step)+1)
	highest, lowest := 0, math.Inf(1)
	for i := range samples {
		t := start.Add(time.Duration(i) * step)
		samples[i] = altitudeSample{t: t, alt: AltitudeAt(m, where, t)}
		if samples[i].alt > samples[highest].alt {
			highest = i
		}
		lowest = math.Min(lowest, samples[i].alt)
	}

	var w Window
	w.Transit, w.MaxAltitude = culmination(samples, highest)
	switch {
	case lowest > 0:
		w.AlwaysUp = true
		return w, nil
	case samples[highest].alt <= 0:
		w.NeverUp = true
		return w, nil
	}

	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		switch {
		case w.Rise.IsZero() && prev.alt <= 0 && cur.alt > 0:
			w.Rise = crossing(prev, cur)
		case w.Set.IsZero() && prev.alt > 0 && cur.alt <= 0:
			w.Set = crossing(prev, cur)
		}
	}
	return w, nil
}

// crossing interpolates the instant between a and b where the altitude is 0.
func crossing(a, b altitudeSample) time.Time {
	if math.Abs(b.alt-a.alt) < 1e-12 {
		return a.t
	}
	f := a.alt / (a.alt - b.alt)
	f = math.Max(0, math.Min(1, f))
	return a.t.Add(time.Duration(float64(b.t.Sub(a.t)) * f))
}

// culmination refines the highest sample with the parabola through it and
// its neighbours. At either end of the span the sample itself is returned.
func culmination(samples []altitudeSample, i int) (time.Time, float64) {
	if i == 0 || i == len(samples)-1 {
		return samples[i].t, samples[i].alt
	}

	// y = a·x² + b·x + c with x = -1, 0, +1 at the three samples
	y0, y1, y2 := samples[i-1].alt, samples[i].alt, samples[i+1].alt
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2
	if a >= 0 {
		return samples[i].t, samples[i].alt
	}

	x := math.Max(-1, math.Min(1, -b/(2*a)))
	step := samples[i].t.Sub(samples[i-1].t)
	return samples[i].t.Add(time.Duration(float64(step) * x)), a*x*x + b*x + c
}

// Elongation is the angle between o and the Sun, in radians.
func Elongation(o Object, sun *Sun) float64 {
	return o.Equatorial().AngularDistanceTo(sun.Equatorial())
}

// Glare grades how much the Sun washes a body out.
type Glare int

const (
	GlareNone     Glare = iota // 20° or more from the Sun
	GlareTwilight              // 10° to 20°
	GlareHidden                // closer than 10°
)

var (
	hiddenElongation   = astro.OfDeg(10)
	twilightElongation = astro.OfDeg(20)
)

// GlareAt returns the glare for an elongation in radians.
func GlareAt(elongation float64) Glare {
	switch {
	case elongation < hiddenElongation:
		return GlareHidden
	case elongation < twilightElongation:
		return GlareTwilight
	default:
		return GlareNone
	}
}

func (g Glare) String() string {
	switch g {
	case GlareNone:
		return "clear"
	case GlareTwilight:
		return "twilight"
	case GlareHidden:
		return "hidden"
	default:
		return "unknown"
	}
}
