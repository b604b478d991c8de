package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-rigel/internal/astro"
)

// Magnitudes outside this range render like its bounds.
var displayMagnitude = mustClosed(-2, 5)

func mustClosed(low, high float64) astro.ClosedInterval {
	iv, err := astro.NewClosedInterval(low, high)
	if err != nil {
		panic(err)
	}
	return iv
}

// blackBodyRGB approximates the color of a black body at kelvin
// (Tanner Helland's curve fit, valid from 1000 K to 40000 K).
func blackBodyRGB(kelvin int) (r, g, b uint8) {
	t := float64(kelvin) / 100

	var rf, gf, bf float64
	if t <= 66 {
		rf = 255
		gf = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		rf = 329.698727446 * math.Pow(t-60, -0.1332047592)
		gf = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}
	switch {
	case t >= 66:
		bf = 255
	case t <= 19:
		bf = 0
	default:
		bf = 138.5177312231*math.Log(t-10) - 305.0447927307
	}
	return clampByte(rf), clampByte(gf), clampByte(bf)
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// starColor tints a star by its temperature and dims it with magnitude.
func starColor(kelvin int, magnitude float64) lipgloss.Color {
	r, g, b := blackBodyRGB(kelvin)
	m := displayMagnitude.Clip(magnitude)
	f := 0.45 + 0.55*(displayMagnitude.High()-m)/(displayMagnitude.High()-displayMagnitude.Low())
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X",
		uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f)))
}

// Colors for the solar-system bodies, keyed by name.
var bodyColors = map[string]lipgloss.Color{
	"Soleil":  "#FFD75F",
	"Lune":    "#E4E4E4",
	"Mercure": "#B2B2B2",
	"Vénus":   "#FFFFAF",
	"Mars":    "#FF5F5F",
	"Jupiter": "#FFAF87",
	"Saturne": "#D7D787",
	"Uranus":  "#87FFFF",
	"Neptune": "#5F87FF",
}

func bodyColor(name string) lipgloss.Color {
	if c, ok := bodyColors[name]; ok {
		return c
	}
	return colorLabel
}
