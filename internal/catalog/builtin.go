package catalog

import (
	"fmt"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/sky"
)

// brightStar is a row of the built-in catalogue. Positions are J2000 degrees.
type brightStar struct {
	hip    int
	name   string
	raDeg  float64
	decDeg float64
	mag    float64
	ci     float64
}

// brightStars lists the brightest stars plus those needed by the built-in
// asterisms, brightest first.
var brightStars = []brightStar{
	{32349, "Sirius", 101.287, -16.716, -1.44, 0.009},
	{30438, "Canopus", 95.988, -52.696, -0.62, 0.164},
	{69673, "Arcturus", 213.915, 19.182, -0.05, 1.239},
	{91262, "Vega", 279.235, 38.784, 0.03, -0.001},
	{24608, "Capella", 79.172, 45.998, 0.08, 0.795},
	{24436, "Rigel", 78.634, -8.202, 0.18, -0.03},
	{37279, "Procyon", 114.826, 5.225, 0.40, 0.432},
	{7588, "Achernar", 24.429, -57.237, 0.45, -0.158},
	{27989, "Betelgeuse", 88.793, 7.407, 0.45, 1.5},
	{68702, "Hadar", 210.956, -60.373, 0.61, -0.231},
	{97649, "Altair", 297.696, 8.868, 0.76, 0.221},
	{60718, "Acrux", 186.650, -63.099, 0.77, -0.243},
	{21421, "Aldebaran", 68.980, 16.509, 0.87, 1.538},
	{80763, "Antares", 247.352, -26.432, 1.06, 1.865},
	{65474, "Spica", 201.298, -11.161, 0.98, -0.235},
	{37826, "Pollux", 116.329, 28.026, 1.16, 0.991},
	{113368, "Fomalhaut", 344.413, -29.622, 1.17, 0.145},
	{102098, "Deneb", 310.358, 45.280, 1.25, 0.092},
	{62434, "Mimosa", 191.930, -59.689, 1.25, -0.238},
	{49669, "Regulus", 152.093, 11.967, 1.36, -0.087},
	{33579, "Adhara", 104.656, -28.972, 1.50, -0.211},
	{36850, "Castor", 113.650, 31.889, 1.58, 0.034},
	{25336, "Bellatrix", 81.283, 6.350, 1.64, -0.224},
	{26311, "Alnilam", 84.053, -1.202, 1.69, -0.184},
	{26727, "Alnitak", 85.190, -1.943, 1.74, -0.199},
	{62956, "Alioth", 193.507, 55.960, 1.76, -0.022},
	{54061, "Dubhe", 165.932, 61.751, 1.81, 1.061},
	{67301, "Alkaid", 206.885, 49.313, 1.85, -0.099},
	{11767, "Polaris", 37.954, 89.264, 1.97, 0.636},
	{65378, "Mizar", 200.981, 54.925, 2.23, 0.057},
	{27366, "Saiph", 86.939, -9.670, 2.07, -0.168},
	{25930, "Mintaka", 83.002, -0.299, 2.25, -0.175},
	{53910, "Merak", 165.460, 56.382, 2.34, -0.012},
	{58001, "Phecda", 178.458, 53.695, 2.41, 0.044},
	{59774, "Megrez", 183.857, 57.033, 3.32, 0.077},
}

// brightAsterisms are the built-in asterisms, as Hipparcos numbers.
var brightAsterisms = [][]int{
	// Orion
	{27989, 25336, 25930, 26311, 26727, 27366, 24436, 25930},
	// Big Dipper
	{54061, 53910, 58001, 59774, 62956, 65378, 67301},
	// Summer Triangle
	{91262, 102098, 97649, 91262},
}

// AddBuiltin adds the built-in stars and asterisms to b.
func AddBuiltin(b *sky.CatalogueBuilder) error {
	byHip := make(map[int]*sky.Star, len(brightStars))
	for _, r := range brightStars {
		pos, err := astro.NewEquatorial(astro.OfDeg(r.raDeg), astro.OfDeg(r.decDeg))
		if err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
		s, err := sky.NewStar(r.hip, r.name, pos, r.mag, r.ci)
		if err != nil {
			return err
		}
		if err := b.AddStar(s); err != nil {
			return err
		}
		byHip[r.hip] = s
	}

	for _, ids := range brightAsterisms {
		stars := make([]*sky.Star, len(ids))
		for i, id := range ids {
			stars[i] = byHip[id]
		}
		a, err := sky.NewAsterism(stars)
		if err != nil {
			return err
		}
		if err := b.AddAsterism(a); err != nil {
			return err
		}
	}
	return nil
}

// Builtin returns a catalogue of the built-in stars and asterisms.
func Builtin() (*sky.Catalogue, error) {
	b := sky.NewCatalogueBuilder()
	if err := AddBuiltin(b); err != nil {
		return nil, err
	}
	return b.Build()
}
