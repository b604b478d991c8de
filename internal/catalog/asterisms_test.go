package catalog

import (
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/litescript/ls-rigel/internal/sky"
)

func TestAsterismLoader_Load(t *testing.T) {
	b := loadSample(t)
	f, err := os.Open("testdata/asterisms_sample.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := b.LoadFrom(f, AsterismLoader{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	asterisms := c.Asterisms()
	if len(asterisms) != 2 {
		t.Fatalf("loaded %d asterisms, want 2", len(asterisms))
	}

	// Star order in the sample file: Sol, HIP 1, Rigel, Bellatrix, Eta Ori, Betelgeuse.
	tests := []struct {
		names []string
		idx   []int
	}{
		{[]string{"Betelgeuse", "Bellatrix", "Rigel"}, []int{5, 3, 2}},
		{[]string{"Eta Ori", "Rigel"}, []int{4, 2}},
	}
	for i, tt := range tests {
		var names []string
		for _, s := range asterisms[i].Stars() {
			names = append(names, s.Name())
		}
		if !slices.Equal(names, tt.names) {
			t.Errorf("asterism %d stars = %v, want %v", i, names, tt.names)
		}
		idx, err := c.AsterismIndices(asterisms[i])
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(idx, tt.idx) {
			t.Errorf("asterism %d indices = %v, want %v", i, idx, tt.idx)
		}
	}
}

func TestAsterismLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown star", "24436,99999\n", sky.ErrUnresolvedStar},
		{"not a number", "24436,Rigel\n", ErrMalformed},
		{"empty field", "24436,,25336\n", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := loadSample(t)
			err := b.LoadFrom(strings.NewReader(tt.input), AsterismLoader{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
