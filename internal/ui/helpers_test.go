package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-rigel/internal/astro"
	"github.com/litescript/ls-rigel/internal/catalog"
	"github.com/litescript/ls-rigel/internal/state"
)

var noon = time.Date(2020, time.June, 21, 12, 0, 0, 0, time.UTC)

// testManager returns a manager over the builtin catalogue, seen from
// Lausanne at a fixed time, with one snapshot built.
func testManager(t *testing.T) *state.Manager {
	t.Helper()
	cat, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	where, err := astro.NewGeographicDeg(6.57, 46.52)
	if err != nil {
		t.Fatal(err)
	}
	center, err := astro.NewHorizontalDeg(180, 45)
	if err != nil {
		t.Fatal(err)
	}
	mgr, err := state.NewManager(state.Config{
		Catalogue:       cat,
		Where:           where,
		Center:          center,
		RefreshInterval: time.Second,
		Now:             func() time.Time { return noon },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := mgr.Update(); err != nil {
		t.Fatal(err)
	}
	return mgr
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
