package sky

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

var (
	// ErrUnresolvedStar is returned when an asterism refers to a star that is
	// not part of the catalogue.
	ErrUnresolvedStar = errors.New("asterism star not in catalogue")
	// ErrUnknownAsterism is returned when querying a catalogue for an asterism
	// it does not contain.
	ErrUnknownAsterism = errors.New("asterism not in catalogue")
	// ErrBuilderConsumed is returned when a builder is used after Build.
	ErrBuilderConsumed = errors.New("catalogue builder already built")
)

// Loader adds the content of r to a catalogue under construction.
type Loader interface {
	Load(r io.Reader, b *CatalogueBuilder) error
}

// CatalogueBuilder accumulates stars and asterisms. It is consumed by Build.
type CatalogueBuilder struct {
	stars     []*Star
	asterisms []*Asterism
	built     bool
}

// NewCatalogueBuilder returns an empty builder.
func NewCatalogueBuilder() *CatalogueBuilder {
	return &CatalogueBuilder{}
}

// AddStar appends s to the star list.
func (b *CatalogueBuilder) AddStar(s *Star) error {
	if b.built {
		return ErrBuilderConsumed
	}
	if s == nil {
		return fmt.Errorf("%w: star", ErrRequired)
	}
	b.stars = append(b.stars, s)
	return nil
}

// AddAsterism appends a to the asterism list. Its stars are resolved at
// Build time.
func (b *CatalogueBuilder) AddAsterism(a *Asterism) error {
	if b.built {
		return ErrBuilderConsumed
	}
	if a == nil {
		return fmt.Errorf("%w: asterism", ErrRequired)
	}
	b.asterisms = append(b.asterisms, a)
	return nil
}

// Stars returns the stars added so far. The slice must not be modified.
func (b *CatalogueBuilder) Stars() []*Star { return slices.Clip(b.stars) }

// Asterisms returns the asterisms added so far. The slice must not be modified.
func (b *CatalogueBuilder) Asterisms() []*Asterism { return slices.Clip(b.asterisms) }

// LoadFrom runs loader on r against this builder.
func (b *CatalogueBuilder) LoadFrom(r io.Reader, loader Loader) error {
	if b.built {
		return ErrBuilderConsumed
	}
	return loader.Load(r, b)
}

// Build freezes the builder into a catalogue. Star order is preserved so
// positions are stable, and every asterism's star positions are computed
// once here.
func (b *CatalogueBuilder) Build() (*Catalogue, error) {
	if b.built {
		return nil, ErrBuilderConsumed
	}

	position := make(map[*Star]int, len(b.stars))
	byHip := make(map[int]*Star, len(b.stars))
	for i, s := range b.stars {
		if _, ok := position[s]; !ok {
			position[s] = i
		}
		if _, ok := byHip[s.hipparcosID]; !ok {
			byHip[s.hipparcosID] = s
		}
	}

	indices := make(map[*Asterism][]int, len(b.asterisms))
	for _, a := range b.asterisms {
		idx := make([]int, len(a.stars))
		for i, s := range a.stars {
			p, ok := position[s]
			if !ok {
				return nil, fmt.Errorf("%w: %s (HIP %d)", ErrUnresolvedStar, s.Name(), s.HipparcosID())
			}
			idx[i] = p
		}
		indices[a] = idx
	}

	b.built = true
	return &Catalogue{
		stars:     b.stars,
		asterisms: b.asterisms,
		indices:   indices,
		byHip:     byHip,
	}, nil
}

// Catalogue is an immutable set of stars and asterisms.
type Catalogue struct {
	stars     []*Star
	asterisms []*Asterism
	indices   map[*Asterism][]int
	byHip     map[int]*Star
}

// Stars returns a copy of the stars in insertion order.
func (c *Catalogue) Stars() []*Star { return slices.Clone(c.stars) }

// Asterisms returns a copy of the asterisms in insertion order.
func (c *Catalogue) Asterisms() []*Asterism { return slices.Clone(c.asterisms) }

// AsterismIndices returns the positions in Stars of the stars of a.
func (c *Catalogue) AsterismIndices(a *Asterism) ([]int, error) {
	idx, ok := c.indices[a]
	if !ok {
		return nil, ErrUnknownAsterism
	}
	return slices.Clone(idx), nil
}

// StarByHipparcos returns the first star with the given Hipparcos number.
func (c *Catalogue) StarByHipparcos(id int) (*Star, bool) {
	s, ok := c.byHip[id]
	return s, ok
}
