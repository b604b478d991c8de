// Package sky models the bodies visible in the sky, the closed-form models that
// place them at a given time, the star catalogue, and the observed-sky
// snapshot that ties them to an observer.
package sky

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-rigel/internal/astro"
)

// Errors returned by constructors in this package.
var (
	ErrRequired        = errors.New("required value missing")
	ErrInvalidArgument = astro.ErrInvalidArgument
)

// Object is a body that can be placed on the sky.
type Object interface {
	Name() string
	Equatorial() astro.Equatorial
	AngularSize() float64
	Magnitude() float64
	// Info is a short human-readable description.
	Info() string
}

// object holds the state shared by every body.
type object struct {
	name        string
	equ         astro.Equatorial
	angularSize float64
	magnitude   float64
}

func newObject(name string, equ astro.Equatorial, angularSize, magnitude float64) (object, error) {
	if name == "" {
		return object{}, fmt.Errorf("%w: object name", ErrRequired)
	}
	if !(angularSize >= 0) {
		return object{}, fmt.Errorf("%w: angular size %g of %s", ErrInvalidArgument, angularSize, name)
	}
	return object{name: name, equ: equ, angularSize: angularSize, magnitude: magnitude}, nil
}

func (o *object) Name() string                 { return o.name }
func (o *object) Equatorial() astro.Equatorial { return o.equ }
func (o *object) AngularSize() float64         { return o.angularSize }
func (o *object) Magnitude() float64           { return o.magnitude }
func (o *object) Info() string                 { return o.name }
func (o *object) String() string               { return o.Info() }
