package dynamo

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Scheme selects the integration method of a body.
type Scheme string

const (
	ExplicitEuler   Scheme = "explicit"
	SymplecticEuler Scheme = "symplectic"
	Verlet          Scheme = "verlet"
)

var schemeAliases = map[string]Scheme{
	"explicit":         ExplicitEuler,
	"explicit_euler":   ExplicitEuler,
	"euler":            ExplicitEuler,
	"1":                ExplicitEuler,
	"symplectic":       SymplecticEuler,
	"symplectic_euler": SymplecticEuler,
	"2":                SymplecticEuler,
	"verlet":           Verlet,
	"3":                Verlet,
}

// ParseScheme accepts scheme names case-insensitively, plus the numeric
// method codes 1 (explicit), 2 (symplectic) and 3 (verlet).
func ParseScheme(s string) (Scheme, error) {
	if sc, ok := schemeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return sc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

func (s Scheme) Valid() bool {
	switch s {
	case ExplicitEuler, SymplecticEuler, Verlet:
		return true
	}
	return false
}

// CoordMode selects the frame node positions live in.
type CoordMode string

const (
	// Global nodes live in world space; output vertices are mapped back to the mesh frame.
	Global CoordMode = "global"
	// Local nodes live in mesh space and are output as-is.
	Local CoordMode = "local"
)

func ParseCoordMode(s string) (CoordMode, error) {
	switch m := CoordMode(strings.ToLower(strings.TrimSpace(s))); m {
	case Global, Local:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCoordMode, s)
}

func (m CoordMode) Valid() bool {
	return m == Global || m == Local
}

type Wind struct {
	Direction mgl64.Vec3 `yaml:"direction" json:"direction"`
	Strength  float64    `yaml:"strength" json:"strength"`
	Random    float64    `yaml:"random" json:"random"`
}

// Params is the full physical parameter set of a body.
type Params struct {
	Gravity mgl64.Vec3 `yaml:"gravity" json:"gravity"`
	Dt      float64    `yaml:"dt" json:"dt"`

	// Stiffness drives structural springs, BendStiffness bending springs.
	Stiffness     float64 `yaml:"stiffness" json:"stiffness"`
	BendStiffness float64 `yaml:"bend_stiffness" json:"bend_stiffness"`

	DRotation    float64 `yaml:"d_rotation" json:"d_rotation"`
	DDeformation float64 `yaml:"d_deformation" json:"d_deformation"`
	DAbsolute    float64 `yaml:"d_absolute" json:"d_absolute"`

	// Mass is per node for chains and cloth. Volumetric bodies use Density.
	Mass    float64 `yaml:"mass" json:"mass"`
	Density float64 `yaml:"density" json:"density"`

	Wind   Wind   `yaml:"wind" json:"wind"`
	Scheme Scheme `yaml:"scheme" json:"scheme"`
}

func DefaultParams() Params {
	return Params{
		Gravity:       mgl64.Vec3{0, -9.8, 0},
		Dt:            0.01,
		Stiffness:     2000,
		BendStiffness: 850,
		DRotation:     0.8,
		DDeformation:  0.8,
		DAbsolute:     0.01,
		Mass:          0.95,
		Density:       0.2,
		Wind: Wind{
			Direction: mgl64.Vec3{-0.5, 0, 0},
			Strength:  60,
			Random:    10,
		},
		Scheme: SymplecticEuler,
	}
}

// Validate checks numeric bounds. The scheme is checked when the integrator
// is built so an unknown selector degrades to a no-op step instead.
func (p Params) Validate() error {
	switch {
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, p.Dt)
	case p.Mass < 0:
		return fmt.Errorf("%w: mass must be non-negative, got %g", ErrParameterBounds, p.Mass)
	case p.Density < 0:
		return fmt.Errorf("%w: density must be non-negative, got %g", ErrParameterBounds, p.Density)
	case p.Stiffness < 0 || p.BendStiffness < 0:
		return fmt.Errorf("%w: stiffness must be non-negative", ErrParameterBounds)
	case p.DRotation < 0 || p.DDeformation < 0 || p.DAbsolute < 0:
		return fmt.Errorf("%w: damping must be non-negative", ErrParameterBounds)
	case p.Wind.Random < 0:
		return fmt.Errorf("%w: wind random must be non-negative, got %g", ErrParameterBounds, p.Wind.Random)
	}
	return nil
}
