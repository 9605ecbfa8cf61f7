package config

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
)

var gravity = mgl64.Vec3{0, -9.8, 0}

func cloth(dt, kT, kF, dRot, dDef, mass, strength, random float64, wind mgl64.Vec3, scheme dynamo.Scheme) dynamo.Params {
	return dynamo.Params{
		Gravity:       gravity,
		Dt:            dt,
		Stiffness:     kT,
		BendStiffness: kF,
		DRotation:     dRot,
		DDeformation:  dDef,
		DAbsolute:     0.01,
		Mass:          mass,
		Density:       0.2,
		Wind:          dynamo.Wind{Direction: wind, Strength: strength, Random: random},
		Scheme:        scheme,
	}
}

func volume(density, k, d float64) dynamo.Params {
	return dynamo.Params{
		Gravity:       gravity,
		Dt:            0.017,
		Stiffness:     k,
		BendStiffness: k,
		DRotation:     d,
		DDeformation:  d,
		DAbsolute:     0.01,
		Mass:          1,
		Density:       density,
		Wind:          dynamo.Wind{Direction: mgl64.Vec3{-0.5, 0, 0}, Strength: 60, Random: 10},
		Scheme:        dynamo.SymplecticEuler,
	}
}

// Presets are material parameter sets by body kind.
var Presets = map[string]map[string]dynamo.Params{
	KindCloth: {
		"configuration-1": cloth(0.01, 2000, 850, 0.8, 0.8, 0.95, 60, 8, mgl64.Vec3{-0.5, 0.11, 0.11}, dynamo.SymplecticEuler),
		"configuration-2": cloth(0.01, 4000, 1600, 0.8, 0.8, 1.96, 112, 7.7, mgl64.Vec3{-0.33, 0, 0}, dynamo.SymplecticEuler),
		"configuration-3": cloth(0.01, 2000, 1200, 0.8, 0.8, 1.96, 112, 3.6, mgl64.Vec3{-0.42, 0, 0}, dynamo.SymplecticEuler),
		"configuration-4": cloth(0.01, 2000, 800, 0.8, 0.8, 1.96, 112, 7.8, mgl64.Vec3{-0.33, 0, 0}, dynamo.SymplecticEuler),
		"configuration-5": cloth(0.011, 50, 50, 0.9, 0.9, 0.95, 60, 5, mgl64.Vec3{-0.02, 0.155, 0}, dynamo.ExplicitEuler),
		"configuration-6": cloth(0.01, 2000, 850, 0.8, 0.8, 0.95, 54, 6.5, mgl64.Vec3{-0.5, 0.11, 0.11}, dynamo.SymplecticEuler),
	},
	KindVolume: {
		"configuration-1": volume(0.05, 260, 0.1),
		"configuration-2": volume(0.05, 500, 1),
		"configuration-3": volume(0.1, 510, 0.9),
	},
	KindChain: {
		"rope":  cloth(0.01, 500, 0, 0.5, 0.5, 0.2, 0, 0, mgl64.Vec3{}, dynamo.SymplecticEuler),
		"slack": cloth(0.01, 80, 0, 0.2, 0.2, 0.2, 0, 0, mgl64.Vec3{}, dynamo.Verlet),
	},
}

// GetPreset returns the named material for kind and whether it exists.
func GetPreset(kind, name string) (dynamo.Params, bool) {
	presets, ok := Presets[kind]
	if !ok {
		return dynamo.Params{}, false
	}
	p, ok := presets[name]
	return p, ok
}

// ListPresets returns the preset names for kind in sorted order.
func ListPresets(kind string) []string {
	presets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds lists the body kinds that have presets.
func Kinds() []string {
	kinds := make([]string, 0, len(Presets))
	for k := range Presets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
