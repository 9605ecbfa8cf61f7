package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/softsim/internal/dynamo"
)

// ParamMap flattens the scalar physical parameters by name.
func ParamMap(p dynamo.Params) map[string]float64 {
	return map[string]float64{
		"dt":             p.Dt,
		"stiffness":      p.Stiffness,
		"bend_stiffness": p.BendStiffness,
		"d_rotation":     p.DRotation,
		"d_deformation":  p.DDeformation,
		"d_absolute":     p.DAbsolute,
		"mass":           p.Mass,
		"density":        p.Density,
		"wind_strength":  p.Wind.Strength,
		"wind_random":    p.Wind.Random,
		"gravity_y":      p.Gravity[1],
	}
}

// ParamNames lists the names accepted by SetParam.
func ParamNames() []string {
	m := ParamMap(dynamo.Params{})
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func SetParam(p *dynamo.Params, name string, value float64) error {
	switch name {
	case "dt":
		p.Dt = value
	case "stiffness":
		p.Stiffness = value
	case "bend_stiffness":
		p.BendStiffness = value
	case "d_rotation":
		p.DRotation = value
	case "d_deformation":
		p.DDeformation = value
	case "d_absolute":
		p.DAbsolute = value
	case "mass":
		p.Mass = value
	case "density":
		p.Density = value
	case "wind_strength":
		p.Wind.Strength = value
	case "wind_random":
		p.Wind.Random = value
	case "gravity_y":
		p.Gravity[1] = value
	default:
		return fmt.Errorf("config: unknown parameter %q", name)
	}
	return nil
}

// ApplyAssignments applies "name=value" overrides in order.
func ApplyAssignments(p *dynamo.Params, assignments []string) error {
	for _, a := range assignments {
		name, raw, ok := strings.Cut(a, "=")
		if !ok {
			return fmt.Errorf("config: expected name=value, got %q", a)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		if err := SetParam(p, strings.TrimSpace(name), v); err != nil {
			return err
		}
	}
	return nil
}
