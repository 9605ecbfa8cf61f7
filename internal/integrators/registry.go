package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/softsim/internal/dynamo"
)

var registry = map[dynamo.Scheme]func() dynamo.Integrator{
	dynamo.ExplicitEuler:   func() dynamo.Integrator { return NewExplicitEuler() },
	dynamo.SymplecticEuler: func() dynamo.Integrator { return NewSymplecticEuler() },
	dynamo.Verlet:          func() dynamo.Integrator { return NewVerlet() },
}

// New builds a fresh integrator for s. It satisfies dynamo.IntegratorFactory.
func New(s dynamo.Scheme) (dynamo.Integrator, error) {
	fn, ok := registry[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownScheme, s)
	}
	return fn(), nil
}

// Names lists the registered schemes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for s := range registry {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}
