package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/softsim/internal/dynamo"
)

// DefaultStabilityThreshold bounds node distance from the origin.
const DefaultStabilityThreshold = 1e3

var factories = map[string]func() dynamo.Metric{
	"kinetic_energy": func() dynamo.Metric { return NewKineticEnergy() },
	"elastic_energy": func() dynamo.Metric { return NewElasticEnergy() },
	"energy_drift":   func() dynamo.Metric { return NewEnergyDrift() },
	"max_stretch":    func() dynamo.Metric { return NewMaxStretch() },
	"stability":      func() dynamo.Metric { return NewStability(DefaultStabilityThreshold) },
}

func New(name string) (dynamo.Metric, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("metrics: unknown metric %q", name)
	}
	return f(), nil
}

// Names lists the registered metrics in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All builds one instance of every registered metric.
func All() []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(factories))
	for _, name := range Names() {
		out = append(out, factories[name]())
	}
	return out
}
