package experiment

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/integrators"
	"github.com/san-kum/softsim/internal/metrics"
)

// Registry names the built-in scenes.
type Registry struct {
	scenes map[string]func() *config.Config
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes: make(map[string]func() *config.Config),
	}

	r.scenes["rope"] = Rope
	r.scenes["flag"] = Flag
	r.scenes["jelly"] = Jelly
	r.scenes["sack"] = Sack

	return r
}

// Register adds or replaces a scene.
func (r *Registry) Register(name string, fn func() *config.Config) {
	r.scenes[name] = fn
}

// GetScene returns a fresh config for the named scene.
func (r *Registry) GetScene(name string) (*config.Config, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListScenes() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListIntegrators() []string {
	return integrators.Names()
}

// DefaultMetrics returns the metrics reported for every run.
func (r *Registry) DefaultMetrics() []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewElasticEnergy(),
		metrics.NewMaxStretch(),
		metrics.NewStability(metrics.DefaultStabilityThreshold),
	}
}

// Rope is a horizontal chain pinned at its first node.
func Rope() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Name = "rope"
	cfg.Kind = config.KindChain
	cfg.Params, _ = config.GetPreset(config.KindChain, "rope")
	cfg.Anchors = nil
	cfg.Fixed = []int{0}
	return cfg
}

// Flag is a cloth sheet pinned along its left edge in the wind.
func Flag() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Params, _ = config.GetPreset(config.KindCloth, "configuration-1")
	cfg.WindOscillation = &config.OscillationConfig{MaxTimer: 3}
	return cfg
}

// Jelly is a soft cube dropped onto a floor, stepped on by a walking player.
func Jelly() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Name = "jelly"
	cfg.Kind = config.KindVolume
	cfg.Params, _ = config.GetPreset(config.KindVolume, "configuration-3")
	cfg.Params.Wind.Strength = 0
	cfg.Anchors = nil
	cfg.Transform.Translation = mgl64.Vec3{0, 1, 0}
	cfg.Colliders = []config.BoxConfig{
		{Center: mgl64.Vec3{0, -0.5, 0}, Size: mgl64.Vec3{10, 1, 10}},
	}
	cfg.Player = &config.PlayerConfig{
		Center:   mgl64.Vec3{-2, 0.5, 0},
		Size:     mgl64.Vec3{0.5, 1.5, 0.5},
		Weight:   config.DefaultPlayerWeight,
		Velocity: mgl64.Vec3{0.5, 0, 0},
	}
	return cfg
}

// Sack is a soft bag hanging from its top face until released.
func Sack() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Name = "sack"
	cfg.Kind = config.KindVolume
	cfg.Params, _ = config.GetPreset(config.KindVolume, "configuration-2")
	cfg.Params.Wind.Strength = 0
	cfg.Generator.Size = mgl64.Vec3{0.6, 1, 0.6}
	cfg.Transform.Translation = mgl64.Vec3{0, 2, 0}
	cfg.Anchors = []config.BoxConfig{
		{Center: mgl64.Vec3{0, 2.5, 0}, Size: mgl64.Vec3{1, 0.05, 1}},
	}
	cfg.Colliders = []config.BoxConfig{
		{Center: mgl64.Vec3{0, -0.5, 0}, Size: mgl64.Vec3{10, 1, 10}},
	}
	cfg.ReleaseAt = 2
	return cfg
}
