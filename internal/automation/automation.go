// Package automation runs scripted batches of scenes and seed ensembles.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/experiment"
	"github.com/san-kum/softsim/internal/geom"
	"github.com/san-kum/softsim/internal/storage"
)

// Scenario is a scripted sequence of scene runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep names a built-in scene or a config file and the overrides
// applied to it.
type ScenarioStep struct {
	Scene  string   `yaml:"scene"`
	Config string   `yaml:"config"`
	Preset string   `yaml:"preset"`
	Scheme string   `yaml:"scheme"`
	Steps  int      `yaml:"steps"`
	Set    []string `yaml:"set"`
	SaveAs string   `yaml:"save_as"`
}

// Outcome is the result of one scenario step.
type Outcome struct {
	Step   int
	Scene  string
	RunID  string
	Result *dynamo.Result
}

// LoadScenario loads a scenario from a YAML file. Relative config paths in
// its steps resolve against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i := range scenario.Steps {
		if c := scenario.Steps[i].Config; c != "" && !filepath.IsAbs(c) {
			scenario.Steps[i].Config = filepath.Join(dir, c)
		}
	}
	return &scenario, nil
}

// StepConfig resolves the config for one step.
func StepConfig(step ScenarioStep, registry *experiment.Registry) (*config.Config, string, error) {
	var (
		cfg     *config.Config
		baseDir = "."
		err     error
	)
	switch {
	case step.Config != "":
		cfg, err = config.Load(step.Config)
		baseDir = filepath.Dir(step.Config)
	case step.Scene != "":
		cfg, err = registry.GetScene(step.Scene)
	default:
		err = fmt.Errorf("step names neither a scene nor a config")
	}
	if err != nil {
		return nil, "", err
	}

	if step.Preset != "" {
		p, ok := config.GetPreset(cfg.Kind, step.Preset)
		if !ok {
			return nil, "", fmt.Errorf("unknown preset %q for %s", step.Preset, cfg.Kind)
		}
		cfg.Params = p
	}
	if step.Scheme != "" {
		s, err := dynamo.ParseScheme(step.Scheme)
		if err != nil {
			return nil, "", err
		}
		cfg.Params.Scheme = s
	}
	if step.Steps > 0 {
		cfg.Steps = step.Steps
	}
	if err := config.ApplyAssignments(&cfg.Params, step.Set); err != nil {
		return nil, "", err
	}
	return cfg, baseDir, nil
}

// RunScenario executes the steps in order. Steps with SaveAs are stored in
// st under that run id when st is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.Default()
	}
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, baseDir, err := StepConfig(step, registry)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "scene", cfg.Name)

		exp := experiment.New(cfg, baseDir, logger)
		if err := exp.Setup(registry.DefaultMetrics()); err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		o := Outcome{Step: i + 1, Scene: cfg.Name, Result: result}
		if step.SaveAs != "" && st != nil {
			b := exp.Scene().Body
			o.RunID, err = st.Save(storage.RunMetadata{
				ID:         step.SaveAs,
				Scene:      cfg.Name,
				Kind:       cfg.Kind,
				Seed:       cfg.Seed,
				Params:     b.Params(),
				Integrator: string(b.Params().Scheme),
				Nodes:      len(b.Nodes()),
				Springs:    len(b.Springs()),
			}, result)
			if err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

// MonteCarloConfig runs one scene many times with different seeds and
// jittered stiffness.
type MonteCarloConfig struct {
	Base *config.Config
	// BaseDir resolves relative mesh paths, "." when empty.
	BaseDir string
	// Jitter scales stiffness and bending stiffness by a uniform factor in
	// [1-Jitter, 1+Jitter].
	Jitter    float64
	NumTrials int
	Seed      int64
	Workers   int
	// Threshold bounds node distance from the origin for a stable trial.
	Threshold float64
}

type MonteCarloResult struct {
	TrialID   int
	Seed      int64
	Stiffness float64
	// Stable reports every final node finite and within the threshold.
	Stable bool
	Final  []mgl64.Vec3
}

// RunMonteCarlo executes the trials concurrently. Results are ordered by
// trial id.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *slog.Logger) ([]MonteCarloResult, error) {
	if cfg.Base == nil || cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("monte carlo: need a base config and at least one trial")
	}
	if logger == nil {
		logger = slog.Default()
	}
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 1e3
	}
	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = "."
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	trials := make([]*config.Config, cfg.NumTrials)
	for i := range trials {
		c := *cfg.Base
		c.Seed = cfg.Seed + int64(i)
		scale := 1 + (rng.Float64()*2-1)*cfg.Jitter
		c.Params.Stiffness *= scale
		c.Params.BendStiffness *= scale
		trials[i] = &c
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, c := range trials {
		g.Go(func() error {
			exp := experiment.New(c, baseDir, logger)
			if err := exp.Setup(nil); err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			if _, err := exp.Run(ctx); err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			b := exp.Scene().Body
			final := make([]mgl64.Vec3, len(b.Nodes()))
			stable := true
			for k := range final {
				final[k] = b.WorldPos(k)
				if !geom.IsFinite(final[k]) || final[k].Len() > threshold {
					stable = false
				}
			}
			results[i] = MonteCarloResult{
				TrialID:   i,
				Seed:      c.Seed,
				Stiffness: c.Params.Stiffness,
				Stable:    stable,
				Final:     final,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("monte carlo complete", "trials", cfg.NumTrials)
	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
