package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/recording"
)

type Experiment struct {
	cfg     *config.Config
	baseDir string
	logger  *slog.Logger

	scene       *Scene
	simulator   *dynamo.Simulator
	controllers []dynamo.Controller
	recorder    *recording.Writer
	events      []recording.Event
}

// New prepares an experiment for cfg. Relative mesh paths in cfg are
// resolved against baseDir.
func New(cfg *config.Config, baseDir string, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{
		cfg:     cfg,
		baseDir: baseDir,
		logger:  logger,
	}
}

// Setup builds the scene and wires its controllers and the given metrics.
func (e *Experiment) Setup(metrics []dynamo.Metric) error {
	scene, err := Build(e.cfg, e.baseDir, e.logger)
	if err != nil {
		return err
	}
	e.scene = scene
	e.simulator = dynamo.NewSimulator(scene.Body)

	if scene.Wind != nil {
		e.controllers = append(e.controllers, &windDriver{osc: scene.Wind, emit: e.emit})
	}
	if scene.Player != nil {
		e.controllers = append(e.controllers, &playerDriver{
			player:    scene.Player,
			velocity:  e.cfg.Player.Velocity,
			activator: scene.Activator,
			emit:      e.emit,
		})
	}
	if scene.Release != nil {
		e.controllers = append(e.controllers, &releaseDriver{trigger: scene.Release, at: e.cfg.ReleaseAt, emit: e.emit})
	}
	for _, c := range e.controllers {
		e.simulator.AddController(c)
	}
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// Record streams every advanced step and every scene event into dir.
func (e *Experiment) Record(dir string) error {
	if e.scene == nil {
		return fmt.Errorf("experiment not setup")
	}
	w, _, err := recording.NewWriter(dir, e.cfg.Name, e.cfg.Params.Dt, len(e.scene.Body.Vertices()))
	if err != nil {
		return err
	}
	e.recorder = w
	e.simulator.AddObserver(w)
	return nil
}

// Run simulates the configured number of steps. The recorder, if any, is
// closed before returning.
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	track := e.cfg.Track
	if len(track) == 0 {
		track = DefaultTrack(len(e.scene.Body.Nodes()))
	}
	simCfg := dynamo.Config{
		Steps:       e.cfg.Steps,
		SampleEvery: max(e.cfg.SampleEvery, 1),
		Seed:        e.cfg.Seed,
		Track:       track,
	}

	e.logger.Debug("run starting", "scene", e.cfg.Name, "kind", e.cfg.Kind,
		"scheme", e.cfg.Params.Scheme, "steps", simCfg.Steps,
		"nodes", len(e.scene.Body.Nodes()), "springs", len(e.scene.Body.Springs()))

	result, err := e.simulator.Run(ctx, simCfg)
	if e.recorder != nil {
		if cerr := e.recorder.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return result, err
}

// Advance runs the controllers and one body step, for interactive drivers
// that pace the simulation themselves. It reports whether the body advanced.
func (e *Experiment) Advance() bool {
	b := e.scene.Body
	for _, c := range e.controllers {
		c.Update(b, b.Params().Dt)
	}
	return b.Step()
}

func (e *Experiment) Scene() *Scene { return e.scene }

func (e *Experiment) Config() *config.Config { return e.cfg }

// Events returns the scene events emitted so far.
func (e *Experiment) Events() []recording.Event { return e.events }

// RecordingDir returns the recording directory, empty when not recording.
func (e *Experiment) RecordingDir() string {
	if e.recorder == nil {
		return ""
	}
	return e.recorder.Directory()
}

func (e *Experiment) emit(b *dynamo.Body, kind string, detail map[string]string) {
	ev := recording.Event{
		Step:   uint64(b.StepCount()),
		Time:   float64(b.StepCount()) * b.Params().Dt,
		Type:   kind,
		Detail: detail,
	}
	e.events = append(e.events, ev)
	e.logger.Info("scene event", "body", b.Name(), "type", kind, "step", ev.Step)
	if e.recorder != nil {
		if err := e.recorder.AppendEvent(ev); err != nil {
			e.logger.Warn("recording event failed", "type", kind, "err", err)
		}
	}
}

// DefaultTrack picks the first, middle and last node.
func DefaultTrack(n int) []int {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []int{0}
	case n == 2:
		return []int{0, 1}
	}
	return []int{0, n / 2, n - 1}
}
