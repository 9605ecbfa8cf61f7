package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/experiment"
	"github.com/san-kum/softsim/internal/export"
	"github.com/san-kum/softsim/internal/integrators"
	"github.com/san-kum/softsim/internal/metrics"
	"github.com/san-kum/softsim/internal/storage"
)

func runScene(cmd *cobra.Command, args []string) error {
	cfg, baseDir, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, baseDir, logger)
	if err := exp.Setup(registry.DefaultMetrics()); err != nil {
		return err
	}

	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().UnixNano())
	if record && recordDir == "" {
		recordDir = filepath.Join(st.Dir(runID), "recording")
	}
	if recordDir != "" {
		if err := exp.Record(recordDir); err != nil {
			return err
		}
	}

	body := exp.Scene().Body
	fmt.Printf("running %s (%s, %d nodes, %d springs)...\n", cfg.Name, cfg.Kind, len(body.Nodes()), len(body.Springs()))
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	integ := ""
	if body.Integrator() != nil {
		integ = body.Integrator().Name()
	}
	runID, err = st.Save(storage.RunMetadata{
		ID:         runID,
		Scene:      cfg.Name,
		Kind:       cfg.Kind,
		Seed:       cfg.Seed,
		Params:     body.Params(),
		Integrator: integ,
		Nodes:      len(body.Nodes()),
		Springs:    len(body.Springs()),
		Recording:  exp.RecordingDir(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (%d held)\n", result.StepsTaken, result.Skipped)
	if dir := exp.RecordingDir(); dir != "" {
		fmt.Printf("recording: %s\n", dir)
	}
	for _, e := range exp.Events() {
		fmt.Printf("event: %-10s t=%.2fs\n", e.Type, e.Time)
	}
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func inspectScene(cmd *cobra.Command, args []string) error {
	cfg, baseDir, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	scene, err := experiment.Build(cfg, baseDir, logger)
	if err != nil {
		return err
	}
	b := scene.Body

	var structural, bending int
	for _, s := range b.Springs() {
		if s.Kind == dynamo.Bending {
			bending++
		} else {
			structural++
		}
	}
	mass := 0.0
	for _, n := range b.Nodes() {
		mass += n.Mass
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "scene\t%s\n", cfg.Name)
	fmt.Fprintf(w, "kind\t%s\n", cfg.Kind)
	fmt.Fprintf(w, "scheme\t%s\n", b.Params().Scheme)
	fmt.Fprintf(w, "dt\t%g\n", b.Params().Dt)
	fmt.Fprintf(w, "nodes\t%d (%d fixed)\n", len(b.Nodes()), b.FixedCount())
	fmt.Fprintf(w, "springs\t%d structural, %d bending\n", structural, bending)
	fmt.Fprintf(w, "mass\t%.4f\n", mass)
	fmt.Fprintf(w, "vertices\t%d\n", len(b.Vertices()))
	if len(scene.Triangles) > 0 {
		fmt.Fprintf(w, "triangles\t%d\n", len(scene.Triangles)/3)
	}
	if v := scene.Volume; v != nil {
		fmt.Fprintf(w, "tetrahedra\t%d\n", len(v.Tetrahedra))
		fmt.Fprintf(w, "unmapped\t%d\n", len(v.Unmapped))
	}
	if scene.Wind != nil {
		fmt.Fprintf(w, "wind flip\tevery %.1fs or more\n", scene.Wind.MaxTimer)
	}
	if scene.Activator != nil {
		fmt.Fprintf(w, "activation\tpaused until the player enters\n")
	}
	if scene.Release != nil {
		fmt.Fprintf(w, "release\tat %.2fs\n", cfg.ReleaseAt)
	}
	return w.Flush()
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	cfg, baseDir, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg, baseDir, logger)
	if err := exp.Setup(nil); err != nil {
		return err
	}
	if _, err := exp.Run(context.Background()); err != nil {
		return err
	}
	return writeOutput(out, export.FittedBodySVG(exp.Scene().Body, 800, 600))
}

func writeOutput(path, data string) error {
	if path == "" {
		_, err := fmt.Println(data)
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	schemes := args[1:]
	if len(schemes) == 0 {
		schemes = integrators.Names()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSTEPS\tTIME\tKINETIC\tMAX_STRETCH\tDRIFT\tUNSTABLE")

	for _, name := range schemes {
		s, err := dynamo.ParseScheme(name)
		if err != nil {
			return err
		}
		cfg, baseDir, err := loadScene(cmd, args[:1])
		if err != nil {
			return err
		}
		cfg.Params.Scheme = s

		exp := experiment.New(cfg, baseDir, logger)
		if err := exp.Setup([]dynamo.Metric{
			metrics.NewKineticEnergy(),
			metrics.NewMaxStretch(),
			metrics.NewEnergyDrift(),
			metrics.NewStability(metrics.DefaultStabilityThreshold),
		}); err != nil {
			return err
		}
		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		m := result.Metrics
		fmt.Fprintf(w, "%s\t%d\t%v\t%.4f\t%.4f\t%.4f\t%.0f\n",
			s, result.StepsTaken, time.Since(start).Round(time.Millisecond),
			m["kinetic_energy"], m["max_stretch"], m["energy_drift"], m["stability"])
	}
	return w.Flush()
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, baseDir, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	if copies < 1 {
		return fmt.Errorf("copies must be positive")
	}

	bodies := make([]*dynamo.Body, copies)
	for i := range bodies {
		c := *cfg
		scene, err := experiment.Build(&c, baseDir, logger)
		if err != nil {
			return err
		}
		bodies[i] = scene.Body
	}

	fmt.Printf("benchmarking %s: %d bodies, %d nodes each\n\n", cfg.Name, copies, len(bodies[0].Nodes()))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tSTEPS\tTIME\tBODY STEPS/SEC")

	ctx := context.Background()
	for _, n := range benchWorkers(workers) {
		start := time.Now()
		for i := 0; i < cfg.Steps; i++ {
			if err := dynamo.StepAll(ctx, bodies, n); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, cfg.Steps, elapsed.Round(time.Millisecond),
			float64(cfg.Steps*copies)/elapsed.Seconds())
	}
	return w.Flush()
}

// benchWorkers compares a serial pass against the requested parallelism.
func benchWorkers(n int) []int {
	if n == 1 {
		return []int{1}
	}
	return []int{1, n}
}

func listScenes(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tKIND\tSCHEME\tSTEPS")
	for _, name := range registry.ListScenes() {
		cfg, err := registry.GetScene(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, cfg.Kind, cfg.Params.Scheme, cfg.Steps)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nschemes: %v\n", registry.ListIntegrators())
	fmt.Printf("metrics: %v\n", metrics.Names())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := config.Kinds()
	if len(args) > 0 {
		kinds = args[:1]
	}
	for _, kind := range kinds {
		presets := config.ListPresets(kind)
		if len(presets) == 0 {
			fmt.Printf("no presets for kind: %s\n", kind)
			continue
		}
		fmt.Printf("presets for %s:\n", kind)
		for _, name := range presets {
			p, _ := config.GetPreset(kind, name)
			fmt.Printf("  %-16s k=%g/%g mass=%g density=%g dt=%g %s\n",
				name, p.Stiffness, p.BendStiffness, p.Mass, p.Density, p.Dt, p.Scheme)
		}
	}
	return nil
}
