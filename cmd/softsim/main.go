package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/experiment"
	"github.com/san-kum/softsim/internal/viz"
)

var (
	dataDir  string
	envFile  string
	logLevel string
	logJSON  bool

	configFile string
	preset     string
	scheme     string
	steps      int
	seed       int64
	sets       []string
	recordDir  string
	record     bool

	node   int
	vertex int
	axis   string
	format string
	out    string

	copies  int
	workers int
)

var logger = slog.Default()

func main() {
	rootCmd := &cobra.Command{
		Use:           "softsim",
		Short:         "mass-spring soft body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(experiment.NewRegistry(), screenLogger())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run directory (default $"+config.EnvDataDir+" or "+config.DefaultDataDir+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $"+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and store its trajectories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	sceneFlags(runCmd)
	runCmd.Flags().BoolVar(&record, "record", false, "record every frame next to the run")
	runCmd.Flags().StringVar(&recordDir, "record-dir", "", "record every frame into this directory")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "watch a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	sceneFlags(liveCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect [scene]",
		Short: "describe the body a scene builds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectScene,
	}
	sceneFlags(inspectCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scene]",
		Short: "run a scene and draw the final body as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotScene,
	}
	sceneFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare [scene] [scheme...]",
		Short: "run a scene under several integration schemes",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSchemes,
	}
	sceneFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "step many copies of a scene in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	sceneFlags(benchCmd)
	benchCmd.Flags().IntVar(&copies, "copies", 8, "bodies stepped together")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses all cpus)")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes, schemes and metrics",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list parameter presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot tracked node coordinates",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&node, "node", -1, "tracked node to plot (default all)")
	plotCmd.Flags().StringVar(&axis, "axis", "y", "coordinate: x, y or z")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and phase analysis of a tracked node",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&node, "node", -1, "tracked node (default last)")
	analyzeCmd.Flags().StringVar(&axis, "axis", "y", "coordinate: x, y or z")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as json or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json or svg")
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().IntVar(&node, "node", -1, "tracked node for svg (default last)")

	replayCmd := &cobra.Command{
		Use:   "replay [recording]",
		Short: "summarize a frame recording",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRecording,
	}
	replayCmd.Flags().IntVar(&vertex, "vertex", 0, "vertex whose height is plotted")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepScene,
	}
	sceneFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweeps, "vary", nil, "parameter range name=lo:hi:n or name=v1,v2 (repeatable)")
	sweepCmd.Flags().StringVar(&metric, "metric", "max_stretch", "metric to minimize")
	sweepCmd.Flags().IntVar(&top, "top", 10, "rows to show (0 for all)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 uses all cpus)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&saveBatch, "save", true, "store steps that set save_as")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [scene]",
		Short: "run seeded trials with jittered stiffness",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	sceneFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 16, "number of trials")
	monteCarloCmd.Flags().Float64Var(&jitter, "jitter", 0.1, "relative stiffness jitter")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "parallel trials (0 uses all cpus)")

	rootCmd.AddCommand(runCmd, liveCmd, inspectCmd, snapshotCmd, compareCmd, benchCmd,
		scenesCmd, presetsCmd, listCmd, plotCmd, analyzeCmd, exportCmd, replayCmd,
		sweepCmd, batchCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func sceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "parameter preset for the scene kind")
	cmd.Flags().StringVar(&scheme, "scheme", "", "integration scheme")
	cmd.Flags().IntVar(&steps, "steps", 0, "steps to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "parameter override name=value (repeatable)")
}

// setup reads the environment and installs the logger.
func setup(cmd *cobra.Command) error {
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("data") {
		dataDir = env.DataDir
	}
	if !cmd.Flags().Changed("log-level") {
		logLevel = env.LogLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if logJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger = slog.New(h)
	slog.SetDefault(logger)
	return nil
}

// loadScene resolves the scene config from --config or a built-in scene
// name, then applies flag overrides. It returns the directory relative mesh
// paths resolve against.
func loadScene(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	var (
		cfg     *config.Config
		baseDir = "."
		err     error
	)
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		baseDir = filepath.Dir(configFile)
	case len(args) > 0:
		cfg, err = experiment.NewRegistry().GetScene(args[0])
		if err != nil {
			return nil, "", err
		}
	default:
		cfg = experiment.Flag()
	}

	if preset != "" {
		kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
		p, ok := config.GetPreset(kind, preset)
		if !ok {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		cfg.Params = p
	}
	if cmd.Flags().Changed("scheme") {
		s, err := dynamo.ParseScheme(scheme)
		if err != nil {
			return nil, "", err
		}
		cfg.Params.Scheme = s
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := config.ApplyAssignments(&cfg.Params, sets); err != nil {
		return nil, "", err
	}
	return cfg, baseDir, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, baseDir, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg, baseDir, screenLogger())
	if err := exp.Setup(nil); err != nil {
		return err
	}
	return viz.Run(exp)
}

// screenLogger keeps everything below error out of the alt screen.
func screenLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
