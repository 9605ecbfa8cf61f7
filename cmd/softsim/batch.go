package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/softsim/internal/automation"
	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/experiment"
	"github.com/san-kum/softsim/internal/metrics"
	"github.com/san-kum/softsim/internal/optim"
	"github.com/san-kum/softsim/internal/storage"
)

var (
	sweeps    []string
	metric    string
	top       int
	trials    int
	jitter    float64
	saveBatch bool
)

// parseSweep reads "name=lo:hi:n" or "name=v1,v2,...".
func parseSweep(s string) (string, []float64, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("expected name=lo:hi:n or name=v1,v2, got %q", s)
	}
	name = strings.TrimSpace(name)
	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("bad range %q", spec)
		}
		return name, optim.Linspace(lo, hi, n), nil
	}
	var vals []float64
	for _, f := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("%s: %w", name, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

func sweepScene(cmd *cobra.Command, args []string) error {
	if len(sweeps) == 0 {
		return fmt.Errorf("at least one --vary is required (parameters: %v)", config.ParamNames())
	}
	names := make([]string, 0, len(sweeps))
	ranges := make([][]float64, 0, len(sweeps))
	for _, s := range sweeps {
		name, vals, err := parseSweep(s)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	if _, err := metrics.New(metric); err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, baseDir, err := loadScene(cmd, args)
		if err != nil {
			return nil, err
		}
		for name, v := range params {
			if err := config.SetParam(&cfg.Params, name, v); err != nil {
				return nil, err
			}
		}
		m, _ := metrics.New(metric)
		exp := experiment.New(cfg, baseDir, logger)
		return exp, exp.Setup([]dynamo.Metric{m})
	}

	g := optim.NewGridSearch(names, ranges)
	g.Workers = workers
	fmt.Printf("sweeping %d candidates, minimizing %s\n\n", len(g.Candidates()), metric)
	best, value, all, err := g.Search(context.Background(), build, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metric))
	for i, t := range optim.Ranked(all) {
		if top > 0 && i >= top {
			break
		}
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", t.Params[name])
		}
		fmt.Fprintf(w, "%.6f\n", t.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, t := range all {
		if t.Err != nil {
			logger.Warn("candidate failed", "params", t.Params, "err", t.Err)
		}
	}

	fmt.Printf("\nbest %s = %.6f at", metric, value)
	for _, name := range names {
		fmt.Printf(" %s=%g", name, best[name])
	}
	fmt.Println()
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	var st *storage.Store
	if saveBatch {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	outcomes, err := automation.RunScenario(context.Background(), sc, experiment.NewRegistry(), st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tSCENE\tSTEPS\tMAX_STRETCH\tSTABILITY\tRUN")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.4f\t%.0f\t%s\n", o.Step, o.Scene, o.Result.StepsTaken,
			o.Result.Metrics["max_stretch"], o.Result.Metrics["stability"], o.RunID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, baseDir, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	results, err := automation.RunMonteCarlo(context.Background(), &automation.MonteCarloConfig{
		Base:      cfg,
		BaseDir:   baseDir,
		Jitter:    jitter,
		NumTrials: trials,
		Seed:      cfg.Seed,
		Workers:   workers,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tSTIFFNESS\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%v\n", r.TrialID, r.Seed, r.Stiffness, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}
