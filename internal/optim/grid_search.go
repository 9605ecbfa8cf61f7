// Package optim searches body parameters for the best value of a metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/softsim/internal/experiment"
)

var ErrNoCandidates = errors.New("optim: empty search grid")

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// BuildFunc prepares a set-up experiment for one grid point.
type BuildFunc func(params map[string]float64) (*experiment.Experiment, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Workers bounds concurrent runs; zero uses GOMAXPROCS.
	Workers int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Candidates enumerates the cartesian product of the ranges, last parameter
// varying fastest.
func (g *GridSearch) Candidates() []map[string]float64 {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return nil
	}
	out := []map[string]float64{{}}
	for i, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(out)*len(g.ranges[i]))
		for _, base := range out {
			for _, v := range g.ranges[i] {
				c := make(map[string]float64, len(base)+1)
				for k, bv := range base {
					c[k] = bv
				}
				c[name] = v
				next = append(next, c)
			}
		}
		out = next
	}
	return out
}

// Search runs every candidate and returns the one minimizing metricName,
// the best value, and all trials in grid order. Candidates that fail to
// build or run, or that yield a non-finite value, are recorded and skipped.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, []Trial, error) {
	candidates := g.Candidates()
	if len(candidates) == 0 {
		return nil, 0, nil, ErrNoCandidates
	}

	trials := make([]Trial, len(candidates))
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, params := range candidates {
		eg.Go(func() error {
			trials[i] = evaluate(ctx, build, params, metricName)
			return ctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, trials, err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for _, t := range trials {
		if t.Err == nil && t.Value < best {
			best, bestParams = t.Value, t.Params
		}
	}
	if bestParams == nil {
		return nil, best, trials, fmt.Errorf("optim: every candidate failed: %w", trials[0].Err)
	}
	return bestParams, best, trials, nil
}

func evaluate(ctx context.Context, build BuildFunc, params map[string]float64, metricName string) Trial {
	t := Trial{Params: params}
	exp, err := build(params)
	if err != nil {
		t.Err = err
		return t
	}
	result, err := exp.Run(ctx)
	if err != nil {
		t.Err = err
		return t
	}
	v, ok := result.Metrics[metricName]
	switch {
	case !ok:
		t.Err = fmt.Errorf("optim: metric %q not reported", metricName)
	case math.IsNaN(v) || math.IsInf(v, 0):
		t.Err = fmt.Errorf("optim: metric %q is %v", metricName, v)
	default:
		t.Value = v
	}
	return t
}

// Ranked returns the successful trials sorted by value, best first.
func Ranked(trials []Trial) []Trial {
	out := make([]Trial, 0, len(trials))
	for _, t := range trials {
		if t.Err == nil {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
