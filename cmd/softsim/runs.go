package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/softsim/internal/analysis"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/export"
	"github.com/san-kum/softsim/internal/recording"
	"github.com/san-kum/softsim/internal/storage"
)

func axisIndex(name string) (int, error) {
	switch name {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown axis: %s", name)
}

// trackColumn maps a node index to its column among the tracked nodes.
// A negative node selects the last tracked one.
func trackColumn(track []int, node int) (int, error) {
	if len(track) == 0 {
		return 0, fmt.Errorf("run tracks no nodes")
	}
	if node < 0 {
		return len(track) - 1, nil
	}
	for i, idx := range track {
		if idx == node {
			return i, nil
		}
	}
	return 0, fmt.Errorf("node %d not tracked (tracked: %v)", node, track)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tKIND\tTIME\tSTEPS\tDT\tINTEG\tNODES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Scene,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Params.Dt,
			run.Integrator,
			run.Nodes,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	ax, err := axisIndex(axis)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, track, positions, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d over %.2fs\n\n", len(positions), times[len(times)-1])

	cols := make([]int, 0, len(track))
	if node >= 0 {
		col, err := trackColumn(track, node)
		if err != nil {
			return err
		}
		cols = append(cols, col)
	} else {
		for i := range track {
			cols = append(cols, i)
		}
	}

	for _, col := range cols {
		data := analysis.Component(positions, col, ax)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("node %d %s vs time", track[col], axis)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	ax, err := axisIndex(axis)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, track, positions, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	col, err := trackColumn(track, node)
	if err != nil {
		return err
	}
	data := analysis.Component(positions, col, ax)
	if len(data) < 4 {
		return fmt.Errorf("not enough samples: %d", len(data))
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("node %d, axis %s, %d samples\n\n", track[col], axis, len(data))

	sampleDt := times[1] - times[0]
	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[:max(len(ps)/4, 2)],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, sampleDt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	mean := analysis.Mean(data)
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	fmt.Printf("mean: %.4f  range: [%.4f, %.4f]\n", mean, lo, hi)
	fmt.Printf("upward mean crossings: %d\n\n", len(analysis.Crossings(data, mean)))

	portrait := analysis.NewPhasePortrait(times[:len(data)], data)
	fmt.Println("phase portrait (position vs velocity):")
	fmt.Print(portrait.ASCII(60, 20))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, track, positions, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data := storage.NewExportData(meta.Scene, meta.Integrator, meta.Params, &dynamo.Result{
			Times:      times,
			Track:      track,
			Positions:  positions,
			Metrics:    meta.Metrics,
			StepsTaken: meta.Steps,
			Skipped:    meta.Skipped,
		})
		if out == "" {
			return storage.WriteJSON(os.Stdout, data)
		}
		if err := storage.ExportJSON(out, data); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	case "svg":
		col, err := trackColumn(track, node)
		if err != nil {
			return err
		}
		pts := make([]analysis.Point, len(positions))
		for i, row := range positions {
			pts[i] = analysis.Point{X: row[col].X(), Y: row[col].Y()}
		}
		return writeOutput(out, export.TrajectorySVG(pts, 800, 600, "#00ff88"))
	}
	return fmt.Errorf("unknown format: %s", format)
}

func replayRecording(cmd *cobra.Command, args []string) error {
	m, frames, events, err := recording.Open(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scene: %s\n", m.Scene)
	fmt.Printf("created: %s\n", m.CreatedAt)
	fmt.Printf("frames: %d x %d vertices, dt %g\n", len(frames), m.Vertices, m.Dt)
	if len(frames) > 0 {
		fmt.Printf("time: %.2fs to %.2fs\n", frames[0].Time, frames[len(frames)-1].Time)
	}

	if len(events) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tTIME\tEVENT\tDETAIL")
		for _, e := range events {
			fmt.Fprintf(w, "%d\t%.2fs\t%s\t%v\n", e.Step, e.Time, e.Type, e.Detail)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(frames) < 2 || vertex < 0 || vertex >= m.Vertices {
		return nil
	}
	heights := make([]float64, len(frames))
	for i, f := range frames {
		heights[i] = f.Vertices[vertex].Y()
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("vertex %d height, %s", vertex, extent(frames[len(frames)-1].Vertices))),
	))
	return nil
}

// extent describes the bounding box of the final frame.
func extent(vs []mgl64.Vec3) string {
	if len(vs) == 0 {
		return "empty"
	}
	lo, hi := vs[0], vs[0]
	for _, v := range vs {
		for k := 0; k < 3; k++ {
			lo[k], hi[k] = math.Min(lo[k], v[k]), math.Max(hi[k], v[k])
		}
	}
	size := hi.Sub(lo)
	return fmt.Sprintf("final extent %.2f x %.2f x %.2f", size.X(), size.Y(), size.Z())
}
