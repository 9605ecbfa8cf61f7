package experiment

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/recording"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRegistryScenesBuild(t *testing.T) {
	r := NewRegistry()
	names := r.ListScenes()
	want := []string{"flag", "jelly", "rope", "sack"}
	if len(names) != len(want) {
		t.Fatalf("expected scenes %v, got %v", want, names)
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("scene %d: expected %s, got %s", i, want[i], name)
		}
		cfg, err := r.GetScene(name)
		if err != nil {
			t.Fatalf("GetScene(%s): %v", name, err)
		}
		scene, err := Build(cfg, "", quietLogger())
		if err != nil {
			t.Fatalf("Build(%s): %v", name, err)
		}
		if len(scene.Body.Nodes()) == 0 || len(scene.Body.Springs()) == 0 {
			t.Errorf("scene %s built an empty body", name)
		}
	}

	if _, err := r.GetScene("pendulum"); err == nil {
		t.Error("expected error for unknown scene")
	}
	if len(r.ListIntegrators()) != 3 {
		t.Errorf("expected 3 integrators, got %v", r.ListIntegrators())
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := Rope()
	cfg.Kind = "fluid"
	if _, err := Build(cfg, "", quietLogger()); err == nil {
		t.Error("expected error for unknown kind")
	}

	cfg = Flag()
	cfg.Fixed = []int{100000}
	if _, err := Build(cfg, "", quietLogger()); err == nil {
		t.Error("expected error for out of range fixed node")
	}
}

func TestRunRope(t *testing.T) {
	r := NewRegistry()
	cfg, _ := r.GetScene("rope")
	cfg.Steps = 50
	cfg.SampleEvery = 10

	exp := New(cfg, "", quietLogger())
	if err := exp.Setup(r.DefaultMetrics()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.StepsTaken != 50 {
		t.Errorf("expected 50 steps, got %d", res.StepsTaken)
	}
	if len(res.Times) != 6 {
		t.Errorf("expected 6 samples, got %d", len(res.Times))
	}
	if len(res.Track) != 3 || res.Track[2] != 10 {
		t.Errorf("expected default track ending at the tip, got %v", res.Track)
	}
	first, last := res.Positions[0], res.Positions[len(res.Positions)-1]
	if last[0] != first[0] {
		t.Errorf("pinned node moved from %v to %v", first[0], last[0])
	}
	if last[2].Y() >= first[2].Y() {
		t.Errorf("rope tip should fall, went from %f to %f", first[2].Y(), last[2].Y())
	}
	for _, name := range []string{"kinetic_energy", "elastic_energy", "max_stretch", "stability"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if res.Metrics["stability"] != 1 {
		t.Errorf("rope should stay stable, got %f", res.Metrics["stability"])
	}
}

func TestRunRecords(t *testing.T) {
	cfg := Rope()
	cfg.Steps = 12
	cfg.SampleEvery = 4

	exp := New(cfg, "", quietLogger())
	if err := exp.Record(t.TempDir()); err == nil {
		t.Error("Record before Setup should fail")
	}
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "rec")
	if err := exp.Record(dir); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := exp.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	m, frames, _, err := recording.Open(exp.RecordingDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if m.Scene != "rope" || m.Vertices != 11 {
		t.Errorf("unexpected manifest %+v", m)
	}
	if len(frames) != 12 {
		t.Errorf("expected 12 frames, got %d", len(frames))
	}
}

func TestSackRelease(t *testing.T) {
	cfg := Sack()
	cfg.Steps = 130

	exp := New(cfg, "", quietLogger())
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	if exp.Scene().Body.FixedCount() == 0 {
		t.Fatal("sack should start anchored")
	}
	if _, err := exp.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if exp.Scene().Body.FixedCount() != 0 {
		t.Errorf("expected every anchor released, %d still fixed", exp.Scene().Body.FixedCount())
	}
	events := exp.Events()
	if len(events) != 1 || events[0].Type != EventRelease {
		t.Fatalf("expected one release event, got %+v", events)
	}
	if events[0].Time < cfg.ReleaseAt-cfg.Params.Dt {
		t.Errorf("released too early at %f", events[0].Time)
	}
}

func TestActivationFollowsPlayer(t *testing.T) {
	cfg := Flag()
	cfg.WindOscillation = nil
	cfg.Steps = 50
	cfg.Player = &config.PlayerConfig{
		Center:   mgl64.Vec3{-3, 0, 0},
		Size:     mgl64.Vec3{0.2, 0.2, 0.2},
		Velocity: mgl64.Vec3{10, 0, 0},
	}
	cfg.Activation = &config.BoxConfig{Size: mgl64.Vec3{1, 1, 1}}

	exp := New(cfg, "", quietLogger())
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	if !exp.Scene().Body.Paused() {
		t.Fatal("body with an activation region should start paused")
	}

	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	events := exp.Events()
	if len(events) != 2 || events[0].Type != EventActivate || events[1].Type != EventDeactivate {
		t.Fatalf("expected activate then deactivate, got %+v", events)
	}
	if res.StepsTaken == 0 || res.Skipped == 0 {
		t.Errorf("expected both taken and skipped steps, got %d and %d", res.StepsTaken, res.Skipped)
	}
	if !exp.Scene().Body.Paused() {
		t.Error("body should be paused after the player left")
	}
}

func TestWindOscillationEvents(t *testing.T) {
	cfg := Flag()
	cfg.WindOscillation.MaxTimer = 0.1
	cfg.Steps = 40

	exp := New(cfg, "", quietLogger())
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	original := exp.Scene().Body.WindDirection()
	if _, err := exp.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(exp.Events()) == 0 || exp.Events()[0].Type != EventWindFlip {
		t.Fatalf("expected wind flips, got %+v", exp.Events())
	}
	if exp.Scene().Body.WindDirection() == original {
		t.Error("wind direction should have moved")
	}
}

func TestBuildVolumeFromFiles(t *testing.T) {
	dir := t.TempDir()
	node := "4 3 0 0\n1 0 0 0\n2 -1 0 0\n3 0 0 1\n4 0 -1 0\n# footer\n"
	ele := "1 4 0\n1 1 2 3 4\n# footer\n"
	if err := os.WriteFile(filepath.Join(dir, "m.node"), []byte(node), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "m.ele"), []byte(ele), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Name = "tet"
	cfg.Kind = config.KindVolume
	cfg.Anchors = nil
	cfg.Mesh = config.MeshConfig{NodeFile: "m.node", EleFile: "m.ele", Strict: true}

	scene, err := Build(cfg, dir, quietLogger())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(scene.Volume.Tetrahedra) != 1 || len(scene.Body.Springs()) != 6 {
		t.Errorf("expected 1 tetrahedron and 6 springs, got %d and %d",
			len(scene.Volume.Tetrahedra), len(scene.Body.Springs()))
	}
	if len(scene.Volume.Unmapped) != 0 {
		t.Errorf("node vertices should all map, unmapped %v", scene.Volume.Unmapped)
	}

	cfg.Mesh.NodeFile = "missing.node"
	if _, err := Build(cfg, dir, quietLogger()); err == nil {
		t.Error("expected error for missing mesh file")
	}
}

func TestDefaultTrack(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{0}},
		{2, []int{0, 1}},
		{11, []int{0, 5, 10}},
	}
	for _, tt := range tests {
		got := DefaultTrack(tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("DefaultTrack(%d) = %v, want %v", tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("DefaultTrack(%d) = %v, want %v", tt.n, got, tt.want)
			}
		}
	}
}
