package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Kind != KindCloth {
		t.Errorf("expected kind cloth, got %s", cfg.Kind)
	}
	if cfg.Params.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Params.Gravity != (mgl64.Vec3{0, -9.8, 0}) {
		t.Errorf("unexpected default gravity %v", cfg.Params.Gravity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := `name: jelly
kind: volume
params:
  gravity: [0, -3, 0]
  dt: 0.017
  stiffness: 510
  scheme: verlet
  wind:
    direction: [1, 0, 0]
    strength: 5
colliders:
  - center: [0, -1, 0]
    size: [10, 1, 10]
permanent_collision: true
resolution: nearest
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Kind != KindVolume || cfg.Name != "jelly" {
		t.Errorf("unexpected scene %s/%s", cfg.Name, cfg.Kind)
	}
	if cfg.Params.Gravity != (mgl64.Vec3{0, -3, 0}) {
		t.Errorf("gravity not loaded: %v", cfg.Params.Gravity)
	}
	if cfg.Params.Scheme != dynamo.Verlet {
		t.Errorf("expected verlet, got %s", cfg.Params.Scheme)
	}
	if cfg.Params.DRotation != dynamo.DefaultParams().DRotation {
		t.Error("unset params should keep defaults")
	}
	if len(cfg.Colliders) != 1 || !cfg.PermanentCollision {
		t.Errorf("colliders not loaded: %+v", cfg.Colliders)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := DefaultConfig()
	cfg.Params.Stiffness = 1234
	cfg.Track = []int{0, 5}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Params != cfg.Params {
		t.Errorf("params changed:\n got %+v\nwant %+v", loaded.Params, cfg.Params)
	}
	if len(loaded.Track) != 2 || loaded.Track[1] != 5 {
		t.Errorf("track not preserved: %v", loaded.Track)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"kind", func(c *Config) { c.Kind = "fluid" }},
		{"scheme", func(c *Config) { c.Params.Scheme = "rk4" }},
		{"coords", func(c *Config) { c.Coords = "polar" }},
		{"resolution", func(c *Config) { c.Resolution = "random" }},
		{"dt", func(c *Config) { c.Params.Dt = 0 }},
		{"mesh", func(c *Config) { c.Mesh.NodeFile = "a.node" }},
		{"release", func(c *Config) { c.ReleaseAt = -1 }},
		{"activation", func(c *Config) { c.Activation = &BoxConfig{Size: mgl64.Vec3{1, 1, 1}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kind = " Volume "
	cfg.Params.Scheme = "2"
	cfg.Coords = "LOCAL"

	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if cfg.Kind != KindVolume || cfg.Params.Scheme != dynamo.SymplecticEuler || cfg.Coords != "local" {
		t.Errorf("not normalized: %s %s %s", cfg.Kind, cfg.Params.Scheme, cfg.Coords)
	}
}

func TestGetPreset(t *testing.T) {
	p, ok := GetPreset(KindCloth, "configuration-2")
	if !ok {
		t.Fatal("expected preset")
	}
	if p.Stiffness != 4000 || p.BendStiffness != 1600 || p.Mass != 1.96 {
		t.Errorf("unexpected preset values %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	p, ok = GetPreset(KindCloth, "configuration-5")
	if !ok || p.Scheme != dynamo.ExplicitEuler {
		t.Errorf("configuration-5 should use explicit euler, got %q", p.Scheme)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, ok := GetPreset(KindCloth, "nonexistent"); ok {
		t.Error("expected miss for nonexistent preset")
	}
	if _, ok := GetPreset("fluid", "configuration-1"); ok {
		t.Error("expected miss for nonexistent kind")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets(KindVolume)
	want := []string{"configuration-1", "configuration-2", "configuration-3"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("preset %d: expected %s, got %s", i, want[i], presets[i])
		}
	}

	if ListPresets("fluid") != nil {
		t.Error("expected nil for nonexistent kind")
	}
}

func TestApplyAssignments(t *testing.T) {
	p := dynamo.DefaultParams()
	if err := ApplyAssignments(&p, []string{"stiffness=500", " wind_random = 2.5", "gravity_y=-1"}); err != nil {
		t.Fatalf("ApplyAssignments failed: %v", err)
	}
	if p.Stiffness != 500 || p.Wind.Random != 2.5 || p.Gravity[1] != -1 {
		t.Errorf("assignments not applied: %+v", p)
	}

	for _, bad := range []string{"stiffness", "stiffness=abc", "viscosity=1"} {
		if err := ApplyAssignments(&p, []string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if len(ParamNames()) != len(ParamMap(p)) {
		t.Error("ParamNames and ParamMap disagree")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SOFTSIM_DATA="+filepath.Join(dir, "runs")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDataDir, "")
	os.Unsetenv(EnvDataDir)
	t.Setenv(EnvLogLevel, "debug")

	env, err := LoadEnv(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if env.DataDir != filepath.Join(dir, "runs") {
		t.Errorf("expected data dir from file, got %s", env.DataDir)
	}
	if env.LogLevel != "debug" {
		t.Errorf("existing variable should win, got %s", env.LogLevel)
	}
}
