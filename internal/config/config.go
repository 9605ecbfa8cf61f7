package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/geom"
	"github.com/san-kum/softsim/internal/tetra"
)

const (
	DefaultSteps        = 1000
	DefaultSampleEvery  = 10
	DefaultSeed         = 1
	DefaultSegments     = 10
	DefaultGridCells    = 12
	DefaultCubeCells    = 3
	DefaultPlayerWeight = 2.0
)

// Body kinds.
const (
	KindChain  = "chain"
	KindCloth  = "cloth"
	KindVolume = "volume"
)

type Config struct {
	Name   string        `yaml:"name"`
	Kind   string        `yaml:"kind"`
	Params dynamo.Params `yaml:"params"`
	Coords string        `yaml:"coords"`

	Transform TransformConfig `yaml:"transform"`
	Anchors   []BoxConfig     `yaml:"anchors,omitempty"`
	Fixed     []int           `yaml:"fixed,omitempty"`

	Colliders          []BoxConfig   `yaml:"colliders,omitempty"`
	PermanentCollision bool          `yaml:"permanent_collision"`
	Player             *PlayerConfig `yaml:"player,omitempty"`

	WindOscillation *OscillationConfig `yaml:"wind_oscillation,omitempty"`
	// Activation pauses the body until the player enters this region.
	Activation *BoxConfig `yaml:"activation,omitempty"`
	// ReleaseAt frees every anchor after this many seconds; 0 never does.
	ReleaseAt float64 `yaml:"release_at,omitempty"`

	Mesh       MeshConfig      `yaml:"mesh"`
	Generator  GeneratorConfig `yaml:"generator"`
	Resolution string          `yaml:"resolution"`

	Steps       int   `yaml:"steps"`
	SampleEvery int   `yaml:"sample_every"`
	Seed        int64 `yaml:"seed"`
	Track       []int `yaml:"track,omitempty"`
}

type TransformConfig struct {
	Translation mgl64.Vec3 `yaml:"translation"`
	RotationDeg mgl64.Vec3 `yaml:"rotation_deg"`
	Scale       mgl64.Vec3 `yaml:"scale"`
}

func (t TransformConfig) Build() geom.Transform {
	return geom.NewTransform(t.Translation, t.RotationDeg, t.Scale)
}

type BoxConfig struct {
	Center mgl64.Vec3 `yaml:"center"`
	Size   mgl64.Vec3 `yaml:"size"`
}

func (b BoxConfig) Build() geom.Box {
	return geom.NewBox(b.Center, b.Size)
}

func Boxes(cfgs []BoxConfig) []geom.Box {
	out := make([]geom.Box, len(cfgs))
	for i, c := range cfgs {
		out[i] = c.Build()
	}
	return out
}

type PlayerConfig struct {
	Center mgl64.Vec3 `yaml:"center"`
	Size   mgl64.Vec3 `yaml:"size"`
	Weight float64    `yaml:"weight"`
	// Velocity moves the player every step.
	Velocity mgl64.Vec3 `yaml:"velocity"`
}

type OscillationConfig struct {
	MaxTimer float64 `yaml:"max_timer"`
}

type MeshConfig struct {
	NodeFile string `yaml:"node_file,omitempty"`
	EleFile  string `yaml:"ele_file,omitempty"`
	OBJFile  string `yaml:"obj_file,omitempty"`
	Strict   bool   `yaml:"strict"`
}

// GeneratorConfig sizes the procedural geometry used when no mesh is given.
type GeneratorConfig struct {
	Segments int        `yaml:"segments"`
	Length   float64    `yaml:"length"`
	Width    float64    `yaml:"width"`
	Height   float64    `yaml:"height"`
	NX       int        `yaml:"nx"`
	NY       int        `yaml:"ny"`
	NZ       int        `yaml:"nz"`
	Size     mgl64.Vec3 `yaml:"size"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:   "flag",
		Kind:   KindCloth,
		Params: dynamo.DefaultParams(),
		Coords: string(dynamo.Global),
		Transform: TransformConfig{
			Scale: mgl64.Vec3{1, 1, 1},
		},
		Anchors: []BoxConfig{
			{Center: mgl64.Vec3{-1, 0, 0}, Size: mgl64.Vec3{0.1, 2.2, 1}},
		},
		Generator: GeneratorConfig{
			Segments: DefaultSegments,
			Length:   2,
			Width:    2,
			Height:   2,
			NX:       DefaultGridCells,
			NY:       DefaultGridCells,
			NZ:       DefaultCubeCells,
			Size:     mgl64.Vec3{1, 1, 1},
		},
		Resolution:  string(tetra.First),
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Seed:        DefaultSeed,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the selectors and numeric bounds of the scene.
func (c *Config) Validate() error {
	switch c.Kind {
	case KindChain, KindCloth, KindVolume:
	default:
		return fmt.Errorf("config: unknown kind %q", c.Kind)
	}
	if _, err := dynamo.ParseScheme(string(c.Params.Scheme)); err != nil {
		return err
	}
	if _, err := dynamo.ParseCoordMode(c.Coords); err != nil {
		return err
	}
	if _, err := tetra.ParseResolution(c.Resolution); err != nil {
		return err
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Steps < 0 || c.SampleEvery < 0 {
		return fmt.Errorf("config: steps and sample_every must be non-negative")
	}
	if c.ReleaseAt < 0 {
		return fmt.Errorf("config: release_at must be non-negative")
	}
	if c.Activation != nil && c.Player == nil {
		return fmt.Errorf("config: activation requires a player")
	}
	if (c.Mesh.NodeFile == "") != (c.Mesh.EleFile == "") {
		return fmt.Errorf("config: mesh.node_file and mesh.ele_file must be set together")
	}
	return nil
}

// Normalize rewrites selector aliases to their canonical names.
func (c *Config) Normalize() error {
	c.Kind = strings.ToLower(strings.TrimSpace(c.Kind))
	s, err := dynamo.ParseScheme(string(c.Params.Scheme))
	if err != nil {
		return err
	}
	c.Params.Scheme = s
	if c.Coords == "" {
		c.Coords = string(dynamo.Global)
	}
	m, err := dynamo.ParseCoordMode(c.Coords)
	if err != nil {
		return err
	}
	c.Coords = string(m)
	return nil
}
