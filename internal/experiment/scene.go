package experiment

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/collision"
	"github.com/san-kum/softsim/internal/config"
	"github.com/san-kum/softsim/internal/control"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/integrators"
	"github.com/san-kum/softsim/internal/meshio"
	"github.com/san-kum/softsim/internal/physics"
	"github.com/san-kum/softsim/internal/tetra"
)

// Scene is a built body with the scene glue its config asks for.
type Scene struct {
	Config *config.Config
	Body   *dynamo.Body
	// Volume is set for volumetric scenes.
	Volume *physics.Volume
	// Triangles of the render mesh, when the scene has one.
	Triangles []int

	Player    *collision.Player
	Wind      *control.WindOscillator
	Activator *control.Activator
	Release   *control.ReleaseTrigger
}

// Build constructs the body described by cfg. Relative mesh paths are
// resolved against baseDir.
func Build(cfg *config.Config, baseDir string, logger *slog.Logger) (*Scene, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{Config: cfg}
	opts := []dynamo.Option{
		dynamo.WithName(cfg.Name),
		dynamo.WithLogger(logger.With("body", cfg.Name)),
		dynamo.WithRand(rand.New(rand.NewSource(cfg.Seed))),
	}
	if cfg.Activation != nil {
		opts = append(opts, dynamo.WithPaused())
	}
	if p := cfg.Player; p != nil {
		weight := p.Weight
		if weight == 0 {
			weight = config.DefaultPlayerWeight
		}
		s.Player = collision.NewPlayer(p.Center, p.Size, weight)
	}

	var err error
	switch cfg.Kind {
	case config.KindChain:
		s.Body, err = buildChain(cfg, opts)
	case config.KindCloth:
		s.Body, s.Triangles, err = buildCloth(cfg, baseDir, opts)
	case config.KindVolume:
		s.Volume, s.Triangles, err = buildVolume(cfg, baseDir, s.Player, logger, opts)
		if s.Volume != nil {
			s.Body = s.Volume.Body
		}
	}
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.Name, err)
	}

	if cfg.WindOscillation != nil {
		seed := cfg.Seed + 1
		s.Wind = control.NewWindOscillator(cfg.WindOscillation.MaxTimer, rand.New(rand.NewSource(seed)), s.Body)
	}
	if cfg.Activation != nil {
		region := cfg.Activation.Build()
		s.Activator = control.NewActivator(s.Body)
		s.Activator.Region = &region
	}
	if cfg.ReleaseAt > 0 {
		s.Release = control.NewReleaseTrigger(s.Body)
	}
	return s, nil
}

func buildChain(cfg *config.Config, opts []dynamo.Option) (*dynamo.Body, error) {
	g := cfg.Generator
	frame := cfg.Transform.Build()
	local := physics.Line(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{g.Length, 0, 0}, g.Segments)
	points := make([]mgl64.Vec3, len(local))
	for i, p := range local {
		points[i] = frame.Point(p)
	}
	spec := physics.ChainSpec{
		Points:  points,
		Fixed:   cfg.Fixed,
		Anchors: config.Boxes(cfg.Anchors),
	}
	return physics.NewChain(spec, cfg.Params, integrators.New, opts...)
}

func buildCloth(cfg *config.Config, baseDir string, opts []dynamo.Option) (*dynamo.Body, []int, error) {
	var verts []mgl64.Vec3
	var tris []int
	if cfg.Mesh.OBJFile != "" {
		mesh, err := meshio.LoadOBJ(resolve(baseDir, cfg.Mesh.OBJFile))
		if err != nil {
			return nil, nil, err
		}
		verts, tris = mesh.Vertices, mesh.Triangles
	} else {
		g := cfg.Generator
		verts, tris = physics.Grid(g.Width, g.Height, g.NX, g.NY)
	}

	spec := physics.ClothSpec{
		Vertices:  verts,
		Triangles: tris,
		Frame:     cfg.Transform.Build(),
		Coords:    dynamo.CoordMode(cfg.Coords),
		Anchors:   config.Boxes(cfg.Anchors),
		Fixed:     cfg.Fixed,
	}
	body, err := physics.NewCloth(spec, cfg.Params, integrators.New, opts...)
	if err != nil {
		return nil, nil, err
	}
	return body, tris, nil
}

func buildVolume(cfg *config.Config, baseDir string, player *collision.Player, logger *slog.Logger, opts []dynamo.Option) (*physics.Volume, []int, error) {
	mode := meshio.Permissive
	if cfg.Mesh.Strict {
		mode = meshio.Strict
	}

	var nodes []mgl64.Vec3
	var elements [][4]int
	if cfg.Mesh.NodeFile != "" {
		mesh, err := meshio.LoadTetMesh(resolve(baseDir, cfg.Mesh.NodeFile), resolve(baseDir, cfg.Mesh.EleFile), mode)
		if err != nil {
			return nil, nil, err
		}
		nodes, elements = mesh.Nodes, mesh.Elements
	} else {
		g := cfg.Generator
		nodes, elements = physics.Cuboid(g.Size, g.NX, g.NY, g.NZ)
	}

	var render []mgl64.Vec3
	var tris []int
	switch {
	case cfg.Mesh.OBJFile != "":
		mesh, err := meshio.LoadOBJ(resolve(baseDir, cfg.Mesh.OBJFile))
		if err != nil {
			return nil, nil, err
		}
		render, tris = mesh.Vertices, mesh.Triangles
	case cfg.Mesh.NodeFile == "":
		render = physics.BoxSurface(cfg.Generator.Size)
	}

	res, err := tetra.ParseResolution(cfg.Resolution)
	if err != nil {
		return nil, nil, err
	}

	spec := physics.VolumeSpec{
		Nodes:          nodes,
		Elements:       elements,
		RenderVertices: render,
		Frame:          cfg.Transform.Build(),
		Anchors:        config.Boxes(cfg.Anchors),
		Fixed:          cfg.Fixed,
		Resolution:     res,
		Colliders:      config.Boxes(cfg.Colliders),
		Permanent:      cfg.PermanentCollision,
		Player:         player,
		Logger:         logger,
	}

	vol, err := physics.NewVolume(spec, cfg.Params, integrators.New, opts...)
	if err != nil {
		return nil, nil, err
	}
	return vol, tris, nil
}

func resolve(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
