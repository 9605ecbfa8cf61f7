package dynamo

import (
	"log/slog"
	"math/rand"

	"github.com/san-kum/softsim/internal/geom"
)

type Option func(*Body)

func WithName(name string) Option {
	return func(b *Body) { b.name = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Body) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRand sets the source of the per-node wind jitter.
func WithRand(r *rand.Rand) Option {
	return func(b *Body) {
		if r != nil {
			b.rng = r
		}
	}
}

// WithVisibility installs the predicate gating Step. A hidden body does not advance.
func WithVisibility(visible func() bool) Option {
	return func(b *Body) { b.visible = visible }
}

func WithElastic(m ElasticModel) Option {
	return func(b *Body) { b.elastic = m }
}

func WithCollider(c Collider) Option {
	return func(b *Body) { b.collider = c }
}

func WithContact(c ContactVolume) Option {
	return func(b *Body) { b.contact = c }
}

func WithMapper(m VertexMapper) Option {
	return func(b *Body) { b.mapper = m }
}

// WithFrame sets the mesh-to-world transform.
func WithFrame(t geom.Transform) Option {
	return func(b *Body) { b.frame = t }
}

func WithCoordMode(m CoordMode) Option {
	return func(b *Body) { b.coords = m }
}

// WithDensityMass derives node masses from Node.Volume times Params.Density
// instead of Params.Mass.
func WithDensityMass() Option {
	return func(b *Body) { b.densityMass = true }
}

// WithPaused builds the body in the paused state.
func WithPaused() Option {
	return func(b *Body) { b.paused.Store(true) }
}
