package control

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/geom"
)

type Pausable interface {
	Pause()
	Resume()
}

// Activator resumes its bodies on Enter and pauses them on Exit. Repeated
// calls in the same state do nothing.
type Activator struct {
	// Region, when set, lets Track drive Enter and Exit from a point.
	Region *geom.Box

	bodies []Pausable
	active bool
}

func NewActivator(bodies ...Pausable) *Activator {
	return &Activator{bodies: bodies}
}

func (a *Activator) Add(b Pausable) { a.bodies = append(a.bodies, b) }

// Enter resumes every body. It reports whether the state changed.
func (a *Activator) Enter() bool {
	if a.active {
		return false
	}
	for _, b := range a.bodies {
		b.Resume()
	}
	a.active = true
	return true
}

// Exit pauses every body. It reports whether the state changed.
func (a *Activator) Exit() bool {
	if !a.active {
		return false
	}
	for _, b := range a.bodies {
		b.Pause()
	}
	a.active = false
	return true
}

// Track enters or exits according to whether p lies inside Region.
func (a *Activator) Track(p mgl64.Vec3) bool {
	if a.Region == nil {
		return false
	}
	if a.Region.Contains(p) {
		return a.Enter()
	}
	return a.Exit()
}

func (a *Activator) Active() bool { return a.active }

type Releasable interface {
	ReleaseAnchors()
}

// ReleaseTrigger frees the anchors of its target once.
type ReleaseTrigger struct {
	target Releasable
	fired  bool
}

func NewReleaseTrigger(target Releasable) *ReleaseTrigger {
	return &ReleaseTrigger{target: target}
}

// Fire releases the anchors on the first call and reports whether it did.
func (r *ReleaseTrigger) Fire() bool {
	if r.fired {
		return false
	}
	r.target.ReleaseAnchors()
	r.fired = true
	return true
}

func (r *ReleaseTrigger) Fired() bool { return r.fired }
