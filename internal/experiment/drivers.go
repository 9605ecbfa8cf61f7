package experiment

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/collision"
	"github.com/san-kum/softsim/internal/control"
	"github.com/san-kum/softsim/internal/dynamo"
)

// Event types emitted by scene drivers.
const (
	EventWindFlip   = "wind_flip"
	EventActivate   = "activate"
	EventDeactivate = "deactivate"
	EventRelease    = "release"
)

type emitFunc func(b *dynamo.Body, kind string, detail map[string]string)

type windDriver struct {
	osc  *control.WindOscillator
	emit emitFunc
}

func (w *windDriver) Update(b *dynamo.Body, dt float64) {
	if w.osc.Update(dt) {
		w.emit(b, EventWindFlip, map[string]string{"opposite": strconv.FormatBool(w.osc.Opposite())})
	}
}

// playerDriver walks the player and lets the activator follow it.
type playerDriver struct {
	player    *collision.Player
	velocity  mgl64.Vec3
	activator *control.Activator
	emit      emitFunc
}

func (p *playerDriver) Update(b *dynamo.Body, dt float64) {
	center := p.player.Box.Center().Add(p.velocity.Mul(dt))
	p.player.MoveTo(center)
	if p.activator == nil || !p.activator.Track(center) {
		return
	}
	kind := EventDeactivate
	if p.activator.Active() {
		kind = EventActivate
	}
	p.emit(b, kind, nil)
}

type releaseDriver struct {
	trigger *control.ReleaseTrigger
	at      float64
	elapsed float64
	emit    emitFunc
}

func (r *releaseDriver) Update(b *dynamo.Body, dt float64) {
	if r.trigger.Fired() {
		return
	}
	r.elapsed += dt
	if r.elapsed >= r.at && r.trigger.Fire() {
		r.emit(b, EventRelease, map[string]string{"fixed": strconv.Itoa(b.FixedCount())})
	}
}
