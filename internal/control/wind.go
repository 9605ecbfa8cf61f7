package control

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// WindTarget is anything with a mutable wind direction.
type WindTarget interface {
	WindDirection() mgl64.Vec3
	SetWindDirection(d mgl64.Vec3)
}

// WindOscillator reverses the wind of its targets every time its timer
// expires. Directions ease toward the goal at rate dt/2 per update; nothing
// moves before the first expiry.
type WindOscillator struct {
	MaxTimer float64

	targets  []WindTarget
	original []mgl64.Vec3
	rng      *rand.Rand
	timer    float64
	opposite bool
	started  bool
	flips    int
}

func NewWindOscillator(maxTimer float64, rng *rand.Rand, targets ...WindTarget) *WindOscillator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	w := &WindOscillator{
		MaxTimer: maxTimer,
		rng:      rng,
		timer:    maxTimer,
	}
	for _, t := range targets {
		w.Add(t)
	}
	return w
}

// Add registers a target, remembering its current direction as the original.
func (w *WindOscillator) Add(t WindTarget) {
	w.targets = append(w.targets, t)
	w.original = append(w.original, t.WindDirection())
}

// Update advances the timer by dt and eases every target toward its goal.
// It reports whether the direction flipped during this update.
func (w *WindOscillator) Update(dt float64) bool {
	flipped := false
	if w.timer <= 0 {
		w.opposite = !w.opposite
		w.started = true
		w.timer = w.MaxTimer * (w.MaxTimer + w.rng.Float64()*0.5*w.MaxTimer)
		w.flips++
		flipped = true
	} else {
		w.timer -= dt
	}

	if !w.started {
		return flipped
	}

	rate := mgl64.Clamp(dt/2, 0, 1)
	for i, t := range w.targets {
		goal := w.original[i]
		if w.opposite {
			goal = goal.Mul(-1)
		}
		d := t.WindDirection()
		t.SetWindDirection(d.Add(goal.Sub(d).Mul(rate)))
	}
	return flipped
}

// Opposite reports whether targets are currently heading to the reversed wind.
func (w *WindOscillator) Opposite() bool { return w.opposite }

// Remaining returns the time left until the next flip.
func (w *WindOscillator) Remaining() float64 { return w.timer }

func (w *WindOscillator) Flips() int { return w.flips }

// Reset restores the original directions and timer.
func (w *WindOscillator) Reset() {
	for i, t := range w.targets {
		t.SetWindDirection(w.original[i])
	}
	w.timer = w.MaxTimer
	w.opposite = false
	w.started = false
	w.flips = 0
}
