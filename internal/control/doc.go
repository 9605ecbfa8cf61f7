// Package control drives bodies from scene events rather than from forces.
//
//   - [WindOscillator]: swings the wind of registered bodies between its
//     original direction and the opposite one on a randomized timer
//   - [Activator]: resumes a group of bodies when a tracked point enters a
//     region and pauses them when it leaves
//   - [ReleaseTrigger]: frees every anchor of a body the first time it fires
//
// # Usage
//
//	osc := control.NewWindOscillator(3, rng, flag)
//	for {
//	    flag.Step()
//	    osc.Update(dt)
//	}
//
// Controllers report whether they changed anything so callers can log or
// record the event.
package control
