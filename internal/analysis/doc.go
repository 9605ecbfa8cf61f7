// Package analysis inspects sampled node trajectories.
//
//   - [FFT], [PowerSpectrum], [DominantFrequency]: oscillation content of a
//     sampled coordinate
//   - [Crossings]: positive-going crossings of a level, used to count
//     oscillations about a rest position
//   - [NewPhasePortrait]: position against finite-difference velocity, with
//     an ASCII renderer
//
// # Usage
//
//	ys := analysis.Component(res.Positions, 0, 1) // first tracked node, Y
//	f := analysis.DominantFrequency(ys, dt*float64(sampleEvery))
package analysis
