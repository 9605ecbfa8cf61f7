// Package recording persists per-step render vertices and scene events so a
// run can be replayed without re-simulating it.
//
// A recording is a directory holding:
//
//	manifest.json     layout and vertex count
//	frames.bin.zst    zstd stream of length-prefixed little-endian frames
//	events.jsonl.sz   snappy-framed JSON lines, one per control event
//
// Each frame is step (uint64), time (float64 bits), vertex count (uint32)
// followed by count x,y,z float64 triples.
package recording
