// Package engine holds the five track generators: rhythm, bassline,
// sub-bass, harmonic accompaniment and lead melody. Each generator reads
// the shared song.Structure for section, intensity, harmony and gating
// context, draws from an injected random source, and returns a flat
// time-ordered event list for its instrument role. Generation is pure
// computation; writing MIDI is the sink's job.
package engine

// Event is the universal generator output: an absolute time in seconds
// from track start, a MIDI note number and a velocity. Most generators
// emit only note-ons and leave release timing to the MIDI sink; the
// sub-bass generator emits explicit on/off pairs, the off carrying a
// release velocity.
type Event struct {
	Time     float64
	Note     uint8
	Velocity uint8
}

// clampVelocity keeps a computed velocity inside the sounding MIDI range.
func clampVelocity(v int) uint8 {
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

// clampRange clamps v to [lo, hi].
func clampRange(v, lo, hi int) uint8 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return uint8(v)
}

// clampNote keeps a pitch inside the MIDI note range.
func clampNote(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}
