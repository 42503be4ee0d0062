package engine

import (
	"math"
	"testing"

	"github.com/yrbane/acidgrid/internal/style"
	"github.com/yrbane/acidgrid/internal/timesig"
)

func TestSubBassPairing(t *testing.T) {
	structure := testStructure(64, style.Techno, 5)
	sb := NewSubBass(structure, timesig.Common, testRNG(5))

	events := sb.Generate(64, 128)
	if len(events) == 0 {
		t.Fatal("expected sub-bass events across 64 measures")
	}
	if len(events)%2 != 0 {
		t.Fatalf("events must come in on/off pairs, got odd count %d", len(events))
	}

	for i := 0; i < len(events); i += 2 {
		on, off := events[i], events[i+1]
		if off.Note != on.Note {
			t.Fatalf("pair %d: off note %d does not match on note %d", i/2, off.Note, on.Note)
		}
		if off.Time <= on.Time {
			t.Fatalf("pair %d: off at %v not after on at %v", i/2, off.Time, on.Time)
		}
		if on.Velocity < 1 || on.Velocity > 127 {
			t.Fatalf("pair %d: attack velocity %d out of range", i/2, on.Velocity)
		}
		if off.Velocity < 60 || off.Velocity > 80 {
			t.Fatalf("pair %d: release velocity %d outside [60,80]", i/2, off.Velocity)
		}
	}
}

func TestSubBassRegister(t *testing.T) {
	structure := testStructure(48, style.House, 9)
	sb := NewSubBass(structure, timesig.Common, testRNG(2))

	for i, ev := range sb.Generate(48, 122) {
		if ev.Note < 21 || ev.Note > 48 {
			t.Fatalf("event %d: note %d outside the sub register", i, ev.Note)
		}
	}
}

func TestSubBassDeterminism(t *testing.T) {
	gen := func() []Event {
		structure := testStructure(160, style.DrumAndBass, 31)
		sb := NewSubBass(structure, timesig.Common, testRNG(8))
		return sb.Generate(160, 174)
	}

	if !sameEvents(gen(), gen()) {
		t.Fatal("identical seeds must produce identical sub-bass tracks")
	}
}

func TestSubBassMeterAdaptation(t *testing.T) {
	meter, err := timesig.Parse("3/4")
	if err != nil {
		t.Fatal(err)
	}

	structure := testStructure(64, style.Techno, 13)
	sb := NewSubBass(structure, meter, testRNG(13))

	events := sb.Generate(64, 120)

	beatDuration := 60.0 / 120.0
	measureDuration := 3 * beatDuration
	for i := 0; i < len(events); i += 2 {
		offset := math.Mod(events[i].Time, measureDuration) / beatDuration
		if offset >= 3 {
			t.Fatalf("pair %d: note-on at beat offset %v beyond a 3/4 measure", i/2, offset)
		}
	}
}
