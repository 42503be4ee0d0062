package engine

import (
	"testing"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
)

func TestBasslineEventBounds(t *testing.T) {
	structure := testStructure(96, style.Techno, 21)
	b := NewBassline(structure, style.Get(style.Techno), testRNG(4))

	events := b.Generate(96, 130)

	measureDuration := 4 * 60.0 / 130.0
	total := 96 * measureDuration

	for i, ev := range events {
		if ev.Velocity < 30 || ev.Velocity > 127 {
			t.Fatalf("event %d: velocity %d out of range", i, ev.Velocity)
		}
		if ev.Time < 0 || ev.Time >= total {
			t.Fatalf("event %d: time %v outside the track", i, ev.Time)
		}
	}
}

func TestBasslineDeterminism(t *testing.T) {
	gen := func() []Event {
		structure := testStructure(128, style.HardTekno, 6)
		b := NewBassline(structure, style.Get(style.HardTekno), testRNG(17))
		return b.Generate(128, 150)
	}

	if !sameEvents(gen(), gen()) {
		t.Fatal("identical seeds must produce identical basslines")
	}
}

func TestBasslineGatedMeasuresSilent(t *testing.T) {
	structure := testStructure(64, style.Techno, 2)
	b := NewBassline(structure, style.Get(style.Techno), testRNG(2))

	events := b.Generate(64, 128)

	measureDuration := 4 * 60.0 / 128.0
	for m := 0; m < 64; m++ {
		if structure.ShouldPlay(m, song.InstrumentBass) {
			continue
		}
		lo := float64(m) * measureDuration
		hi := lo + measureDuration
		for _, ev := range events {
			if ev.Time >= lo && ev.Time < hi {
				t.Fatalf("gated measure %d has an event at %v", m, ev.Time)
			}
		}
	}
}

func TestBasslineRiffLibraryShape(t *testing.T) {
	if len(riffNames) != len(riffLibrary) {
		t.Fatalf("riff name order lists %d riffs, library holds %d", len(riffNames), len(riffLibrary))
	}
	for _, name := range riffNames {
		r, ok := riffLibrary[name]
		if !ok {
			t.Fatalf("riff %q listed but not defined", name)
		}
		if !r.pattern[0] {
			t.Errorf("riff %q does not hit on the downbeat", name)
		}
		if r.description == "" {
			t.Errorf("riff %q has no description", name)
		}
	}
}
