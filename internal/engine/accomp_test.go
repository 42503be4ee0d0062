package engine

import (
	"testing"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
)

func TestAccompanimentEventBounds(t *testing.T) {
	structure := testStructure(128, style.Techno, 19)
	a := NewAccompaniment(structure, style.Get(style.Techno), testRNG(19))

	events := a.Generate(128, 132)

	measureDuration := 4 * 60.0 / 132.0
	total := 128 * measureDuration

	for i, ev := range events {
		if ev.Velocity < 1 || ev.Velocity > 127 {
			t.Fatalf("event %d: velocity %d out of range", i, ev.Velocity)
		}
		if ev.Time < 0 || ev.Time >= total {
			t.Fatalf("event %d: time %v outside the track", i, ev.Time)
		}
		if ev.Note < 40 || ev.Note > 120 {
			t.Fatalf("event %d: note %d outside the accompaniment register", i, ev.Note)
		}
	}
}

func TestAccompanimentDeterminism(t *testing.T) {
	gen := func() []Event {
		structure := testStructure(96, style.IDM, 23)
		a := NewAccompaniment(structure, style.Get(style.IDM), testRNG(14))
		return a.Generate(96, 120)
	}

	if !sameEvents(gen(), gen()) {
		t.Fatal("identical seeds must produce identical accompaniment tracks")
	}
}

func TestAccompanimentGatedMeasuresSilent(t *testing.T) {
	structure := testStructure(64, style.HipHop, 3)
	a := NewAccompaniment(structure, style.Get(style.HipHop), testRNG(3))

	events := a.Generate(64, 90)

	measureDuration := 4 * 60.0 / 90.0
	for m := 0; m < 64; m++ {
		if structure.ShouldPlay(m, song.InstrumentAccomp) {
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

func TestChordNotesStayInScale(t *testing.T) {
	structure := testStructure(32, style.Techno, 4)
	a := NewAccompaniment(structure, style.Get(style.Techno), testRNG(4))

	// Every drawn enrichment must yield pitches from the context scale,
	// possibly raised one octave.
	for trial := 0; trial < 50; trial++ {
		ctx := structure.Harmony(trial % 32)
		inScale := make(map[int]bool, 2*len(ctx.Scale))
		for _, n := range ctx.Scale {
			inScale[n] = true
			inScale[n+12] = true
		}

		for _, n := range a.chordNotes(ctx) {
			if !inScale[n] {
				t.Fatalf("chord note %d not in scale for chord %s", n, ctx.Chord)
			}
		}
	}
}
