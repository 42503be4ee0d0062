package engine

import (
	"testing"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
)

func TestLeadRegisterAndVelocity(t *testing.T) {
	structure := testStructure(128, style.Trap, 27)
	l := NewLead(structure, testRNG(27))

	events := l.Generate(128, 140)

	measureDuration := 4 * 60.0 / 140.0
	total := 128 * measureDuration

	for i, ev := range events {
		if ev.Note < 57 || ev.Note > 77 {
			t.Fatalf("event %d: note %d outside the lead register", i, ev.Note)
		}
		if ev.Velocity < 1 || ev.Velocity > 127 {
			t.Fatalf("event %d: velocity %d out of range", i, ev.Velocity)
		}
		if ev.Time < 0 || ev.Time >= total {
			t.Fatalf("event %d: time %v outside the track", i, ev.Time)
		}
	}
}

func TestLeadDeterminism(t *testing.T) {
	gen := func() []Event {
		structure := testStructure(96, style.Jungle, 15)
		l := NewLead(structure, testRNG(33))
		return l.Generate(96, 165)
	}

	if !sameEvents(gen(), gen()) {
		t.Fatal("identical seeds must produce identical lead tracks")
	}
}

func TestLeadGatedPhrasesSilent(t *testing.T) {
	structure := testStructure(64, style.Ambient, 8)
	l := NewLead(structure, testRNG(8))

	events := l.Generate(64, 80)

	measureDuration := 4 * 60.0 / 80.0
	for phrase := 0; phrase < 64; phrase += leadPhraseMeasures {
		if structure.ShouldPlay(phrase, song.InstrumentLead) {
			continue
		}
		lo := float64(phrase) * measureDuration
		hi := lo + float64(leadPhraseMeasures)*measureDuration
		for _, ev := range events {
			if ev.Time >= lo && ev.Time < hi {
				t.Fatalf("gated phrase at measure %d has an event at %v", phrase, ev.Time)
			}
		}
	}
}

func TestLeadScaleFallback(t *testing.T) {
	for _, key := range []song.Key{song.KeyEMinor, song.KeyFMinor, song.KeyGMinor, song.Key("H_minor")} {
		scale := leadScaleFor(key)
		if len(scale) != 10 || scale[0] != 57 {
			t.Fatalf("key %s: expected the A minor fallback scale, got %v", key, scale)
		}
	}
	if scale := leadScaleFor(song.KeyDMinor); scale[0] != 62 {
		t.Fatalf("expected the D minor lead scale, got %v", scale)
	}
}
