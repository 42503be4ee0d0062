package song

import (
	"math"
	"math/rand"
	"testing"

	"github.com/yrbane/acidgrid/internal/style"
)

func newTestStructure(measures int, styleName string, seed int64) *Structure {
	return New(measures, style.Get(styleName), rand.New(rand.NewSource(seed)))
}

func TestShortTechnoStructure(t *testing.T) {
	s := newTestStructure(32, style.Techno, 1)

	if len(s.Sections) != 3 {
		t.Fatalf("expected 3 sections for 32 measures, got %d", len(s.Sections))
	}

	want := []struct {
		name       string
		start, end int
	}{
		{"intro", 0, 4},
		{"main", 4, 24},
		{"outro", 24, 32},
	}
	for i, w := range want {
		sec := s.Sections[i]
		if sec.Name != w.name || sec.Start != w.start || sec.End != w.end {
			t.Errorf("section %d = %s[%d,%d), want %s[%d,%d)",
				i, sec.Name, sec.Start, sec.End, w.name, w.start, w.end)
		}
	}

	if got := s.Section(10).Name; got != "main" {
		t.Errorf("Section(10) = %s, want main", got)
	}
}

func TestSectionCoverage(t *testing.T) {
	lengths := []int{3, 8, 16, 32, 33, 48, 64, 65, 96, 128, 192, 256}
	for _, name := range style.Available() {
		for _, total := range lengths {
			s := newTestStructure(total, name, 7)

			if s.Sections[0].Start != 0 {
				t.Errorf("%s/%d: first section starts at %d", name, total, s.Sections[0].Start)
			}
			last := s.Sections[len(s.Sections)-1]
			if last.End != total {
				t.Errorf("%s/%d: last section ends at %d, want %d", name, total, last.End, total)
			}
			for i := 1; i < len(s.Sections); i++ {
				if s.Sections[i].Start != s.Sections[i-1].End {
					t.Errorf("%s/%d: gap between %s and %s (%d != %d)",
						name, total, s.Sections[i-1].Name, s.Sections[i].Name,
						s.Sections[i-1].End, s.Sections[i].Start)
				}
			}
			for m := 0; m < total; m++ {
				sec := s.Section(m)
				if m < sec.Start || m >= sec.End {
					t.Fatalf("%s/%d: Section(%d) returned %s[%d,%d)",
						name, total, m, sec.Name, sec.Start, sec.End)
				}
			}
		}
	}
}

func TestTemplateFallback(t *testing.T) {
	// Ambient's long plateaus cannot tile 32 measures, so the short
	// intro/main/outro layout takes over.
	s := newTestStructure(32, style.Ambient, 43)
	if len(s.Sections) != 3 {
		t.Fatalf("expected 3 fallback sections, got %d", len(s.Sections))
	}
	for i, want := range []string{"intro", "main", "outro"} {
		if s.Sections[i].Name != want {
			t.Errorf("section %d = %s, want %s", i, s.Sections[i].Name, want)
		}
	}
}

func TestSectionClamping(t *testing.T) {
	s := newTestStructure(64, style.Techno, 3)

	if got := s.Section(-5); got.Name != s.Sections[0].Name {
		t.Errorf("negative measure should clamp to first section, got %s", got.Name)
	}
	if got := s.Section(1000); got.Name != s.Sections[len(s.Sections)-1].Name {
		t.Errorf("past-the-end measure should clamp to last section, got %s", got.Name)
	}
}

func TestIntensityBlendContinuity(t *testing.T) {
	s := newTestStructure(128, style.Techno, 11)

	for i := 0; i < len(s.Sections)-1; i++ {
		cur := s.Sections[i]
		next := s.Sections[i+1]

		// At the boundary the blend must have narrowed the jump to at most
		// the difference still covered by the final blend step.
		atEnd := s.Intensity(cur.End - 1)
		atNext := s.Intensity(next.Start)
		jump := math.Abs(atNext - atEnd)
		full := math.Abs(next.Intensity - cur.Intensity)
		if jump > full+1e-9 {
			t.Errorf("boundary %s->%s: jump %f exceeds section delta %f",
				cur.Name, next.Name, jump, full)
		}

		// Inside the blend zone intensity moves monotonically toward the
		// next section's level.
		span := cur.End - cur.Start
		blendStart := cur.Start + int(math.Ceil(float64(span)*0.75))
		for m := blendStart; m < cur.End-1; m++ {
			a, b := s.Intensity(m), s.Intensity(m+1)
			if next.Intensity > cur.Intensity && b < a-1e-9 {
				t.Errorf("blend zone %s m=%d: intensity decreased %f -> %f", cur.Name, m, a, b)
			}
			if next.Intensity < cur.Intensity && b > a+1e-9 {
				t.Errorf("blend zone %s m=%d: intensity increased %f -> %f", cur.Name, m, a, b)
			}
		}
	}
}

func TestIntensityFlatOutsideBlendZone(t *testing.T) {
	s := newTestStructure(64, style.Techno, 5)
	drop := s.Sections[2] // drop[16,32)

	if got := s.Intensity(drop.Start); got != drop.Intensity {
		t.Errorf("Intensity at section start = %f, want %f", got, drop.Intensity)
	}
	mid := drop.Start + (drop.End-drop.Start)/2
	if got := s.Intensity(mid); got != drop.Intensity {
		t.Errorf("Intensity at section middle = %f, want %f", got, drop.Intensity)
	}
}

func TestChordCadence(t *testing.T) {
	s := newTestStructure(128, style.Techno, 13)

	for _, sec := range s.Sections {
		prev := s.Harmony(sec.Start).Chord
		for m := sec.Start + 1; m < sec.End; m++ {
			cur := s.Harmony(m).Chord
			if cur != prev && (m-sec.Start)%4 != 0 {
				t.Errorf("section %s: chord changed at measure %d (offset %d, not a multiple of 4)",
					sec.Name, m, m-sec.Start)
			}
			prev = cur
		}
	}
}

func TestHarmonyChordProgression(t *testing.T) {
	s := newTestStructure(64, style.Techno, 17)
	prog := s.Mood.Progression()

	sec := s.Sections[2] // drop[16,32): 16 measures, one full progression pass
	for i := 0; i < 4; i++ {
		m := sec.Start + i*4
		got := s.Harmony(m).Chord
		if got != prog[i] {
			t.Errorf("measure %d: chord = %s, want %s", m, got, prog[i])
		}
	}
}

func TestHarmonyScaleMatchesKey(t *testing.T) {
	s := newTestStructure(64, style.Techno, 19)
	for m := 0; m < 64; m += 4 {
		h := s.Harmony(m)
		scale := h.Key.Scale()
		if len(h.Scale) != len(scale) {
			t.Fatalf("measure %d: scale length %d, want %d", m, len(h.Scale), len(scale))
		}
		for i := range scale {
			if h.Scale[i] != scale[i] {
				t.Errorf("measure %d: scale[%d] = %d, want %d", m, i, h.Scale[i], scale[i])
			}
		}
	}
}

func TestShouldPlayMemoized(t *testing.T) {
	s := newTestStructure(64, style.Techno, 23)

	instruments := []Instrument{
		InstrumentDrums, InstrumentBass, InstrumentSubBass, InstrumentAccomp, InstrumentLead,
	}
	for m := 0; m < 64; m++ {
		for _, inst := range instruments {
			first := s.ShouldPlay(m, inst)
			for i := 0; i < 5; i++ {
				if s.ShouldPlay(m, inst) != first {
					t.Fatalf("ShouldPlay(%d, %s) changed between calls", m, inst)
				}
			}
		}
	}
}

func TestShouldPlayFixedRules(t *testing.T) {
	s := newTestStructure(64, style.Techno, 29)

	// Sub-bass never plays in the intro, drums always play in drops.
	intro := s.Sections[0]
	for m := intro.Start; m < intro.End; m++ {
		if s.ShouldPlay(m, InstrumentSubBass) {
			t.Errorf("sub-bass should be silent in intro (measure %d)", m)
		}
	}
	drop := s.Sections[2]
	for m := drop.Start; m < drop.End; m++ {
		if !s.ShouldPlay(m, InstrumentDrums) {
			t.Errorf("drums should always play in drop (measure %d)", m)
		}
		if !s.ShouldPlay(m, InstrumentSubBass) {
			t.Errorf("sub-bass should always play in drop (measure %d)", m)
		}
	}
}

func TestGateRuleNormalization(t *testing.T) {
	// hip-hop structures use verse/hook sections, which gate like drops;
	// trap's "break" section also falls through to the drop rule.
	s := newTestStructure(64, style.HipHop, 31)
	for _, sec := range s.Sections {
		rule := s.gateRuleFor(sec.Start)
		switch {
		case sec.Name == "intro":
			if rule != gateRules["intro"] {
				t.Errorf("intro rule mismatch")
			}
		case sec.Name == "outro":
			if rule != gateRules["outro"] {
				t.Errorf("outro rule mismatch")
			}
		default:
			if rule != gateRules["drop"] {
				t.Errorf("section %s should use the drop rule", sec.Name)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := newTestStructure(96, style.Trap, 42)
	b := newTestStructure(96, style.Trap, 42)

	if a.StartKey != b.StartKey || a.Mood != b.Mood {
		t.Fatalf("same seed produced different key/mood: %s/%s vs %s/%s",
			a.StartKey, a.Mood, b.StartKey, b.Mood)
	}
	for m := 0; m < 96; m++ {
		if a.VelocityCurve(m, 100) != b.VelocityCurve(m, 100) {
			t.Fatalf("velocity curve diverged at measure %d", m)
		}
		for _, inst := range []Instrument{InstrumentDrums, InstrumentLead} {
			if a.ShouldPlay(m, inst) != b.ShouldPlay(m, inst) {
				t.Fatalf("gating diverged at measure %d for %s", m, inst)
			}
		}
	}
}

func TestVelocityCurveBounds(t *testing.T) {
	s := newTestStructure(128, style.HardTekno, 37)
	for m := 0; m < 128; m++ {
		for _, base := range []int{1, 40, 80, 127} {
			v := s.VelocityCurve(m, base)
			if v < 1 || v > 127 {
				t.Errorf("VelocityCurve(%d, %d) = %d, out of [1,127]", m, base, v)
			}
		}
	}
}

func TestMoodMatchesStyleTable(t *testing.T) {
	for _, name := range style.Available() {
		s := newTestStructure(64, name, 41)
		allowed := styleMoods[name]
		found := false
		for _, m := range allowed {
			if s.Mood == m {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("style %s chose mood %s outside its table %v", name, s.Mood, allowed)
		}
	}
}

func TestKeyScales(t *testing.T) {
	scale := KeyAMinor.Scale()
	want := []int{57, 59, 60, 62, 64, 65, 67, 69}
	for i := range want {
		if scale[i] != want[i] {
			t.Errorf("A minor scale[%d] = %d, want %d", i, scale[i], want[i])
		}
	}

	// Unknown keys fall back to A minor rather than failing.
	if got := Key("H_minor").Scale()[0]; got != 57 {
		t.Errorf("unknown key scale root = %d, want 57", got)
	}
}
