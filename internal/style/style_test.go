package style

import "testing"

func TestGetKnownStyle(t *testing.T) {
	s := Get(Techno)
	if s.Name != Techno {
		t.Errorf("expected techno, got %s", s.Name)
	}
	if s.TempoMin != 128 || s.TempoMax != 135 {
		t.Errorf("unexpected techno tempo range %d-%d", s.TempoMin, s.TempoMax)
	}
	if s.StructureType != StructureProgressive {
		t.Errorf("expected progressive structure, got %s", s.StructureType)
	}
}

func TestGetUnknownStyleFallsBack(t *testing.T) {
	s := Get("polka")
	if s.Name != Techno {
		t.Errorf("unknown style should fall back to techno, got %s", s.Name)
	}
}

func TestAvailableCount(t *testing.T) {
	names := Available()
	if len(names) != 10 {
		t.Fatalf("expected 10 styles, got %d", len(names))
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate style name %s", n)
		}
		seen[n] = true
		if Get(n).Name != n {
			t.Errorf("Get(%s) returned %s", n, Get(n).Name)
		}
	}
}

func TestResolveTempo(t *testing.T) {
	s := Get(House)

	tests := []struct {
		name      string
		requested int
		want      int
		honored   bool
	}{
		{"zero uses default", 0, 124, true},
		{"in range honored", 126, 126, true},
		{"below range falls back", 100, 124, false},
		{"above range falls back", 140, 124, false},
		{"boundary min", 120, 120, true},
		{"boundary max", 128, 128, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, honored := s.ResolveTempo(tt.requested)
			if got != tt.want || honored != tt.honored {
				t.Errorf("ResolveTempo(%d) = (%d, %v), want (%d, %v)",
					tt.requested, got, honored, tt.want, tt.honored)
			}
		})
	}
}

func TestDensityAndSwingBounds(t *testing.T) {
	for _, name := range Available() {
		s := Get(name)
		if s.SynthDensity < 0 || s.SynthDensity > 1 {
			t.Errorf("%s synth density out of range: %f", name, s.SynthDensity)
		}
		if s.DefaultSwing < 0 || s.DefaultSwing > 1 {
			t.Errorf("%s swing out of range: %f", name, s.DefaultSwing)
		}
		if s.TempoMin > s.DefaultTempo || s.DefaultTempo > s.TempoMax {
			t.Errorf("%s default tempo %d outside range %d-%d",
				name, s.DefaultTempo, s.TempoMin, s.TempoMax)
		}
		if len(s.RhythmPatterns) == 0 || len(s.BasslineRiffs) == 0 {
			t.Errorf("%s has empty pattern or riff preferences", name)
		}
	}
}
