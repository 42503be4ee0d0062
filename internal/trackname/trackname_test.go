package trackname

import (
	"math/rand"
	"strings"
	"testing"
)

var allStyles = []string{
	"house", "techno", "hard-tekno", "breakbeat", "idm",
	"jungle", "hip-hop", "trap", "ambient", "drum&bass",
}

func TestGenerateDeterminism(t *testing.T) {
	for _, styleName := range allStyles {
		a := New(rand.New(rand.NewSource(42)))
		b := New(rand.New(rand.NewSource(42)))
		for i := 0; i < 20; i++ {
			na, nb := a.Generate(styleName), b.Generate(styleName)
			if na != nb {
				t.Fatalf("style %s draw %d: %q != %q", styleName, i, na, nb)
			}
		}
	}
}

func TestGenerateFilesystemSafe(t *testing.T) {
	for _, styleName := range allStyles {
		g := New(rand.New(rand.NewSource(7)))
		for i := 0; i < 50; i++ {
			name := g.Generate(styleName)
			if name == "" {
				t.Fatalf("style %s produced an empty name", styleName)
			}
			if strings.ContainsAny(name, `/\:*?"<>|`) || strings.Contains(name, "\x00") {
				t.Errorf("style %s produced unsafe name %q", styleName, name)
			}
			if strings.Contains(name, "  ") {
				t.Errorf("style %s produced uncollapsed spaces in %q", styleName, name)
			}
			if runes := []rune(name); len(runes) > maxNameLength {
				t.Errorf("style %s produced %d rune name %q", styleName, len(runes), name)
			}
		}
	}
}

func TestGenerateUnknownStyleFallsBack(t *testing.T) {
	g := New(rand.New(rand.NewSource(3)))
	if name := g.Generate("polka"); name == "" {
		t.Fatal("unknown style produced an empty name")
	}
}

func TestStrategyTablesComplete(t *testing.T) {
	if len(styleStrategies) != len(allStyles) {
		t.Fatalf("strategy table has %d styles, want %d", len(styleStrategies), len(allStyles))
	}
	for _, styleName := range allStyles {
		strategies, ok := styleStrategies[styleName]
		if !ok {
			t.Errorf("no strategies for style %s", styleName)
			continue
		}
		if len(strategies) < 3 {
			t.Errorf("style %s has only %d strategies", styleName, len(strategies))
		}
		if _, ok := specialFormats[styleName]; !ok {
			t.Errorf("no special formats for style %s", styleName)
		}
	}
}

func TestClean(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)))
	tests := []struct {
		in   string
		want string
	}{
		{"Acid Rain", "Acid Rain"},
		{"Acid/Rain", "Acid-Rain"},
		{`Back\Slash`, "Back-Slash"},
		{"Mix: Two", "Mix - Two"},
		{"What?", "What"},
		{`Say "Hi"`, "Say 'Hi'"},
		{"<tag>", "(tag)"},
		{"a|b", "aIb"},
		{"2*2", "2x2"},
		{"  spaced   out  ", "spaced out"},
		{"a\t\nb", "a b"},
	}
	for _, tt := range tests {
		if got := g.clean(tt.in); got != tt.want {
			t.Errorf("clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanEmptyName(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)))
	name := g.clean("???")
	if !strings.HasPrefix(name, "Track_") {
		t.Fatalf("empty name fallback = %q, want Track_ prefix", name)
	}
	if len(name) != len("Track_")+4 {
		t.Fatalf("fallback name %q has unexpected length", name)
	}
}

func TestCleanCapsLength(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)))
	name := g.clean(strings.Repeat("a", 150))
	if runes := []rune(name); len(runes) != maxNameLength {
		t.Fatalf("capped name has %d runes, want %d", len(runes), maxNameLength)
	}
	if !strings.HasSuffix(name, "...") {
		t.Fatalf("capped name %q does not end with ellipsis", name)
	}
}
