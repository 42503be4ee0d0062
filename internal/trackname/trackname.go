// Package trackname invents release-style names for generated tracks.
package trackname

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// maxNameLength keeps names comfortable for every common filesystem.
const maxNameLength = 100

// specialFormatChance is the probability of decorating a name with
// style-specific formatting.
const specialFormatChance = 0.15

// strategy produces one candidate name.
type strategy func(*Generator) string

// styleStrategies maps a style name to its naming strategies. Unknown
// styles fall back to the techno strategies.
var styleStrategies = map[string][]strategy{
	"house": {
		(*Generator).houseSoulful,
		(*Generator).houseGroovy,
		(*Generator).houseClassic,
		(*Generator).houseDisco,
	},
	"techno": {
		(*Generator).technoDystopian,
		(*Generator).technoUnderground,
		(*Generator).technoFuturistic,
		(*Generator).technoMachineSoul,
	},
	"hard-tekno": {
		(*Generator).hardTeknoAggressive,
		(*Generator).hardTeknoDistorted,
		(*Generator).hardTeknoChaos,
		(*Generator).hardTeknoRawEnergy,
	},
	"breakbeat": {
		(*Generator).breakbeatFunky,
		(*Generator).breakbeatUrban,
		(*Generator).breakbeatOldSchool,
	},
	"idm": {
		(*Generator).idmGlitch,
		(*Generator).idmComplex,
		(*Generator).idmExperimental,
	},
	"jungle": {
		(*Generator).jungleRagga,
		(*Generator).jungleMassive,
		(*Generator).jungleClassic,
	},
	"hip-hop": {
		(*Generator).hipHopBoomBap,
		(*Generator).hipHopStreet,
		(*Generator).hipHopClassic,
	},
	"trap": {
		(*Generator).trapModern,
		(*Generator).trapStreet,
		(*Generator).trap808,
	},
	"ambient": {
		(*Generator).ambientPoetic,
		(*Generator).ambientAtmospheric,
		(*Generator).ambientMeditative,
	},
	"drum&bass": {
		(*Generator).dnbLiquid,
		(*Generator).dnbNeurofunk,
		(*Generator).dnbJungle,
	},
}

// specialFormats decorates a finished name, keyed by style name.
var specialFormats = map[string][]func(string) string{
	"house": {
		func(n string) string { return "♫ " + n + " ♫" },
		func(n string) string { return "★ " + n + " ★" },
		func(n string) string { return n + " (Extended Mix)" },
		func(n string) string { return n + " (Club Mix)" },
		func(n string) string { return n + " (Dub)" },
	},
	"techno": {
		func(n string) string { return "[" + n + "]" },
		func(n string) string { return "▶ " + n + " ◀" },
		func(n string) string { return n + " [UNMASTERED]" },
		func(n string) string { return n + " [303 ACID MIX]" },
	},
	"hard-tekno": {
		func(n string) string { return "!!! " + n + " !!!" },
		func(n string) string { return "▓▓▓ " + n + " ▓▓▓" },
		func(n string) string { return "☢ " + n + " ☢" },
		strings.ToUpper,
	},
	"breakbeat": {
		func(n string) string { return "[" + n + "]" },
		func(n string) string { return n + " (Breaks)" },
		func(n string) string { return n + " - Original" },
	},
	"idm": {
		func(n string) string { return strings.ReplaceAll(strings.ToLower(n), " ", "_") },
		func(n string) string { return strings.ReplaceAll(strings.ToLower(n), " ", ".") },
		func(n string) string { return "[" + strings.ToLower(n) + "]" },
	},
	"jungle": {
		func(n string) string { return ">>> " + n + " <<<" },
		func(n string) string { return n + " (Jungle Mix)" },
		func(n string) string { return n + " VIP" },
	},
	"hip-hop": {
		func(n string) string { return n + " (Instrumental)" },
		func(n string) string { return n + " [SP-1200]" },
		func(n string) string { return "** " + n + " **" },
	},
	"trap": {
		func(n string) string { return "💎 " + n },
		func(n string) string { return "🔥 " + n + " 🔥" },
		func(n string) string { return n + " [BANGER]" },
	},
	"ambient": {
		func(n string) string { return "~ " + n + " ~" },
		func(n string) string { return "∞ " + n },
		func(n string) string { return n + " (Meditation)" },
	},
	"drum&bass": {
		func(n string) string { return "▶▶ " + n },
		func(n string) string { return n + " (Liquid)" },
		func(n string) string { return n + " (Neurofunk)" },
	},
}

// unsafeChars rewrites characters that break paths or shells.
var unsafeChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", " -",
	"*", "x",
	"?", "",
	"\"", "'",
	"<", "(",
	">", ")",
	"|", "I",
	"\x00", "",
)

var multiSpace = regexp.MustCompile(`\s+`)

// Generator invents track names from a seeded random source.
type Generator struct {
	rng *rand.Rand
}

// New creates a name generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate invents a name appropriate for the given style. Unknown styles
// get techno names.
func (g *Generator) Generate(styleName string) string {
	strategies, ok := styleStrategies[styleName]
	if !ok {
		strategies = styleStrategies["techno"]
	}

	name := strategies[g.rng.Intn(len(strategies))](g)

	if g.rng.Float64() < specialFormatChance {
		name = g.specialFormat(name, styleName)
	}

	return g.clean(name)
}

func (g *Generator) specialFormat(name, styleName string) string {
	formats, ok := specialFormats[styleName]
	if !ok {
		formats = specialFormats["techno"]
	}
	return formats[g.rng.Intn(len(formats))](name)
}

// clean makes a name filesystem-safe and caps its length.
func (g *Generator) clean(name string) string {
	cleaned := unsafeChars.Replace(name)
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))

	if cleaned == "" {
		cleaned = fmt.Sprintf("Track_%d", g.number(1000, 9999))
	}

	if runes := []rune(cleaned); len(runes) > maxNameLength {
		cleaned = string(runes[:maxNameLength-3]) + "..."
	}
	return cleaned
}

// pick returns a uniformly chosen word.
func (g *Generator) pick(words []string) string {
	return words[g.rng.Intn(len(words))]
}

// number returns a uniform integer in [lo, hi].
func (g *Generator) number(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
