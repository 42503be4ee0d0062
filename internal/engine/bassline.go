package engine

import (
	"math/rand"
	"strings"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
)

// riff is a 16-step bassline template: hit flags, semitone offsets from the
// measure's root, and slide flags marking legato glides from the previous
// step's pitch.
type riff struct {
	pattern     [16]bool
	notes       [16]int
	slides      [16]bool
	description string
}

func makeRiff(pattern, notes, slides [16]int, description string) riff {
	var r riff
	for i := 0; i < 16; i++ {
		r.pattern[i] = pattern[i] != 0
		r.notes[i] = notes[i]
		r.slides[i] = slides[i] != 0
	}
	r.description = description
	return r
}

// riffNames fixes the draw order for the riff library.
var riffNames = []string{
	"acid_303", "detroit_funk", "berlin_minimal", "uk_rave", "chicago_jack",
	"rolling_thunder", "warehouse_stomp", "hypnotic_loop", "sub_pressure",
	"techno_gallop", "syncopated_groove", "stepped_ascent", "broken_eighth",
	"tribal_pump", "stutter_bass", "deep_rumble", "octave_jump", "off_grid",
	"ascending_thirds", "bouncing_bass",
}

var riffLibrary = map[string]riff{
	"acid_303": makeRiff(
		[16]int{1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0},
		[16]int{0, 0, 12, 0, 0, 7, 0, 5, 0, 0, 0, 3, 0, 7, 12, 0},
		[16]int{0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0},
		"Classic acid bassline"),
	"detroit_funk": makeRiff(
		[16]int{1, 0, 0, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 0},
		[16]int{0, 0, 0, -5, 0, 7, 0, 0, 0, 5, 0, 3, 0, 0, 12, 0},
		[16]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		"Detroit techno funk"),
	"berlin_minimal": makeRiff(
		[16]int{1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0},
		[16]int{0, 0, 0, 0, 0, 0, -12, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		[16]int{},
		"Minimal Berlin style"),
	"uk_rave": makeRiff(
		[16]int{1, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0},
		[16]int{0, 0, 0, 7, 7, 0, 5, 0, 0, 0, 0, 3, 3, 0, 7, 0},
		[16]int{0, 1, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0},
		"UK rave bassline"),
	"chicago_jack": makeRiff(
		[16]int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
		[16]int{0, 0, 12, 0, 0, 0, 7, 0, 0, 0, 5, 0, 0, 0, 3, 0},
		[16]int{},
		"Chicago jack bass"),
	"rolling_thunder": makeRiff(
		[16]int{1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 0},
		[16]int{0, 2, 5, 0, 7, 5, 3, 0, 0, 2, 5, 0, 7, 10, 12, 0},
		[16]int{0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0},
		"Rolling bassline"),
	"warehouse_stomp": makeRiff(
		[16]int{1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0, 0},
		[16]int{0, 0, 0, 0, 0, 0, 12, 0, -12, 0, 0, 0, 0, 7, 0, 0},
		[16]int{0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		"Warehouse stomp"),
	"hypnotic_loop": makeRiff(
		[16]int{1, 0, 1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0},
		[16]int{0, 0, 3, 0, 0, 5, 0, 7, 0, 5, 0, 0, 3, 0, 0, 0},
		[16]int{0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0},
		"Hypnotic loop"),
	"sub_pressure": makeRiff(
		[16]int{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
		[16]int{-12, 0, 0, 0, -12, 0, 0, 0, -7, 0, 0, 0, -5, 0, 0, 0},
		[16]int{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
		"Sub pressure bass"),
	"techno_gallop": makeRiff(
		[16]int{1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0, 1},
		[16]int{0, 0, 0, 5, 0, 7, 0, 12, 0, 0, 0, 5, 0, 3, 0, 0},
		[16]int{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
		"Galloping techno bass"),
	"syncopated_groove": makeRiff(
		[16]int{1, 0, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 0, 1},
		[16]int{0, 0, 0, 7, 5, 0, 3, 0, 0, 12, 0, 7, 5, 0, 0, 0},
		[16]int{0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
		"Syncopated groove bass"),
	"stepped_ascent": makeRiff(
		[16]int{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
		[16]int{0, 0, 0, 0, 3, 0, 0, 0, 7, 0, 0, 0, 12, 0, 0, 0},
		[16]int{0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
		"Stepping ascent"),
	"broken_eighth": makeRiff(
		[16]int{1, 0, 1, 0, 0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 1, 0},
		[16]int{0, 0, 5, 0, 0, 0, 7, 0, 12, 0, 0, 0, 7, 0, 5, 0},
		[16]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		"Broken eighth notes"),
	"tribal_pump": makeRiff(
		[16]int{1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0},
		[16]int{0, -5, 0, 7, 0, 5, 0, 0, 0, -7, 0, 3, 0, 0, 5, 0},
		[16]int{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0},
		"Tribal pumping bass"),
	"stutter_bass": makeRiff(
		[16]int{1, 1, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 1, 0, 1},
		[16]int{0, 0, 0, 5, 0, 0, 7, 0, 12, 12, 12, 0, 0, 7, 0, 0},
		[16]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
		"Stuttering bass pattern"),
	"deep_rumble": makeRiff(
		[16]int{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0},
		[16]int{-12, 0, 0, 0, 0, 0, 0, 0, -12, 0, 0, 0, 0, 0, -7, 0},
		[16]int{1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0},
		"Deep minimal rumble"),
	"octave_jump": makeRiff(
		[16]int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
		[16]int{0, 0, 12, 0, 0, 0, 12, 0, 7, 0, 19, 0, 5, 0, 17, 0},
		[16]int{0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0},
		"Octave jumping bass"),
	"off_grid": makeRiff(
		[16]int{1, 0, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 1},
		[16]int{0, 0, 0, 5, 0, 3, 0, 0, 7, 0, 0, 12, 0, 0, 7, 5},
		[16]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
		"Off-grid syncopation"),
	"ascending_thirds": makeRiff(
		[16]int{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
		[16]int{0, 0, 3, 0, 5, 0, 7, 0, 10, 0, 12, 0, 7, 0, 3, 0},
		[16]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0},
		"Ascending thirds pattern"),
	"bouncing_bass": makeRiff(
		[16]int{1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0},
		[16]int{0, 7, 0, 0, 12, 7, 0, 0, 0, 5, 0, 0, 3, 7, 0, 0},
		[16]int{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
		"Bouncing bass pattern"),
}

// bassKeyRoots maps each key to its bass-register root pitch.
var bassKeyRoots = map[song.Key]int{
	song.KeyAMinor: 33,
	song.KeyDMinor: 38,
	song.KeyEMinor: 40,
	song.KeyFMinor: 41,
	song.KeyGMinor: 43,
}

// bassChordOffsets maps chord symbols to semitone offsets from the key
// root. Symbols outside the table contribute no offset.
var bassChordOffsets = map[song.Chord]int{
	song.ChordI:      0,
	song.ChordII:     2,
	song.ChordIII:    3,
	song.ChordIV:     5,
	song.ChordV:      7,
	song.ChordVI:     8,
	song.ChordVII:    10,
	song.ChordFlatII: 1,
}

// Bassline generates the melodic bass track.
type Bassline struct {
	structure *song.Structure
	style     style.Style
	rng       *rand.Rand
	history   []string
}

// NewBassline builds a bassline generator bound to the structure and style.
func NewBassline(structure *song.Structure, st style.Style, rng *rand.Rand) *Bassline {
	return &Bassline{structure: structure, style: st, rng: rng}
}

// Generate renders measures of bassline at the given tempo. The riff is
// re-chosen every eight played measures and varied every measure.
func (g *Bassline) Generate(measures, tempo int) []Event {
	var events []Event

	stepDuration := 60.0 / (float64(tempo) * 4)
	measureDuration := 4 * 60.0 / float64(tempo)

	g.history = g.history[:0]
	currentTime := 0.0
	currentRiff := ""
	played := 0

	for measure := 0; measure < measures; measure++ {
		if !g.structure.ShouldPlay(measure, song.InstrumentBass) {
			currentTime += measureDuration
			continue
		}

		ctx := g.structure.Harmony(measure)
		intensity := ctx.Intensity

		if played%8 == 0 || currentRiff == "" {
			currentRiff = g.chooseRiff(ctx, measure)
			currentRiff = g.avoidRiffRepetition(currentRiff)
			g.pushRiffHistory(currentRiff)
		}
		played++

		varied := g.varyRiff(riffLibrary[currentRiff], intensity)
		root := bassRootNote(ctx)

		for step := 0; step < 16; step++ {
			if !varied.pattern[step] {
				continue
			}
			stepTime := currentTime + float64(step)*stepDuration
			note := root + varied.notes[step]

			if step > 0 && varied.slides[step] {
				events = append(events, g.slide(root+varied.notes[step-1], note, stepTime-stepDuration, stepTime)...)
				continue
			}

			base := 80.0
			switch {
			case step%4 == 0:
				base *= 1.1
			case step%2 == 0:
				base *= 0.9
			default:
				base *= 0.8
			}

			vel := g.structure.VelocityCurve(measure, int(base*(0.7+intensity*0.3)))
			vel += g.rng.Intn(11) - 5
			events = append(events, Event{Time: stepTime, Note: clampNote(note), Velocity: clampRange(vel, 30, 127)})
		}

		currentTime += measureDuration
	}

	return events
}

// bassRootNote resolves the harmonic context to a bass root pitch.
func bassRootNote(ctx song.HarmonicContext) int {
	root, ok := bassKeyRoots[ctx.Key]
	if !ok {
		root = bassKeyRoots[song.KeyAMinor]
	}
	return root + bassChordOffsets[ctx.Chord]
}

// chooseRiff picks a riff for the section, biased by the style's preferred
// list with low-energy riffs for intros and breakdowns.
func (g *Bassline) chooseRiff(ctx song.HarmonicContext, measure int) string {
	preferred := g.style.BasslineRiffs
	if len(preferred) == 0 {
		preferred = riffNames
	}

	pick := func(subset ...string) string {
		options := filterNames(preferred, subset...)
		if len(options) == 0 {
			options = preferred
		}
		return options[g.rng.Intn(len(options))]
	}

	section := ctx.Section
	switch {
	case strings.Contains(section, "intro") || ctx.Intensity < 0.3:
		return pick("berlin_minimal", "sub_pressure", "hypnotic_loop")
	case strings.Contains(section, "build"):
		if ctx.Intensity < 0.6 {
			return pick("hypnotic_loop", "warehouse_stomp", "detroit_funk")
		}
		return pick("rolling_thunder", "techno_gallop", "uk_rave", "acid_303")
	case strings.Contains(section, "drop") || strings.Contains(section, "main") || ctx.Intensity > 0.8:
		return preferred[g.rng.Intn(len(preferred))]
	case strings.Contains(section, "break"):
		return pick("detroit_funk", "hypnotic_loop", "berlin_minimal", "sub_pressure")
	}
	return preferred[g.rng.Intn(len(preferred))]
}

// avoidRiffRepetition rerolls when the last three chosen riffs were all the
// same as the new one.
func (g *Bassline) avoidRiffRepetition(name string) string {
	if len(g.history) < 3 {
		return name
	}
	for _, h := range g.history[len(g.history)-3:] {
		if h != name {
			return name
		}
	}
	others := make([]string, 0, len(riffNames)-1)
	for _, r := range riffNames {
		if r != name {
			others = append(others, r)
		}
	}
	return others[g.rng.Intn(len(others))]
}

func (g *Bassline) pushRiffHistory(name string) {
	g.history = append(g.history, name)
	if len(g.history) > 8 {
		g.history = g.history[1:]
	}
}

// varyRiff applies one random variation pass plus an intensity-driven
// density adjustment, leaving the library copy untouched.
func (g *Bassline) varyRiff(r riff, intensity float64) riff {
	varied := r

	switch g.rng.Intn(5) {
	case 1: // octave jump
		for i := 0; i < 16; i++ {
			if varied.pattern[i] && g.rng.Float64() < 0.2 {
				if g.rng.Intn(2) == 0 {
					varied.notes[i] -= 12
				} else {
					varied.notes[i] += 12
				}
			}
		}
	case 2: // note skip
		for i := 0; i < 16; i++ {
			if g.rng.Float64() < 0.1 {
				varied.pattern[i] = false
			}
		}
	case 3: // double time
		if intensity > 0.7 {
			for i := 0; i < 16; i += 2 {
				if !varied.pattern[i] && g.rng.Float64() < 0.3 {
					varied.pattern[i] = true
					if i > 0 {
						varied.notes[i] = varied.notes[i-1] + []int{2, 3, 5}[g.rng.Intn(3)]
					}
				}
			}
		}
	case 4: // syncopate: rotate one step right
		if g.rng.Float64() < 0.5 {
			lastP, lastN := varied.pattern[15], varied.notes[15]
			copy(varied.pattern[1:], r.pattern[:15])
			copy(varied.notes[1:], r.notes[:15])
			varied.pattern[0], varied.notes[0] = lastP, lastN
		}
	}

	if intensity < 0.4 {
		for i := 0; i < 16; i++ {
			if g.rng.Float64() < 0.3 {
				varied.pattern[i] = false
			}
		}
	} else if intensity > 0.9 {
		extras := []int{0, 3, 5, 7, 12}
		for i := 0; i < 16; i++ {
			if !varied.pattern[i] && g.rng.Float64() < 0.2 {
				varied.pattern[i] = true
				varied.notes[i] = extras[g.rng.Intn(len(extras))]
			}
		}
	}

	return varied
}

// slide synthesizes four intermediate notes gliding from the previous pitch
// into the current one with a velocity crescendo.
func (g *Bassline) slide(startNote, endNote int, startTime, endTime float64) []Event {
	events := make([]Event, 0, 4)
	noteStep := float64(endNote-startNote) / 4
	timeStep := (endTime - startTime) / 4

	for i := 0; i < 4; i++ {
		t := startTime + float64(i+1)*timeStep
		n := int(float64(startNote) + float64(i+1)*noteStep)
		events = append(events, Event{Time: t, Note: clampNote(n), Velocity: uint8(60 + i*10)})
	}
	return events
}
