package engine

import (
	"math"
	"math/rand"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
)

// chordDegrees maps chord symbols to scale-degree triads. Symbols outside
// the table fall back to the tonic triad.
var chordDegrees = map[song.Chord][]int{
	song.ChordI:       {0, 2, 4},
	song.ChordII:      {1, 3, 5},
	song.ChordIII:     {2, 4, 6},
	song.ChordIV:      {3, 5, 7},
	song.ChordVMaj:    {4, 6, 1},
	song.ChordVI:      {5, 7, 2},
	song.ChordVII:     {6, 1, 3},
	song.ChordFlatVII: {5, 7, 2},
}

type texture int

const (
	textureStabs texture = iota
	textureArpeggios
	textureSustained
	textureFiltered
)

type textureWeight struct {
	texture texture
	weight  float64
}

// arpVariant describes one arpeggio shape: which steps to render at what
// beat division, the note order, and the velocity range per note.
type arpVariant struct {
	name        string
	division    float64
	steps       []int
	prob        float64
	velLo       int
	velHi       int
	octaveBoost bool // raise steps 8 to 11 one octave
	build       func(chord []int) []int
}

func arpUp(chord []int) []int {
	return append(append([]int(nil), chord...), chord[0]+12)
}

func arpDown(chord []int) []int {
	return reverseNotes(arpUp(chord))
}

func reverseNotes(notes []int) []int {
	out := make([]int, len(notes))
	for i, n := range notes {
		out[len(notes)-1-i] = n
	}
	return out
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

var arpVariants = []arpVariant{
	{name: "classic_16th", division: 0.25, steps: seq(16), prob: 0.85, velLo: 30, velHi: 55, build: arpUp},
	{name: "classic_down", division: 0.25, steps: seq(16), prob: 0.85, velLo: 30, velHi: 55, build: arpDown},
	{name: "octave_up", division: 0.25, steps: seq(16), prob: 0.8, velLo: 35, velHi: 60, octaveBoost: true, build: arpUp},
	{name: "octave_down", division: 0.25, steps: seq(16), prob: 0.8, velLo: 35, velHi: 60, build: func(chord []int) []int {
		return append([]int{chord[0] + 12}, reverseNotes(chord)...)
	}},
	{name: "pingpong", division: 0.25, steps: seq(16), prob: 0.85, velLo: 30, velHi: 55, build: func(chord []int) []int {
		return append(arpUp(chord), reverseNotes(chord)...)
	}},
	{name: "broken", division: 0.25, steps: seq(16), prob: 0.75, velLo: 30, velHi: 55, build: func(chord []int) []int {
		if len(chord) >= 3 {
			return []int{chord[0], chord[2], chord[1], chord[2]}
		}
		return append(append([]int(nil), chord...), chord[0])
	}},
	{name: "triplet", division: 1.0 / 3, steps: seq(12), prob: 0.8, velLo: 30, velHi: 55, build: arpUp},
	{name: "syncopated", division: 0.25, steps: []int{1, 3, 5, 6, 8, 10, 11, 13, 15}, prob: 0.85, velLo: 35, velHi: 60, build: arpUp},
	{name: "double_octave", division: 0.25, steps: seq(16), prob: 0.8, velLo: 30, velHi: 55, build: func(chord []int) []int {
		out := append([]int(nil), chord...)
		for _, n := range chord {
			out = append(out, n+12)
		}
		return append(out, chord[0]+24)
	}},
	{name: "sparse", division: 0.5, steps: seq(8), prob: 0.6, velLo: 30, velHi: 50, build: arpUp},
}

// Accompaniment generates the harmonic accompaniment track: chords from
// the active harmonic context rendered as stabs, arpeggios, sustained pads
// or filter-swept eighths.
type Accompaniment struct {
	structure *song.Structure
	style     style.Style
	rng       *rand.Rand
}

// NewAccompaniment builds an accompaniment generator bound to the
// structure and style.
func NewAccompaniment(structure *song.Structure, st style.Style, rng *rand.Rand) *Accompaniment {
	return &Accompaniment{structure: structure, style: st, rng: rng}
}

// Generate renders measures of accompaniment at the given tempo.
func (g *Accompaniment) Generate(measures, tempo int) []Event {
	var events []Event

	beatDuration := 60.0 / float64(tempo)
	measureDuration := 4 * beatDuration
	currentTime := 0.0

	for measure := 0; measure < measures; measure++ {
		if !g.structure.ShouldPlay(measure, song.InstrumentAccomp) {
			currentTime += measureDuration
			continue
		}

		ctx := g.structure.Harmony(measure)
		chord := g.chordNotes(ctx)

		switch g.chooseTexture(measure) {
		case textureStabs:
			events = append(events, g.stabs(chord, currentTime, beatDuration, measure)...)
		case textureArpeggios:
			events = append(events, g.arpeggio(chord, currentTime, beatDuration, measure)...)
		case textureSustained:
			events = append(events, g.sustained(chord, currentTime, measure)...)
		case textureFiltered:
			events = append(events, g.filtered(chord, currentTime, beatDuration, measure)...)
		}

		currentTime += measureDuration
	}

	return events
}

// chordNotes builds the chord's pitches from the context scale, with a
// weighted enrichment draw extending or altering the base triad.
func (g *Accompaniment) chordNotes(ctx song.HarmonicContext) []int {
	scale := ctx.Scale
	if len(scale) == 0 {
		scale = song.KeyAMinor.Scale()
	}

	base, ok := chordDegrees[ctx.Chord]
	if !ok {
		base = chordDegrees[song.ChordI]
	}
	degrees := append([]int(nil), base...)

	n := len(scale)
	root := degrees[0]
	r := g.rng.Float64()
	switch {
	case r < 0.3: // triad
	case r < 0.55: // 7th
		degrees = append(degrees, (root+6)%n)
	case r < 0.7: // 9th
		degrees = append(degrees, (root+6)%n, (root+8)%n)
	case r < 0.8: // sus2
		degrees[1] = (root + 1) % n
	case r < 0.9: // sus4
		degrees[1] = (root + 3) % n
	default: // add9
		degrees = append(degrees, (root+8)%n)
	}

	notes := make([]int, 0, len(degrees))
	for _, d := range degrees {
		if d < n {
			notes = append(notes, scale[d])
		} else {
			notes = append(notes, scale[d%n]+12)
		}
	}
	return notes
}

// chooseTexture picks the measure's texture by coarse track position. The
// techno style carries its own arpeggio-heavy weight schedule; other
// styles split on synth density.
func (g *Accompaniment) chooseTexture(measure int) texture {
	if g.style.Name == style.Techno {
		switch {
		case measure < 16:
			return g.weightedTexture(
				textureWeight{textureArpeggios, 0.5}, textureWeight{textureFiltered, 0.2},
				textureWeight{textureSustained, 0.2}, textureWeight{textureStabs, 0.1})
		case measure < 64:
			return g.weightedTexture(
				textureWeight{textureArpeggios, 0.6}, textureWeight{textureFiltered, 0.2},
				textureWeight{textureStabs, 0.15}, textureWeight{textureSustained, 0.05})
		case measure < 128:
			return g.weightedTexture(
				textureWeight{textureArpeggios, 0.7}, textureWeight{textureFiltered, 0.2},
				textureWeight{textureStabs, 0.1})
		}
		return g.weightedTexture(
			textureWeight{textureArpeggios, 0.5}, textureWeight{textureFiltered, 0.3},
			textureWeight{textureSustained, 0.2})
	}

	density := g.style.SynthDensity
	switch {
	case measure < 16:
		if density > 0.8 {
			return g.uniformTexture(textureSustained, textureArpeggios, textureStabs)
		}
		return g.uniformTexture(textureStabs, textureSustained)
	case measure < 64:
		if density < 0.6 {
			return g.uniformTexture(textureStabs, textureSustained, textureFiltered)
		}
		return g.uniformTexture(textureStabs, textureArpeggios, textureFiltered)
	case measure < 128:
		if density > 0.8 {
			return g.uniformTexture(textureArpeggios, textureFiltered, textureSustained, textureStabs)
		}
		return g.uniformTexture(textureArpeggios, textureFiltered, textureStabs)
	}
	return g.uniformTexture(textureSustained, textureFiltered)
}

func (g *Accompaniment) weightedTexture(options ...textureWeight) texture {
	total := 0.0
	for _, o := range options {
		total += o.weight
	}
	r := g.rng.Float64() * total
	for _, o := range options {
		r -= o.weight
		if r < 0 {
			return o.texture
		}
	}
	return options[len(options)-1].texture
}

func (g *Accompaniment) uniformTexture(options ...texture) texture {
	return options[g.rng.Intn(len(options))]
}

// stabs places full chords on the off-beats between beats 1-2 and 3-4.
func (g *Accompaniment) stabs(chord []int, start, beatDuration float64, measure int) []Event {
	var events []Event
	for _, timing := range []float64{0.5, 2.5} {
		if g.rng.Float64() >= 0.8 {
			continue
		}
		stabTime := start + timing*beatDuration
		base := 40 + g.rng.Intn(26)
		for _, note := range chord {
			vel := g.structure.VelocityCurve(measure, base)
			events = append(events, Event{Time: stabTime, Note: clampNote(note), Velocity: clampVelocity(vel)})
		}
	}
	return events
}

// arpeggio renders one uniformly drawn arpeggio variant across the measure.
func (g *Accompaniment) arpeggio(chord []int, start, beatDuration float64, measure int) []Event {
	v := arpVariants[g.rng.Intn(len(arpVariants))]
	pattern := v.build(chord)
	stepDuration := beatDuration * v.division

	var events []Event
	for _, i := range v.steps {
		if g.rng.Float64() >= v.prob {
			continue
		}
		note := pattern[i%len(pattern)]
		if v.octaveBoost && i >= 8 && i < 12 {
			note += 12
		}
		base := v.velLo + g.rng.Intn(v.velHi-v.velLo+1)
		vel := g.structure.VelocityCurve(measure, base)
		events = append(events, Event{
			Time:     start + float64(i)*stepDuration,
			Note:     clampNote(note),
			Velocity: clampVelocity(vel),
		})
	}
	return events
}

// sustained holds the whole chord from the top of the measure.
func (g *Accompaniment) sustained(chord []int, start float64, measure int) []Event {
	if g.rng.Float64() >= 0.6 {
		return nil
	}
	base := 30 + g.rng.Intn(21)
	events := make([]Event, 0, len(chord))
	for _, note := range chord {
		vel := g.structure.VelocityCurve(measure, base)
		events = append(events, Event{Time: start, Note: clampNote(note), Velocity: clampVelocity(vel)})
	}
	return events
}

// filtered plays eighth notes whose velocities trace a triangular sweep,
// simulating a filter opening and closing across the measure.
func (g *Accompaniment) filtered(chord []int, start, beatDuration float64, measure int) []Event {
	var events []Event
	eighthDuration := beatDuration / 2

	for i := 0; i < 8; i++ {
		if g.rng.Float64() >= 0.8 {
			continue
		}
		noteTime := start + float64(i)*eighthDuration
		mod := int(30 * math.Abs(0.5-float64(i)/8))
		base := 45 + mod
		if base < 25 {
			base = 25
		}
		if base > 65 {
			base = 65
		}

		for _, note := range g.sampleNotes(chord, 1+g.rng.Intn(2)) {
			vel := g.structure.VelocityCurve(measure, base)
			events = append(events, Event{Time: noteTime, Note: clampNote(note), Velocity: clampVelocity(vel)})
		}
	}
	return events
}

// sampleNotes draws n distinct notes from the chord.
func (g *Accompaniment) sampleNotes(notes []int, n int) []int {
	if n > len(notes) {
		n = len(notes)
	}
	idx := g.rng.Perm(len(notes))[:n]
	out := make([]int, n)
	for i, j := range idx {
		out[i] = notes[j]
	}
	return out
}
