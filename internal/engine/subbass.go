package engine

import (
	"math/rand"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/timesig"
)

// subNote is one sub-bass pattern entry: a beat offset and duration inside
// the measure plus the pitch and attack velocity to emit.
type subNote struct {
	offset   float64
	duration float64
	note     int
	velocity int
}

// subKeyRoots maps each key to a sub register root, roughly two octaves
// below the bassline.
var subKeyRoots = map[song.Key]int{
	song.KeyAMinor: 21,
	song.KeyDMinor: 26,
	song.KeyEMinor: 28,
	song.KeyFMinor: 29,
	song.KeyGMinor: 31,
}

// subChordOffsets maps chord symbols to semitone offsets. Symbols outside
// the table stay on the key root.
var subChordOffsets = map[song.Chord]int{
	song.ChordI:       0,
	song.ChordII:      2,
	song.ChordIII:     3,
	song.ChordIV:      5,
	song.ChordVMaj:    7,
	song.ChordVI:      8,
	song.ChordVII:     10,
	song.ChordFlatVII: 10,
}

// SubBass generates long sustained fundamental notes as explicit
// note-on/note-off pairs.
type SubBass struct {
	structure *song.Structure
	meter     timesig.TimeSignature
	rng       *rand.Rand
}

// NewSubBass builds a sub-bass generator bound to the structure and meter.
func NewSubBass(structure *song.Structure, meter timesig.TimeSignature, rng *rand.Rand) *SubBass {
	return &SubBass{structure: structure, meter: meter, rng: rng}
}

// Generate renders measures of sub-bass at the given tempo. Events come in
// on/off pairs: the on carries the curved attack velocity, the off a release
// velocity in [60,80] scaled from the attack.
func (g *SubBass) Generate(measures, tempo int) []Event {
	var events []Event

	beatDuration := 60.0 / float64(tempo)
	quarters := float64(g.meter.StepsPerMeasure()) / 4
	measureDuration := quarters * beatDuration

	currentTime := 0.0

	for measure := 0; measure < measures; measure++ {
		if !g.structure.ShouldPlay(measure, song.InstrumentSubBass) {
			currentTime += measureDuration
			continue
		}
		if !g.presence(measure) {
			currentTime += measureDuration
			continue
		}

		ctx := g.structure.Harmony(measure)
		root := subRootNote(ctx)

		for _, n := range g.choosePattern(measure, root, root+7) {
			noteTime := currentTime + n.offset*beatDuration
			attack := g.structure.VelocityCurve(measure, n.velocity)
			release := 60 + int(float64(attack)/127.0*20)

			events = append(events,
				Event{Time: noteTime, Note: clampNote(n.note), Velocity: clampVelocity(attack)},
				Event{Time: noteTime + n.duration*beatDuration, Note: clampNote(n.note), Velocity: uint8(release)})
		}

		currentTime += measureDuration
	}

	return events
}

// subRootNote resolves the harmonic context to a sub register root pitch.
func subRootNote(ctx song.HarmonicContext) int {
	root, ok := subKeyRoots[ctx.Key]
	if !ok {
		root = subKeyRoots[song.KeyAMinor]
	}
	return root + subChordOffsets[ctx.Chord]
}

// presence decides whether the sub plays this measure. Hard rests on every
// 16th and 32nd measure take precedence over the softer every 8th break,
// and presence ramps up across the first 32 measures.
func (g *SubBass) presence(measure int) bool {
	switch {
	case measure%32 == 31, measure%16 == 15:
		return false
	case measure%8 == 7:
		return g.rng.Float64() < 0.3
	case measure < 8:
		return g.rng.Float64() < 0.2
	case measure < 16:
		return g.rng.Float64() < 0.5
	case measure < 32:
		return g.rng.Float64() < 0.7
	}
	return g.rng.Float64() < 0.9
}

// choosePattern picks a pattern family by coarse track position: long
// simple notes early, pumping or moving lines through the main body, sparse
// hits late.
func (g *SubBass) choosePattern(measure, root, fifth int) []subNote {
	var options [][]subNote
	switch {
	case measure < 32:
		options = subSimplePatterns(root, fifth)
	case measure < 128:
		if g.rng.Float64() < 0.7 {
			options = g.subPumpingPatterns(root)
		} else {
			options = subMovementPatterns(root, fifth)
		}
	default:
		options = subSparsePatterns(root)
	}
	return g.adaptMeter(options[g.rng.Intn(len(options))])
}

func subSimplePatterns(root, fifth int) [][]subNote {
	return [][]subNote{
		{{0, 4, root, 65}},
		{{0, 2, root, 70}, {2, 2, root, 60}},
		{{0, 3.5, root, 65}, {3.75, 0.25, root, 50}},
		{{0, 2, root, 70}, {2, 2, fifth, 65}},
	}
}

// subPumpingPatterns simulates sidechain pumping. The every-beat variant
// follows the meter's beat count.
func (g *SubBass) subPumpingPatterns(root int) [][]subNote {
	beats := g.meter.StepsPerMeasure() / 4
	if beats < 1 {
		beats = 1
	}
	everyBeat := make([]subNote, 0, beats)
	for b := 0; b < beats; b++ {
		everyBeat = append(everyBeat, subNote{float64(b), 0.75, root, 75})
	}

	return [][]subNote{
		everyBeat,
		{
			{0, 0.5, root, 85}, {0.75, 0.25, root, 45}, {1, 0.5, root, 75},
			{2, 0.5, root, 80}, {2.75, 0.25, root, 50}, {3, 0.5, root, 70},
		},
		{{0, 1, root, 75}, {1, 1, root, 60}, {2, 1, root, 65}, {3, 1, root, 55}},
	}
}

func subMovementPatterns(root, fifth int) [][]subNote {
	return [][]subNote{
		{{0, 2, root, 70}, {2, 2, fifth, 65}},
		{{0, 1, root, 75}, {1, 0.5, fifth, 60}, {1.5, 0.5, root, 55}, {2, 2, root, 70}},
		{{0, 0.5, root, 85}, {0.5, 0.5, root, 50}, {2, 0.5, fifth, 75}, {2.5, 1.5, root, 60}},
		{{0, 1, root, 70}, {1, 1, fifth, 65}, {2, 1, root, 70}, {3, 1, fifth, 65}},
	}
}

func subSparsePatterns(root int) [][]subNote {
	return [][]subNote{
		{{0, 1, root, 60}},
		{{0, 0.5, root, 65}, {3, 1, root, 55}},
		{{0, 8, root, 50}},
	}
}

// adaptMeter fits a four-beat pattern to the active meter. Full and double
// measure sustains stretch to the meter's length, entries past the measure
// end are dropped, and overhanging ones are trimmed.
func (g *SubBass) adaptMeter(pattern []subNote) []subNote {
	quarters := float64(g.meter.StepsPerMeasure()) / 4
	if quarters == 4 {
		return pattern
	}

	out := make([]subNote, 0, len(pattern))
	for _, n := range pattern {
		switch {
		case n.duration >= 8:
			n.duration = 2 * quarters
		case n.offset == 0 && n.duration == 4:
			n.duration = quarters
		case n.offset >= quarters:
			continue
		case n.offset+n.duration > quarters:
			n.duration = quarters - n.offset
		}
		out = append(out, n)
	}
	return out
}
