package engine

import (
	"math/rand"

	"github.com/yrbane/acidgrid/internal/song"
)

// leadPhraseMeasures is the fixed phrase length the lead thinks in.
const leadPhraseMeasures = 8

// leadScales spans each key's upper register for melodies. Keys outside
// the table use the A minor scale.
var leadScales = map[song.Key][]int{
	song.KeyAMinor: {57, 59, 60, 62, 64, 65, 67, 69, 71, 72},
	song.KeyDMinor: {62, 64, 65, 67, 69, 70, 72, 74, 76, 77},
}

func leadScaleFor(key song.Key) []int {
	if s, ok := leadScales[key]; ok {
		return s
	}
	return leadScales[song.KeyAMinor]
}

type melody int

const (
	melodyLine melody = iota
	melodyStaccato
	melodySustained
	melodyRapid
)

// melodicRhythms are the beat-offset templates the melodic line draws from.
var melodicRhythms = [][]float64{
	{0, 0.5, 1.5, 2.5, 3},
	{0, 1, 2, 3},
	{0.5, 1, 2.5, 3.5},
}

// Lead generates the lead melody track in eight-measure phrases: one
// presence decision and one melody style per phrase, rendered per measure.
type Lead struct {
	structure *song.Structure
	rng       *rand.Rand
}

// NewLead builds a lead generator bound to the structure.
func NewLead(structure *song.Structure, rng *rand.Rand) *Lead {
	return &Lead{structure: structure, rng: rng}
}

// Generate renders measures of lead melody at the given tempo.
func (g *Lead) Generate(measures, tempo int) []Event {
	var events []Event

	beatDuration := 60.0 / float64(tempo)
	measureDuration := 4 * beatDuration

	for phraseStart := 0; phraseStart < measures; phraseStart += leadPhraseMeasures {
		phraseEnd := phraseStart + leadPhraseMeasures
		if phraseEnd > measures {
			phraseEnd = measures
		}

		if !g.structure.ShouldPlay(phraseStart, song.InstrumentLead) {
			continue
		}
		ctx := g.structure.Harmony(phraseStart)
		if !g.phrasePresent(ctx.Intensity) {
			continue
		}

		scale := leadScaleFor(ctx.Key)
		style := g.chooseMelody(phraseStart)
		phraseTime := float64(phraseStart) * measureDuration

		for measure := phraseStart; measure < phraseEnd; measure++ {
			measureTime := phraseTime + float64(measure-phraseStart)*measureDuration

			switch style {
			case melodyLine:
				events = append(events, g.melodicLine(scale, measureTime, beatDuration)...)
			case melodyStaccato:
				events = append(events, g.staccatoStabs(scale, measureTime, beatDuration)...)
			case melodySustained:
				events = append(events, g.sustainedNotes(scale, measureTime, beatDuration)...)
			case melodyRapid:
				events = append(events, g.rapidSequence(scale, measureTime, beatDuration)...)
			}
		}
	}

	return events
}

// phrasePresent maps the phrase's intensity to a presence probability.
func (g *Lead) phrasePresent(intensity float64) bool {
	p := 0.9
	switch {
	case intensity < 0.3:
		p = 0.2
	case intensity < 0.5:
		p = 0.4
	case intensity < 0.7:
		p = 0.6
	case intensity < 0.9:
		p = 0.8
	}
	return g.rng.Float64() < p
}

// chooseMelody picks the phrase's melody style, weighted by coarse track
// position. Rapid sequences only appear through the main body.
func (g *Lead) chooseMelody(phraseStart int) melody {
	r := g.rng.Float64()
	switch {
	case phraseStart < 32:
		switch {
		case r < 0.4:
			return melodyLine
		case r < 0.7:
			return melodyStaccato
		}
		return melodySustained
	case phraseStart < 96:
		switch {
		case r < 0.3:
			return melodyLine
		case r < 0.6:
			return melodyStaccato
		case r < 0.8:
			return melodySustained
		}
		return melodyRapid
	}
	switch {
	case r < 0.5:
		return melodyLine
	case r < 0.7:
		return melodyStaccato
	}
	return melodySustained
}

// melodicLine walks the scale in small intervals across one of the rhythm
// templates.
func (g *Lead) melodicLine(scale []int, start, beatDuration float64) []Event {
	var events []Event

	rhythm := melodicRhythms[g.rng.Intn(len(melodicRhythms))]
	idx := 2 + g.rng.Intn(len(scale)-4)

	for i, beatOffset := range rhythm {
		if g.rng.Float64() >= 0.8 {
			continue
		}
		noteTime := start + beatOffset*beatDuration

		if i > 0 {
			idx += g.walkStep()
			if idx < 0 {
				idx = 0
			}
			if idx > len(scale)-1 {
				idx = len(scale) - 1
			}
		}

		base := 95 + g.rng.Intn(31)
		measure := int(noteTime / (4 * beatDuration))
		vel := g.structure.VelocityCurve(measure, base)
		events = append(events, Event{Time: noteTime, Note: clampNote(scale[idx]), Velocity: clampVelocity(vel)})
	}

	return events
}

// walkStep draws a melodic interval favoring stepwise motion.
func (g *Lead) walkStep() int {
	r := g.rng.Float64()
	switch {
	case r < 0.1:
		return -2
	case r < 0.4:
		return -1
	case r < 0.6:
		return 0
	case r < 0.9:
		return 1
	}
	return 2
}

// staccatoStabs places up to three sharp mid-range notes at syncopated
// positions.
func (g *Lead) staccatoStabs(scale []int, start, beatDuration float64) []Event {
	var events []Event

	mid := scale[3:7]
	for _, pos := range []float64{0.75, 2.25, 3.5} {
		if g.rng.Float64() >= 0.7 {
			continue
		}
		note := mid[g.rng.Intn(len(mid))]
		events = append(events, Event{
			Time:     start + pos*beatDuration,
			Note:     clampNote(note),
			Velocity: uint8(105 + g.rng.Intn(23)),
		})
	}

	return events
}

// sustainedNotes holds one long upper mid-range note, sometimes joined by
// a higher harmony a beat later.
func (g *Lead) sustainedNotes(scale []int, start, beatDuration float64) []Event {
	var events []Event

	if g.rng.Float64() < 0.6 {
		upper := scale[4:8]
		note := upper[g.rng.Intn(len(upper))]
		events = append(events, Event{Time: start, Note: clampNote(note), Velocity: uint8(75 + g.rng.Intn(26))})
	}
	if g.rng.Float64() < 0.3 {
		high := scale[6:]
		note := high[g.rng.Intn(len(high))]
		events = append(events, Event{Time: start + beatDuration, Note: clampNote(note), Velocity: uint8(55 + g.rng.Intn(26))})
	}

	return events
}

// rapidSequence lays out a six-note ascending or descending run at
// sixteenth resolution starting on beat one or three.
func (g *Lead) rapidSequence(scale []int, start, beatDuration float64) []Event {
	sixteenth := beatDuration / 4

	var run []int
	if g.rng.Float64() < 0.5 {
		s := g.rng.Intn(len(scale) - 5)
		run = append([]int(nil), scale[s:s+6]...)
	} else {
		s := 5 + g.rng.Intn(len(scale)-5)
		run = reverseNotes(scale[s-5 : s+1])
	}

	seqStart := float64(g.rng.Intn(2)*2) * beatDuration
	events := make([]Event, 0, len(run))
	for i, note := range run {
		events = append(events, Event{
			Time:     start + seqStart + float64(i)*sixteenth,
			Note:     clampNote(note),
			Velocity: uint8(85 + g.rng.Intn(26)),
		})
	}

	return events
}
