package engine

import (
	"math/rand"
	"strings"

	"github.com/yrbane/acidgrid/internal/song"
	"github.com/yrbane/acidgrid/internal/style"
	"github.com/yrbane/acidgrid/internal/timesig"
)

// General MIDI drum map notes used by the rhythm generator.
const (
	NoteBassDrum     uint8 = 36
	NoteSideStick    uint8 = 37
	NoteSnare        uint8 = 38
	NoteClap         uint8 = 39
	NoteLowTom       uint8 = 41
	NoteClosedHat    uint8 = 42
	NotePedalHat     uint8 = 44
	NoteOpenHat      uint8 = 46
	NoteMidTom       uint8 = 47
	NoteCrash        uint8 = 49
	NoteHighTom      uint8 = 50
	NoteRide         uint8 = 51
	NoteRideBell     uint8 = 53
	NoteTambourine   uint8 = 54
	NoteCowbell      uint8 = 56
	NoteHighBongo    uint8 = 60
	NoteLowBongo     uint8 = 61
	NoteOpenHiConga  uint8 = 63
	NoteLowConga     uint8 = 64
	NoteHighAgogo    uint8 = 67
	NoteLowAgogo     uint8 = 68
	NoteClaves       uint8 = 75
	NoteHiWoodBlock  uint8 = 76
	NoteOpenTriangle uint8 = 81
	NoteShaker       uint8 = 82
)

// Voice indexes one percussion voice inside a Pattern. Voices a pattern
// does not use are simply all-zero step rows.
type Voice int

const (
	VoiceBassDrum Voice = iota
	VoiceSnare
	VoiceClap
	VoiceClosedHat
	VoiceOpenHat
	VoicePedalHat
	VoiceLowTom
	VoiceMidTom
	VoiceHighTom
	VoiceCrash
	VoiceRide
	VoiceRideBell
	VoiceShaker
	VoiceTambourine
	VoiceCowbell
	VoiceRim
	VoiceLowConga
	VoiceHighConga
	VoiceHighBongo
	VoiceLowBongo
	VoiceHighAgogo
	VoiceLowAgogo
	VoiceWoodBlock
	VoiceClaves
	VoiceTriangle
	voiceCount
)

// patternSteps is the sixteenth-note resolution of one 4/4 measure. Other
// meters index into the same rows modulo this length.
const patternSteps = 16

// Steps is one measure of hit flags for a single voice.
type Steps [patternSteps]bool

// Pattern is a full percussion measure, one step row per voice.
type Pattern [voiceCount]Steps

// row builds a step row from 0/1 flags, so pattern data reads like a grid.
func row(bits ...int) Steps {
	var s Steps
	for i, b := range bits {
		if i >= patternSteps {
			break
		}
		s[i] = b != 0
	}
	return s
}

func pat(rows map[Voice]Steps) Pattern {
	var p Pattern
	for v, s := range rows {
		p[v] = s
	}
	return p
}

// patternNames fixes the draw order for the base pattern library.
var patternNames = []string{"minimal", "driving", "complex", "breakbeat", "rolling"}

var drumPatterns = map[string]Pattern{
	"minimal": pat(map[Voice]Steps{
		VoiceBassDrum:  row(1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0),
		VoiceSnare:     row(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0),
		VoiceClosedHat: row(0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0),
		VoiceOpenHat:   row(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0),
		VoiceShaker:    row(0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1),
		VoiceRim:       row(0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0),
	}),
	"driving": pat(map[Voice]Steps{
		VoiceBassDrum:   row(1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0),
		VoiceSnare:      row(0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0),
		VoiceClap:       row(0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1),
		VoiceClosedHat:  row(0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1),
		VoiceOpenHat:    row(0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0),
		VoiceShaker:     row(1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0),
		VoiceTambourine: row(0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0),
		VoiceRide:       row(0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0),
	}),
	"complex": pat(map[Voice]Steps{
		VoiceBassDrum:  row(1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 1, 0),
		VoiceSnare:     row(0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0),
		VoiceClap:      row(0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0),
		VoiceClosedHat: row(1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0),
		VoiceOpenHat:   row(0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1),
		VoiceShaker:    row(1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0, 1),
		VoiceCowbell:   row(0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0),
		VoiceRim:       row(0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0),
		VoicePedalHat:  row(0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 1, 0, 0, 0),
	}),
	"breakbeat": pat(map[Voice]Steps{
		VoiceBassDrum:   row(1, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 0),
		VoiceSnare:      row(0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0),
		VoiceClap:       row(0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0),
		VoiceClosedHat:  row(1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1),
		VoiceOpenHat:    row(0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 0),
		VoiceShaker:     row(0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1),
		VoiceTambourine: row(0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0),
		VoiceRide:       row(1, 0, 0, 1, 0, 0, 0, 1, 1, 0, 0, 0, 1, 0, 0, 0),
		VoiceCrash:      row(1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0),
	}),
	"rolling": pat(map[Voice]Steps{
		VoiceBassDrum:   row(1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0),
		VoiceSnare:      row(0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1),
		VoiceClap:       row(0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0),
		VoiceClosedHat:  row(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1),
		VoiceShaker:     row(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1),
		VoiceTambourine: row(0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1),
		VoiceCowbell:    row(0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0),
		VoiceRideBell:   row(1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0),
	}),
}

// voiceSpec carries the playback data for one voice: its GM note, base
// velocity, the velocity curve over (intensity, step), an optional extra
// wobble for loose voices, and whether off-beat hits may turn into ghosts.
type voiceSpec struct {
	note    uint8
	baseVel int
	jitter  float64
	ghost   bool
	curve   func(intensity float64, step int) float64
}

func linearCurve(floor, slope float64) func(float64, int) float64 {
	return func(intensity float64, _ int) float64 { return floor + intensity*slope }
}

var voiceSpecs = [voiceCount]voiceSpec{
	VoiceBassDrum: {note: NoteBassDrum, baseVel: 120, curve: func(_ float64, step int) float64 {
		if step%4 == 0 {
			return 1.2
		}
		return 0.9
	}},
	VoiceSnare:      {note: NoteSnare, baseVel: 105, ghost: true, curve: linearCurve(0.4, 0.8)},
	VoiceClap:       {note: NoteClap, baseVel: 95, curve: linearCurve(0.5, 0.7)},
	VoiceClosedHat:  {note: NoteClosedHat, baseVel: 75, jitter: 0.1, ghost: true, curve: linearCurve(0.5, 0.3)},
	VoiceOpenHat:    {note: NoteOpenHat, baseVel: 85, curve: linearCurve(0.6, 0.2)},
	VoicePedalHat:   {note: NotePedalHat, baseVel: 70, curve: linearCurve(0.4, 0.3)},
	VoiceLowTom:     {note: NoteLowTom, baseVel: 100, curve: linearCurve(0.8, 0.2)},
	VoiceMidTom:     {note: NoteMidTom, baseVel: 95, curve: linearCurve(0.75, 0.2)},
	VoiceHighTom:    {note: NoteHighTom, baseVel: 90, curve: linearCurve(0.7, 0.2)},
	VoiceCrash:      {note: NoteCrash, baseVel: 110, curve: linearCurve(0.9, 0.1)},
	VoiceRide:       {note: NoteRide, baseVel: 80, curve: linearCurve(0.6, 0.2)},
	VoiceRideBell:   {note: NoteRideBell, baseVel: 85, curve: linearCurve(0.7, 0.2)},
	VoiceShaker:     {note: NoteShaker, baseVel: 65, jitter: 0.1, curve: linearCurve(0.5, 0.2)},
	VoiceTambourine: {note: NoteTambourine, baseVel: 75, curve: linearCurve(0.6, 0.2)},
	VoiceCowbell:    {note: NoteCowbell, baseVel: 85, curve: linearCurve(0.7, 0.2)},
	VoiceRim:        {note: NoteSideStick, baseVel: 80, curve: linearCurve(0.6, 0.2)},
	VoiceLowConga:   {note: NoteLowConga, baseVel: 85, curve: linearCurve(0.7, 0.2)},
	VoiceHighConga:  {note: NoteOpenHiConga, baseVel: 80, curve: linearCurve(0.65, 0.2)},
	VoiceHighBongo:  {note: NoteHighBongo, baseVel: 75, curve: linearCurve(0.6, 0.2)},
	VoiceLowBongo:   {note: NoteLowBongo, baseVel: 80, curve: linearCurve(0.65, 0.2)},
	VoiceHighAgogo:  {note: NoteHighAgogo, baseVel: 75, curve: linearCurve(0.6, 0.2)},
	VoiceLowAgogo:   {note: NoteLowAgogo, baseVel: 70, curve: linearCurve(0.55, 0.2)},
	VoiceWoodBlock:  {note: NoteHiWoodBlock, baseVel: 80, curve: linearCurve(0.65, 0.2)},
	VoiceClaves:     {note: NoteClaves, baseVel: 85, curve: linearCurve(0.7, 0.2)},
	VoiceTriangle:   {note: NoteOpenTriangle, baseVel: 60, curve: linearCurve(0.5, 0.1)},
}

// measurePlan is one measure's working pattern plus the closed-hat roll
// span, if a fill or overlay installed one. Roll steps get a velocity ramp
// instead of the accent grid.
type measurePlan struct {
	pattern   Pattern
	rollStart int
	rollEnd   int
}

// Rhythm generates the percussion track.
type Rhythm struct {
	structure *song.Structure
	style     style.Style
	profile   styleProfile
	meter     timesig.TimeSignature
	rng       *rand.Rand
	history   []string
}

// NewRhythm builds a rhythm generator for the given structure and style.
// The style's behavioral quirks (auxiliary percussion, fill preferences,
// humanization, ghost notes) are resolved into a profile once here.
func NewRhythm(structure *song.Structure, st style.Style, meter timesig.TimeSignature, rng *rand.Rand) *Rhythm {
	return &Rhythm{
		structure: structure,
		style:     st,
		profile:   profileFor(st.Name),
		meter:     meter,
		rng:       rng,
	}
}

// Generate renders measures of percussion at the given tempo. Swing in
// [0,1] delays every odd sixteenth by up to half a step.
func (g *Rhythm) Generate(measures, tempo int, swing float64) []Event {
	var events []Event

	stepsPerMeasure := g.meter.StepsPerMeasure()
	stepDuration := 60.0 / (float64(tempo) * 4)
	measureDuration := float64(stepsPerMeasure) * stepDuration

	g.history = g.history[:0]
	currentTime := 0.0

	for measure := 0; measure < measures; measure++ {
		if !g.structure.ShouldPlay(measure, song.InstrumentDrums) {
			currentTime += measureDuration
			continue
		}

		section := g.structure.Section(measure)
		intensity := g.structure.Intensity(measure)

		name := g.avoidRepetition(g.choosePattern(section, intensity, measure))
		g.pushHistory(name)

		plan := measurePlan{pattern: drumPatterns[name]}
		g.applySectionShape(&plan, section, measure)
		g.applyFills(&plan, measure, intensity)
		g.applyOverlays(&plan, measure, intensity)

		for step := 0; step < stepsPerMeasure; step++ {
			stepTime := currentTime + float64(step)*stepDuration
			if step%2 == 1 {
				stepTime += 0.5 * stepDuration * swing
			}

			if step == 0 && g.shouldCrash(measure) {
				events = append(events, Event{Time: stepTime, Note: NoteCrash, Velocity: uint8(90 + g.rng.Intn(38))})
			}

			events = append(events, g.renderStep(&plan, step%patternSteps, stepTime, intensity, measure)...)
		}

		currentTime += measureDuration
	}

	return events
}

// choosePattern picks a base pattern for the section, biased by the
// style's preferred list.
func (g *Rhythm) choosePattern(section song.Section, intensity float64, measure int) string {
	preferred := g.style.RhythmPatterns
	if len(preferred) == 0 {
		preferred = patternNames
	}

	switch {
	case strings.Contains(section.Name, "intro") || strings.Contains(section.Name, "outro"):
		// Weight toward minimal.
		options := append(filterNames(preferred, "minimal", "driving"), "minimal")
		return options[g.rng.Intn(len(options))]

	case strings.Contains(section.Name, "build"):
		switch {
		case intensity < 0.4:
			return "minimal"
		case intensity < 0.6:
			if options := filterNames(preferred, "driving", "minimal"); len(options) > 0 {
				return options[g.rng.Intn(len(options))]
			}
			return "driving"
		default:
			if options := filterNames(preferred, "complex", "rolling", "breakbeat"); len(options) > 0 {
				return options[g.rng.Intn(len(options))]
			}
			if g.rng.Intn(2) == 0 {
				return "complex"
			}
			return "rolling"
		}

	case strings.Contains(section.Name, "drop") || strings.Contains(section.Name, "main") || strings.Contains(section.Name, "verse"):
		return preferred[g.rng.Intn(len(preferred))]

	case strings.Contains(section.Name, "break"):
		if options := filterNames(preferred, "minimal", "breakbeat"); len(options) > 0 {
			return options[g.rng.Intn(len(options))]
		}
		if g.rng.Intn(2) == 0 {
			return "minimal"
		}
		return "breakbeat"
	}

	// Unlabeled sections (hooks, plateaus) ease in over the first measures.
	if measure < 8 {
		return "minimal"
	}
	if measure < 32 {
		if options := filterNames(preferred, "driving", "complex"); len(options) > 0 {
			return options[g.rng.Intn(len(options))]
		}
	}
	return preferred[g.rng.Intn(len(preferred))]
}

func filterNames(names []string, keep ...string) []string {
	var out []string
	for _, n := range names {
		for _, k := range keep {
			if n == k {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// avoidRepetition forces a different pattern when the last four measures
// all used the same one.
func (g *Rhythm) avoidRepetition(name string) string {
	if len(g.history) < 4 {
		return name
	}
	for _, h := range g.history[len(g.history)-4:] {
		if h != name {
			return name
		}
	}
	others := make([]string, 0, len(patternNames)-1)
	for _, p := range patternNames {
		if p != name {
			others = append(others, p)
		}
	}
	return others[g.rng.Intn(len(others))]
}

func (g *Rhythm) pushHistory(name string) {
	g.history = append(g.history, name)
	if len(g.history) > 8 {
		g.history = g.history[1:]
	}
}

// applySectionShape reshapes the measure for builds, drops and breakdowns.
func (g *Rhythm) applySectionShape(plan *measurePlan, section song.Section, measure int) {
	switch {
	case strings.Contains(section.Name, "build"):
		span := section.End - section.Start
		if span < 1 {
			span = 1
		}
		progress := float64(measure-section.Start) / float64(span)

		// Snare and clap roll into the drop.
		if progress > 0.75 {
			for i := 12; i < patternSteps; i++ {
				if g.rng.Float64() < progress {
					plan.pattern[VoiceSnare][i] = true
					plan.pattern[VoiceClap][i] = true
				}
			}
		}
		// Thicken the hats as the build progresses.
		if progress > 0.5 {
			for i := 0; i < patternSteps; i++ {
				if g.rng.Float64() < progress*0.3 {
					plan.pattern[VoiceClosedHat][i] = true
				}
			}
		}

	case strings.Contains(section.Name, "drop"):
		// Four on the floor, no exceptions.
		plan.pattern[VoiceBassDrum][0] = true
		plan.pattern[VoiceBassDrum][4] = true
		plan.pattern[VoiceBassDrum][8] = true
		plan.pattern[VoiceBassDrum][12] = true

	case strings.Contains(section.Name, "breakdown"):
		for i := 0; i < patternSteps; i++ {
			if g.rng.Float64() < 0.7 {
				plan.pattern[VoiceBassDrum][i] = false
			}
			if g.rng.Float64() < 0.5 {
				plan.pattern[VoiceSnare][i] = false
			}
		}
	}
}

// applyFills injects fills and tom accents. Measures at section edges and
// phrase ends get a full fill, other fourth measures a lighter one, and
// everything else an occasional tom call-and-response.
func (g *Rhythm) applyFills(plan *measurePlan, measure int, intensity float64) {
	switch {
	case g.isTransition(measure) || measure%8 == 7:
		g.applyFill(plan, g.pickFill(intensity))
	case measure%4 == 3:
		g.applyFill(plan, g.pickFill(0))
	default:
		if measure%2 == 0 && g.rng.Float64() < 0.3 {
			plan.pattern[VoiceLowTom][4] = true
			plan.pattern[VoiceMidTom][6] = true
			plan.pattern[VoiceHighTom][7] = true
		}
	}
}

// isTransition reports whether the measure borders a section boundary.
func (g *Rhythm) isTransition(measure int) bool {
	name := g.structure.Section(measure).Name
	return g.structure.Section(measure-1).Name != name || g.structure.Section(measure+1).Name != name
}

// shouldCrash marks the downbeat of a fresh drop and, usually, every
// sixteenth measure.
func (g *Rhythm) shouldCrash(measure int) bool {
	sec := g.structure.Section(measure)
	if measure > 0 && strings.Contains(sec.Name, "drop") && g.structure.Section(measure-1).Name != sec.Name {
		return true
	}
	return measure%16 == 0 && measure > 0 && g.rng.Float64() < 0.7
}

// renderStep emits the hits for one step of the plan, running the full
// velocity chain: voice curve, accent grid or roll ramp, ghosting, the
// structure's section curve, then humanization.
func (g *Rhythm) renderStep(plan *measurePlan, step int, stepTime, intensity float64, measure int) []Event {
	var events []Event
	for v := Voice(0); v < voiceCount; v++ {
		if !plan.pattern[v][step] {
			continue
		}
		spec := voiceSpecs[v]

		mod := spec.curve(intensity, step)
		if spec.jitter > 0 {
			mod += g.rng.Float64()*2*spec.jitter - spec.jitter
		}

		if v == VoiceClosedHat && plan.rollEnd > plan.rollStart && step >= plan.rollStart && step < plan.rollEnd {
			span := plan.rollEnd - plan.rollStart - 1
			if span < 1 {
				span = 1
			}
			mod *= 0.5 + 0.7*float64(step-plan.rollStart)/float64(span)
		} else if step%4 == 0 {
			mod *= 1.25
		} else if step%4 == 2 {
			mod *= 1.12
		}

		if spec.ghost && step%4 != 0 && g.rng.Float64() < g.profile.ghostProb {
			mod *= 0.35
		}

		vel := g.structure.VelocityCurve(measure, int(float64(spec.baseVel)*mod))
		vel += g.rng.Intn(2*g.profile.humanize+1) - g.profile.humanize
		events = append(events, Event{Time: stepTime, Note: spec.note, Velocity: clampVelocity(vel)})
	}
	return events
}
