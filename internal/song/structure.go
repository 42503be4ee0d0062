// Package song plans the overall shape of a track: an ordered list of
// sections with evolving intensity and harmony, plus the per-measure
// queries the five generators use to stay coherent with one another.
package song

import (
	"math/rand"
	"strings"

	"github.com/yrbane/acidgrid/internal/style"
)

// Instrument names the five generator roles gated by the structure.
type Instrument string

const (
	InstrumentDrums   Instrument = "drums"
	InstrumentBass    Instrument = "bass"
	InstrumentSubBass Instrument = "sub_bass"
	InstrumentAccomp  Instrument = "synth_accomp"
	InstrumentLead    Instrument = "synth_lead"
)

// Section is a contiguous span of measures sharing one intensity and key.
// Start is inclusive, End exclusive; sections cover [0, totalMeasures)
// without gaps or overlap.
type Section struct {
	Name        string
	Start       int
	End         int
	Intensity   float64
	Key         Key
	Description string
}

// Scale returns the section key's ordered pitch list.
func (s Section) Scale() []int { return s.Key.Scale() }

// Structure holds the section plan, the harmonic mood and the starting key
// for one generation run. It is built once and read by every generator;
// the only mutation after construction is the memo behind ShouldPlay.
type Structure struct {
	TotalMeasures int
	Style         style.Style
	Sections      []Section
	StartKey      Key
	Mood          Mood

	rng   *rand.Rand
	gates map[gateKey]bool
}

type gateKey struct {
	measure    int
	instrument Instrument
}

// New builds the section plan for totalMeasures in the given style. All
// stochastic choices flow from rng, so an identical seed reproduces the
// identical plan and gating decisions.
func New(totalMeasures int, st style.Style, rng *rand.Rand) *Structure {
	s := &Structure{
		TotalMeasures: totalMeasures,
		Style:         st,
		rng:           rng,
		gates:         make(map[gateKey]bool),
	}
	s.Sections = buildSections(totalMeasures, st.StructureType)
	s.StartKey = keyOrder[rng.Intn(len(keyOrder))]
	s.Mood = s.chooseMood()
	return s
}

// chooseMood draws a progression mood suited to the style.
func (s *Structure) chooseMood() Mood {
	if moods, ok := styleMoods[s.Style.Name]; ok {
		return moods[s.rng.Intn(len(moods))]
	}
	return moodOrder[s.rng.Intn(len(moodOrder))]
}

// buildSections dispatches to the template family selected by the style.
// Templates carry hand-tuned spans that assume a reasonable track length;
// when the requested length is too short for a template to tile it, the
// simple intro/main/outro layout is used instead.
func buildSections(total int, structType style.StructureType) []Section {
	var sections []Section
	switch structType {
	case style.StructureAmbient:
		sections = ambientSections(total)
	case style.StructureHipHop:
		sections = hipHopSections(total)
	case style.StructureTrap:
		sections = trapSections(total)
	case style.StructureBreakbeat, style.StructureJungle, style.StructureDnB:
		sections = breakbeatSections(total)
	case style.StructureAggressive:
		sections = aggressiveSections(total)
	default:
		sections = progressiveSections(total)
	}
	if !sectionsValid(sections, total) {
		return shortSections(total)
	}
	return sections
}

// sectionsValid reports whether sections tile [0, total) in order with no
// empty spans.
func sectionsValid(sections []Section, total int) bool {
	if len(sections) == 0 || sections[0].Start != 0 || sections[len(sections)-1].End != total {
		return false
	}
	for i, sec := range sections {
		if sec.Start >= sec.End {
			return false
		}
		if i > 0 && sec.Start != sections[i-1].End {
			return false
		}
	}
	return true
}

// shortSections is the minimal intro/main/outro layout, used directly for
// short progressive tracks and as the fallback for every style family whose
// template cannot tile the requested length. At 32 measures it yields
// intro [0,4), main [4,24), outro [24,32).
func shortSections(total int) []Section {
	if total < 3 {
		return []Section{{"main", 0, total, 0.8, KeyAMinor, "Main groove"}}
	}
	intro := total / 8
	if intro < 1 {
		intro = 1
	}
	outro := total / 4
	if outro < 1 {
		outro = 1
	}
	return []Section{
		{"intro", 0, intro, 0.3, KeyAMinor, "Minimal intro"},
		{"main", intro, total - outro, 0.8, KeyAMinor, "Main groove"},
		{"outro", total - outro, total, 0.4, KeyAMinor, "Fade out"},
	}
}

// progressiveSections is the default techno/house arc: intro, builds, drops,
// a modulating breakdown, outro. Short tracks collapse to three sections.
func progressiveSections(total int) []Section {
	switch {
	case total <= 32:
		return shortSections(total)
	case total <= 64:
		return []Section{
			{"intro", 0, 8, 0.2, KeyAMinor, "Atmospheric intro"},
			{"buildup", 8, 16, 0.5, KeyAMinor, "Energy building"},
			{"drop", 16, 32, 0.9, KeyAMinor, "Main drop"},
			{"breakdown", 32, 40, 0.4, KeyDMinor, "Melodic breakdown"},
			{"buildup2", 40, 48, 0.6, KeyAMinor, "Second build"},
			{"drop2", 48, 56, 1.0, KeyAMinor, "Peak energy"},
			{"outro", 56, total, 0.3, KeyAMinor, "Cool down"},
		}
	default:
		n := total / 8
		return []Section{
			{"intro", 0, n, 0.2, KeyAMinor, "Atmospheric opening"},
			{"verse1", n, n * 2, 0.5, KeyAMinor, "First verse"},
			{"buildup1", n * 2, n * 3, 0.7, KeyAMinor, "Rising tension"},
			{"drop1", n * 3, n * 4, 0.95, KeyAMinor, "First drop"},
			{"breakdown", n * 4, n * 5, 0.3, KeyDMinor, "Ambient breakdown"},
			{"buildup2", n * 5, n * 6, 0.8, KeyAMinor, "Final build"},
			{"drop2", n * 6, n * 7, 1.0, KeyAMinor, "Climax"},
			{"outro", n * 7, total, 0.2, KeyAMinor, "Fade out"},
		}
	}
}

// ambientSections evolves slowly through four long plateaus.
func ambientSections(total int) []Section {
	n := total / 4
	if n < 16 {
		n = 16
	}
	return []Section{
		{"intro", 0, n, 0.2, KeyAMinor, "Atmospheric opening"},
		{"evolution", n, n * 2, 0.4, KeyDMinor, "Textural evolution"},
		{"plateau", n * 2, n * 3, 0.5, KeyEMinor, "Sustained plateau"},
		{"outro", n * 3, total, 0.3, KeyAMinor, "Gentle fade"},
	}
}

// hipHopSections alternates verses and hooks.
func hipHopSections(total int) []Section {
	if total <= 32 {
		return []Section{
			{"intro", 0, 4, 0.3, KeyAMinor, "Beat intro"},
			{"verse1", 4, 12, 0.6, KeyAMinor, "First verse"},
			{"hook", 12, 20, 0.8, KeyAMinor, "Hook"},
			{"verse2", 20, 28, 0.7, KeyAMinor, "Second verse"},
			{"outro", 28, total, 0.4, KeyAMinor, "Fade out"},
		}
	}
	n := total / 8
	return []Section{
		{"intro", 0, n, 0.3, KeyAMinor, "Beat intro"},
		{"verse1", n, n * 2, 0.6, KeyAMinor, "First verse"},
		{"hook1", n * 2, n * 3, 0.8, KeyAMinor, "Hook"},
		{"verse2", n * 3, n * 4, 0.7, KeyDMinor, "Second verse"},
		{"bridge", n * 4, n * 5, 0.5, KeyEMinor, "Bridge"},
		{"verse3", n * 5, n * 6, 0.7, KeyAMinor, "Third verse"},
		{"hook2", n * 6, n * 7, 0.9, KeyAMinor, "Final hook"},
		{"outro", n * 7, total, 0.3, KeyAMinor, "Outro"},
	}
}

// trapSections centers everything on two drops.
func trapSections(total int) []Section {
	n := total / 6
	if n < 8 {
		n = 8
	}
	return []Section{
		{"intro", 0, n, 0.3, KeyAMinor, "Minimal intro"},
		{"buildup1", n, n * 2, 0.6, KeyAMinor, "First buildup"},
		{"drop1", n * 2, n * 3, 0.95, KeyAMinor, "Hard drop"},
		{"break", n * 3, n * 4, 0.4, KeyDMinor, "Break section"},
		{"buildup2", n * 4, n * 5, 0.8, KeyAMinor, "Final buildup"},
		{"drop2", n * 5, total, 1.0, KeyAMinor, "Peak drop"},
	}
}

// breakbeatSections keeps energy high with one atmospheric break.
func breakbeatSections(total int) []Section {
	n := total / 6
	if n < 8 {
		n = 8
	}
	return []Section{
		{"intro", 0, n, 0.4, KeyAMinor, "Drum intro"},
		{"main1", n, n * 2, 0.85, KeyAMinor, "Main section"},
		{"breakdown", n * 2, n * 3, 0.3, KeyDMinor, "Atmospheric break"},
		{"buildup", n * 3, n * 4, 0.7, KeyAMinor, "Tension build"},
		{"main2", n * 4, n * 5, 0.95, KeyAMinor, "Peak energy"},
		{"outro", n * 5, total, 0.5, KeyAMinor, "Outro"},
	}
}

// aggressiveSections barely lets up.
func aggressiveSections(total int) []Section {
	n := total / 5
	if n < 8 {
		n = 8
	}
	return []Section{
		{"intro", 0, n, 0.7, KeyAMinor, "Aggressive intro"},
		{"main1", n, n * 2, 0.95, KeyAMinor, "Peak intensity"},
		{"breakdown", n * 2, n * 3, 0.6, KeyDMinor, "Brief respite"},
		{"main2", n * 3, n * 4, 1.0, KeyAMinor, "Maximum energy"},
		{"outro", n * 4, total, 0.8, KeyAMinor, "Intense outro"},
	}
}

// Section returns the section containing measure. Out-of-range measures
// clamp to the nearest section instead of failing.
func (s *Structure) Section(measure int) Section {
	if measure < 0 {
		return s.Sections[0]
	}
	for _, sec := range s.Sections {
		if sec.Start <= measure && measure < sec.End {
			return sec
		}
	}
	return s.Sections[len(s.Sections)-1]
}

// sectionIndex mirrors Section but returns the slice index.
func (s *Structure) sectionIndex(measure int) int {
	if measure < 0 {
		return 0
	}
	for i, sec := range s.Sections {
		if sec.Start <= measure && measure < sec.End {
			return i
		}
	}
	return len(s.Sections) - 1
}

// Intensity returns the section intensity, cross-faded linearly toward the
// next section over the final quarter of the current section's span.
func (s *Structure) Intensity(measure int) float64 {
	idx := s.sectionIndex(measure)
	sec := s.Sections[idx]

	span := sec.End - sec.Start
	if span < 1 {
		span = 1
	}
	pos := float64(measure-sec.Start) / float64(span)

	if idx < len(s.Sections)-1 && pos > 0.75 {
		next := s.Sections[idx+1]
		blend := (pos - 0.75) * 4
		return sec.Intensity + (next.Intensity-sec.Intensity)*blend
	}
	return sec.Intensity
}

// VelocityCurve shapes a base velocity by song position: buildups ramp from
// 70% to full, drops sit near full with jitter, breakdowns pull back, and
// everything else follows the blended intensity. The result is clamped to
// the playable MIDI range.
func (s *Structure) VelocityCurve(measure, baseVelocity int) int {
	sec := s.Section(measure)

	var modifier float64
	switch {
	case strings.HasPrefix(sec.Name, "buildup"):
		span := sec.End - sec.Start
		if span < 1 {
			span = 1
		}
		progress := float64(measure-sec.Start) / float64(span)
		modifier = 0.7 + 0.3*progress
	case strings.HasPrefix(sec.Name, "drop"):
		modifier = 1.0 + (s.rng.Float64()*0.2 - 0.1)
	case sec.Name == "breakdown":
		modifier = 0.6 + (s.rng.Float64()*0.2 - 0.1)
	default:
		modifier = s.Intensity(measure)
	}

	modifier += s.rng.Float64()*0.1 - 0.05

	v := int(float64(baseVelocity) * modifier)
	if v < 1 {
		v = 1
	}
	if v > 127 {
		v = 127
	}
	return v
}

// gateRule holds per-instrument play probabilities for one section category.
// 0 and 1 are fixed decisions and consume no randomness.
type gateRule struct {
	drums, bass, subBass, accomp, lead float64
}

func (r gateRule) probability(inst Instrument) float64 {
	switch inst {
	case InstrumentDrums:
		return r.drums
	case InstrumentBass:
		return r.bass
	case InstrumentSubBass:
		return r.subBass
	case InstrumentAccomp:
		return r.accomp
	case InstrumentLead:
		return r.lead
	default:
		return 1
	}
}

var gateRules = map[string]gateRule{
	"intro":     {drums: 0.3, bass: 0.2, subBass: 0, accomp: 0.4, lead: 0.1},
	"buildup":   {drums: 1, bass: 1, subBass: 0.7, accomp: 1, lead: 0.5},
	"drop":      {drums: 1, bass: 1, subBass: 1, accomp: 1, lead: 0.8},
	"breakdown": {drums: 0.4, bass: 0.6, subBass: 0.3, accomp: 1, lead: 0.7},
	"outro":     {drums: 0.5, bass: 0.4, subBass: 0, accomp: 0.6, lead: 0.3},
}

// ShouldPlay decides whether an instrument sounds during a measure. The
// decision is drawn once per (measure, instrument) and memoized, so
// repeated queries within a run always agree.
func (s *Structure) ShouldPlay(measure int, inst Instrument) bool {
	k := gateKey{measure: measure, instrument: inst}
	if decision, ok := s.gates[k]; ok {
		return decision
	}

	rule := s.gateRuleFor(measure)
	p := rule.probability(inst)

	var decision bool
	switch {
	case p <= 0:
		decision = false
	case p >= 1:
		decision = true
	default:
		decision = s.rng.Float64() < p
	}

	s.gates[k] = decision
	return decision
}

// gateRuleFor normalizes the section name to a rule category: trailing
// digits are stripped, and unknown categories map to buildup when they
// contain "build", otherwise to drop.
func (s *Structure) gateRuleFor(measure int) gateRule {
	name := strings.TrimRight(s.Section(measure).Name, "0123456789")
	if rule, ok := gateRules[name]; ok {
		return rule
	}
	if strings.Contains(name, "build") {
		return gateRules["buildup"]
	}
	return gateRules["drop"]
}

// Harmony returns the harmonic context for a measure. The chord advances
// through the mood's progression every four measures, restarting at each
// section boundary.
func (s *Structure) Harmony(measure int) HarmonicContext {
	sec := s.Section(measure)
	prog := s.Mood.Progression()

	measuresIn := measure - sec.Start
	if measuresIn < 0 {
		measuresIn = 0
	}
	chord := prog[(measuresIn/4)%len(prog)]

	return HarmonicContext{
		Key:       sec.Key,
		Scale:     sec.Key.Scale(),
		Chord:     chord,
		Section:   sec.Name,
		Intensity: s.Intensity(measure),
	}
}
