package engine

// fillKind names one fill archetype. Fills rework the tail of a measure
// (steps 12..15), except the groove fills which reach back to the half bar.
type fillKind int

const (
	fillTomRollDown fillKind = iota
	fillTomRollUp
	fillSnareRoll
	fillSnareHalfRoll
	fillClapBuild
	fillRimRun
	fillHatLift
	fillTomGroove
	fillStopCrash
	fillDoubleKick
	fillShakerRush
	fillRideAccent
	fillHatRoll
)

type weightedFill struct {
	kind   fillKind
	weight int
}

// intenseFills marks the archetypes reserved for high-intensity measures;
// everything else counts as subtle.
var intenseFills = map[fillKind]bool{
	fillTomRollDown: true,
	fillTomRollUp:   true,
	fillSnareRoll:   true,
	fillClapBuild:   true,
	fillTomGroove:   true,
	fillStopCrash:   true,
	fillDoubleKick:  true,
	fillHatRoll:     true,
}

// pickFill draws from the style's weighted fill list, restricted to the
// intense subset above intensity 0.6 and the subtle subset at or below.
func (g *Rhythm) pickFill(intensity float64) fillKind {
	list := g.profile.fills
	wantIntense := intensity > 0.6

	filtered := make([]weightedFill, 0, len(list))
	for _, f := range list {
		if intenseFills[f.kind] == wantIntense {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == 0 {
		filtered = list
	}

	total := 0
	for _, f := range filtered {
		total += f.weight
	}
	n := g.rng.Intn(total)
	for _, f := range filtered {
		n -= f.weight
		if n < 0 {
			return f.kind
		}
	}
	return filtered[len(filtered)-1].kind
}

func (g *Rhythm) applyFill(plan *measurePlan, kind fillKind) {
	p := &plan.pattern
	clearTail := func(voices ...Voice) {
		for _, v := range voices {
			for i := 12; i < patternSteps; i++ {
				p[v][i] = false
			}
		}
	}

	switch kind {
	case fillTomRollDown:
		clearTail(VoiceClosedHat, VoiceOpenHat)
		p[VoiceHighTom][12] = true
		p[VoiceMidTom][13] = true
		p[VoiceMidTom][14] = true
		p[VoiceLowTom][15] = true
	case fillTomRollUp:
		clearTail(VoiceClosedHat, VoiceOpenHat)
		p[VoiceLowTom][12] = true
		p[VoiceMidTom][13] = true
		p[VoiceMidTom][14] = true
		p[VoiceHighTom][15] = true
	case fillSnareRoll:
		for i := 12; i < patternSteps; i++ {
			p[VoiceSnare][i] = true
		}
	case fillSnareHalfRoll:
		p[VoiceSnare][12] = true
		p[VoiceSnare][14] = true
	case fillClapBuild:
		for i := 12; i < patternSteps; i++ {
			p[VoiceClap][i] = true
		}
	case fillRimRun:
		for i := 12; i < patternSteps; i++ {
			p[VoiceRim][i] = true
		}
	case fillHatLift:
		clearTail(VoiceClosedHat)
		p[VoiceOpenHat][12] = true
		p[VoiceOpenHat][14] = true
	case fillTomGroove:
		p[VoiceLowTom][8] = true
		p[VoiceMidTom][10] = true
		p[VoiceHighTom][12] = true
		p[VoiceLowTom][14] = true
	case fillStopCrash:
		clearTail(VoiceBassDrum, VoiceSnare, VoiceClosedHat, VoiceOpenHat)
		p[VoiceCrash][12] = true
	case fillDoubleKick:
		for i := 12; i < patternSteps; i++ {
			p[VoiceBassDrum][i] = true
		}
	case fillShakerRush:
		for i := 12; i < patternSteps; i++ {
			p[VoiceShaker][i] = true
		}
	case fillRideAccent:
		p[VoiceRide][12] = true
		p[VoiceRideBell][14] = true
	case fillHatRoll:
		for i := 12; i < patternSteps; i++ {
			p[VoiceClosedHat][i] = true
		}
		plan.rollStart, plan.rollEnd = 12, patternSteps
	}
}

// overlayLayer is one auxiliary percussion layer: a probability gate, an
// optional measure-modulo gate, an intensity floor, and the step rows it
// writes when it fires.
type overlayLayer struct {
	prob         float64
	every        int // fire only when measure%every == phase; 0 means always
	phase        int
	minIntensity float64
	hatRoll      bool // roll the closed-hat tail instead of writing rows
	glitch       bool // randomize rows by density instead of fixed steps
	voices       []overlayRow
}

type overlayRow struct {
	voice   Voice
	steps   Steps
	density float64 // glitch mode: per-step hit probability
}

// applyOverlays layers the style's auxiliary percussion over the pattern.
func (g *Rhythm) applyOverlays(plan *measurePlan, measure int, intensity float64) {
	for _, layer := range g.profile.overlays {
		if layer.every > 0 && measure%layer.every != layer.phase {
			continue
		}
		if intensity < layer.minIntensity {
			continue
		}
		if layer.prob < 1 && g.rng.Float64() >= layer.prob {
			continue
		}

		if layer.hatRoll {
			for i := 12; i < patternSteps; i++ {
				plan.pattern[VoiceClosedHat][i] = true
			}
			plan.rollStart, plan.rollEnd = 12, patternSteps
			continue
		}

		for _, r := range layer.voices {
			if layer.glitch {
				for i := 0; i < patternSteps; i++ {
					plan.pattern[r.voice][i] = g.rng.Float64() < r.density
				}
				continue
			}
			plan.pattern[r.voice] = r.steps
		}
	}
}

// styleProfile is the per-style behavior of the rhythm generator, resolved
// once at construction: humanization range, ghost-note probability, the
// auxiliary percussion layers and the weighted fill list.
type styleProfile struct {
	humanize  int
	ghostProb float64
	overlays  []overlayLayer
	fills     []weightedFill
}

func profileFor(name string) styleProfile {
	if p, ok := styleProfiles[name]; ok {
		return p
	}
	return defaultProfile
}

var defaultProfile = styleProfile{
	humanize:  5,
	ghostProb: 0.05,
	fills: []weightedFill{
		{fillTomRollDown, 3},
		{fillSnareRoll, 2},
		{fillDoubleKick, 2},
		{fillSnareHalfRoll, 2},
		{fillHatLift, 1},
	},
}

var styleProfiles = map[string]styleProfile{
	"house": {
		humanize:  4,
		ghostProb: 0.1,
		overlays: []overlayLayer{
			{prob: 0.6, every: 2, voices: []overlayRow{
				{voice: VoiceLowConga, steps: row(0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0)},
				{voice: VoiceHighConga, steps: row(0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0)},
			}},
			{prob: 0.4, voices: []overlayRow{
				{voice: VoiceHighBongo, steps: row(0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0)},
				{voice: VoiceLowBongo, steps: row(0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0)},
			}},
			{prob: 0.5, voices: []overlayRow{
				{voice: VoiceClaves, steps: row(0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0)},
			}},
		},
		fills: []weightedFill{
			{fillTomRollDown, 3},
			{fillHatLift, 2},
			{fillClapBuild, 2},
			{fillShakerRush, 2},
			{fillSnareHalfRoll, 2},
			{fillRideAccent, 1},
		},
	},
	"techno": {
		humanize:  3,
		ghostProb: 0.05,
		overlays: []overlayLayer{
			{prob: 0.3, voices: []overlayRow{
				{voice: VoiceCowbell, steps: row(0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0)},
			}},
			{prob: 0.4, every: 4, phase: 3, voices: []overlayRow{
				{voice: VoiceWoodBlock, steps: row(0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0)},
			}},
		},
		fills: []weightedFill{
			{fillDoubleKick, 3},
			{fillTomRollDown, 2},
			{fillStopCrash, 2},
			{fillSnareRoll, 2},
			{fillRimRun, 2},
			{fillHatRoll, 1},
		},
	},
	"hard-tekno": {
		humanize:  2,
		ghostProb: 0.02,
		overlays: []overlayLayer{
			{prob: 1, voices: []overlayRow{
				{voice: VoiceCowbell, steps: row(0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0)},
			}},
			{prob: 0.6, voices: []overlayRow{
				{voice: VoiceWoodBlock, steps: row(1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0)},
			}},
			{prob: 1, minIntensity: 0.7, voices: []overlayRow{
				{voice: VoiceClaves, steps: row(0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1)},
			}},
		},
		fills: []weightedFill{
			{fillDoubleKick, 4},
			{fillSnareRoll, 3},
			{fillStopCrash, 2},
			{fillTomRollUp, 2},
			{fillHatRoll, 2},
			{fillRimRun, 1},
		},
	},
	"breakbeat": {
		humanize:  6,
		ghostProb: 0.2,
		overlays: []overlayLayer{
			{prob: 0.5, voices: []overlayRow{
				{voice: VoiceCowbell, steps: row(0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0)},
			}},
			{prob: 0.4, voices: []overlayRow{
				{voice: VoiceHighConga, steps: row(0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0)},
			}},
		},
		fills: []weightedFill{
			{fillTomGroove, 3},
			{fillTomRollDown, 2},
			{fillSnareRoll, 2},
			{fillSnareHalfRoll, 2},
			{fillRideAccent, 1},
		},
	},
	"idm": {
		humanize:  8,
		ghostProb: 0.15,
		overlays: []overlayLayer{
			{prob: 0.5, glitch: true, voices: []overlayRow{
				{voice: VoiceWoodBlock, density: 0.5},
				{voice: VoiceClaves, density: 0.15},
			}},
		},
		fills: []weightedFill{
			{fillRimRun, 3},
			{fillHatLift, 2},
			{fillTomRollUp, 2},
			{fillShakerRush, 2},
			{fillStopCrash, 1},
		},
	},
	"jungle": {
		humanize:  6,
		ghostProb: 0.25,
		overlays:  junglePercussion,
		fills: []weightedFill{
			{fillSnareRoll, 3},
			{fillTomGroove, 3},
			{fillTomRollDown, 2},
			{fillDoubleKick, 1},
			{fillHatRoll, 1},
			{fillRimRun, 1},
		},
	},
	"hip-hop": {
		humanize:  7,
		ghostProb: 0.15,
		overlays: []overlayLayer{
			{prob: 0.3, every: 4, voices: []overlayRow{
				{voice: VoiceCowbell, steps: row(0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0)},
			}},
		},
		fills: []weightedFill{
			{fillSnareHalfRoll, 3},
			{fillTomRollDown, 2},
			{fillRimRun, 2},
			{fillHatLift, 1},
		},
	},
	"trap": {
		humanize:  4,
		ghostProb: 0.1,
		overlays: []overlayLayer{
			{prob: 0.7, every: 4, phase: 3, hatRoll: true},
			{prob: 0.3, voices: []overlayRow{
				{voice: VoiceCowbell, steps: row(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0)},
			}},
		},
		fills: []weightedFill{
			{fillHatRoll, 4},
			{fillSnareRoll, 2},
			{fillDoubleKick, 2},
			{fillSnareHalfRoll, 1},
			{fillStopCrash, 1},
		},
	},
	"ambient": {
		humanize:  5,
		ghostProb: 0.05,
		overlays: []overlayLayer{
			{prob: 0.3, voices: []overlayRow{
				{voice: VoiceTriangle, steps: row(0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0)},
			}},
			{prob: 0.2, voices: []overlayRow{
				{voice: VoiceTriangle, steps: row(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0)},
			}},
		},
		fills: []weightedFill{
			{fillHatLift, 3},
			{fillRideAccent, 2},
			{fillShakerRush, 1},
			{fillRimRun, 1},
		},
	},
	"drum&bass": {
		humanize:  5,
		ghostProb: 0.25,
		overlays:  junglePercussion,
		fills: []weightedFill{
			{fillSnareRoll, 3},
			{fillTomGroove, 3},
			{fillDoubleKick, 2},
			{fillTomRollDown, 2},
			{fillHatRoll, 1},
			{fillSnareHalfRoll, 1},
		},
	},
}

// junglePercussion is shared by jungle and drum&bass: dense congas with an
// agogo answer.
var junglePercussion = []overlayLayer{
	{prob: 0.7, voices: []overlayRow{
		{voice: VoiceLowConga, steps: row(0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0)},
		{voice: VoiceHighConga, steps: row(1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1, 0)},
	}},
	{prob: 0.5, voices: []overlayRow{
		{voice: VoiceHighAgogo, steps: row(0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0)},
		{voice: VoiceLowAgogo, steps: row(0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0)},
	}},
}
