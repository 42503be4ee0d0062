// Package style defines the catalog of supported music styles. Each style
// bundles the tempo, pattern and density preferences the structure planner
// and the generators consult; the catalog is static and never mutated.
package style

// StructureType selects which song-structure template family a style uses.
type StructureType string

const (
	StructureClassic      StructureType = "classic"
	StructureProgressive  StructureType = "progressive"
	StructureAggressive   StructureType = "aggressive"
	StructureBreakbeat    StructureType = "breakbeat"
	StructureExperimental StructureType = "experimental"
	StructureJungle       StructureType = "jungle"
	StructureHipHop       StructureType = "hip-hop"
	StructureTrap         StructureType = "trap"
	StructureAmbient      StructureType = "ambient"
	StructureDnB          StructureType = "dnb"
)

// Style describes one music style's generation profile.
type Style struct {
	Name           string
	TempoMin       int
	TempoMax       int
	DefaultTempo   int
	RhythmPatterns []string // preferred rhythm pattern names, strongest first
	BasslineRiffs  []string // preferred bassline riff names
	StructureType  StructureType
	IntensityCurve string  // descriptive label only
	SynthDensity   float64 // 0.0 to 1.0, accompaniment activity
	DefaultSwing   float64 // 0.0 to 1.0, groove amount
	Description    string
}

// Style name constants for the built-in catalog.
const (
	House       = "house"
	Techno      = "techno"
	HardTekno   = "hard-tekno"
	Breakbeat   = "breakbeat"
	IDM         = "idm"
	Jungle      = "jungle"
	HipHop      = "hip-hop"
	Trap        = "trap"
	Ambient     = "ambient"
	DrumAndBass = "drum&bass"
)

// order preserves the catalog's presentation order.
var order = []string{House, Techno, HardTekno, Breakbeat, IDM, Jungle, HipHop, Trap, Ambient, DrumAndBass}

var catalog = map[string]Style{
	House: {
		Name:           House,
		TempoMin:       120,
		TempoMax:       128,
		DefaultTempo:   124,
		RhythmPatterns: []string{"driving", "minimal"},
		BasslineRiffs:  []string{"detroit_funk", "chicago_jack", "hypnotic_loop"},
		StructureType:  StructureClassic,
		IntensityCurve: "smooth",
		SynthDensity:   0.8,
		DefaultSwing:   0.3,
		Description:    "Classic house: four-on-the-floor, soulful, groovy",
	},
	Techno: {
		Name:           Techno,
		TempoMin:       128,
		TempoMax:       135,
		DefaultTempo:   128,
		RhythmPatterns: []string{"driving", "complex", "minimal"},
		BasslineRiffs:  []string{"acid_303", "berlin_minimal", "warehouse_stomp", "rolling_thunder"},
		StructureType:  StructureProgressive,
		IntensityCurve: "building",
		SynthDensity:   0.7,
		DefaultSwing:   0.1,
		Description:    "Techno: hypnotic, industrial, relentless energy",
	},
	HardTekno: {
		Name:           HardTekno,
		TempoMin:       150,
		TempoMax:       170,
		DefaultTempo:   160,
		RhythmPatterns: []string{"driving", "rolling", "complex"},
		BasslineRiffs:  []string{"acid_303", "sub_pressure", "uk_rave", "techno_gallop"},
		StructureType:  StructureAggressive,
		IntensityCurve: "intense",
		SynthDensity:   0.6,
		DefaultSwing:   0.0,
		Description:    "Hard tekno: fast, aggressive, distorted, peak-time energy",
	},
	Breakbeat: {
		Name:           Breakbeat,
		TempoMin:       130,
		TempoMax:       150,
		DefaultTempo:   138,
		RhythmPatterns: []string{"breakbeat", "complex"},
		BasslineRiffs:  []string{"uk_rave", "rolling_thunder", "detroit_funk"},
		StructureType:  StructureBreakbeat,
		IntensityCurve: "dynamic",
		SynthDensity:   0.7,
		DefaultSwing:   0.2,
		Description:    "Breakbeat: syncopated drums, funky, energetic",
	},
	IDM: {
		Name:           IDM,
		TempoMin:       140,
		TempoMax:       180,
		DefaultTempo:   160,
		RhythmPatterns: []string{"complex", "breakbeat", "minimal"},
		BasslineRiffs:  []string{"hypnotic_loop", "sub_pressure", "techno_gallop"},
		StructureType:  StructureExperimental,
		IntensityCurve: "erratic",
		SynthDensity:   0.9,
		DefaultSwing:   0.4,
		Description:    "IDM: intelligent, complex, glitchy, experimental",
	},
	Jungle: {
		Name:           Jungle,
		TempoMin:       160,
		TempoMax:       180,
		DefaultTempo:   170,
		RhythmPatterns: []string{"breakbeat", "complex", "rolling"},
		BasslineRiffs:  []string{"sub_pressure", "rolling_thunder", "uk_rave"},
		StructureType:  StructureJungle,
		IntensityCurve: "frenetic",
		SynthDensity:   0.6,
		DefaultSwing:   0.35,
		Description:    "Jungle: fast breakbeats, heavy bass, reggae influence",
	},
	HipHop: {
		Name:           HipHop,
		TempoMin:       85,
		TempoMax:       95,
		DefaultTempo:   90,
		RhythmPatterns: []string{"minimal", "breakbeat"},
		BasslineRiffs:  []string{"detroit_funk", "warehouse_stomp", "sub_pressure"},
		StructureType:  StructureHipHop,
		IntensityCurve: "laid_back",
		SynthDensity:   0.5,
		DefaultSwing:   0.5,
		Description:    "Hip-hop: laid back, boom bap, groovy",
	},
	Trap: {
		Name:           Trap,
		TempoMin:       140,
		TempoMax:       160,
		DefaultTempo:   150,
		RhythmPatterns: []string{"minimal", "rolling"},
		BasslineRiffs:  []string{"sub_pressure", "warehouse_stomp", "hypnotic_loop"},
		StructureType:  StructureTrap,
		IntensityCurve: "trap_wave",
		SynthDensity:   0.7,
		DefaultSwing:   0.1,
		Description:    "Trap: 808 bass, hi-hat rolls, modern urban sound",
	},
	Ambient: {
		Name:           Ambient,
		TempoMin:       60,
		TempoMax:       90,
		DefaultTempo:   75,
		RhythmPatterns: []string{"minimal"},
		BasslineRiffs:  []string{"berlin_minimal", "sub_pressure", "hypnotic_loop"},
		StructureType:  StructureAmbient,
		IntensityCurve: "atmospheric",
		SynthDensity:   0.9,
		DefaultSwing:   0.0,
		Description:    "Ambient: atmospheric, sparse, meditative, textural",
	},
	DrumAndBass: {
		Name:           DrumAndBass,
		TempoMin:       170,
		TempoMax:       180,
		DefaultTempo:   174,
		RhythmPatterns: []string{"breakbeat", "complex", "rolling"},
		BasslineRiffs:  []string{"sub_pressure", "rolling_thunder", "techno_gallop", "acid_303"},
		StructureType:  StructureDnB,
		IntensityCurve: "energetic",
		SynthDensity:   0.7,
		DefaultSwing:   0.2,
		Description:    "Drum & Bass: fast breakbeats, deep bass, high energy",
	},
}

// Get returns the style for name, falling back to techno for unknown names.
func Get(name string) Style {
	if s, ok := catalog[name]; ok {
		return s
	}
	return catalog[Techno]
}

// Available returns the style names in catalog order.
func Available() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}

// ResolveTempo picks the tempo for a generation run. A requested tempo of 0
// means "use the style default". Out-of-range requests also fall back to the
// default; the second return reports whether the request was honored.
func (s Style) ResolveTempo(requested int) (int, bool) {
	if requested == 0 {
		return s.DefaultTempo, true
	}
	if requested >= s.TempoMin && requested <= s.TempoMax {
		return requested, true
	}
	return s.DefaultTempo, false
}
