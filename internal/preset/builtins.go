package preset

import "sort"

// Builtin returns the named builtin preset. The returned value is a copy,
// so callers cannot change the catalog.
func Builtin(name string) (Preset, bool) {
	p, ok := builtins[name]
	if !ok {
		return Preset{}, false
	}
	return p.clone(), true
}

// BuiltinNames returns the builtin preset names sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is a builtin preset.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func f64(v float64) *float64 { return &v }

var builtins = map[string]Preset{
	"berlin-warehouse": {
		Name:        "berlin-warehouse",
		Description: "Dark, industrial Berlin techno - minimal and hypnotic",
		Style:       "techno",
		Tempo:       132,
		Measures:    256,
		Swing:       f64(0.05),
	},
	"detroit-acid": {
		Name:        "detroit-acid",
		Description: "Classic Detroit acid techno with 303 basslines",
		Style:       "techno",
		Tempo:       128,
		Measures:    192,
		Swing:       f64(0.10),
	},
	"hardfloor": {
		Name:        "hardfloor",
		Description: "Fast, aggressive hard techno rave energy",
		Style:       "hard-tekno",
		Tempo:       165,
		Measures:    256,
		Swing:       f64(0.0),
	},
	"chicago-jack": {
		Name:        "chicago-jack",
		Description: "Classic Chicago house - groovy and soulful",
		Style:       "house",
		Tempo:       124,
		Measures:    192,
		Swing:       f64(0.20),
	},
	"deep-house-sunset": {
		Name:        "deep-house-sunset",
		Description: "Deep, warm house with atmospheric pads",
		Style:       "house",
		Tempo:       122,
		Measures:    256,
		Swing:       f64(0.25),
	},
	"jungle-massive": {
		Name:        "jungle-massive",
		Description: "Fast jungle breaks with ragga bass",
		Style:       "jungle",
		Tempo:       174,
		Measures:    192,
		Swing:       f64(0.15),
	},
	"amen-break": {
		Name:        "amen-break",
		Description: "Classic breakbeat with Amen breaks",
		Style:       "breakbeat",
		Tempo:       145,
		Measures:    128,
		Swing:       f64(0.20),
	},
	"liquid-dnb": {
		Name:        "liquid-dnb",
		Description: "Smooth, melodic drum & bass",
		Style:       "drum&bass",
		Tempo:       174,
		Measures:    256,
		Swing:       f64(0.10),
	},
	"boom-bap": {
		Name:        "boom-bap",
		Description: "Classic 90s boom bap hip-hop",
		Style:       "hip-hop",
		Tempo:       90,
		Measures:    64,
		Swing:       f64(0.30),
	},
	"lo-fi-chill": {
		Name:        "lo-fi-chill",
		Description: "Lo-fi hip-hop beats to study/relax to",
		Style:       "hip-hop",
		Tempo:       85,
		Measures:    96,
		Swing:       f64(0.35),
	},
	"trap-banger": {
		Name:        "trap-banger",
		Description: "Hard trap with 808s and hi-hat rolls",
		Style:       "trap",
		Tempo:       150,
		Measures:    64,
		Swing:       f64(0.15),
	},
	"ambient-meditation": {
		Name:        "ambient-meditation",
		Description: "Slow, meditative ambient soundscape",
		Style:       "ambient",
		Tempo:       65,
		Measures:    256,
		Swing:       f64(0.0),
	},
	"glitch-idm": {
		Name:        "glitch-idm",
		Description: "Experimental IDM with complex rhythms",
		Style:       "idm",
		Tempo:       160,
		Measures:    192,
		Swing:       f64(0.0),
	},
}
