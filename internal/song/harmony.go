package song

// Key identifies one of the supported minor keys.
type Key string

const (
	KeyAMinor Key = "A_minor"
	KeyDMinor Key = "D_minor"
	KeyEMinor Key = "E_minor"
	KeyFMinor Key = "F_minor"
	KeyGMinor Key = "G_minor"
)

// keyInfo carries a key's natural minor scale (one octave plus the ninth,
// as MIDI pitches) and its relative major, kept for display.
type keyInfo struct {
	notes    []int
	relative string
}

var keys = map[Key]keyInfo{
	KeyAMinor: {notes: []int{57, 59, 60, 62, 64, 65, 67, 69}, relative: "C_major"},
	KeyDMinor: {notes: []int{62, 64, 65, 67, 69, 70, 72, 74}, relative: "F_major"},
	KeyEMinor: {notes: []int{64, 66, 67, 69, 71, 72, 74, 76}, relative: "G_major"},
	KeyFMinor: {notes: []int{65, 67, 68, 70, 72, 73, 75, 77}, relative: "Ab_major"},
	KeyGMinor: {notes: []int{67, 69, 70, 72, 74, 75, 77, 79}, relative: "Bb_major"},
}

// keyOrder fixes the draw order for the starting-key choice.
var keyOrder = []Key{KeyAMinor, KeyDMinor, KeyEMinor, KeyFMinor, KeyGMinor}

// Scale returns the key's scale as an ordered MIDI pitch list. Unknown keys
// fall back to A minor.
func (k Key) Scale() []int {
	info, ok := keys[k]
	if !ok {
		info = keys[KeyAMinor]
	}
	out := make([]int, len(info.notes))
	copy(out, info.notes)
	return out
}

// RelativeMajor returns the display name of the key's relative major.
func (k Key) RelativeMajor() string {
	if info, ok := keys[k]; ok {
		return info.relative
	}
	return keys[KeyAMinor].relative
}

// Chord is a roman-numeral degree symbol within the active key.
type Chord string

const (
	ChordI       Chord = "i"
	ChordII      Chord = "ii"
	ChordIV      Chord = "iv"
	ChordV       Chord = "v"
	ChordIII     Chord = "III"
	ChordVMaj    Chord = "V"
	ChordVI      Chord = "VI"
	ChordVII     Chord = "VII"
	ChordFlatII  Chord = "bII"
	ChordFlatVII Chord = "bVII"
)

// Mood names a chord-progression template.
type Mood string

const (
	MoodDark      Mood = "dark"
	MoodUplifting Mood = "uplifting"
	MoodDriving   Mood = "driving"
	MoodEmotional Mood = "emotional"
	MoodTension   Mood = "tension"
)

// progressions are four-chord loops; the active chord advances every four
// measures, restarting at each section boundary.
var progressions = map[Mood][]Chord{
	MoodDark:      {ChordI, ChordIV, ChordI, ChordV},
	MoodUplifting: {ChordI, ChordVI, ChordIII, ChordVII},
	MoodDriving:   {ChordI, ChordI, ChordI, ChordI},
	MoodEmotional: {ChordI, ChordV, ChordVI, ChordIV},
	MoodTension:   {ChordI, ChordFlatII, ChordI, ChordV},
}

// moodOrder fixes the draw order for the style-independent mood choice.
var moodOrder = []Mood{MoodDark, MoodUplifting, MoodDriving, MoodEmotional, MoodTension}

// styleMoods lists the moods that suit each style, strongest fit first.
var styleMoods = map[string][]Mood{
	"house":      {MoodUplifting, MoodEmotional, MoodDark},
	"techno":     {MoodDark, MoodDriving, MoodTension},
	"hard-tekno": {MoodDriving, MoodTension, MoodDark},
	"breakbeat":  {MoodUplifting, MoodDriving},
	"idm":        {MoodTension, MoodDark, MoodEmotional},
	"jungle":     {MoodDark, MoodDriving, MoodTension},
	"hip-hop":    {MoodEmotional, MoodDark},
	"trap":       {MoodDark, MoodTension},
	"ambient":    {MoodEmotional, MoodUplifting},
	"drum&bass":  {MoodDark, MoodDriving, MoodTension},
}

// Progression returns the mood's four-chord loop.
func (m Mood) Progression() []Chord {
	if p, ok := progressions[m]; ok {
		return p
	}
	return progressions[MoodDark]
}

// HarmonicContext is the per-measure harmony snapshot shared by all
// generators.
type HarmonicContext struct {
	Key       Key
	Scale     []int
	Chord     Chord
	Section   string
	Intensity float64
}
