// Package timesig models musical time signatures and the per-measure
// step and accent geometry the generators derive from them.
package timesig

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/yrbane/acidgrid/internal/errors"
)

// TimeSignature represents a musical time signature such as 4/4 or 7/8.
type TimeSignature struct {
	Numerator   int    // beats per measure
	Denominator int    // note value that gets one beat
	Name        string // display name, e.g. "6/8 (Compound)"
}

// Feel categorizes the rhythmic character of a meter.
type Feel string

const (
	FeelFourOnFloor Feel = "four-on-the-floor"
	FeelWaltz       Feel = "waltz"
	FeelAsymmetric  Feel = "asymmetric"
	FeelComplex     Feel = "complex-asymmetric"
	FeelCompound    Feel = "compound"
	FeelIrregular   Feel = "irregular"
)

// Common is the default 4/4 signature used when none is specified.
var Common = TimeSignature{Numerator: 4, Denominator: 4, Name: "4/4 (Common Time)"}

// catalog of named signatures, keyed by "N/D".
var catalog = map[string]TimeSignature{
	"4/4": Common,
	"3/4": {Numerator: 3, Denominator: 4, Name: "3/4 (Waltz)"},
	"5/4": {Numerator: 5, Denominator: 4, Name: "5/4 (Irregular)"},
	"7/4": {Numerator: 7, Denominator: 4, Name: "7/4 (Complex)"},
	"6/8": {Numerator: 6, Denominator: 8, Name: "6/8 (Compound)"},
	"7/8": {Numerator: 7, Denominator: 8, Name: "7/8 (Balkan)"},
	"9/8": {Numerator: 9, Denominator: 8, Name: "9/8 (Compound Triple)"},
}

// Parse interprets a signature string like "3/4" or "7/8". Known signatures
// keep their display names; anything else is validated field by field.
func Parse(s string) (TimeSignature, error) {
	if ts, ok := catalog[s]; ok {
		return ts, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return TimeSignature{}, fmt.Errorf("%w: %q should be N/D (e.g. 4/4)", apperrors.ErrInvalidTimeSignature, s)
	}

	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeSignature{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeSignature, s)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeSignature{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeSignature, s)
	}

	if num < 1 || num > 16 {
		return TimeSignature{}, fmt.Errorf("%w: %q numerator must be between 1 and 16", apperrors.ErrInvalidTimeSignature, s)
	}
	switch den {
	case 2, 4, 8, 16:
	default:
		return TimeSignature{}, fmt.Errorf("%w: %q denominator must be 2, 4, 8 or 16", apperrors.ErrInvalidTimeSignature, s)
	}

	return TimeSignature{Numerator: num, Denominator: den, Name: fmt.Sprintf("%d/%d", num, den)}, nil
}

// Available returns the catalog's signature keys.
func Available() []string {
	return []string{"4/4", "3/4", "5/4", "7/4", "6/8", "7/8", "9/8"}
}

func (ts TimeSignature) String() string {
	if ts.Name != "" {
		return ts.Name
	}
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

// BeatsPerMeasure returns the beat count of one measure.
func (ts TimeSignature) BeatsPerMeasure() int { return ts.Numerator }

// StepsPerMeasure returns the number of sixteenth-note steps in one measure.
func (ts TimeSignature) StepsPerMeasure() int {
	return ts.Numerator * 16 / ts.Denominator
}

// IsCompound reports whether this is a compound meter (numerator divisible
// by 3 and greater than 3).
func (ts TimeSignature) IsCompound() bool {
	return ts.Numerator%3 == 0 && ts.Numerator > 3
}

// Feel returns the rhythmic character of the meter.
func (ts TimeSignature) Feel() Feel {
	switch {
	case ts.Numerator == 4:
		return FeelFourOnFloor
	case ts.Numerator == 3:
		return FeelWaltz
	case ts.Numerator == 5:
		return FeelAsymmetric
	case ts.Numerator == 7:
		return FeelComplex
	case ts.IsCompound():
		return FeelCompound
	default:
		return FeelIrregular
	}
}

// AccentPattern returns the 0-indexed beats that carry the meter's natural
// accents (e.g. beats 1 and 3 in 4/4, the 2+2+3 grouping in 7/8).
func (ts TimeSignature) AccentPattern() []int {
	switch ts.Numerator {
	case 4:
		return []int{0, 2}
	case 3:
		return []int{0}
	case 5:
		return []int{0, 3}
	case 7:
		return []int{0, 2, 4}
	case 6:
		return []int{0, 3}
	default:
		return []int{0}
	}
}
