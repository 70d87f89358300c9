package tonal

import (
	"fmt"
	"strings"
)

// PitchClass identifies one of the 12 chromatic pitch classes, numbered
// from C=0 to B=11. It doubles as the index into a chroma vector.
type PitchClass int

const (
	PitchC PitchClass = iota
	PitchCSharp
	PitchD
	PitchDSharp
	PitchE
	PitchF
	PitchFSharp
	PitchG
	PitchGSharp
	PitchA
	PitchASharp
	PitchB
)

var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (p PitchClass) String() string {
	if p < 0 || int(p) >= len(pitchClassNames) {
		return "?"
	}
	return pitchClassNames[p]
}

// Mode represents major or minor mode
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Key is a tonic pitch class plus a mode. The 24 values of this type are
// the complete label space of the estimator.
type Key struct {
	Tonic PitchClass `json:"tonic"`
	Mode  Mode       `json:"mode"`
}

// Label returns the lowercase form used internally, e.g. "c# minor"
func (k Key) Label() string {
	return strings.ToLower(fmt.Sprintf("%s %s", k.Tonic.String(), k.Mode.String()))
}

// Name returns the display form, e.g. "C# Minor"
func (k Key) Name() string {
	mode := "Major"
	if k.Mode == ModeMinor {
		mode = "Minor"
	}
	return fmt.Sprintf("%s %s", k.Tonic.String(), mode)
}
