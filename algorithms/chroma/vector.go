package chroma

import (
	"errors"
)

// NumPitchClasses is the size of a chroma vector
const NumPitchClasses = 12

// ErrDegenerateSignal reports input with no measurable tonal energy, such
// as pure silence. Callers get this instead of a division by zero when
// normalizing.
var ErrDegenerateSignal = errors.New("chroma: signal has no measurable tonal energy")

// NoteNames returns the chroma bin labels in chromatic order from C
func NoteNames() []string {
	return []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
}

// Vector is a 12-bin pitch-class energy distribution, indices 0-11 in
// chromatic order starting at C. A normalized Vector sums to 1.
type Vector [NumPitchClasses]float64

// Sum returns the total energy across all pitch classes
func (v Vector) Sum() float64 {
	total := 0.0
	for _, val := range v {
		total += val
	}
	return total
}

// Normalized returns the vector scaled to unit sum, or ErrDegenerateSignal
// when total energy is effectively zero.
func (v Vector) Normalized() (Vector, error) {
	total := v.Sum()
	if total < 1e-10 {
		return Vector{}, ErrDegenerateSignal
	}

	var normalized Vector
	for i, val := range v {
		normalized[i] = val / total
	}
	return normalized, nil
}

// Values returns the vector as a slice for use with []float64 APIs
func (v Vector) Values() []float64 {
	values := make([]float64, NumPitchClasses)
	copy(values, v[:])
	return values
}

// MeanOfFrames averages a time series of 12-bin chroma frames into a
// single normalized Vector. Empty input or frames carrying no energy
// yield ErrDegenerateSignal.
func MeanOfFrames(frames [][]float64) (Vector, error) {
	if len(frames) == 0 {
		return Vector{}, ErrDegenerateSignal
	}

	var mean Vector
	for _, frame := range frames {
		for i := 0; i < NumPitchClasses && i < len(frame); i++ {
			mean[i] += frame[i]
		}
	}

	count := float64(len(frames))
	for i := range mean {
		mean[i] /= count
	}

	return mean.Normalized()
}
