package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorNormalized(t *testing.T) {
	var v Vector
	for i := range v {
		v[i] = float64(i + 1)
	}

	normalized, err := v.Normalized()
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, normalized.Sum(), 1e-9)

	// Relative proportions survive normalization
	assert.InDelta(t, v[11]/v[0], normalized[11]/normalized[0], 1e-9)
}

func TestVectorNormalizedDegenerate(t *testing.T) {
	var zero Vector
	_, err := zero.Normalized()
	assert.ErrorIs(t, err, ErrDegenerateSignal)
}

func TestMeanOfFrames(t *testing.T) {
	frames := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	mean, err := MeanOfFrames(frames)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, mean.Sum(), 1e-9)
	assert.InDelta(t, 0.5, mean[0], 1e-9)
	assert.InDelta(t, 0.5, mean[1], 1e-9)
}

func TestMeanOfFramesDegenerate(t *testing.T) {
	_, err := MeanOfFrames(nil)
	assert.ErrorIs(t, err, ErrDegenerateSignal)

	silent := [][]float64{make([]float64, NumPitchClasses)}
	_, err = MeanOfFrames(silent)
	assert.ErrorIs(t, err, ErrDegenerateSignal)
}

func TestNoteNames(t *testing.T) {
	names := NoteNames()
	assert.Len(t, names, NumPitchClasses)
	assert.Equal(t, "C", names[0])
	assert.Equal(t, "A", names[9])
	assert.Equal(t, "B", names[11])
}
