package chroma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSampleRate = 22050

func sine(freq float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return signal
}

func TestExtractMeanSumsToOne(t *testing.T) {
	cqt := NewCQT(testSampleRate)

	signal := sine(440.0, 2.0, testSampleRate) // A4
	mean, err := cqt.ExtractMean(signal, 512)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, mean.Sum(), 1e-9)
}

func TestExtractMeanFindsPitchClass(t *testing.T) {
	cqt := NewCQT(testSampleRate)

	signal := sine(440.0, 2.0, testSampleRate)
	mean, err := cqt.ExtractMean(signal, 512)
	assert.NoError(t, err)

	// The strongest pitch class of a pure A4 must be A (index 9)
	argmax := 0
	for i := range mean {
		if mean[i] > mean[argmax] {
			argmax = i
		}
	}
	assert.Equal(t, 9, argmax)
}

func TestExtractMeanSilence(t *testing.T) {
	cqt := NewCQT(testSampleRate)

	silence := make([]float64, testSampleRate)
	_, err := cqt.ExtractMean(silence, 512)
	assert.ErrorIs(t, err, ErrDegenerateSignal)
}

func TestComputeChromaEmptySignal(t *testing.T) {
	cqt := NewCQT(testSampleRate)

	_, err := cqt.ComputeChroma(nil, 512)
	assert.Error(t, err)

	_, err = cqt.ComputeChroma([]float64{0.1}, 0)
	assert.Error(t, err)
}

func TestGetFrequenciesCoverRange(t *testing.T) {
	cqt := NewCQT(testSampleRate)

	// Kernel builds lazily on first use
	assert.Empty(t, cqt.GetFrequencies())

	_, err := cqt.ComputeChroma(sine(440.0, 0.5, testSampleRate), 512)
	assert.NoError(t, err)

	freqs := cqt.GetFrequencies()
	assert.NotEmpty(t, freqs)
	assert.InDelta(t, 65.4, freqs[0], 1e-9)
	assert.Less(t, freqs[len(freqs)-1], 2093.0+1)
}
