package harmonic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/common"
)

const testSampleRate = 22050

func TestHarmonicPreservesLength(t *testing.T) {
	hpss := NewHPSS()

	signal := make([]float64, 3*testSampleRate/2)
	for i := range signal {
		signal[i] = 0.4 * math.Sin(2*math.Pi*330*float64(i)/testSampleRate)
	}

	harmonic, err := hpss.Harmonic(signal, testSampleRate)
	assert.NoError(t, err)
	assert.Len(t, harmonic, len(signal))
}

func TestHarmonicKeepsSteadyTone(t *testing.T) {
	hpss := NewHPSS()

	signal := make([]float64, 2*testSampleRate)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/testSampleRate)
	}

	harmonic, err := hpss.Harmonic(signal, testSampleRate)
	assert.NoError(t, err)

	// A stationary sine is purely harmonic; most of its energy must
	// survive separation. Compare away from the edges.
	mid := signal[testSampleRate/2 : 3*testSampleRate/2]
	midHarmonic := harmonic[testSampleRate/2 : 3*testSampleRate/2]
	assert.Greater(t, common.RMS(midHarmonic), 0.7*common.RMS(mid))
}

func TestHarmonicSuppressesClicks(t *testing.T) {
	hpss := NewHPSS()

	// Impulse train: transient, broadband, no sustained tonal content
	signal := make([]float64, 2*testSampleRate)
	for i := 0; i < len(signal); i += testSampleRate / 4 {
		signal[i] = 1.0
	}

	harmonic, err := hpss.Harmonic(signal, testSampleRate)
	assert.NoError(t, err)
	assert.Less(t, common.RMS(harmonic), 0.3*common.RMS(signal))
}

func TestHarmonicShortSignalPassthrough(t *testing.T) {
	hpss := NewHPSS()

	short := make([]float64, 1000)
	for i := range short {
		short[i] = 0.1 * math.Sin(2*math.Pi*100*float64(i)/testSampleRate)
	}

	harmonic, err := hpss.Harmonic(short, testSampleRate)
	assert.NoError(t, err)
	assert.Equal(t, short, harmonic)
}

func TestHarmonicEmptySignal(t *testing.T) {
	hpss := NewHPSS()

	_, err := hpss.Harmonic(nil, testSampleRate)
	assert.Error(t, err)
}
