package harmonic

import (
	"fmt"
	"math"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/common"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/spectral"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/windowing"
)

// HPSS implements harmonic/percussive source separation by median
// filtering the magnitude spectrogram (Fitzgerald 2010):
//
//   - Harmonic content is sustained: it forms horizontal ridges in the
//     spectrogram, so a median filter along the time axis enhances it.
//   - Percussive content is transient and broadband: it forms vertical
//     ridges, so a median filter along the frequency axis enhances it.
//
// The two enhanced spectrograms are turned into soft Wiener masks and the
// harmonic mask is applied to the complex spectrogram before inverse STFT,
// so the reconstruction keeps the original phase.
type HPSS struct {
	windowSize       int
	hopSize          int
	harmonicKernel   int     // median filter length along time (frames)
	percussiveKernel int     // median filter length along frequency (bins)
	maskPower        float64 // Wiener mask exponent

	stft   *spectral.STFT
	window *windowing.Hann
}

// NewHPSS creates a separator with standard analysis settings
func NewHPSS() *HPSS {
	return NewHPSSWithParams(2048, 512, 31, 31, 2.0)
}

// NewHPSSWithParams creates a separator with explicit parameters
func NewHPSSWithParams(windowSize, hopSize, harmonicKernel, percussiveKernel int, maskPower float64) *HPSS {
	return &HPSS{
		windowSize:       windowSize,
		hopSize:          hopSize,
		harmonicKernel:   harmonicKernel,
		percussiveKernel: percussiveKernel,
		maskPower:        maskPower,
		stft:             spectral.NewSTFT(),
		window:           windowing.NewHann(windowSize, false),
	}
}

// Harmonic returns the harmonic component of the signal, same length and
// sample rate as the input. Signals shorter than one analysis window are
// returned unchanged; there is nothing percussive to remove at that scale.
func (h *HPSS) Harmonic(signal []float64, sampleRate int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if len(signal) < h.windowSize {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out, nil
	}

	// Center-pad so overlap-add covers the full input
	pad := h.windowSize / 2
	padded := make([]float64, len(signal)+2*pad)
	copy(padded[pad:], signal)

	stftResult, err := h.stft.Compute(padded, h.windowSize, h.hopSize, sampleRate, h.window)
	if err != nil {
		return nil, err
	}

	magnitude := stftResult.Magnitude()
	harmonicMag := h.enhanceHarmonic(magnitude)
	percussiveMag := h.enhancePercussive(magnitude)

	// Soft Wiener mask over the enhanced spectrograms
	masked := make([][]complex128, stftResult.TimeFrames)
	for t := range masked {
		masked[t] = make([]complex128, stftResult.FreqBins)
		for f := range masked[t] {
			mask := h.wienerMask(harmonicMag[t][f], percussiveMag[t][f])
			masked[t][f] = stftResult.Complex[t][f] * complex(mask, 0)
		}
	}

	reconstructed, err := h.stft.Inverse(masked, h.windowSize, h.hopSize, len(padded), h.window)
	if err != nil {
		return nil, err
	}

	return reconstructed[pad : pad+len(signal)], nil
}

// enhanceHarmonic median-filters each frequency bin across time
func (h *HPSS) enhanceHarmonic(magnitude [][]float64) [][]float64 {
	numFrames := len(magnitude)
	numBins := len(magnitude[0])

	enhanced := make([][]float64, numFrames)
	for t := range enhanced {
		enhanced[t] = make([]float64, numBins)
	}

	series := make([]float64, numFrames)
	for f := 0; f < numBins; f++ {
		for t := 0; t < numFrames; t++ {
			series[t] = magnitude[t][f]
		}
		filtered := common.MedianFilter(series, h.harmonicKernel)
		for t := 0; t < numFrames; t++ {
			enhanced[t][f] = filtered[t]
		}
	}

	return enhanced
}

// enhancePercussive median-filters each frame across frequency
func (h *HPSS) enhancePercussive(magnitude [][]float64) [][]float64 {
	enhanced := make([][]float64, len(magnitude))
	for t := range magnitude {
		filtered := common.MedianFilter(magnitude[t], h.percussiveKernel)
		enhanced[t] = make([]float64, len(filtered))
		copy(enhanced[t], filtered)
	}
	return enhanced
}

// wienerMask computes the harmonic share of energy at one bin
func (h *HPSS) wienerMask(harmonic, percussive float64) float64 {
	hp := math.Pow(harmonic, h.maskPower)
	pp := math.Pow(percussive, h.maskPower)

	denom := hp + pp
	if denom < 1e-10 {
		return 0.0
	}
	return hp / denom
}
