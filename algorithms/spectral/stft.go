package spectral

import (
	"fmt"
	"math/cmplx"
)

// Window is the windowing function contract the STFT needs: in-place
// application for analysis and raw coefficients for synthesis.
type Window interface {
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
}

// STFT provides Short-Time Fourier Transform analysis and synthesis
type STFT struct {
	fft *FFT
}

// STFTResult holds the complex spectrogram of a signal
type STFTResult struct {
	Complex    [][]complex128 `json:"-"`           // Time x Frequency complex spectrogram
	TimeFrames int            `json:"time_frames"` // Number of time frames
	FreqBins   int            `json:"freq_bins"`   // Number of positive-frequency bins
	SampleRate int            `json:"sample_rate"` // Sample rate
	WindowSize int            `json:"window_size"` // FFT window size
	HopSize    int            `json:"hop_size"`    // Hop size between frames
}

// NewSTFT creates a new STFT calculator
func NewSTFT() *STFT {
	return &STFT{
		fft: NewFFT(),
	}
}

// Magnitude returns the magnitude spectrogram (Time x Frequency)
func (r *STFTResult) Magnitude() [][]float64 {
	magnitude := make([][]float64, r.TimeFrames)
	for t := range r.Complex {
		magnitude[t] = make([]float64, r.FreqBins)
		for i, val := range r.Complex[t] {
			magnitude[t][i] = cmplx.Abs(val)
		}
	}
	return magnitude
}

// Compute computes the STFT of a signal with the given window
func (s *STFT) Compute(signal []float64, windowSize, hopSize, sampleRate int, window Window) (*STFTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive")
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("signal too short for given window size and hop size")
	}

	freqBins := windowSize/2 + 1
	complexSpectrum := make([][]complex128, numFrames)

	frameBuffer := make([]float64, windowSize)
	for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
		startIdx := frameIdx * hopSize
		copy(frameBuffer, signal[startIdx:startIdx+windowSize])

		if window != nil {
			if err := window.ApplyInPlace(frameBuffer); err != nil {
				return nil, err
			}
		}

		fftResult := s.fft.Compute(frameBuffer)

		complexSpectrum[frameIdx] = make([]complex128, freqBins)
		copy(complexSpectrum[frameIdx], fftResult[:freqBins])
	}

	return &STFTResult{
		Complex:    complexSpectrum,
		TimeFrames: numFrames,
		FreqBins:   freqBins,
		SampleRate: sampleRate,
		WindowSize: windowSize,
		HopSize:    hopSize,
	}, nil
}

// Inverse reconstructs a time-domain signal from a positive-frequency
// complex spectrogram using windowed overlap-add. The output is trimmed or
// zero-extended to the requested length.
func (s *STFT) Inverse(spectrum [][]complex128, windowSize, hopSize, length int, window Window) ([]float64, error) {
	if len(spectrum) == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window and hop sizes must be positive")
	}

	freqBins := windowSize/2 + 1

	var windowCoeffs []float64
	if window != nil {
		windowCoeffs = window.GetCoefficients()
		if len(windowCoeffs) != windowSize {
			return nil, fmt.Errorf("window size (%d) doesn't match frame size (%d)", len(windowCoeffs), windowSize)
		}
	}

	outputLength := (len(spectrum)-1)*hopSize + windowSize
	output := make([]float64, outputLength)
	windowSum := make([]float64, outputLength)

	fullSpectrum := make([]complex128, windowSize)
	for frameIdx, frame := range spectrum {
		if len(frame) != freqBins {
			return nil, fmt.Errorf("frame %d has %d bins, expected %d", frameIdx, len(frame), freqBins)
		}

		// Rebuild the full spectrum from positive frequencies (Hermitian symmetry)
		copy(fullSpectrum[:freqBins], frame)
		for k := freqBins; k < windowSize; k++ {
			fullSpectrum[k] = cmplx.Conj(frame[windowSize-k])
		}

		frameSignal := s.fft.ComputeInverseReal(fullSpectrum)

		startIdx := frameIdx * hopSize
		for i := 0; i < windowSize; i++ {
			w := 1.0
			if windowCoeffs != nil {
				w = windowCoeffs[i]
			}
			output[startIdx+i] += frameSignal[i] * w
			windowSum[startIdx+i] += w * w
		}
	}

	// Normalize by the squared-window overlap
	for i := range output {
		if windowSum[i] > 1e-10 {
			output[i] /= windowSum[i]
		}
	}

	if length <= 0 || length == outputLength {
		return output, nil
	}
	if length < outputLength {
		return output[:length], nil
	}

	extended := make([]float64, length)
	copy(extended, output)
	return extended, nil
}
