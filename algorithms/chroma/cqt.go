package chroma

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/common"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/spectral"
)

// CQT computes chromagrams using a Constant-Q Transform.
//
// Unlike an STFT-based chromagram, the CQT uses logarithmic frequency
// spacing (f_k = f_min * 2^(k/bins_per_octave)), which matches musical
// note spacing: every octave doubles in frequency and each bin covers one
// semitone. That gives better separation of low-frequency harmonics and is
// the standard choice for tonal analysis.
//
// Each CQT bin is a complex exponential under a Gaussian window whose
// length scales with 1/frequency (constant Q = frequency/bandwidth). The
// kernels are pre-computed in the frequency domain so every frame costs
// one FFT plus a per-bin inner product.
type CQT struct {
	sampleRate    int
	fft           *spectral.FFT
	minFreq       float64 // lowest analyzed frequency
	maxFreq       float64 // highest analyzed frequency
	binsPerOctave int     // semitone resolution = 12
	qFactor       float64 // quality factor (frequency/bandwidth)
	tuningFreq    float64 // A4 reference frequency

	// Pre-computed kernel state
	cqtKernel      [][]complex128 // frequency-domain CQT kernels
	freqBins       []float64      // center frequency per CQT bin
	fftSize        int            // analysis FFT size
	kernelComputed bool
}

// NewCQT creates a CQT chromagram calculator with standard musical
// settings: C2 (65.4 Hz) through C7 (2093 Hz), semitone resolution,
// Q = 25, A4 = 440 Hz.
func NewCQT(sampleRate int) *CQT {
	return NewCQTWithParams(sampleRate, 65.4, 2093.0, 12, 25.0, 440.0)
}

// NewCQTWithParams creates a CQT chromagram calculator with explicit parameters
func NewCQTWithParams(sampleRate int, minFreq, maxFreq float64, binsPerOctave int, qFactor, tuningFreq float64) *CQT {
	return &CQT{
		sampleRate:    sampleRate,
		fft:           spectral.NewFFT(),
		minFreq:       minFreq,
		maxFreq:       maxFreq,
		binsPerOctave: binsPerOctave,
		qFactor:       qFactor,
		tuningFreq:    tuningFreq,
	}
}

// ComputeChroma computes a chromagram: one 12-bin energy frame per hop,
// each frame normalized to unit sum (frames with no energy stay zero).
func (c *CQT) ComputeChroma(signal []float64, hopSize int) ([][]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	if !c.kernelComputed {
		if err := c.computeKernel(); err != nil {
			return nil, err
		}
	}

	numFrames := (len(signal) + hopSize - 1) / hopSize
	chromagram := make([][]float64, numFrames)

	frame := make([]float64, c.fftSize)
	for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
		startIdx := frameIdx * hopSize

		// Extract frame, zero-padded past the end of the signal
		for i := 0; i < c.fftSize; i++ {
			if startIdx+i < len(signal) {
				frame[i] = signal[startIdx+i]
			} else {
				frame[i] = 0.0
			}
		}

		frameFFT := c.fft.Compute(frame)

		chromaFrame := make([]float64, NumPitchClasses)
		for k, freq := range c.freqBins {
			// Inner product with the kernel in the frequency domain
			// (matched filter at lag zero)
			cqtBin := complex(0, 0)
			for n := range frameFFT {
				cqtBin += frameFFT[n] * cmplx.Conj(c.cqtKernel[k][n])
			}

			// Fold bin energy onto its pitch class
			magnitude := cmplx.Abs(cqtBin) / float64(c.fftSize)
			chromaBin := c.pitchClass(freq)
			chromaFrame[chromaBin] += magnitude * magnitude
		}

		normalizeFrame(chromaFrame)
		chromagram[frameIdx] = chromaFrame
	}

	return chromagram, nil
}

// ExtractMean computes the chromagram and collapses it to a single
// normalized 12-bin Vector. Time-averaging discards rhythmic structure and
// keeps only the tonal energy distribution, which is what key estimation
// needs. Returns ErrDegenerateSignal for silent input.
func (c *CQT) ExtractMean(signal []float64, hopSize int) (Vector, error) {
	chromagram, err := c.ComputeChroma(signal, hopSize)
	if err != nil {
		return Vector{}, err
	}
	return MeanOfFrames(chromagram)
}

// computeKernel pre-computes the frequency-domain CQT kernels
func (c *CQT) computeKernel() error {
	if c.minFreq <= 0 || c.maxFreq <= c.minFreq {
		return fmt.Errorf("invalid frequency range [%.1f, %.1f]", c.minFreq, c.maxFreq)
	}
	if c.maxFreq > float64(c.sampleRate)/2 {
		return fmt.Errorf("max frequency %.1f exceeds Nyquist for sample rate %d", c.maxFreq, c.sampleRate)
	}

	numOctaves := math.Log2(c.maxFreq / c.minFreq)
	totalBins := int(numOctaves * float64(c.binsPerOctave))

	c.freqBins = make([]float64, totalBins)
	for k := 0; k < totalBins; k++ {
		c.freqBins[k] = c.minFreq * math.Pow(2.0, float64(k)/float64(c.binsPerOctave))
	}

	// The lowest frequency has the longest kernel; size the FFT to fit it
	maxKernelLength := c.kernelLength(c.freqBins[0])
	c.fftSize = common.NextPowerOfTwo(maxKernelLength)

	c.cqtKernel = make([][]complex128, totalBins)
	for k, freq := range c.freqBins {
		kernelLength := c.kernelLength(freq)

		// Complex exponential under a Gaussian window, centered in the frame
		kernel := make([]complex128, c.fftSize)

		bandwidth := freq / c.qFactor
		sigma := float64(c.sampleRate) / (2.0 * math.Pi * bandwidth)

		center := kernelLength / 2
		offset := (c.fftSize - kernelLength) / 2
		for n := 0; n < kernelLength; n++ {
			t := float64(n - center)

			window := math.Exp(-(t * t) / (2.0 * sigma * sigma))
			phase := 2.0 * math.Pi * freq * t / float64(c.sampleRate)

			kernel[offset+n] = complex(window, 0) * cmplx.Exp(complex(0, phase))
		}

		c.cqtKernel[k] = c.fft.ComputeComplex(kernel)
	}

	c.kernelComputed = true
	return nil
}

// kernelLength computes the time-domain kernel length for a frequency.
// Length is inversely proportional to frequency (constant Q).
func (c *CQT) kernelLength(frequency float64) int {
	kernelLength := int(c.qFactor * float64(c.sampleRate) / frequency)

	// Odd length keeps the kernel symmetric around its center
	if kernelLength%2 == 0 {
		kernelLength++
	}

	if kernelLength < 3 {
		kernelLength = 3
	}
	if kernelLength > c.sampleRate/2 {
		kernelLength = c.sampleRate / 2
	}

	return kernelLength
}

// pitchClass maps a frequency to its chroma bin via the MIDI note number
func (c *CQT) pitchClass(frequency float64) int {
	if frequency <= 0 {
		return 0
	}

	// MIDI note number: 69 + 12*log2(f/tuning); note 60 is middle C
	midiNote := 69.0 + 12.0*math.Log2(frequency/c.tuningFreq)
	chromaBin := int(math.Round(midiNote)) % NumPitchClasses
	if chromaBin < 0 {
		chromaBin += NumPitchClasses
	}
	return chromaBin
}

// GetFrequencies returns the CQT center frequencies once the kernel is built
func (c *CQT) GetFrequencies() []float64 {
	if !c.kernelComputed {
		return []float64{}
	}

	freqs := make([]float64, len(c.freqBins))
	copy(freqs, c.freqBins)
	return freqs
}

// normalizeFrame scales a single chroma frame to unit sum
func normalizeFrame(chromaFrame []float64) {
	totalEnergy := 0.0
	for _, energy := range chromaFrame {
		totalEnergy += energy
	}

	if totalEnergy > 1e-10 {
		for i := range chromaFrame {
			chromaFrame[i] /= totalEnergy
		}
	}
}
