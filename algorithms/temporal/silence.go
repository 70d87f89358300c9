package temporal

import (
	"math"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/common"
)

// SilenceTrimmer strips quiet lead-in and tail from a signal using
// frame-based RMS energy, measured in dB relative to the loudest frame.
// A frame is kept once its level is within TopDB of the peak, so an
// audible onset is never discarded.
type SilenceTrimmer struct {
	FrameSize int     // samples per analysis frame
	HopSize   int     // samples between frame starts
	TopDB     float64 // threshold below peak level, in dB
}

// NewSilenceTrimmer creates a trimmer with standard analysis settings
func NewSilenceTrimmer() *SilenceTrimmer {
	return &SilenceTrimmer{
		FrameSize: 2048,
		HopSize:   512,
		TopDB:     60.0,
	}
}

// Trim returns the signal with leading and trailing silence removed.
// A signal that never rises above the threshold comes back empty; a signal
// shorter than one frame is returned unchanged.
func (st *SilenceTrimmer) Trim(signal []float64) []float64 {
	if len(signal) < st.FrameSize {
		return signal
	}

	energies := st.frameRMS(signal)
	if len(energies) == 0 {
		return signal
	}

	peak := common.Max(energies)
	if peak <= 0 {
		return []float64{}
	}

	// Frame is non-silent when 20*log10(rms/peak) > -TopDB
	threshold := peak * math.Pow(10.0, -st.TopDB/20.0)

	firstFrame := -1
	lastFrame := -1
	for i, energy := range energies {
		if energy > threshold {
			if firstFrame == -1 {
				firstFrame = i
			}
			lastFrame = i
		}
	}

	if firstFrame == -1 {
		return []float64{}
	}

	start := firstFrame * st.HopSize
	end := lastFrame*st.HopSize + st.FrameSize
	if end > len(signal) || lastFrame == len(energies)-1 {
		// The final frame never covers the last partial hop; keep the tail
		end = len(signal)
	}

	return signal[start:end]
}

// frameRMS computes per-frame RMS energy
func (st *SilenceTrimmer) frameRMS(signal []float64) []float64 {
	numFrames := (len(signal)-st.FrameSize)/st.HopSize + 1
	if numFrames <= 0 {
		return []float64{}
	}

	energies := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		startIdx := i * st.HopSize
		energies[i] = common.RMS(signal[startIdx : startIdx+st.FrameSize])
	}

	return energies
}
