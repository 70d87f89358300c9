package keydetect

import (
	"time"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/tonal"
	"github.com/rohitdeveloper22/SongKeyFinder/transcode"
)

// Config holds the analysis pipeline configuration
type Config struct {
	SampleRate  int           `json:"sample_rate"`  // analysis sample rate
	MaxDuration time.Duration `json:"max_duration"` // audio analyzed after trimming
	HopSize     int           `json:"hop_size"`     // chroma frame hop in samples
	TopNotes    int           `json:"top_notes"`    // pitch classes reported in the result

	Decoder    *transcode.DecoderConfig  `json:"decoder"`
	Estimation tonal.KeyEstimationParams `json:"estimation"`
}

// DefaultConfig returns the standard configuration: mono 22050 Hz, the
// first 60 seconds of non-silent audio, 512-sample chroma hop, top-5
// pitch-class report.
func DefaultConfig() *Config {
	decoderConfig := transcode.DefaultDecoderConfig()

	return &Config{
		SampleRate:  decoderConfig.TargetSampleRate,
		MaxDuration: 60 * time.Second,
		HopSize:     512,
		TopNotes:    5,
		Decoder:     decoderConfig,
		Estimation:  tonal.DefaultKeyEstimationParams(),
	}
}
