package keydetect

import (
	"context"
	"fmt"

	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/chroma"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/harmonic"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/temporal"
	"github.com/rohitdeveloper22/SongKeyFinder/algorithms/tonal"
	"github.com/rohitdeveloper22/SongKeyFinder/logging"
	"github.com/rohitdeveloper22/SongKeyFinder/transcode"
)

// Analyzer runs the full key detection pipeline:
//
//	decode -> trim silence -> truncate -> harmonic separation ->
//	CQT chroma -> template correlation -> Camelot mapping
//
// An Analyzer holds no mutable state between calls; it is safe for
// concurrent use as long as each call owns its input buffer.
type Analyzer struct {
	config    *Config
	decoder   *transcode.Decoder
	trimmer   *temporal.SilenceTrimmer
	separator *harmonic.HPSS
	cqt       *chroma.CQT
	estimator *tonal.KeyEstimator
	logger    logging.Logger
}

// NewAnalyzer creates an analyzer with the given configuration
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}

	return &Analyzer{
		config:    config,
		decoder:   transcode.NewDecoder(config.Decoder),
		trimmer:   temporal.NewSilenceTrimmer(),
		separator: harmonic.NewHPSS(),
		cqt:       chroma.NewCQT(config.SampleRate),
		estimator: tonal.NewKeyEstimatorWithParams(config.Estimation),
		logger: logging.WithFields(logging.Fields{
			"component": "key_analyzer",
		}),
	}
}

// AnalyzeFile detects the key of an audio file
func (a *Analyzer) AnalyzeFile(ctx context.Context, filename string) (*Result, error) {
	audio, err := a.decoder.DecodeFile(ctx, filename)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSamples(audio.PCM)
}

// AnalyzeBytes detects the key of an in-memory audio stream
func (a *Analyzer) AnalyzeBytes(ctx context.Context, data []byte) (*Result, error) {
	audio, err := a.decoder.DecodeBytes(ctx, data)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeSamples(audio.PCM)
}

// AnalyzeSamples detects the key of already-decoded mono PCM at the
// configured sample rate. The input slice is not modified.
func (a *Analyzer) AnalyzeSamples(pcm []float64) (*Result, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("keydetect: empty signal")
	}

	trimmed := a.trimmer.Trim(pcm)
	if len(trimmed) == 0 {
		return nil, chroma.ErrDegenerateSignal
	}

	// Only the opening stretch carries the analysis; keys rarely need more
	maxSamples := int(a.config.MaxDuration.Seconds() * float64(a.config.SampleRate))
	if maxSamples > 0 && len(trimmed) > maxSamples {
		trimmed = trimmed[:maxSamples]
	}

	a.logger.Debug("analysis window prepared", logging.Fields{
		"input_samples":    len(pcm),
		"analyzed_samples": len(trimmed),
	})

	harmonicSignal, err := a.separator.Harmonic(trimmed, a.config.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("keydetect: harmonic separation: %w", err)
	}

	chromaVector, err := a.cqt.ExtractMean(harmonicSignal, a.config.HopSize)
	if err != nil {
		return nil, err
	}

	return a.AnalyzeChroma(chromaVector), nil
}

// AnalyzeChroma runs estimation and result assembly on a normalized chroma
// vector. Exposed so callers with their own feature extraction can reuse
// the matching stage.
func (a *Analyzer) AnalyzeChroma(chromaVector chroma.Vector) *Result {
	estimate := a.estimator.Estimate(chromaVector)
	result := buildResult(estimate, chromaVector, a.config.TopNotes)

	a.logger.Debug("key estimated", logging.Fields{
		"key":        result.Key,
		"camelot":    result.Camelot,
		"confidence": result.Confidence,
	})

	return result
}
