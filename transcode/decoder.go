package transcode

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os/exec"
	"time"

	"github.com/rohitdeveloper22/SongKeyFinder/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Raw mono PCM samples
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Source     string        `json:"source,omitempty"`
}

// DecodeError reports an input that could not be read or decoded. The
// boundary layer maps it to a client-side failure; it is never retried.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"`
	FFmpegPath       string        `json:"ffmpeg_path"` // ffmpeg binary, looked up in PATH when bare
	Timeout          time.Duration `json:"timeout"`     // per-invocation limit for the child process
}

// DefaultDecoderConfig returns the configuration used for key analysis:
// mono 22050 Hz, which keeps decoding fast while preserving everything
// below the top of the chroma analysis range.
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 22050,
		FFmpegPath:       "ffmpeg",
		Timeout:          30 * time.Second,
	}
}

// Decoder converts arbitrary audio inputs to mono float64 PCM by shelling
// out to ffmpeg. Each invocation streams its own pipes; no shared files
// are written, so concurrent decodes never interleave.
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeFile decodes an audio file to mono PCM at the target sample rate
func (d *Decoder) DecodeFile(ctx context.Context, filename string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"filename":  filename,
	})
	logger.Debug("starting audio file decode")

	raw, err := d.runFFmpeg(ctx, filename, nil)
	if err != nil {
		logger.Error(err, "ffmpeg decode failed")
		return nil, &DecodeError{Source: filename, Err: err}
	}

	return d.assemble(raw, filename)
}

// DecodeBytes decodes an in-memory audio stream to mono PCM
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"data_size": len(data),
	})
	logger.Debug("starting audio bytes decode")

	if len(data) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("empty audio data")}
	}

	raw, err := d.runFFmpeg(ctx, "pipe:0", bytes.NewReader(data))
	if err != nil {
		logger.Error(err, "ffmpeg decode failed")
		return nil, &DecodeError{Err: err}
	}

	return d.assemble(raw, "")
}

// runFFmpeg decodes the input to raw little-endian float64 samples on stdout
func (d *Decoder) runFFmpeg(ctx context.Context, input string, stdin io.Reader) ([]byte, error) {
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-f", "f64le",
		"-acodec", "pcm_f64le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", d.config.TargetSampleRate),
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, d.config.FFmpegPath, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return nil, fmt.Errorf("ffmpeg: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}

	return stdout.Bytes(), nil
}

// assemble converts raw f64le bytes into AudioData
func (d *Decoder) assemble(raw []byte, source string) (*AudioData, error) {
	if len(raw) < 8 {
		return nil, &DecodeError{Source: source, Err: fmt.Errorf("no audio samples decoded")}
	}

	numSamples := len(raw) / 8
	pcm := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		bits := binary.LittleEndian.Uint64(raw[i*8 : i*8+8])
		pcm[i] = math.Float64frombits(bits)
	}

	duration := time.Duration(float64(numSamples) / float64(d.config.TargetSampleRate) * float64(time.Second))

	logging.Debug("audio decoded", logging.Fields{
		"component":   "audio_decoder",
		"samples":     numSamples,
		"sample_rate": d.config.TargetSampleRate,
		"duration":    duration.String(),
	})

	return &AudioData{
		PCM:        pcm,
		SampleRate: d.config.TargetSampleRate,
		Duration:   duration,
		Source:     source,
	}, nil
}
