package transcode

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemblePCM(t *testing.T) {
	d := NewDecoder(nil)

	samples := []float64{0.0, 0.5, -0.5, 1.0}
	raw := make([]byte, len(samples)*8)
	for i, s := range samples {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(s))
	}

	audio, err := d.assemble(raw, "test.wav")
	assert.NoError(t, err)
	assert.Equal(t, samples, audio.PCM)
	assert.Equal(t, 22050, audio.SampleRate)
	assert.Equal(t, "test.wav", audio.Source)
}

func TestAssembleEmptyOutput(t *testing.T) {
	d := NewDecoder(nil)

	_, err := d.assemble(nil, "broken.mp3")
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "broken.mp3", decodeErr.Source)
}

func TestDecodeBytesEmptyInput(t *testing.T) {
	d := NewDecoder(nil)

	_, err := d.DecodeBytes(context.Background(), nil)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestDecodeErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &DecodeError{Source: "x.flac", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "x.flac")
	assert.Contains(t, err.Error(), "boom")
}

func TestDefaultDecoderConfig(t *testing.T) {
	config := DefaultDecoderConfig()
	assert.Equal(t, 22050, config.TargetSampleRate)
	assert.Equal(t, "ffmpeg", config.FFmpegPath)
}
