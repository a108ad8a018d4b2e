package synth

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	buf := Tone(440, 0.1, 44100)
	out := EncodeWAV(buf, 44100)

	require.Len(t, out, 44+len(buf)*2)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, "data", string(out[36:40]))

	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[20:22]), "PCM format")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[22:24]), "mono")
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(out[24:28]))
	assert.Equal(t, uint32(88200), binary.LittleEndian.Uint32(out[28:32]), "byte rate")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(out[32:34]), "block align")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(out[34:36]), "bit depth")

	dataSize := binary.LittleEndian.Uint32(out[40:44])
	assert.Equal(t, uint32(len(buf)*2), dataSize, "declared payload must match PCM bytes")
	assert.Equal(t, uint32(36)+dataSize, binary.LittleEndian.Uint32(out[4:8]))
}

func TestEncodeWAVRoundTrip(t *testing.T) {
	buf := Tone(261.63, 0.25, 44100)
	out := EncodeWAV(buf, 44100)

	decoder := wav.NewDecoder(bytes.NewReader(out))
	require.True(t, decoder.IsValidFile(), "encoded output must be a decodable WAV file")

	pcm, err := decoder.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 1, pcm.Format.NumChannels)
	assert.Equal(t, 44100, pcm.Format.SampleRate)
	assert.Equal(t, 16, int(decoder.BitDepth))
	assert.Equal(t, len(buf), len(pcm.Data))
}

func TestEncodeWAVNormalization(t *testing.T) {
	// Quiet buffer scales up to full range
	buf := Buffer{0.25, -0.25, 0.125}
	out := EncodeWAV(buf, 44100)

	first := int16(binary.LittleEndian.Uint16(out[44:46]))
	second := int16(binary.LittleEndian.Uint16(out[46:48]))
	third := int16(binary.LittleEndian.Uint16(out[48:50]))

	assert.Equal(t, int16(32767), first)
	assert.Equal(t, int16(-32767), second)
	assert.Equal(t, int16(16384), third) // round(0.5 * 32767)
}

func TestEncodeWAVSilence(t *testing.T) {
	buf := make(Buffer, 1000)
	out := EncodeWAV(buf, 44100)

	require.Len(t, out, 44+2000)
	for i := 44; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("silence should encode to zero bytes, byte %d = %d", i, out[i])
		}
	}
}

func TestEncodeWAVEmptyBuffer(t *testing.T) {
	out := EncodeWAV(Buffer{}, 44100)
	require.Len(t, out, 44)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(out[40:44]))
}

func TestEncodeWAVDeterministic(t *testing.T) {
	buf := Tone(440, 0.05, 44100)
	assert.Equal(t, EncodeWAV(buf, 44100), EncodeWAV(buf, 44100))
}

func TestEndToEndDrumTrack(t *testing.T) {
	pattern := []string{"Kick", "Snare", "Hi-hat", "Kick", "Snare", "Hi-hat", "Kick", "Snare"}
	a := &Assembler{SegmentDuration: 0.25, Rate: 44100}

	track, err := a.Assemble(pattern)
	require.NoError(t, err)
	require.Equal(t, 88200, len(track))

	out := EncodeWAV(track, 44100)
	assert.Equal(t, 44+176400, len(out))
	assert.Equal(t, uint32(176400), binary.LittleEndian.Uint32(out[40:44]))
}
