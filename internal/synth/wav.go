package synth

import (
	"encoding/binary"
	"math"
)

// WAV container constants, mono 16-bit PCM
const (
	wavHeaderSize = 44
	bitsPerSample = 16
	numChannels   = 1
	pcmMaxValue   = 32767
)

// EncodeWAV peak-normalizes the buffer and serializes it as a single-channel
// 16-bit PCM WAV file. An all-zero or empty buffer encodes to valid silence.
// Same buffer in, byte-identical file out.
func EncodeWAV(buf Buffer, rate int) []byte {
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	peak := 0.0
	for _, s := range buf {
		if v := math.Abs(s); v > peak {
			peak = v
		}
	}

	dataSize := uint32(len(buf) * bitsPerSample / 8)
	out := make([]byte, wavHeaderSize+int(dataSize))

	// RIFF header
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")

	// fmt subchunk
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // PCM subchunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(out[22:24], numChannels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(rate))

	byteRate := rate * numChannels * (bitsPerSample / 8)
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))

	blockAlign := numChannels * (bitsPerSample / 8)
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)

	// data subchunk
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)

	for i, s := range buf {
		var pcm int16
		if peak > 0 {
			v := s / peak
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			pcm = int16(math.Round(v * pcmMaxValue))
		}
		binary.LittleEndian.PutUint16(out[wavHeaderSize+i*2:], uint16(pcm))
	}

	return out
}
