package samples

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/inhouse-labs/soundlab-api/internal/synth"
)

// ErrInvalidWAV marks uploads that are not decodable WAV audio
var ErrInvalidWAV = errors.New("not a valid WAV file")

// DecodeWAV decodes uploaded WAV bytes into an external sample at its native
// rate: channels are folded to mono by averaging and integer PCM is scaled
// to [-1, 1] by the source bit depth. Decode failures are errors here; the
// HTTP layer maps them to "no sample available" so they never reach the core.
func DecodeWAV(r io.ReadSeeker) (synth.ExternalSample, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return synth.ExternalSample{}, ErrInvalidWAV
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return synth.ExternalSample{}, fmt.Errorf("decode WAV: %w", err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels <= 0 || len(pcm.Data) == 0 {
		return synth.ExternalSample{}, ErrInvalidWAV
	}

	channels := pcm.Format.NumChannels
	frames := len(pcm.Data) / channels
	scale := float64(int64(1) << (decoder.BitDepth - 1))

	data := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(pcm.Data[i*channels+ch])
		}
		data[i] = sum / float64(channels) / scale
	}

	return synth.ExternalSample{Data: data, Rate: pcm.Format.SampleRate}, nil
}
