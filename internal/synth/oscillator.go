package synth

import (
	"math"
	"math/rand"
)

// envelopeDecayRate is the exponential decay constant for percussive hits
const envelopeDecayRate = 5.0

// DefaultNoiseSeed seeds hi-hat noise when the caller does not supply a seed,
// keeping renders reproducible by default.
const DefaultNoiseSeed = 202

// Tone generates floor(rate*duration) samples of a pure sine at freq Hz.
// Zero duration yields an empty buffer. Amplitude stays at unity gain;
// normalization happens at encode time.
func Tone(freq, duration float64, rate int) Buffer {
	samples := int(float64(rate) * duration)
	if samples <= 0 {
		return Buffer{}
	}

	buf := make(Buffer, samples)
	for i := range buf {
		t := float64(i) / float64(rate)
		buf[i] = math.Sin(2 * math.Pi * freq * t)
	}
	return buf
}

// Noise generates floor(rate*duration) samples of uniform noise in [-1, 1].
// A nil rng falls back to a source seeded with DefaultNoiseSeed.
func Noise(duration float64, rate int, rng *rand.Rand) Buffer {
	samples := int(float64(rate) * duration)
	if samples <= 0 {
		return Buffer{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultNoiseSeed))
	}

	buf := make(Buffer, samples)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}
	return buf
}

// ApplyPercussiveEnvelope shapes a drum hit in place with exp(-5t) decay.
// Melodic segments are left unshaped.
func ApplyPercussiveEnvelope(buf Buffer, rate int) {
	for i := range buf {
		t := float64(i) / float64(rate)
		buf[i] *= math.Exp(-envelopeDecayRate * t)
	}
}
