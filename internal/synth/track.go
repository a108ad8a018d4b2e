package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// EventKind classifies an event token
type EventKind int

const (
	EventNote EventKind = iota
	EventKick
	EventSnare
	EventHihat
)

// Drum voice frequencies for synthesized fallback hits
const (
	kickFreq  = 100.0
	snareFreq = 200.0
)

// ClassifyEvent maps a token to its event kind. Drum class names match
// case-insensitively; "Hi-hat" accepts both the ASCII hyphen and the
// non-breaking hyphen the pattern generator emits. Anything that is not a
// drum class must parse as a note.
func ClassifyEvent(token string) (EventKind, error) {
	switch normalizeClass(token) {
	case "kick":
		return EventKick, nil
	case "snare":
		return EventSnare, nil
	case "hi-hat", "hihat":
		return EventHihat, nil
	}

	if _, err := ParseNote(token); err != nil {
		return EventNote, err
	}
	return EventNote, nil
}

func normalizeClass(token string) string {
	s := strings.ToLower(strings.TrimSpace(token))
	return strings.ReplaceAll(s, "‑", "-")
}

// Assembler sequences per-event segments into one waveform. Each instance is
// independent and reentrant: no caches, no shared state across calls.
type Assembler struct {
	// SegmentDuration is the length of every event's segment in seconds
	SegmentDuration float64
	// Rate is the sample rate in Hz; DefaultSampleRate when zero
	Rate int
	// Lookup optionally supplies external samples per token
	Lookup SampleLookup
	// NoiseSeed makes hi-hat noise reproducible; DefaultNoiseSeed when zero
	NoiseSeed int64
}

// SegmentLength returns the per-event sample count, round(rate*duration)
func (a *Assembler) SegmentLength() int {
	return int(math.Round(float64(a.rate()) * a.SegmentDuration))
}

func (a *Assembler) rate() int {
	if a.Rate <= 0 {
		return DefaultSampleRate
	}
	return a.Rate
}

func (a *Assembler) seed() int64 {
	if a.NoiseSeed == 0 {
		return DefaultNoiseSeed
	}
	return a.NoiseSeed
}

// Assemble renders the pattern's events end-to-end into one buffer.
// Per event the external sample wins when the lookup yields a usable one;
// any sample failure falls back to synthesis and is never fatal. An
// unparseable token is fatal and surfaces ErrInvalidToken. An empty pattern
// yields an empty buffer.
func (a *Assembler) Assemble(pattern []string) (Buffer, error) {
	rate := a.rate()
	segLen := a.SegmentLength()
	rng := rand.New(rand.NewSource(a.seed()))

	track := make(Buffer, 0, segLen*len(pattern))
	for i, token := range pattern {
		kind, err := ClassifyEvent(token)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}

		if a.Lookup != nil {
			if sample, ok := a.Lookup(token); ok {
				if seg, err := Conform(sample, segLen, rate); err == nil {
					track = append(track, seg...)
					continue
				}
				// EmptySample or ragged input: fall through to synthesis
			}
		}

		seg := a.synthesizeSegment(kind, token, rng)
		track = append(track, seg...)
	}

	return track, nil
}

// synthesizeSegment produces one segment for a token with no usable sample.
// Tonal vs noise and the percussive envelope depend only on the event kind.
func (a *Assembler) synthesizeSegment(kind EventKind, token string, rng *rand.Rand) Buffer {
	rate := a.rate()

	var seg Buffer
	switch kind {
	case EventKick:
		seg = Tone(kickFreq, a.SegmentDuration, rate)
		ApplyPercussiveEnvelope(seg, rate)
	case EventSnare:
		seg = Tone(snareFreq, a.SegmentDuration, rate)
		ApplyPercussiveEnvelope(seg, rate)
	case EventHihat:
		seg = Noise(a.SegmentDuration, rate, rng)
		ApplyPercussiveEnvelope(seg, rate)
	default:
		freq, err := ResolveFrequency(token)
		if err != nil {
			// ClassifyEvent already validated the token
			return make(Buffer, a.SegmentLength())
		}
		seg = Tone(freq, a.SegmentDuration, rate)
	}

	return padOrTruncate(seg, a.SegmentLength())
}
