package synth

// DefaultSampleRate is the sample rate used when the caller does not pick one
const DefaultSampleRate = 44100

// Buffer is mono float64 samples at unity gain
type Buffer []float64

// Clone returns an independent copy of the buffer
func (b Buffer) Clone() Buffer {
	out := make(Buffer, len(b))
	copy(out, b)
	return out
}
