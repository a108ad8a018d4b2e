package synth

// ExternalSample is caller-owned decoded audio at its native sample rate.
// The core reads it during a single call and never retains or mutates it.
type ExternalSample struct {
	Data []float64
	Rate int
}

// SampleLookup resolves an event token to an external sample, if one exists
type SampleLookup func(token string) (ExternalSample, bool)

// Conform fits an external sample to exactly targetLen samples at targetRate.
// A sample already at the target rate and length is returned as a copy.
// Everything else goes through linear interpolation: targetLen evenly spaced
// query positions across the source index range. Not band-limited; good
// enough for short one-shot hits, not for pitch-correct resampling.
func Conform(s ExternalSample, targetLen, targetRate int) (Buffer, error) {
	if len(s.Data) == 0 {
		return nil, ErrEmptySample
	}
	if targetLen <= 0 {
		return Buffer{}, nil
	}

	if s.Rate == targetRate && len(s.Data) == targetLen {
		out := make(Buffer, targetLen)
		copy(out, s.Data)
		return out, nil
	}

	step := float64(len(s.Data)) / float64(targetLen)
	out := make(Buffer, targetLen)
	for i := range out {
		srcIdx := float64(i) * step
		idx := int(srcIdx)
		frac := srcIdx - float64(idx)

		if idx+1 < len(s.Data) {
			out[i] = s.Data[idx]*(1-frac) + s.Data[idx+1]*frac
		} else if idx < len(s.Data) {
			out[i] = s.Data[idx]
		}
	}

	return padOrTruncate(out, targetLen), nil
}

// padOrTruncate forces a buffer to exactly targetLen samples.
// The interpolation above already produces targetLen samples; this guard
// covers ragged inputs only.
func padOrTruncate(buf Buffer, targetLen int) Buffer {
	if len(buf) == targetLen {
		return buf
	}
	out := make(Buffer, targetLen)
	copy(out, buf)
	return out
}
