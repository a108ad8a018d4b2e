package samples

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/inhouse-labs/soundlab-api/internal/synth"
)

func TestDecodeWAVRoundTrip(t *testing.T) {
	// Encode a known tone with our own encoder, decode it back here
	tone := synth.Tone(440, 0.1, 44100)
	encoded := synth.EncodeWAV(tone, 44100)

	sample, err := DecodeWAV(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if sample.Rate != 44100 {
		t.Errorf("rate = %d, want 44100", sample.Rate)
	}
	if len(sample.Data) != len(tone) {
		t.Fatalf("decoded %d samples, want %d", len(sample.Data), len(tone))
	}

	// 16-bit quantization plus normalization error bound
	for i := range tone {
		if math.Abs(sample.Data[i]-tone[i]) > 1e-4 {
			t.Fatalf("sample %d = %f, want %f", i, sample.Data[i], tone[i])
		}
	}
}

func TestDecodeWAVRange(t *testing.T) {
	encoded := synth.EncodeWAV(synth.Tone(100, 0.05, 22050), 22050)
	sample, err := DecodeWAV(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	for i, s := range sample.Data {
		if s < -1 || s > 1 {
			t.Fatalf("decoded sample %d = %f out of [-1, 1]", i, s)
		}
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, err := DecodeWAV(bytes.NewReader([]byte("definitely not audio")))
	if !errors.Is(err, ErrInvalidWAV) {
		t.Fatalf("expected ErrInvalidWAV, got %v", err)
	}
}

func TestLibraryPutLookup(t *testing.T) {
	lib := NewLibrary()
	sample := synth.ExternalSample{Data: []float64{0.1, 0.2}, Rate: 44100}

	lib.Put("Kick", sample)

	got, ok := lib.Lookup("kick")
	if !ok {
		t.Fatal("lookup should be case-insensitive")
	}
	if len(got.Data) != 2 || got.Rate != 44100 {
		t.Errorf("unexpected sample back: %+v", got)
	}

	// Generator's non-breaking hyphen and the ASCII spelling share a slot
	lib.Put("Hi‑hat", sample)
	if _, ok := lib.Lookup("Hi-hat"); !ok {
		t.Error("hyphen variants should normalize to the same key")
	}
}

func TestLibraryRemoveAndClear(t *testing.T) {
	lib := NewLibrary()
	lib.Put("Snare", synth.ExternalSample{Data: []float64{1}, Rate: 44100})

	if !lib.Remove("snare") {
		t.Error("Remove should report an existing sample")
	}
	if lib.Remove("snare") {
		t.Error("Remove should report a missing sample")
	}

	lib.Put("A4", synth.ExternalSample{Data: []float64{1}, Rate: 44100})
	lib.Clear()
	if len(lib.Tokens()) != 0 {
		t.Errorf("Clear left tokens behind: %v", lib.Tokens())
	}
}

func TestLibraryLookupFuncFeedsAssembler(t *testing.T) {
	lib := NewLibrary()
	data := make([]float64, 4410)
	for i := range data {
		data[i] = 0.25
	}
	lib.Put("Kick", synth.ExternalSample{Data: data, Rate: 44100})

	a := &synth.Assembler{SegmentDuration: 0.1, Rate: 44100, Lookup: lib.LookupFunc()}
	track, err := a.Assemble([]string{"Kick"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i, s := range track {
		if s != 0.25 {
			t.Fatalf("sample %d = %f, expected library sample", i, s)
		}
	}
}

func TestLibraryConcurrentAccess(t *testing.T) {
	lib := NewLibrary()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			lib.Put("Kick", synth.ExternalSample{Data: []float64{1}, Rate: 44100})
		}()
		go func() {
			defer wg.Done()
			lib.Lookup("Kick")
			lib.Tokens()
		}()
	}
	wg.Wait()
}
