package synth

import (
	"errors"
	"math"
	"testing"
)

func TestResolveFrequency(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		expected  float64
		tolerance float64
		expectErr bool
	}{
		{name: "A4 reference pitch", token: "A4", expected: 440.0, tolerance: 0},
		{name: "A5 octave up", token: "A5", expected: 880.0, tolerance: 1e-9},
		{name: "A3 octave down", token: "A3", expected: 220.0, tolerance: 1e-9},
		{name: "middle C", token: "C4", expected: 261.63, tolerance: 0.01},
		{name: "default octave is 4", token: "A", expected: 440.0, tolerance: 0},
		{name: "sharp", token: "C♯4", expected: 277.18, tolerance: 0.01},
		{name: "ascii sharp alias", token: "C#4", expected: 277.18, tolerance: 0.01},
		{name: "flat", token: "D♭4", expected: 277.18, tolerance: 0.01},
		{name: "high B", token: "B5", expected: 987.77, tolerance: 0.01},
		{name: "explicit natural", token: "A♮4", expected: 440.0, tolerance: 0},
		{name: "unknown letter", token: "H4", expectErr: true},
		{name: "empty token", token: "", expectErr: true},
		{name: "lowercase letter rejected", token: "a4", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freq, err := ResolveFrequency(tt.token)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %f", tt.token, freq)
				}
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.token, err)
			}
			if math.Abs(freq-tt.expected) > tt.tolerance {
				t.Errorf("resolve(%q) = %f, want %f ±%f", tt.token, freq, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestEnharmonicEquivalence(t *testing.T) {
	sharp, err := ResolveFrequency("C♯4")
	if err != nil {
		t.Fatalf("C♯4: %v", err)
	}
	flat, err := ResolveFrequency("D♭4")
	if err != nil {
		t.Fatalf("D♭4: %v", err)
	}
	if math.Abs(sharp-flat) > 1e-9 {
		t.Errorf("C♯4 (%f) and D♭4 (%f) should be enharmonically equal", sharp, flat)
	}
}

func TestParseNoteLenientOctave(t *testing.T) {
	tests := []struct {
		token  string
		octave int
	}{
		{"A", 4},    // no suffix
		{"A44", 4},  // two digits is malformed, keeps default
		{"G♯x", 4},  // garbage suffix keeps default
		{"C0", 0},   // octave zero is valid
		{"F♭7", 7},  // accidental plus octave
	}

	for _, tt := range tests {
		note, err := ParseNote(tt.token)
		if err != nil {
			t.Fatalf("ParseNote(%q): %v", tt.token, err)
		}
		if note.Octave != tt.octave {
			t.Errorf("ParseNote(%q).Octave = %d, want %d", tt.token, note.Octave, tt.octave)
		}
	}
}
