package synth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Sentinel errors
var (
	ErrInvalidToken = errors.New("invalid event token")
	ErrEmptySample  = errors.New("external sample is empty")
)

const (
	referencePitch = 440.0 // A4
	defaultOctave  = 4
)

// semitoneFromC maps note letters to their offset within an octave
var semitoneFromC = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Note is a parsed melodic token: letter, accidental shift and octave
type Note struct {
	Letter     byte
	Accidental int // -1 flat, 0 natural, +1 sharp
	Octave     int
}

// ParseNote parses a note token like "A4", "C♯5" or "Eb".
// The octave defaults to 4 when absent; a malformed octave suffix also
// falls back to 4 rather than failing. An unrecognized letter is fatal.
func ParseNote(token string) (Note, error) {
	if token == "" {
		return Note{}, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	letter := token[0]
	if _, ok := semitoneFromC[letter]; !ok {
		return Note{}, fmt.Errorf("%w: unknown note letter %q", ErrInvalidToken, string(letter))
	}

	note := Note{Letter: letter, Octave: defaultOctave}
	rest := []rune(token[1:])

	if len(rest) > 0 {
		switch rest[0] {
		case '♯', '#':
			note.Accidental = 1
			rest = rest[1:]
		case '♭', 'b':
			note.Accidental = -1
			rest = rest[1:]
		case '♮':
			rest = rest[1:]
		}
	}

	if len(rest) > 0 {
		// Lenient octave policy: anything that is not a single digit
		// keeps the default octave instead of rejecting the token.
		if oct, err := strconv.Atoi(string(rest)); err == nil && oct >= 0 && oct <= 9 {
			note.Octave = oct
		}
	}

	return note, nil
}

// SemitonesFromA4 returns the signed semitone distance from A4
func (n Note) SemitonesFromA4() int {
	return semitoneFromC[n.Letter] + n.Accidental + (n.Octave-defaultOctave)*12 - 9
}

// Frequency returns the note's pitch in Hz, equal temperament, A4 = 440Hz
func (n Note) Frequency() float64 {
	return referencePitch * math.Pow(2, float64(n.SemitonesFromA4())/12.0)
}

// ResolveFrequency parses a note token and returns its frequency in Hz
func ResolveFrequency(token string) (float64, error) {
	note, err := ParseNote(token)
	if err != nil {
		return 0, err
	}
	return note.Frequency(), nil
}
