package generator

import (
	"math/rand"
	"strconv"
)

// Pattern lengths and octave range of the stock generators
const (
	DefaultPatternLength = 8
	minOctave            = 3
	maxOctave            = 5
)

var (
	noteLetters = []string{"C", "D", "E", "F", "G", "A", "B"}
	accidentals = []string{"", "♯", "♭"}
	drumClasses = []string{"Kick", "Snare", "Hi-hat"}
)

// Generator produces random melodic and percussive patterns. Each instance
// owns its random source, so concurrent generators never interfere.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator from a seed for reproducible patterns
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Melody returns n random note tokens: a letter, an optional accidental and
// an octave between 3 and 5
func (g *Generator) Melody(n int) []string {
	if n <= 0 {
		return []string{}
	}
	tokens := make([]string, n)
	for i := range tokens {
		letter := noteLetters[g.rng.Intn(len(noteLetters))]
		accidental := accidentals[g.rng.Intn(len(accidentals))]
		octave := minOctave + g.rng.Intn(maxOctave-minOctave+1)
		tokens[i] = letter + accidental + strconv.Itoa(octave)
	}
	return tokens
}

// DrumPattern returns n random drum-class tokens
func (g *Generator) DrumPattern(n int) []string {
	if n <= 0 {
		return []string{}
	}
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = drumClasses[g.rng.Intn(len(drumClasses))]
	}
	return tokens
}
