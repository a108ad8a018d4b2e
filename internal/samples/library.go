package samples

import (
	"sort"
	"strings"
	"sync"

	"github.com/inhouse-labs/soundlab-api/internal/synth"
)

// Library is a thread-safe registry of external samples keyed by event token.
// It lives in the host, outside the synthesis core: lookups hand out the
// stored buffer read-only and the core never mutates or retains it.
type Library struct {
	mu      sync.RWMutex
	samples map[string]synth.ExternalSample
}

// NewLibrary creates an empty sample library
func NewLibrary() *Library {
	return &Library{samples: make(map[string]synth.ExternalSample)}
}

// key normalizes tokens so "Kick", "kick" and "Hi‑hat"/"Hi-hat" collide
func key(token string) string {
	s := strings.ToLower(strings.TrimSpace(token))
	return strings.ReplaceAll(s, "‑", "-")
}

// Put registers a sample for a token, replacing any previous one
func (l *Library) Put(token string, sample synth.ExternalSample) {
	l.mu.Lock()
	l.samples[key(token)] = sample
	l.mu.Unlock()
}

// Lookup returns the sample registered for a token
func (l *Library) Lookup(token string) (synth.ExternalSample, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sample, ok := l.samples[key(token)]
	return sample, ok
}

// Remove deletes a token's sample, reporting whether one existed
func (l *Library) Remove(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := key(token)
	_, ok := l.samples[k]
	delete(l.samples, k)
	return ok
}

// Tokens lists the registered tokens in sorted order
func (l *Library) Tokens() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tokens := make([]string, 0, len(l.samples))
	for k := range l.samples {
		tokens = append(tokens, k)
	}
	sort.Strings(tokens)
	return tokens
}

// Clear drops every registered sample
func (l *Library) Clear() {
	l.mu.Lock()
	l.samples = make(map[string]synth.ExternalSample)
	l.mu.Unlock()
}

// LookupFunc adapts the library to the core's SampleLookup contract
func (l *Library) LookupFunc() synth.SampleLookup {
	return l.Lookup
}
