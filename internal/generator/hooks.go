package generator

import "math/rand"

// stockHooks are the built-in lyric hook suggestions
var stockHooks = []string{
	"Feel the rhythm, let it take control",
	"We light up the night like stars in the sky",
	"Keep on moving to the beat of your heart",
	"Never let go, this love is on fire",
	"Ride the wave, don't ever slow down",
	"Dance all night, we're young and free",
}

// HookPool hands out hook phrases without repetition until exhausted.
// The pool is caller-owned state: create one per session and call Reset
// to refill it. Not safe for concurrent use; wrap with a mutex if shared.
type HookPool struct {
	rng       *rand.Rand
	remaining []string
}

// NewHookPool builds a pool over the stock hooks with a seeded source
func NewHookPool(seed int64) *HookPool {
	p := &HookPool{rng: rand.New(rand.NewSource(seed))}
	p.Reset()
	return p
}

// NewHookPoolFrom builds a pool over a custom phrase list
func NewHookPoolFrom(seed int64, phrases []string) *HookPool {
	p := &HookPool{rng: rand.New(rand.NewSource(seed))}
	p.remaining = append([]string(nil), phrases...)
	return p
}

// Next draws a random phrase, removing it from the pool. Returns false once
// every phrase has been used; the caller decides when to Reset.
func (p *HookPool) Next() (string, bool) {
	if len(p.remaining) == 0 {
		return "", false
	}
	i := p.rng.Intn(len(p.remaining))
	hook := p.remaining[i]
	p.remaining = append(p.remaining[:i], p.remaining[i+1:]...)
	return hook, true
}

// Remaining reports how many unused phrases are left
func (p *HookPool) Remaining() int {
	return len(p.remaining)
}

// Reset refills the pool with the stock hooks
func (p *HookPool) Reset() {
	p.remaining = append([]string(nil), stockHooks...)
}
