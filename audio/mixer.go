package audio

import "sync/atomic"

// mixerSnapshot is an immutable view of the sources a Mixer currently
// holds. Once published, a snapshot's slice is never mutated; writers
// build a new slice and swap the pointer.
type mixerSnapshot struct {
	sources []AudioSource
}

// Mixer is a lock-free, real-time-safe summing bus. Control goroutines
// add or clear sources with copy-on-write semantics; the audio thread
// reads the current snapshot with a single atomic load and never blocks
// on or races with a writer.
type Mixer struct {
	snapshot atomic.Pointer[mixerSnapshot]
}

// NewMixer returns an empty Mixer ready to use.
func NewMixer() *Mixer {
	m := &Mixer{}
	m.snapshot.Store(&mixerSnapshot{})
	return m
}

// AddSource appends src to the mixer's source list. It is implemented as
// a CAS retry loop: concurrent callers to AddSource never lose an update,
// at the cost of possibly retrying when another writer wins the race.
func (m *Mixer) AddSource(src AudioSource) {
	for {
		old := m.snapshot.Load()
		next := make([]AudioSource, len(old.sources)+1)
		copy(next, old.sources)
		next[len(old.sources)] = src
		if m.snapshot.CompareAndSwap(old, &mixerSnapshot{sources: next}) {
			return
		}
	}
}

// ClearSources removes every source from the mixer. It is an
// unconditional store rather than a CAS loop: a concurrent AddSource
// either lands before or after the clear, never reappearing once the
// clear has taken effect.
func (m *Mixer) ClearSources() {
	m.snapshot.Store(&mixerSnapshot{})
}

// Process mixes every current source additively into out. It loads the
// snapshot pointer once and iterates it; it does not clear out first —
// the caller is responsible for establishing silence before mixing.
// Process never allocates and never blocks.
func (m *Mixer) Process(out *AudioBuffer) {
	snap := m.snapshot.Load()
	for _, src := range snap.sources {
		src.Process(out)
	}
}

// IsFinished reports whether every current source is finished. It is a
// control-side convenience; it must not be called from the audio thread
// unless every child's IsFinished is itself real-time-safe.
func (m *Mixer) IsFinished() bool {
	snap := m.snapshot.Load()
	for _, src := range snap.sources {
		if !src.IsFinished() {
			return false
		}
	}
	return true
}
