package audio

// AudioSource is the capability every node in the mixing graph implements.
// Process must add its contribution into out; it must never clear or
// scale samples already present, since multiple sources share the same
// destination buffer within a single engine block. Implementations must
// be safe to call from the real-time audio thread: no allocation, no
// blocking, no locks held for more than a few instructions.
type AudioSource interface {
	// Process mixes the source's next block of audio additively into out.
	// out's shape is fixed for the lifetime of the engine; Process must
	// fill exactly out.NumFrames frames per call, padding with silence
	// (i.e. adding nothing) once the source has no more audio to give.
	Process(out *AudioBuffer)

	// IsFinished reports whether the source has no further audio to
	// contribute. A finished source may still be called; Process on a
	// finished source is a no-op.
	IsFinished() bool
}
