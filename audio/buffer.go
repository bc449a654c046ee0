// Package audio implements a real-time-safe mixing graph and sampler for
// interactive audio applications: a fixed-shape interleaved buffer, a
// lock-free summing mixer, and a pitch-shifting polyphonic sample player.
//
// Samples are interleaved float32, matching the format PortAudio hands to
// the hardware callback: the sample for channel c at frame f lives at
// index f*NumChannels + c. Every AudioSource.Process call on the audio
// thread is additive-only, bounded-time, and allocation-free; control-side
// goroutines (AddSource, NoteOn, rate setters) may allocate and are never
// blocked on by the audio thread.
package audio

import "fmt"

// AudioBuffer is a fixed-shape, interleaved, multi-channel sample
// container. Its dimensions never change after construction.
type AudioBuffer struct {
	NumChannels int
	NumFrames   int
	Data        []float32
}

// NewAudioBuffer allocates a zero-filled buffer of the given shape.
// It panics if channels <= 0, mirroring the core's invariant that a buffer
// always has at least one channel; callers that need a recoverable path
// should use NewAudioBufferSafe.
func NewAudioBuffer(channels, frames int) *AudioBuffer {
	b, err := NewAudioBufferSafe(channels, frames)
	if err != nil {
		panic(err)
	}
	return b
}

// NewAudioBufferSafe is the non-panicking form of NewAudioBuffer, for call
// sites (e.g. parsing user-supplied dimensions) where an invalid shape is
// not a programmer bug.
func NewAudioBufferSafe(channels, frames int) (*AudioBuffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("audio: channels must be > 0, got %d", channels)
	}
	if frames < 0 {
		return nil, fmt.Errorf("audio: frames must be >= 0, got %d", frames)
	}
	return &AudioBuffer{
		NumChannels: channels,
		NumFrames:   frames,
		Data:        make([]float32, channels*frames),
	}, nil
}

// NewAudioBufferFromInterleaved allocates a buffer of the given shape and
// copies channels*frames samples from source. A short source is
// zero-padded; a long one is truncated. The buffer's size is exactly
// channels*frames regardless of len(source).
func NewAudioBufferFromInterleaved(channels, frames int, source []float32) *AudioBuffer {
	b := NewAudioBuffer(channels, frames)
	copy(b.Data, source)
	return b
}

// Stride returns the interleave stride: the number of samples between
// successive frames of the same channel, which equals NumChannels.
func (b *AudioBuffer) Stride() int {
	return b.NumChannels
}

// At returns the sample for channel c at frame f, or ErrOutOfRange if
// either index is outside the buffer's shape.
func (b *AudioBuffer) At(c, f int) (float32, error) {
	if c < 0 || c >= b.NumChannels || f < 0 || f >= b.NumFrames {
		return 0, fmt.Errorf("audio: At(c=%d, f=%d) on %dx%d buffer: %w", c, f, b.NumChannels, b.NumFrames, ErrOutOfRange)
	}
	return b.AtUnchecked(c, f), nil
}

// Set writes the sample for channel c at frame f, or returns
// ErrOutOfRange if either index is outside the buffer's shape.
func (b *AudioBuffer) Set(c, f int, v float32) error {
	if c < 0 || c >= b.NumChannels || f < 0 || f >= b.NumFrames {
		return fmt.Errorf("audio: Set(c=%d, f=%d) on %dx%d buffer: %w", c, f, b.NumChannels, b.NumFrames, ErrOutOfRange)
	}
	b.SetUnchecked(c, f, v)
	return nil
}

// AtUnchecked returns the sample for channel c at frame f without bounds
// checking. Behavior is undefined if either index is out of range; use
// only on hot paths that have already validated their indices.
func (b *AudioBuffer) AtUnchecked(c, f int) float32 {
	return b.Data[f*b.NumChannels+c]
}

// SetUnchecked writes the sample for channel c at frame f without bounds
// checking. Behavior is undefined if either index is out of range.
func (b *AudioBuffer) SetUnchecked(c, f int, v float32) {
	b.Data[f*b.NumChannels+c] = v
}

// Channel returns a read-only view over channel c.
func (b *AudioBuffer) Channel(c int) (ChannelView, error) {
	if c < 0 || c >= b.NumChannels {
		return ChannelView{}, fmt.Errorf("audio: Channel(%d) on %d-channel buffer: %w", c, b.NumChannels, ErrOutOfRange)
	}
	return ChannelView{buf: b, channel: c}, nil
}

// MutChannel returns a writable view over channel c.
func (b *AudioBuffer) MutChannel(c int) (MutableChannelView, error) {
	v, err := b.Channel(c)
	if err != nil {
		return MutableChannelView{}, err
	}
	return MutableChannelView{ChannelView: v}, nil
}

// Fill sets every sample in the buffer to v.
func (b *AudioBuffer) Fill(v float32) {
	for i := range b.Data {
		b.Data[i] = v
	}
}

// ApplyGain multiplies every sample in the buffer by g.
func (b *AudioBuffer) ApplyGain(g float32) {
	for i := range b.Data {
		b.Data[i] *= g
	}
}

// CopyFrom overwrites the buffer's leading samples from src. Extra
// samples in src beyond the buffer's capacity are ignored; the buffer's
// size never changes. It returns the number of samples copied.
func (b *AudioBuffer) CopyFrom(src []float32) int {
	return copy(b.Data, src)
}
