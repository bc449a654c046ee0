package audio

// RawSpan is the unchecked strided-DSP escape hatch over a channel's
// samples: a (base, frames, stride) triple into the parent AudioBuffer's
// backing slice. Element i of the span is Data[Base+i*Stride]; Stride
// always equals the parent buffer's NumChannels, since a channel's
// samples are not contiguous in an interleaved buffer. It is a plain
// struct wrapping the parent's slice, so constructing one never
// allocates or copies.
type RawSpan struct {
	Data   []float32
	Base   int
	Frames int
	Stride int
}

// At returns element i of the span without bounds checking.
func (s RawSpan) At(i int) float32 {
	return s.Data[s.Base+i*s.Stride]
}

// SetUnchecked writes element i of the span without bounds checking.
func (s RawSpan) SetUnchecked(i int, v float32) {
	s.Data[s.Base+i*s.Stride] = v
}

// ChannelView is a read-only strided view over a single channel of an
// AudioBuffer. It does not copy the underlying samples; it is only valid
// for the lifetime of the buffer it was taken from.
type ChannelView struct {
	buf     *AudioBuffer
	channel int
}

// Len returns the number of frames visible through the view.
func (v ChannelView) Len() int {
	return v.buf.NumFrames
}

// At returns the sample at frame f, or ErrOutOfRange if f is out of
// bounds.
func (v ChannelView) At(f int) (float32, error) {
	return v.buf.At(v.channel, f)
}

// AtUnchecked returns the sample at frame f without bounds checking.
func (v ChannelView) AtUnchecked(f int) float32 {
	return v.buf.AtUnchecked(v.channel, f)
}

// Raw returns a RawSpan over the parent buffer's backing slice for
// unchecked DSP loops that want to walk raw indices rather than call
// through At/AtUnchecked per frame.
func (v ChannelView) Raw() RawSpan {
	return RawSpan{
		Data:   v.buf.Data,
		Base:   v.channel,
		Frames: v.buf.NumFrames,
		Stride: v.buf.NumChannels,
	}
}

// Iter returns a forward, strided iterator yielding (frame, value) pairs
// in frame order. It is meant for use with range-over-func:
//
//	for f, s := range view.Iter() { ... }
func (v ChannelView) Iter() func(yield func(int, float32) bool) {
	return func(yield func(int, float32) bool) {
		for f := 0; f < v.buf.NumFrames; f++ {
			if !yield(f, v.buf.AtUnchecked(v.channel, f)) {
				return
			}
		}
	}
}

// MutableChannelView extends ChannelView with bounds-checked and raw
// write access to the same channel.
type MutableChannelView struct {
	ChannelView
}

// Set writes the sample at frame f, or returns ErrOutOfRange if f is out
// of bounds.
func (v MutableChannelView) Set(f int, val float32) error {
	return v.buf.Set(v.channel, f, val)
}

// SetUnchecked writes the sample at frame f without bounds checking.
func (v MutableChannelView) SetUnchecked(f int, val float32) {
	v.buf.SetUnchecked(v.channel, f, val)
}

// Add accumulates val into the existing sample at frame f without bounds
// checking. This is the primitive AudioSource implementations use to mix
// additively into a destination channel.
func (v MutableChannelView) Add(f int, val float32) {
	v.buf.SetUnchecked(v.channel, f, v.buf.AtUnchecked(v.channel, f)+val)
}

// ApplyGain multiplies every sample of the referenced channel by g,
// leaving every other channel untouched.
func (v MutableChannelView) ApplyGain(g float32) {
	for f := 0; f < v.buf.NumFrames; f++ {
		v.buf.SetUnchecked(v.channel, f, v.buf.AtUnchecked(v.channel, f)*g)
	}
}

// Fill sets every sample of the referenced channel to val, leaving every
// other channel untouched.
func (v MutableChannelView) Fill(val float32) {
	for f := 0; f < v.buf.NumFrames; f++ {
		v.buf.SetUnchecked(v.channel, f, val)
	}
}

// CopyFrom overwrites the referenced channel's leading samples from src,
// leaving every other channel untouched. Extra samples in src beyond the
// channel's frame count are ignored. It returns the number of samples
// copied.
func (v MutableChannelView) CopyFrom(src []float32) int {
	n := v.buf.NumFrames
	if len(src) < n {
		n = len(src)
	}
	for f := 0; f < n; f++ {
		v.buf.SetUnchecked(v.channel, f, src[f])
	}
	return n
}
