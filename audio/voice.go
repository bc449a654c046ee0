package audio

import "math"

// voiceState enumerates the lifecycle of a SamplerVoice.
type voiceState int

const (
	voiceIdle voiceState = iota
	voicePlaying
	voiceFinished
)

// SamplerVoice plays a single note from a shared, immutable sample buffer
// using single-stage fractional-phase linear interpolation. A voice is
// reused across notes: Configure binds it to a sample and rate pair,
// Start begins a note, and Render advances playback one block at a time
// from the audio thread.
type SamplerVoice struct {
	sample      *AudioBuffer
	srcChannels int
	numFrames   int
	lastIndex   int
	nativeRate  float64
	engineRate  float64

	phase float64
	step  float64
	gain  float32

	state voiceState
}

// Configure binds the voice to sample at the given native and engine
// sample rates. A sample with fewer than two frames, or a non-positive
// rate, leaves the voice permanently inert (Idle, never playable) for
// this configuration. ErrInvalidConfiguration names this case, but it is
// never returned — IsFinished simply reports true for an inert voice.
func (v *SamplerVoice) Configure(sample *AudioBuffer, nativeRate, engineRate float64) {
	v.sample = sample
	v.nativeRate = nativeRate
	v.engineRate = engineRate
	v.state = voiceIdle
	v.phase = 0
	v.step = 0

	if sample == nil || sample.NumFrames < 2 || nativeRate <= 0 || engineRate <= 0 {
		v.srcChannels = 0
		v.numFrames = 0
		v.lastIndex = -1
		return
	}
	v.srcChannels = sample.NumChannels
	v.numFrames = sample.NumFrames
	v.lastIndex = sample.NumFrames - 1
}

// Start begins playback of note at velocity, using rootNote and
// tuneCents to derive the playback rate relative to the sample's native
// pitch. A voice whose Configure left it inert (lastIndex < 0) stays
// Idle regardless of the requested note.
func (v *SamplerVoice) Start(note int32, velocity float32, rootNote int32, tuneCents float64) {
	if v.lastIndex < 0 {
		v.state = voiceIdle
		return
	}

	semitones := float64(note-rootNote) / 12.0
	pitchScale := math.Pow(2, semitones) * math.Pow(2, tuneCents/1200.0)
	v.step = (v.nativeRate / v.engineRate) * pitchScale
	v.phase = 0
	v.gain = clampGain(velocity)

	if v.step > 0 {
		v.state = voicePlaying
	} else {
		v.state = voiceIdle
	}
}

// Render mixes framesToRender output frames additively into out,
// starting at frame 0. A voice that is not Playing contributes nothing.
// Render never allocates and performs no I/O; it is safe to call from
// the audio thread.
func (v *SamplerVoice) Render(out *AudioBuffer, framesToRender int) {
	if v.state != voicePlaying {
		return
	}

	outChannels := out.NumChannels
	srcChannels := v.srcChannels
	channels := outChannels
	if srcChannels < channels {
		channels = srcChannels
	}

	for f := 0; f < framesToRender; f++ {
		i := int(math.Floor(v.phase))
		if i > v.lastIndex {
			v.state = voiceFinished
			return
		}
		frac := float32(v.phase - float64(i))

		if srcChannels == 1 {
			s := v.interpolate(0, i, frac)
			contribution := v.gain * s
			for c := 0; c < outChannels; c++ {
				out.SetUnchecked(c, f, out.AtUnchecked(c, f)+contribution)
			}
		} else {
			for c := 0; c < channels; c++ {
				s := v.interpolate(c, i, frac)
				out.SetUnchecked(c, f, out.AtUnchecked(c, f)+v.gain*s)
			}
		}

		v.phase += v.step
	}

	if v.phase >= float64(v.lastIndex) {
		v.state = voiceFinished
	}
}

// interpolate returns the linearly-interpolated sample for channel c of
// the source at fractional index i+frac. At the last frame, it returns
// the frame itself with no look-ahead.
func (v *SamplerVoice) interpolate(c, i int, frac float32) float32 {
	if i == v.lastIndex {
		return v.sample.AtUnchecked(c, i)
	}
	x0 := v.sample.AtUnchecked(c, i)
	x1 := v.sample.AtUnchecked(c, i+1)
	return x0 + (x1-x0)*frac
}

// IsFinished reports whether the voice has no further audio to render:
// it has run to the end of its note, or it was never configured with a
// playable sample.
func (v *SamplerVoice) IsFinished() bool {
	return v.state != voicePlaying
}

func clampGain(g float32) float32 {
	if g < 0 {
		return 0
	}
	if g > 1 {
		return 1
	}
	return g
}
