package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantMonoSample(value float32, frames int) *AudioBuffer {
	b := NewAudioBuffer(1, frames)
	b.Fill(value)
	return b
}

func TestSamplerVoice_ConfigureInertOnShortSample(t *testing.T) {
	var v SamplerVoice
	v.Configure(constantMonoSample(1, 1), 44100, 44100)
	v.Start(60, 1.0, 60, 0)
	assert.True(t, v.IsFinished(), "a voice configured with < 2 frames must stay inert")
}

func TestSamplerVoice_ConfigureInertOnBadRates(t *testing.T) {
	var v SamplerVoice
	v.Configure(constantMonoSample(1, 8), 0, 44100)
	v.Start(60, 1.0, 60, 0)
	assert.True(t, v.IsFinished())
}

func TestSamplerVoice_UnityStepWhenAtRootNote(t *testing.T) {
	var v SamplerVoice
	v.Configure(constantMonoSample(1, 8), 44100, 44100)
	v.Start(60, 1.0, 60, 0)
	require.False(t, v.IsFinished())
	assert.Equal(t, 1.0, v.step)
}

func TestSamplerVoice_AdditiveMixConstantMono(t *testing.T) {
	const s = float32(0.5)
	var v SamplerVoice
	v.Configure(constantMonoSample(s, 16), 44100, 44100)
	v.Start(60, 1.0, 60, 0)

	out := NewAudioBuffer(2, 4)
	v.Render(out, 4)

	for f := 0; f < 4; f++ {
		for c := 0; c < 2; c++ {
			got, _ := out.At(c, f)
			assert.InDelta(t, s, got, 1e-6)
		}
	}
}

func TestSamplerVoice_GainScalesOutput(t *testing.T) {
	const s = float32(1.0)
	var v SamplerVoice
	v.Configure(constantMonoSample(s, 16), 44100, 44100)
	v.Start(60, 0.25, 60, 0)

	out := NewAudioBuffer(1, 1)
	v.Render(out, 1)

	got, _ := out.At(0, 0)
	assert.InDelta(t, 0.25, got, 1e-6)
}

func TestSamplerVoice_FinishesAfterSourceExhausted(t *testing.T) {
	var v SamplerVoice
	v.Configure(constantMonoSample(1, 4), 44100, 44100)
	v.Start(60, 1.0, 60, 0)

	out := NewAudioBuffer(1, 10)
	v.Render(out, 10)

	assert.True(t, v.IsFinished())
}

func TestSamplerVoice_PitchScaleDoublesStepOneOctaveUp(t *testing.T) {
	var v SamplerVoice
	v.Configure(constantMonoSample(1, 8), 44100, 44100)
	v.Start(72, 1.0, 60, 0)
	assert.InDelta(t, 2.0, v.step, 1e-9)
}

func TestSamplerVoice_MultiChannelSourceInterpolatesPerChannel(t *testing.T) {
	src := NewAudioBuffer(2, 3)
	src.Data = []float32{0, 0, 1, 2, 1, 2}

	var v SamplerVoice
	v.Configure(src, 22050, 44100)
	v.Start(60, 1.0, 60, 0)

	out := NewAudioBuffer(2, 4)
	v.Render(out, 4)

	l, _ := out.At(0, 1)
	r, _ := out.At(1, 1)
	assert.InDelta(t, 0.5, l, 1e-6)
	assert.InDelta(t, 1.0, r, 1e-6)
}
