package audio

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// constantSource adds a fixed value to every sample of every channel on
// each Process call, for exercising the mixer's summation contract.
type constantSource struct {
	value    float32
	finished bool
}

func (c *constantSource) Process(out *AudioBuffer) {
	for f := 0; f < out.NumFrames; f++ {
		for ch := 0; ch < out.NumChannels; ch++ {
			view, _ := out.MutChannel(ch)
			view.Add(f, c.value)
		}
	}
}

func (c *constantSource) IsFinished() bool { return c.finished }

func TestMixer_AddSourceSumsContributions(t *testing.T) {
	m := NewMixer()
	m.AddSource(&constantSource{value: 2})
	m.AddSource(&constantSource{value: 3})

	out := NewAudioBuffer(1, 4)
	m.Process(out)

	got, _ := out.At(0, 0)
	assert.Equal(t, float32(5), got)
}

func TestMixer_ClearSourcesYieldsSilence(t *testing.T) {
	m := NewMixer()
	m.AddSource(&constantSource{value: 7})
	m.ClearSources()

	out := NewAudioBuffer(1, 4)
	m.Process(out)

	got, _ := out.At(0, 0)
	assert.Equal(t, float32(0), got)
}

func TestMixer_DoesNotClearOutputItself(t *testing.T) {
	m := NewMixer()
	out := NewAudioBuffer(1, 1)
	out.Fill(9)
	m.Process(out)

	got, _ := out.At(0, 0)
	assert.Equal(t, float32(9), got, "Mixer.Process must not clear the destination")
}

func TestMixer_IsFinishedReflectsAllSources(t *testing.T) {
	m := NewMixer()
	assert.True(t, m.IsFinished())

	m.AddSource(&constantSource{value: 1, finished: false})
	assert.False(t, m.IsFinished())

	m.ClearSources()
	assert.True(t, m.IsFinished())
}

func TestMixer_ConcurrentWritersAndReaderDoNotRace(t *testing.T) {
	m := NewMixer()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%7 == 0 {
				m.ClearSources()
			} else {
				m.AddSource(&constantSource{value: 1})
			}
		}
	}()

	go func() {
		defer wg.Done()
		out := NewAudioBuffer(2, 32)
		for {
			select {
			case <-stop:
				return
			default:
			}
			out.Fill(0)
			m.Process(out)
		}
	}()

	time.Sleep(500 * time.Millisecond)
	close(stop)
	wg.Wait()
}
