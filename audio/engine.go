package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// AudioEngine owns the hardware output stream and the top-level master
// Mixer. It drives the block loop from the hardware callback: clear the
// mix buffer, mix every registered source into it, and hand the result
// to the audio library.
type AudioEngine struct {
	mu sync.Mutex

	master    *Mixer
	stream    *portaudio.Stream
	mixBuffer *AudioBuffer

	channels  int
	blockSize int
	running   bool

	logger *slog.Logger
}

// NewAudioEngine returns an engine with an empty master Mixer, ready to
// have StartStream called on it. A nil logger falls back to slog's
// default logger.
func NewAudioEngine(logger *slog.Logger) *AudioEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioEngine{
		master: NewMixer(),
		logger: logger,
	}
}

// MasterMixer returns the engine's master Mixer for the control side to
// add or clear sources on.
func (e *AudioEngine) MasterMixer() *Mixer {
	return e.master
}

// StartStream opens and starts an output stream on deviceID (or the
// default output device when deviceID < 0), at sampleRate with
// blockSize frames per callback. The negotiated channel count comes
// from the device; the mix buffer is sized to match. It returns a
// *DeviceError wrapping the underlying failure if the stream cannot be
// opened or started.
func (e *AudioEngine) StartStream(deviceID int, sampleRate float64, blockSize int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	device, err := resolveOutputDevice(deviceID)
	if err != nil {
		return &DeviceError{Op: "open", Err: err}
	}

	params := portaudio.HighLatencyParameters(nil, device)
	params.Output.Channels = device.MaxOutputChannels
	params.SampleRate = sampleRate
	params.FramesPerBuffer = blockSize

	e.channels = params.Output.Channels
	e.blockSize = blockSize
	e.mixBuffer = NewAudioBuffer(e.channels, blockSize)

	stream, err := portaudio.OpenStream(params, e.callback)
	if err != nil {
		return &DeviceError{Op: "open", Err: err}
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return &DeviceError{Op: "start", Err: err}
	}

	e.stream = stream
	e.running = true
	e.logger.Info("audio stream started",
		slog.String("device", device.Name),
		slog.Float64("sample_rate", sampleRate),
		slog.Int("block_size", blockSize),
		slog.Int("channels", e.channels))
	return nil
}

// callback is invoked by the audio library on its own real-time thread
// once per block. It implements the engine's block loop: clear, mix,
// publish. It never allocates on a steady-state call path — the mix
// buffer is reused across calls.
func (e *AudioEngine) callback(out []float32) {
	e.mixBuffer.Fill(0)
	e.master.Process(e.mixBuffer)
	copy(out, e.mixBuffer.Data)
}

// StopStream idempotently stops and closes the stream. It is safe to
// call when the stream is already stopped. The underlying close error,
// if any, is logged rather than returned, matching the engine's policy
// that stream teardown never fails loudly to the caller.
func (e *AudioEngine) StopStream() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}
	if err := e.stream.Close(); err != nil {
		e.logger.Warn("error closing audio stream", slog.Any("error", err))
	}
	e.running = false
	e.stream = nil
	return nil
}

// IsRunning reports whether the stream is currently open and started.
func (e *AudioEngine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func resolveOutputDevice(deviceID int) (*portaudio.DeviceInfo, error) {
	if deviceID < 0 {
		return portaudio.DefaultOutputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if deviceID >= len(devices) {
		return nil, fmt.Errorf("audio: device id %d out of range (have %d devices)", deviceID, len(devices))
	}
	d := devices[deviceID]
	if d.MaxOutputChannels <= 0 {
		return nil, fmt.Errorf("audio: device %q has no output channels", d.Name)
	}
	return d, nil
}
