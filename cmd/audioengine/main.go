// Command audioengine is a small demo harness around the audio package:
// it lists output devices, opens a stream, and plays a handful of notes
// through a Sampler wired into the engine's master Mixer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/richinsley/polyvoice/audio"
	"github.com/richinsley/polyvoice/sampleutil"
)

type options struct {
	listDevices *bool
	device      *int
	sampleRate  *float64
	blockSize   *int
	samplePath  *string
	rootNote    *int
	tuneCents   *float64
	polyphony   *int
}

func main() {
	opts := &options{}
	opts.listDevices = flag.Bool("list-devices", false, "List available output devices and exit")
	opts.device = flag.Int("device", -1, "Output device id (-1 for system default)")
	opts.sampleRate = flag.Float64("samplerate", 44100, "Engine sample rate in Hz")
	opts.blockSize = flag.Int("blocksize", 256, "Frames per audio callback")
	opts.samplePath = flag.String("sample", "", "Path to a mono or stereo 16-bit PCM WAV file to play")
	opts.rootNote = flag.Int("root", 60, "MIDI root note of the loaded sample")
	opts.tuneCents = flag.Float64("tune", 0, "Fine-tuning offset in cents")
	opts.polyphony = flag.Int("polyphony", 8, "Maximum simultaneous voices")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := portaudio.Initialize(); err != nil {
		logger.Error("failed to initialize portaudio", slog.Any("error", err))
		os.Exit(1)
	}
	defer portaudio.Terminate()

	catalog := audio.NewDeviceCatalog()

	if *opts.listDevices {
		devices, err := catalog.ListOutputDevices()
		if err != nil {
			logger.Error("failed to enumerate devices", slog.Any("error", err))
			os.Exit(1)
		}
		for _, d := range devices {
			fmt.Printf("[%d] %s (channels=%d default=%v)\n", d.ID, d.Name, d.OutputChannels, d.IsDefaultOutput)
		}
		return
	}

	if *opts.samplePath == "" {
		logger.Error("missing -sample: a WAV file is required to run the demo")
		os.Exit(1)
	}

	sample, nativeRate, err := sampleutil.LoadWAV(*opts.samplePath)
	if err != nil {
		logger.Error("failed to load sample", slog.String("path", *opts.samplePath), slog.Any("error", err))
		os.Exit(1)
	}

	engine := audio.NewAudioEngine(logger)
	if err := engine.StartStream(*opts.device, *opts.sampleRate, *opts.blockSize); err != nil {
		logger.Error("failed to start stream", slog.Any("error", err))
		os.Exit(1)
	}
	defer engine.StopStream()

	sampler := audio.NewSampler(sample, nativeRate, *opts.sampleRate, *opts.polyphony)
	sampler.SetRootNote(int32(*opts.rootNote))
	sampler.SetTuneCents(*opts.tuneCents)
	engine.MasterMixer().AddSource(sampler)

	notes := []int32{60, 64, 67, 72}
	for _, n := range notes {
		sampler.NoteOn(n, 0.8)
		logger.Info("note on", slog.Int("note", int(n)))
		time.Sleep(500 * time.Millisecond)
	}

	for !sampler.IsFinished() {
		time.Sleep(100 * time.Millisecond)
	}
}
