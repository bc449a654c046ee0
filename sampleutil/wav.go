// Package sampleutil loads sample files into audio.AudioBuffer values.
// File-format decoding is deliberately kept out of the audio package's
// core: this leaf package is the only place that reads bytes off disk.
package sampleutil

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/richinsley/polyvoice/audio"
)

// LoadWAV reads a canonical (RIFF/WAVE) PCM file from path and returns it
// as an AudioBuffer of float32 samples in [-1, 1], along with the file's
// native sample rate. Only 16-bit and 8-bit integer PCM and 32-bit IEEE
// float formats are supported; anything else is reported as an error.
func LoadWAV(path string) (*audio.AudioBuffer, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("sampleutil: open %s: %w", path, err)
	}
	defer f.Close()

	var riffHeader [12]byte
	if _, err := io.ReadFull(f, riffHeader[:]); err != nil {
		return nil, 0, fmt.Errorf("sampleutil: read RIFF header: %w", err)
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("sampleutil: %s is not a RIFF/WAVE file", path)
	}

	var (
		numChannels   int
		sampleRate    float64
		bitsPerSample int
		audioFormat   uint16
		data          []byte
	)

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(f, chunkHeader[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, 0, fmt.Errorf("sampleutil: read chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, body); err != nil {
				return nil, 0, fmt.Errorf("sampleutil: read fmt chunk: %w", err)
			}
			audioFormat = binary.LittleEndian.Uint16(body[0:2])
			numChannels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = float64(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
		case "data":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, body); err != nil {
				return nil, 0, fmt.Errorf("sampleutil: read data chunk: %w", err)
			}
			data = body
		default:
			if _, err := io.CopyN(io.Discard, f, int64(chunkSize)); err != nil {
				return nil, 0, fmt.Errorf("sampleutil: skip chunk %q: %w", chunkID, err)
			}
		}
		if chunkSize%2 == 1 {
			// RIFF chunks are padded to an even number of bytes.
			if _, err := io.CopyN(io.Discard, f, 1); err != nil && err != io.EOF {
				return nil, 0, fmt.Errorf("sampleutil: skip chunk pad: %w", err)
			}
		}
	}

	if numChannels == 0 || data == nil {
		return nil, 0, fmt.Errorf("sampleutil: %s missing fmt or data chunk", path)
	}

	samples, err := decodePCM(data, audioFormat, bitsPerSample)
	if err != nil {
		return nil, 0, fmt.Errorf("sampleutil: %s: %w", path, err)
	}

	numFrames := len(samples) / numChannels
	return audio.NewAudioBufferFromInterleaved(numChannels, numFrames, samples), sampleRate, nil
}

func decodePCM(data []byte, audioFormat uint16, bitsPerSample int) ([]float32, error) {
	switch {
	case audioFormat == 1 && bitsPerSample == 16:
		out := make([]float32, len(data)/2)
		for i := range out {
			v := int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
			out[i] = float32(v) / 32768.0
		}
		return out, nil
	case audioFormat == 1 && bitsPerSample == 8:
		out := make([]float32, len(data))
		for i := range out {
			out[i] = (float32(data[i]) - 128.0) / 128.0
		}
		return out, nil
	case audioFormat == 3 && bitsPerSample == 32:
		out := make([]float32, len(data)/4)
		for i := range out {
			bits := binary.LittleEndian.Uint32(data[i*4 : i*4+4])
			out[i] = math.Float32frombits(bits)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported WAV format (audioFormat=%d, bitsPerSample=%d)", audioFormat, bitsPerSample)
	}
}
