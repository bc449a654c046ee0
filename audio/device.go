package audio

// We'll be using portaudio for audio output handling.
// macos:	brew install portaudio
// debian:	sudo apt-get install portaudio19-dev
// windows:	pacman -S mingw-w64-x86_64-portaudio

import "github.com/gordonklaus/portaudio"

// DeviceInfo describes a hardware output device in the core's own
// vocabulary, independent of the underlying audio library's types.
type DeviceInfo struct {
	ID                   int
	Name                 string
	IsDefaultOutput      bool
	OutputChannels       int
	SupportedSampleRates []float64
}

// DeviceCatalog adapts the host audio library's device enumeration into
// DeviceInfo values. It holds no state beyond the library's own device
// table; portaudio must already be initialized before it is queried.
type DeviceCatalog struct{}

// NewDeviceCatalog returns a catalog ready to enumerate devices.
func NewDeviceCatalog() *DeviceCatalog {
	return &DeviceCatalog{}
}

// ListOutputDevices returns every device with at least one output
// channel, in the library's enumeration order.
func (c *DeviceCatalog) ListOutputDevices() ([]DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, &DeviceError{Op: "enumerate", Err: err}
	}

	defaultOut, defErr := portaudio.DefaultOutputDevice()

	var out []DeviceInfo
	for id, d := range devices {
		if d.MaxOutputChannels <= 0 {
			continue
		}
		out = append(out, DeviceInfo{
			ID:                   id,
			Name:                 d.Name,
			IsDefaultOutput:      defErr == nil && d == defaultOut,
			OutputChannels:       d.MaxOutputChannels,
			SupportedSampleRates: []float64{d.DefaultSampleRate},
		})
	}
	return out, nil
}

// DefaultOutputDevice returns the catalog entry for the host's default
// output device.
func (c *DeviceCatalog) DefaultOutputDevice() (DeviceInfo, error) {
	d, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return DeviceInfo{}, &DeviceError{Op: "default-output", Err: err}
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return DeviceInfo{}, &DeviceError{Op: "enumerate", Err: err}
	}
	info := DeviceInfo{
		Name:                 d.Name,
		IsDefaultOutput:      true,
		OutputChannels:       d.MaxOutputChannels,
		SupportedSampleRates: []float64{d.DefaultSampleRate},
	}
	for id, dd := range devices {
		if dd == d {
			info.ID = id
			break
		}
	}
	return info, nil
}
