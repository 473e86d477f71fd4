// Package audiodevice opens an SDL2 audio output device and pushes
// rendered grains to it. Grounded on the push/QueueAudio pattern in
// internal/ui/ui.go, stripped of the video half since this engine has no
// pixel surface to present.
package audiodevice

import (
	"fmt"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// Device owns the open SDL audio device. Float32 stereo, native
// endianness, one callback's worth of samples queued at a time.
type Device struct {
	dev sdl.AudioDeviceID
}

// Open initializes SDL's audio subsystem and opens the default output
// device at sampleRate, stereo, AUDIO_F32, with grainLen frames per period.
func Open(sampleRate, grainLen int) (*Device, error) {
	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("audiodevice: sdl init: %w", err)
	}

	spec := sdl.AudioSpec{
		Freq:     int32(sampleRate),
		Format:   sdl.AUDIO_F32,
		Channels: 2,
		Samples:  uint16(grainLen),
	}
	dev, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("audiodevice: open device: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)

	return &Device{dev: dev}, nil
}

// QueuedFrames reports how many stereo frames are still queued waiting to
// play, so a caller can skip a Push when the device is already backed up.
func (d *Device) QueuedFrames() uint32 {
	return sdl.GetQueuedAudioSize(d.dev) / 8 // 2 channels * 4 bytes
}

// Push converts an interleaved stereo float32 buffer to raw bytes and
// queues it for playback. frames is expected in the same interleaved L/R
// shape audioengine.Engine.Render produces.
func (d *Device) Push(frames []float32) error {
	if len(frames) == 0 {
		return nil
	}
	buf := make([]byte, len(frames)*4)
	for i, sample := range frames {
		b := (*[4]byte)(unsafe.Pointer(&sample))
		copy(buf[i*4:i*4+4], b[:])
	}
	return sdl.QueueAudio(d.dev, buf)
}

// Close stops playback and releases the device.
func (d *Device) Close() {
	if d.dev != 0 {
		sdl.CloseAudioDevice(d.dev)
	}
	sdl.Quit()
}
