// ============================================================================
// voztype - Spanish speech to English text
// ============================================================================
//
// Package:     audio
// Description: Microphone capture using PortAudio
// License:     MIT
// ============================================================================

package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	// DefaultSampleRate is what the STT models expect (16kHz)
	DefaultSampleRate = 16000

	// DefaultFramesPerBuffer is the capture chunk size
	DefaultFramesPerBuffer = 512
)

// ErrNoInputDevice is returned when no usable microphone exists.
var ErrNoInputDevice = errors.New("no audio input device available")

// Capture reads microphone input and delivers it in fixed-size chunks.
type Capture struct {
	mu         sync.RWMutex
	stream     *portaudio.Stream
	sampleRate float64
	bufferSize int
	deviceName string
	running    bool
	out        chan []float32
	terminated bool
}

// CaptureConfig holds configuration for audio capture
type CaptureConfig struct {
	SampleRate float64
	BufferSize int
	DeviceName string // empty or "default" selects the system default input
}

// NewCapture initializes PortAudio and prepares a capture instance. The
// returned Capture must be Closed to release the audio subsystem.
func NewCapture(cfg CaptureConfig) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = DefaultFramesPerBuffer
	}

	return &Capture{
		sampleRate: cfg.SampleRate,
		bufferSize: cfg.BufferSize,
		deviceName: cfg.DeviceName,
		out:        make(chan []float32, 100),
	}, nil
}

// Start opens the input stream and begins delivering chunks on Output.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("capture already running")
	}

	buffer := make([]float32, c.bufferSize)

	stream, err := c.openStream(buffer)
	if err != nil {
		return err
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	c.stream = stream
	c.running = true

	go c.captureLoop(ctx, buffer)

	return nil
}

func (c *Capture) openStream(buffer []float32) (*portaudio.Stream, error) {
	// A named device falls back to the default input when it has gone away
	// (unplugged USB microphone etc).
	if c.deviceName != "" && c.deviceName != "default" {
		if dev, err := findInputDevice(c.deviceName); err == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   dev,
					Channels: 1,
					Latency:  dev.DefaultLowInputLatency,
				},
				SampleRate:      c.sampleRate,
				FramesPerBuffer: c.bufferSize,
			}
			stream, err := portaudio.OpenStream(params, buffer)
			if err == nil {
				return stream, nil
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, c.sampleRate, c.bufferSize, buffer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInputDevice, err)
	}
	return stream, nil
}

func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("input device not found: %s", name)
}

func (c *Capture) captureLoop(ctx context.Context, buffer []float32) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		running := c.running
		stream := c.stream
		c.mu.RUnlock()

		if !running || stream == nil {
			return
		}

		if err := stream.Read(); err != nil {
			// Overflows are expected under load; anything else ends the
			// loop once Stop has flipped the flag.
			c.mu.RLock()
			still := c.running
			c.mu.RUnlock()
			if !still {
				return
			}
			continue
		}

		chunk := make([]float32, len(buffer))
		copy(chunk, buffer)

		select {
		case c.out <- chunk:
		default:
			// Consumer is behind; drop this chunk rather than block the
			// audio callback path.
		}
	}
}

// Stop stops the input stream. The capture can be started again.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}
	c.running = false

	if c.stream != nil {
		c.stream.Stop()
		if err := c.stream.Close(); err != nil {
			c.stream = nil
			return fmt.Errorf("failed to close audio stream: %w", err)
		}
		c.stream = nil
	}

	return nil
}

// Close stops capture and releases PortAudio.
func (c *Capture) Close() error {
	if err := c.Stop(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.terminated {
		c.terminated = true
		close(c.out)
		if err := portaudio.Terminate(); err != nil {
			return fmt.Errorf("failed to terminate PortAudio: %w", err)
		}
	}
	return nil
}

// Output returns the channel delivering captured chunks.
func (c *Capture) Output() <-chan []float32 {
	return c.out
}

// IsRunning reports whether capture is active.
func (c *Capture) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// SetDeviceName selects the input device for future Start calls.
func (c *Capture) SetDeviceName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deviceName = name
}

// DeviceInfo describes an audio input device.
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices enumerates available input devices.
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	var defaultName string
	if dev, err := portaudio.DefaultInputDevice(); err == nil && dev != nil {
		defaultName = dev.Name
	}

	var inputs []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels > 0 {
			inputs = append(inputs, DeviceInfo{
				Name:              dev.Name,
				MaxInputChannels:  dev.MaxInputChannels,
				DefaultSampleRate: dev.DefaultSampleRate,
				IsDefault:         dev.Name == defaultName,
			})
		}
	}
	return inputs, nil
}
