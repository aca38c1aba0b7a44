// Package led drives the physical sign through periph.io: the LED string via
// nrzled over SPI (or an ANSI console line when no port exists) and the
// backlight via a PWM capable GPIO.
package led

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
)

// Pixels is a raw pixel sink, e.g. *nrzled.Dev or *screen1d.Dev.
type Pixels interface {
	// Write takes Channels bytes per pixel.
	Write(pixels []byte) (int, error)
	Halt() error
	String() string
}

// Strip adapts a Pixels sink to render.Driver.
type Strip struct {
	mu       sync.Mutex
	dev      Pixels
	port     interface{ Close() error }
	channels int
	buf      []byte
}

// NewStrip wraps dev for n pixels of 3 (RGB) or 4 (RGBW) channels.
func NewStrip(dev Pixels, n, channels int) (*Strip, error) {
	if n <= 0 {
		return nil, fmt.Errorf("led: invalid LED count: %d", n)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("led: unsupported channel count %d", channels)
	}
	return &Strip{dev: dev, channels: channels, buf: make([]byte, n*channels)}, nil
}

// Write encodes buf as raw bytes and sends it. Pixels beyond the strip are
// dropped; missing ones are black.
func (s *Strip) Write(buf []render.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return errors.New("led: strip closed")
	}
	encode(s.buf, buf, s.channels)
	if _, err := s.dev.Write(s.buf); err != nil {
		return fmt.Errorf("led: write %s: %w", s.dev, err)
	}
	return nil
}

// encode writes px into dst as RGB or RGBW bytes. For RGBW the common part
// of the three channels moves to the white LED.
func encode(dst []byte, px []render.Color, channels int) {
	for i := range dst {
		dst[i] = 0
	}
	for i, c := range px {
		off := i * channels
		if off+channels > len(dst) {
			return
		}
		if channels == 4 {
			w := min(c.R, c.G, c.B)
			dst[off], dst[off+1], dst[off+2], dst[off+3] = c.R-w, c.G-w, c.B-w, w
			continue
		}
		dst[off], dst[off+1], dst[off+2] = c.R, c.G, c.B
	}
}

func (s *Strip) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return "led{closed}"
	}
	return s.dev.String()
}

// Close blanks the string and releases the port.
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	if s.port != nil {
		err = errors.Join(err, s.port.Close())
	}
	s.dev, s.port = nil, nil
	return err
}
