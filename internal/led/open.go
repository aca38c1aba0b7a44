package led

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/devices/v3/screen1d"
	"periph.io/x/host/v3"
)

// Options selects and sizes the LED string.
type Options struct {
	Dev      string // spireg name, "" for the first port
	Count    int
	Channels int
	FreqHz   int // LED data rate, 800000 for WS2812
	// Fallback prints at the console when no SPI port can be opened.
	Fallback bool
}

// Init loads the periph.io host drivers. It is safe to call more than once.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("led: host init: %w", err)
	}
	return nil
}

// Open initializes the host and opens the SPI string described by o.
func Open(o Options) (*Strip, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	p, err := spireg.Open(o.Dev)
	if err != nil {
		if !o.Fallback {
			return nil, fmt.Errorf("led: open spi %q: %w", o.Dev, err)
		}
		log.Warn().Err(err).Msg("failed to find a SPI port, printing at the console")
		return OpenConsole(o.Count)
	}
	s, err := NewSPI(p, o)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	s.port = p
	return s, nil
}

// NewSPI drives an nrzled string on an already opened port.
func NewSPI(p spi.Port, o Options) (*Strip, error) {
	if o.Channels == 0 {
		o.Channels = 3
	}
	if o.FreqHz <= 0 {
		o.FreqHz = 800000
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: o.Count,
		Channels:  o.Channels,
		Freq:      physic.Frequency(o.FreqHz) * physic.Hertz,
	})
	if err != nil {
		return nil, fmt.Errorf("led: nrzled: %w", err)
	}
	return NewStrip(d, o.Count, o.Channels)
}

// OpenConsole renders the string as one line of ANSI colored blocks.
func OpenConsole(n int) (*Strip, error) {
	if n <= 0 {
		return nil, fmt.Errorf("led: invalid LED count: %d", n)
	}
	return NewStrip(screen1d.New(&screen1d.Opts{X: n}), n, 3)
}
