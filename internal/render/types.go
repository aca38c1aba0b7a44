package render

// Color holds one LED's channel intensities. Channels are R,G,B regardless of
// the order the string expects on the wire.
type Color struct{ R, G, B uint8 }

// RGB is shorthand for a Color literal.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Black is the zero color.
var Black = Color{}

var White = Color{R: 255, G: 255, B: 255}

// Packed returns the color as 0x00RRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Packed; the top byte is ignored.
func Unpack(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Scale multiplies every channel by num and shifts right by shift, so
// Scale(14, 4) is the 14/16 decay step and Scale(level, 6) a 1/64 fade.
func (c Color) Scale(num, shift uint) Color {
	return Color{
		R: scaleChan(c.R, num, shift),
		G: scaleChan(c.G, num, shift),
		B: scaleChan(c.B, num, shift),
	}
}

// Shl shifts every channel left, saturating at 255.
func (c Color) Shl(n uint) Color {
	return Color{R: satShl(c.R, n), G: satShl(c.G, n), B: satShl(c.B, n)}
}

// Add sums two colors channel-wise, saturating at 255.
func (c Color) Add(o Color) Color {
	return Color{R: satAdd(c.R, o.R), G: satAdd(c.G, o.G), B: satAdd(c.B, o.B)}
}

// Sub subtracts channel-wise, flooring at 0.
func (c Color) Sub(o Color) Color {
	return Color{R: satSub(c.R, o.R), G: satSub(c.G, o.G), B: satSub(c.B, o.B)}
}

// Average returns (a+b)>>1 per channel.
func Average(a, b Color) Color {
	return Color{
		R: uint8((uint16(a.R) + uint16(b.R)) >> 1),
		G: uint8((uint16(a.G) + uint16(b.G)) >> 1),
		B: uint8((uint16(a.B) + uint16(b.B)) >> 1),
	}
}

// Dim returns the low-intensity background version of c: v>>3 per channel,
// never below 1.
func (c Color) Dim() Color {
	return Color{R: dimChan(c.R), G: dimChan(c.G), B: dimChan(c.B)}
}

// IsBlack reports whether all channels are zero.
func (c Color) IsBlack() bool { return c == Black }

func scaleChan(v uint8, num, shift uint) uint8 {
	x := (uint32(v) * uint32(num)) >> shift
	if x > 255 {
		return 255
	}
	return uint8(x)
}

func satShl(v uint8, n uint) uint8 {
	if n >= 8 {
		if v == 0 {
			return 0
		}
		return 255
	}
	x := uint16(v) << n
	if x > 255 {
		return 255
	}
	return uint8(x)
}

func satAdd(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func satSub(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func dimChan(v uint8) uint8 {
	d := v >> 3
	if d < 1 {
		return 1
	}
	return d
}

// Driver abstracts the LED transport (SPI string, console, preview, ...).
// Write receives the pixels in node order; implementations must not retain buf.
type Driver interface {
	Write(buf []Color) error
}

// Dimmer receives the backlight level after every committed frame.
type Dimmer interface {
	SetLevel(level int) error
}
