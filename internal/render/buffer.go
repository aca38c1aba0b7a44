package render

// Buffer is a fixed-size frame of Colors indexed by node.
type Buffer struct {
	px []Color
}

// NewBuffer allocates a black frame of n pixels.
func NewBuffer(n int) *Buffer {
	if n < 0 {
		n = 0
	}
	return &Buffer{px: make([]Color, n)}
}

// Len returns the number of pixels.
func (b *Buffer) Len() int { return len(b.px) }

// Pixels exposes the backing slice in node order.
func (b *Buffer) Pixels() []Color { return b.px }

// Set writes c at node i. Out-of-range nodes are ignored.
func (b *Buffer) Set(i int, c Color) {
	if i < 0 || i >= len(b.px) {
		return
	}
	b.px[i] = c
}

// At returns the color at node i, or Black when i is out of range.
func (b *Buffer) At(i int) Color {
	if i < 0 || i >= len(b.px) {
		return Black
	}
	return b.px[i]
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	for i := range b.px {
		b.px[i] = c
	}
}

// Clear blacks out the frame.
func (b *Buffer) Clear() { b.Fill(Black) }

// CopyFrom copies as many pixels as both buffers hold.
func (b *Buffer) CopyFrom(src []Color) { copy(b.px, src) }

// Decay scales every channel by num/2^shift. Repeated calls fade to black.
func (b *Buffer) Decay(num, shift uint) {
	for i := range b.px {
		b.px[i] = b.px[i].Scale(num, shift)
	}
}

// Snapshot returns a copy of the pixels.
func (b *Buffer) Snapshot() []Color {
	out := make([]Color, len(b.px))
	copy(out, b.px)
	return out
}
