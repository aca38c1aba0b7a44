package render

// Composite averages frame and background into dst: (a+b)>>1 per channel.
// dst may alias either input. Only the common length is written.
func Composite(dst, frame, background []Color) {
	n := len(dst)
	if len(frame) < n {
		n = len(frame)
	}
	if len(background) < n {
		n = len(background)
	}
	for i := 0; i < n; i++ {
		dst[i] = Average(frame[i], background[i])
	}
}

// DimCopy writes the background version of src into dst.
func DimCopy(dst, src []Color) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i].Dim()
	}
}
