package render

// PowerLimit is a two-stage limiter for the outgoing frame:
//  1. Per-LED white cap: scales R,G,B so R+G+B <= WhiteCap*3*255 (0 or >=1 disables).
//  2. Global current budget: estimates the draw at ChanMA per full-scale
//     channel and scales the whole frame to stay under BudgetMA (0 disables).
//
// Between Knee*BudgetMA and BudgetMA the scale is eased in rather than applied hard.
type PowerLimit struct {
	WhiteCap float64
	ChanMA   float64
	BudgetMA float64
	Knee     float64
}

// Enabled reports whether any stage would act.
func (p PowerLimit) Enabled() bool {
	return (p.WhiteCap > 0 && p.WhiteCap < 1) || p.BudgetMA > 0
}

// Apply limits buf in place.
func (p PowerLimit) Apply(buf []Color) {
	chanmA := 20.0
	if p.ChanMA > 0 {
		chanmA = p.ChanMA
	}
	knee := 0.9
	if p.Knee > 0 && p.Knee < 1 {
		knee = p.Knee
	}

	// 1) Per-LED white cap
	if p.WhiteCap > 0 && p.WhiteCap < 1 {
		limit := p.WhiteCap * 3 * 255
		for i := range buf {
			s := float64(buf[i].R) + float64(buf[i].G) + float64(buf[i].B)
			if s > limit && s > 0 {
				buf[i] = scaleF(buf[i], limit/s)
			}
		}
	}

	// 2) Global budget
	if p.BudgetMA <= 0 {
		return
	}
	total := EstimateCurrent(buf, chanmA)
	if total <= 0 {
		return
	}
	ratio := total / p.BudgetMA
	if ratio <= knee {
		return
	}
	minS := p.BudgetMA / total
	if ratio <= 1.0 {
		// map ratio in [knee,1] to scale in [1, budget/total]
		t := (ratio - knee) / (1.0 - knee)
		applyGlobalScale(buf, 1.0-t*(1.0-minS))
		return
	}
	applyGlobalScale(buf, minS)
}

// EstimateCurrent returns the estimated draw in mA with chanmA per
// full-scale channel.
func EstimateCurrent(buf []Color, chanmA float64) float64 {
	var sum float64
	for i := range buf {
		sum += float64(buf[i].R) + float64(buf[i].G) + float64(buf[i].B)
	}
	return sum / 255.0 * chanmA
}

func applyGlobalScale(buf []Color, s float64) {
	if s >= 1.0 {
		return
	}
	for i := range buf {
		buf[i] = scaleF(buf[i], s)
	}
}

// scaleF truncates so the result never exceeds the requested limit.
func scaleF(c Color, s float64) Color {
	return Color{
		R: uint8(float64(c.R) * s),
		G: uint8(float64(c.G) * s),
		B: uint8(float64(c.B) * s),
	}
}
