package render

import "testing"

func TestPowerLimitBudgetClamp(t *testing.T) {
	// 10 LEDs all white
	buf := make([]Color, 10)
	for i := range buf {
		buf[i] = Color{255, 255, 255}
	}
	p := PowerLimit{
		ChanMA:   20,  // 60mA at white per LED
		BudgetMA: 300, // allow 300 mA total
		Knee:     0.9,
	}

	// pre-limit current would be 10 * 60 = 600 mA
	p.Apply(buf)
	if cur := EstimateCurrent(buf, 20); cur > 300.1 {
		t.Fatalf("expected <= 300mA after limit, got %.2f mA", cur)
	}
}

func TestPowerLimitUnderKneeUntouched(t *testing.T) {
	buf := []Color{{10, 10, 10}}
	PowerLimit{BudgetMA: 3000}.Apply(buf)
	if buf[0] != (Color{10, 10, 10}) {
		t.Fatalf("expected untouched frame, got %+v", buf[0])
	}
}

func TestWhiteCap(t *testing.T) {
	buf := []Color{{255, 255, 255}}
	PowerLimit{WhiteCap: 0.5}.Apply(buf)
	sum := int(buf[0].R) + int(buf[0].G) + int(buf[0].B)
	if sum > 383 {
		t.Fatalf("expected sum <= 382, got %d", sum)
	}
	if !(PowerLimit{WhiteCap: 0.5}).Enabled() || (PowerLimit{}).Enabled() {
		t.Fatal("Enabled does not reflect configuration")
	}
}
