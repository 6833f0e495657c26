package gmath

import (
	"testing"

	"pgregory.net/rapid"
)

func TestQuantiseFractionNoDrift(t *testing.T) {
	// Summing steps over adjacent windows must reproduce v*t/den exactly,
	// no matter how the interval is chopped up.
	rapid.Check(t, func(t *rapid.T) {
		v := Vector3{
			X: rapid.Int32Range(-1e6, 1e6).Draw(t, "vx"),
			Y: rapid.Int32Range(-1e6, 1e6).Draw(t, "vy"),
			Z: rapid.Int32Range(-1e6, 1e6).Draw(t, "vz"),
		}
		den := rapid.Int32Range(1, 1e6).Draw(t, "den")
		end := rapid.Uint32Range(1, 2000).Draw(t, "end")
		cut := rapid.Uint32Range(0, end).Draw(t, "cut")

		var sum Vector3
		sum = sum.Add(QuantiseFraction(v, den, cut, 0))
		sum = sum.Add(QuantiseFraction(v, den, end, cut))

		want := v.MulDiv(int32(end), den)
		if sum != want {
			t.Fatalf("chopped sum %v, direct %v", sum, want)
		}
	})
}

func TestInSphere(t *testing.T) {
	c := Vector3{100, 100, 100}
	if !(Vector3{103, 104, 100}).InSphere(c, 5) {
		t.Error("point on the boundary should be inside")
	}
	if (Vector3{106, 100, 100}).InSphere(c, 5) {
		t.Error("point outside radius reported inside")
	}
}

func TestHeading(t *testing.T) {
	if got := (Vector2{10, 0}).Heading(); got != 0 {
		t.Errorf("Heading(+X) = %d, want 0", got)
	}
	if got := (Vector2{0, 10}).Heading(); got != AngleQuarter {
		t.Errorf("Heading(+Y) = %d, want %d", got, AngleQuarter)
	}
}
