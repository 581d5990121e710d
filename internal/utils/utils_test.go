package utils

import (
	"math"
	"testing"
)

func TestLerpAngleTakesShortestArc(t *testing.T) {
	tests := []struct {
		from, to, t, want float64
	}{
		{0, 1, 0.5, 0.5},
		{3.0, -3.0, 0.5, math.Pi},
		{-3.0, 3.0, 0.5, math.Pi},
		{0.1, -0.1, 0.5, 0},
		{1, 2, 0, 1},
		{1, 2, 1, 2},
	}
	for _, tt := range tests {
		got := LerpAngle(tt.from, tt.to, tt.t)
		// ±π are the same heading.
		if math.Abs(NormalizeAngle(got-tt.want)) > 1e-9 {
			t.Errorf("LerpAngle(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.t, got, tt.want)
		}
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	for _, a := range []float64{-10, -math.Pi, -1, 0, 1, math.Pi, 3 * math.Pi, 10} {
		n := NormalizeAngle(a)
		if n <= -math.Pi || n > math.Pi {
			t.Errorf("NormalizeAngle(%v) = %v out of (-π, π]", a, n)
		}
		if math.Abs(math.Sin(n)-math.Sin(a)) > 1e-9 || math.Abs(math.Cos(n)-math.Cos(a)) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v changes the heading", a, n)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 5) != 0 || Clamp(9, 0, 5) != 5 || Clamp(2.5, 0, 5) != 2.5 {
		t.Error("Clamp")
	}
	if ClampInt(-1, 0, 5) != 0 || ClampInt(9, 0, 5) != 5 || ClampInt(3, 0, 5) != 3 {
		t.Error("ClampInt")
	}
}

func TestPRNGReplaysFromSeed(t *testing.T) {
	a, b := NewPRNGService(17), NewPRNGService(17)
	for i := 0; i < 50; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
	a.Reseed(5)
	b.Reseed(5)
	if a.Seed() != 5 || a.Intn(1000) != b.Intn(1000) {
		t.Error("reseed did not restart the stream")
	}
	if NewPRNGService(0).Seed() == 0 {
		t.Error("zero seed kept")
	}
}

func TestPRNGRanges(t *testing.T) {
	r := NewPRNGService(3)
	for i := 0; i < 1000; i++ {
		if v := r.Range(20, 50); v < 20 || v >= 50 {
			t.Fatalf("Range gave %v", v)
		}
		if v := r.Spread(6); v < -6 || v >= 6 {
			t.Fatalf("Spread gave %v", v)
		}
	}
	picked := r.Pick(2, 7)
	if len(picked) != 2 || picked[0] == picked[1] {
		t.Errorf("Pick(2, 7) = %v", picked)
	}
	if len(r.Pick(9, 3)) != 3 {
		t.Error("Pick did not cap k at n")
	}
}
