package vecmath

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	if got := a.Add(b); got != (Vec2{4, 2}) {
		t.Fatalf("Add: got %v, want {4 2}", got)
	}
	if got := a.Sub(b); got != (Vec2{2, 6}) {
		t.Fatalf("Sub: got %v, want {2 6}", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Fatalf("Scale: got %v, want {6 8}", got)
	}
	if got := a.Length(); got != 5 {
		t.Fatalf("Length: got %f, want 5", got)
	}
	if got := a.Distance(Vec2{0, 4}); got != 3 {
		t.Fatalf("Distance: got %f, want 3", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"unit x", Vec2{5, 0}, Vec2{1, 0}},
		{"unit y", Vec2{0, -2}, Vec2{0, -1}},
		{"zero vector", Vec2{}, Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Fatalf("Normalize(%v): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{10, -10}

	if got := a.Lerp(b, 0); got != a {
		t.Fatalf("Lerp(0): got %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Fatalf("Lerp(1): got %v, want %v", got, b)
	}
	if got := a.Lerp(b, 0.3); got != (Vec2{3, -3}) {
		t.Fatalf("Lerp(0.3): got %v, want {3 -3}", got)
	}
}

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"identical", 1.0, 1.0, 0},
		{"quarter turn", 0, math.Pi / 2, math.Pi / 2},
		{"wraps past pi", -3 * math.Pi / 4, 3 * math.Pi / 4, math.Pi / 2},
		{"half turn", 0, math.Pi, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularDistance(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("AngularDistance(%f, %f): got %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		min, max float64
		want     float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below floor", -0.2, 0, 1, 0},
		{"above ceiling", 1.7, 0, 1, 1},
		{"nan clamps to min", math.NaN(), 0, 1, 0},
		{"inf clamps to min", math.Inf(1), 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.min, tt.max); got != tt.want {
				t.Fatalf("Clamp(%f, %f, %f): got %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
