package vect

import (
	"math"
	"testing"
)

func TestFromPolarZeroMagnitude(t *testing.T) {
	v := FromPolar(1.234, 0)
	if v != Zero {
		t.Errorf("zero magnitude should give the zero vector, got %+v", v)
	}
}

func TestFromPolarRoundTrip(t *testing.T) {
	tests := []struct {
		angle, mag float64
	}{
		{0, 9.8},
		{math.Pi / 2, 5},
		{math.Pi, 1},
		{-math.Pi / 4, 2.5},
	}

	for _, tt := range tests {
		v := FromPolar(tt.angle, tt.mag)
		if math.Abs(v.Norm()-tt.mag) > 1e-12 {
			t.Errorf("angle %f: expected norm %f, got %f", tt.angle, tt.mag, v.Norm())
		}
		if math.Abs(v.Heading()-tt.angle) > 1e-12 {
			t.Errorf("angle %f: heading came back as %f", tt.angle, v.Heading())
		}
	}
}

func TestAddCommutes(t *testing.T) {
	a := New(1, 2)
	b := New(-3, 0.5)
	if a.Add(b) != b.Add(a) {
		t.Error("addition should commute")
	}
}

func TestAngleBetween(t *testing.T) {
	p1 := New(0, 0)
	p2 := New(0, 10)

	angle := AngleBetween(p1, p2)
	if math.Abs(angle-math.Pi/2) > 1e-12 {
		t.Errorf("expected pi/2 (straight down), got %f", angle)
	}

	back := AngleBetween(p2, p1)
	if math.Abs(back+math.Pi/2) > 1e-12 {
		t.Errorf("expected -pi/2, got %f", back)
	}
}

func TestDist(t *testing.T) {
	if d := Dist(New(0, 0), New(3, 4)); math.Abs(d-5) > 1e-12 {
		t.Errorf("expected 5, got %f", d)
	}
}

func TestIsValid(t *testing.T) {
	if !New(1, 2).IsValid() {
		t.Error("finite vector should be valid")
	}
	if New(math.NaN(), 0).IsValid() {
		t.Error("NaN vector should be invalid")
	}
	if New(0, math.Inf(1)).IsValid() {
		t.Error("Inf vector should be invalid")
	}
}

func TestRadiansDegrees(t *testing.T) {
	if math.Abs(Radians(90)-math.Pi/2) > 1e-12 {
		t.Errorf("90 degrees should be pi/2, got %f", Radians(90))
	}
	if math.Abs(Degrees(math.Pi)-180) > 1e-12 {
		t.Errorf("pi should be 180 degrees, got %f", Degrees(math.Pi))
	}
}
