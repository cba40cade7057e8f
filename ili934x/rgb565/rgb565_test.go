// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgb565

import (
	"image/color"
	"testing"
)

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		name    string
		r, g, b uint8
		want    Color
	}{
		{"black", 0, 0, 0, Black},
		{"white", 255, 255, 255, White},
		{"red", 255, 0, 0, Red},
		{"green", 0, 255, 0, Green},
		{"blue", 0, 0, 255, Blue},
		{"truncated", 0x07, 0x03, 0x07, Black},
		{"lowest step", 0x08, 0x04, 0x08, 0x0821},
		{"mixed", 0x12, 0x34, 0x56, 0x11AA},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Encode(tc.r, tc.g, tc.b); got != tc.want {
				t.Errorf("Encode(%#x, %#x, %#x) = %s, want %s", tc.r, tc.g, tc.b, got, tc.want)
			}
		})
	}
}

func TestDecodeRange(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := uint8(v)
		r, g, b := Encode(c, c, c).Decode()
		for _, ch := range []struct {
			name string
			got  uint8
			step int
		}{
			{"red", r, 1 << (8 - rBits)},
			{"green", g, 1 << (8 - gBits)},
			{"blue", b, 1 << (8 - bBits)},
		} {
			switch {
			case c == 0 && ch.got != 0:
				t.Fatalf("%s: 0 decoded to %#x", ch.name, ch.got)
			case c == 255 && ch.got != 255:
				t.Fatalf("%s: 255 decoded to %#x", ch.name, ch.got)
			case abs(int(ch.got)-int(c)) >= ch.step:
				t.Fatalf("%s: %#x decoded to %#x, error is larger than one step of %d", ch.name, c, ch.got, ch.step)
			}
		}
	}
}

func TestEncodeDecodeIdempotent(t *testing.T) {
	for v := 0; v <= 0xFFFF; v++ {
		c := Color(v)
		if got := Encode(c.Decode()); got != c {
			t.Fatalf("Encode(%s.Decode()) = %s", c, got)
		}
	}
}

func TestChannels(t *testing.T) {
	c := Encode(0x80, 0x40, 0x20)
	r, g, b := c.Decode()
	if c.R() != r || c.G() != g || c.B() != b {
		t.Fatalf("R/G/B() = %#x/%#x/%#x, Decode() = %#x/%#x/%#x", c.R(), c.G(), c.B(), r, g, b)
	}
	if r != 0x87 || g != 0x43 || b != 0x27 {
		t.Fatalf("Decode() = %#x/%#x/%#x", r, g, b)
	}
}

func TestWire(t *testing.T) {
	c := Encode(0xF8, 0xFC, 0x00)
	hi, lo := c.Wire()
	if hi != 0xFF || lo != 0xE0 {
		t.Fatalf("Wire() = %#x, %#x", hi, lo)
	}
	if got := FromWire(hi, lo); got != c {
		t.Fatalf("FromWire() = %s, want %s", got, c)
	}
	if got := c.Swap(); got != 0xE0FF {
		t.Fatalf("Swap() = %s", got)
	}
	if got := c.Swap().Swap(); got != c {
		t.Fatalf("Swap().Swap() = %s, want %s", got, c)
	}
}

// The color.Model path and Encode must agree for every opaque color.
func TestModelMatchesEncode(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 7 {
				want := Encode(uint8(r), uint8(g), uint8(b))
				for _, c := range []color.Color{
					color.RGBA{uint8(r), uint8(g), uint8(b), 255},
					color.NRGBA{uint8(r), uint8(g), uint8(b), 255},
					color.RGBA64{uint16(r) * 0x101, uint16(g) * 0x101, uint16(b) * 0x101, 0xFFFF},
				} {
					if got := Model.Convert(c).(Color); got != want {
						t.Fatalf("Model.Convert(%#v) = %s, want %s", c, got, want)
					}
				}
			}
		}
	}
}

func TestModelGray(t *testing.T) {
	if got := Model.Convert(color.Gray{Y: 0xFF}); got != White {
		t.Fatalf("Model.Convert(gray) = %v", got)
	}
	if got := Model.Convert(color.Transparent); got != Black {
		t.Fatalf("Model.Convert(transparent) = %v", got)
	}
}

func TestRGBA(t *testing.T) {
	r, g, b, a := White.RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Fatalf("White.RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
	r, g, b, a = Black.RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xFFFF {
		t.Fatalf("Black.RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
	if got := FromColor(Red); got != Red {
		t.Fatalf("FromColor(Red) = %s", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	for _, tc := range []struct {
		name  string
		a, b  Color
		delta int
		want  bool
	}{
		{"exact", 0x1234, 0x1234, 0, true},
		{"exact no delta", Red, Blue, 0, false},
		{"red one step", Encode(0x80, 0, 0), Encode(0x88, 0, 0), 1, true},
		{"red two steps", Encode(0x80, 0, 0), Encode(0x90, 0, 0), 1, false},
		{"green one step", Encode(0, 0x80, 0), Encode(0, 0x84, 0), 1, true},
		{"green two steps", Encode(0, 0x80, 0), Encode(0, 0x88, 0), 1, false},
		{"green two steps wide delta", Encode(0, 0x80, 0), Encode(0, 0x88, 0), 2, true},
		{"blue far", Encode(0, 0, 0x10), Encode(0, 0, 0xF0), 4, false},
		{"from zero", Encode(0, 0, 0), Encode(0, 0, 0x08), 1, false},
		{"from zero wide", Encode(0, 0, 0), Encode(0, 0, 0x08), 2, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearlyEqual(tc.a, tc.b, tc.delta); got != tc.want {
				t.Errorf("NearlyEqual(%s, %s, %d) = %t, want %t", tc.a, tc.b, tc.delta, got, tc.want)
			}
			if got := NearlyEqual(tc.b, tc.a, tc.delta); got != tc.want {
				t.Errorf("NearlyEqual(%s, %s, %d) = %t, want %t", tc.b, tc.a, tc.delta, got, tc.want)
			}
		})
	}
}
