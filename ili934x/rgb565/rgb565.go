// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgb565 implements the 16 bits per pixel color format used by the
// ILI934x family of LCD controllers.
//
// A Color holds 5 bits of red, 6 bits of green and 5 bits of blue:
//
//	bit  15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
//	      R  R  R  R  R  G  G  G  G  G  G  B  B  B  B  B
//
// The controller expects the most significant byte first on the wire. On a
// little endian host the value as laid out in the frame buffer is therefore
// byte swapped: the low order byte in memory is RRRRRGGG and the high order
// byte is GGGBBBBB.
package rgb565

import (
	"fmt"
	"image/color"
)

// Color is a packed 5/6/5 color.
type Color uint16

// Channel widths and offsets.
const (
	rBits = 5
	gBits = 6
	bBits = 5

	bShift = 0
	gShift = bShift + bBits
	rShift = gShift + gBits

	rMax = 1<<rBits - 1
	gMax = 1<<gBits - 1
	bMax = 1<<bBits - 1
)

// Frequently used colors.
const (
	Black Color = 0x0000
	White Color = 0xFFFF
	Red   Color = rMax << rShift
	Green Color = gMax << gShift
	Blue  Color = bMax << bShift
)

// Encode packs an 8 bits per channel color. The low order bits of each
// channel are truncated, there is no rounding.
func Encode(r, g, b uint8) Color {
	return Color(r>>(8-rBits))<<rShift | Color(g>>(8-gBits))<<gShift | Color(b>>(8-bBits))<<bShift
}

// FromWire returns the Color transmitted as the two bytes hi, lo.
func FromWire(hi, lo byte) Color {
	return Color(hi)<<8 | Color(lo)
}

// Wire returns the two bytes sent to the controller, in transmission order.
func (c Color) Wire() (hi, lo byte) {
	return byte(c >> 8), byte(c)
}

// Swap returns c with its two bytes exchanged.
//
// This is the value a little endian host sees when it reads a pixel of a
// wire ordered buffer as an uint16.
func (c Color) Swap() Color {
	return c>>8 | c<<8
}

// Decode widens c back to 8 bits per channel.
//
// A channel stored as 0 decodes to exactly 0 and a channel stored at its
// maximum decodes to exactly 0xFF. Values in between are approximations.
func (c Color) Decode() (r, g, b uint8) {
	return widen(uint8(c>>rShift)&rMax, rBits), widen(uint8(c>>gShift)&gMax, gBits), widen(uint8(c>>bShift)&bMax, bBits)
}

// widen expands the n bits value v to 8 bits, filling the freed low order
// bits with ones unless v is zero.
func widen(v uint8, n uint) uint8 {
	if v == 0 {
		return 0
	}
	return v<<(8-n) | (1<<(8-n) - 1)
}

// R returns the decoded red channel.
func (c Color) R() uint8 {
	return widen(uint8(c>>rShift)&rMax, rBits)
}

// G returns the decoded green channel.
func (c Color) G() uint8 {
	return widen(uint8(c>>gShift)&gMax, gBits)
}

// B returns the decoded blue channel.
func (c Color) B() uint8 {
	return widen(uint8(c>>bShift)&bMax, bBits)
}

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Decode()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("rgb565.Color(0x%04X)", uint16(c))
}

// NearlyEqual returns true if a and b are equal or if each decoded channel
// differs by at most delta steps of that channel. Green has one more bit than
// red and blue so its step is half as large.
//
// It is meant for comparing images that went through the lossy conversion,
// not for anything sent to the controller.
func NearlyEqual(a, b Color, delta int) bool {
	if a == b {
		return true
	}
	ar, ag, ab := a.Decode()
	br, bg, bb := b.Decode()
	if abs(int(ar)-int(br)) > delta<<(8-rBits) {
		return false
	}
	if abs(int(ag)-int(bg)) > delta<<(8-gBits) {
		return false
	}
	return abs(int(ab)-int(bb)) <= delta<<(8-bBits)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Model converts any color.Color to a Color.
//
// Alpha is ignored: the premultiplied channels are packed as is, which
// composes a translucent color over black.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return FromColor(c)
}

// FromColor returns the Color closest to c by truncation.
func FromColor(c color.Color) Color {
	if p, ok := c.(Color); ok {
		return p
	}
	if p, ok := c.(color.RGBA); ok {
		return Encode(p.R, p.G, p.B)
	}
	r, g, b, _ := c.RGBA()
	return Encode(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

var _ color.Color = Color(0)
