// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// MemoryAccessFlags is the payload of the Memory Access Control (36h)
// command. It controls the scan direction of the frame memory and the color
// filter order.
type MemoryAccessFlags byte

// Memory Access Control bits.
const (
	// MY is the row address order.
	MY MemoryAccessFlags = 0x80
	// MX is the column address order.
	MX MemoryAccessFlags = 0x40
	// MV exchanges rows and columns.
	MV MemoryAccessFlags = 0x20
	// ML is the vertical refresh order.
	ML MemoryAccessFlags = 0x10
	// BGR selects a BGR color filter panel instead of RGB.
	BGR MemoryAccessFlags = 0x08
	// MH is the horizontal refresh order.
	MH MemoryAccessFlags = 0x04
)

// Orientation is the rotation of the panel relative to its native portrait
// scan order.
type Orientation uint8

// Possible orientations, clockwise.
const (
	// PortraitNormal is the default orientation.
	PortraitNormal Orientation = iota
	// LandscapeNormal is rotated by 90°.
	LandscapeNormal
	// PortraitFlipped is rotated by 180°.
	PortraitFlipped
	// LandscapeFlipped is rotated by 270°.
	LandscapeFlipped
)

var orientationFlags = [...]MemoryAccessFlags{
	PortraitNormal:   MX | BGR,
	LandscapeNormal:  MV | BGR,
	PortraitFlipped:  MY | BGR,
	LandscapeFlipped: MV | BGR | MY | MX,
}

var orientationNames = [...]string{
	PortraitNormal:   "PortraitNormal",
	LandscapeNormal:  "LandscapeNormal",
	PortraitFlipped:  "PortraitFlipped",
	LandscapeFlipped: "LandscapeFlipped",
}

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
	return orientationNames[o]
}

// Valid returns true if o is one of the four known orientations.
func (o Orientation) Valid() bool {
	return int(o) < len(orientationFlags)
}

// Landscape returns true when rows and columns are exchanged.
func (o Orientation) Landscape() bool {
	return o == LandscapeNormal || o == LandscapeFlipped
}

// Flags returns the Memory Access Control payload for o.
//
// It panics if o is not Valid.
func (o Orientation) Flags() MemoryAccessFlags {
	return orientationFlags[o]
}

// EffectiveSize returns the logical width and height of a panel whose native
// size is w x h when shown in orientation o.
func (o Orientation) EffectiveSize(w, h int) (int, int) {
	if o.Landscape() {
		return h, w
	}
	return w, h
}

// Rotation returns the TinyGo drivers rotation matching o.
func (o Orientation) Rotation() drivers.Rotation {
	return drivers.Rotation(o)
}

// OrientationFromRotation returns the Orientation matching a TinyGo drivers
// rotation. Mirrored rotations are not supported.
func OrientationFromRotation(r drivers.Rotation) (Orientation, error) {
	switch r {
	case drivers.Rotation0:
		return PortraitNormal, nil
	case drivers.Rotation90:
		return LandscapeNormal, nil
	case drivers.Rotation180:
		return PortraitFlipped, nil
	case drivers.Rotation270:
		return LandscapeFlipped, nil
	}
	return 0, fmt.Errorf("ili934x: unsupported rotation %d", r)
}
