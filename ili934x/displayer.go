// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import (
	"image"
	"image/color"

	"github.com/GermanBionicSystems/lcd/ili934x/rgb565"
	"periph.io/x/conn/v3"
	"tinygo.org/x/drivers"
)

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer. It only changes the staging frame.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	px, py := int(x), int(y)
	if px < 0 || py < 0 || px >= d.rect.Dx() || py >= d.rect.Dy() {
		return
	}
	d.buffer.SetRGB565(px, py, rgb565.Encode(c.R, c.G, c.B))
	d.dirty = d.dirty.Union(image.Rect(px, py, px+1, py+1))
}

// Display implements drivers.Displayer. It sends what changed since the
// previous call.
func (d *Dev) Display() error {
	return d.SendFrame(false)
}

// Rotation returns the current orientation as a TinyGo drivers rotation.
func (d *Dev) Rotation() drivers.Rotation {
	return d.orientation.Rotation()
}

// SetRotation is SetOrientation for TinyGo drivers rotations.
func (d *Dev) SetRotation(r drivers.Rotation) error {
	o, err := OrientationFromRotation(r)
	if err != nil {
		return err
	}
	return d.SetOrientation(o)
}

// ConnFromSPI returns a write only conn.Conn on top of a TinyGo style SPI bus,
// to be used with New.
func ConnFromSPI(bus drivers.SPI) conn.Conn {
	return &spiConn{bus: bus}
}

type spiConn struct {
	bus drivers.SPI
}

func (s *spiConn) String() string {
	return "drivers.SPI"
}

func (s *spiConn) Tx(w, r []byte) error {
	return s.bus.Tx(w, r)
}

func (s *spiConn) Duplex() conn.Duplex {
	return conn.Full
}

var _ drivers.Displayer = (*Dev)(nil)
