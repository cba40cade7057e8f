// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful to preview what a LCD panel driver would show before the panel is
// wired. Each terminal cell shows one pixel, the frame is downsampled to fit
// the requested number of cells.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// W and H are the size of the emulated screen, in pixels.
	W, H int
	// X and Y are the number of terminal cells to use. Defaults to W and H.
	X, Y    int
	Palette *ansi256.Palette
	// Out defaults to a colorable stdout.
	Out io.Writer

	_ struct{}
}

// Dev is a 2D screen emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	x, y    int
	palette ansi256.Palette

	frame *image.NRGBA
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.W < 1 || opts.H < 1 {
		return nil, fmt.Errorf("screen2d: invalid size %dx%d", opts.W, opts.H)
	}
	x, y := opts.X, opts.Y
	if x == 0 {
		x = opts.W
	}
	if y == 0 {
		y = opts.H
	}
	if x < 1 || y < 1 || x > opts.W || y > opts.H {
		return nil, fmt.Errorf("screen2d: invalid cells %dx%d for %dx%d", x, y, opts.W, opts.H)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		x:       x,
		y:       y,
		palette: *p,
		frame:   image.NewNRGBA(image.Rect(0, 0, opts.W, opts.H)),
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%dx%d}", d.frame.Rect.Dx(), d.frame.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// Write accepts a stream of raw RGB pixels and writes it to the console.
func (d *Dev) Write(pixels []byte) (int, error) {
	n := d.frame.Rect.Dx() * d.frame.Rect.Dy()
	if len(pixels) != 3*n {
		return 0, errors.New("screen2d: invalid RGB stream length")
	}
	for i := 0; i < n; i++ {
		copy(d.frame.Pix[4*i:], pixels[3*i:3*i+3])
		d.frame.Pix[4*i+3] = 255
	}
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.refresh()
}

// refresh prints the whole frame, picking the nearest pixel for each cell.
func (d *Dev) refresh() error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	w, h := d.frame.Rect.Dx(), d.frame.Rect.Dy()
	for cy := 0; cy < d.y; cy++ {
		py := cy * h / d.y
		for cx := 0; cx < d.x; cx++ {
			c := d.frame.NRGBAAt(cx*w/d.x, py)
			c.A = 255
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
