// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen2d

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/maruel/ansi256"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func expected(rows ...[]color.NRGBA) string {
	out := "\033[0m"
	for _, row := range rows {
		for _, c := range row {
			out += ansi256.Default.Block(c)
		}
		out += "\033[0m\n"
	}
	return out
}

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{W: 2, H: 2, Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "Screen2D{2x2}" {
		t.Errorf("String() = %q", s)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 1, blue)
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	want := expected([]color.NRGBA{red, black}, []color.NRGBA{black, blue})
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Draw() difference (-got +want):\n%s", diff)
	}
}

func TestDownsample(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{W: 4, H: 4, X: 2, Y: 1, Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	pixels := make([]byte, 3*16)
	// Row 0: red at x=0, blue at x=2.
	pixels[0] = 255
	pixels[3*2+2] = 255
	if n, err := d.Write(pixels); err != nil || n != len(pixels) {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	want := expected([]color.NRGBA{red, blue})
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Write() difference (-got +want):\n%s", diff)
	}
	if _, err := d.Write(pixels[:3]); err == nil {
		t.Error("Write() accepted a short stream")
	}
}

func TestNewInvalid(t *testing.T) {
	for _, o := range []Opts{{}, {W: 2, H: 2, X: 3}, {W: 2, H: -1}} {
		if _, err := New(&o); err == nil {
			t.Errorf("New(%+v) succeeded", o)
		}
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&Opts{W: 1, H: 1, Out: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m" {
		t.Errorf("Halt() wrote %q", buf.String())
	}
}
