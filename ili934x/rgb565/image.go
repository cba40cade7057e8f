// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgb565

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is an in-memory image whose pixels are stored as Color in wire
// order, most significant byte first.
//
// Pix can be sent as is to the controller after an address window covering
// Rect was set.
type Image struct {
	// Pix holds the image's pixels. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*2].
	Pix []byte
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewImage returns a new Image with the given bounds. All pixels are black.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	return &Image{Pix: make([]byte, 2*w*h), Stride: 2 * w, Rect: r}
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At returns the pixel at (x, y), or Black outside the bounds.
func (i *Image) RGB565At(x, y int) Color {
	if !(image.Point{x, y}.In(i.Rect)) {
		return Black
	}
	o := i.PixOffset(x, y)
	return FromWire(i.Pix[o], i.Pix[o+1])
}

// Opaque reports whether the image is fully opaque, which it always is.
func (i *Image) Opaque() bool {
	return true
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*2
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, FromColor(c))
}

// SetRGB565 sets the pixel at (x, y). Points outside the bounds are ignored.
func (i *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	o := i.PixOffset(x, y)
	i.Pix[o], i.Pix[o+1] = c.Wire()
}

// Fill sets every pixel of r clipped to the bounds to c.
func (i *Image) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(i.Rect)
	if r.Empty() {
		return
	}
	hi, lo := c.Wire()
	// Fill the first row then replicate it.
	first := i.Pix[i.PixOffset(r.Min.X, r.Min.Y):i.PixOffset(r.Max.X-1, r.Min.Y)+2]
	for j := 0; j < len(first); j += 2 {
		first[j], first[j+1] = hi, lo
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		o := i.PixOffset(r.Min.X, y)
		copy(i.Pix[o:o+len(first)], first)
	}
}

// SubImage returns an image representing the portion of the image i visible
// through r. The returned value shares pixels with the original image.
func (i *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(i.Rect)
	if r.Empty() {
		return &Image{}
	}
	o := i.PixOffset(r.Min.X, r.Min.Y)
	return &Image{Pix: i.Pix[o:], Stride: i.Stride, Rect: r}
}

// Rows calls fn once per row of r clipped to the bounds with the wire
// ordered bytes of that row.
func (i *Image) Rows(r image.Rectangle, fn func(row []byte) error) error {
	r = r.Intersect(i.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		o := i.PixOffset(r.Min.X, y)
		if err := fn(i.Pix[o : o+2*r.Dx()]); err != nil {
			return err
		}
	}
	return nil
}

var _ draw.Image = (*Image)(nil)
