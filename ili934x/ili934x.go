// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/GermanBionicSystems/lcd/ili934x/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Variant describes a member of the controller family: its native, unrotated
// size and its power up sequence.
type Variant struct {
	Name string
	// Width and Height are the native size in PortraitNormal orientation.
	Width, Height int

	init []command
}

func (v *Variant) String() string {
	return v.Name
}

// Supported controllers.
var (
	// ILI9341 drives 240x320 panels.
	ILI9341 = Variant{Name: "ILI9341", Width: 240, Height: 320, init: ili9341Init}
	// ILI9342 drives 320x240 panels.
	ILI9342 = Variant{Name: "ILI9342", Width: 320, Height: 240, init: ili9342Init}
)

// DefaultSpeed is used when Opts.Speed is 0. The datasheet rates the serial
// write cycle at 100ns but most modules run fine at a higher clock.
const DefaultSpeed = 24 * physic.MegaHertz

// Opts defines the options for the device.
type Opts struct {
	// Variant is the controller. Defaults to ILI9341.
	Variant *Variant
	// W and H override the native size of the panel. Use 0 for the
	// controller's native size.
	W, H int
	// Orientation is applied right after the power up sequence.
	Orientation Orientation
	// Speed is the SPI clock. Defaults to DefaultSpeed.
	Speed physic.Frequency
	// CS is an optional chip select pin driven by this driver, so that a
	// command and its payload share one assertion. When nil, the SPI port
	// drives chip select on every transfer.
	CS gpio.PinOut
	// Backlight is an optional pin switching the LED backlight, active high.
	Backlight gpio.PinOut
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Variant:     &ILI9341,
	Orientation: PortraitNormal,
}

// NewSPI returns a Dev that communicates over SPI to an ILI934x controller.
//
// # Wiring
//
// Connect SDI (MOSI) to SPI_MOSI, SCK to SPI_CLK, CS to SPI_CS or to any
// GPIO passed as Opts.CS. dc is the data/command select line (sometimes
// labeled D/C or RS) and rst the active low reset line. Both are required.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	mode := spi.Mode0
	if opts.CS != nil {
		mode |= spi.NoCS
	}
	speed := opts.Speed
	if speed == 0 {
		speed = DefaultSpeed
	}
	c, err := p.Connect(speed, mode, 8)
	if err != nil {
		return nil, &InitError{Op: "connect", Err: err}
	}
	return New(c, dc, rst, opts)
}

// New returns a Dev using an already configured connection.
//
// The controller is reset, initialized and set to opts.Orientation. Nothing
// is drawn, the panel shows whatever its memory held.
func New(c conn.Conn, dc, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	v := opts.Variant
	if v == nil {
		v = &ILI9341
	}
	w, h := opts.W, opts.H
	if w == 0 {
		w = v.Width
	}
	if h == 0 {
		h = v.Height
	}
	if w < 1 || h < 1 || w > 0xFFFF || h > 0xFFFF {
		return nil, &InitError{Op: "size", Err: fmt.Errorf("invalid size %dx%d", w, h)}
	}
	if !opts.Orientation.Valid() {
		return nil, &InitError{Op: "orientation", Err: fmt.Errorf("invalid %s", opts.Orientation)}
	}
	if err := claim("dc", dc, gpio.High); err != nil {
		return nil, err
	}
	if err := claim("rst", rst, gpio.High); err != nil {
		return nil, err
	}
	if opts.CS != nil {
		if err := claim("cs", opts.CS, gpio.High); err != nil {
			return nil, err
		}
	}
	if opts.Backlight != nil {
		if err := claim("backlight", opts.Backlight, gpio.Low); err != nil {
			return nil, err
		}
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = 4096
	}
	// Keep chunks pixel aligned.
	if maxTxSize > 1 {
		maxTxSize &^= 1
	}

	d := &Dev{
		c:           c,
		dc:          dc,
		rst:         rst,
		cs:          opts.CS,
		bl:          opts.Backlight,
		variant:     v,
		nativeW:     w,
		nativeH:     h,
		orientation: opts.Orientation,
		maxTxSize:   maxTxSize,
	}
	d.resize()

	eh := errorHandler{d: d}
	resetPanel(&eh, v.init)
	setOrientation(&eh, d.orientation)
	if eh.err != nil {
		return nil, &InitError{Op: "reset", Err: eh.err}
	}
	if d.bl != nil {
		if err := d.bl.Out(gpio.High); err != nil {
			return nil, &InitError{Op: "backlight", Err: err}
		}
	}
	return d, nil
}

// claim configures p as an output at level l.
func claim(name string, p gpio.PinOut, l gpio.Level) error {
	if p == nil || p == gpio.INVALID {
		return &InitError{Op: "claim " + name, Err: errors.New("pin is required")}
	}
	if err := p.Out(l); err != nil {
		return &InitError{Op: "claim " + name, Err: err}
	}
	return nil
}

// Dev is an open handle to the display controller.
//
// Dev is not safe for concurrent use. A reset, an address window and the
// pixels that follow are not atomic for the controller, callers must
// serialize all calls.
type Dev struct {
	// Communication
	c         conn.Conn
	dc        gpio.PinOut
	rst       gpio.PinOut
	cs        gpio.PinOut
	bl        gpio.PinOut
	maxTxSize int

	variant          *Variant
	nativeW, nativeH int

	// Mutable
	orientation Orientation
	rect        image.Rectangle
	// buffer is the staging frame, in wire order.
	buffer *rgb565.Image
	// dirty is the area of buffer changed since the last transmission.
	dirty image.Rectangle
	// pending is the number of pixels the open address window still expects.
	pending int
	// broken is set after a transport error, until Reset succeeds.
	broken bool
	// scratch is used to serialize StreamPixels.
	scratch []byte
}

func (d *Dev) String() string {
	return fmt.Sprintf("ili934x.Dev{%s, %s, %s, %s}", d.variant, d.c, d.dc, d.rect.Max)
}

// Variant returns the controller variant.
func (d *Dev) Variant() *Variant {
	return d.variant
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is always {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// ScreenWidth returns the width in the current orientation.
func (d *Dev) ScreenWidth() int {
	return d.rect.Dx()
}

// ScreenHeight returns the height in the current orientation.
func (d *Dev) ScreenHeight() int {
	return d.rect.Dy()
}

// Orientation returns the current orientation.
func (d *Dev) Orientation() Orientation {
	return d.orientation
}

// Buffer returns the staging frame. Changes made to it directly are sent by
// SendFrame(true) only.
func (d *Dev) Buffer() *rgb565.Image {
	return d.buffer
}

// Reset pulses the reset line, replays the power up sequence and restores
// the current orientation.
//
// It is the only way to recover from a TransportError. The whole staging
// frame is marked as changed.
func (d *Dev) Reset() error {
	d.pending = 0
	eh := errorHandler{d: d}
	eh.endMemoryWrite()
	resetPanel(&eh, d.variant.init)
	setOrientation(&eh, d.orientation)
	if eh.err != nil {
		d.broken = true
		return &TransportError{Op: "reset", Err: eh.err}
	}
	d.broken = false
	d.dirty = d.rect
	return nil
}

// SetOrientation changes the orientation of the panel.
//
// When the screen size changes, the staging frame is reallocated and its
// content is lost. In any case the next SendFrame redraws the whole screen.
func (d *Dev) SetOrientation(o Orientation) error {
	if !o.Valid() {
		return fmt.Errorf("ili934x: invalid %s", o)
	}
	eh, err := d.begin()
	if err != nil {
		return err
	}
	setOrientation(eh, o)
	if err := d.end(eh, "set orientation"); err != nil {
		return err
	}
	d.orientation = o
	d.resize()
	return nil
}

// resize updates the geometry from the orientation.
func (d *Dev) resize() {
	w, h := d.orientation.EffectiveSize(d.nativeW, d.nativeH)
	d.rect = image.Rect(0, 0, w, h)
	if d.buffer == nil || d.buffer.Rect != d.rect {
		d.buffer = rgb565.NewImage(d.rect)
	}
	d.dirty = d.rect
}

// SetAddressWindow selects the inclusive rectangle (x0, y0)-(x1, y1) of the
// frame memory and opens a memory write into it.
//
// Exactly (x1-x0+1)*(y1-y0+1) pixels must then be sent with StreamPixels.
// Any other command closes the window, leaving the rest of it unchanged.
func (d *Dev) SetAddressWindow(x0, y0, x1, y1 int) error {
	if x0 < 0 || y0 < 0 || x1 < x0 || y1 < y0 || x1 >= d.rect.Dx() || y1 >= d.rect.Dy() {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) on a %dx%d screen", ErrInvalidGeometry, x0, y0, x1, y1, d.rect.Dx(), d.rect.Dy())
	}
	eh, err := d.begin()
	if err != nil {
		return err
	}
	r := image.Rect(x0, y0, x1+1, y1+1)
	setAddressWindow(eh, r)
	if err := d.end(eh, "set address window"); err != nil {
		return err
	}
	d.pending = r.Dx() * r.Dy()
	return nil
}

// StreamPixels sends pixels into the window opened by SetAddressWindow. It
// can be called multiple times until the window is full.
func (d *Dev) StreamPixels(pixels []rgb565.Color) error {
	if err := d.checkStream(len(pixels)); err != nil {
		return err
	}
	if d.scratch == nil {
		d.scratch = make([]byte, max(d.maxTxSize&^1, 2))
	}
	for len(pixels) != 0 {
		n := min(len(pixels), len(d.scratch)/2)
		for i, c := range pixels[:n] {
			d.scratch[2*i], d.scratch[2*i+1] = c.Wire()
		}
		if err := d.stream(d.scratch[:2*n]); err != nil {
			return err
		}
		pixels = pixels[n:]
	}
	return nil
}

func (d *Dev) checkStream(n int) error {
	if d.broken {
		return ErrResetRequired
	}
	if d.pending == 0 {
		return ErrNoWindow
	}
	if n > d.pending {
		return fmt.Errorf("%w: %d pixels, %d expected", ErrStreamOverrun, n, d.pending)
	}
	return nil
}

// stream sends wire ordered pixels and closes the window once it is full.
func (d *Dev) stream(p []byte) error {
	eh := errorHandler{d: d}
	eh.streamData(p)
	d.pending -= len(p) / 2
	if d.pending == 0 {
		eh.endMemoryWrite()
	}
	return d.end(&eh, "stream pixels")
}

// DrawImage copies src into the staging frame, row by row, converting each
// pixel to rgb565. src.Bounds().Min is aligned on the top left corner of the
// screen. Nothing is sent until SendFrame.
func (d *Dev) DrawImage(src image.Image) {
	d.stage(d.rect, src, src.Bounds().Min)
}

// Draw implements display.Drawer.
//
// The image is staged then the changed area is sent, so that partial updates
// only transmit the pixels within dstRect.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	d.stage(dstRect, src, srcPts)
	return d.SendFrame(false)
}

// stage is draw.Draw with draw.Src into the staging frame.
func (d *Dev) stage(r image.Rectangle, src image.Image, sp image.Point) {
	orig := r.Min
	r = r.Intersect(d.rect).Intersect(src.Bounds().Add(orig.Sub(sp)))
	if r.Empty() {
		return
	}
	sp = sp.Add(r.Min.Sub(orig))
	w := r.Dx()
	if img, ok := src.(*rgb565.Image); ok {
		// Same encoding: fast path!
		for y := 0; y < r.Dy(); y++ {
			do := d.buffer.PixOffset(r.Min.X, r.Min.Y+y)
			so := img.PixOffset(sp.X, sp.Y+y)
			copy(d.buffer.Pix[do:do+2*w], img.Pix[so:so+2*w])
		}
	} else {
		for y := 0; y < r.Dy(); y++ {
			o := d.buffer.PixOffset(r.Min.X, r.Min.Y+y)
			for x := 0; x < w; x++ {
				c := rgb565.FromColor(src.At(sp.X+x, sp.Y+y))
				d.buffer.Pix[o], d.buffer.Pix[o+1] = c.Wire()
				o += 2
			}
		}
	}
	d.dirty = d.dirty.Union(r)
}

// FillRect sets r to c in the staging frame.
func (d *Dev) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(d.rect)
	if r.Empty() {
		return
	}
	d.buffer.Fill(r, rgb565.FromColor(c))
	d.dirty = d.dirty.Union(r)
}

// Clear sets the whole staging frame to c.
func (d *Dev) Clear(c color.Color) {
	d.FillRect(d.rect, c)
}

// SendFrame sends the staging frame to the controller.
//
// With fullRefresh the whole screen is sent. Otherwise only the bounding
// rectangle of what changed since the previous SendFrame is sent, which is
// nothing when the frame is unchanged.
func (d *Dev) SendFrame(fullRefresh bool) error {
	r := d.rect
	if !fullRefresh {
		r = d.dirty
		if r.Empty() {
			return nil
		}
	}
	if err := d.SetAddressWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1); err != nil {
		return err
	}
	var err error
	if r.Dx() == d.rect.Dx() {
		// Full rows are contiguous.
		start := d.buffer.PixOffset(r.Min.X, r.Min.Y)
		err = d.stream(d.buffer.Pix[start : start+2*r.Dx()*r.Dy()])
	} else {
		err = d.buffer.Rows(r, d.stream)
	}
	if err != nil {
		return err
	}
	d.dirty = image.Rectangle{}
	return nil
}

// Write sends a full frame of wire ordered rgb565 pixels, as found in
// rgb565.Image.Pix.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer.Pix) {
		return 0, fmt.Errorf("ili934x: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer.Pix), len(pixels))
	}
	copy(d.buffer.Pix, pixels)
	if err := d.SendFrame(true); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetBacklight switches the backlight, when a Backlight pin was provided.
func (d *Dev) SetBacklight(on bool) error {
	if d.bl == nil {
		return errors.New("ili934x: no backlight pin")
	}
	return d.bl.Out(gpio.Level(on))
}

// Halt implements conn.Resource.
//
// It turns the display off and puts the controller to sleep. Reset wakes it
// up again.
func (d *Dev) Halt() error {
	eh := errorHandler{d: d}
	if d.pending != 0 {
		d.pending = 0
		eh.endMemoryWrite()
	}
	sleepPanel(&eh)
	if d.bl != nil && eh.err == nil {
		eh.err = d.bl.Out(gpio.Low)
	}
	if eh.err != nil {
		d.broken = true
		return &TransportError{Op: "halt", Err: eh.err}
	}
	return nil
}

// begin returns an errorHandler after closing any open address window.
func (d *Dev) begin() (*errorHandler, error) {
	if d.broken {
		return nil, ErrResetRequired
	}
	eh := &errorHandler{d: d}
	if d.pending != 0 {
		// A new command ends the memory write anyway.
		d.pending = 0
		eh.endMemoryWrite()
	}
	return eh, nil
}

// end turns the error latched by eh into a TransportError.
func (d *Dev) end(eh *errorHandler, op string) error {
	if eh.err == nil {
		return nil
	}
	d.pending = 0
	d.broken = true
	return &TransportError{Op: op, Err: eh.err}
}

var _ display.Drawer = (*Dev)(nil)
var _ fmt.Stringer = (*Dev)(nil)
