// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import (
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// controller is the physical signaling shared by the ILI934x family: a
// command byte sent with dc low followed by its payload sent with dc high,
// both inside one chip select assertion.
type controller interface {
	hardReset()
	sendCommand(cmd byte, data []byte)
	// beginMemoryWrite sends Memory Write and leaves the transaction open for
	// streamData.
	beginMemoryWrite()
	streamData(p []byte)
	endMemoryWrite()
	delay(d time.Duration)
}

// resetPanel pulses the reset line and replays the power up sequence.
func resetPanel(ctrl controller, init []command) {
	ctrl.hardReset()
	for _, c := range init {
		ctrl.sendCommand(c.cmd, c.data)
		if c.delay != 0 {
			ctrl.delay(c.delay)
		}
	}
}

func setOrientation(ctrl controller, o Orientation) {
	ctrl.sendCommand(cmdMemoryAccessControl, []byte{byte(o.Flags())})
}

// setAddressWindow opens a memory write into r. r.Max is exclusive, the
// controller bounds are inclusive.
func setAddressWindow(ctrl controller, r image.Rectangle) {
	ctrl.sendCommand(cmdColumnAddressSet, addressBounds(r.Min.X, r.Max.X-1))
	ctrl.sendCommand(cmdPageAddressSet, addressBounds(r.Min.Y, r.Max.Y-1))
	ctrl.beginMemoryWrite()
}

func addressBounds(start, end int) []byte {
	return []byte{byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
}

func sleepPanel(ctrl controller) {
	ctrl.sendCommand(cmdDisplayOff, nil)
	ctrl.sendCommand(cmdSleepIn, nil)
	ctrl.delay(5 * time.Millisecond)
}

// errorHandler drives the pins and the bus of a Dev. It stops at the first
// error, which is kept in err.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

// csOut is a no-op when the port drives chip select by itself.
func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil || eh.d.cs == nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

// cTx writes w in chunks the bus accepts.
func (eh *errorHandler) cTx(w []byte) {
	for len(w) != 0 && eh.err == nil {
		n := min(len(w), eh.d.maxTxSize)
		eh.err = eh.d.c.Tx(w[:n], nil)
		w = w[n:]
	}
}

func (eh *errorHandler) delay(d time.Duration) {
	if eh.err != nil {
		return
	}
	sleep(d)
}

// hardReset holds the active low reset line for 20ms. The controller needs
// up to 120ms to come out of reset when it was in sleep out mode.
func (eh *errorHandler) hardReset() {
	eh.rstOut(gpio.High)
	eh.delay(5 * time.Millisecond)
	eh.rstOut(gpio.Low)
	eh.delay(20 * time.Millisecond)
	eh.rstOut(gpio.High)
	eh.delay(150 * time.Millisecond)
}

func (eh *errorHandler) sendCommand(cmd byte, data []byte) {
	eh.csOut(gpio.Low)
	eh.dcOut(gpio.Low)
	eh.cTx([]byte{cmd})
	if len(data) != 0 {
		eh.dcOut(gpio.High)
		eh.cTx(data)
	}
	eh.csOut(gpio.High)
}

func (eh *errorHandler) beginMemoryWrite() {
	eh.csOut(gpio.Low)
	eh.dcOut(gpio.Low)
	eh.cTx([]byte{cmdMemoryWrite})
	eh.dcOut(gpio.High)
}

func (eh *errorHandler) streamData(p []byte) {
	eh.cTx(p)
}

func (eh *errorHandler) endMemoryWrite() {
	eh.csOut(gpio.High)
}

var sleep = time.Sleep

var _ controller = (*errorHandler)(nil)
