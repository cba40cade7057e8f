// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import "errors"

var (
	// ErrInvalidGeometry is returned when an address window does not fit the
	// current screen size. Nothing was sent to the controller.
	ErrInvalidGeometry = errors.New("ili934x: invalid address window")
	// ErrStreamOverrun is returned when more pixels are streamed than the
	// open address window holds. Nothing was sent to the controller.
	ErrStreamOverrun = errors.New("ili934x: more pixels than the address window holds")
	// ErrNoWindow is returned when pixels are streamed without an open
	// address window.
	ErrNoWindow = errors.New("ili934x: no address window is open")
	// ErrResetRequired is returned after a transport failure. The address
	// counters of the controller are unknown until Reset succeeds.
	ErrResetRequired = errors.New("ili934x: controller state unknown, Reset is required")
)

// InitError is returned when the device could not be set up: a pin could
// not be claimed as output or the power up sequence failed.
type InitError struct {
	Op  string
	Err error
}

func (e *InitError) Error() string {
	return "ili934x: init: " + e.Op + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// TransportError is returned when writing to a pin or the bus failed in the
// middle of a transaction. The frame is lost and Reset must be called before
// the device is used again.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "ili934x: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
