// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ili934x controls a QVGA color LCD via an ILI9341 or ILI9342
// controller over a 4-wire SPI bus.
//
// Pixels are 16 bits, in the rgb565 format. Drawing happens in two steps:
// DrawImage, FillRect and SetPixel change a staging frame in memory, then
// SendFrame transmits it. SendFrame(false) only sends the smallest rectangle
// covering what changed, which matters at the ~150kB a full frame takes.
//
// The orientation is applied by the controller through its Memory Access
// Control register, the staging frame is always in screen coordinates.
//
// Dev performs no locking. Calls into one Dev must be serialized by the
// caller, and the SPI port and pins must not be shared with another Dev.
//
// # Errors
//
// New and NewSPI return an *InitError. A failed write to a pin or the bus
// returns a *TransportError; the controller state is then unknown and
// SetOrientation, SetAddressWindow, StreamPixels and SendFrame return
// ErrResetRequired until Reset succeeds. Nothing is retried.
//
// # Datasheets
//
// ILI9341
//
// https://cdn-shop.adafruit.com/datasheets/ILI9341.pdf
//
// ILI9342C
//
// https://m5stack.oss-cn-shenzhen.aliyuncs.com/resource/docs/datasheet/core/ILI9342C-ILITEK.pdf
package ili934x
