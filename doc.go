// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcd is a container for color LCD panel drivers.
//
// ili934x drives the ILI9341 and ILI9342 controllers over SPI, screen2d
// previews a frame in the terminal.
package lcd
