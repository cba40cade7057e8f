// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import "time"

// Commands, ILI9341 datasheet v1.11 chapter 8.
const (
	cmdNOP                    byte = 0x00
	cmdSoftwareReset          byte = 0x01
	cmdSleepIn                byte = 0x10
	cmdSleepOut               byte = 0x11
	cmdNormalDisplayModeOn    byte = 0x13
	cmdDisplayInversionOff    byte = 0x20
	cmdDisplayInversionOn     byte = 0x21
	cmdGammaSet               byte = 0x26
	cmdDisplayOff             byte = 0x28
	cmdDisplayOn              byte = 0x29
	cmdColumnAddressSet       byte = 0x2A
	cmdPageAddressSet         byte = 0x2B
	cmdMemoryWrite            byte = 0x2C
	cmdMemoryAccessControl    byte = 0x36
	cmdPixelFormatSet         byte = 0x3A
	cmdRGBInterfaceControl    byte = 0xB0
	cmdFrameRateControlNormal byte = 0xB1
	cmdDisplayFunctionControl byte = 0xB6
	cmdPowerControl1          byte = 0xC0
	cmdPowerControl2          byte = 0xC1
	cmdVCOMControl1           byte = 0xC5
	cmdVCOMControl2           byte = 0xC7
	cmdSetEXTC                byte = 0xC8
	cmdPowerControlA          byte = 0xCB
	cmdPowerControlB          byte = 0xCF
	cmdPositiveGamma          byte = 0xE0
	cmdNegativeGamma          byte = 0xE1
	cmdDriverTimingControlA   byte = 0xE8
	cmdDriverTimingControlB   byte = 0xEA
	cmdPowerOnSequenceControl byte = 0xED
	cmdEnable3Gamma           byte = 0xF2
	cmdInterfaceControl       byte = 0xF6
	cmdPumpRatioControl       byte = 0xF7
)

// pixelFormat16 selects 16 bits per pixel on both the RGB and MCU
// interfaces.
const pixelFormat16 = 0x55

// command is one transaction: a command byte, its payload and the time the
// controller needs before it accepts the next command.
type command struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// ili9341Init is the power up sequence for ILI9341 based modules. It is
// replayed after every hardware reset.
var ili9341Init = []command{
	{cmd: cmdSoftwareReset, delay: 150 * time.Millisecond},
	{cmd: cmdDisplayOff},
	{cmd: cmdPowerControlB, data: []byte{0x00, 0xC1, 0x30}},
	{cmd: cmdPowerOnSequenceControl, data: []byte{0x64, 0x03, 0x12, 0x81}},
	{cmd: cmdDriverTimingControlA, data: []byte{0x85, 0x00, 0x78}},
	{cmd: cmdPowerControlA, data: []byte{0x39, 0x2C, 0x00, 0x34, 0x02}},
	{cmd: cmdPumpRatioControl, data: []byte{0x20}},
	{cmd: cmdDriverTimingControlB, data: []byte{0x00, 0x00}},
	{cmd: cmdPowerControl1, data: []byte{0x23}},       // 4.60V
	{cmd: cmdPowerControl2, data: []byte{0x10}},       // DDVDH: VCIx2
	{cmd: cmdVCOMControl1, data: []byte{0x3E, 0x28}},  // VMH 4.25V, VML -1.5V
	{cmd: cmdVCOMControl2, data: []byte{0x86}},        // VMF: VMH-58, VML-58
	{cmd: cmdPixelFormatSet, data: []byte{pixelFormat16}},
	{cmd: cmdFrameRateControlNormal, data: []byte{0x00, 0x18}}, // 79Hz
	{cmd: cmdDisplayFunctionControl, data: []byte{0x08, 0x82, 0x27}},
	{cmd: cmdEnable3Gamma, data: []byte{0x00}},
	{cmd: cmdGammaSet, data: []byte{0x01}},
	{cmd: cmdPositiveGamma, data: []byte{0x0F, 0x31, 0x2B, 0x0C, 0x0E, 0x08, 0x4E, 0xF1, 0x37, 0x07, 0x10, 0x03, 0x0E, 0x09, 0x00}},
	{cmd: cmdNegativeGamma, data: []byte{0x00, 0x0E, 0x14, 0x03, 0x11, 0x07, 0x31, 0xC1, 0x48, 0x08, 0x0F, 0x0C, 0x31, 0x36, 0x0F}},
	// The controller ignores commands for 120ms after sleep out.
	{cmd: cmdSleepOut, delay: 120 * time.Millisecond},
	{cmd: cmdDisplayOn, delay: 20 * time.Millisecond},
}

// ili9342Init is the power up sequence for ILI9342C modules, as found on the
// M5Stack boards. The panel is wired for inverted colors.
var ili9342Init = []command{
	{cmd: cmdSoftwareReset, delay: 150 * time.Millisecond},
	{cmd: cmdSetEXTC, data: []byte{0xFF, 0x93, 0x42}},
	{cmd: cmdPowerControl1, data: []byte{0x12, 0x12}},
	{cmd: cmdPowerControl2, data: []byte{0x03}},
	{cmd: cmdVCOMControl1, data: []byte{0xF2}},
	{cmd: cmdRGBInterfaceControl, data: []byte{0xE0}},
	{cmd: cmdInterfaceControl, data: []byte{0x01, 0x00, 0x00}},
	{cmd: cmdPixelFormatSet, data: []byte{pixelFormat16}},
	{cmd: cmdPositiveGamma, data: []byte{0x00, 0x0C, 0x11, 0x04, 0x11, 0x08, 0x37, 0x89, 0x4C, 0x06, 0x0C, 0x0A, 0x2E, 0x34, 0x0F}},
	{cmd: cmdNegativeGamma, data: []byte{0x00, 0x0B, 0x11, 0x05, 0x13, 0x09, 0x33, 0x67, 0x48, 0x07, 0x0E, 0x0B, 0x2E, 0x33, 0x0F}},
	{cmd: cmdDisplayFunctionControl, data: []byte{0x08, 0x82, 0x1D, 0x04}},
	{cmd: cmdDisplayInversionOn},
	{cmd: cmdSleepOut, delay: 120 * time.Millisecond},
	{cmd: cmdDisplayOn, delay: 20 * time.Millisecond},
}
