// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ili934x

import (
	"testing"

	"tinygo.org/x/drivers"
)

func TestOrientation(t *testing.T) {
	for _, tc := range []struct {
		o         Orientation
		name      string
		flags     MemoryAccessFlags
		landscape bool
		w, h      int
		rotation  drivers.Rotation
	}{
		{PortraitNormal, "PortraitNormal", MX | BGR, false, 300, 200, drivers.Rotation0},
		{LandscapeNormal, "LandscapeNormal", MV | BGR, true, 200, 300, drivers.Rotation90},
		{PortraitFlipped, "PortraitFlipped", MY | BGR, false, 300, 200, drivers.Rotation180},
		{LandscapeFlipped, "LandscapeFlipped", MV | BGR | MY | MX, true, 200, 300, drivers.Rotation270},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.o.Valid() {
				t.Fatal("Valid() = false")
			}
			if got := tc.o.String(); got != tc.name {
				t.Errorf("String() = %q", got)
			}
			if got := tc.o.Flags(); got != tc.flags {
				t.Errorf("Flags() = %#02x, want %#02x", got, tc.flags)
			}
			if got := tc.o.Flags() & BGR; got != BGR {
				t.Error("BGR is not set")
			}
			if got := tc.o.Landscape(); got != tc.landscape {
				t.Errorf("Landscape() = %t", got)
			}
			if w, h := tc.o.EffectiveSize(300, 200); w != tc.w || h != tc.h {
				t.Errorf("EffectiveSize(300, 200) = %d, %d, want %d, %d", w, h, tc.w, tc.h)
			}
			if got := tc.o.Rotation(); got != tc.rotation {
				t.Errorf("Rotation() = %d", got)
			}
			o, err := OrientationFromRotation(tc.rotation)
			if err != nil || o != tc.o {
				t.Errorf("OrientationFromRotation(%d) = %s, %v", tc.rotation, o, err)
			}
		})
	}
}

func TestOrientationInvalid(t *testing.T) {
	o := Orientation(4)
	if o.Valid() {
		t.Fatal("Valid() = true")
	}
	if got := o.String(); got != "Orientation(4)" {
		t.Errorf("String() = %q", got)
	}
	if _, err := OrientationFromRotation(drivers.Rotation90Mirror); err == nil {
		t.Error("OrientationFromRotation(Rotation90Mirror) succeeded")
	}
}
