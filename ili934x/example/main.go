// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// example draws a test card on an ILI9341 or ILI9342 panel.
//
// With -sim no hardware is used: the SPI traffic is recorded and the frame
// is previewed in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/GermanBionicSystems/lcd/ili934x"
	"github.com/GermanBionicSystems/lcd/screen2d"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-isatty"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/host/v3"
)

func main() {
	spiName := flag.String("spi", "", "SPI port to use")
	dcName := flag.String("dc", "GPIO25", "data/command pin")
	rstName := flag.String("rst", "GPIO24", "reset pin")
	csName := flag.String("cs", "", "chip select pin, when not driven by the SPI port")
	blName := flag.String("bl", "", "backlight pin")
	variant := flag.String("variant", "ILI9341", "controller, ILI9341 or ILI9342")
	orientation := flag.Int("orientation", 0, "0: portrait, 1: landscape, 2: portrait flipped, 3: landscape flipped")
	text := flag.String("text", "periph", "text to draw")
	sim := flag.Bool("sim", false, "simulate the panel in the terminal")
	flag.Parse()

	opts := ili934x.DefaultOpts
	switch strings.ToUpper(*variant) {
	case "ILI9341":
		opts.Variant = &ili934x.ILI9341
	case "ILI9342":
		opts.Variant = &ili934x.ILI9342
	default:
		log.Fatalf("unknown variant %q", *variant)
	}
	opts.Orientation = ili934x.Orientation(*orientation)

	var port spi.Port
	var dc, rst gpio.PinOut
	rec := &spitest.Record{}
	if *sim {
		port = rec
		dc = &gpiotest.Pin{N: "DC"}
		rst = &gpiotest.Pin{N: "RST"}
	} else {
		if _, err := host.Init(); err != nil {
			log.Fatal(err)
		}
		p, err := spireg.Open(*spiName)
		if err != nil {
			log.Fatal(err)
		}
		defer p.Close()
		port = p
		if dc, err = pin(*dcName); err != nil {
			log.Fatal(err)
		}
		if rst, err = pin(*rstName); err != nil {
			log.Fatal(err)
		}
		if *csName != "" {
			if opts.CS, err = pin(*csName); err != nil {
				log.Fatal(err)
			}
		}
		if *blName != "" {
			if opts.Backlight, err = pin(*blName); err != nil {
				log.Fatal(err)
			}
		}
	}

	dev, err := ili934x.NewSPI(port, dc, rst, &opts)
	if err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}
	fmt.Printf("device=%s\n", dev)

	img, err := testCard(dev.Bounds(), *text)
	if err != nil {
		log.Fatal(err)
	}
	dev.DrawImage(img)
	if err := dev.SendFrame(true); err != nil {
		log.Fatal(err)
	}

	if !*sim {
		return
	}
	n := 0
	for _, op := range rec.Ops {
		n += len(op.W)
	}
	fmt.Printf("sent %d bytes in %d transfers\n", n, len(rec.Ops))
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}
	r := dev.Bounds()
	preview, err := screen2d.New(&screen2d.Opts{W: r.Dx(), H: r.Dy(), X: r.Dx() / 4, Y: r.Dy() / 8})
	if err != nil {
		log.Fatal(err)
	}
	// Shows the frame after the rgb565 quantization.
	if err := preview.Draw(r, dev.Buffer(), image.Point{}); err != nil {
		log.Fatal(err)
	}
	_ = preview.Halt()
}

func pin(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.New("invalid pin " + name)
	}
	return p, nil
}

// testCard renders a gradient, a few circles and text, which makes banding
// and wrong byte order obvious.
func testCard(r image.Rectangle, text string) (image.Image, error) {
	w, h := float64(r.Dx()), float64(r.Dy())
	dc := gg.NewContext(r.Dx(), r.Dy())
	g := gg.NewLinearGradient(0, 0, w, h)
	g.AddColorStop(0, image.Black.C)
	g.AddColorStop(0.5, image.White.C)
	g.AddColorStop(1, image.Black.C)
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	for i, c := range [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawCircle(w*float64(i+1)/4, h/4, min(w, h)/10)
		dc.Fill()
	}

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: h / 10}))
	dc.SetRGB(1, 1, 0)
	dc.DrawStringAnchored(text, w/2, h*3/4, 0.5, 0.5)
	return dc.Image(), nil
}
