package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	godraw "image/draw"
	"image/gif"
	"os"
	"strconv"
	"time"

	"github.com/BeatGlow/oledhid"
	"github.com/BeatGlow/oledhid/draw"
)

func main() {
	var (
		pathFlag   = flag.String("path", os.Getenv("DEVICE_PATH"), "HID device path (default $DEVICE_PATH)")
		vidFlag    = flag.String("vid", os.Getenv("DEVICE_VENDOR_ID"), "vendor ID, e.g. 0x4653 (default $DEVICE_VENDOR_ID)")
		pidFlag    = flag.String("pid", os.Getenv("DEVICE_PRODUCT_ID"), "product ID (default $DEVICE_PRODUCT_ID)")
		usageFlag  = flag.String("usage-page", envDefault("DEVICE_USAGE_PAGE", "0xff60"), "usage page (default $DEVICE_USAGE_PAGE)")
		widthFlag  = flag.Int("width", oledhid.DefaultWidth, "panel width")
		heightFlag = flag.Int("height", oledhid.DefaultHeight, "panel height")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.gif>\n", os.Args[0])
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	anim, err := gif.DecodeAll(f)
	_ = f.Close()
	if err != nil {
		fatal(err)
	}
	if len(anim.Image) == 0 {
		fatal(fmt.Errorf("%s contains no frames", flag.Arg(0)))
	}

	config := &oledhid.Config{
		Width:  *widthFlag,
		Height: *heightFlag,
	}
	screen, err := openScreen(config, *pathFlag, *vidFlag, *pidFlag, *usageFlag)
	if err != nil {
		fatal(err)
	}
	defer screen.Close()

	fmt.Printf("playing %d frames, hit control-c to stop...\n", len(anim.Image))

	// Optimized GIFs store frames as patches of the logical screen.
	frame := image.NewRGBA(image.Rect(0, 0, anim.Config.Width, anim.Config.Height))
	for {
		for i, patch := range anim.Image {
			composite(frame, patch)
			screen.Clear()
			screen.DrawImage(frame, 0, 0, draw.Contain)
			if err := screen.Send(); err != nil {
				fatal(err)
			}

			// GIF delays count in 10ms units.
			delay := time.Duration(anim.Delay[i]) * 10 * time.Millisecond
			if delay <= 0 {
				delay = 100 * time.Millisecond
			}
			time.Sleep(delay)
		}
	}
}

func composite(frame *image.RGBA, patch image.Image) {
	godraw.Draw(frame, patch.Bounds(), patch, patch.Bounds().Min, godraw.Over)
}

func openScreen(config *oledhid.Config, path, vid, pid, usage string) (*oledhid.Screen, error) {
	switch {
	case path != "":
		return oledhid.OpenPath(path, config)
	case vid != "" && pid != "":
		return oledhid.Open(parseID(vid), parseID(pid), parseID(usage), config)
	default:
		return nil, errors.New("no device specified, use -path or -vid and -pid")
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseID(s string) uint16 {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		fatal(fmt.Errorf("invalid device ID %q: %w", s, err))
	}
	return uint16(v)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
