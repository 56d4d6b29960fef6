package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"

	"github.com/BeatGlow/oledhid"
	"github.com/BeatGlow/oledhid/conn"
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
		imageFlag  = flag.String("image", "", "image file to draw")
		sizingFlag = flag.String("sizing", "contain", "image sizing policy (contain, cover, original)")
		textFlag   = flag.String("text", "", "text to draw")
		sizeFlag   = flag.Float64("size", 8, "text point size")
		xFlag      = flag.Int("x", 0, "draw X offset")
		yFlag      = flag.Int("y", 0, "draw Y offset")
		fillFlag   = flag.Bool("fill", false, "fill the panel before drawing")
		regionFlag = flag.String("region", "", "paint a region before drawing, as x0,y0,x1,y1")
		dumpFlag   = flag.Bool("dump", false, "dry run: print the frame instead of opening a device")
	)
	flag.Parse()

	sizing, err := draw.ParseSizing(*sizingFlag)
	if err != nil {
		fatal(err)
	}

	config := &oledhid.Config{
		Width:  *widthFlag,
		Height: *heightFlag,
	}

	var screen *oledhid.Screen
	switch {
	case *dumpFlag:
		screen, err = oledhid.New(new(conn.Recorder), config)
	case *pathFlag != "":
		screen, err = oledhid.OpenPath(*pathFlag, config)
	case *vidFlag != "" && *pidFlag != "":
		screen, err = oledhid.Open(parseID(*vidFlag), parseID(*pidFlag), parseID(*usageFlag), config)
	default:
		err = errors.New("no device specified, use -path or -vid and -pid (or -dump)")
	}
	if err != nil {
		fatal(err)
	}
	defer screen.Close()

	if *fillFlag {
		screen.Fill(true)
	}

	if *regionFlag != "" {
		r, err := parseRegion(*regionFlag)
		if err != nil {
			fatal(err)
		}
		screen.PaintRegion(r, true)
	}

	if *imageFlag != "" {
		f, err := os.Open(*imageFlag)
		if err != nil {
			fatal(err)
		}
		img, format, err := image.Decode(f)
		_ = f.Close()
		if err != nil {
			fatal(err)
		}
		fmt.Printf("drawing %s image %s with sizing %s\n", format, img.Bounds().Size(), sizing)
		screen.DrawImage(img, *xFlag, *yFlag, sizing)
	}

	if *textFlag != "" {
		if err := screen.DrawText(*textFlag, *xFlag, *yFlag, *sizeFlag, nil); err != nil {
			fatal(err)
		}
	}

	if err := screen.Send(); err != nil {
		fatal(err)
	}
	if *dumpFlag {
		fmt.Println(screen)
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseRegion(s string) (image.Rectangle, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q, expected x0,y0,x1,y1", s)
	}
	var v [4]int
	for i, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q: %w", s, err)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
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
