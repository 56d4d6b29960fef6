package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/BeatGlow/oledhid"
)

func main() {
	var (
		pathFlag     = flag.String("path", os.Getenv("DEVICE_PATH"), "HID device path (default $DEVICE_PATH)")
		vidFlag      = flag.String("vid", os.Getenv("DEVICE_VENDOR_ID"), "vendor ID, e.g. 0x4653 (default $DEVICE_VENDOR_ID)")
		pidFlag      = flag.String("pid", os.Getenv("DEVICE_PRODUCT_ID"), "product ID (default $DEVICE_PRODUCT_ID)")
		usageFlag    = flag.String("usage-page", envDefault("DEVICE_USAGE_PAGE", "0xff60"), "usage page (default $DEVICE_USAGE_PAGE)")
		widthFlag    = flag.Int("width", oledhid.DefaultWidth, "panel width")
		heightFlag   = flag.Int("height", oledhid.DefaultHeight, "panel height")
		intervalFlag = flag.Duration("interval", time.Second, "refresh interval")
		sizeFlag     = flag.Float64("size", 8, "text point size")
	)
	flag.Parse()

	config := &oledhid.Config{
		Width:  *widthFlag,
		Height: *heightFlag,
	}
	screen, err := openScreen(config, *pathFlag, *vidFlag, *pidFlag, *usageFlag)
	if err != nil {
		fatal(err)
	}
	defer screen.Close()

	ticker := time.NewTicker(*intervalFlag)
	defer ticker.Stop()

	for {
		if err := redraw(screen, *sizeFlag); err != nil {
			fatal(err)
		}
		<-ticker.C
	}
}

// redraw paints the current system stats as short label/value line pairs,
// narrow enough for portrait panels.
func redraw(screen *oledhid.Screen, size float64) error {
	var (
		cpuValue = "?"
		memValue = "?"
		upValue  = "?"
	)
	if v, err := cpu.Percent(0, false); err == nil && len(v) > 0 {
		cpuValue = fmt.Sprintf("%.0f%%", v[0])
	}
	if v, err := mem.VirtualMemory(); err == nil {
		memValue = fmt.Sprintf("%.0f%%", v.UsedPercent)
	}
	if v, err := host.Uptime(); err == nil {
		upValue = formatUptime(v)
	}

	screen.Clear()
	step := int(size) + 4
	for i, line := range []string{"cpu", cpuValue, "mem", memValue, "up", upValue} {
		if err := screen.DrawText(line, 0, i*step, size, nil); err != nil {
			return err
		}
	}
	return screen.Send()
}

func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd%dh", d/(24*time.Hour), d%(24*time.Hour)/time.Hour)
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", d/time.Hour, d%time.Hour/time.Minute)
	default:
		return fmt.Sprintf("%dm", d/time.Minute)
	}
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
