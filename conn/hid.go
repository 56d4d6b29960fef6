package conn

import (
	"errors"
	"fmt"

	"github.com/karalabe/hid"
)

// Errors.
var (
	ErrNotFound = errors.New("oledhid: no matching HID device")
)

// HID is a connection to a raw HID device.
type HID struct {
	dev  *hid.Device
	info hid.DeviceInfo
}

// Open connects to the first HID device matching the vendor ID, product ID
// and usage page triple. QMK keyboards expose their raw HID interface on
// usage page 0xff60.
func Open(vendorID, productID, usagePage uint16) (*HID, error) {
	for _, info := range hid.Enumerate(vendorID, productID) {
		if info.UsagePage != usagePage {
			continue
		}
		return open(info)
	}
	return nil, ErrNotFound
}

// OpenPath connects to the HID device with the given platform path.
func OpenPath(path string) (*HID, error) {
	for _, info := range hid.Enumerate(0, 0) {
		if info.Path != path {
			continue
		}
		return open(info)
	}
	return nil, ErrNotFound
}

func open(info hid.DeviceInfo) (*HID, error) {
	dev, err := info.Open()
	if err != nil {
		return nil, fmt.Errorf("oledhid: open %s: %w", info.Path, err)
	}
	return &HID{
		dev:  dev,
		info: info,
	}, nil
}

func (c *HID) String() string {
	return fmt.Sprintf("HID device %04x:%04x on usage page %#04x", c.info.VendorID, c.info.ProductID, c.info.UsagePage)
}

func (c *HID) Write(p []byte) (int, error) {
	return c.dev.Write(p)
}

func (c *HID) Close() error {
	return c.dev.Close()
}
