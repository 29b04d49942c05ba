package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor is an active RandR output with its physical size.
type Monitor struct {
	ID       int
	Name     string
	X        int
	Y        int
	Width    int // pixels, as currently rotated
	Height   int
	WidthMM  int // physical panel size, unrotated; 0 when the output does not report it
	HeightMM int
	Rotation int // clockwise degrees
	Primary  bool
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		mon := Monitor{
			ID:       i,
			Name:     fmt.Sprintf("Monitor%d", i),
			X:        int(crtcInfo.X),
			Y:        int(crtcInfo.Y),
			Width:    int(crtcInfo.Width),
			Height:   int(crtcInfo.Height),
			Rotation: rotationDegrees(crtcInfo.Rotation),
			Primary:  crtcInfo.Outputs[0] == primary && primary != 0,
		}

		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			mon.Name = string(outputInfo.Name)
			mon.WidthMM = int(outputInfo.MmWidth)
			mon.HeightMM = int(outputInfo.MmHeight)
		}

		monitors = append(monitors, mon)
	}

	return monitors, nil
}

// rotationDegrees converts a RandR rotation mask to clockwise degrees.
// RandR rotates counter-clockwise, so Rotate_90 is a 270° clockwise turn.
func rotationDegrees(mask uint16) int {
	switch {
	case mask&randr.RotationRotate90 != 0:
		return 270
	case mask&randr.RotationRotate180 != 0:
		return 180
	case mask&randr.RotationRotate270 != 0:
		return 90
	default:
		return 0
	}
}
