package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
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

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// PrimaryMonitor returns the RandR primary output. Without a primary output
// it falls back to the first active monitor, then to the whole X screen.
func (c *Connection) PrimaryMonitor() Monitor {
	if mon, ok := c.randrPrimary(); ok {
		return mon
	}
	if monitors, err := c.GetMonitors(); err == nil && len(monitors) > 0 {
		return monitors[0]
	}
	screen := c.XUtil.Screen()
	return Monitor{
		Name:   "screen",
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}
}

func (c *Connection) randrPrimary() (Monitor, bool) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return Monitor{}, false
	}

	primary, err := randr.GetOutputPrimary(conn, c.Root).Reply()
	if err != nil || primary.Output == 0 {
		return Monitor{}, false
	}

	output, err := randr.GetOutputInfo(conn, primary.Output, xproto.TimeCurrentTime).Reply()
	if err != nil || output.Crtc == 0 {
		return Monitor{}, false
	}

	crtc, err := randr.GetCrtcInfo(conn, output.Crtc, xproto.TimeCurrentTime).Reply()
	if err != nil || crtc.Width == 0 || crtc.Height == 0 {
		return Monitor{}, false
	}

	return Monitor{
		Name:   string(output.Name),
		X:      int(crtc.X),
		Y:      int(crtc.Y),
		Width:  int(crtc.Width),
		Height: int(crtc.Height),
	}, true
}
