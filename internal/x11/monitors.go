package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor is one active CRTC in root-window coordinates.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Monitors lists the active monitors via XRandR.
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if !crtcActive(int(info.Width), int(info.Height), len(info.Outputs)) {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		out, err := randr.GetOutputInfo(c.conn(), info.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// crtcActive reports whether a CRTC drives at least one output.
func crtcActive(width, height, outputs int) bool {
	return width > 0 && height > 0 && outputs > 0
}
