package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Geometry is a window's position and size relative to its parent.
type Geometry struct {
	X, Y          int
	Width, Height int
	BorderWidth   int
}

// WindowAttributes bundles the attributes and geometry of a window.
type WindowAttributes struct {
	Geometry
	OverrideRedirect bool
	MapState         byte
}

// Viewable reports whether the window and all its ancestors are mapped.
func (a WindowAttributes) Viewable() bool {
	return a.MapState == xproto.MapStateViewable
}

// GetGeometry queries the current geometry of a window.
func (c *Connection) GetGeometry(windowID xproto.Window) (Geometry, error) {
	reply, err := xproto.GetGeometry(c.conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get geometry of window 0x%x: %w", windowID, err)
	}
	return Geometry{
		X:           int(reply.X),
		Y:           int(reply.Y),
		Width:       int(reply.Width),
		Height:      int(reply.Height),
		BorderWidth: int(reply.BorderWidth),
	}, nil
}

// GetWindowAttributes queries attributes and geometry. Both requests are
// sent before either reply is awaited.
func (c *Connection) GetWindowAttributes(windowID xproto.Window) (WindowAttributes, error) {
	attrCookie := xproto.GetWindowAttributes(c.conn(), windowID)
	geomCookie := xproto.GetGeometry(c.conn(), xproto.Drawable(windowID))

	attrs, err := attrCookie.Reply()
	if err != nil {
		// Drain the geometry reply so it doesn't linger.
		_, _ = geomCookie.Reply()
		return WindowAttributes{}, fmt.Errorf("failed to get attributes of window 0x%x: %w", windowID, err)
	}
	geom, err := geomCookie.Reply()
	if err != nil {
		return WindowAttributes{}, fmt.Errorf("failed to get geometry of window 0x%x: %w", windowID, err)
	}

	return WindowAttributes{
		Geometry: Geometry{
			X:           int(geom.X),
			Y:           int(geom.Y),
			Width:       int(geom.Width),
			Height:      int(geom.Height),
			BorderWidth: int(geom.BorderWidth),
		},
		OverrideRedirect: attrs.OverrideRedirect,
		MapState:         attrs.MapState,
	}, nil
}

// QueryTree lists the children of a window in bottom-to-top stacking order.
func (c *Connection) QueryTree(windowID xproto.Window) (root xproto.Window, children []xproto.Window, err error) {
	reply, err := xproto.QueryTree(c.conn(), windowID).Reply()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query tree of window 0x%x: %w", windowID, err)
	}
	return reply.Root, reply.Children, nil
}

// CreateSimpleWindow creates an unmapped input-output child of the root with
// the root's depth and visual, a solid background and a solid border.
func (c *Connection) CreateSimpleWindow(x, y, width, height, borderWidth int, borderPixel, backPixel uint32) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(c.conn())
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	screen := c.XUtil.Screen()
	xproto.CreateWindow(c.conn(), screen.RootDepth, wid, c.Root,
		int16(x), int16(y), uint16(width), uint16(height), uint16(borderWidth),
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel,
		[]uint32{backPixel, borderPixel})
	return wid, nil
}

// SelectInput replaces this client's event mask on a window.
func (c *Connection) SelectInput(windowID xproto.Window, mask uint32) {
	xproto.ChangeWindowAttributes(c.conn(), windowID, xproto.CwEventMask, []uint32{mask})
}

// ChangeSaveSet inserts or deletes a window from the save-set.
func (c *Connection) ChangeSaveSet(windowID xproto.Window, insert bool) {
	mode := byte(xproto.SetModeDelete)
	if insert {
		mode = xproto.SetModeInsert
	}
	xproto.ChangeSaveSet(c.conn(), mode, windowID)
}

// ReparentWindow moves a window under a new parent at the given offset.
func (c *Connection) ReparentWindow(windowID, parent xproto.Window, x, y int) {
	xproto.ReparentWindow(c.conn(), windowID, parent, int16(x), int16(y))
}

// MapWindow maps a window.
func (c *Connection) MapWindow(windowID xproto.Window) {
	xproto.MapWindow(c.conn(), windowID)
}

// UnmapWindow unmaps a window.
func (c *Connection) UnmapWindow(windowID xproto.Window) {
	xproto.UnmapWindow(c.conn(), windowID)
}

// DestroyWindow destroys a window and its subwindows.
func (c *Connection) DestroyWindow(windowID xproto.Window) {
	xproto.DestroyWindow(c.conn(), windowID)
}

// ConfigureWindow applies the masked changes to a window.
func (c *Connection) ConfigureWindow(windowID xproto.Window, mask uint16, changes ConfigureChanges) {
	xproto.ConfigureWindow(c.conn(), windowID, mask, configureValues(mask, changes))
}

// MoveWindow moves a window without resizing it.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) {
	c.ConfigureWindow(windowID, xproto.ConfigWindowX|xproto.ConfigWindowY,
		ConfigureChanges{X: x, Y: y})
}

// ResizeWindow resizes a window without moving it.
func (c *Connection) ResizeWindow(windowID xproto.Window, width, height int) {
	c.ConfigureWindow(windowID, xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		ConfigureChanges{Width: width, Height: height})
}

// RaiseWindow puts a window on top of its siblings.
func (c *Connection) RaiseWindow(windowID xproto.Window) {
	c.ConfigureWindow(windowID, xproto.ConfigWindowStackMode,
		ConfigureChanges{StackMode: xproto.StackModeAbove})
}

// GrabServer blocks processing of requests from every other client.
func (c *Connection) GrabServer() {
	c.XUtil.Grab()
}

// UngrabServer releases GrabServer and flushes the queued requests.
func (c *Connection) UngrabServer() {
	c.XUtil.Ungrab()
	c.XUtil.Sync()
}
