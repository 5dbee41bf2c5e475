package platform

import "fmt"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// String formats the id the way X tools print window ids.
func (w WindowID) String() string {
	return fmt.Sprintf("0x%x", uint32(w))
}

// Point is a position in root-window coordinates.
type Point struct {
	X int
	Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a window extent, excluding the border.
type Size struct {
	Width  int
	Height int
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the extent of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Attributes is the subset of a window's server-side state the manager
// inspects before taking ownership of it.
type Attributes struct {
	Geometry         Rect
	OverrideRedirect bool
	Viewable         bool
}

// FrameStyle holds the decoration shared by every frame.
type FrameStyle struct {
	BorderWidth     int
	BorderColor     uint32
	BackgroundColor uint32
}

// ConfigMask selects which WindowChanges fields a configure applies.
// Bit values match the core protocol's ConfigWindow mask.
type ConfigMask uint16

const (
	ConfigX ConfigMask = 1 << iota
	ConfigY
	ConfigWidth
	ConfigHeight
	ConfigBorderWidth
	ConfigSibling
	ConfigStackMode
)

// Has reports whether every bit of flag is set in m.
func (m ConfigMask) Has(flag ConfigMask) bool {
	return m&flag == flag
}

// WindowChanges carries the values of a configure request. Only fields
// selected by the accompanying ConfigMask are meaningful.
type WindowChanges struct {
	X           int
	Y           int
	Width       int
	Height      int
	BorderWidth int
	Sibling     WindowID
	StackMode   int
}

// ButtonState is the key-and-button bitmask carried by pointer events.
type ButtonState uint16

const (
	Button1Mask ButtonState = 1 << 8
	Button2Mask ButtonState = 1 << 9
	Button3Mask ButtonState = 1 << 10
)

// Has reports whether every bit of mask is set in s.
func (s ButtonState) Has(mask ButtonState) bool {
	return s&mask == mask
}

// Session abstracts the display-server connection the window manager drives.
// Implementations are used from a single goroutine.
type Session interface {
	Root() WindowID

	Attributes(w WindowID) (Attributes, error)
	Geometry(w WindowID) (Rect, error)
	TopLevelWindows() (root WindowID, children []WindowID, err error)

	CreateFrame(bounds Rect, style FrameStyle) (WindowID, error)
	DestroyWindow(w WindowID) error
	SelectSubstructure(w WindowID) error
	AddToSaveSet(w WindowID) error
	RemoveFromSaveSet(w WindowID) error
	Reparent(w, parent WindowID, x, y int) error
	Map(w WindowID) error
	Unmap(w WindowID) error
	Raise(w WindowID) error

	Configure(w WindowID, mask ConfigMask, changes WindowChanges) error
	Move(w WindowID, pos Point) error
	Resize(w WindowID, size Size) error

	GrabButton(w WindowID, binding string) error
	GrabKey(w WindowID, binding string) error

	GrabServer() error
	UngrabServer() error

	// NextEvent blocks until the next event is available. A nil event with
	// a nil error means the connection is gone.
	NextEvent() (Event, error)
}
