package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/1broseidon/framewm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11Session wraps an X11 connection behind the platform Session interface.
// Requests without replies are sent unchecked; the server reports their
// failures asynchronously through the event stream, where the connection's
// running-phase policy logs them.
type X11Session struct {
	conn      *x11.Connection
	closeOnce sync.Once
}

var _ Session = (*X11Session)(nil)

// NewX11Session creates a session from an existing X11 connection.
func NewX11Session(conn *x11.Connection) *X11Session {
	return &X11Session{conn: conn}
}

// OpenX11Session opens a fresh connection to display and claims the window
// manager role on it. It fails with x11.ErrAnotherManager when the display
// is already managed.
func OpenX11Session(display string, logger *slog.Logger) (*X11Session, error) {
	conn, err := x11.NewConnection(display, logger)
	if err != nil {
		return nil, err
	}
	if err := conn.BecomeManager(); err != nil {
		conn.Close()
		return nil, err
	}
	return &X11Session{conn: conn}, nil
}

// Connection returns the underlying X11 connection.
func (s *X11Session) Connection() *x11.Connection {
	return s.conn
}

// Close disconnects from the display. A NextEvent blocked in another
// goroutine returns once the connection is closed. Safe to call more than
// once and from any goroutine.
func (s *X11Session) Close() {
	if s == nil || s.conn == nil {
		return
	}
	s.closeOnce.Do(s.conn.Close)
}

func (s *X11Session) Root() WindowID {
	return WindowID(s.conn.Root)
}

func (s *X11Session) Attributes(w WindowID) (Attributes, error) {
	attrs, err := s.conn.GetWindowAttributes(xproto.Window(w))
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		Geometry:         rectFromGeometry(attrs.Geometry),
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.Viewable(),
	}, nil
}

func (s *X11Session) Geometry(w WindowID) (Rect, error) {
	geom, err := s.conn.GetGeometry(xproto.Window(w))
	if err != nil {
		return Rect{}, err
	}
	return rectFromGeometry(geom), nil
}

func (s *X11Session) TopLevelWindows() (WindowID, []WindowID, error) {
	root, children, err := s.conn.QueryTree(s.conn.Root)
	if err != nil {
		return 0, nil, err
	}
	ids := make([]WindowID, 0, len(children))
	for _, c := range children {
		ids = append(ids, WindowID(c))
	}
	return WindowID(root), ids, nil
}

func (s *X11Session) CreateFrame(bounds Rect, style FrameStyle) (WindowID, error) {
	wid, err := s.conn.CreateSimpleWindow(bounds.X, bounds.Y, bounds.Width, bounds.Height,
		style.BorderWidth, style.BorderColor, style.BackgroundColor)
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

func (s *X11Session) DestroyWindow(w WindowID) error {
	s.conn.DestroyWindow(xproto.Window(w))
	return nil
}

func (s *X11Session) SelectSubstructure(w WindowID) error {
	s.conn.SelectInput(xproto.Window(w),
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify)
	return nil
}

func (s *X11Session) AddToSaveSet(w WindowID) error {
	s.conn.ChangeSaveSet(xproto.Window(w), true)
	return nil
}

func (s *X11Session) RemoveFromSaveSet(w WindowID) error {
	s.conn.ChangeSaveSet(xproto.Window(w), false)
	return nil
}

func (s *X11Session) Reparent(w, parent WindowID, x, y int) error {
	s.conn.ReparentWindow(xproto.Window(w), xproto.Window(parent), x, y)
	return nil
}

func (s *X11Session) Map(w WindowID) error {
	s.conn.MapWindow(xproto.Window(w))
	return nil
}

func (s *X11Session) Unmap(w WindowID) error {
	s.conn.UnmapWindow(xproto.Window(w))
	return nil
}

func (s *X11Session) Raise(w WindowID) error {
	s.conn.RaiseWindow(xproto.Window(w))
	return nil
}

func (s *X11Session) Configure(w WindowID, mask ConfigMask, changes WindowChanges) error {
	s.conn.ConfigureWindow(xproto.Window(w), uint16(mask), x11.ConfigureChanges{
		X:           changes.X,
		Y:           changes.Y,
		Width:       changes.Width,
		Height:      changes.Height,
		BorderWidth: changes.BorderWidth,
		Sibling:     xproto.Window(changes.Sibling),
		StackMode:   changes.StackMode,
	})
	return nil
}

func (s *X11Session) Move(w WindowID, pos Point) error {
	s.conn.MoveWindow(xproto.Window(w), pos.X, pos.Y)
	return nil
}

func (s *X11Session) Resize(w WindowID, size Size) error {
	s.conn.ResizeWindow(xproto.Window(w), size.Width, size.Height)
	return nil
}

func (s *X11Session) GrabButton(w WindowID, binding string) error {
	return s.conn.GrabButton(xproto.Window(w), binding)
}

func (s *X11Session) GrabKey(w WindowID, binding string) error {
	return s.conn.GrabKey(xproto.Window(w), binding)
}

func (s *X11Session) GrabServer() error {
	s.conn.GrabServer()
	return nil
}

func (s *X11Session) UngrabServer() error {
	s.conn.UngrabServer()
	return nil
}

func (s *X11Session) NextEvent() (Event, error) {
	ev, err := s.conn.NextEvent()
	if errors.Is(err, x11.ErrConnectionClosed) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return eventFromX(ev), nil
}

// eventFromX decodes the core events the manager reacts to.
func eventFromX(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return MapRequestEvent{Window: WindowID(e.Window)}
	case xproto.UnmapNotifyEvent:
		return UnmapNotifyEvent{Event: WindowID(e.Event), Window: WindowID(e.Window)}
	case xproto.ConfigureRequestEvent:
		return ConfigureRequestEvent{
			Window: WindowID(e.Window),
			Mask:   ConfigMask(e.ValueMask),
			Changes: WindowChanges{
				X:           int(e.X),
				Y:           int(e.Y),
				Width:       int(e.Width),
				Height:      int(e.Height),
				BorderWidth: int(e.BorderWidth),
				Sibling:     WindowID(e.Sibling),
				StackMode:   int(e.StackMode),
			},
		}
	case xproto.ButtonPressEvent:
		return ButtonPressEvent{
			Window: WindowID(e.Event),
			Root:   Point{X: int(e.RootX), Y: int(e.RootY)},
		}
	case xproto.MotionNotifyEvent:
		return MotionNotifyEvent{
			Window: WindowID(e.Event),
			State:  ButtonState(e.State),
			Root:   Point{X: int(e.RootX), Y: int(e.RootY)},
		}
	default:
		return UnhandledEvent{Name: fmt.Sprintf("%T", ev)}
	}
}

// Screen is a physical output and its area of the root window.
type Screen struct {
	Name   string
	Bounds Rect
}

// Screens reports the active RandR outputs.
func (s *X11Session) Screens() ([]Screen, error) {
	monitors, err := s.conn.Monitors()
	if err != nil {
		return nil, err
	}
	screens := make([]Screen, 0, len(monitors))
	for _, m := range monitors {
		screens = append(screens, Screen{
			Name:   m.Name,
			Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		})
	}
	return screens, nil
}

func rectFromGeometry(g x11.Geometry) Rect {
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}
