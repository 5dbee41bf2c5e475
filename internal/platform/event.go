package platform

// Event is a display-server event already decoded into platform terms.
type Event interface {
	isEvent()
}

// MapRequestEvent is sent when a client asks to become visible.
type MapRequestEvent struct {
	Window WindowID
}

// UnmapNotifyEvent reports that Window was unmapped. Event is the window the
// notification was delivered through.
type UnmapNotifyEvent struct {
	Event  WindowID
	Window WindowID
}

// ConfigureRequestEvent is a client's request to change its geometry or
// stacking. Only the fields selected by Mask are meaningful.
type ConfigureRequestEvent struct {
	Window  WindowID
	Mask    ConfigMask
	Changes WindowChanges
}

// ButtonPressEvent is a grabbed button press on Window.
type ButtonPressEvent struct {
	Window WindowID
	Root   Point
}

// MotionNotifyEvent is pointer motion while a grabbed button is held.
type MotionNotifyEvent struct {
	Window WindowID
	State  ButtonState
	Root   Point
}

// UnhandledEvent wraps anything the manager does not act upon.
type UnhandledEvent struct {
	Name string
}

func (MapRequestEvent) isEvent()       {}
func (UnmapNotifyEvent) isEvent()      {}
func (ConfigureRequestEvent) isEvent() {}
func (ButtonPressEvent) isEvent()      {}
func (MotionNotifyEvent) isEvent()     {}
func (UnhandledEvent) isEvent()        {}
