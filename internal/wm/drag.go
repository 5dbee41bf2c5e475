package wm

import "github.com/1broseidon/framewm/internal/platform"

// DragSession is the state captured when a grabbed button goes down on a
// framed client. Which button is held is read from each motion event.
type DragSession struct {
	Client       platform.WindowID
	StartPointer platform.Point
	StartFrame   platform.Rect
}

// Delta is how far the pointer has travelled since the press.
func (s DragSession) Delta(pointer platform.Point) platform.Point {
	return pointer.Sub(s.StartPointer)
}

// MovedTo returns the frame origin for a move drag with the pointer at pointer.
func (s DragSession) MovedTo(pointer platform.Point) platform.Point {
	return s.StartFrame.Origin().Add(s.Delta(pointer))
}

// ResizedTo returns the frame size for a resize drag with the pointer at
// pointer. Each axis of the delta is clamped so the size never goes negative.
func (s DragSession) ResizedTo(pointer platform.Point) platform.Size {
	d := s.Delta(pointer)
	start := s.StartFrame.Size()
	return platform.Size{
		Width:  start.Width + max(d.X, -start.Width),
		Height: start.Height + max(d.Y, -start.Height),
	}
}

// DragController holds at most one drag session. A new press always
// replaces the previous session; there is no explicit end state.
type DragController struct {
	session *DragSession
}

// Begin starts (or replaces) the drag session for client.
func (d *DragController) Begin(client platform.WindowID, pointer platform.Point, frame platform.Rect) DragSession {
	d.session = &DragSession{Client: client, StartPointer: pointer, StartFrame: frame}
	return *d.session
}

// SessionFor returns the current session if it belongs to client.
func (d *DragController) SessionFor(client platform.WindowID) (DragSession, bool) {
	if d.session == nil || d.session.Client != client {
		return DragSession{}, false
	}
	return *d.session, true
}

// Forget drops the session if it belongs to client.
func (d *DragController) Forget(client platform.WindowID) {
	if d.session != nil && d.session.Client == client {
		d.session = nil
	}
}
