package wm

import "github.com/1broseidon/framewm/internal/platform"

// Dispatch routes one event to its handler. Handler failures are logged and
// never stop the loop.
func (m *Manager) Dispatch(ev platform.Event) {
	switch e := ev.(type) {
	case platform.MapRequestEvent:
		m.onMapRequest(e)
	case platform.UnmapNotifyEvent:
		m.onUnmapNotify(e)
	case platform.ConfigureRequestEvent:
		m.onConfigureRequest(e)
	case platform.ButtonPressEvent:
		m.onButtonPress(e)
	case platform.MotionNotifyEvent:
		m.onMotionNotify(e)
	case platform.UnhandledEvent:
		m.logger.Debug("ignored event", "event", e.Name)
	default:
		m.logger.Debug("ignored event", "event", ev)
	}
}

func (m *Manager) onMapRequest(e platform.MapRequestEvent) {
	if err := m.Frame(e.Window, false); err != nil {
		m.logger.Warn("failed to frame window", "client", e.Window, "error", err)
	}
	if err := m.session.Map(e.Window); err != nil {
		m.logger.Warn("failed to map window", "client", e.Window, "error", err)
	}
}

func (m *Manager) onUnmapNotify(e platform.UnmapNotifyEvent) {
	// Reparenting a mapped window out of the root produces an unmap reported
	// through the root; the client itself is still alive.
	if e.Event == m.session.Root() {
		return
	}
	// Error already logged by Unframe.
	_ = m.Unframe(e.Window)
}

// onConfigureRequest grants the request as asked. The frame follows the
// client when it has one.
func (m *Manager) onConfigureRequest(e platform.ConfigureRequestEvent) {
	if err := m.session.Configure(e.Window, e.Mask, e.Changes); err != nil {
		m.logger.Warn("configure failed", "window", e.Window, "error", err)
	}
	if frame, ok := m.registry.FrameOf(e.Window); ok {
		if err := m.session.Configure(frame, e.Mask, e.Changes); err != nil {
			m.logger.Warn("configure failed", "window", frame, "error", err)
		}
	}
	m.logger.Debug("resize", "window", e.Window, "width", e.Changes.Width, "height", e.Changes.Height)
}

func (m *Manager) onButtonPress(e platform.ButtonPressEvent) {
	frame, ok := m.registry.FrameOf(e.Window)
	if !ok {
		return
	}

	geom, err := m.session.Geometry(frame)
	if err != nil {
		m.logger.Debug("cannot query frame", "frame", frame, "error", err)
		return
	}
	m.drag.Begin(e.Window, e.Root, geom)

	if err := m.session.Raise(frame); err != nil {
		m.logger.Warn("raise failed", "frame", frame, "error", err)
	}
}

func (m *Manager) onMotionNotify(e platform.MotionNotifyEvent) {
	frame, ok := m.registry.FrameOf(e.Window)
	if !ok {
		return
	}
	drag, ok := m.drag.SessionFor(e.Window)
	if !ok {
		return
	}

	switch {
	case e.State.Has(m.opts.MoveMask):
		if err := m.session.Move(frame, drag.MovedTo(e.Root)); err != nil {
			m.logger.Warn("move failed", "frame", frame, "error", err)
		}
	case e.State.Has(m.opts.ResizeMask):
		size := drag.ResizedTo(e.Root)
		if err := m.session.Resize(frame, size); err != nil {
			m.logger.Warn("resize failed", "frame", frame, "error", err)
		}
		if err := m.session.Resize(e.Window, size); err != nil {
			m.logger.Warn("resize failed", "client", e.Window, "error", err)
		}
	}
}
