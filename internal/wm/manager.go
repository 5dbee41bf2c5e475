// Package wm frames client windows and turns display events into frame
// geometry changes.
package wm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/framewm/internal/platform"
	"github.com/hashicorp/go-multierror"
)

// ErrConnectionClosed is returned by Run when the display session ends.
var ErrConnectionClosed = errors.New("display connection closed")

// Options configures frame decoration and input bindings.
type Options struct {
	Style platform.FrameStyle

	MoveBinding   string
	ResizeBinding string
	CloseBinding  string

	// MoveMask and ResizeMask are the pointer-state bits of the move and
	// resize buttons.
	MoveMask   platform.ButtonState
	ResizeMask platform.ButtonState
}

// DefaultOptions returns the stock decoration and bindings: a 3px red border
// on a blue background, Mod1 with button 1 to move, button 3 to resize, and
// Mod1-F4 grabbed for closing.
func DefaultOptions() Options {
	return Options{
		Style: platform.FrameStyle{
			BorderWidth:     3,
			BorderColor:     0xff0000,
			BackgroundColor: 0x0000ff,
		},
		MoveBinding:   "Mod1-1",
		ResizeBinding: "Mod1-3",
		CloseBinding:  "Mod1-F4",
		MoveMask:      platform.Button1Mask,
		ResizeMask:    platform.Button3Mask,
	}
}

// Manager owns the registry and drag state for one display session. All
// methods must be called from the event-loop goroutine.
type Manager struct {
	session  platform.Session
	opts     Options
	registry *Registry
	drag     DragController
	logger   *slog.Logger
}

// New creates a manager driving session.
func New(session platform.Session, opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MoveMask == 0 {
		opts.MoveMask = platform.Button1Mask
	}
	if opts.ResizeMask == 0 {
		opts.ResizeMask = platform.Button3Mask
	}
	return &Manager{
		session:  session,
		opts:     opts,
		registry: NewRegistry(),
		logger:   logger,
	}
}

// Registry exposes the client/frame pairs for inspection.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Frame wraps client in a new frame. createdBefore marks windows found at
// startup; those are skipped when override-redirect or not viewable.
// Framing an already framed client does nothing.
func (m *Manager) Frame(client platform.WindowID, createdBefore bool) error {
	if m.registry.Contains(client) {
		return nil
	}

	attrs, err := m.session.Attributes(client)
	if err != nil {
		m.logger.Debug("cannot query client", "client", client, "error", err)
		return fmt.Errorf("query client %s: %w", client, err)
	}
	if createdBefore && (attrs.OverrideRedirect || !attrs.Viewable) {
		return nil
	}

	frame, err := m.session.CreateFrame(attrs.Geometry, m.opts.Style)
	if err != nil {
		return fmt.Errorf("create frame for %s: %w", client, err)
	}

	var result *multierror.Error
	result = multierror.Append(result,
		m.session.SelectSubstructure(frame),
		m.session.AddToSaveSet(client),
		m.session.Reparent(client, frame, 0, 0),
		m.session.Map(frame),
	)
	if err := result.ErrorOrNil(); err != nil {
		m.logger.Warn("framing incomplete", "client", client, "frame", frame, "error", err)
	}

	if err := m.registry.Insert(client, frame); err != nil {
		return fmt.Errorf("register %s: %w", client, err)
	}

	m.installGrabs(client)

	m.logger.Info("framed window", "client", client, "frame", frame)
	return nil
}

// installGrabs is best effort: the client may already be gone.
func (m *Manager) installGrabs(client platform.WindowID) {
	for _, binding := range []string{m.opts.MoveBinding, m.opts.ResizeBinding} {
		if err := m.session.GrabButton(client, binding); err != nil {
			m.logger.Warn("button grab failed", "client", client, "binding", binding, "error", err)
		}
	}
	if err := m.session.GrabKey(client, m.opts.CloseBinding); err != nil {
		m.logger.Warn("key grab failed", "client", client, "binding", m.opts.CloseBinding, "error", err)
	}
}

// Unframe returns client to the root and destroys its frame. Unknown
// clients are ignored. The registry entry is removed even when some of the
// teardown requests fail.
func (m *Manager) Unframe(client platform.WindowID) error {
	frame, ok := m.registry.FrameOf(client)
	if !ok {
		return nil
	}

	var result *multierror.Error
	result = multierror.Append(result,
		m.session.Unmap(frame),
		m.session.Reparent(client, m.session.Root(), 0, 0),
		m.session.RemoveFromSaveSet(client),
		m.session.DestroyWindow(frame),
	)
	m.registry.Remove(client)
	m.drag.Forget(client)

	if err := result.ErrorOrNil(); err != nil {
		m.logger.Warn("unframe incomplete", "client", client, "frame", frame, "error", err)
		return err
	}
	m.logger.Info("unframed window", "client", client, "frame", frame)
	return nil
}

// AdoptExisting frames the windows that were mapped before the manager
// started. The server is grabbed for the duration so nothing maps meanwhile.
func (m *Manager) AdoptExisting() (err error) {
	if err := m.session.GrabServer(); err != nil {
		return fmt.Errorf("grab server: %w", err)
	}
	defer func() {
		if uerr := m.session.UngrabServer(); uerr != nil {
			err = multierror.Append(err, fmt.Errorf("ungrab server: %w", uerr)).ErrorOrNil()
		}
	}()

	root, children, err := m.session.TopLevelWindows()
	if err != nil {
		return fmt.Errorf("query top-level windows: %w", err)
	}
	if root != m.session.Root() {
		m.logger.Warn("tree root differs from session root", "tree_root", root, "root", m.session.Root())
	}

	for _, w := range children {
		if ferr := m.Frame(w, true); ferr != nil {
			// The window vanished between the tree query and now.
			m.logger.Debug("skipping existing window", "window", w, "error", ferr)
		}
	}

	m.logger.Info("adopted existing windows", "candidates", len(children), "framed", m.registry.Len())
	return nil
}

// Run dispatches events until the session closes or ctx is cancelled.
// Cancellation is noticed between events; closing the session is what
// unblocks a pending fetch.
func (m *Manager) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, err := m.session.NextEvent()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("next event: %w", err)
		}
		if ev == nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrConnectionClosed
		}

		m.Dispatch(ev)
	}
}
