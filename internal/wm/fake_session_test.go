package wm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/1broseidon/framewm/internal/platform"
)

const testRoot platform.WindowID = 1

var errNoWindow = errors.New("bad window")

type fakeWindow struct {
	attrs  platform.Attributes
	parent platform.WindowID
	mapped bool
}

// fakeSession is an in-memory display server that records every request.
type fakeSession struct {
	root     platform.WindowID
	treeRoot platform.WindowID
	windows  map[platform.WindowID]*fakeWindow
	order    []platform.WindowID
	nextID   platform.WindowID
	saveSet  map[platform.WindowID]bool
	grabbed  bool
	calls    []string
	events   []platform.Event
	eventErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		root:     testRoot,
		treeRoot: testRoot,
		windows:  make(map[platform.WindowID]*fakeWindow),
		nextID:   0x1000,
		saveSet:  make(map[platform.WindowID]bool),
	}
}

// addClient creates a top-level client window.
func (f *fakeSession) addClient(id platform.WindowID, geom platform.Rect, viewable, overrideRedirect bool) {
	f.windows[id] = &fakeWindow{
		attrs: platform.Attributes{
			Geometry:         geom,
			Viewable:         viewable,
			OverrideRedirect: overrideRedirect,
		},
		parent: f.root,
		mapped: viewable,
	}
	f.order = append(f.order, id)
}

func (f *fakeSession) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSession) resetCalls() {
	f.calls = nil
}

func (f *fakeSession) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeSession) geometry(w platform.WindowID) platform.Rect {
	if win, ok := f.windows[w]; ok {
		return win.attrs.Geometry
	}
	return platform.Rect{}
}

func (f *fakeSession) Root() platform.WindowID { return f.root }

func (f *fakeSession) Attributes(w platform.WindowID) (platform.Attributes, error) {
	f.record("attributes %s", w)
	win, ok := f.windows[w]
	if !ok {
		return platform.Attributes{}, errNoWindow
	}
	return win.attrs, nil
}

func (f *fakeSession) Geometry(w platform.WindowID) (platform.Rect, error) {
	f.record("geometry %s", w)
	win, ok := f.windows[w]
	if !ok {
		return platform.Rect{}, errNoWindow
	}
	return win.attrs.Geometry, nil
}

func (f *fakeSession) TopLevelWindows() (platform.WindowID, []platform.WindowID, error) {
	f.record("query-tree")
	var children []platform.WindowID
	for _, id := range f.order {
		if win, ok := f.windows[id]; ok && win.parent == f.root {
			children = append(children, id)
		}
	}
	return f.treeRoot, children, nil
}

func (f *fakeSession) CreateFrame(bounds platform.Rect, style platform.FrameStyle) (platform.WindowID, error) {
	f.nextID++
	id := f.nextID
	f.windows[id] = &fakeWindow{
		attrs:  platform.Attributes{Geometry: bounds},
		parent: f.root,
	}
	f.record("create-frame %s %dx%d+%d+%d border=%d", id, bounds.Width, bounds.Height, bounds.X, bounds.Y, style.BorderWidth)
	return id, nil
}

func (f *fakeSession) DestroyWindow(w platform.WindowID) error {
	f.record("destroy %s", w)
	delete(f.windows, w)
	return nil
}

func (f *fakeSession) SelectSubstructure(w platform.WindowID) error {
	f.record("select-substructure %s", w)
	return nil
}

func (f *fakeSession) AddToSaveSet(w platform.WindowID) error {
	f.record("save-set-add %s", w)
	f.saveSet[w] = true
	return nil
}

func (f *fakeSession) RemoveFromSaveSet(w platform.WindowID) error {
	f.record("save-set-remove %s", w)
	delete(f.saveSet, w)
	return nil
}

func (f *fakeSession) Reparent(w, parent platform.WindowID, x, y int) error {
	f.record("reparent %s %s %d %d", w, parent, x, y)
	if win, ok := f.windows[w]; ok {
		win.parent = parent
		win.attrs.Geometry.X = x
		win.attrs.Geometry.Y = y
	}
	return nil
}

func (f *fakeSession) Map(w platform.WindowID) error {
	f.record("map %s", w)
	if win, ok := f.windows[w]; ok {
		win.mapped = true
	}
	return nil
}

func (f *fakeSession) Unmap(w platform.WindowID) error {
	f.record("unmap %s", w)
	if win, ok := f.windows[w]; ok {
		win.mapped = false
	}
	return nil
}

func (f *fakeSession) Raise(w platform.WindowID) error {
	f.record("raise %s", w)
	return nil
}

func (f *fakeSession) Configure(w platform.WindowID, mask platform.ConfigMask, ch platform.WindowChanges) error {
	f.record("configure %s mask=%d", w, mask)
	win, ok := f.windows[w]
	if !ok {
		return nil
	}
	g := &win.attrs.Geometry
	if mask.Has(platform.ConfigX) {
		g.X = ch.X
	}
	if mask.Has(platform.ConfigY) {
		g.Y = ch.Y
	}
	if mask.Has(platform.ConfigWidth) {
		g.Width = ch.Width
	}
	if mask.Has(platform.ConfigHeight) {
		g.Height = ch.Height
	}
	return nil
}

func (f *fakeSession) Move(w platform.WindowID, pos platform.Point) error {
	f.record("move %s %d %d", w, pos.X, pos.Y)
	if win, ok := f.windows[w]; ok {
		win.attrs.Geometry.X = pos.X
		win.attrs.Geometry.Y = pos.Y
	}
	return nil
}

func (f *fakeSession) Resize(w platform.WindowID, size platform.Size) error {
	f.record("resize %s %d %d", w, size.Width, size.Height)
	if win, ok := f.windows[w]; ok {
		win.attrs.Geometry.Width = size.Width
		win.attrs.Geometry.Height = size.Height
	}
	return nil
}

func (f *fakeSession) GrabButton(w platform.WindowID, binding string) error {
	f.record("grab-button %s %s", w, binding)
	return nil
}

func (f *fakeSession) GrabKey(w platform.WindowID, binding string) error {
	f.record("grab-key %s %s", w, binding)
	return nil
}

func (f *fakeSession) GrabServer() error {
	f.record("grab-server")
	f.grabbed = true
	return nil
}

func (f *fakeSession) UngrabServer() error {
	f.record("ungrab-server")
	f.grabbed = false
	return nil
}

func (f *fakeSession) NextEvent() (platform.Event, error) {
	if len(f.events) == 0 {
		return nil, f.eventErr
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func newTestManager(f *fakeSession) *Manager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(f, DefaultOptions(), logger)
}
