package wm

import (
	"errors"
	"sort"

	"github.com/1broseidon/framewm/internal/platform"
)

var (
	// ErrAlreadyFramed is returned when inserting a client that already has a frame.
	ErrAlreadyFramed = errors.New("client already framed")
	// ErrFrameInUse is returned when a frame id is already paired with another client.
	ErrFrameInUse = errors.New("frame already in use")
)

// Registry pairs client windows with the frames that wrap them. Both
// directions are one-to-one. It is owned by the event loop and is not safe
// for concurrent use.
type Registry struct {
	frames  map[platform.WindowID]platform.WindowID // client -> frame
	clients map[platform.WindowID]platform.WindowID // frame -> client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		frames:  make(map[platform.WindowID]platform.WindowID),
		clients: make(map[platform.WindowID]platform.WindowID),
	}
}

// Contains reports whether client is framed.
func (r *Registry) Contains(client platform.WindowID) bool {
	_, ok := r.frames[client]
	return ok
}

func (r *Registry) FrameOf(client platform.WindowID) (platform.WindowID, bool) {
	frame, ok := r.frames[client]
	return frame, ok
}

func (r *Registry) ClientOf(frame platform.WindowID) (platform.WindowID, bool) {
	client, ok := r.clients[frame]
	return client, ok
}

// Insert records a new pair. Neither side may already be registered.
func (r *Registry) Insert(client, frame platform.WindowID) error {
	if _, ok := r.frames[client]; ok {
		return ErrAlreadyFramed
	}
	if _, ok := r.clients[frame]; ok {
		return ErrFrameInUse
	}
	r.frames[client] = frame
	r.clients[frame] = client
	return nil
}

// Remove drops client and its frame. Unknown clients are ignored.
func (r *Registry) Remove(client platform.WindowID) {
	frame, ok := r.frames[client]
	if !ok {
		return
	}
	delete(r.frames, client)
	delete(r.clients, frame)
}

func (r *Registry) Len() int {
	return len(r.frames)
}

// Clients returns the framed clients in ascending id order.
func (r *Registry) Clients() []platform.WindowID {
	out := make([]platform.WindowID, 0, len(r.frames))
	for client := range r.frames {
		out = append(out, client)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
