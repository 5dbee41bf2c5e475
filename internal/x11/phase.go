package x11

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// ErrAnotherManager means the root window's substructure redirection is
// already held by a different client.
var ErrAnotherManager = errors.New("another window manager is already running")

// Phase represents how protocol errors are interpreted.
type Phase int

const (
	// PhaseBootstrapping covers the root redirect claim. An access error
	// here means another manager is running.
	PhaseBootstrapping Phase = iota
	// PhaseRunning covers everything after the claim. Errors are logged
	// and the event loop continues.
	PhaseRunning
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// errorPolicy turns a protocol error into either a fatal error or nil.
type errorPolicy func(xerr xgb.Error) error

func errorPolicyFor(p Phase, logger *slog.Logger) errorPolicy {
	switch p {
	case PhaseBootstrapping:
		return bootstrapPolicy
	default:
		return func(xerr xgb.Error) error {
			logger.Warn("x11 protocol error", errorAttrs(xerr)...)
			return nil
		}
	}
}

func bootstrapPolicy(xerr xgb.Error) error {
	var access xproto.AccessError
	if errors.As(xerr, &access) {
		return ErrAnotherManager
	}
	return fmt.Errorf("x11 bootstrap failed: %w", xerr)
}

// errorAttrs renders a protocol error as slog key/value pairs.
func errorAttrs(xerr xgb.Error) []any {
	attrs := []any{
		"error", xerr.Error(),
		"sequence", xerr.SequenceId(),
		"bad_id", xerr.BadId(),
	}
	if req, ok := requestError(xerr); ok {
		attrs = append(attrs,
			"name", req.NiceName,
			"major_opcode", req.MajorOpcode,
			"minor_opcode", req.MinorOpcode)
	}
	return attrs
}

// requestError extracts the common payload of the core error types that are
// defined on top of xproto.RequestError.
func requestError(xerr xgb.Error) (xproto.RequestError, bool) {
	switch e := xerr.(type) {
	case xproto.RequestError:
		return e, true
	case xproto.AccessError:
		return xproto.RequestError(e), true
	case xproto.MatchError:
		return xproto.RequestError(e), true
	case xproto.AllocError:
		return xproto.RequestError(e), true
	case xproto.ImplementationError:
		return xproto.RequestError(e), true
	}
	if v, ok := valueError(xerr); ok {
		return xproto.RequestError{
			Sequence:    v.Sequence,
			NiceName:    v.NiceName,
			BadValue:    v.BadValue,
			MinorOpcode: v.MinorOpcode,
			MajorOpcode: v.MajorOpcode,
		}, true
	}
	return xproto.RequestError{}, false
}

func valueError(xerr xgb.Error) (xproto.ValueError, bool) {
	switch e := xerr.(type) {
	case xproto.ValueError:
		return e, true
	case xproto.WindowError:
		return xproto.ValueError(e), true
	case xproto.DrawableError:
		return xproto.ValueError(e), true
	}
	return xproto.ValueError{}, false
}
