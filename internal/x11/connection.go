package x11

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// ErrConnectionClosed is returned by NextEvent once the server connection is gone.
var ErrConnectionClosed = errors.New("x11: connection closed")

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	display string
	phase   Phase
	policy  errorPolicy
	logger  *slog.Logger
}

// NewConnection connects to the given display ("" means $DISPLAY) and
// prepares the keyboard tables used for key grabs.
func NewConnection(display string, logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.Default()
	}

	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to open display %q: %w", display, err)
	}

	// Initialize keybind module (required for key grabs)
	keybind.Initialize(xu)
	configureIgnoreMods(xu)

	c := &Connection{
		XUtil:   xu,
		Root:    xu.RootWin(),
		display: display,
		logger:  logger,
	}
	c.setPhase(PhaseBootstrapping)
	return c, nil
}

// Phase reports which error phase the connection is in.
func (c *Connection) Phase() Phase {
	return c.phase
}

func (c *Connection) setPhase(p Phase) {
	c.phase = p
	c.policy = errorPolicyFor(p, c.logger)
}

// BecomeManager claims substructure redirection on the root window. Only one
// client may hold it, so an access error means another window manager owns
// the display. On success the connection enters PhaseRunning.
func (c *Connection) BecomeManager() error {
	if c.phase != PhaseBootstrapping {
		return fmt.Errorf("x11: cannot bootstrap in phase %s", c.phase)
	}

	// Checked request: Check() waits for the server's verdict, so the result
	// is known before anything else is sent.
	err := xproto.ChangeWindowAttributesChecked(c.conn(), c.Root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify},
	).Check()
	if err != nil {
		var xerr xgb.Error
		if errors.As(err, &xerr) {
			return c.policy(xerr)
		}
		return fmt.Errorf("failed to select substructure redirect on root: %w", err)
	}

	c.setPhase(PhaseRunning)
	c.logger.Info("managing display", "display", c.DisplayName(), "root", uint32(c.Root))
	return nil
}

// NextEvent blocks until an event arrives. Protocol errors are handed to the
// current phase's policy; in PhaseRunning they are logged and skipped.
func (c *Connection) NextEvent() (xgb.Event, error) {
	for {
		ev, xerr := c.conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, ErrConnectionClosed
		}
		if xerr != nil {
			if err := c.policy(xerr); err != nil {
				return nil, err
			}
			continue
		}
		return ev, nil
	}
}

// DisplayName returns the display this connection was opened against.
func (c *Connection) DisplayName() string {
	if c.display == "" {
		return "$DISPLAY"
	}
	return c.display
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

func (c *Connection) conn() *xgb.Conn {
	return c.XUtil.Conn()
}
