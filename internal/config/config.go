package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/framewm/internal/platform"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/hashicorp/go-multierror"
)

const (
	DefaultBorderWidth     = 3
	DefaultBorderColor     = "#ff0000"
	DefaultBackgroundColor = "#0000ff"
	DefaultMoveBinding     = "Mod1-1"
	DefaultResizeBinding   = "Mod1-3"
	DefaultCloseBinding    = "Mod1-F4"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "auto"

	// maxBorderWidth keeps frames sane; the protocol allows up to 65535.
	maxBorderWidth = 64
)

// Config is the effective window manager configuration.
type Config struct {
	// Display overrides $DISPLAY when non-empty.
	Display string `yaml:"display,omitempty"`

	BorderWidth     int    `yaml:"border_width"`
	BorderColor     string `yaml:"border_color"`     // #rrggbb
	BackgroundColor string `yaml:"background_color"` // #rrggbb

	// Bindings use the "Mod1-1" / "Mod1-F4" syntax.
	MoveBinding   string `yaml:"move_binding"`
	ResizeBinding string `yaml:"resize_binding"`
	CloseBinding  string `yaml:"close_binding"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warning, error
	LogFormat string `yaml:"log_format"` // auto, text, json
}

// ValidationError reports an invalid value at a YAML path.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		BorderWidth:     DefaultBorderWidth,
		BorderColor:     DefaultBorderColor,
		BackgroundColor: DefaultBackgroundColor,
		MoveBinding:     DefaultMoveBinding,
		ResizeBinding:   DefaultResizeBinding,
		CloseBinding:    DefaultCloseBinding,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	fail := func(path string, err error) {
		result = multierror.Append(result, &ValidationError{Path: path, Err: err})
	}

	if c.BorderWidth < 0 || c.BorderWidth > maxBorderWidth {
		fail("border_width", fmt.Errorf("border_width must be between 0 and %d", maxBorderWidth))
	}
	if _, err := ParseColor(c.BorderColor); err != nil {
		fail("border_color", err)
	}
	if _, err := ParseColor(c.BackgroundColor); err != nil {
		fail("background_color", err)
	}

	moveButton, err := ButtonOf(c.MoveBinding)
	if err != nil {
		fail("move_binding", err)
	}
	resizeButton, err := ButtonOf(c.ResizeBinding)
	if err != nil {
		fail("resize_binding", err)
	}
	if moveButton != 0 && moveButton == resizeButton {
		fail("resize_binding", fmt.Errorf("resize_binding must use a different button than move_binding"))
	}
	if err := validateKeyBinding(c.CloseBinding); err != nil {
		fail("close_binding", err)
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		fail("log_level", fmt.Errorf("log_level must be one of: debug, info, warning, error"))
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		fail("log_format", fmt.Errorf("log_format must be one of: auto, text, json"))
	}

	return result.ErrorOrNil()
}

// FrameStyle converts the decoration settings. The config must be valid.
func (c *Config) FrameStyle() (platform.FrameStyle, error) {
	border, err := ParseColor(c.BorderColor)
	if err != nil {
		return platform.FrameStyle{}, fmt.Errorf("border_color: %w", err)
	}
	background, err := ParseColor(c.BackgroundColor)
	if err != nil {
		return platform.FrameStyle{}, fmt.Errorf("background_color: %w", err)
	}
	return platform.FrameStyle{
		BorderWidth:     c.BorderWidth,
		BorderColor:     border,
		BackgroundColor: background,
	}, nil
}

// ParseColor parses "#rrggbb", "0xrrggbb" or "rrggbb" into a 24-bit pixel.
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(hex, "#"):
		hex = hex[1:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// ButtonOf returns the pointer button (1-5) named by a binding such as "Mod1-3".
func ButtonOf(binding string) (int, error) {
	if strings.TrimSpace(binding) == "" {
		return 0, fmt.Errorf("binding is required")
	}
	// ParseString only parses; it never touches the connection.
	_, button, err := mousebind.ParseString(nil, binding)
	if err != nil {
		return 0, err
	}
	if button < 1 || button > 5 {
		return 0, fmt.Errorf("button %d out of range 1-5", button)
	}
	return int(button), nil
}

// ButtonMask is the pointer-event state bit that is set while button is held.
func ButtonMask(button int) platform.ButtonState {
	if button < 1 || button > 5 {
		return 0
	}
	return platform.ButtonState(1 << (7 + button))
}

// validateKeyBinding checks the shape of a key binding. Resolving the key
// name needs the server's keyboard map, so that happens at grab time.
func validateKeyBinding(binding string) error {
	if strings.TrimSpace(binding) == "" {
		return fmt.Errorf("binding is required")
	}
	parts := strings.Split(binding, "-")
	if parts[len(parts)-1] == "" {
		return fmt.Errorf("binding %q has no key", binding)
	}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "shift", "lock", "control", "mod1", "mod2", "mod3", "mod4", "mod5", "any":
		default:
			return fmt.Errorf("binding %q has unknown modifier %q", binding, mod)
		}
	}
	return nil
}
