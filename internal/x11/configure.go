package x11

import "github.com/BurntSushi/xgb/xproto"

// ConfigureChanges mirrors the value list of a ConfigureWindow request.
type ConfigureChanges struct {
	X, Y          int
	Width, Height int
	BorderWidth   int
	Sibling       xproto.Window
	StackMode     int
}

// configureValues encodes the masked fields in the order the protocol
// requires: ascending bit position.
func configureValues(mask uint16, ch ConfigureChanges) []uint32 {
	values := make([]uint32, 0, 7)
	if mask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(int32(ch.X)))
	}
	if mask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(int32(ch.Y)))
	}
	if mask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ch.Width))
	}
	if mask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ch.Height))
	}
	if mask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ch.BorderWidth))
	}
	if mask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ch.Sibling))
	}
	if mask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ch.StackMode))
	}
	return values
}
