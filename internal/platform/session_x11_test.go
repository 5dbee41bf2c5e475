package platform

import (
	"reflect"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func TestConfigMaskMatchesProtocolBits(t *testing.T) {
	pairs := []struct {
		name  string
		ours  ConfigMask
		proto int
	}{
		{"x", ConfigX, xproto.ConfigWindowX},
		{"y", ConfigY, xproto.ConfigWindowY},
		{"width", ConfigWidth, xproto.ConfigWindowWidth},
		{"height", ConfigHeight, xproto.ConfigWindowHeight},
		{"border width", ConfigBorderWidth, xproto.ConfigWindowBorderWidth},
		{"sibling", ConfigSibling, xproto.ConfigWindowSibling},
		{"stack mode", ConfigStackMode, xproto.ConfigWindowStackMode},
	}
	for _, p := range pairs {
		if int(p.ours) != p.proto {
			t.Errorf("%s: ConfigMask %#x, protocol %#x", p.name, p.ours, p.proto)
		}
	}
}

func TestButtonMasksMatchProtocolBits(t *testing.T) {
	if int(Button1Mask) != xproto.KeyButMaskButton1 {
		t.Errorf("Button1Mask = %#x, want %#x", Button1Mask, xproto.KeyButMaskButton1)
	}
	if int(Button2Mask) != xproto.KeyButMaskButton2 {
		t.Errorf("Button2Mask = %#x, want %#x", Button2Mask, xproto.KeyButMaskButton2)
	}
	if int(Button3Mask) != xproto.KeyButMaskButton3 {
		t.Errorf("Button3Mask = %#x, want %#x", Button3Mask, xproto.KeyButMaskButton3)
	}
}

func TestEventFromX(t *testing.T) {
	tests := []struct {
		name string
		in   xgb.Event
		want Event
	}{
		{
			name: "map request",
			in:   xproto.MapRequestEvent{Parent: 1, Window: 42},
			want: MapRequestEvent{Window: 42},
		},
		{
			name: "unmap notify",
			in:   xproto.UnmapNotifyEvent{Event: 1, Window: 42},
			want: UnmapNotifyEvent{Event: 1, Window: 42},
		},
		{
			name: "configure request",
			in: xproto.ConfigureRequestEvent{
				Window: 42, Sibling: 7, X: -3, Y: 4, Width: 300, Height: 200,
				BorderWidth: 1, StackMode: xproto.StackModeBelow,
				ValueMask: xproto.ConfigWindowWidth | xproto.ConfigWindowHeight,
			},
			want: ConfigureRequestEvent{
				Window: 42,
				Mask:   ConfigWidth | ConfigHeight,
				Changes: WindowChanges{
					X: -3, Y: 4, Width: 300, Height: 200,
					BorderWidth: 1, Sibling: 7, StackMode: xproto.StackModeBelow,
				},
			},
		},
		{
			name: "button press uses event window and root coordinates",
			in:   xproto.ButtonPressEvent{Event: 42, Child: 9, RootX: 100, RootY: 120, EventX: 5, EventY: 6},
			want: ButtonPressEvent{Window: 42, Root: Point{X: 100, Y: 120}},
		},
		{
			name: "motion notify",
			in:   xproto.MotionNotifyEvent{Event: 42, RootX: 110, RootY: 105, State: xproto.KeyButMaskButton1 | xproto.ModMask1},
			want: MotionNotifyEvent{Window: 42, State: ButtonState(xproto.KeyButMaskButton1 | xproto.ModMask1), Root: Point{X: 110, Y: 105}},
		},
		{
			name: "anything else",
			in:   xproto.PropertyNotifyEvent{Window: 42},
			want: UnhandledEvent{Name: "xproto.PropertyNotifyEvent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eventFromX(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("eventFromX() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	start := Point{X: 100, Y: 100}
	now := Point{X: 110, Y: 105}
	delta := now.Sub(start)
	if delta != (Point{X: 10, Y: 5}) {
		t.Fatalf("Sub = %+v, want {10 5}", delta)
	}
	if got := (Point{X: 10, Y: 10}).Add(delta); got != (Point{X: 20, Y: 15}) {
		t.Fatalf("Add = %+v, want {20 15}", got)
	}
}

func TestWindowIDString(t *testing.T) {
	if got := WindowID(0x1a00003).String(); got != "0x1a00003" {
		t.Fatalf("String() = %q", got)
	}
}
