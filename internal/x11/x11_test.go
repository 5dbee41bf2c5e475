package x11

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestConfigureValues_OrderFollowsMaskBits(t *testing.T) {
	ch := ConfigureChanges{
		X: -5, Y: 7, Width: 640, Height: 480,
		BorderWidth: 2, Sibling: 0x2a, StackMode: xproto.StackModeBelow,
	}

	tests := []struct {
		name string
		mask uint16
		want []uint32
	}{
		{"empty", 0, []uint32{}},
		{"size only", xproto.ConfigWindowWidth | xproto.ConfigWindowHeight, []uint32{640, 480}},
		{"negative x", xproto.ConfigWindowX, []uint32{0xfffffffb}},
		{"position and stacking", xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowStackMode,
			[]uint32{0xfffffffb, 7, xproto.StackModeBelow}},
		{"all", 0x7f, []uint32{0xfffffffb, 7, 640, 480, 2, 0x2a, xproto.StackModeBelow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := configureValues(tt.mask, ch)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("configureValues(%#x) = %v, want %v", tt.mask, got, tt.want)
			}
		})
	}
}

func TestBootstrapPolicy_AccessErrorMeansAnotherManager(t *testing.T) {
	err := bootstrapPolicy(xproto.AccessError{NiceName: "Access", Sequence: 3})
	if !errors.Is(err, ErrAnotherManager) {
		t.Fatalf("expected ErrAnotherManager, got %v", err)
	}
}

func TestBootstrapPolicy_OtherErrorsAreWrapped(t *testing.T) {
	err := bootstrapPolicy(xproto.WindowError{NiceName: "Window", BadValue: 9})
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrAnotherManager) {
		t.Fatalf("window error must not be mistaken for a running manager: %v", err)
	}
	var winErr xproto.WindowError
	if !errors.As(err, &winErr) {
		t.Fatalf("expected wrapped WindowError, got %T", err)
	}
}

func TestErrorPolicyFor_RunningLogsAndContinues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	policy := errorPolicyFor(PhaseRunning, logger)
	if err := policy(xproto.MatchError{NiceName: "Match", MajorOpcode: 12}); err != nil {
		t.Fatalf("running policy returned %v, want nil", err)
	}

	out := buf.String()
	if !strings.Contains(out, "x11 protocol error") {
		t.Fatalf("expected protocol error log line, got %q", out)
	}
	if !strings.Contains(out, "name=Match") || !strings.Contains(out, "major_opcode=12") {
		t.Fatalf("expected error details in log line, got %q", out)
	}
}

func TestErrorPolicyFor_BootstrappingIsFatal(t *testing.T) {
	policy := errorPolicyFor(PhaseBootstrapping, slog.Default())
	if err := policy(xproto.AccessError{}); !errors.Is(err, ErrAnotherManager) {
		t.Fatalf("expected ErrAnotherManager, got %v", err)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseBootstrapping.String() != "bootstrapping" {
		t.Errorf("PhaseBootstrapping.String() = %q", PhaseBootstrapping.String())
	}
	if PhaseRunning.String() != "running" {
		t.Errorf("PhaseRunning.String() = %q", PhaseRunning.String())
	}
	if Phase(42).String() != "unknown" {
		t.Errorf("Phase(42).String() = %q", Phase(42).String())
	}
}

func TestIgnoreModCombinations(t *testing.T) {
	tests := []struct {
		name string
		base []uint16
		want []uint16
	}{
		{"caps only", []uint16{xproto.ModMaskLock}, []uint16{0, xproto.ModMaskLock}},
		{"caps and numlock", []uint16{xproto.ModMaskLock, xproto.ModMask2},
			[]uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2}},
		{"duplicates collapse", []uint16{xproto.ModMaskLock, xproto.ModMaskLock}, []uint16{0, xproto.ModMaskLock}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoreModCombinations(tt.base)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ignoreModCombinations(%v) = %v, want %v", tt.base, got, tt.want)
			}
		})
	}
}

func TestWindowAttributesViewable(t *testing.T) {
	if !(WindowAttributes{MapState: xproto.MapStateViewable}).Viewable() {
		t.Error("viewable map state should report Viewable")
	}
	if (WindowAttributes{MapState: xproto.MapStateUnviewable}).Viewable() {
		t.Error("unviewable map state should not report Viewable")
	}
}

func TestCrtcActive(t *testing.T) {
	tests := []struct {
		name                   string
		width, height, outputs int
		want                   bool
	}{
		{"active", 1920, 1080, 1, true},
		{"no outputs", 1920, 1080, 0, false},
		{"zero width", 0, 1080, 1, false},
		{"disabled", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := crtcActive(tt.width, tt.height, tt.outputs); got != tt.want {
				t.Fatalf("crtcActive(%d, %d, %d) = %v, want %v", tt.width, tt.height, tt.outputs, got, tt.want)
			}
		})
	}
}
