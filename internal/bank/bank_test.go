package bank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

func testKits(t *testing.T) *[kit.PadCount]kit.Kit {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pad.wav")
	if err := os.WriteFile(path, make([]byte, 44+8192), 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	var kits [kit.PadCount]kit.Kit
	kits[0].Pads[0].AltA = &kit.Onset{Wav: kit.Wav{Path: path, Len: 8192, Steps: 16}}
	return &kits
}

func TestDefaultStateIsNeutral(t *testing.T) {
	kits := testKits(t)
	s := DefaultState(kits)
	if s.Speed() != 1 {
		t.Fatalf("default speed = %v, want 1", s.Speed())
	}
	if s.CurrentKit() != &kits[0] {
		t.Fatalf("default kit should be kit 0")
	}
}

func TestAssignKitDoesNotDisturbInput(t *testing.T) {
	kits := testKits(t)
	e := New("A", kits, 1, nil)

	e.PushEvent(kit.Hold(0), false, 0)
	if e.Input.Onset == nil {
		t.Fatalf("expected a playing onset after Hold")
	}
	cursor := e.Input.Onset.Cursor

	e.AssignKit(0) // idempotent: same index, no live ActiveEvent should change
	if e.Input.Onset == nil || e.Input.Onset.Cursor != cursor {
		t.Fatalf("AssignKit to the same index should not disturb a running ActiveEvent")
	}
}

func TestLoadKitForcesSyncOnInput(t *testing.T) {
	kits := testKits(t)
	e := New("A", kits, 1, nil)
	e.PushEvent(kit.Hold(0), false, 0)
	if e.Input.Kind != kit.EventHold {
		t.Fatalf("expected Hold before LoadKit")
	}

	e.LoadKit(0, 1)
	if e.Input.Kind != kit.EventSync {
		t.Fatalf("LoadKit should force the input ActiveEvent to Sync, got %v", e.Input.Kind)
	}
}

func TestPushEventBuffersWhenQuantized(t *testing.T) {
	kits := testKits(t)
	e := New("A", kits, 1, nil)

	e.PushEvent(kit.Hold(0), true, 0)
	if e.Input.Kind != kit.EventSync {
		t.Fatalf("a quantized PushEvent must not realize immediately, got kind %v", e.Input.Kind)
	}

	e.Clock(1)
	if e.Input.Kind != kit.EventHold {
		t.Fatalf("the buffered event should realize on the next Clock, got kind %v", e.Input.Kind)
	}
}

func TestTakeRecordSeatsSingletonPool(t *testing.T) {
	kits := testKits(t)
	e := New("A", kits, 1, nil)
	e.Recorder.Phrase = &kit.Phrase{Len: 4}

	e.TakeRecord(2)
	if len(e.Pool.Phrases) != 1 || e.Pool.Phrases[0] != 2 {
		t.Fatalf("TakeRecord should seat a single-pad rotation over the target pad, got %v", e.Pool.Phrases)
	}
	if e.State.CurrentKit().Pads[2].Phrase == nil {
		t.Fatalf("TakeRecord should install the trimmed phrase on the pad")
	}
}
