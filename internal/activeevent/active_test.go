package activeevent

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

func testKitWithWav(t *testing.T, pad uint8, bodyLen int, steps uint16) *kit.Kit {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pad.wav")
	data := make([]byte, 44+bodyLen)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	k := &kit.Kit{}
	k.Pads[pad].AltA = &kit.Onset{
		Wav:       kit.Wav{Path: path, Len: uint64(bodyLen), Steps: steps},
		StartByte: 0,
	}
	return k
}

func TestTransitionSyncClosesCursor(t *testing.T) {
	k := testKitWithWav(t, 0, 1024, 16)
	rnd := rand.New(rand.NewSource(1))
	var e ActiveEvent

	if err := Transition(&e, kit.Hold(0), 0, 0.5, rnd, k); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if e.Onset == nil || e.Onset.Cursor == nil {
		t.Fatalf("expected an open cursor after Hold")
	}

	if err := Transition(&e, kit.Sync(), 4, 0.5, rnd, k); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if e.Kind != kit.EventSync || e.Onset != nil {
		t.Fatalf("after Sync, e = %+v, want zero-onset Sync state", e)
	}
}

func TestTransitionLoopSamePadKeepsCursor(t *testing.T) {
	k := testKitWithWav(t, 0, 1024, 16)
	rnd := rand.New(rand.NewSource(1))
	var e ActiveEvent

	if err := Transition(&e, kit.Hold(0), 0, 0.5, rnd, k); err != nil {
		t.Fatalf("hold: %v", err)
	}
	firstCursor := e.Onset.Cursor

	loopLen := kit.Fraction{Numerator: 2, Denominator: kit.LoopDiv}
	if err := Transition(&e, kit.Loop(0, loopLen), 1, 0.5, rnd, k); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if e.Kind != kit.EventLoop {
		t.Fatalf("kind after Loop(same pad) = %v, want EventLoop", e.Kind)
	}
	if e.Onset.Cursor != firstCursor {
		t.Fatalf("Loop on the same pad should keep the existing cursor, got a new one")
	}
	if e.Len != loopLen {
		t.Fatalf("loop len = %+v, want %+v", e.Len, loopLen)
	}
}

func TestTransitionHoldDifferentPadOpensFreshCursor(t *testing.T) {
	k := testKitWithWav(t, 0, 1024, 16)
	k.Pads[1].AltA = &kit.Onset{Wav: kit.Wav{Path: k.Pads[0].AltA.Wav.Path, Len: 1024, Steps: 16}}
	rnd := rand.New(rand.NewSource(1))
	var e ActiveEvent

	if err := Transition(&e, kit.Hold(0), 0, 0.5, rnd, k); err != nil {
		t.Fatalf("hold 0: %v", err)
	}
	firstCursor := e.Onset.Cursor

	if err := Transition(&e, kit.Hold(1), 1, 0.5, rnd, k); err != nil {
		t.Fatalf("hold 1: %v", err)
	}
	if e.Onset.Cursor == firstCursor {
		t.Fatalf("Hold on a different pad should open a fresh cursor")
	}
	if e.Onset.PadIndex != 1 {
		t.Fatalf("onset pad index = %d, want 1", e.Onset.PadIndex)
	}
}

func TestLoopLenBytesUsesStepGrid(t *testing.T) {
	o := &ActiveOnset{Wav: kit.Wav{Len: 96000, Steps: 16}}
	got := LoopLenBytes(o, kit.Fraction{Numerator: 4, Denominator: kit.LoopDiv})
	want := int64(4 * (96000 / 16))
	if got != want {
		t.Fatalf("LoopLenBytes = %d, want %d", got, want)
	}
}

func TestLoopLenBytesNilOnset(t *testing.T) {
	if got := LoopLenBytes(nil, kit.Fraction{Numerator: 1, Denominator: 8}); got != 0 {
		t.Fatalf("LoopLenBytes(nil, ...) = %d, want 0", got)
	}
}

func TestPanSpreadsAcrossPads(t *testing.T) {
	if Pan(0) >= Pan(kit.PadCount-1) {
		t.Fatalf("Pan should increase monotonically with pad index: Pan(0)=%v Pan(N-1)=%v", Pan(0), Pan(kit.PadCount-1))
	}
}
