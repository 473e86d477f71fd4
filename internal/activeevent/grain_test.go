package activeevent

import (
	"math/rand"
	"testing"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

func TestReadGrainSilentOnSync(t *testing.T) {
	e := ActiveEvent{Kind: kit.EventSync}
	frames, err := ReadGrain(&e, 1, false, kit.GrainLen)
	if err != nil {
		t.Fatalf("read grain: %v", err)
	}
	if frames != nil {
		t.Fatalf("expected nil frames for a Sync event, got %d frames", len(frames))
	}
}

func TestReadGrainReturnsExactlyGrainLenFrames(t *testing.T) {
	k := testKitWithWav(t, 0, 8192, 16)
	rnd := rand.New(rand.NewSource(1))
	var e ActiveEvent
	if err := Transition(&e, kit.Hold(0), 0, 0.5, rnd, k); err != nil {
		t.Fatalf("hold: %v", err)
	}
	defer e.Onset.Close()

	for _, grainLen := range []int{64, 256, kit.GrainLen} {
		frames, err := ReadGrain(&e, 1.0, false, grainLen)
		if err != nil {
			t.Fatalf("read grain: %v", err)
		}
		if len(frames) != grainLen {
			t.Fatalf("ReadGrain(len=%d) returned %d frames", grainLen, len(frames))
		}
	}
}

func TestReadGrainAdvancesCursorBySpeed(t *testing.T) {
	k := testKitWithWav(t, 0, 65536, 16)
	rnd := rand.New(rand.NewSource(1))
	var e ActiveEvent
	if err := Transition(&e, kit.Hold(0), 0, 0.5, rnd, k); err != nil {
		t.Fatalf("hold: %v", err)
	}
	defer e.Onset.Close()

	start := e.Onset.Cursor.Pos()
	if _, err := ReadGrain(&e, 1.0, false, 64); err != nil {
		t.Fatalf("read grain: %v", err)
	}
	advanced := e.Onset.Cursor.Pos() - start
	if advanced != 64*2 {
		t.Fatalf("cursor advanced by %d bytes at speed 1.0 over 64 frames, want %d", advanced, 64*2)
	}
}

func TestStereoGainCenterIsHalfBothChannels(t *testing.T) {
	l, r := StereoGain(0, 1)
	if l < 0.49 || l > 0.51 || r < 0.49 || r > 0.51 {
		t.Fatalf("center pan (0) with full width should sit near 0.5/0.5, got L=%v R=%v", l, r)
	}
}

func TestStereoGainZeroWidthIsFlat(t *testing.T) {
	l, r := StereoGain(0.2, 0)
	if l != 1 || r != 1 {
		t.Fatalf("zero width should leave both channels at unity gain, got L=%v R=%v", l, r)
	}
}
