package activeevent

import (
	"math"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// evenFloor rounds x down to the nearest even integer, matching the
// `& ~1` sample-alignment mask used everywhere else offsets are derived
// from a floating-point computation.
func evenFloor(x float64) int64 {
	v := int64(math.Floor(x))
	return v &^ 1
}

// Resync reseeks e's cursor against a clock value (already substituted with
// the captured reverse clock by the caller when reverse mode is active), per
// §4.5 step 2 of the engine specification:
//
//   - Hold over an onset with a known natural tempo: reseek to
//     start_byte + bytesPerStep*(clock-start_step), rounded to an even byte.
//   - Loop: reseek modulo the loop region's byte length.
//   - Sync, a Hold whose onset carries no natural tempo or step count, or a
//     Loop whose onset carries no step count: no-op.
func Resync(e *ActiveEvent, clock float32) error {
	if e.Onset == nil || e.Kind == kit.EventSync {
		return nil
	}

	switch e.Kind {
	case kit.EventHold:
		if e.Onset.Wav.Tempo == nil || e.Onset.Wav.Steps == 0 {
			return nil
		}
		bytesPerStep := float64(e.Onset.Wav.Len) / float64(e.Onset.Wav.Steps)
		delta := float64(clock) - float64(e.StartStep)
		offset := float64(e.Onset.StartByte) + bytesPerStep*delta
		return e.Onset.Cursor.Seek(evenFloor(offset))

	case kit.EventLoop:
		loopLen := LoopLenBytes(e.Onset, e.Len)
		if loopLen <= 0 || e.Onset.Wav.Steps == 0 {
			return nil
		}
		bytesPerStep := float64(e.Onset.Wav.Len) / float64(e.Onset.Wav.Steps)
		delta := float64(clock) - float64(e.StartStep)
		within := math.Mod(bytesPerStep*delta, float64(loopLen))
		if within < 0 {
			within += float64(loopLen)
		}
		offset := float64(e.Onset.StartByte) + within
		return e.Onset.Cursor.Seek(evenFloor(offset))
	}
	return nil
}
