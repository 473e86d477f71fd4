package activeevent

import (
	"math"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// ReadGrain pulls grainLen interpolated, normalized ([-1,1]) mono samples
// from e's cursor at the given effective speed, per §4.5's grain-read
// recipe: read ⌊grainLen·2·speedEff⌋&~1 bytes plus one extra word for
// interpolation, linearly interpolate GrainLen output frames from it, then
// resync the cursor so the next grain picks up exactly where this one's
// *logical* (non-lookahead) read left off.
func ReadGrain(e *ActiveEvent, speedEff float64, reverse bool, grainLen int) ([]float32, error) {
	if e.Onset == nil || e.Kind == kit.EventSync {
		return nil, nil
	}

	readLen := evenFloor(float64(grainLen) * 2 * speedEff)
	if readLen < 2 {
		readLen = 2
	}
	buf := make([]byte, readLen+2)
	if err := e.Onset.Cursor.Read(buf); err != nil {
		return nil, err
	}

	numSamples := len(buf) / 2
	samples := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		v := int16(uint16(buf[2*i]) | uint16(buf[2*i+1])<<8)
		samples[i] = float64(v) / 32768.0
	}

	frames := make([]float32, grainLen)
	for i := 0; i < grainLen; i++ {
		var x float64
		if reverse {
			x = float64(numSamples-2) - float64(i)*speedEff
		} else {
			x = float64(i) * speedEff
		}
		i0 := int(math.Floor(x))
		frac := x - float64(i0)
		if i0 < 0 {
			i0 = 0
			frac = 0
		}
		if i0+1 >= numSamples {
			i0 = numSamples - 2
			if i0 < 0 {
				i0 = 0
			}
			frac = 0
		}
		s0 := samples[i0]
		s1 := samples[i0+1]
		frames[i] = float32(s0 + (s1-s0)*frac)
	}

	if reverse {
		if err := e.Onset.Cursor.Seek(e.Onset.Cursor.Pos() - (readLen + 2)); err != nil {
			return nil, err
		}
	} else {
		if err := e.Onset.Cursor.Seek(e.Onset.Cursor.Pos() - 2); err != nil {
			return nil, err
		}
	}

	return frames, nil
}

// StereoGain returns the left/right gain multipliers for a pan/width pair,
// per §4.5: L = 1 + width*(|pan-0.5|-1), R = 1 + width*(|pan+0.5|-1).
func StereoGain(pan, width float32) (left, right float32) {
	left = 1 + width*(float32(math.Abs(float64(pan-0.5)))-1)
	right = 1 + width*(float32(math.Abs(float64(pan+0.5)))-1)
	return
}
