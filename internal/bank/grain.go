package bank

import (
	"github.com/retrocoderamen/grain-bank-dx/internal/activeevent"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// source picks the highest-priority non-Sync ActiveEvent across input,
// recorder and pool: input > recorder > pool. Returns nil if all three are
// silent.
func (e *Engine) source() *activeevent.ActiveEvent {
	if e.Input.Kind != kit.EventSync {
		return &e.Input
	}
	if e.Recorder.Active != nil && e.Recorder.Active.Active.Kind != kit.EventSync {
		return &e.Recorder.Active.Active
	}
	if e.Pool.Active != nil && e.Pool.Active.Active.Kind != kit.EventSync {
		return &e.Pool.Active.Active
	}
	return nil
}

// speedEffective computes speed_eff per §4.5: tempo-synced when the onset's
// Wav carries a natural tempo, otherwise the bare speed knob.
func (e *Engine) speedEffective(src *activeevent.ActiveEvent, tempo float32) float32 {
	speed := e.State.Speed()
	if src.Onset == nil || src.Onset.Wav.Tempo == nil || *src.Onset.Wav.Tempo == 0 {
		return speed
	}
	return tempo * float32(kit.StepDiv) / *src.Onset.Wav.Tempo * speed
}

// Render produces grainLen stereo frames (interleaved L,R) for this bank at
// the given tempo. Returns nil, nil when the bank has no audible source or
// tempo is zero — callers should treat that as silence and skip the
// additive mix rather than adding zeros.
func (e *Engine) Render(tempo float32, grainLen int) ([]float32, error) {
	src := e.source()
	if src == nil || tempo == 0 {
		return nil, nil
	}

	speedEff := e.speedEffective(src, tempo)
	mono, err := activeevent.ReadGrain(src, float64(speedEff), e.State.Reverse, grainLen)
	if err != nil {
		e.logErr("Render", err)
		return nil, nil
	}
	if mono == nil {
		return nil, nil
	}

	left, right := activeevent.StereoGain(src.Onset.Pan, e.State.Width)
	out := make([]float32, grainLen*2)
	for i, s := range mono {
		out[2*i] = s * left
		out[2*i+1] = s * right
	}
	return out, nil
}
