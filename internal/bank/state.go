package bank

import "github.com/retrocoderamen/grain-bank-dx/internal/kit"

// State holds the knob settings and kit selection for one bank. Speed is
// the product of a base value (AssignSpeed) and a global offset
// (AudioEngine's OffsetSpeed, applied identically to both banks).
type State struct {
	SpeedBase   float32
	SpeedOffset float32
	Drift       float32
	Bias        float32
	Width       float32
	Reverse     bool
	ReverseClock float32

	Kits     *[kit.PadCount]kit.Kit // the bank's kit array, aliasing the Scene
	KitIndex int
}

// Speed returns the effective speed knob: base * offset.
func (s *State) Speed() float32 {
	return s.SpeedBase * s.SpeedOffset
}

// CurrentKit returns the kit currently selected for playback.
func (s *State) CurrentKit() *kit.Kit {
	return &s.Kits[s.KitIndex]
}

// DefaultState returns a State with neutral knob values (full speed, no
// drift, balanced bias, full stereo width) pointed at kit 0.
func DefaultState(kits *[kit.PadCount]kit.Kit) State {
	return State{
		SpeedBase:   1,
		SpeedOffset: 1,
		Drift:       0,
		Bias:        0.5,
		Width:       1,
		Kits:        kits,
	}
}
