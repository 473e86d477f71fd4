// Package bank implements BankEngine: the per-bank state machine that
// routes user events and MIDI-clock pulses into grain reads, loop and jump
// behavior, phrase recording/quantization and pool playback.
package bank

import (
	"math/rand"

	"github.com/retrocoderamen/grain-bank-dx/internal/activeevent"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
	"github.com/retrocoderamen/grain-bank-dx/internal/pool"
	"github.com/retrocoderamen/grain-bank-dx/internal/recorder"
	"github.com/retrocoderamen/grain-bank-dx/internal/telemetry"
)

// Engine is one bank: an input ActiveEvent, a Recorder and a Pool, all
// reading against the bank's currently selected Kit.
type Engine struct {
	Name  string
	State State

	Input    activeevent.ActiveEvent
	Recorder *recorder.Recorder
	Pool     *pool.Pool

	pending *kit.Event // buffered PushEvent, realized on the next Clock

	rnd    *rand.Rand
	logger *telemetry.Logger
}

// New creates a bank engine against the given kit array (aliasing the
// scene's per-bank kit slots) and a deterministic seed for alt/drift draws.
func New(name string, kits *[kit.PadCount]kit.Kit, seed int64, logger *telemetry.Logger) *Engine {
	return &Engine{
		Name:     name,
		State:    DefaultState(kits),
		Recorder: recorder.New(),
		Pool:     pool.New(),
		rnd:      rand.New(rand.NewSource(seed)),
		logger:   logger,
	}
}

func (e *Engine) logErr(where string, err error) {
	if err == nil || e.logger == nil {
		return
	}
	e.logger.LogBankf(telemetry.LogLevelError, "bank %s: %s: %v", e.Name, where, err)
}

// PushEvent buffers event for the next Clock when quant is true (a clock
// tick has already been observed), or realizes it immediately otherwise.
func (e *Engine) PushEvent(event kit.Event, quant bool, step uint16) {
	if quant {
		ev := event
		e.pending = &ev
		return
	}
	if err := e.realize(event, step); err != nil {
		e.logErr("PushEvent", err)
	}
}

// ForceEvent transitions the input ActiveEvent immediately and never
// buffers or records it.
func (e *Engine) ForceEvent(event kit.Event, step uint16) {
	if err := activeevent.Transition(&e.Input, event, step, float64(e.State.Bias), e.rnd, e.State.CurrentKit()); err != nil {
		e.logErr("ForceEvent", err)
	}
}

// realize transitions the input ActiveEvent and appends the event to the
// recorder at the current step; in reverse mode it also resets the
// captured reverse clock.
func (e *Engine) realize(event kit.Event, step uint16) error {
	if err := activeevent.Transition(&e.Input, event, step, float64(e.State.Bias), e.rnd, e.State.CurrentKit()); err != nil {
		return err
	}
	e.Recorder.Push(event, step)
	if e.State.Reverse {
		e.State.ReverseClock = float32(step)
	}
	return nil
}

// Clock advances the bank by one step: realizing any buffered input,
// otherwise resyncing the three live ActiveEvents against the clock, then
// advancing the recorder's and pool's phrase bookkeeping.
func (e *Engine) Clock(step uint16) {
	if e.pending != nil {
		ev := *e.pending
		e.pending = nil
		if err := e.realize(ev, step); err != nil {
			e.logErr("Clock realize", err)
		}
	} else {
		clockVal := float32(step)
		if e.State.Reverse {
			clockVal = e.State.ReverseClock
		}
		if err := activeevent.Resync(&e.Input, clockVal); err != nil {
			e.logErr("Clock resync input", err)
		}
		if e.Recorder.Active != nil {
			if err := activeevent.Resync(&e.Recorder.Active.Active, clockVal); err != nil {
				e.logErr("Clock resync recorder", err)
			}
		}
		if e.Pool.Active != nil {
			if err := activeevent.Resync(&e.Pool.Active.Active, clockVal); err != nil {
				e.logErr("Clock resync pool", err)
			}
		}
	}

	if err := e.Recorder.Advance(step, float64(e.State.Bias), e.rnd, e.State.CurrentKit()); err != nil {
		e.logErr("Clock recorder advance", err)
	}
	if err := e.Pool.Advance(step, float64(e.State.Bias), float64(e.State.Drift), e.rnd, e.State.CurrentKit()); err != nil {
		e.logErr("Clock pool advance", err)
	}

	if e.State.Reverse {
		e.State.ReverseClock--
	}
}

// Stop resets the captured reverse clock when reverse is active. The
// global clock counter itself is owned by AudioEngine.
func (e *Engine) Stop() {
	if e.State.Reverse {
		e.State.ReverseClock = 0
	}
}

// TakeRecord takes the recorder's trimmed phrase, installs it on pad, and
// seats the pool to a single-element rotation over that pad with the
// recorder's ActivePhrase carried over so playback doesn't hiccup.
func (e *Engine) TakeRecord(pad uint8) {
	phrase, active := e.Recorder.Take()
	if phrase == nil {
		return
	}
	e.State.CurrentKit().Pads[pad].Phrase = phrase
	e.Pool.Phrases = []uint8{pad}
	e.Pool.CursorIndex = 1
	p := pad
	e.Pool.CurrentPad = &p
	e.Pool.Active = active
}

// BakeRecord bakes the recorder (only if no ActivePhrase is already
// running), trims it to length, and ensures an ActivePhrase is seated.
func (e *Engine) BakeRecord(length uint16, step uint16) {
	if e.Recorder.Active == nil {
		e.Recorder.Bake(step)
	}
	e.Recorder.Trim(length)
	if e.Recorder.Active == nil {
		if err := e.Recorder.GeneratePhrase(step, float64(e.State.Bias), e.rnd, e.State.CurrentKit()); err != nil {
			e.logErr("BakeRecord generate", err)
		}
	}
}

// AssignOnset writes the onset into the current kit's pad and triggers a
// Hold on that pad so the user hears the newly assigned sound.
func (e *Engine) AssignOnset(pad uint8, alt bool, onset kit.Onset, step uint16) {
	p := &e.State.CurrentKit().Pads[pad]
	o := onset
	if alt {
		p.AltB = &o
	} else {
		p.AltA = &o
	}
	if err := e.realize(kit.Hold(pad), step); err != nil {
		e.logErr("AssignOnset", err)
	}
}

func (e *Engine) AssignSpeed(v float32) { e.State.SpeedBase = v }
func (e *Engine) AssignDrift(v float32) { e.State.Drift = v }
func (e *Engine) AssignBias(v float32)  { e.State.Bias = v }
func (e *Engine) AssignWidth(v float32) { e.State.Width = v }

// SetSpeedOffset applies AudioEngine's OffsetSpeed command, which affects
// both banks identically.
func (e *Engine) SetSpeedOffset(v float32) { e.State.SpeedOffset = v }

// AssignReverse flips the reverse flag, capturing the current clock as the
// reverse origin the moment the flag turns on.
func (e *Engine) AssignReverse(v bool, step uint16) {
	if v && !e.State.Reverse {
		e.State.ReverseClock = float32(step)
	}
	e.State.Reverse = v
}

// AssignKit swaps the bank's kit pointer without disturbing any running
// ActiveEvent.
func (e *Engine) AssignKit(index int) {
	e.State.KitIndex = index
}

// LoadKit swaps the bank's kit pointer and forces every live ActiveEvent to
// Sync so no cursor from the old kit's onsets is ever read again.
func (e *Engine) LoadKit(index int, step uint16) {
	e.State.KitIndex = index
	e.ForceEvent(kit.Sync(), step)
	if e.Recorder.Active != nil {
		if err := activeevent.Transition(&e.Recorder.Active.Active, kit.Sync(), step, float64(e.State.Bias), e.rnd, e.State.CurrentKit()); err != nil {
			e.logErr("LoadKit recorder sync", err)
		}
	}
	if e.Pool.Active != nil {
		if err := activeevent.Transition(&e.Pool.Active.Active, kit.Sync(), step, float64(e.State.Bias), e.rnd, e.State.CurrentKit()); err != nil {
			e.logErr("LoadKit pool sync", err)
		}
	}
}

func (e *Engine) ClearPool()       { e.Pool.Clear() }
func (e *Engine) PushPool(pad uint8) { e.Pool.Push(pad) }
