// Package activeevent implements the playing-grain state machine for one
// bank: the Sync/Hold/Loop variant that owns a WavCursor and the transition
// rules that move between variants while preserving open file handles
// across the change whenever the spec calls for it.
package activeevent

import (
	"fmt"
	"math/rand"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
	"github.com/retrocoderamen/grain-bank-dx/internal/wav"
)

// ActiveOnset is a playing voice: a pad index, its deterministic pan, and an
// independently owned file handle positioned somewhere in that pad's onset.
type ActiveOnset struct {
	PadIndex  uint8
	Pan       float32
	Cursor    *wav.Cursor
	StartByte uint64
	Wav       kit.Wav
}

// Close releases the onset's file handle. Safe to call on a nil receiver.
func (o *ActiveOnset) Close() {
	if o == nil || o.Cursor == nil {
		return
	}
	o.Cursor.Close()
}

// ActiveEvent is the playing state for one of a bank's three read sources
// (input, recorder, pool). Onset is nil exactly when Kind is Sync.
type ActiveEvent struct {
	Kind      kit.EventKind
	Onset     *ActiveOnset
	StartStep uint16
	Len       kit.Fraction
}

// Pan returns the deterministic stereo pan for a pad index: index/N - 0.5.
func Pan(padIndex uint8) float32 {
	return float32(padIndex)/float32(kit.PadCount) - 0.5
}

// generateAlt picks one of a pad's alternate onsets per the bias knob:
// a-only and b-only pads are forced, a pad with both alternates draws
// b with probability bias, and a pad with neither returns nil (transition
// degrades to Sync).
func generateAlt(pad *kit.Pad, bias float64, rnd *rand.Rand) *kit.Onset {
	switch {
	case pad.AltA != nil && pad.AltB == nil:
		return pad.AltA
	case pad.AltB != nil && pad.AltA == nil:
		return pad.AltB
	case pad.AltA != nil && pad.AltB != nil:
		if rnd.Float64() < bias {
			return pad.AltB
		}
		return pad.AltA
	default:
		return nil
	}
}

// onsetSeek opens a fresh handle for pad's chosen alternate and seeks it to
// the onset's start byte — used for Hold, which always starts at a fixed
// point in the sample.
func onsetSeek(k *kit.Kit, padIndex uint8, bias float64, rnd *rand.Rand) (*ActiveOnset, error) {
	return newActiveOnset(k, padIndex, bias, rnd, true)
}

// onset opens a fresh handle for pad's chosen alternate without seeking —
// used for Loop, whose end-check wraps the region on its own.
func onset(k *kit.Kit, padIndex uint8, bias float64, rnd *rand.Rand) (*ActiveOnset, error) {
	return newActiveOnset(k, padIndex, bias, rnd, false)
}

func newActiveOnset(k *kit.Kit, padIndex uint8, bias float64, rnd *rand.Rand, seek bool) (*ActiveOnset, error) {
	if int(padIndex) >= len(k.Pads) {
		return nil, fmt.Errorf("activeevent: pad index %d out of range", padIndex)
	}
	pad := &k.Pads[padIndex]
	chosen := generateAlt(pad, bias, rnd)
	if chosen == nil {
		return nil, nil
	}
	cur, err := wav.Open(chosen.Wav.Path)
	if err != nil {
		return nil, err
	}
	if seek {
		if err := cur.Seek(int64(chosen.StartByte)); err != nil {
			cur.Close()
			return nil, err
		}
	}
	return &ActiveOnset{
		PadIndex:  padIndex,
		Pan:       Pan(padIndex),
		Cursor:    cur,
		StartByte: chosen.StartByte,
		Wav:       chosen.Wav,
	}, nil
}

// samePad reports whether e currently has a live onset on the given pad.
func (e *ActiveEvent) samePad(pad uint8) bool {
	return e.Onset != nil && e.Onset.PadIndex == pad
}

// Transition mutates e according to the input event, the current clock step
// (used as the new event's StartStep), the alt-selection bias, and the kit
// the pad belongs to. See the package doc and DESIGN.md for the resolution
// of the transition table's ambiguous cells.
func Transition(e *ActiveEvent, input kit.Event, currentStep uint16, bias float64, rnd *rand.Rand, k *kit.Kit) error {
	switch input.Kind {
	case kit.EventSync:
		e.Onset.Close()
		*e = ActiveEvent{Kind: kit.EventSync}
		return nil

	case kit.EventHold:
		if e.Kind == kit.EventLoop && e.samePad(input.Pad) {
			// Hold(O) keeping cursor: same pad, same handle, just a
			// variant change.
			e.Kind = kit.EventHold
			e.StartStep = currentStep
			e.Len = kit.Fraction{}
			return nil
		}
		old := e.Onset
		next, err := onsetSeek(k, input.Pad, bias, rnd)
		if err != nil {
			return err
		}
		old.Close()
		if next == nil {
			*e = ActiveEvent{Kind: kit.EventSync}
			return nil
		}
		*e = ActiveEvent{Kind: kit.EventHold, Onset: next, StartStep: currentStep}
		return nil

	case kit.EventLoop:
		if e.samePad(input.Pad) {
			// Loop(O, L') keeping cursor regardless of the prior variant.
			e.Kind = kit.EventLoop
			e.Len = input.Len
			return nil
		}
		old := e.Onset
		next, err := onset(k, input.Pad, bias, rnd)
		if err != nil {
			return err
		}
		old.Close()
		if next == nil {
			*e = ActiveEvent{Kind: kit.EventSync}
			return nil
		}
		*e = ActiveEvent{Kind: kit.EventLoop, Onset: next, StartStep: currentStep, Len: input.Len}
		return nil

	default:
		return fmt.Errorf("activeevent: unknown event kind %d", input.Kind)
	}
}

// LoopLenBytes returns the byte length of the repeating region for a Loop
// ActiveEvent: Fraction.Numerator whole steps of the onset's own tempo grid
// (bytes-per-step derived from the onset Wav's total length and step
// count). Falls back to Fraction.Value() of the whole onset when the Wav
// carries no step count.
func LoopLenBytes(o *ActiveOnset, frac kit.Fraction) int64 {
	if o == nil {
		return 0
	}
	if o.Wav.Steps > 0 {
		bytesPerStep := int64(o.Wav.Len) / int64(o.Wav.Steps)
		return int64(frac.Numerator) * bytesPerStep
	}
	return int64(frac.Value() * float64(o.Wav.Len))
}

// ActivePhrase tracks position within a playing Phrase: the index of the
// next stamped event to fire, how many steps remain until it fires, how
// many steps remain in the whole phrase, and the ActiveEvent it is driving.
type ActivePhrase struct {
	NextEventIndex  int
	EventRemaining  uint16
	PhraseRemaining uint16
	Active          ActiveEvent
}
