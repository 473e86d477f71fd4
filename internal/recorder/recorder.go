// Package recorder implements the bounded event log a bank accumulates as
// the user plays it, and the bake/trim/take pipeline that freezes a window
// of that log into a Phrase.
package recorder

import (
	"math/rand"

	"github.com/retrocoderamen/grain-bank-dx/internal/activeevent"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// Recorder is a continuous, bounded event log plus the machinery to freeze
// it into a Phrase and play that phrase back while a new recording
// continues to accumulate.
type Recorder struct {
	ring   []kit.Stamped
	baked  []kit.Stamped
	Phrase *kit.Phrase
	Active *activeevent.ActivePhrase
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Push discards ring entries MaxPhraseLen or more steps behind step (only
// entries with step-entry.Step < MaxPhraseLen are kept), then appends the new stamped event. Callers must push with non-decreasing
// step values.
func (r *Recorder) Push(event kit.Event, step uint16) {
	kept := r.ring[:0]
	for _, s := range r.ring {
		if int(step)-int(s.Step) < kit.MaxPhraseLen {
			kept = append(kept, s)
		}
	}
	r.ring = append(kept, kit.Stamped{Event: event, Step: step})
}

// Bake snapshots the ring into Baked, rewriting each entry's step so that
// step 0 means "MaxPhraseLen steps ago": newStep = (origStep + MaxPhraseLen)
// - nowStep. Entries whose rewrite underflows below zero are dropped.
func (r *Recorder) Bake(nowStep uint16) {
	baked := make([]kit.Stamped, 0, len(r.ring))
	for _, s := range r.ring {
		rewritten := int(s.Step) + kit.MaxPhraseLen - int(nowStep)
		if rewritten < 0 {
			continue
		}
		baked = append(baked, kit.Stamped{Event: s.Event, Step: uint16(rewritten)})
	}
	r.baked = baked
}

// Trim derives a Phrase of the given length from the baked entries: those
// whose (step+len) >= MaxPhraseLen survive, rewritten to
// step+len-MaxPhraseLen — the last len steps of recent history, with
// timestamps relative to the start of that window.
func (r *Recorder) Trim(length uint16) *kit.Phrase {
	events := make([]kit.Stamped, 0, len(r.baked))
	for _, s := range r.baked {
		if int(s.Step)+int(length) >= kit.MaxPhraseLen {
			rewritten := int(s.Step) + int(length) - kit.MaxPhraseLen
			events = append(events, kit.Stamped{Event: s.Event, Step: uint16(rewritten)})
		}
	}
	phrase := &kit.Phrase{Events: events, Len: length}
	r.Phrase = phrase
	return phrase
}

// GeneratePhrase seats r.Active against r.Phrase: if the phrase's first
// event starts on the downbeat it is consumed immediately, otherwise a Sync
// placeholder runs until that first event's step. PhraseRemaining is set to
// the phrase length in both branches.
func (r *Recorder) GeneratePhrase(nowStep uint16, bias float64, rnd *rand.Rand, k *kit.Kit) error {
	if r.Phrase == nil || len(r.Phrase.Events) == 0 {
		r.Active = &activeevent.ActivePhrase{
			EventRemaining:  r.phraseLen(),
			PhraseRemaining: r.phraseLen(),
			Active:          activeevent.ActiveEvent{Kind: kit.EventSync},
		}
		return nil
	}

	ap := &activeevent.ActivePhrase{PhraseRemaining: r.Phrase.Len}
	first := r.Phrase.Events[0]
	if first.Step == 0 {
		if err := activeevent.Transition(&ap.Active, first.Event, nowStep, bias, rnd, k); err != nil {
			return err
		}
		ap.NextEventIndex = 1
		ap.EventRemaining = eventRemaining(r.Phrase, 1, first.Step)
	} else {
		ap.Active = activeevent.ActiveEvent{Kind: kit.EventSync}
		ap.NextEventIndex = 0
		ap.EventRemaining = first.Step
	}
	r.Active = ap
	return nil
}

func (r *Recorder) phraseLen() uint16 {
	if r.Phrase == nil {
		return 0
	}
	return r.Phrase.Len
}

// eventRemaining computes the steps until the event after index fires, or
// until phrase end if index is the last event.
func eventRemaining(phrase *kit.Phrase, index int, chosenStep uint16) uint16 {
	if index >= len(phrase.Events) {
		return phrase.Len - chosenStep
	}
	return phrase.Events[index].Step - chosenStep
}

// Take returns the trimmed phrase and current ActivePhrase and clears the
// baked window, per the TakeRecord bank command.
func (r *Recorder) Take() (*kit.Phrase, *activeevent.ActivePhrase) {
	phrase, active := r.Phrase, r.Active
	r.baked = nil
	return phrase, active
}

// Advance steps the recorder's ActivePhrase by one clock step, regenerating
// the phrase or advancing to the next stamped event as their remaining
// counters reach zero.
func (r *Recorder) Advance(nowStep uint16, bias float64, rnd *rand.Rand, k *kit.Kit) error {
	if r.Active == nil {
		return nil
	}
	r.Active.EventRemaining--
	r.Active.PhraseRemaining--

	if r.Active.PhraseRemaining == 0 {
		return r.GeneratePhrase(nowStep, bias, rnd, k)
	}
	if r.Active.EventRemaining == 0 {
		return r.advanceEvent(nowStep, bias, rnd, k)
	}
	return nil
}

func (r *Recorder) advanceEvent(nowStep uint16, bias float64, rnd *rand.Rand, k *kit.Kit) error {
	if r.Phrase == nil || len(r.Phrase.Events) == 0 {
		return nil
	}
	idx := r.Active.NextEventIndex
	if idx >= len(r.Phrase.Events) {
		idx = 0
	}
	ev := r.Phrase.Events[idx]
	if err := activeevent.Transition(&r.Active.Active, ev.Event, nowStep, bias, rnd, k); err != nil {
		return err
	}
	next := idx + 1
	r.Active.NextEventIndex = next
	r.Active.EventRemaining = eventRemaining(r.Phrase, next, ev.Step)
	return nil
}
