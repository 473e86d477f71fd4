// Package pool implements the pad-probabilistic phrase selector: a weighted
// (ordered, drift-shuffled) sequence of pads whose recorded phrases play in
// rotation.
package pool

import (
	"math"
	"math/rand"

	"github.com/retrocoderamen/grain-bank-dx/internal/activeevent"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// Pool holds the pad rotation and the ActivePhrase currently driving
// playback.
type Pool struct {
	CursorIndex int
	Phrases     []uint8 // pad indices
	CurrentPad  *uint8
	Active      *activeevent.ActivePhrase
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{}
}

// Push appends a pad index to the rotation without disturbing CursorIndex.
func (p *Pool) Push(pad uint8) {
	p.Phrases = append(p.Phrases, pad)
}

// Clear empties the rotation and seat state.
func (p *Pool) Clear() {
	p.Phrases = nil
	p.CursorIndex = 0
	p.CurrentPad = nil
	p.Active = nil
}

// driftOffset computes the clamped drift draw described in DESIGN.md: the
// source's `rand in [0, round(drift*n)-1]` underflows to a negative upper
// bound when drift*n < 1, so the draw is skipped (offset 0) whenever that
// upper bound would be negative.
func driftOffset(drift float64, n int, rnd *rand.Rand) int {
	upper := int(math.Round(drift*float64(n))) - 1
	if upper < 0 {
		return 0
	}
	return rnd.Intn(upper + 1)
}

// GeneratePhrase selects the next pad in rotation (applying drift
// reordering to the cursor) and, if that pad carries a recorded phrase,
// seats it as the pool's ActivePhrase.
func (p *Pool) GeneratePhrase(bias, drift float64, rnd *rand.Rand, k *kit.Kit) error {
	if len(p.Phrases) == 0 {
		p.CurrentPad = nil
		p.Active = nil
		return nil
	}

	n := len(p.Phrases)
	offset := driftOffset(drift, n, rnd)
	pad := p.Phrases[(p.CursorIndex+offset)%n]
	p.CursorIndex = (p.CursorIndex + 1) % n
	p.CurrentPad = &pad

	phrase := k.Pads[pad].Phrase
	if phrase == nil {
		p.Active = nil
		return nil
	}
	return p.generateActive(phrase, 0, bias, drift, rnd, k)
}

// generateActive seats a freshly-selected phrase as p.Active, consuming the
// step-0 event immediately if the phrase starts on the downbeat.
func (p *Pool) generateActive(phrase *kit.Phrase, nowStep uint16, bias, drift float64, rnd *rand.Rand, k *kit.Kit) error {
	ap := &activeevent.ActivePhrase{PhraseRemaining: phrase.Len}
	if len(phrase.Events) == 0 {
		ap.Active = activeevent.ActiveEvent{Kind: kit.EventSync}
		ap.EventRemaining = phrase.Len
		p.Active = ap
		return nil
	}

	if phrase.Events[0].Step == 0 {
		if err := p.generateStamped(ap, phrase, 0, nowStep, bias, drift, rnd, k); err != nil {
			return err
		}
	} else {
		ap.Active = activeevent.ActiveEvent{Kind: kit.EventSync}
		ap.NextEventIndex = 0
		ap.EventRemaining = phrase.Events[0].Step
	}
	p.Active = ap
	return nil
}

// generateStamped selects the stamped event at (index+driftOffset) mod
// |events|, computes the remaining-steps count until the next event (or
// phrase end), and transitions ap.Active into it.
func (p *Pool) generateStamped(ap *activeevent.ActivePhrase, phrase *kit.Phrase, index int, nowStep uint16, bias, drift float64, rnd *rand.Rand, k *kit.Kit) error {
	n := len(phrase.Events)
	offset := driftOffset(drift, n, rnd)
	chosenIdx := (index + offset) % n
	chosen := phrase.Events[chosenIdx]

	if err := activeevent.Transition(&ap.Active, chosen.Event, nowStep, bias, rnd, k); err != nil {
		return err
	}

	next := index + 1
	ap.NextEventIndex = next
	if next >= n {
		ap.EventRemaining = phrase.Len - chosen.Step
	} else {
		ap.EventRemaining = phrase.Events[next].Step - chosen.Step
	}
	return nil
}

// Advance steps the pool's ActivePhrase by one clock step, regenerating the
// phrase or advancing to the next stamped event as their remaining counters
// reach zero.
func (p *Pool) Advance(nowStep uint16, bias, drift float64, rnd *rand.Rand, k *kit.Kit) error {
	if p.Active == nil {
		return nil
	}
	p.Active.EventRemaining--
	p.Active.PhraseRemaining--

	if p.Active.PhraseRemaining == 0 {
		return p.GeneratePhrase(bias, drift, rnd, k)
	}
	if p.Active.EventRemaining == 0 {
		phrase := p.currentPhrase(k)
		if phrase == nil || len(phrase.Events) == 0 {
			return nil
		}
		return p.generateStamped(p.Active, phrase, p.Active.NextEventIndex%len(phrase.Events), nowStep, bias, drift, rnd, k)
	}
	return nil
}

func (p *Pool) currentPhrase(k *kit.Kit) *kit.Phrase {
	if p.CurrentPad == nil {
		return nil
	}
	return k.Pads[*p.CurrentPad].Phrase
}
