package recorder

import (
	"math/rand"
	"testing"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

func TestPushEvictsEntriesMaxPhraseLenStepsOld(t *testing.T) {
	r := New()
	r.Push(kit.Hold(0), 0)
	r.Push(kit.Hold(1), kit.MaxPhraseLen-1)
	r.Push(kit.Hold(2), kit.MaxPhraseLen)

	if len(r.ring) != 2 {
		t.Fatalf("ring length = %d, want 2 (the step-0 entry should have aged out)", len(r.ring))
	}
	if r.ring[0].Step != kit.MaxPhraseLen-1 || r.ring[1].Step != kit.MaxPhraseLen {
		t.Fatalf("ring = %+v, want entries at steps %d and %d", r.ring, kit.MaxPhraseLen-1, kit.MaxPhraseLen)
	}
}

func TestBakeTrimTakePipeline(t *testing.T) {
	r := New()
	r.Push(kit.Hold(3), 10)
	r.Push(kit.Sync(), 12)

	r.Bake(20)
	phrase := r.Trim(8)
	if phrase.Len != 8 {
		t.Fatalf("trimmed phrase len = %d, want 8", phrase.Len)
	}

	got, active := r.Take()
	if got != phrase {
		t.Fatalf("Take returned a different phrase than Trim produced")
	}
	_ = active
}

func TestEventRemainingSumsToPhraseLength(t *testing.T) {
	phrase := &kit.Phrase{
		Len: 16,
		Events: []kit.Stamped{
			{Event: kit.Sync(), Step: 0},
			{Event: kit.Hold(1), Step: 5},
			{Event: kit.Hold(2), Step: 9},
		},
	}

	total := uint16(0)
	for i := range phrase.Events {
		total += eventRemaining(phrase, i+1, phrase.Events[i].Step)
	}
	if total != phrase.Len {
		t.Fatalf("sum of event-remaining spans = %d, want phrase length %d", total, phrase.Len)
	}
}

func TestGeneratePhraseOffDownbeatStartsWithSyncPlaceholder(t *testing.T) {
	k := &kit.Kit{}
	r := New()
	r.Phrase = &kit.Phrase{
		Len:    10,
		Events: []kit.Stamped{{Event: kit.Hold(0), Step: 3}},
	}
	rnd := rand.New(rand.NewSource(1))

	if err := r.GeneratePhrase(0, 0.5, rnd, k); err != nil {
		t.Fatalf("generate phrase: %v", err)
	}
	if r.Active.Active.Kind != kit.EventSync {
		t.Fatalf("a phrase not starting on the downbeat should seat a Sync placeholder, got kind %v", r.Active.Active.Kind)
	}
	if r.Active.EventRemaining != 3 {
		t.Fatalf("event remaining = %d, want 3 (steps until the first event)", r.Active.EventRemaining)
	}
	if r.Active.PhraseRemaining != 10 {
		t.Fatalf("phrase remaining = %d, want 10", r.Active.PhraseRemaining)
	}
}
