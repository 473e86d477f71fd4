package kit

import "encoding/json"

// padJSON mirrors the on-disk pad shape: `{"onsets":[onset|null,onset|null],"phrase":phrase|null}`.
type padJSON struct {
	Onsets [2]*Onset `json:"onsets"`
	Phrase *Phrase   `json:"phrase"`
}

// MarshalJSON renders a Pad as its two-slot onset array plus optional phrase.
func (p Pad) MarshalJSON() ([]byte, error) {
	return json.Marshal(padJSON{Onsets: [2]*Onset{p.AltA, p.AltB}, Phrase: p.Phrase})
}

// UnmarshalJSON parses a Pad from its on-disk shape.
func (p *Pad) UnmarshalJSON(data []byte) error {
	var raw padJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.AltA = raw.Onsets[0]
	p.AltB = raw.Onsets[1]
	p.Phrase = raw.Phrase
	return nil
}

// kitJSON mirrors the on-disk kit shape: `{"inner":[pad, ...N]}`.
type kitJSON struct {
	Inner [PadCount]Pad `json:"inner"`
}

// MarshalJSON renders a Kit as its "inner" pad array.
func (k Kit) MarshalJSON() ([]byte, error) {
	return json.Marshal(kitJSON{Inner: k.Pads})
}

// UnmarshalJSON parses a Kit from its on-disk shape.
func (k *Kit) UnmarshalJSON(data []byte) error {
	var raw kitJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	k.Pads = raw.Inner
	return nil
}

// Scene is the full persisted state: PadCount-wide kit arrays for each of
// the two banks.
type Scene struct {
	KitA [PadCount]Kit `json:"kit_a"`
	KitB [PadCount]Kit `json:"kit_b"`
}

// NewScene returns a Scene with every kit and pad zero-valued (no onsets,
// no phrases).
func NewScene() *Scene {
	return &Scene{}
}
