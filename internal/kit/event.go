package kit

import (
	"encoding/json"
	"fmt"
)

// EventKind tags the three shapes a user-level Event can take.
type EventKind uint8

const (
	EventSync EventKind = iota
	EventHold
	EventLoop
)

// Event is the user-level trigger: Sync (silence/no pad), Hold (sustain a
// pad's onset for as long as it is held) or Loop (repeat a fixed-length
// slice of a pad's onset). Pad and Len are meaningful only for the matching
// Kind.
type Event struct {
	Kind EventKind
	Pad  uint8
	Len  Fraction
}

// Sync constructs the Sync event.
func Sync() Event { return Event{Kind: EventSync} }

// Hold constructs a Hold event for the given pad.
func Hold(pad uint8) Event { return Event{Kind: EventHold, Pad: pad} }

// Loop constructs a Loop event for the given pad and length fraction.
func Loop(pad uint8, length Fraction) Event { return Event{Kind: EventLoop, Pad: pad, Len: length} }

// MarshalJSON renders the tagged-union shape required by the scene file
// format: "Sync" | {"Hold":{"index":u8}} | {"Loop":{"index":u8,"len":{...}}}.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EventSync:
		return json.Marshal("Sync")
	case EventHold:
		return json.Marshal(map[string]interface{}{
			"Hold": map[string]interface{}{"index": e.Pad},
		})
	case EventLoop:
		return json.Marshal(map[string]interface{}{
			"Loop": map[string]interface{}{"index": e.Pad, "len": e.Len},
		})
	default:
		return nil, fmt.Errorf("kit: unknown event kind %d", e.Kind)
	}
}

// UnmarshalJSON parses the tagged-union shape back into an Event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "Sync" {
			return fmt.Errorf("kit: unknown bare event tag %q", tag)
		}
		*e = Sync()
		return nil
	}

	var wrapper struct {
		Hold *struct {
			Index uint8 `json:"index"`
		} `json:"Hold"`
		Loop *struct {
			Index uint8    `json:"index"`
			Len   Fraction `json:"len"`
		} `json:"Loop"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("kit: decode event: %w", err)
	}
	switch {
	case wrapper.Hold != nil:
		*e = Hold(wrapper.Hold.Index)
	case wrapper.Loop != nil:
		*e = Loop(wrapper.Loop.Index, wrapper.Loop.Len)
	default:
		return fmt.Errorf("kit: event has neither Hold nor Loop tag")
	}
	return nil
}

// Stamped pairs an Event with the clock step at which it occurred.
type Stamped struct {
	Event Event  `json:"event"`
	Step  uint16 `json:"step"`
}
