// Package midiio is the MIDI-parsing collaborator §2 of the engine
// specification treats as external to the realtime engine: it opens a MIDI
// input port, translates note/CC/clock messages into audioengine.Cmd
// values, and derives tempo from the gaps between 24-PPQ clock pulses.
package midiio

import (
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/retrocoderamen/grain-bank-dx/internal/audioengine"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// PadMapping fixes which note numbers trigger which pads, which MIDI
// channel addresses which bank, and which CC numbers drive which per-bank
// knobs. Grounded on the original's fixed note-to-pad table (src/input.rs
// in original_source/) and SPEC_FULL.md's mapping table: notes NoteBase..
// NoteBase+PadCount-1 trigger pads 0..PadCount-1 on either channel, and the
// channel selects which bank those notes (and the per-bank CCs) target.
type PadMapping struct {
	NoteBase uint8 // first note of PadCount consecutive notes -> pads 0..N-1
	ChannelA uint8 // MIDI channel that addresses bank A
	ChannelB uint8 // MIDI channel that addresses bank B
	CCDrift  uint8
	CCBias   uint8
	CCWidth  uint8
	CCBlend  uint8
}

// DefaultMapping matches the original's layout: PadCount consecutive notes
// starting at MIDI note 36 (C1), channel 0 addressing bank A and channel 1
// addressing bank B, with CC 1-4 driving drift/bias/width/blend.
func DefaultMapping() PadMapping {
	return PadMapping{
		NoteBase: 36,
		ChannelA: 0,
		ChannelB: 1,
		CCDrift:  1,
		CCBias:   2,
		CCWidth:  3,
		CCBlend:  4,
	}
}

// Input owns the open MIDI port and the clock-timing state needed to
// derive tempo from 24-PPQ pulse gaps.
type Input struct {
	mapping PadMapping
	out     chan<- audioengine.Cmd

	lastClock  time.Time
	haveClock  bool
	pulseCount int
}

// Open opens the named MIDI input port (or the first available port when
// name is empty) and returns an Input that will send translated commands
// to out.
func Open(name string, out chan<- audioengine.Cmd) (*Input, func() error, error) {
	in, err := findPort(name)
	if err != nil {
		return nil, nil, err
	}

	input := &Input{mapping: DefaultMapping(), out: out}
	stop, err := midi.ListenTo(in, input.handle)
	if err != nil {
		return nil, nil, fmt.Errorf("midiio: listen: %w", err)
	}
	return input, stop, nil
}

func findPort(name string) (drivers.In, error) {
	if name == "" {
		return midi.FindInPort("")
	}
	return midi.FindInPort(name)
}

func (in *Input) handle(msg midi.Message, _ int32) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		in.noteOn(ch, key, vel)
	case msg.GetNoteOff(&ch, &key, &vel):
		in.noteOff(ch, key)
	case msg.GetControlChange(&ch, &key, &vel):
		in.controlChange(ch, key, vel)
	default:
		switch msg {
		case midi.TimingClockMsg:
			in.clockPulse()
		case midi.StartMsg, midi.ContinueMsg:
			// transport start/continue: nothing beyond clock pulses is
			// modeled, matching §4.6's Clock/Stop-only surface.
		case midi.StopMsg:
			in.send(audioengine.StopCmd{})
			in.haveClock = false
			in.pulseCount = 0
		}
	}
}

// clockPulse counts 24-PPQ pulses into one StepDiv-th-note step and times
// the gap between them to derive tempo.
func (in *Input) clockPulse() {
	now := time.Now()
	if in.haveClock {
		gap := now.Sub(in.lastClock)
		if gap > 0 {
			pulsesPerStep := kit.PPQ / kit.StepDiv
			stepSeconds := gap.Seconds() * float64(pulsesPerStep)
			if stepSeconds > 0 {
				stepsPerMinute := 60.0 / stepSeconds
				in.send(audioengine.AssignTempoCmd{Value: float32(stepsPerMinute / kit.StepDiv)})
			}
		}
	}
	in.lastClock = now
	in.haveClock = true

	in.pulseCount++
	pulsesPerStep := kit.PPQ / kit.StepDiv
	if in.pulseCount >= pulsesPerStep {
		in.pulseCount = 0
		in.send(audioengine.ClockCmd{})
	}
}

func (in *Input) noteOn(ch, key, vel uint8) {
	if vel == 0 {
		in.noteOff(ch, key)
		return
	}
	bank, pad, ok := in.mapping.resolve(ch, key)
	if !ok {
		return
	}
	in.send(audioengine.BankTargetCmd{Bank: bank, Cmd: audioengine.PushEventCmd{Event: kit.Hold(pad)}})
}

func (in *Input) noteOff(ch, key uint8) {
	bank, _, ok := in.mapping.resolve(ch, key)
	if !ok {
		return
	}
	in.send(audioengine.BankTargetCmd{Bank: bank, Cmd: audioengine.PushEventCmd{Event: kit.Sync()}})
}

func (in *Input) controlChange(ch, cc, value uint8) {
	v := float32(value) / 127
	if cc == in.mapping.CCBlend {
		in.send(audioengine.AssignBlendCmd{Value: v})
		return
	}

	bank, ok := in.mapping.bankForChannel(ch)
	if !ok {
		return
	}
	switch cc {
	case in.mapping.CCDrift:
		in.send(audioengine.BankTargetCmd{Bank: bank, Cmd: audioengine.AssignDriftCmd{Value: v}})
	case in.mapping.CCBias:
		in.send(audioengine.BankTargetCmd{Bank: bank, Cmd: audioengine.AssignBiasCmd{Value: v}})
	case in.mapping.CCWidth:
		in.send(audioengine.BankTargetCmd{Bank: bank, Cmd: audioengine.AssignWidthCmd{Value: v}})
	}
}

// bankForChannel maps a MIDI channel to the bank it addresses.
func (m PadMapping) bankForChannel(ch uint8) (audioengine.BankTag, bool) {
	switch ch {
	case m.ChannelA:
		return audioengine.BankA, true
	case m.ChannelB:
		return audioengine.BankB, true
	default:
		return 0, false
	}
}

// resolve maps a (channel, note) pair to a (bank, pad index): the channel
// selects the bank per SPEC_FULL.md's mapping table, and the note within
// NoteBase..NoteBase+PadCount-1 selects the pad on that bank.
func (m PadMapping) resolve(ch, note uint8) (audioengine.BankTag, uint8, bool) {
	bank, ok := m.bankForChannel(ch)
	if !ok {
		return 0, 0, false
	}
	if note < m.NoteBase || note >= m.NoteBase+kit.PadCount {
		return 0, 0, false
	}
	return bank, note - m.NoteBase, true
}

// send forwards a command, dropping it rather than blocking the MIDI
// callback if the audio side is falling behind.
func (in *Input) send(cmd audioengine.Cmd) {
	select {
	case in.out <- cmd:
	default:
	}
}
