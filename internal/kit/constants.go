// Package kit holds the pure data model shared by every part of the engine:
// pads, onsets, phrases and the two-bank scene they live in. Nothing in this
// package touches a file handle or a channel.
package kit

// Constants that must match across every collaborator (engine, MIDI input,
// scene files): §6 of the engine specification.
const (
	SampleRate   = 48000
	GrainLen     = 1024
	PadCount     = 8
	PPQ          = 24
	StepDiv      = 4
	LoopDiv      = 8
	MaxPhraseLen = 1 << (PadCount - 1) // 128
)
