// Package audioengine implements AudioEngine: the top-level owner of the
// two BankEngines and the Scene, the command-channel demultiplexer, and the
// per-callback grain mixer.
package audioengine

import (
	"github.com/retrocoderamen/grain-bank-dx/internal/bank"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
	"github.com/retrocoderamen/grain-bank-dx/internal/scene"
	"github.com/retrocoderamen/grain-bank-dx/internal/telemetry"
)

// Engine owns everything the audio thread touches: two banks, the scene
// they read from, and the running clock/tempo/blend state. Nothing here is
// safe to touch from another goroutine; commands arrive over Commands and
// are drained once per callback.
type Engine struct {
	Commands chan Cmd

	quant bool
	clock float32
	tempo float32
	blend float32

	scene *kit.Scene
	A     *bank.Engine
	B     *bank.Engine

	logger *telemetry.Logger
}

// New creates an AudioEngine over scene with the given command channel
// capacity. Bank A and B are seeded deterministically but distinctly so
// their alt/drift draws don't lock-step.
func New(scene *kit.Scene, commandBuffer int, logger *telemetry.Logger) *Engine {
	return &Engine{
		Commands: make(chan Cmd, commandBuffer),
		blend:    0.5,
		scene:    scene,
		A:        bank.New("A", &scene.KitA, 1, logger),
		B:        bank.New("B", &scene.KitB, 2, logger),
		logger:   logger,
	}
}

// Tempo returns the current step-rate tempo.
func (e *Engine) Tempo() float32 { return e.tempo }

// Clock returns the current step-unit clock value.
func (e *Engine) Clock() float32 { return e.clock }

// Scene returns the scene currently backing both banks.
func (e *Engine) Scene() *kit.Scene { return e.scene }

// step returns the clock truncated to the uint16 step index the bank state
// machines operate on.
func (e *Engine) step() uint16 { return uint16(e.clock) }

// DrainCommands processes every command currently queued, in order. Call
// once per output-callback invocation before Render.
func (e *Engine) DrainCommands() {
	for {
		select {
		case cmd, ok := <-e.Commands:
			if !ok {
				return
			}
			e.dispatch(cmd)
		default:
			return
		}
	}
}

func (e *Engine) dispatch(cmd Cmd) {
	switch c := cmd.(type) {
	case ClockCmd:
		e.quant = true
		e.A.Clock(e.step())
		e.B.Clock(e.step())
		e.clock++
	case StopCmd:
		e.quant = false
		e.A.Stop()
		e.B.Stop()
		e.clock = 0
	case AssignTempoCmd:
		e.tempo = c.Value
	case AssignBlendCmd:
		e.blend = c.Value
	case OffsetSpeedCmd:
		e.A.SetSpeedOffset(c.Value)
		e.B.SetSpeedOffset(c.Value)
	case SaveSceneCmd:
		if err := scene.Save(e.scene, c.Path); err != nil && e.logger != nil {
			e.logger.LogScene(telemetry.LogLevelError, "save scene failed: "+err.Error(), nil)
		}
	case LoadSceneCmd:
		if c.Scene != nil {
			e.scene = c.Scene
			e.A = bank.New("A", &e.scene.KitA, 1, e.logger)
			e.B = bank.New("B", &e.scene.KitB, 2, e.logger)
		}
	case BankTargetCmd:
		e.dispatchBank(c.Bank, c.Cmd)
	}
}

func (e *Engine) dispatchBank(tag BankTag, cmd BankCmd) {
	target := e.A
	if tag == BankB {
		target = e.B
	}
	step := e.step()

	switch c := cmd.(type) {
	case AssignSpeedCmd:
		target.AssignSpeed(c.Value)
	case AssignDriftCmd:
		target.AssignDrift(c.Value)
	case AssignBiasCmd:
		target.AssignBias(c.Value)
	case AssignWidthCmd:
		target.AssignWidth(c.Value)
	case AssignReverseCmd:
		target.AssignReverse(c.Value, step)
	case AssignKitCmd:
		target.AssignKit(c.Index)
	case LoadKitCmd:
		target.LoadKit(c.Index, step)
	case AssignOnsetCmd:
		target.AssignOnset(c.Pad, c.Alt, c.Onset, step)
	case ForceEventCmd:
		target.ForceEvent(c.Event, step)
	case PushEventCmd:
		target.PushEvent(c.Event, e.quant, step)
	case TakeRecordCmd:
		if c.Pad != nil {
			target.TakeRecord(*c.Pad)
		}
	case BakeRecordCmd:
		target.BakeRecord(c.Len, step)
	case ClearPoolCmd:
		target.ClearPool()
	case PushPoolCmd:
		target.PushPool(c.Pad)
	}
}

// Render zero-fills a grainLen-frame stereo buffer and has each bank
// mix-add its grain into it, weighted by the cross-fade blend (A at
// 1-blend, B at blend).
func (e *Engine) Render(grainLen int) []float32 {
	out := make([]float32, grainLen*2)

	if a, err := e.A.Render(e.tempo, grainLen); err == nil && a != nil {
		gain := 1 - e.blend
		for i := range out {
			out[i] += a[i] * gain
		}
	}
	if b, err := e.B.Render(e.tempo, grainLen); err == nil && b != nil {
		gain := e.blend
		for i := range out {
			out[i] += b[i] * gain
		}
	}

	return out
}
