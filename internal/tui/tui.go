// Package tui renders a terminal status view of both banks over tcell and
// translates terminal keystrokes into a quit signal. It is read-only with
// respect to engine state: all control still flows through MIDI, matching
// §2's "external collaborator" split for anything outside the realtime
// audio path. Grounded on the screen lifecycle and log-panel layout in
// jeebie/backend/terminal/terminal.go.
package tui

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/retrocoderamen/grain-bank-dx/internal/audioengine"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
	"github.com/retrocoderamen/grain-bank-dx/internal/telemetry"
)

// View owns the tcell screen and polls it for quit keystrokes between
// draws.
type View struct {
	screen tcell.Screen
	quit   chan struct{}
}

// Open initializes the terminal screen.
func Open() (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tui: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	v := &View{screen: screen, quit: make(chan struct{})}
	go v.handleSignals()
	return v, nil
}

func (v *View) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	close(v.quit)
}

// Quit is closed when the user asks to exit, either via Ctrl-C/q or a
// terminating signal.
func (v *View) Quit() <-chan struct{} { return v.quit }

// PollKeys drains pending key events, closing Quit on 'q', Escape or
// Ctrl-C. Call once per UI refresh tick.
func (v *View) PollKeys() {
	for v.screen.HasPendingEvent() {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				v.closeQuitOnce()
			}
		case *tcell.EventResize:
			v.screen.Sync()
		}
	}
}

func (v *View) closeQuitOnce() {
	select {
	case <-v.quit:
	default:
		close(v.quit)
	}
}

// Close tears down the terminal screen.
func (v *View) Close() {
	v.screen.Fini()
}

// Draw renders one frame of per-pad status for each bank's first kit (kit
// 0) plus the most recent log lines from logger. The bank's currently
// selected kit and the pool rotation are not shown.
func (v *View) Draw(eng *audioengine.Engine, logger *telemetry.Logger) {
	v.screen.Clear()

	width, height := v.screen.Size()
	title := fmt.Sprintf(" grain-bank-dx  clock=%.0f  tempo=%.1f ", eng.Clock(), eng.Tempo())
	v.drawLine(0, 0, width, title, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	v.drawBank(0, 2, "Bank A", eng.Scene().KitA[:])
	v.drawBank(0, 2+kit.PadCount+2, "Bank B", eng.Scene().KitB[:])

	logY := 2 + 2*(kit.PadCount+2)
	if logger != nil {
		v.drawLogs(0, logY, width, height, logger)
	}

	v.screen.Show()
}

func (v *View) drawBank(x, y int, label string, kits []kit.Kit) {
	v.drawLine(x, y, 40, label, tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true))
	if len(kits) == 0 {
		return
	}
	k := kits[0]
	for i, pad := range k.Pads {
		status := "."
		if pad.HasOnset() {
			status = "o"
		}
		if pad.Phrase != nil {
			status = "P"
		}
		v.screen.SetContent(x+i*2, y+1, rune(status[0]), nil, tcell.StyleDefault)
	}
}

func (v *View) drawLogs(x, y, width, height int, logger *telemetry.Logger) {
	available := height - y - 1
	if available <= 0 {
		return
	}
	entries := logger.GetRecentEntries(available)
	for i, e := range entries {
		line := e.Format()
		if len(line) > width {
			line = line[:width]
		}
		v.drawLine(x, y+i, width, line, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}

func (v *View) drawLine(x, y, width int, text string, style tcell.Style) {
	for i, ch := range text {
		if x+i >= width {
			break
		}
		v.screen.SetContent(x+i, y, ch, nil, style)
	}
}
