package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retrocoderamen/grain-bank-dx/internal/audiodevice"
	"github.com/retrocoderamen/grain-bank-dx/internal/audioengine"
	"github.com/retrocoderamen/grain-bank-dx/internal/config"
	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
	"github.com/retrocoderamen/grain-bank-dx/internal/midiio"
	"github.com/retrocoderamen/grain-bank-dx/internal/scene"
	"github.com/retrocoderamen/grain-bank-dx/internal/telemetry"
	"github.com/retrocoderamen/grain-bank-dx/internal/tui"
	"github.com/retrocoderamen/grain-bank-dx/internal/wavkit"
)

func main() {
	settingsPath := config.Path()
	saved, err := config.Load(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
	}

	kitsDir := flag.String("kits", "", "Directory of .wav samples (with optional .rd sidecars) to scan at startup")
	scenePath := flag.String("scene", saved.LastScenePath, "Path to a scene JSON file to load at startup")
	midiPort := flag.String("midi-in", saved.LastMIDIPort, "MIDI input port name (first available if empty)")
	sampleRate := flag.Int("sample-rate", kit.SampleRate, "Audio output sample rate in Hz")
	grainLen := flag.Int("grain-len", kit.GrainLen, "Frames rendered per audio callback")
	commandBuffer := flag.Int("command-buffer", 256, "Capacity of the MIDI-to-audio command channel")
	enableLog := flag.Bool("log", false, "Enable telemetry logging (disabled by default)")
	headless := flag.Bool("headless", false, "Run without the terminal status view")
	flag.Parse()

	var sc *kit.Scene
	if *scenePath != "" {
		loaded, err := scene.Load(*scenePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
			os.Exit(1)
		}
		sc = loaded
	} else {
		sc = kit.NewScene()
	}

	logger := telemetry.NewLogger(2000)
	if *enableLog {
		logger.SetComponentEnabled(telemetry.ComponentAudio, true)
		logger.SetComponentEnabled(telemetry.ComponentBank, true)
		logger.SetComponentEnabled(telemetry.ComponentMIDI, true)
		logger.SetComponentEnabled(telemetry.ComponentRecorder, true)
		logger.SetComponentEnabled(telemetry.ComponentPool, true)
		logger.SetComponentEnabled(telemetry.ComponentScene, true)
		logger.SetComponentEnabled(telemetry.ComponentUI, true)
	}
	defer logger.Shutdown()

	if *kitsDir != "" {
		samples, err := wavkit.Scan(*kitsDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning kits directory: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Found %d sample(s) in %s\n", len(samples), *kitsDir)
	}

	eng := audioengine.New(sc, *commandBuffer, logger)

	midiInput, stopMIDI, err := midiio.Open(*midiPort, eng.Commands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening MIDI input: %v\n", err)
		os.Exit(1)
	}
	_ = midiInput
	defer stopMIDI()

	dev, err := audiodevice.Open(*sampleRate, *grainLen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	var view *tui.View
	if !*headless {
		view, err = tui.Open()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening terminal view: %v\n", err)
			os.Exit(1)
		}
		defer view.Close()
	}

	fmt.Println("grain-bank-dx")
	fmt.Println("=============")
	if *scenePath != "" {
		fmt.Printf("Scene loaded: %s\n", *scenePath)
	} else {
		fmt.Println("Scene: blank")
	}
	fmt.Printf("MIDI input: %s\n", *midiPort)

	defer func() {
		if err := config.Save(settingsPath, config.Settings{
			LastScenePath: *scenePath,
			LastMIDIPort:  *midiPort,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save settings: %v\n", err)
		}
	}()

	go reloadSceneOnSIGHUP(*scenePath, eng.Commands, logger)

	grainPeriod := time.Second * time.Duration(*grainLen) / time.Duration(*sampleRate)
	ticker := time.NewTicker(grainPeriod)
	defer ticker.Stop()

	var quit <-chan struct{}
	if view != nil {
		quit = view.Quit()
	}

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			eng.DrainCommands()
			if dev.QueuedFrames() < uint32(*grainLen*3) {
				frames := eng.Render(*grainLen)
				if err := dev.Push(frames); err != nil && logger.IsComponentEnabled(telemetry.ComponentAudio) {
					logger.LogAudiof(telemetry.LogLevelError, "push audio: %v", err)
				}
			}
			if view != nil {
				view.PollKeys()
				view.Draw(eng, logger)
			}
		}
	}
}

// reloadSceneOnSIGHUP reloads scenePath and pushes it to the audio engine as
// a LoadSceneCmd every time the process receives SIGHUP, the conventional
// "reload configuration without restarting" signal. A no-op when scenePath
// is empty, since there's nothing on disk to reload from.
func reloadSceneOnSIGHUP(scenePath string, commands chan<- audioengine.Cmd, logger *telemetry.Logger) {
	if scenePath == "" {
		return
	}
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP)
	for range signals {
		loaded, err := scene.Load(scenePath)
		if err != nil {
			if logger.IsComponentEnabled(telemetry.ComponentScene) {
				logger.LogScene(telemetry.LogLevelError, "reload scene failed: "+err.Error(), nil)
			}
			continue
		}
		commands <- audioengine.LoadSceneCmd{Scene: loaded}
	}
}
