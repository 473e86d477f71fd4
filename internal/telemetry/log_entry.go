package telemetry

import (
	"fmt"
	"time"
)

// LogLevel represents the severity of a log entry.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNone:
		return "NONE"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component names the subsystem that produced a log entry.
type Component string

const (
	ComponentAudio     Component = "Audio"
	ComponentBank      Component = "Bank"
	ComponentMIDI      Component = "MIDI"
	ComponentRecorder  Component = "Recorder"
	ComponentPool      Component = "Pool"
	ComponentScene     Component = "Scene"
	ComponentUI        Component = "UI"
)

// LogEntry is a single recorded event.
type LogEntry struct {
	Timestamp time.Time
	Component Component
	Level     LogLevel
	Message   string
	Data      map[string]interface{}
}

// Format renders the entry the way the terminal UI and any flushed file dump present it.
func (e *LogEntry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}
