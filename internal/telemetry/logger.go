package telemetry

import (
	"fmt"
	"sync"
	"time"
)

// Logger is a ring-buffered, component-scoped logger safe to call from the
// audio thread: Log never blocks and never allocates beyond the entry
// itself, and a full channel simply drops the entry rather than stalling
// the caller.
type Logger struct {
	entries    []LogEntry
	entriesMu  sync.RWMutex
	maxEntries int
	writeIndex int
	entryCount int

	componentEnabled map[Component]bool
	componentMu      sync.RWMutex

	minLevel LogLevel
	levelMu  sync.RWMutex

	logChan  chan LogEntry
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewLogger creates a logger with a ring buffer of at least 100 entries.
// All components are disabled until explicitly enabled; logging is opt-in.
func NewLogger(maxEntries int) *Logger {
	if maxEntries < 100 {
		maxEntries = 100
	}

	l := &Logger{
		entries:          make([]LogEntry, maxEntries),
		maxEntries:       maxEntries,
		componentEnabled: make(map[Component]bool),
		minLevel:         LogLevelInfo,
		logChan:          make(chan LogEntry, 1000),
		shutdown:         make(chan struct{}),
	}

	for _, c := range []Component{
		ComponentAudio, ComponentBank, ComponentMIDI,
		ComponentRecorder, ComponentPool, ComponentScene, ComponentUI,
	} {
		l.componentEnabled[c] = false
	}

	l.wg.Add(1)
	go l.process()

	return l
}

func (l *Logger) process() {
	defer l.wg.Done()
	for {
		select {
		case entry := <-l.logChan:
			l.store(entry)
		case <-l.shutdown:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case entry := <-l.logChan:
					l.store(entry)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) store(entry LogEntry) {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()

	l.entries[l.writeIndex] = entry
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
}

// Log enqueues an entry if the component is enabled and the level passes
// the minimum. Never blocks: a full channel drops the entry.
func (l *Logger) Log(component Component, level LogLevel, message string, data map[string]interface{}) {
	if !l.IsComponentEnabled(component) {
		return
	}
	if level > l.GetMinLevel() {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}

	select {
	case l.logChan <- entry:
	default:
		// Channel full: drop rather than block the audio thread.
	}
}

// Logf logs a formatted message.
func (l *Logger) Logf(component Component, level LogLevel, format string, args ...interface{}) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) LogAudio(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentAudio, level, message, data)
}
func (l *Logger) LogBank(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentBank, level, message, data)
}
func (l *Logger) LogMIDI(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentMIDI, level, message, data)
}
func (l *Logger) LogRecorder(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentRecorder, level, message, data)
}
func (l *Logger) LogPool(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentPool, level, message, data)
}
func (l *Logger) LogScene(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentScene, level, message, data)
}
func (l *Logger) LogUI(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentUI, level, message, data)
}

func (l *Logger) LogAudiof(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentAudio, level, format, args...)
}
func (l *Logger) LogBankf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentBank, level, format, args...)
}
func (l *Logger) LogMIDIf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentMIDI, level, format, args...)
}

// GetRecentEntries returns the most recent count entries, oldest first.
func (l *Logger) GetRecentEntries(count int) []LogEntry {
	l.entriesMu.RLock()
	defer l.entriesMu.RUnlock()

	if l.entryCount == 0 {
		return []LogEntry{}
	}

	all := make([]LogEntry, l.entryCount)
	if l.entryCount < l.maxEntries {
		copy(all, l.entries[:l.entryCount])
	} else {
		for i := 0; i < l.entryCount; i++ {
			idx := (l.writeIndex + i) % l.maxEntries
			all[i] = l.entries[idx]
		}
	}

	if count >= len(all) {
		return all
	}
	return all[len(all)-count:]
}

// SetComponentEnabled toggles logging for a component.
func (l *Logger) SetComponentEnabled(component Component, enabled bool) {
	l.componentMu.Lock()
	defer l.componentMu.Unlock()
	l.componentEnabled[component] = enabled
}

// IsComponentEnabled reports whether a component is enabled.
func (l *Logger) IsComponentEnabled(component Component) bool {
	l.componentMu.RLock()
	defer l.componentMu.RUnlock()
	return l.componentEnabled[component]
}

// SetMinLevel sets the minimum level that will be enqueued.
func (l *Logger) SetMinLevel(level LogLevel) {
	l.levelMu.Lock()
	defer l.levelMu.Unlock()
	l.minLevel = level
}

// GetMinLevel returns the current minimum level.
func (l *Logger) GetMinLevel() LogLevel {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.minLevel
}

// Shutdown stops the processing goroutine after draining pending entries.
func (l *Logger) Shutdown() {
	close(l.shutdown)
	l.wg.Wait()
}
