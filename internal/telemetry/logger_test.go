package telemetry

import (
	"testing"
	"time"
)

func TestLogDropsWhenComponentDisabled(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()

	l.Log(ComponentAudio, LogLevelError, "should be dropped", nil)
	time.Sleep(10 * time.Millisecond)
	if entries := l.GetRecentEntries(10); len(entries) != 0 {
		t.Fatalf("expected no entries for a disabled component, got %d", len(entries))
	}
}

func TestLogRecordsWhenEnabled(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()
	l.SetComponentEnabled(ComponentAudio, true)

	l.LogAudio(LogLevelError, "device failed", nil)
	time.Sleep(10 * time.Millisecond)
	entries := l.GetRecentEntries(10)
	if len(entries) != 1 || entries[0].Message != "device failed" {
		t.Fatalf("entries = %+v, want one entry with message 'device failed'", entries)
	}
}

func TestMinLevelFiltersLowerSeverity(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()
	l.SetComponentEnabled(ComponentBank, true)
	l.SetMinLevel(LogLevelWarning)

	l.LogBank(LogLevelDebug, "too verbose", nil)
	l.LogBank(LogLevelError, "important", nil)
	time.Sleep(10 * time.Millisecond)

	entries := l.GetRecentEntries(10)
	if len(entries) != 1 || entries[0].Message != "important" {
		t.Fatalf("entries = %+v, want only the error-level message", entries)
	}
}

func TestRingBufferBoundsEntryCount(t *testing.T) {
	l := NewLogger(100)
	defer l.Shutdown()
	l.SetComponentEnabled(ComponentPool, true)

	for i := 0; i < 150; i++ {
		l.LogPool(LogLevelInfo, "entry", nil)
	}
	time.Sleep(20 * time.Millisecond)

	entries := l.GetRecentEntries(1000)
	if len(entries) != 100 {
		t.Fatalf("ring-bounded entry count = %d, want 100", len(entries))
	}
}
