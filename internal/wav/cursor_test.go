package wav

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestWav(t *testing.T, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	data := make([]byte, HeaderLen+len(body))
	copy(data[HeaderLen:], body)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write test wav: %v", err)
	}
	return path
}

func TestOpenRejectsFileWithNoBody(t *testing.T) {
	path := writeTestWav(t, nil)
	if _, err := Open(path); err == nil {
		t.Fatalf("expected error opening a header-only wav")
	}
}

func TestSeekWrapsEuclidean(t *testing.T) {
	path := writeTestWav(t, make([]byte, 16))
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if err := c.Seek(-4); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if c.Pos() != 12 {
		t.Fatalf("pos after seek(-4) on len 16 = %d, want 12", c.Pos())
	}

	if err := c.Seek(20); err != nil {
		t.Fatalf("seek: %v", err)
	}
	if c.Pos() != 4 {
		t.Fatalf("pos after seek(20) on len 16 = %d, want 4", c.Pos())
	}
}

func TestReadLoopsOnEOFInsteadOfErroring(t *testing.T) {
	body := []byte{1, 2, 3, 4}
	path := writeTestWav(t, body)
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if err := c.Seek(2); err != nil {
		t.Fatalf("seek: %v", err)
	}

	dst := make([]byte, 6)
	if err := c.Read(dst); err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []byte{3, 4, 1, 2, 3, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("read wrapped bytes = %v, want %v", dst, want)
		}
	}
	if c.Pos() != 0 {
		t.Fatalf("pos after wrapping read = %d, want 0 ((2+6) mod 4)", c.Pos())
	}
}

func TestDupOpensIndependentHandle(t *testing.T) {
	path := writeTestWav(t, make([]byte, 8))
	c, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close()

	if err := c.Seek(6); err != nil {
		t.Fatalf("seek: %v", err)
	}

	d, err := c.Dup(path)
	if err != nil {
		t.Fatalf("dup: %v", err)
	}
	defer d.Close()

	if d.Pos() != 0 {
		t.Fatalf("dup pos = %d, want 0 (independent of original cursor position)", d.Pos())
	}
}
