// Package wav implements WavCursor: a seekable reader over the PCM body of
// a 16-bit mono WAV file that wraps byte offsets modulo the PCM length
// instead of ever returning EOF.
package wav

import (
	"fmt"
	"io"
	"os"
)

// HeaderLen is the fixed WAV header size before the PCM body starts.
const HeaderLen = 44

// Cursor wraps an open file handle positioned somewhere inside a WAV's PCM
// body. All offsets are maintained in bytes, relative to the body start.
// Sample (word) alignment is the caller's responsibility.
type Cursor struct {
	file *os.File
	len  int64 // PCM body length in bytes
	pos  int64 // current offset relative to body start, always in [0, len)
}

// Open opens path and creates a Cursor over its PCM body, whose length is
// derived from the file size minus HeaderLen.
func Open(path string) (*Cursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wav: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("wav: stat %s: %w", path, err)
	}
	bodyLen := info.Size() - HeaderLen
	if bodyLen <= 0 {
		f.Close()
		return nil, fmt.Errorf("wav: %s has no PCM body (size %d)", path, info.Size())
	}
	c := &Cursor{file: f, len: bodyLen}
	if _, err := f.Seek(HeaderLen, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("wav: seek %s: %w", path, err)
	}
	return c, nil
}

// Dup opens a fresh, independent handle onto path (the file c was opened
// on), positioned at offset 0. c itself is not read or moved.
func (c *Cursor) Dup(path string) (*Cursor, error) {
	return Open(path)
}

// Len returns the PCM body length in bytes.
func (c *Cursor) Len() int64 { return c.len }

// Pos returns the current offset relative to the PCM body start.
func (c *Cursor) Pos() int64 { return c.pos }

// mod computes the Euclidean modulus of offset by c.len: always in [0, len).
func (c *Cursor) mod(offset int64) int64 {
	m := offset % c.len
	if m < 0 {
		m += c.len
	}
	return m
}

// Seek repositions to byte HeaderLen + (offset mod len) using Euclidean
// modulus so negative offsets wrap forward rather than erroring.
func (c *Cursor) Seek(offset int64) error {
	c.pos = c.mod(offset)
	_, err := c.file.Seek(HeaderLen+c.pos, io.SeekStart)
	if err != nil {
		return fmt.Errorf("wav: seek: %w", err)
	}
	return nil
}

// Read fills dst from the current position. If EOF is reached mid-fill, it
// wraps to the PCM body start and continues: reads never fail on EOF, they
// loop. A short underlying read that is not EOF is also retried against the
// same position, since the only failure mode this cursor recognizes is a
// genuine I/O error.
func (c *Cursor) Read(dst []byte) error {
	filled := 0
	for filled < len(dst) {
		n, err := c.file.Read(dst[filled:])
		filled += n
		c.pos += int64(n)
		if c.pos >= c.len {
			if err2 := c.Seek(0); err2 != nil {
				return err2
			}
		}
		if err != nil {
			if err == io.EOF {
				continue
			}
			return fmt.Errorf("wav: read: %w", err)
		}
	}
	return nil
}

// Close releases the underlying file handle.
func (c *Cursor) Close() error {
	return c.file.Close()
}
