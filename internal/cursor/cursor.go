// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package cursor provides a buffered, bounds-checked reader
// over a byte source of known size.
package cursor

import (
	"errors"
	"fmt"
	"io"
)

const defaultBufSize = 4096

// A Cursor reads from an [io.ReaderAt] starting at a current position.
// Reads never go past the size given at construction
// and seeks outside [0, size] fail with [ErrOutOfBounds].
// A Cursor is not safe for concurrent use.
type Cursor struct {
	ra   io.ReaderAt
	size int64
	pos  int64

	// buf holds nbuf bytes of the source starting at bufPos.
	buf    []byte
	bufPos int64
	nbuf   int
}

// New returns a new [Cursor] positioned at the start of ra
// whose buffer has the default size.
func New(ra io.ReaderAt, size int64) *Cursor {
	return NewSize(ra, size, defaultBufSize)
}

// NewSize returns a new [Cursor] positioned at the start of ra
// whose buffer has at least the specified size.
func NewSize(ra io.ReaderAt, size int64, bufSize int) *Cursor {
	return &Cursor{
		ra:   ra,
		size: max(size, 0),
		buf:  make([]byte, max(bufSize, 16)),
	}
}

// Size returns the number of bytes in the source.
func (c *Cursor) Size() int64 {
	return c.size
}

// Offset returns the current position.
func (c *Cursor) Offset() int64 {
	return c.pos
}

// Read reads data into p.
// It returns [io.EOF] only when the cursor is at the end of the source.
// If the source is shorter than its declared size,
// Read returns [io.ErrUnexpectedEOF].
func (c *Cursor) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if c.pos >= c.size {
		return 0, io.EOF
	}
	if remaining := c.size - c.pos; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	w := c.window()
	if len(w) == 0 {
		if len(p) >= len(c.buf) {
			// Large read, empty buffer.
			// Read directly into p to avoid copy.
			n, err = c.readAt(p, c.pos)
			c.pos += int64(n)
			return n, err
		}
		if err := c.fill(); err != nil {
			return 0, err
		}
		w = c.window()
	}
	n = copy(p, w)
	c.pos += int64(n)
	return n, nil
}

// window returns the buffered bytes at the current position.
func (c *Cursor) window() []byte {
	if c.pos < c.bufPos || c.pos >= c.bufPos+int64(c.nbuf) {
		return nil
	}
	return c.buf[c.pos-c.bufPos : c.nbuf]
}

func (c *Cursor) fill() error {
	n := int(min(int64(len(c.buf)), c.size-c.pos))
	m, err := c.readAt(c.buf[:n], c.pos)
	c.bufPos = c.pos
	c.nbuf = m
	if m == 0 {
		return err
	}
	return nil
}

func (c *Cursor) readAt(p []byte, off int64) (int, error) {
	n, err := c.ra.ReadAt(p, off)
	if n < len(p) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return n, err
	}
	return n, nil
}

// Seek sets the position for the next Read to offset, interpreted according to whence;
// see the [io.Seeker] docs.
// Seeking before the start or past the end of the source is an error
// that leaves the position unchanged.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = c.pos + offset
	case io.SeekEnd:
		abs = c.size + offset
	default:
		return c.pos, fmt.Errorf("cursor: invalid whence %d", whence)
	}
	if abs < 0 || abs > c.size {
		return c.pos, fmt.Errorf("cursor: seek to %d: %w (size is %d)", abs, ErrOutOfBounds, c.size)
	}
	c.pos = abs
	return abs, nil
}

// Peek returns the next n bytes without advancing the cursor.
// If fewer than n bytes remain, Peek returns the remaining bytes
// along with [io.EOF] (if none remain) or [io.ErrUnexpectedEOF].
func (c *Cursor) Peek(n int) ([]byte, error) {
	defer c.Mark()()
	buf := make([]byte, n)
	m, err := io.ReadFull(c, buf)
	return buf[:m], err
}

// Mark returns a function that restores c to its current position.
// It is typically used as:
//
//	defer c.Mark()()
func (c *Cursor) Mark() (restore func()) {
	pos := c.pos
	return func() { c.pos = pos }
}

// At seeks to off, calls f, and then restores c to its original position,
// regardless of how f moved the cursor or whether it failed.
func (c *Cursor) At(off int64, f func() error) error {
	defer c.Mark()()
	if _, err := c.Seek(off, io.SeekStart); err != nil {
		return err
	}
	return f()
}

// Contains reports whether the byte range [off, off+n) lies within the source.
func (c *Cursor) Contains(off, n int64) bool {
	return off >= 0 && n >= 0 && off <= c.size && n <= c.size-off
}

// ErrOutOfBounds is wrapped by errors for seeks outside of the source.
var ErrOutOfBounds = errors.New("offset out of bounds")
