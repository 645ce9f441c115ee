// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package cursor

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestCursorRead(t *testing.T) {
	const data = "Hello, World!\n"
	for _, bufSize := range []int{0, 4, 16, 4096} {
		c := NewSize(strings.NewReader(data), int64(len(data)), bufSize)
		if err := iotest.TestReader(c, []byte(data)); err != nil {
			t.Errorf("bufSize=%d: %v", bufSize, err)
		}
	}
}

func TestCursorSizeLimit(t *testing.T) {
	const data = "Hello, World!\n"
	c := New(strings.NewReader(data), 5)
	got, err := io.ReadAll(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello" {
		t.Errorf("io.ReadAll(c) = %q; want %q", got, "Hello")
	}
	if c.Offset() != 5 {
		t.Errorf("c.Offset() = %d; want 5", c.Offset())
	}
}

func TestCursorShortSource(t *testing.T) {
	const data = "abc"
	for _, bufSize := range []int{0, 4096} {
		c := NewSize(strings.NewReader(data), 100, bufSize)
		buf := make([]byte, 50)
		n, err := io.ReadFull(c, buf)
		if n != len(data) || !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("bufSize=%d: io.ReadFull(c, make([]byte, 50)) = %d, %v; want %d, %v",
				bufSize, n, err, len(data), io.ErrUnexpectedEOF)
		}
	}
}

func TestCursorSeek(t *testing.T) {
	const data = "0123456789"
	c := New(strings.NewReader(data), int64(len(data)))

	tests := []struct {
		offset  int64
		whence  int
		want    int64
		wantErr bool
	}{
		{offset: 3, whence: io.SeekStart, want: 3},
		{offset: 2, whence: io.SeekCurrent, want: 5},
		{offset: -1, whence: io.SeekEnd, want: 9},
		{offset: 0, whence: io.SeekEnd, want: 10},
		{offset: 1, whence: io.SeekEnd, want: 10, wantErr: true},
		{offset: -11, whence: io.SeekCurrent, want: 10, wantErr: true},
		{offset: 1 << 40, whence: io.SeekStart, want: 10, wantErr: true},
		{offset: 0, whence: 42, want: 10, wantErr: true},
		{offset: 0, whence: io.SeekStart, want: 0},
	}
	for _, test := range tests {
		got, err := c.Seek(test.offset, test.whence)
		if got != test.want || (err != nil) != test.wantErr {
			t.Errorf("c.Seek(%d, %d) = %d, %v; want %d, <error=%t>", test.offset, test.whence, got, err, test.want, test.wantErr)
		}
		if err != nil && test.whence != 42 && !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("c.Seek(%d, %d) error = %v; want %v", test.offset, test.whence, err, ErrOutOfBounds)
		}
		if c.Offset() != test.want {
			t.Errorf("after c.Seek(%d, %d), c.Offset() = %d; want %d", test.offset, test.whence, c.Offset(), test.want)
		}
	}
}

func TestCursorSeekInvalidatesBuffer(t *testing.T) {
	const data = "abcdefghijklmnopqrstuvwxyz"
	c := NewSize(strings.NewReader(data), int64(len(data)), 16)
	var buf [3]byte
	if _, err := io.ReadFull(c, buf[:]); err != nil {
		t.Fatal(err)
	}
	for _, off := range []int64{20, 1, 17, 0, 23} {
		if _, err := c.Seek(off, io.SeekStart); err != nil {
			t.Fatal(err)
		}
		if _, err := io.ReadFull(c, buf[:]); err != nil {
			t.Fatal(err)
		}
		if got, want := string(buf[:]), data[off:off+3]; got != want {
			t.Errorf("read at %d = %q; want %q", off, got, want)
		}
	}
}

func TestCursorPeek(t *testing.T) {
	const data = "!<arch>\nrest"
	c := New(strings.NewReader(data), int64(len(data)))
	got, err := c.Peek(8)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "!<arch>\n" {
		t.Errorf("c.Peek(8) = %q; want %q", got, "!<arch>\n")
	}
	if c.Offset() != 0 {
		t.Errorf("after c.Peek(8), c.Offset() = %d; want 0", c.Offset())
	}

	got, err = c.Peek(100)
	if string(got) != data || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("c.Peek(100) = %q, %v; want %q, %v", got, err, data, io.ErrUnexpectedEOF)
	}
	if c.Offset() != 0 {
		t.Errorf("after c.Peek(100), c.Offset() = %d; want 0", c.Offset())
	}

	if _, err := c.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	got, err = c.Peek(4)
	if len(got) != 0 || err != io.EOF {
		t.Errorf("at end, c.Peek(4) = %q, %v; want \"\", %v", got, err, io.EOF)
	}
}

func TestCursorAt(t *testing.T) {
	data := []byte("0123456789")
	c := New(bytes.NewReader(data), int64(len(data)))
	if _, err := c.Seek(2, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	var got []byte
	err := c.At(6, func() error {
		var err error
		got, err = c.Peek(3)
		if err != nil {
			return err
		}
		_, err = c.Seek(1, io.SeekCurrent)
		return err
	})
	if err != nil {
		t.Error("c.At:", err)
	}
	if diff := cmp.Diff([]byte("678"), got); diff != "" {
		t.Errorf("data at 6 (-want +got):\n%s", diff)
	}
	if c.Offset() != 2 {
		t.Errorf("after c.At, c.Offset() = %d; want 2", c.Offset())
	}

	errFail := errors.New("bork")
	if err := c.At(8, func() error { return errFail }); err != errFail {
		t.Errorf("c.At(8, failing function) = %v; want %v", err, errFail)
	}
	if err := c.At(11, func() error { return nil }); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("c.At(11, ...) = %v; want %v", err, ErrOutOfBounds)
	}
	if c.Offset() != 2 {
		t.Errorf("after failed c.At calls, c.Offset() = %d; want 2", c.Offset())
	}
}

func TestCursorContains(t *testing.T) {
	c := New(strings.NewReader("0123456789"), 10)
	tests := []struct {
		off, n int64
		want   bool
	}{
		{0, 0, true},
		{0, 10, true},
		{10, 0, true},
		{4, 6, true},
		{4, 7, false},
		{11, 0, false},
		{-1, 1, false},
		{0, -1, false},
		{1, 1<<63 - 1, false},
	}
	for _, test := range tests {
		if got := c.Contains(test.off, test.n); got != test.want {
			t.Errorf("c.Contains(%d, %d) = %t; want %t", test.off, test.n, got, test.want)
		}
	}
}
