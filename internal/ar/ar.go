// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package ar reads the headers of BSD and GNU ar archives,
// the container format used for static libraries.
package ar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GlobalHeader is the signature at the start of every ar archive.
const GlobalHeader = "!<arch>\n"

// HeaderSize is the size in bytes of a member header.
const HeaderSize = 60

// Member header field offsets.
const (
	nameOffset  = 0
	nameSize    = 16
	sizeOffset  = 48
	sizeSize    = 10
	fmagOffset  = 58
	headerFMag  = "`\n"
	longNameTag = "#1/"
)

// maxMembers bounds the number of symbol table members skipped
// before giving up on finding an object.
const maxMembers = 16

// IsArchive reports whether head starts with the ar [GlobalHeader].
func IsArchive(head []byte) bool {
	return bytes.HasPrefix(head, []byte(GlobalHeader))
}

// Header is a parsed ar member header.
type Header struct {
	// Name is the member's file name.
	// For BSD extended names, this is the name stored after the header.
	Name string
	// Size is the number of bytes that follow the header,
	// including any extended name.
	Size int64
	// NameLength is the number of bytes of extended name
	// that follow the header before the member's data.
	NameLength int64
}

// DataSize returns the size in bytes of the member's data.
func (hdr *Header) DataSize() int64 {
	return hdr.Size - hdr.NameLength
}

// UnmarshalBinary parses a [HeaderSize]-byte member header.
// Extended names are not read: Name is set to the "#1/N" field
// and NameLength is set to N.
func (hdr *Header) UnmarshalBinary(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("parse ar header: got %d bytes (want %d)", len(data), HeaderSize)
	}
	if got := string(data[fmagOffset:]); got != headerFMag {
		return fmt.Errorf("parse ar header: bad terminator %q", got)
	}
	sizeField := strings.TrimRight(string(data[sizeOffset:sizeOffset+sizeSize]), " ")
	size, err := strconv.ParseInt(sizeField, 10, 64)
	if err != nil || size < 0 {
		return fmt.Errorf("parse ar header: invalid size %q", sizeField)
	}

	name := strings.TrimRight(string(data[nameOffset:nameOffset+nameSize]), " ")
	var nameLength int64
	if lengthField, ok := strings.CutPrefix(name, longNameTag); ok {
		nameLength, err = strconv.ParseInt(lengthField, 10, 64)
		if err != nil || nameLength < 0 {
			return fmt.Errorf("parse ar header: invalid extended name length %q", lengthField)
		}
		if nameLength > size {
			return fmt.Errorf("parse ar header: extended name length (%d) larger than member (%d)", nameLength, size)
		}
	} else if !strings.HasPrefix(name, "/") {
		// GNU terminates names with a slash.
		// Special members like "/" and "/SYM64/" begin with one.
		name = strings.TrimSuffix(name, "/")
	}

	hdr.Name = name
	hdr.Size = size
	hdr.NameLength = nameLength
	return nil
}

// IsSymbolTable reports whether the member is an archive index
// rather than an archived file.
func (hdr *Header) IsSymbolTable() bool {
	switch hdr.Name {
	case "__.SYMDEF", "__.SYMDEF SORTED", "__.SYMDEF_64", "__.SYMDEF_64 SORTED",
		"/", "//", "/SYM64/":
		return true
	default:
		return false
	}
}

// SkipToFirstObject reads the archive starting at r's current position
// and leaves r positioned at the first byte of data
// of the first member that is not a symbol table.
// Only that member is inspected: the rest of the archive is not read.
func SkipToFirstObject(r io.ReadSeeker) (*Header, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("read ar archive: %w", err)
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("read ar archive: %w", err)
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("read ar archive: %w", err)
	}
	var magic [len(GlobalHeader)]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("read ar archive: %w", unexpectedEOF(err))
	}
	if string(magic[:]) != GlobalHeader {
		return nil, ErrNotArchive
	}

	pos := start + int64(len(GlobalHeader))
	for range maxMembers {
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return nil, fmt.Errorf("read ar archive: %w", err)
		}
		var buf [HeaderSize]byte
		if _, err := io.ReadFull(r, buf[:]); err == io.EOF {
			return nil, errors.New("read ar archive: no object members")
		} else if err != nil {
			return nil, fmt.Errorf("read ar archive: %w", unexpectedEOF(err))
		}
		hdr := new(Header)
		if err := hdr.UnmarshalBinary(buf[:]); err != nil {
			return nil, fmt.Errorf("read ar archive: %v", err)
		}
		if hdr.NameLength > 0 {
			// The name length is only bounded by the size field,
			// so check it against the input before allocating.
			if remaining := end - (pos + HeaderSize); hdr.NameLength > remaining {
				return nil, fmt.Errorf("read ar archive: member name (%d bytes) extends past end of input: %w",
					hdr.NameLength, io.ErrUnexpectedEOF)
			}
			name := make([]byte, hdr.NameLength)
			if _, err := io.ReadFull(r, name); err != nil {
				return nil, fmt.Errorf("read ar archive: member name: %w", unexpectedEOF(err))
			}
			hdr.Name = string(bytes.TrimRight(name, "\x00"))
		}
		if !hdr.IsSymbolTable() {
			return hdr, nil
		}

		// Members start on even offsets.
		pos += HeaderSize + hdr.Size
		if (pos-start)%2 != 0 {
			pos++
		}
	}
	return nil, fmt.Errorf("read ar archive: no object in first %d members", maxMembers)
}

// ErrNotArchive is returned by [SkipToFirstObject]
// when the input does not begin with [GlobalHeader].
var ErrNotArchive = errors.New("not an ar archive")

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
