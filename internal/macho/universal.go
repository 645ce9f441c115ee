// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package macho

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const universalHeaderFixedSize = 8

// maxUniversalEntries is an upper bound on the number of architectures
// in a universal file, well above anything produced by lipo.
const maxUniversalEntries = 128

// ReadUniversalHeader reads a Mach-O multi-architecture header and all of its entries.
// Both the conventional big-endian header and the byte-swapped variant are accepted.
func ReadUniversalHeader(r io.Reader) ([]UniversalFileEntry, error) {
	var headerData [universalHeaderFixedSize]byte
	if _, err := io.ReadFull(r, headerData[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("parse universal mach-o header: %w", err)
	}
	n := magicNumber(headerData[:])
	byteOrder := n.universalByteOrder()
	if byteOrder == nil {
		if !n.isLittleEndian() && !n.isBigEndian() {
			return nil, fmt.Errorf("parse universal mach-o header: not a mach-o file")
		}
		return nil, fmt.Errorf("parse universal mach-o header: found single-architecture mach-o")
	}
	entryCount := byteOrder.Uint32(headerData[4:])
	if entryCount == 0 {
		return nil, fmt.Errorf("parse universal mach-o header: %w", ErrEmptyUniversal)
	}
	if entryCount > maxUniversalEntries {
		return nil, fmt.Errorf("parse universal mach-o header: too many entries (%d)", entryCount)
	}

	entryData := make([]byte, entryCount*universalFileEntrySize)
	n2, readError := io.ReadFull(r, entryData)
	if readError == io.EOF {
		readError = io.ErrUnexpectedEOF
	}
	result := make([]UniversalFileEntry, 0, entryCount)
	for i := 0; i+universalFileEntrySize <= n2; i += universalFileEntrySize {
		currData := entryData[i : i+universalFileEntrySize]
		currEntry := len(result)
		result = result[:currEntry+1]
		if err := result[currEntry].unmarshal(currData, byteOrder); err != nil {
			return result[:currEntry], fmt.Errorf("parse universal mach-o header: %v", err)
		}
	}
	if readError != nil {
		return result, fmt.Errorf("parse universal mach-o header: %w", readError)
	}
	return result, nil
}

const universalFileEntrySize = 20

// ErrEmptyUniversal is wrapped by the error [ReadUniversalHeader] returns
// for a universal header that declares zero architectures.
var ErrEmptyUniversal = errors.New("no architectures")

// UniversalFileEntry is a single record from a Mach-O multi-architecture file.
type UniversalFileEntry struct {
	CPU        CPUType
	CPUSubtype uint32
	// Offset is the offset in bytes from the beginning of the Mach-O file
	// that this image starts at.
	Offset uint32
	// Size is the size of the image in bytes.
	Size      uint32
	Alignment Alignment
}

// End returns the offset in bytes from the beginning of the Mach-O file
// of the first byte after the image.
func (ent *UniversalFileEntry) End() int64 {
	return int64(ent.Offset) + int64(ent.Size)
}

func (ent *UniversalFileEntry) unmarshal(data []byte, byteOrder binary.ByteOrder) error {
	if len(data) < universalFileEntrySize {
		return fmt.Errorf("parse universal mach-o entry: %v", io.ErrUnexpectedEOF)
	}
	if len(data) > universalFileEntrySize {
		return fmt.Errorf("parse universal mach-o entry: trailing data")
	}
	ent.CPU = CPUType(byteOrder.Uint32(data))
	ent.CPUSubtype = byteOrder.Uint32(data[4:])
	ent.Offset = byteOrder.Uint32(data[8:])
	ent.Size = byteOrder.Uint32(data[12:])
	ent.Alignment = Alignment(byteOrder.Uint32(data[16:]))
	return nil
}

// Alignment is a power-of-two alignment stored as its base-2 logarithm.
type Alignment uint32

// Bytes returns the alignment in bytes.
// ok is false if the alignment cannot be represented in 32 bits.
func (a Alignment) Bytes() (_ uint32, ok bool) {
	if a >= 32 {
		return 0, false
	}
	return 1 << a, true
}
