// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package macho

import "encoding/binary"

// MagicNumberSize is the size (in bytes) of the magic number at the start of the Mach-O file.
const MagicNumberSize = 4

// Magic numbers as read from the first four bytes of a file in big-endian order.
// The swapped forms indicate that the rest of the header is little-endian.
const (
	Magic32         uint32 = 0xfeedface
	Magic32Swapped  uint32 = 0xcefaedfe
	Magic64         uint32 = 0xfeedfacf
	Magic64Swapped  uint32 = 0xcffaedfe
	MagicFat        uint32 = 0xcafebabe
	MagicFatSwapped uint32 = 0xbebafeca
)

// Kind is the classification of a file by its magic number.
type Kind int

// Known [Kind] values.
const (
	KindUnknown Kind = iota
	KindMachO32
	KindMachO64
	KindUniversal
)

// Classify reports the kind of Mach-O container that head begins with.
// Classify will always report [KindUnknown] if len(head) < [MagicNumberSize].
func Classify(head []byte) Kind {
	if len(head) < MagicNumberSize {
		return KindUnknown
	}
	magic := magicNumber(head)
	switch {
	case magic.isUniversal():
		return KindUniversal
	case magic.is64Bit():
		return KindMachO64
	case magic.is32Bit():
		return KindMachO32
	default:
		return KindUnknown
	}
}

type magicNumber [MagicNumberSize]byte

func (magic magicNumber) value() uint32 {
	return binary.BigEndian.Uint32(magic[:])
}

func (magic magicNumber) isUniversal() bool {
	v := magic.value()
	return v == MagicFat || v == MagicFatSwapped
}

// universalByteOrder returns the byte order of the fields in a universal header.
// Universal headers are conventionally big-endian,
// but some tools write them in little-endian order.
func (magic magicNumber) universalByteOrder() binary.ByteOrder {
	switch magic.value() {
	case MagicFat:
		return binary.BigEndian
	case MagicFatSwapped:
		return binary.LittleEndian
	default:
		return nil
	}
}

func (magic magicNumber) isBigEndian() bool {
	v := magic.value()
	return v == Magic32 || v == Magic64
}

func (magic magicNumber) isLittleEndian() bool {
	v := magic.value()
	return v == Magic32Swapped || v == Magic64Swapped
}

func (magic magicNumber) byteOrder() binary.ByteOrder {
	switch {
	case magic.isBigEndian():
		return binary.BigEndian
	case magic.isLittleEndian():
		return binary.LittleEndian
	default:
		return nil
	}
}

func (magic magicNumber) is32Bit() bool {
	v := magic.value()
	return v == Magic32 || v == Magic32Swapped
}

func (magic magicNumber) is64Bit() bool {
	v := magic.value()
	return v == Magic64 || v == Magic64Swapped
}

// IsSingleArchitecture reports whether head starts with the Mach-O magic number
// for a single-architecture Mach-O file.
// IsSingleArchitecture will always report false if len(head) < [MagicNumberSize].
func IsSingleArchitecture(head []byte) bool {
	if len(head) < MagicNumberSize {
		return false
	}
	magic := magicNumber(head)
	return magic.isLittleEndian() || magic.isBigEndian()
}

// IsUniversal reports whether head starts with the Mach-O magic number
// for a multi-architecture Mach-O file.
// IsUniversal will always report false if len(head) < [MagicNumberSize].
func IsUniversal(head []byte) bool {
	if len(head) < MagicNumberSize {
		return false
	}
	magic := magicNumber(head)
	return magic.isUniversal()
}
