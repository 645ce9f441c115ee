// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package machotest builds synthetic Mach-O, universal, and ar files for tests.
// It must not import the parsers it is used to test.
package machotest

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
)

// Well-known values used when building images.
const (
	CPUTypeI386     uint32 = 0x00000007
	CPUTypeX86_64   uint32 = 0x01000007
	CPUTypeARM      uint32 = 0x0000000c
	CPUTypeARM64    uint32 = 0x0100000c
	CPUTypeARM64_32 uint32 = 0x0200000c

	FileTypeObject  uint32 = 1
	FileTypeExecute uint32 = 2
	FileTypeDylib   uint32 = 6
	FileTypeBundle  uint32 = 8

	// CapabilityLib64 is the CPU_SUBTYPE_LIB64 capability bit.
	CapabilityLib64 uint32 = 0x80000000

	loadCommandUUID uint32 = 0x1b
)

// Image describes a single-architecture Mach-O file.
type Image struct {
	// BigEndian selects big-endian field encoding.
	// The default is little-endian, as used by all current Apple platforms.
	BigEndian bool
	// Is32Bit selects the 28-byte mach_header layout
	// instead of the 32-byte mach_header_64 layout.
	Is32Bit bool

	CPU        uint32
	CPUSubtype uint32
	FileType   uint32

	// UUID is the value of the LC_UUID command.
	// If nil, no LC_UUID command is written.
	UUID []byte
	// FillerCommands is the number of non-UUID load commands to write.
	FillerCommands int
	// UUIDPosition is the index among all load commands
	// at which the LC_UUID command is written.
	// Values past the end place it last.
	UUIDPosition int
	// Payload is appended after the load commands.
	Payload []byte
}

// byteOrder is implemented by [binary.BigEndian] and [binary.LittleEndian].
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (img *Image) byteOrder() byteOrder {
	if img.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// fillers have a variety of sizes so that skipping is exercised.
var fillers = []struct {
	cmd  uint32
	size int
}{
	{0x19, 72},       // LC_SEGMENT_64 with no sections
	{0x2a, 16},       // LC_SOURCE_VERSION
	{0x32, 24},       // LC_BUILD_VERSION with no tools
	{0x80000028, 24}, // LC_MAIN
}

// Bytes serializes the image.
func (img *Image) Bytes() []byte {
	order := img.byteOrder()
	var commands [][]byte
	for i := range img.FillerCommands {
		f := fillers[i%len(fillers)]
		cmd := make([]byte, f.size)
		order.PutUint32(cmd, f.cmd)
		order.PutUint32(cmd[4:], uint32(f.size))
		for j := 8; j < len(cmd); j++ {
			cmd[j] = byte(i + j)
		}
		commands = append(commands, cmd)
	}
	if img.UUID != nil {
		if len(img.UUID) != 16 {
			panic(fmt.Sprintf("machotest: UUID is %d bytes", len(img.UUID)))
		}
		cmd := order.AppendUint32(nil, loadCommandUUID)
		cmd = order.AppendUint32(cmd, 24)
		cmd = append(cmd, img.UUID...)
		pos := min(max(img.UUIDPosition, 0), len(commands))
		commands = slices.Insert(commands, pos, cmd)
	}

	var regionSize int
	for _, cmd := range commands {
		regionSize += len(cmd)
	}

	var buf []byte
	switch {
	case img.Is32Bit && img.BigEndian:
		buf = binary.BigEndian.AppendUint32(buf, 0xfeedface)
	case img.Is32Bit:
		buf = binary.LittleEndian.AppendUint32(buf, 0xfeedface)
	case img.BigEndian:
		buf = binary.BigEndian.AppendUint32(buf, 0xfeedfacf)
	default:
		buf = binary.LittleEndian.AppendUint32(buf, 0xfeedfacf)
	}
	buf = order.AppendUint32(buf, img.CPU)
	buf = order.AppendUint32(buf, img.CPUSubtype)
	buf = order.AppendUint32(buf, img.FileType)
	buf = order.AppendUint32(buf, uint32(len(commands)))
	buf = order.AppendUint32(buf, uint32(regionSize))
	buf = order.AppendUint32(buf, 0) // flags
	if !img.Is32Bit {
		buf = order.AppendUint32(buf, 0) // reserved
	}
	for _, cmd := range commands {
		buf = append(buf, cmd...)
	}
	buf = append(buf, img.Payload...)
	return buf
}

// Slice is a single architecture in a universal file.
type Slice struct {
	CPU        uint32
	CPUSubtype uint32
	// Align is the base-2 logarithm of the slice's alignment.
	// Zero means 4 (16 bytes).
	Align uint32
	Data  []byte
}

// Universal serializes a multi-architecture file containing the given slices.
// If swapped is true, the header fields are written in little-endian order
// (with the magic number 0xbebafeca as read big-endian).
func Universal(swapped bool, images ...Slice) []byte {
	var order byteOrder = binary.BigEndian
	if swapped {
		order = binary.LittleEndian
	}
	buf := order.AppendUint32(nil, 0xcafebabe)
	buf = order.AppendUint32(buf, uint32(len(images)))

	offset := len(buf) + len(images)*20
	offsets := make([]int, len(images))
	for i, s := range images {
		align := s.Align
		if align == 0 {
			align = 4
		}
		offset = alignUp(offset, 1<<align)
		offsets[i] = offset
		buf = order.AppendUint32(buf, s.CPU)
		buf = order.AppendUint32(buf, s.CPUSubtype)
		buf = order.AppendUint32(buf, uint32(offset))
		buf = order.AppendUint32(buf, uint32(len(s.Data)))
		buf = order.AppendUint32(buf, align)
		offset += len(s.Data)
	}
	for i, s := range images {
		buf = append(buf, make([]byte, offsets[i]-len(buf))...)
		buf = append(buf, s.Data...)
	}
	return buf
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// ArchiveGlobalHeader is the signature at the start of every ar archive.
const ArchiveGlobalHeader = "!<arch>\n"

// ArchiveHeaderSize is the size in bytes of an ar member header.
const ArchiveHeaderSize = 60

// Member is a single file in an ar archive.
type Member struct {
	Name string
	Data []byte
	// LongName stores the name using the BSD "#1/N" convention,
	// where the name immediately follows the member header.
	LongName bool
}

// NameLength returns the number of name bytes
// that precede the member's data in the archive.
func (m Member) NameLength() int {
	if !m.LongName {
		return 0
	}
	return alignUp(len(m.Name)+1, 4)
}

// Archive serializes a BSD-style ar archive containing the given members.
func Archive(members ...Member) []byte {
	buf := []byte(ArchiveGlobalHeader)
	for _, m := range members {
		name := m.Name
		var longName []byte
		if m.LongName {
			longName = make([]byte, m.NameLength())
			copy(longName, m.Name)
			name = fmt.Sprintf("#1/%d", len(longName))
		}
		size := len(longName) + len(m.Data)
		buf = append(buf, field(name, 16)...)
		buf = append(buf, field("0", 12)...) // mtime
		buf = append(buf, field("0", 6)...)  // uid
		buf = append(buf, field("0", 6)...)  // gid
		buf = append(buf, field("100644", 8)...)
		buf = append(buf, field(fmt.Sprint(size), 10)...)
		buf = append(buf, "`\n"...)
		buf = append(buf, longName...)
		buf = append(buf, m.Data...)
		if size%2 != 0 {
			buf = append(buf, '\n')
		}
	}
	return buf
}

func field(s string, n int) string {
	if len(s) > n {
		panic(fmt.Sprintf("machotest: %q does not fit in %d bytes", s, n))
	}
	return s + strings.Repeat(" ", n-len(s))
}

// SymbolTable returns a BSD ar symbol table member with no symbols.
func SymbolTable() Member {
	return Member{
		Name:     "__.SYMDEF SORTED",
		Data:     make([]byte, 8),
		LongName: true,
	}
}
