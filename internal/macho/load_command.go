// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=LoadCmd -linecomment -output=load_command_string.go

package macho

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const loadCommandFixedSize = 8

// LoadCmd is an enumeration of load command types.
type LoadCmd uint32

const (
	LoadCmdSegment        LoadCmd = 0x1        // LC_SEGMENT
	LoadCmdSymtab         LoadCmd = 0x2        // LC_SYMTAB
	LoadCmdThread         LoadCmd = 0x4        // LC_THREAD
	LoadCmdUnixThread     LoadCmd = 0x5        // LC_UNIXTHREAD
	LoadCmdDysymtab       LoadCmd = 0xb        // LC_DYSYMTAB
	LoadCmdLoadDylib      LoadCmd = 0xc        // LC_LOAD_DYLIB
	LoadCmdIDDylib        LoadCmd = 0xd        // LC_ID_DYLIB
	LoadCmdLoadDylinker   LoadCmd = 0xe        // LC_LOAD_DYLINKER
	LoadCmdIDDylinker     LoadCmd = 0xf        // LC_ID_DYLINKER
	LoadCmdSegment64      LoadCmd = 0x19       // LC_SEGMENT_64
	LoadCmdUUID           LoadCmd = 0x1b       // LC_UUID
	LoadCmdRPath          LoadCmd = 0x8000001c // LC_RPATH
	LoadCmdCodeSignature  LoadCmd = 0x1d       // LC_CODE_SIGNATURE
	LoadCmdSourceVersion  LoadCmd = 0x2a       // LC_SOURCE_VERSION
	LoadCmdDyldInfo       LoadCmd = 0x22       // LC_DYLD_INFO
	LoadCmdDyldInfoOnly   LoadCmd = 0x80000022 // LC_DYLD_INFO_ONLY
	LoadCmdFunctionStarts LoadCmd = 0x26       // LC_FUNCTION_STARTS
	LoadCmdDataInCode     LoadCmd = 0x29       // LC_DATA_IN_CODE
	LoadCmdMain           LoadCmd = 0x80000028 // LC_MAIN
	LoadCmdBuildVersion   LoadCmd = 0x32       // LC_BUILD_VERSION
)

// A CommandScanner walks the load commands that follow a Mach-O header.
// Each command is located by seeking past the previous command's declared size,
// so commands of any type (including unknown ones) are skipped without being parsed.
type CommandScanner struct {
	r         io.ReadSeeker
	byteOrder binary.ByteOrder

	remainingCommands uint32
	remainingBytes    uint32
	next              int64

	start int64
	cmd   LoadCmd
	size  uint32
	err   error
}

// NewCommandScanner returns a scanner over the load commands described by hdr.
// r must be positioned immediately after the header,
// as it is after a successful call to [ReadFileHeader].
func NewCommandScanner(r io.ReadSeeker, hdr *FileHeader) *CommandScanner {
	s := &CommandScanner{
		r:                 r,
		byteOrder:         hdr.ByteOrder,
		remainingCommands: hdr.LoadCommandCount,
		remainingBytes:    hdr.LoadCommandRegionSize,
		start:             -1,
	}
	if s.remainingCommands > 0 && int64(s.remainingBytes) < int64(s.remainingCommands)*loadCommandFixedSize {
		s.err = fmt.Errorf("read mach-o load command: declared size (%d) too small for number of commands (%d)",
			hdr.LoadCommandRegionSize, hdr.LoadCommandCount)
		return s
	}
	s.next, s.err = r.Seek(0, io.SeekCurrent)
	return s
}

// Next advances s to the next load command,
// whose type and size are then available
// through [*CommandScanner.Command] and [*CommandScanner.Size].
// It returns false when there are no more load commands or an error occurred.
// After Next returns false, [*CommandScanner.Err] reports any error.
func (s *CommandScanner) Next() bool {
	s.start = -1
	if s.err != nil || s.remainingCommands == 0 {
		return false
	}
	if s.remainingBytes < loadCommandFixedSize {
		s.err = errCommandSizeTooLarge
		return false
	}
	if _, err := s.r.Seek(s.next, io.SeekStart); err != nil {
		s.err = fmt.Errorf("read mach-o load command: %w", err)
		return false
	}
	var buf [loadCommandFixedSize]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		s.err = fmt.Errorf("read mach-o load command: %w", err)
		return false
	}
	cmd := LoadCmd(s.byteOrder.Uint32(buf[:]))
	size := s.byteOrder.Uint32(buf[4:])
	switch {
	case size < loadCommandFixedSize:
		s.err = errCommandSizeTooSmall
		return false
	case size > s.remainingBytes:
		s.err = errCommandSizeTooLarge
		return false
	}

	s.start = s.next
	s.cmd = cmd
	s.size = size
	s.next += int64(size)
	s.remainingBytes -= size
	s.remainingCommands--
	return true
}

// Command returns the type of the current command.
func (s *CommandScanner) Command() LoadCmd {
	return s.cmd
}

// Size returns the declared size of the current command in bytes,
// including the fixed 8-byte prefix.
func (s *CommandScanner) Size() uint32 {
	return s.size
}

// Offset returns the position in the underlying stream
// where the current command begins.
func (s *CommandScanner) Offset() int64 {
	return s.start
}

// ReadCommand seeks back to the beginning of the current command
// and reads len(p) bytes of it into p.
// It is an error to read past the command's declared size.
func (s *CommandScanner) ReadCommand(p []byte) error {
	if s.start < 0 {
		return errors.New("read mach-o load command: no current command")
	}
	if int64(len(p)) > int64(s.size) {
		return fmt.Errorf("read mach-o load command: %v is %d bytes (want at least %d)", s.cmd, s.size, len(p))
	}
	if _, err := s.r.Seek(s.start, io.SeekStart); err != nil {
		return fmt.Errorf("read mach-o load command: %w", err)
	}
	if _, err := io.ReadFull(s.r, p); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("read mach-o load command: %w", err)
	}
	return nil
}

// Err returns the first error encountered by s.
func (s *CommandScanner) Err() error {
	return s.err
}

var (
	errCommandSizeTooSmall = errors.New("read mach-o load command: invalid size for command")
	errCommandSizeTooLarge = errors.New("read mach-o load command: command array larger than declared size")
)
