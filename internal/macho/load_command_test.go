// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package macho

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"zb.256lights.llc/binmeta/internal/machotest"
)

func TestCommandScanner(t *testing.T) {
	img := &machotest.Image{
		CPU:            machotest.CPUTypeARM64,
		FillerCommands: 4,
		UUID:           make([]byte, 16),
		UUIDPosition:   2,
	}
	r := bytes.NewReader(img.Bytes())
	hdr, err := ReadFileHeader(r)
	if err != nil {
		t.Fatal(err)
	}

	type command struct {
		Cmd    LoadCmd
		Size   uint32
		Offset int64
	}
	want := []command{
		{LoadCmdSegment64, 72, 32},
		{LoadCmdSourceVersion, 16, 104},
		{LoadCmdUUID, UUIDCommandSize, 120},
		{LoadCmdBuildVersion, 24, 144},
		{LoadCmdMain, 24, 168},
	}
	var got []command
	s := NewCommandScanner(r, hdr)
	for s.Next() {
		got = append(got, command{s.Command(), s.Size(), s.Offset()})
	}
	if err := s.Err(); err != nil {
		t.Error("Err:", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}
	if s.Next() {
		t.Error("Next() = true after end of commands")
	}
}

func TestCommandScannerCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(data []byte, order binary.ByteOrder)
		wantEOF bool
	}{
		{
			name: "CommandSizeZero",
			mutate: func(data []byte, order binary.ByteOrder) {
				order.PutUint32(data[32+4:], 0)
			},
		},
		{
			name: "CommandSizePastRegion",
			mutate: func(data []byte, order binary.ByteOrder) {
				order.PutUint32(data[32+4:], 1<<20)
			},
		},
		{
			name: "RegionTooSmallForCount",
			mutate: func(data []byte, order binary.ByteOrder) {
				order.PutUint32(data[20:], 8)
			},
		},
		{
			name: "CountExceedsRegion",
			mutate: func(data []byte, order binary.ByteOrder) {
				order.PutUint32(data[16:], 3)
				order.PutUint32(data[20:], 72+16+8)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			img := &machotest.Image{CPU: machotest.CPUTypeARM64, FillerCommands: 2}
			data := img.Bytes()
			test.mutate(data, binary.LittleEndian)
			r := bytes.NewReader(data)
			hdr, err := ReadFileHeader(r)
			if err != nil {
				t.Fatal(err)
			}
			s := NewCommandScanner(r, hdr)
			for s.Next() {
			}
			if s.Err() == nil {
				t.Error("scan finished without error")
			} else {
				t.Log("Err:", s.Err())
			}
		})
	}
}

func TestCommandScannerTruncated(t *testing.T) {
	img := &machotest.Image{CPU: machotest.CPUTypeARM64, FillerCommands: 3}
	data := img.Bytes()
	r := bytes.NewReader(data[:32+72+4])
	hdr, err := ReadFileHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	s := NewCommandScanner(r, hdr)
	n := 0
	for s.Next() {
		n++
	}
	if n != 1 {
		t.Errorf("scanned %d commands; want 1", n)
	}
	if err := s.Err(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Err() = %v; want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestFindUUID(t *testing.T) {
	id := []byte{
		0x3a, 0x5e, 0x0c, 0x81, 0x6e, 0x3c, 0x3b, 0x59,
		0x9d, 0x44, 0x71, 0x0e, 0x50, 0x6b, 0x5f, 0x02,
	}
	want := uuid.UUID(id)

	tests := []struct {
		name  string
		image machotest.Image
		want  uuid.UUID
		found bool
	}{
		{
			name:  "Only",
			image: machotest.Image{UUID: id},
			want:  want,
			found: true,
		},
		{
			name:  "First",
			image: machotest.Image{UUID: id, FillerCommands: 4},
			want:  want,
			found: true,
		},
		{
			name:  "Middle",
			image: machotest.Image{UUID: id, FillerCommands: 4, UUIDPosition: 3},
			want:  want,
			found: true,
		},
		{
			name:  "Last",
			image: machotest.Image{UUID: id, FillerCommands: 7, UUIDPosition: 100},
			want:  want,
			found: true,
		},
		{
			name:  "BigEndian",
			image: machotest.Image{BigEndian: true, UUID: id, FillerCommands: 2, UUIDPosition: 1},
			want:  want,
			found: true,
		},
		{
			name:  "Object32",
			image: machotest.Image{Is32Bit: true, CPU: machotest.CPUTypeARM, UUID: id, FillerCommands: 5, UUIDPosition: 5},
			want:  want,
			found: true,
		},
		{
			name:  "Absent",
			image: machotest.Image{FillerCommands: 3},
			found: false,
		},
		{
			name:  "NoCommands",
			image: machotest.Image{},
			found: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.image.CPU == 0 {
				test.image.CPU = machotest.CPUTypeARM64
			}
			r := bytes.NewReader(test.image.Bytes())
			hdr, err := ReadFileHeader(r)
			if err != nil {
				t.Fatal(err)
			}
			got, found, err := FindUUID(NewCommandScanner(r, hdr))
			if err != nil {
				t.Fatal("FindUUID:", err)
			}
			if got != test.want || found != test.found {
				t.Errorf("FindUUID(...) = %v, %t, <nil>; want %v, %t, <nil>", got, found, test.want, test.found)
			}
		})
	}
}

func TestFindUUIDShortCommand(t *testing.T) {
	img := &machotest.Image{CPU: machotest.CPUTypeARM64, UUID: make([]byte, 16)}
	data := img.Bytes()
	// Shrink the LC_UUID command so that it no longer holds an identifier.
	binary.LittleEndian.PutUint32(data[32+4:], 16)
	binary.LittleEndian.PutUint32(data[20:], 16)
	r := bytes.NewReader(data)
	hdr, err := ReadFileHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	if got, found, err := FindUUID(NewCommandScanner(r, hdr)); err == nil {
		t.Errorf("FindUUID(...) = %v, %t, <nil>; want error", got, found)
	}
}
