// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package ar

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"zb.256lights.llc/binmeta/internal/machotest"
)

func TestSkipToFirstObject(t *testing.T) {
	object := []byte("\xcf\xfa\xed\xfeobject data")

	tests := []struct {
		name       string
		members    []machotest.Member
		want       *Header
		wantOffset int64
	}{
		{
			name: "ShortName",
			members: []machotest.Member{
				{Name: "foo.o", Data: object},
			},
			want: &Header{
				Name: "foo.o",
				Size: int64(len(object)),
			},
			wantOffset: 68,
		},
		{
			name: "GNUName",
			members: []machotest.Member{
				{Name: "foo.o/", Data: object},
			},
			want: &Header{
				Name: "foo.o",
				Size: int64(len(object)),
			},
			wantOffset: 68,
		},
		{
			name: "LongName",
			members: []machotest.Member{
				{Name: "StaticLibrary.o", Data: object, LongName: true},
			},
			want: &Header{
				Name:       "StaticLibrary.o",
				Size:       16 + int64(len(object)),
				NameLength: 16,
			},
			wantOffset: 68 + 16,
		},
		{
			name: "AfterSymbolTable",
			members: []machotest.Member{
				machotest.SymbolTable(),
				{Name: "StaticLibrary.o", Data: object, LongName: true},
			},
			want: &Header{
				Name:       "StaticLibrary.o",
				Size:       16 + int64(len(object)),
				NameLength: 16,
			},
			wantOffset: 8 + 60 + 20 + 8 + 60 + 16,
		},
		{
			name: "AfterOddSizedSymbolTable",
			members: []machotest.Member{
				{Name: "__.SYMDEF", Data: []byte("abc")},
				{Name: "a.o", Data: object},
			},
			want: &Header{
				Name: "a.o",
				Size: int64(len(object)),
			},
			wantOffset: 8 + 60 + 4 + 60,
		},
		{
			name: "AfterGNUSymbolTables",
			members: []machotest.Member{
				{Name: "/", Data: make([]byte, 4)},
				{Name: "//", Data: []byte("a_very_long_name.o/\n")},
				{Name: "short.o/", Data: object},
			},
			want: &Header{
				Name: "short.o",
				Size: int64(len(object)),
			},
			wantOffset: 8 + 60 + 4 + 60 + 20 + 60,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := machotest.Archive(test.members...)
			r := bytes.NewReader(data)
			got, err := SkipToFirstObject(r)
			if err != nil {
				t.Fatal("SkipToFirstObject:", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("header (-want +got):\n%s", diff)
			}
			offset, _ := r.Seek(0, io.SeekCurrent)
			if offset != test.wantOffset {
				t.Errorf("offset after SkipToFirstObject = %d; want %d", offset, test.wantOffset)
			}
			if rest := data[offset:]; !bytes.HasPrefix(rest, object) {
				t.Errorf("data after SkipToFirstObject = %q; want prefix %q", rest[:min(len(rest), 16)], object)
			}
		})
	}
}

func TestSkipToFirstObjectErrors(t *testing.T) {
	object := []byte("\xcf\xfa\xed\xfeobject data")
	valid := machotest.Archive(machotest.Member{Name: "StaticLibrary.o", Data: object, LongName: true})
	badFMag := bytes.Clone(valid)
	copy(badFMag[8+58:], "xx")
	badSize := bytes.Clone(valid)
	copy(badSize[8+48:], "abc       ")
	nameTooLong := bytes.Clone(valid)
	copy(nameTooLong[8:], "#1/9999         ")
	hugeNameLength := bytes.Clone(valid)
	copy(hugeNameLength[8:], "#1/9999999999   ")
	copy(hugeNameLength[8+48:], "9999999999")

	var manySymbolTables []machotest.Member
	for range maxMembers {
		manySymbolTables = append(manySymbolTables, machotest.SymbolTable())
	}
	manySymbolTables = append(manySymbolTables, machotest.Member{Name: "a.o", Data: object})

	tests := []struct {
		name       string
		data       []byte
		wantEOF    bool
		notArchive bool
	}{
		{name: "Empty", wantEOF: true},
		{name: "TruncatedGlobalHeader", data: []byte("!<ar"), wantEOF: true},
		{name: "WrongMagic", data: []byte("!<thin>\nxxxxxxxxxxxxxxxxxxxxxx"), notArchive: true},
		{name: "OnlyGlobalHeader", data: []byte(GlobalHeader)},
		{name: "OnlySymbolTable", data: machotest.Archive(machotest.SymbolTable())},
		{name: "TruncatedMemberHeader", data: valid[:8+30], wantEOF: true},
		{name: "TruncatedLongName", data: valid[:8+60+5], wantEOF: true},
		{name: "BadTerminator", data: badFMag},
		{name: "BadSize", data: badSize},
		{name: "NameLongerThanMember", data: nameTooLong},
		{name: "HugeLongNameLength", data: hugeNameLength, wantEOF: true},
		{name: "TooManySymbolTables", data: machotest.Archive(manySymbolTables...)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hdr, err := SkipToFirstObject(bytes.NewReader(test.data))
			if err == nil {
				t.Fatalf("SkipToFirstObject(...) = %+v, <nil>; want error", hdr)
			}
			t.Log("SkipToFirstObject:", err)
			if got := errors.Is(err, io.ErrUnexpectedEOF); got != test.wantEOF {
				t.Errorf("errors.Is(err, io.ErrUnexpectedEOF) = %t; want %t", got, test.wantEOF)
			}
			if got := errors.Is(err, ErrNotArchive); got != test.notArchive {
				t.Errorf("errors.Is(err, ErrNotArchive) = %t; want %t", got, test.notArchive)
			}
		})
	}
}

func TestIsSymbolTable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"__.SYMDEF", true},
		{"__.SYMDEF SORTED", true},
		{"__.SYMDEF_64", true},
		{"__.SYMDEF_64 SORTED", true},
		{"/", true},
		{"//", true},
		{"/SYM64/", true},
		{"foo.o", false},
		{"__.SYMDEF.o", false},
		{"", false},
	}
	for _, test := range tests {
		hdr := &Header{Name: test.name}
		if got := hdr.IsSymbolTable(); got != test.want {
			t.Errorf("(&Header{Name: %q}).IsSymbolTable() = %t; want %t", test.name, got, test.want)
		}
	}
}

func TestIsArchive(t *testing.T) {
	tests := []struct {
		head string
		want bool
	}{
		{GlobalHeader, true},
		{GlobalHeader + strings.Repeat(" ", 60), true},
		{"!<arch>", false},
		{"!<thin>\n", false},
		{"\xcf\xfa\xed\xfe", false},
		{"", false},
	}
	for _, test := range tests {
		if got := IsArchive([]byte(test.head)); got != test.want {
			t.Errorf("IsArchive(%q) = %t; want %t", test.head, got, test.want)
		}
	}
}
