// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package binmeta reads structural metadata from compiled Mach-O binaries
// (frameworks, dynamic libraries, and static archives) without executing them:
// the CPU architectures they contain, whether they link statically or dynamically,
// and the build UUIDs used to pair them with debug symbol files.
package binmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/google/uuid"
	"zb.256lights.llc/binmeta/internal/ar"
	"zb.256lights.llc/binmeta/internal/cursor"
	"zb.256lights.llc/binmeta/internal/macho"
	"zombiezen.com/go/log"
)

// Metadata is the information extracted from a single binary.
type Metadata struct {
	// Architectures has one entry per architecture slice,
	// in the order the slices appear in the file.
	Architectures []Architecture `json:"architectures"`
	// Linking is [Dynamic] if any slice is a dynamic library.
	Linking Linking `json:"linking"`
	// UUIDs is the set of distinct build UUIDs found in the slices,
	// in the order they were found.
	// Slices without an LC_UUID command do not contribute,
	// so UUIDs may be empty.
	UUIDs []uuid.UUID `json:"uuids"`
}

// Options is the set of optional parameters to [Read] and [Parse].
// The zero value or nil are the default options.
type Options struct {
	// StrictFallback requires the declared range of every universal file slice
	// to lie within the file.
	// Otherwise, a slice outside the file is reported
	// using the CPU type declared in the universal header.
	StrictFallback bool
}

// Read extracts metadata from the binary at the given path.
// Errors wrap [ErrMetadataNotFound] or [ErrArchitecturesNotFound].
func Read(ctx context.Context, path string, opts *Options) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, metadataNotFound(path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, metadataNotFound(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, metadataNotFound(path, errors.New("not a regular file"))
	}
	return Parse(ctx, path, f, info.Size(), opts)
}

// ReadArchitectures returns the architectures of the binary at the given path.
func ReadArchitectures(ctx context.Context, path string, opts *Options) ([]Architecture, error) {
	md, err := Read(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return md.Architectures, nil
}

// ReadLinking returns the linking mode of the binary at the given path.
func ReadLinking(ctx context.Context, path string, opts *Options) (Linking, error) {
	md, err := Read(ctx, path, opts)
	if err != nil {
		return Static, err
	}
	return md.Linking, nil
}

// ReadUUIDs returns the build UUIDs of the binary at the given path.
// A binary without any LC_UUID commands returns an empty list and no error.
func ReadUUIDs(ctx context.Context, path string, opts *Options) ([]uuid.UUID, error) {
	md, err := Read(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return md.UUIDs, nil
}

// Parse extracts metadata from the first size bytes of r.
// name is used to identify r in errors.
func Parse(ctx context.Context, name string, r io.ReaderAt, size int64, opts *Options) (*Metadata, error) {
	if opts == nil {
		opts = new(Options)
	}
	images, err := readSlices(ctx, name, cursor.New(r, size), opts)
	if err != nil {
		return nil, err
	}

	md := &Metadata{
		Architectures: make([]Architecture, 0, len(images)),
		Linking:       Static,
	}
	for _, s := range images {
		md.Architectures = append(md.Architectures, s.arch)
		if s.linking == Dynamic {
			md.Linking = Dynamic
		}
		if s.hasUUID && !slices.Contains(md.UUIDs, s.uuid) {
			md.UUIDs = append(md.UUIDs, s.uuid)
		}
	}
	return md, nil
}

// sliceMetadata is the information from a single Mach-O header.
type sliceMetadata struct {
	arch    Architecture
	linking Linking
	uuid    uuid.UUID
	hasUUID bool
}

func readSlices(ctx context.Context, name string, c *cursor.Cursor, opts *Options) ([]sliceMetadata, error) {
	head, err := peek(c, len(ar.GlobalHeader))
	if err != nil {
		return nil, metadataNotFound(name, err)
	}
	if ar.IsArchive(head) {
		member, err := ar.SkipToFirstObject(c)
		if err != nil {
			return nil, metadataNotFound(name, err)
		}
		log.Debugf(ctx, "%s: reading archive member %q at offset %d", name, member.Name, c.Offset())
		head, err = peek(c, macho.MagicNumberSize)
		if err != nil {
			return nil, metadataNotFound(name, err)
		}
		switch {
		case macho.IsUniversal(head):
			return nil, metadataNotFound(name, fmt.Errorf("archive member %q is a universal file", member.Name))
		case !macho.IsSingleArchitecture(head):
			return nil, metadataNotFound(name, fmt.Errorf("archive member %q is not a mach-o object", member.Name))
		}
	}

	switch macho.Classify(head) {
	case macho.KindMachO32, macho.KindMachO64:
		hdr, id, hasUUID, err := readImage(c)
		if err != nil {
			return nil, metadataNotFound(name, err)
		}
		arch, ok := ResolveArchitecture(uint32(hdr.CPU), hdr.CPUSubtype)
		if !ok {
			return nil, architecturesNotFound(name, "unknown cpu %v (subtype %#x)", hdr.CPU, hdr.CPUSubtype)
		}
		return []sliceMetadata{{
			arch:    arch,
			linking: linkingForType(hdr.Type),
			uuid:    id,
			hasUUID: hasUUID,
		}}, nil
	case macho.KindUniversal:
		return readUniversal(ctx, name, c, opts)
	default:
		return nil, metadataNotFound(name, nil)
	}
}

func readUniversal(ctx context.Context, name string, c *cursor.Cursor, opts *Options) ([]sliceMetadata, error) {
	entries, err := macho.ReadUniversalHeader(c)
	if errors.Is(err, macho.ErrEmptyUniversal) {
		return nil, architecturesNotFound(name, "universal header lists no architectures")
	}
	if err != nil {
		return nil, metadataNotFound(name, err)
	}

	result := make([]sliceMetadata, 0, len(entries))
	for i, ent := range entries {
		if opts.StrictFallback && !c.Contains(int64(ent.Offset), int64(ent.Size)) {
			return nil, architecturesNotFound(name, "slice %d (offset %d, size %d) lies outside file (size %d)",
				i, ent.Offset, ent.Size, c.Size())
		}

		var s sliceMetadata
		var nested bool
		if c.Contains(int64(ent.Offset), 0) {
			err := c.At(int64(ent.Offset), func() error {
				head, err := peek(c, macho.MagicNumberSize)
				if err != nil {
					return err
				}
				if !macho.IsSingleArchitecture(head) {
					return nil
				}
				hdr, id, hasUUID, err := readImage(c)
				if err != nil {
					return err
				}
				nested = true
				s = sliceMetadata{
					linking: linkingForType(hdr.Type),
					uuid:    id,
					hasUUID: hasUUID,
				}
				var ok bool
				s.arch, ok = ResolveArchitecture(uint32(hdr.CPU), hdr.CPUSubtype)
				if !ok {
					log.Debugf(ctx, "%s: slice %d has unknown cpu %v (subtype %#x); using universal header entry",
						name, i, hdr.CPU, hdr.CPUSubtype)
				}
				return nil
			})
			if err != nil {
				return nil, metadataNotFound(name, fmt.Errorf("slice %d: %w", i, err))
			}
		}

		if !nested {
			log.Debugf(ctx, "%s: slice %d at offset %d is not a mach-o image; assuming static %v",
				name, i, ent.Offset, ent.CPU)
			s = sliceMetadata{linking: Static}
		}
		if s.arch == "" {
			var ok bool
			s.arch, ok = ResolveArchitecture(uint32(ent.CPU), ent.CPUSubtype)
			if !ok {
				return nil, architecturesNotFound(name, "slice %d has unknown cpu %v (subtype %#x)",
					i, ent.CPU, ent.CPUSubtype)
			}
		}
		if !s.hasUUID {
			log.Debugf(ctx, "%s: slice %d (%s) has no LC_UUID", name, i, s.arch)
		}
		if _, ok := ent.Alignment.Bytes(); !ok {
			log.Debugf(ctx, "%s: slice %d declares alignment 2^%d", name, i, ent.Alignment)
		}
		result = append(result, s)
	}
	return result, nil
}

// readImage reads a single-architecture Mach-O header
// and scans its load commands for an LC_UUID.
func readImage(c *cursor.Cursor) (_ *macho.FileHeader, _ uuid.UUID, hasUUID bool, err error) {
	start := c.Offset()
	hdr, err := macho.ReadFileHeader(c)
	if err != nil {
		return nil, uuid.Nil, false, err
	}
	if !c.Contains(start, hdr.DataOffset()) {
		return nil, uuid.Nil, false, fmt.Errorf("load commands (%d bytes at offset %d) extend past end of file",
			hdr.LoadCommandRegionSize, start+hdr.LoadCommandsOffset())
	}
	id, hasUUID, err := macho.FindUUID(macho.NewCommandScanner(c, hdr))
	if err != nil {
		return nil, uuid.Nil, false, err
	}
	return hdr, id, hasUUID, nil
}

// peek returns up to n bytes at c's position without advancing it.
// Reaching the end of the input is not an error.
func peek(c *cursor.Cursor, n int) ([]byte, error) {
	head, err := c.Peek(n)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return head, nil
}

func linkingForType(t macho.Type) Linking {
	if t.IsDynamicLibrary() {
		return Dynamic
	}
	return Static
}
