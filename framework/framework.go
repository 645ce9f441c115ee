// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// Package framework reads metadata for framework bundles,
// pairing the bundle's binary with its debug symbol files.
package framework

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"zb.256lights.llc/binmeta"
	"zombiezen.com/go/log"
)

// Extension is the file name extension of a framework bundle.
const Extension = ".framework"

// Metadata describes a framework bundle.
type Metadata struct {
	// Path is the path to the bundle directory.
	Path string `json:"path"`
	// BinaryPath is the path to the bundle's Mach-O binary.
	BinaryPath string `json:"binaryPath"`
	// DSYMPath is the path to the debug symbols bundle next to the framework
	// or the empty string if there is none.
	DSYMPath string `json:"dsymPath,omitempty"`
	// BCSymbolMapPaths is the list of symbol map files next to the framework
	// that match one of the binary's build UUIDs.
	BCSymbolMapPaths []string `json:"bcsymbolmapPaths,omitempty"`

	binmeta.Metadata `json:",inline"`
}

// BinaryPath returns the path to the binary inside a framework bundle,
// which is named after the bundle.
func BinaryPath(frameworkPath string) string {
	name := strings.TrimSuffix(filepath.Base(frameworkPath), Extension)
	return filepath.Join(frameworkPath, name)
}

// Read reads the metadata for the framework bundle at the given path.
func Read(ctx context.Context, frameworkPath string, opts *binmeta.Options) (*Metadata, error) {
	if filepath.Ext(frameworkPath) != Extension {
		return nil, fmt.Errorf("read framework %s: %w: not a %s bundle", frameworkPath, binmeta.ErrMetadataNotFound, Extension)
	}
	md := &Metadata{
		Path:       frameworkPath,
		BinaryPath: BinaryPath(frameworkPath),
	}
	binaryMetadata, err := binmeta.Read(ctx, md.BinaryPath, opts)
	if err != nil {
		return nil, fmt.Errorf("read framework: %w", err)
	}
	md.Metadata = *binaryMetadata

	dsymPath := frameworkPath + ".dSYM"
	if exists, err := dirExists(dsymPath); err != nil {
		return nil, fmt.Errorf("read framework %s: %v", frameworkPath, err)
	} else if exists {
		md.DSYMPath = dsymPath
	} else {
		log.Debugf(ctx, "No dSYM for %s", frameworkPath)
	}

	dir := filepath.Dir(frameworkPath)
	for _, id := range md.UUIDs {
		path := BCSymbolMapPath(dir, id)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Debugf(ctx, "No symbol map for %s build %v", frameworkPath, id)
			continue
		} else if err != nil {
			return nil, fmt.Errorf("read framework %s: %v", frameworkPath, err)
		}
		md.BCSymbolMapPaths = append(md.BCSymbolMapPaths, path)
	}
	return md, nil
}

// BCSymbolMapPath returns the path of the symbol map file
// for the given build UUID in dir.
// Symbol maps are named with the upper-case form of the UUID.
func BCSymbolMapPath(dir string, id uuid.UUID) string {
	return filepath.Join(dir, strings.ToUpper(id.String())+".bcsymbolmap")
}

func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
