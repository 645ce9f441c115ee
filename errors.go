// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package binmeta

import (
	"errors"
	"fmt"
)

var (
	// ErrMetadataNotFound is wrapped by errors for inputs that cannot be opened
	// or that do not contain a recognizable Mach-O image.
	ErrMetadataNotFound = errors.New("metadata not found")

	// ErrArchitecturesNotFound is wrapped by errors for Mach-O images
	// whose architecture cannot be determined.
	ErrArchitecturesNotFound = errors.New("architectures not found")
)

func metadataNotFound(name string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", name, ErrMetadataNotFound)
	}
	return fmt.Errorf("%s: %w: %w", name, ErrMetadataNotFound, cause)
}

func architecturesNotFound(name string, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", name, ErrArchitecturesNotFound, fmt.Sprintf(format, args...))
}
