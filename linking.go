// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

//go:generate go tool stringer -type=Linking -linecomment -output=linking_string.go

package binmeta

import "fmt"

// Linking describes how a binary is linked into a product that uses it.
type Linking int

// Linking values.
const (
	Static  Linking = iota // static
	Dynamic                // dynamic
)

// MarshalText returns the name of the linking mode.
func (l Linking) MarshalText() ([]byte, error) {
	if l != Static && l != Dynamic {
		return nil, fmt.Errorf("marshal linking: unknown value %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText parses a linking mode name.
func (l *Linking) UnmarshalText(text []byte) error {
	switch string(text) {
	case "static":
		*l = Static
	case "dynamic":
		*l = Dynamic
	default:
		return fmt.Errorf("unmarshal linking: unknown value %q", text)
	}
	return nil
}
