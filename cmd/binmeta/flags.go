// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// outputFormat is the name of an output encoding.
// It implements [github.com/spf13/pflag.Value]
// and is unmarshaled from configuration files as a string.
type outputFormat string

const (
	textFormat outputFormat = "text"
	jsonFormat outputFormat = "json"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) Type() string  { return "string" }
func (f outputFormat) String() string { return string(f) }
func (f outputFormat) Get() any       { return f }

func (f *outputFormat) Set(s string) error {
	switch newFormat := outputFormat(s); newFormat {
	case textFormat, jsonFormat:
		*f = newFormat
		return nil
	default:
		return fmt.Errorf("unknown format %q (must be %q or %q)", s, textFormat, jsonFormat)
	}
}

func (f outputFormat) MarshalText() ([]byte, error) {
	return []byte(f), nil
}

func (f *outputFormat) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}
