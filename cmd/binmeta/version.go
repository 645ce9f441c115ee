// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// binmetaVersion is the version string filled in by the linker (e.g. "1.2.3").
var binmetaVersion string

func newVersionCommand() *cobra.Command {
	c := &cobra.Command{
		Use:                   "version",
		Short:                 "show version information",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd.OutOrStdout())
	}
	return c
}

func runVersion(w io.Writer) error {
	version := binmetaVersion
	if version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	firstLine := "binmeta"
	if version == "" {
		firstLine += " (version unknown)"
	} else {
		firstLine += " version " + version
	}

	_, err := fmt.Fprintf(w, "%s\nGo:           %s\nSystem:       %s/%s\nCPUs:         %d\n",
		firstLine, runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	return err
}
