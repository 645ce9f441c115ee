// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/spf13/cobra"
	"zb.256lights.llc/binmeta/framework"
)

func newFrameworkCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "framework [options] PATH [...]",
		Short:                 "show metadata and debug symbol files for framework bundles",
		DisableFlagsInUseLine: true,
		Args:                  cobra.MinimumNArgs(1),
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runFramework(cmd.Context(), g, cmd.OutOrStdout(), args)
	}
	return c
}

func runFramework(ctx context.Context, g *globalConfig, w io.Writer, paths []string) error {
	opts := g.options()
	results, err := readPaths(ctx, g.Jobs, paths, func(ctx context.Context, path string) (*framework.Metadata, error) {
		return framework.Read(ctx, path, opts)
	})

	found := make([]*framework.Metadata, 0, len(results))
	for _, md := range results {
		if md != nil {
			found = append(found, md)
		}
	}
	var writeErr error
	if g.Format == jsonFormat {
		writeErr = jsonv2.MarshalWrite(w, found, jsonOptions(w))
		if writeErr == nil {
			_, writeErr = io.WriteString(w, "\n")
		}
	} else {
		sb := new(strings.Builder)
		for _, md := range found {
			fmt.Fprintf(sb, "%s\n  binary: %s\n", md.Path, md.BinaryPath)
			if md.DSYMPath != "" {
				fmt.Fprintf(sb, "  dsym: %s\n", md.DSYMPath)
			}
			for _, path := range md.BCSymbolMapPaths {
				fmt.Fprintf(sb, "  bcsymbolmap: %s\n", path)
			}
			writeMetadataText(sb, &md.Metadata)
		}
		_, writeErr = io.WriteString(w, sb.String())
	}
	if err != nil {
		return err
	}
	return writeErr
}
