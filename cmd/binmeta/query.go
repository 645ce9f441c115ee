// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"zb.256lights.llc/binmeta"
	"zombiezen.com/go/log"
)

// query is the set of metadata a command prints.
type query int

const (
	queryAll query = iota
	queryArchitectures
	queryLinking
	queryUUIDs
)

func (q query) includes(other query) bool {
	return q == queryAll || q == other
}

func newQueryCommand(g *globalConfig, q query) *cobra.Command {
	c := &cobra.Command{
		Args:                  cobra.MinimumNArgs(1),
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	switch q {
	case queryAll:
		c.Use = "show [options] PATH [...]"
		c.Short = "show all metadata for binaries"
	case queryArchitectures:
		c.Use = "archs [options] PATH [...]"
		c.Short = "list the architectures in binaries"
	case queryLinking:
		c.Use = "linking [options] PATH [...]"
		c.Short = "show whether binaries link statically or dynamically"
	case queryUUIDs:
		c.Use = "uuids [options] PATH [...]"
		c.Short = "list the build UUIDs in binaries"
	default:
		panic("unknown query")
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd.Context(), g, cmd.OutOrStdout(), q, args)
	}
	return c
}

func runQuery(ctx context.Context, g *globalConfig, w io.Writer, q query, paths []string) error {
	opts := g.options()
	results, err := readPaths(ctx, g.Jobs, paths, func(ctx context.Context, path string) (*binmeta.Metadata, error) {
		return binmeta.Read(ctx, path, opts)
	})
	var writeErr error
	if g.Format == jsonFormat {
		writeErr = writeQueryJSON(w, q, paths, results)
	} else {
		writeErr = writeQueryText(w, q, paths, results)
	}
	if err != nil {
		return err
	}
	return writeErr
}

// readPaths calls read for each path, running at most jobs calls concurrently.
// The returned slice is in the same order as paths
// and has a nil entry for each path that could not be read.
// Failures are logged as they occur,
// and the returned error summarizes how many there were.
func readPaths[T any](ctx context.Context, jobs int, paths []string, read func(context.Context, string) (*T, error)) ([]*T, error) {
	results := make([]*T, len(paths))
	errs := make([]error, len(paths))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(jobs)
	for i, path := range paths {
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = read(grpCtx, path)
			return nil
		})
	}
	grp.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			log.Errorf(ctx, "%v", err)
			failed++
		}
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d paths could not be read", failed, len(paths))
	}
	return results, nil
}

func writeQueryText(w io.Writer, q query, paths []string, results []*binmeta.Metadata) error {
	sb := new(strings.Builder)
	for i, md := range results {
		if md == nil {
			continue
		}
		if q != queryAll {
			sb.WriteString(paths[i])
			sb.WriteString(":")
			switch q {
			case queryArchitectures:
				for _, arch := range md.Architectures {
					sb.WriteString(" ")
					sb.WriteString(string(arch))
				}
			case queryLinking:
				sb.WriteString(" ")
				sb.WriteString(md.Linking.String())
			case queryUUIDs:
				for _, id := range md.UUIDs {
					sb.WriteString(" ")
					sb.WriteString(id.String())
				}
			}
			sb.WriteString("\n")
			continue
		}

		fmt.Fprintf(sb, "%s\n", paths[i])
		writeMetadataText(sb, md)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMetadataText(sb *strings.Builder, md *binmeta.Metadata) {
	sb.WriteString("  architectures:")
	for _, arch := range md.Architectures {
		sb.WriteString(" ")
		sb.WriteString(string(arch))
	}
	fmt.Fprintf(sb, "\n  linking: %v\n", md.Linking)
	if len(md.UUIDs) == 0 {
		sb.WriteString("  uuids: none\n")
		return
	}
	sb.WriteString("  uuids:")
	for _, id := range md.UUIDs {
		sb.WriteString(" ")
		sb.WriteString(id.String())
	}
	sb.WriteString("\n")
}

// writeQueryJSON writes a JSON array with one object per successfully read path.
// Each object has a "path" member and one member per queried field.
func writeQueryJSON(w io.Writer, q query, paths []string, results []*binmeta.Metadata) error {
	enc := jsontext.NewEncoder(w, jsonOptions(w))
	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	for i, md := range results {
		if md == nil {
			continue
		}
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		if err := writeMember(enc, "path", paths[i]); err != nil {
			return err
		}
		if q.includes(queryArchitectures) {
			if err := writeMember(enc, "architectures", md.Architectures); err != nil {
				return err
			}
		}
		if q.includes(queryLinking) {
			if err := writeMember(enc, "linking", md.Linking); err != nil {
				return err
			}
		}
		if q.includes(queryUUIDs) {
			if err := writeMember(enc, "uuids", md.UUIDs); err != nil {
				return err
			}
		}
		if err := enc.WriteToken(jsontext.EndObject); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndArray)
}

func writeMember(enc *jsontext.Encoder, name string, value any) error {
	if err := enc.WriteToken(jsontext.String(name)); err != nil {
		return err
	}
	return jsonv2.MarshalEncode(enc, value)
}

// jsonOptions returns the encoding options for JSON written to w.
// Output to a terminal is indented.
func jsonOptions(w io.Writer) jsontext.Options {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return jsontext.WithIndent("  ")
	}
	return jsontext.Multiline(false)
}
