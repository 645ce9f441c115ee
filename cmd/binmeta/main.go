// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

// binmeta prints the architectures, linking mode, and build UUIDs
// of Mach-O binaries, static libraries, and framework bundles.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"zombiezen.com/go/bass/sigterm"
	"zombiezen.com/go/log"
)

func main() {
	rootCommand := &cobra.Command{
		Use:           "binmeta",
		Short:         "inspect Mach-O binary metadata",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := defaultGlobalConfig()
	if err := g.mergeFiles(configFiles()); err != nil {
		initLogging(false)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
	if err := g.mergeEnvironment(); err != nil {
		initLogging(g.Debug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}

	rootCommand.PersistentFlags().BoolVar(&g.Debug, "debug", g.Debug, "show debugging output")
	rootCommand.PersistentFlags().Var(&g.Format, "format", "output `format` (text or json)")
	rootCommand.PersistentFlags().BoolVar(&g.StrictFallback, "strict-fallback", g.StrictFallback, "require universal slices to lie within the file")
	rootCommand.PersistentFlags().IntVarP(&g.Jobs, "jobs", "j", g.Jobs, "`number` of files to read in parallel")

	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initLogging(g.Debug)
		return g.validate()
	}

	rootCommand.AddCommand(
		newQueryCommand(g, queryAll),
		newQueryCommand(g, queryArchitectures),
		newQueryCommand(g, queryLinking),
		newQueryCommand(g, queryUUIDs),
		newFrameworkCommand(g),
		newVersionCommand(),
	)

	ignoreSIGPIPE()
	ctx, cancel := signal.NotifyContext(context.Background(), sigterm.Signals()...)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(g.Debug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "binmeta: ", log.StdFlags, nil),
		})
	})
}
