// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
	"zb.256lights.llc/binmeta"
)

type globalConfig struct {
	Debug          bool         `json:"debug"`
	Format         outputFormat `json:"format"`
	StrictFallback bool         `json:"strictFallback"`
	Jobs           int          `json:"jobs"`
}

func defaultGlobalConfig() *globalConfig {
	return &globalConfig{
		Format: textFormat,
		Jobs:   runtime.GOMAXPROCS(0),
	}
}

func (g *globalConfig) mergeEnvironment() error {
	if s := os.Getenv("BINMETA_FORMAT"); s != "" {
		if err := g.Format.Set(s); err != nil {
			return fmt.Errorf("BINMETA_FORMAT: %v", err)
		}
	}
	if s := os.Getenv("BINMETA_JOBS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("BINMETA_JOBS: %v", err)
		}
		g.Jobs = n
	}
	return nil
}

func (g *globalConfig) mergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, g, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}

	return nil
}

// UnmarshalJSONFrom unmarshals the configuration object from the JSON decoder,
// merging any fields in the JSON object with existing values.
func (g *globalConfig) UnmarshalJSONFrom(in *jsontext.Decoder) error {
	tok, err := in.ReadToken()
	if err != nil {
		return err
	}
	if got := tok.Kind(); got != '{' {
		return fmt.Errorf("config must be an object not a %v", got)
	}

	for {
		keyToken, err := in.ReadToken()
		if err != nil {
			return err
		}
		switch kind := keyToken.Kind(); kind {
		case '}':
			return nil
		case '"':
			// Keep going.
		default:
			return fmt.Errorf("unexpected non-string key (%v) in object", kind)
		}

		switch k := keyToken.String(); k {
		case "debug":
			if err := jsonv2.UnmarshalDecode(in, &g.Debug); err != nil {
				return fmt.Errorf("unmarshal config.debug: %w", err)
			}
		case "format":
			if err := jsonv2.UnmarshalDecode(in, &g.Format); err != nil {
				return fmt.Errorf("unmarshal config.format: %w", err)
			}
		case "strictFallback":
			if err := jsonv2.UnmarshalDecode(in, &g.StrictFallback); err != nil {
				return fmt.Errorf("unmarshal config.strictFallback: %w", err)
			}
		case "jobs":
			if err := jsonv2.UnmarshalDecode(in, &g.Jobs); err != nil {
				return fmt.Errorf("unmarshal config.jobs: %w", err)
			}
		default:
			if reject, _ := jsonv2.GetOption(in.Options(), jsonv2.RejectUnknownMembers); reject {
				return fmt.Errorf("unmarshal config: unknown field %q", k)
			}
			if err := in.SkipValue(); err != nil {
				return err
			}
		}
	}
}

func (g *globalConfig) validate() error {
	if g.Format != textFormat && g.Format != jsonFormat {
		return fmt.Errorf("unknown output format %q", g.Format)
	}
	if g.Jobs < 1 {
		return fmt.Errorf("jobs must be positive (got %d)", g.Jobs)
	}
	return nil
}

func (g *globalConfig) options() *binmeta.Options {
	return &binmeta.Options{
		StrictFallback: g.StrictFallback,
	}
}

// configFiles returns the paths of the configuration files to read
// in increasing order of preference.
func configFiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		for dir := range systemConfigDirs() {
			if !yield(filepath.Join(dir, "binmeta", "config.jwcc")) {
				return
			}
		}
	}
}
