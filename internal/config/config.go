// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads mdtasks settings with viper. Sources, lowest
// precedence first: built-in defaults, the config file, MDTASKS_*
// environment variables, command-line flags. The legacy MARKDOWN_TODO_EXTRACTOR_EXCLUDE_PATHS
// variable extends exclude_paths; MARKDOWN_TODO_EXTRACTOR_DEFAULT_LIMIT
// sets default_limit when MDTASKS_DEFAULT_LIMIT is unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdtasks/pkg/types"
)

// FileName is the config file base name, without extension. Any format
// viper reads (yaml, toml, json) is accepted.
const FileName = ".markdown-todo-extractor"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MDTASKS"

// Legacy environment variables kept for existing setups.
const (
	LegacyExcludePathsEnv = "MARKDOWN_TODO_EXTRACTOR_EXCLUDE_PATHS"
	LegacyDefaultLimitEnv = "MARKDOWN_TODO_EXTRACTOR_DEFAULT_LIMIT"
)

// Options selects where Load looks for a config file.
type Options struct {
	// File is an explicit config file. When set, it must exist.
	File string

	// Root is the scan root. Its directory (or the directory holding it,
	// when Root is a file) is searched for FileName.
	Root string

	// Home overrides the user home directory. Empty uses os.UserHomeDir.
	Home string

	// Flags, when set, override file and environment values for the keys
	// in FlagKeys, but only for flags the user actually set.
	Flags *pflag.FlagSet
}

// FlagKeys maps config keys to the command-line flags that override them.
var FlagKeys = map[string]string{
	"exclude_paths": "exclude",
	"workers":       "workers",
	"extensions":    "extensions",
	"serve.addr":    "addr",
}

// Result is a loaded configuration and the file it came from, if any.
type Result struct {
	Config types.Config
	File   string
}

// Load reads configuration from the sources described in the package
// comment. A missing config file is not an error unless Options.File names
// it.
func Load(opts Options) (Result, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		if dir := rootDir(opts.Root); dir != "" {
			v.AddConfigPath(dir)
		}
		if home := homeDir(opts.Home); home != "" {
			v.AddConfigPath(filepath.Join(home, ".config", "mdtasks"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("default_limit", EnvPrefix+"_DEFAULT_LIMIT", LegacyDefaultLimitEnv); err != nil {
		return Result{}, fmt.Errorf("binding env: %w", err)
	}

	if opts.Flags != nil {
		for key, name := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Result{}, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var res Result
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return Result{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		res.File = v.ConfigFileUsed()
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Result{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ExcludePaths = append(cfg.ExcludePaths, SplitEnvList(os.Getenv(LegacyExcludePathsEnv))...)
	cfg.ExcludePaths = SplitEnvList(cfg.ExcludePaths...)

	res.Config = cfg.WithDefaults()
	return res, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("exclude_paths", []string{})
	v.SetDefault("default_limit", types.DefaultLimit)
	v.SetDefault("extensions", []string{types.DefaultExtension})
	v.SetDefault("workers", 0)
	v.SetDefault("daily_note_patterns", types.DefaultDailyNotePatterns)
	v.SetDefault("serve.addr", types.DefaultAddr)
}

// SplitEnvList splits comma-separated values, trims whitespace, and drops
// blank entries.
func SplitEnvList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func rootDir(root string) string {
	if root == "" {
		return ""
	}
	info, err := os.Stat(root)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		return root
	}
	return filepath.Dir(root)
}

func homeDir(home string) string {
	if home != "" {
		return home
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}
