// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default values applied when configuration leaves a setting unset.
const (
	DefaultLimit     = 50
	DefaultExtension = ".md"
	DefaultAddr      = ":8000"
)

// DefaultDailyNotePatterns are the locations tried for a date's daily note
// when configuration names none.
var DefaultDailyNotePatterns = []string{
	"YYYY-MM-DD.md",
	"Daily/YYYY-MM-DD.md",
	"daily/YYYY-MM-DD.md",
	"Daily Notes/YYYY-MM-DD.md",
	"Journal/YYYY-MM-DD.md",
}

// ServeConfig holds settings for the HTTP adapter.
type ServeConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config holds the settings shared by every command. It is read from
// .markdown-todo-extractor.{yaml,toml,json} in the scan root and from the
// environment.
type Config struct {
	// ExcludePaths are glob patterns for files and directories the walker
	// skips. A pattern without a slash matches any single path component.
	ExcludePaths []string `json:"exclude_paths" yaml:"exclude_paths" mapstructure:"exclude_paths"`

	// DefaultLimit caps the number of tasks returned when a request sets no
	// limit (default 50).
	DefaultLimit int `json:"default_limit" yaml:"default_limit" mapstructure:"default_limit"`

	// Extensions lists the file extensions parsed for tasks (default [".md"]).
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`

	// Workers bounds the number of files parsed concurrently. Zero uses
	// GOMAXPROCS; negative values are treated as zero.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// DailyNotePatterns locate daily notes. YYYY, MM, and DD in a pattern
	// are replaced by the zero-padded date parts.
	DailyNotePatterns []string `json:"daily_note_patterns" yaml:"daily_note_patterns" mapstructure:"daily_note_patterns"`

	Serve ServeConfig `json:"serve" yaml:"serve" mapstructure:"serve"`
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = DefaultLimit
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{DefaultExtension}
	}
	if len(c.DailyNotePatterns) == 0 {
		c.DailyNotePatterns = append([]string(nil), DefaultDailyNotePatterns...)
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	return c
}
