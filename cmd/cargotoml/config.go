package main

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	keyFormat   = "format"
	keyStrict   = "strict"
	keyMaxDepth = "max-depth"
	keyVerbose  = "verbose"

	defaultFormat   = "text"
	defaultMaxDepth = 1000
)

var formats = []string{"text", "json", "yaml", "spew"}

// settings is the merged configuration of one invocation.
type settings struct {
	Format   string
	Strict   bool
	MaxDepth int
	Verbose  bool
}

// loadSettings merges the optional YAML config file at path with the
// command line flags. A flag set on the command line takes precedence over
// the file, which takes precedence over the flag defaults. The environment
// is not consulted.
func loadSettings(path string, flags *pflag.FlagSet) (*settings, error) {
	v := viper.New()
	v.SetDefault(keyFormat, defaultFormat)
	v.SetDefault(keyMaxDepth, defaultMaxDepth)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	s := &settings{
		Format:   v.GetString(keyFormat),
		Strict:   v.GetBool(keyStrict),
		MaxDepth: v.GetInt(keyMaxDepth),
		Verbose:  v.GetBool(keyVerbose),
	}
	if !slices.Contains(formats, s.Format) {
		return nil, fmt.Errorf("unknown output format %q, expected one of %v", s.Format, formats)
	}
	if s.MaxDepth <= 0 {
		return nil, fmt.Errorf("max-depth must be a positive integer, got %d", s.MaxDepth)
	}
	return s, nil
}
