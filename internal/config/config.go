// Package config defines the project configuration file and its loader.
package config

import (
	"fmt"
	"runtime"
)

// Config is the root configuration, read from .proofdex/config.yml.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
}

// PathsConfig selects which files are scanned.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"`
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// Dir is the output directory, relative to the project root.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Format is the export format: json or csv.
	Format string `yaml:"format" mapstructure:"format"`

	// Pretty enables indented JSON output.
	Pretty bool `yaml:"pretty" mapstructure:"pretty"`
}

// ExtractConfig tunes the extraction run.
type ExtractConfig struct {
	// Jobs is the number of files parsed concurrently.
	Jobs int `yaml:"jobs" mapstructure:"jobs"`

	// IdentifierRunes are extra runes accepted inside identifiers.
	IdentifierRunes string `yaml:"identifier_runes" mapstructure:"identifier_runes"`

	// CacheSize is the maximum number of cached file entries.
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"`
}

// SearchConfig tunes search behavior.
type SearchConfig struct {
	// Limit is the default number of search hits.
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{"**/*.lean"},
			Ignore: []string{
				"build/**",
				"lake-packages/**",
				".lake/**",
				".git/**",
			},
		},
		Output: OutputConfig{
			Dir:    ".proofdex",
			Format: "json",
			Pretty: true,
		},
		Extract: ExtractConfig{
			Jobs:      runtime.GOMAXPROCS(0),
			CacheSize: 4096,
		},
		Search: SearchConfig{
			Limit: 15,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if len(c.Paths.Include) == 0 {
		return fmt.Errorf("paths.include must not be empty")
	}
	switch c.Output.Format {
	case "json", "csv":
	default:
		return fmt.Errorf("output.format must be json or csv, got %q", c.Output.Format)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Extract.Jobs < 0 {
		return fmt.Errorf("extract.jobs must not be negative")
	}
	if c.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be positive")
	}
	return nil
}
