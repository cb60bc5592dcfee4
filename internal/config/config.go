// Package config holds the command-line configuration for puzzle-tiler.
package config

import (
	"errors"
	"fmt"
	"os"
)

// Environment variables read by Load.
const (
	EnvOutputRoot = "PUZZLE_TILER_OUTPUT"
	EnvLogLevel   = "PUZZLE_TILER_LOG_LEVEL"
	EnvLogFile    = "PUZZLE_TILER_LOG_FILE"
)

// DefaultOutputRoot is used when neither a flag nor the environment names one.
const DefaultOutputRoot = "./puzzle_segments"

// DefaultLogLevel is the logrus level used when none is configured.
const DefaultLogLevel = "info"

var (
	// ErrInputNotFound means the input path does not exist.
	ErrInputNotFound = errors.New("image file not found")

	// ErrInputNotAFile means the input path exists but is not a regular file.
	ErrInputNotAFile = errors.New("path is not a file")
)

// Config is the resolved configuration for one run.
type Config struct {
	// InputPath is the image to process.
	InputPath string

	// OutputRoot is the directory that receives one folder per image.
	OutputRoot string

	// LogLevel is a logrus level name ("debug", "info", "warn", ...).
	LogLevel string

	// LogFile, when set, receives logs through a rotating file writer
	// instead of stderr.
	LogFile string

	// Manifest enables manifest.json next to the grids.
	Manifest bool
}

// Load returns the defaults with environment overrides applied. Flags
// parsed afterwards overwrite these values.
func Load() *Config {
	cfg := &Config{
		OutputRoot: DefaultOutputRoot,
		LogLevel:   DefaultLogLevel,
	}
	if v := os.Getenv(EnvOutputRoot); v != "" {
		cfg.OutputRoot = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Validate checks that InputPath names an existing regular file and that an
// output root is set. It is the only input check; an empty InputPath is
// reported as ErrInputNotFound.
func (c *Config) Validate() error {
	info, err := os.Stat(c.InputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, c.InputPath)
		}
		return fmt.Errorf("failed to stat %s: %w", c.InputPath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrInputNotAFile, c.InputPath)
	}

	if c.OutputRoot == "" {
		return errors.New("output directory must not be empty")
	}
	return nil
}
