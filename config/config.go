// Package config provides the configuration of the decompiler and the logger
// it runs with.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input encodings that a listing can be written in.
const (
	EncodingUTF8     = "utf-8"
	EncodingUTF16LE  = "utf-16le"
	EncodingUTF16BE  = "utf-16be"
	EncodingShiftJIS = "shift_jis"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config controls a decompiler run.
type Config struct {
	// OutputRoot is the directory the reconstructed files are written under.
	OutputRoot string `yaml:"output_root"`

	Disassembler DisassemblerConfig `yaml:"disassembler"`

	// InputEncoding applies to listings without a byte order mark.
	InputEncoding string `yaml:"input_encoding"`

	Log LogConfig `yaml:"log"`

	Report   bool `yaml:"report"`
	Manifest bool `yaml:"manifest"`
}

// DisassemblerConfig describes the external tool that turns compiled scripts
// into listings.
type DisassemblerConfig struct {
	Executable string `yaml:"executable"`
	// BytecodeExt marks inputs that have to be disassembled first.
	BytecodeExt string `yaml:"bytecode_ext"`
	// ListingSuffix replaces BytecodeExt in the name of the produced listing.
	ListingSuffix string `yaml:"listing_suffix"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives the log instead of stderr when set.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OutputRoot: "generated",
		Disassembler: DisassemblerConfig{
			Executable:    "GTAdhocTools.exe",
			BytecodeExt:   ".adc",
			ListingSuffix: ".ad.diss",
		},
		InputEncoding: EncodingUTF8,
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.OutputRoot == "" {
		return fmt.Errorf("%w: output_root is empty", ErrInvalidConfig)
	}

	if c.Disassembler.BytecodeExt != "" && c.Disassembler.Executable == "" {
		return fmt.Errorf("%w: disassembler executable is empty", ErrInvalidConfig)
	}

	switch strings.ToLower(c.InputEncoding) {
	case EncodingUTF8, EncodingUTF16LE, EncodingUTF16BE, EncodingShiftJIS:
	default:
		return fmt.Errorf("%w: unsupported input_encoding %q",
			ErrInvalidConfig, c.InputEncoding)
	}

	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: unsupported log format %q", ErrInvalidConfig, c.Log.Format)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}
