package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/irlab/iranthology"
	"github.com/irlab/iranthology/record"
)

const (
	// DefaultInput is the name of the IR Anthology dump the collection was
	// built from.
	DefaultInput = "ir-anthology-07-11-2021-ss23.jsonl"
	// DefaultOutput is where the normalized documents are written.
	DefaultOutput = "output.jsonl"
)

// Config for the conversion and dataset tools. Flags override the defaults.
type Config struct {
	// DataDir holds the dataset files, documents and topics; relative
	// dataset paths are resolved against it.
	DataDir string
	// Input is the raw record file, "-" for stdin or a URL.
	Input string
	// Output is the normalized document file, "-" for stdout.
	Output string
	// IDField names the identifier field of the raw records.
	IDField string
	// Manifest enables writing a manifest next to the output.
	Manifest bool
	// Verbose enables debug logging.
	Verbose bool
}

// DefaultDataDir is the per user data directory.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, iranthology.AppName)
}

// Default returns a configuration with all defaults set.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Input:   DefaultInput,
		Output:  DefaultOutput,
		IDField: record.DefaultIDField,
	}
}
