// Package config loads optional user defaults for the phnx CLI from a TOML
// settings file. The core pipeline never reads config itself — every
// parameter it needs is passed explicitly by the caller — so a malformed or
// missing config file can never change cryptographic behavior, only CLI
// ergonomics (chunk size, self-test toggle, log verbosity).
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"
)

// FileName is the settings file phnx looks for, first in the current
// directory and then in the user's home directory.
const FileName = ".phnxrc"

// DefaultChunkKiB is the buffered-chunk size used when no config overrides it.
// Chosen as a multiple of 12 bytes so every read lines up on a Golay input
// boundary without a short trailing group.
const DefaultChunkKiB = 768 // 768 KiB = 65536 groups of 12 bytes

// Settings holds the tunable, non-cryptographic defaults the CLI applies.
type Settings struct {
	ChunkKiB  int    `toml:"chunk_kib"`
	SelfTest  bool   `toml:"self_test"`
	LogLevel  string `toml:"log_level"`
}

// Default returns the built-in defaults used when no config file is found.
func Default() Settings {
	return Settings{
		ChunkKiB: DefaultChunkKiB,
		SelfTest: true,
		LogLevel: "info",
	}
}

// Load reads settings from ./.phnxrc if present, otherwise ~/.phnxrc, and
// falls back to Default() for anything unset or if no file exists at all.
// A malformed config file is reported as an error; a missing one is not.
func Load() (Settings, error) {
	s := Default()

	path, err := locate()
	if err != nil || path == "" {
		return s, nil
	}

	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Default(), err
	}

	if s.ChunkKiB <= 0 {
		s.ChunkKiB = DefaultChunkKiB
	}
	return s, nil
}

func locate() (string, error) {
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	candidate := filepath.Join(home, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// ChunkBytes returns the configured chunk size in bytes, rounded down to the
// nearest multiple of 12 (the Golay input group size) and never below one
// group.
func (s Settings) ChunkBytes() int {
	bytes := s.ChunkKiB * 1024
	bytes -= bytes % 12
	if bytes < 12 {
		bytes = 12
	}
	return bytes
}
