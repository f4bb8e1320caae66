// Package config implements TOML-backed server configuration with built-in
// defaults, grounded on noisetorch-NoiseTorch/config.go's
// initializeConfigIfNot/readConfig/writeConfig shape.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk and in-memory server configuration (spec.md §6's
// "constructed with width, height, and a screen/display number", plus
// which transports to bind).
type Config struct {
	Width      uint16
	Height     uint16
	Display    int
	UnixSocket bool
	TCP        bool
	TCPAddress string
}

const fileName = "config.toml"

// Default returns the server's built-in defaults.
func Default() Config {
	return Config{
		Width:      1024,
		Height:     768,
		Display:    0,
		UnixSocket: true,
		TCP:        false,
		TCPAddress: "",
	}
}

// InitializeIfNot writes the default config to dir/config.toml if no config
// file exists there yet.
func InitializeIfNot(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return Write(dir, Default())
}

// Read loads config.toml from dir. Call InitializeIfNot first if the file
// may not exist yet.
func Read(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, fileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write serializes cfg to dir/config.toml.
func Write(dir string, cfg Config) error {
	path := filepath.Join(dir, fileName)
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Dir resolves the XDG-style config directory, matching noisetorch's
// configDir/xdgOrFallback.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "x11q")
}

func xdgOrFallback(xdg, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return fallback
}
