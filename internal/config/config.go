// Package config holds the configuration shared by the tdlc CLI and the
// HTTP/WebSocket server front ends: listen address, cache sizing, and
// color/history preferences.
//
// Default() returns the engine's out-of-the-box settings; Load() overlays
// a config file on top of those defaults on a best-effort basis and
// never hard-fails analysis.
package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/cosine-software/tdl/cerrs"
)

// Config is the front-end configuration. Every field has a usable
// default; a config file on disk only overrides what it sets.
type Config struct {
	Server ServerConfig `json:"Server"`
	CLI    CLIConfig    `json:"CLI"`
}

type ServerConfig struct {
	Host          string `json:"Host,omitempty"`
	Port          int    `json:"Port,omitempty"`
	CacheCapacity int    `json:"CacheCapacity,omitempty"`
}

type CLIConfig struct {
	Color       bool `json:"Color,omitempty"`
	HistorySize int  `json:"HistorySize,omitempty"`
}

// Default returns a Config with the engine's out-of-the-box settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "localhost",
			Port:          4160,
			CacheCapacity: 128,
		},
		CLI: CLIConfig{
			Color:       true,
			HistorySize: 500,
		},
	}
}

// Load reads name as a JSON overlay on Default(). A missing file is not
// an error — it simply yields the defaults. A present-but-unreadable or
// malformed file is reported through err so the caller can decide whether
// to proceed with defaults or abort.
func Load(name string, debug bool) (*Config, error) {
	cfg := Default()

	sb, err := os.Stat(name)
	if errors.Is(err, os.ErrNotExist) {
		if debug {
			log.Printf("[config] %q: not found, using defaults\n", name)
		}
		return cfg, nil
	} else if err != nil {
		return cfg, err
	} else if sb.IsDir() {
		return cfg, cerrs.ErrInvalidInput
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	if debug {
		log.Printf("[config] %q: loaded\n", name)
	}
	return cfg, nil
}
