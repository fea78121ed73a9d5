// Package config loads and saves the optional JSON settings file. A missing
// or unreadable file falls back to defaults instead of failing the run.
package config

import (
	"encoding/json"
	"os"
)

// DefaultFilename is the config path used when none is given on the CLI.
const DefaultFilename = "asciigen.json"

// Config mirrors the CLI flags that are worth persisting between runs.
type Config struct {
	Generations     int     `json:"generations"`
	Population      int     `json:"population"`
	Jobs            int     `json:"jobs"`
	StatusInterval  float64 `json:"status_interval"`
	WhiteBackground bool    `json:"white_background"`
	Mode            string  `json:"mode"`
}

// Default returns the built-in settings, matching the CLI flag defaults.
func Default() *Config {
	return &Config{
		Generations:    100,
		Population:     80,
		Jobs:           4,
		StatusInterval: 1.0,
		Mode:           "genetic",
	}
}

// Load reads the config at filename. A missing file or broken JSON yields
// the defaults.
func Load(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Save writes cfg to filename as indented JSON.
func Save(cfg *Config, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}
