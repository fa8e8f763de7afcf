// Package config loads CLI defaults from the vault's config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file inside the system directory.
	FileName = "config.yaml"
	// RootFileName is the alternative config file at the vault root. It also marks the root.
	RootFileName = "jot.yaml"
)

// Config holds the defaults a vault can pin. Zero values mean "not set".
type Config struct {
	Adapter  string `yaml:"adapter,omitempty"`
	Slot     string `yaml:"slot,omitempty"`
	Language string `yaml:"language,omitempty"`
	Gemini   Gemini `yaml:"gemini,omitempty"`
}

// Gemini configures the audio transcription engine. The API key is never read from file.
type Gemini struct {
	Model string `yaml:"model,omitempty"`
}

// Load reads <root>/<systemDir>/config.yaml, falling back to <root>/jot.yaml.
// A vault with neither file yields an empty Config.
func Load(root, systemDir string) (Config, error) {
	for _, path := range []string{
		filepath.Join(root, systemDir, FileName),
		filepath.Join(root, RootFileName),
	} {
		cfg, err := LoadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Config{}, nil
}

// LoadFile parses one config file, rejecting unknown keys.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to <root>/<systemDir>/config.yaml.
func Save(root, systemDir string, cfg Config) error {
	dir := filepath.Join(root, systemDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0644)
}

// Merge returns c with every field overridden by the non-empty fields of other.
func (c Config) Merge(other Config) Config {
	if other.Adapter != "" {
		c.Adapter = other.Adapter
	}
	if other.Slot != "" {
		c.Slot = other.Slot
	}
	if other.Language != "" {
		c.Language = other.Language
	}
	if other.Gemini.Model != "" {
		c.Gemini.Model = other.Gemini.Model
	}
	return c
}
