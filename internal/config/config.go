// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Shell     Shell     `yaml:"shell"`
	Birthdays Birthdays `yaml:"birthdays"`
	Contacts  Contacts  `yaml:"contacts"`
}

// Shell holds interactive shell settings.
type Shell struct {
	Prompt string `yaml:"prompt"`
}

// Birthdays holds upcoming-birthday query settings.
type Birthdays struct {
	WindowDays int  `yaml:"window_days"` // Inclusive lookahead window
	Rollover   bool `yaml:"rollover"`    // Move passed birthdays into next year
}

// Contacts holds record mutation settings.
type Contacts struct {
	AtomicEdit bool `yaml:"atomic_edit"` // Validate the new number before removing the old
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shell: Shell{
			Prompt: "Enter a command: ",
		},
		Birthdays: Birthdays{
			WindowDays: 7,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Shell.Prompt == "" {
		return errors.New("config: shell.prompt cannot be empty")
	}
	if c.Birthdays.WindowDays < 1 {
		return fmt.Errorf("config: birthdays.window_days must be at least 1, got %d", c.Birthdays.WindowDays)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_PROMPT, ROLODEX_WINDOW_DAYS.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROLODEX_PROMPT"); v != "" {
		c.Shell.Prompt = v
	}
	if v := os.Getenv("ROLODEX_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_WINDOW_DAYS %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Shell     *rawShell     `yaml:"shell"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Contacts  *rawContacts  `yaml:"contacts"`
}

type rawShell struct {
	Prompt *string `yaml:"prompt"`
}

type rawBirthdays struct {
	WindowDays *int  `yaml:"window_days"`
	Rollover   *bool `yaml:"rollover"`
}

type rawContacts struct {
	AtomicEdit *bool `yaml:"atomic_edit"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Shell != nil {
		if layer.Shell.Prompt != nil {
			c.Shell.Prompt = *layer.Shell.Prompt
		}
	}
	if layer.Birthdays != nil {
		if layer.Birthdays.WindowDays != nil {
			c.Birthdays.WindowDays = *layer.Birthdays.WindowDays
		}
		if layer.Birthdays.Rollover != nil {
			c.Birthdays.Rollover = *layer.Birthdays.Rollover
		}
	}
	if layer.Contacts != nil {
		if layer.Contacts.AtomicEdit != nil {
			c.Contacts.AtomicEdit = *layer.Contacts.AtomicEdit
		}
	}
}
