// Package config loads scriven's yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/scrivenapp/scriven/internal/safety"
)

type Config struct {
	Workspace struct {
		Root string `yaml:"root"`
	} `yaml:"workspace"`

	Safety struct {
		MaxAutoChangeLines int `yaml:"max_auto_change_lines"` // changes past this need review; 2x scores High
		MinFileLines       int `yaml:"min_file_lines"`        // files shorter than this are always Low risk
		MaxAutoMultiFile   int `yaml:"max_auto_multi_file"`   // batches touching more files escalate
	} `yaml:"safety"`

	Extract struct {
		MaxProseLen int `yaml:"max_prose_len"` // prose outside patch tags beyond this records a warning
	} `yaml:"extract"`

	Apply struct {
		// Mode "review" holds risky patches for approval; "auto" applies
		// them without asking.
		Mode string `yaml:"mode"`
	} `yaml:"apply"`

	Log struct {
		Path        string `yaml:"path"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// Default returns the stock configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Safety.MaxAutoChangeLines == 0 {
		c.Safety.MaxAutoChangeLines = 100
	}
	if c.Safety.MinFileLines == 0 {
		c.Safety.MinFileLines = 10
	}
	if c.Safety.MaxAutoMultiFile == 0 {
		c.Safety.MaxAutoMultiFile = 3
	}
	if c.Extract.MaxProseLen == 0 {
		c.Extract.MaxProseLen = 200
	}
	if c.Apply.Mode == "" {
		c.Apply.Mode = "review"
	}
}

// Load reads a yaml config file and fills unset fields with defaults.
// SCRIVEN_LOG overrides the configured log path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	// Apply environment overrides
	if logPath := os.Getenv("SCRIVEN_LOG"); logPath != "" {
		cfg.Log.Path = logPath
	}

	// Convert workspace root to absolute path
	if cfg.Workspace.Root != "" {
		absRoot, err := filepath.Abs(cfg.Workspace.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
		}
		cfg.Workspace.Root = absRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Safety.MaxAutoChangeLines < 0 {
		return fmt.Errorf("safety.max_auto_change_lines must not be negative")
	}
	if c.Safety.MinFileLines < 0 {
		return fmt.Errorf("safety.min_file_lines must not be negative")
	}
	if c.Safety.MaxAutoMultiFile < 0 {
		return fmt.Errorf("safety.max_auto_multi_file must not be negative")
	}
	if c.Extract.MaxProseLen < 0 {
		return fmt.Errorf("extract.max_prose_len must not be negative")
	}
	if c.Apply.Mode != "review" && c.Apply.Mode != "auto" {
		return fmt.Errorf("apply.mode must be %q or %q, got %q", "review", "auto", c.Apply.Mode)
	}
	return nil
}

// Thresholds converts the safety section into pipeline thresholds.
func (c *Config) Thresholds() safety.Thresholds {
	return safety.Thresholds{
		MaxAutoChangeLines: c.Safety.MaxAutoChangeLines,
		MinFileLines:       c.Safety.MinFileLines,
		MaxAutoMultiFile:   c.Safety.MaxAutoMultiFile,
	}
}
