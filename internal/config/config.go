package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the optional JSON config file for the CLI. Every field has
// a matching flag; flags win when both are set.
type Config struct {
	Job    string `json:"job,omitempty"`     // path to a job description text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch the job posting from
	Resume string `json:"resume,omitempty"`  // path to a seed resume JSON (section name -> content)

	APIKey      string `json:"api_key,omitempty"` // Gemini API key; empty selects offline mode
	Verbose     bool   `json:"verbose,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	ServerAddr  string `json:"server_addr,omitempty"`
}

// LoadConfig reads and parses a JSON config file. Relative paths are
// resolved against the working directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate rejects contradictory or dangling inputs before a session
// starts.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	inputs := []struct{ label, path string }{
		{"job", c.Job},
		{"resume", c.Resume},
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		if _, err := os.Stat(in.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", in.label, in.path)
		}
	}
	return nil
}
