package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file.
const FileName = "budget.yaml"

// Config represents the top-level budget.yaml configuration.
type Config struct {
	Sources []Source     `yaml:"sources"`
	Rules   string       `yaml:"rules"`
	Output  OutputConfig `yaml:"output"`
}

// Source binds one input folder to a dialect parser. The order of
// sources in the file is the merge order.
type Source struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
	Folder string `yaml:"folder"`
}

// OutputConfig names the CSV sinks.
type OutputConfig struct {
	Transactions string `yaml:"transactions"`
	Budget       string `yaml:"budget"`
}

// Load reads a budget.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the canonical four-source configuration.
func Default() *Config {
	return &Config{
		Sources: []Source{
			{Name: "FNB", Format: "fnb", Folder: "input/FNB"},
			{Name: "Discovery", Format: "discovery", Folder: "input/Discovery"},
			{Name: "Standard Bank", Format: "standardbank", Folder: "input/Standard Bank"},
			{Name: "Cash", Format: "cash", Folder: "input/Cash"},
		},
		Rules: "input/mappings.yaml",
		Output: OutputConfig{
			Transactions: "Transactions.csv",
			Budget:       "Budget.csv",
		},
	}
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("config has no sources")
	}
	for _, s := range c.Sources {
		if s.Name == "" || s.Format == "" || s.Folder == "" {
			return fmt.Errorf("source %+v: name, format and folder are all required", s)
		}
	}
	if c.Rules == "" {
		return fmt.Errorf("config has no rules path")
	}
	if c.Output.Transactions == "" || c.Output.Budget == "" {
		return fmt.Errorf("config must name both output sinks")
	}
	return nil
}
