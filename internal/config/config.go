// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Built-in defaults used when neither flags, environment nor a config file set a value.
const (
	DefaultInputDir      = "input_pdfs"
	DefaultOutputDir     = "output_jsons"
	DefaultSenatorFile   = "senator_candidates_full.json"
	DefaultPartyListFile = "party_list_full.json"
	DefaultExtension     = ".pdf"
	DefaultJobs          = 1
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file
// and overridden from the environment.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	InputDir      string `json:"input_dir,omitempty" yaml:"input_dir,omitempty" env:"BALLOT_INPUT_DIR"`
	OutputDir     string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" env:"BALLOT_OUTPUT_DIR"`
	SenatorFile   string `json:"senator_file,omitempty" yaml:"senator_file,omitempty" env:"BALLOT_SENATOR_FILE"`
	PartyListFile string `json:"party_list_file,omitempty" yaml:"party_list_file,omitempty" env:"BALLOT_PARTYLIST_FILE"`

	// Batch
	Extension    string `json:"extension,omitempty" yaml:"extension,omitempty" env:"BALLOT_EXTENSION"`
	ElectionDate string `json:"election_date,omitempty" yaml:"election_date,omitempty" env:"BALLOT_ELECTION_DATE"`
	Jobs         int    `json:"jobs,omitempty" yaml:"jobs,omitempty" env:"BALLOT_JOBS"`

	// Behavior
	ValidateOutput bool   `json:"validate_output,omitempty" yaml:"validate_output,omitempty" env:"BALLOT_VALIDATE_OUTPUT"`
	Verbose        bool   `json:"verbose,omitempty" yaml:"verbose,omitempty" env:"BALLOT_VERBOSE"`
	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty" env:"DATABASE_URL"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		InputDir:      DefaultInputDir,
		OutputDir:     DefaultOutputDir,
		SenatorFile:   DefaultSenatorFile,
		PartyListFile: DefaultPartyListFile,
		Extension:     DefaultExtension,
		Jobs:          DefaultJobs,
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the
// extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// LoadEnv reads configuration overrides from environment variables.
// Unset variables leave the corresponding fields empty.
func LoadEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check that input paths exist since those are resolved
// after merging with CLI flags.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("config error: 'jobs' must be non-negative")
	}

	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("config error: 'extension' must start with a dot, got %q", c.Extension)
	}

	if c.InputDir != "" && c.OutputDir != "" && filepath.Clean(c.InputDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("config error: 'input_dir' and 'output_dir' must differ")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over environment over config file over built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.InputDir == "" {
		result.InputDir = defaults.InputDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SenatorFile == "" {
		result.SenatorFile = defaults.SenatorFile
	}
	if result.PartyListFile == "" {
		result.PartyListFile = defaults.PartyListFile
	}
	if result.Extension == "" {
		result.Extension = defaults.Extension
	}
	if result.ElectionDate == "" {
		result.ElectionDate = defaults.ElectionDate
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Jobs == 0 {
		result.Jobs = defaults.Jobs
	}

	// Bool fields: a true anywhere wins
	result.ValidateOutput = result.ValidateOutput || defaults.ValidateOutput
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
