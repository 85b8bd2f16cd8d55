package main

import (
	"fmt"
	"os"

	"github.com/jonathan/ballot-parser/internal/config"
	"github.com/jonathan/ballot-parser/internal/ingestion"
	"github.com/jonathan/ballot-parser/internal/pipeline"
	"github.com/jonathan/ballot-parser/internal/reference"
)

// resolveConfig layers explicitly set flags over the environment, the optional
// config file and the built-in defaults, in that order of priority.
func resolveConfig(configPath string, flags config.Config, verbose bool) (config.Config, error) {
	cfg := config.Defaults()

	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return config.Config{}, err
		}

		cfg = loadedCfg.MergeWithDefaults(cfg)
		if verbose {
			_, _ = fmt.Fprintf(os.Stdout, "[VERBOSE] Loaded config from: %s\n", configPath)
		}
	}

	envCfg, err := config.LoadEnv()
	if err != nil {
		return config.Config{}, err
	}
	cfg = envCfg.MergeWithDefaults(cfg)
	cfg = flags.MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newProcessor loads the reference rosters and builds a processor for cfg.
func newProcessor(cfg config.Config) (*pipeline.Processor, error) {
	if _, err := os.Stat(cfg.SenatorFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("senator roster not found: %s", cfg.SenatorFile)
	}
	if _, err := os.Stat(cfg.PartyListFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("party list roster not found: %s", cfg.PartyListFile)
	}

	rosters, err := reference.LoadRosters(cfg.SenatorFile, cfg.PartyListFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference rosters: %w", err)
	}

	pdf := ingestion.NewPDFExtractor()
	if cfg.Verbose {
		pdf.OnWarning = printPDFWarning
	}
	processor := pipeline.NewProcessor(ingestion.ExtensionExtractor{PDF: pdf}, rosters)
	if cfg.ElectionDate != "" {
		processor.ElectionDate = cfg.ElectionDate
	}
	processor.ValidateOutput = cfg.ValidateOutput
	return processor, nil
}

// printPDFWarning reports a non-fatal PDF extraction problem on stderr.
func printPDFWarning(path, message string) {
	_, _ = fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", path, message)
}
