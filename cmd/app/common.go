package main

import (
	"errors"
	"fmt"
	"os"

	"SentiTrade/internal/domain/models"
	"SentiTrade/pkg/config"

	"github.com/google/subcommands"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

// failure reports err on stderr. Missing inputs get their own message.
func failure(err error) subcommands.ExitStatus {
	var missing *models.MissingFileError
	if errors.As(err, &missing) {
		fmt.Fprintf(os.Stderr, "Error: input file not found: %s\n", missing.Path)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
