package main

import (
	"os"

	"ctxhub/internal/config"
	"ctxhub/internal/logging"
	"ctxhub/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctxhub",
	Short: "ctxhub - Context Hub for Swift codebases",
	Long: `ctxhub indexes a Swift source tree into lightweight JSON documents and
assembles token-budgeted context digests for development tasks. It extracts
symbols and module metadata, indexes documentation rules and patterns, and
ranks modules by relevance to a task description.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("ctxhub version {{.Version}}\n")
}

// mustGetProjectRoot returns the current working directory or exits.
func mustGetProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		rootCmd.PrintErrf("Error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}
	return cwd
}

// newLogger builds a logger from the loaded configuration.
func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})
}
