package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ctxhub/internal/config"
	"ctxhub/internal/errors"
	"ctxhub/internal/logging"

	"github.com/spf13/cobra"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ctxhub configuration",
	Long:  "Creates a .ctxhub/ directory with default configuration in the current project root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .ctxhub directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: "human",
		Level:  "info",
	})

	projectRoot := mustGetProjectRoot()

	// Idempotent behavior: already initialized is success
	hubDir := filepath.Join(projectRoot, config.ConfigDirName)
	if _, statErr := os.Stat(hubDir); statErr == nil {
		if !initForce {
			fmt.Println("ctxhub already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(hubDir, "config.json"))
			fmt.Println("\nRun 'ctxhub init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(hubDir); removeErr != nil {
			return errors.New(errors.InternalError, "Failed to remove existing .ctxhub directory", removeErr)
		}
		logger.Info("Removed existing .ctxhub directory", nil)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(projectRoot); err != nil {
		return errors.New(errors.InternalError, "Failed to write config file", err)
	}

	configPath := filepath.Join(hubDir, "config.json")
	logger.Info("ctxhub initialized successfully", map[string]interface{}{
		"config_path": configPath,
	})

	fmt.Println("ctxhub initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit project.root_path to point at your Swift source tree")
	fmt.Println("  2. Run 'ctxhub scan' to build the index")
	fmt.Println("  3. Run 'ctxhub context \"your task\"' to generate a digest")

	return nil
}
