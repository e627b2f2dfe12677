package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ctxhub/internal/config"
	"ctxhub/internal/errors"
	"ctxhub/internal/store"
	"ctxhub/internal/version"
)

var (
	statusFormat string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	Long:  "Display the persisted master index summary and last run statistics",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	projectRoot := mustGetProjectRoot()

	cfg, err := config.LoadConfig(projectRoot)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "Failed to load configuration", err)
	}

	st := store.New(projectRoot)
	index, err := st.LoadMasterIndex()
	if err != nil {
		return errors.New(errors.InternalError, "Failed to load master index", err)
	}
	if index == nil {
		return errors.New(errors.IndexMissing, "No index found", nil)
	}

	if statusFormat == "json" {
		data, err := json.MarshalIndent(index, "", "  ")
		if err != nil {
			return errors.New(errors.InternalError, "Failed to marshal status", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("ctxhub %s\n\n", version.Version)
	fmt.Printf("Project:      %s (%s)\n", index.Project, index.Architecture)
	fmt.Printf("Source root:  %s\n", cfg.Project.RootPath)
	fmt.Printf("Modules:      %d (%s)\n", index.Modules, strings.Join(index.ModuleList, ", "))
	fmt.Printf("Files:        %d\n", index.TotalFiles)
	fmt.Printf("Lines:        %d\n", index.TotalLOC)
	fmt.Printf("Rules:        %d\n", index.Stats.RulesIndexed)
	fmt.Printf("Indexed at:   %s\n", index.IndexedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Last run:     %s in %s\n", index.Stats.RunID, index.Stats.Duration)
	if len(index.Errors) > 0 {
		fmt.Println("Warnings:")
		for _, e := range index.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return nil
}
