package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"ctxhub/internal/assemble"
	"ctxhub/internal/config"
	"ctxhub/internal/errors"
	"ctxhub/internal/store"
)

var contextCmd = &cobra.Command{
	Use:   "context [task description]",
	Short: "Generate a context digest for a task",
	Long: `Scores module relevance against a free-text task description and assembles
a token-budgeted markdown digest from the persisted index.

With a trailing argument the digest is generated once. Without arguments an
interactive prompt reads task descriptions until 'exit' or Ctrl+C.

Examples:
  ctxhub context "Add dark mode toggle to Settings screen"
  ctxhub context`,
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	projectRoot := mustGetProjectRoot()

	cfg, err := config.LoadConfig(projectRoot)
	if err != nil {
		return errors.New(errors.ConfigInvalid, "Failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return errors.New(errors.ConfigInvalid, "Invalid configuration", err)
	}

	logger := newLogger(cfg)
	st := store.New(projectRoot)

	index, err := st.LoadMasterIndex()
	if err != nil {
		return errors.New(errors.ContextFailed, "Failed to load master index", err)
	}
	if index == nil {
		return errors.New(errors.IndexMissing, "No index found", nil)
	}

	asm := assemble.New(cfg, st, logger)

	if len(args) > 0 {
		task := strings.Join(args, " ")
		return generateDigest(asm, st, task)
	}

	return runContextREPL(asm, st)
}

func generateDigest(asm *assemble.Assembler, st *store.Store, task string) error {
	content, err := asm.Generate(task)
	if err != nil {
		return errors.New(errors.ContextFailed, "Context assembly failed", err)
	}

	path, err := st.SaveContext(content)
	if err != nil {
		return errors.New(errors.ContextFailed, "Failed to save context digest", err)
	}

	fmt.Printf("Context written to %s (~%d tokens)\n", path, assemble.EstimateTokens(content))
	return nil
}

// runContextREPL reads task descriptions interactively with line editing and
// history until an exit keyword or Ctrl+C.
func runContextREPL(asm *assemble.Assembler, st *store.Store) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	historyPath := filepath.Join(st.Dir(), "history")
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = line.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Println("Describe your task (exit to quit):")

	for {
		input, err := line.Prompt("ctxhub> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			// io.EOF on Ctrl+D
			fmt.Println()
			return nil
		}

		task := strings.TrimSpace(input)
		if task == "" {
			continue
		}
		switch strings.ToLower(task) {
		case "exit", "quit", "q":
			return nil
		}

		line.AppendHistory(task)

		if err := generateDigest(asm, st, task); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
