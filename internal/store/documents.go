package store

import (
	"sort"
	"time"

	"ctxhub/internal/scanner"
)

// Summary caps applied when persisting a module document.
const (
	SummarySymbolCap     = 10
	SummaryDependencyCap = 10
	SummaryFileCap       = 20
)

// ModuleSummary is the persisted per-module document.
type ModuleSummary struct {
	Name         string   `json:"name"`
	Purpose      string   `json:"purpose"`
	TotalFiles   int      `json:"total_files"`
	TotalLOC     int      `json:"total_loc"`
	KeySymbols   []string `json:"key_symbols"`
	Dependencies []string `json:"dependencies"`
	Files        []string `json:"files"`
}

// NewModuleSummary condenses a ModuleRecord into its persisted summary:
// top key symbols, sorted top dependencies, and top file names.
func NewModuleSummary(record *scanner.ModuleRecord) *ModuleSummary {
	deps := append([]string(nil), record.Dependencies...)
	sort.Strings(deps)

	fileNames := make([]string, 0, len(record.Files))
	for _, f := range record.Files {
		fileNames = append(fileNames, f.Name)
	}

	return &ModuleSummary{
		Name:         record.Name,
		Purpose:      scanner.Purpose(record.Name),
		TotalFiles:   len(record.Files),
		TotalLOC:     record.TotalLOC,
		KeySymbols:   head(record.KeySymbols, SummarySymbolCap),
		Dependencies: head(deps, SummaryDependencyCap),
		Files:        head(fileNames, SummaryFileCap),
	}
}

// RunStats carries statistics from the most recent orchestrated run.
type RunStats struct {
	RunID          string `json:"run_id"`
	ModulesIndexed int    `json:"modules_indexed"`
	FilesProcessed int    `json:"files_processed"`
	RulesIndexed   int    `json:"rules_indexed"`
	Duration       string `json:"duration"`
}

// MasterIndex is the aggregate run document. It is overwritten after each
// run, never deleted.
type MasterIndex struct {
	Project       string    `json:"project"`
	Architecture  string    `json:"architecture"`
	Modules       int       `json:"modules"`
	ModuleList    []string  `json:"module_list"`
	TotalFiles    int       `json:"total_files"`
	TotalLOC      int       `json:"total_loc"`
	IndexedAt     time.Time `json:"indexed_at"`
	ConfigVersion int       `json:"config_version"`
	LastFullIndex time.Time `json:"last_full_index"`
	Stats         RunStats  `json:"stats"`
	Errors        []string  `json:"errors,omitempty"`
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
