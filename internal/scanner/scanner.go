// Package scanner walks a Swift source tree and aggregates per-module
// metadata records plus a global symbol lookup.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ctxhub/internal/config"
	"ctxhub/internal/logging"
	"ctxhub/internal/paths"
	"ctxhub/internal/swift"
)

// Result is the output of one scan pass.
type Result struct {
	// Modules maps module name to its aggregated record.
	Modules map[string]*ModuleRecord

	// SymbolLookup maps symbol name to the path of the declaring file.
	// On collision the last writer wins; uniqueness is not enforced.
	SymbolLookup map[string]string

	// FilesScanned counts files that produced a FileRecord.
	FilesScanned int

	// FilesSkipped counts ignored or unreadable files.
	FilesSkipped int
}

// Scanner performs a single sequential scan of the configured source tree.
// The scan is pure: persistence is the orchestrator's job.
type Scanner struct {
	cfg         *config.Config
	projectRoot string
	analyzer    *Analyzer
	logger      *logging.Logger
	allowed     map[string]bool
}

// New creates a Scanner for the given project root and configuration.
func New(cfg *config.Config, projectRoot string, logger *logging.Logger) *Scanner {
	allowed := make(map[string]bool, len(cfg.Modules))
	for _, m := range cfg.Modules {
		allowed[m] = true
	}

	return &Scanner{
		cfg:         cfg,
		projectRoot: projectRoot,
		analyzer:    NewAnalyzer(cfg, projectRoot, logger),
		logger:      logger,
		allowed:     allowed,
	}
}

// SourceRoot returns the absolute path of the configured source tree.
func (s *Scanner) SourceRoot() string {
	return paths.JoinProject(s.projectRoot, s.cfg.Project.RootPath)
}

// ModuleFor classifies a file by the first path segment relative to the
// source root. Segments outside the allow-list fall into the Misc bucket.
func (s *Scanner) ModuleFor(relToSource string) string {
	segment := paths.FirstSegment(relToSource)
	if s.allowed[segment] {
		return segment
	}
	return MiscModule
}

// ScanProject enumerates every Swift file under the source root and builds
// the module records and symbol lookup. Per-file failures are logged and the
// file is skipped; only a missing source root or walk failure aborts.
func (s *Scanner) ScanProject() (*Result, error) {
	sourceRoot := s.SourceRoot()
	if _, err := os.Stat(sourceRoot); err != nil {
		return nil, fmt.Errorf("source root %s: %w", sourceRoot, err)
	}

	s.logger.Info("Scanning project", map[string]interface{}{
		"sourceRoot": sourceRoot,
	})

	result := &Result{
		Modules:      make(map[string]*ModuleRecord),
		SymbolLookup: make(map[string]string),
	}

	err := filepath.Walk(sourceRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".swift") {
			return nil
		}

		if s.analyzer.ShouldIgnore(path, info.Size()) {
			result.FilesSkipped++
			return nil
		}

		record, analyzeErr := s.analyzer.AnalyzeFile(path, info.Size())
		if analyzeErr != nil {
			s.logger.Warn("Error analyzing file", map[string]interface{}{
				"file":  path,
				"error": analyzeErr.Error(),
			})
			result.FilesSkipped++
			return nil
		}

		relToSource, relErr := filepath.Rel(sourceRoot, path)
		if relErr != nil {
			relToSource = record.Name
		}
		s.accumulate(result, s.ModuleFor(filepath.ToSlash(relToSource)), record)
		result.FilesScanned++

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Dedupe and cap key symbols after accumulation
	for _, module := range result.Modules {
		module.KeySymbols = capped(dedupe(module.KeySymbols), KeySymbolCap)
		module.Dependencies = dedupe(module.Dependencies)
	}

	s.logger.Info("Scan completed", map[string]interface{}{
		"modules":      len(result.Modules),
		"filesScanned": result.FilesScanned,
		"filesSkipped": result.FilesSkipped,
	})

	return result, nil
}

// accumulate merges one FileRecord into its module bucket and the lookup.
func (s *Scanner) accumulate(result *Result, moduleName string, record *FileRecord) {
	module, ok := result.Modules[moduleName]
	if !ok {
		module = &ModuleRecord{Name: moduleName}
		result.Modules[moduleName] = module
	}

	module.Files = append(module.Files, *record)
	module.TotalLOC += record.LOC

	for _, category := range swift.Categories {
		prefix := swift.SingularPrefix(category)
		for _, name := range record.Symbols[category] {
			module.KeySymbols = append(module.KeySymbols, prefix+":"+name)
			result.SymbolLookup[name] = record.Path
		}
	}

	module.Dependencies = append(module.Dependencies, record.Imports...)
}

// dedupe removes duplicates preserving first-seen order. Applying it twice
// yields the same result as once.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func capped(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
