package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"ctxhub/internal/config"
	"ctxhub/internal/logging"
	"ctxhub/internal/paths"
	"ctxhub/internal/swift"
)

// Analyzer produces a FileRecord for a single Swift source file.
type Analyzer struct {
	cfg         *config.Config
	projectRoot string
	logger      *logging.Logger
}

// NewAnalyzer creates a file analyzer bound to the given configuration.
func NewAnalyzer(cfg *config.Config, projectRoot string, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		cfg:         cfg,
		projectRoot: projectRoot,
		logger:      logger,
	}
}

// ShouldIgnore reports whether a file must be skipped: its path contains one
// of the configured ignore patterns (glob stars are treated as plain
// substring markers), or it exceeds the configured size cap.
func (a *Analyzer) ShouldIgnore(path string, sizeBytes int64) bool {
	pathStr := filepath.ToSlash(path)
	for _, pattern := range a.cfg.Indexing.IgnorePatterns {
		needle := strings.ReplaceAll(pattern, "*", "")
		if needle != "" && strings.Contains(pathStr, needle) {
			return true
		}
	}

	return sizeBytes > int64(a.cfg.Indexing.MaxFileSizeKB)*1024
}

// AnalyzeFile reads one file and extracts its metadata. The returned path is
// canonical project-relative.
func (a *Analyzer) AnalyzeFile(path string, sizeBytes int64) (*FileRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := string(content)
	symbols := swift.ExtractSymbols(text)
	imports := swift.ExtractImports(text)

	canonical, err := paths.Canonicalize(path, a.projectRoot)
	if err != nil {
		canonical = filepath.ToSlash(path)
	}

	return &FileRecord{
		Path:      canonical,
		Name:      filepath.Base(path),
		SizeBytes: sizeBytes,
		LOC:       countLOC(text),
		Symbols:   symbols,
		Imports:   imports,
		HasTests:  hasTests(text, imports),
	}, nil
}

// countLOC counts lines that are non-blank and not single-line comments.
// Block comment bodies are counted as code; the heuristic undercounts only
// lines starting with "//".
func countLOC(content string) int {
	loc := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
			loc++
		}
	}
	return loc
}

// hasTests flags files importing XCTest or using Swift Testing's @Test macro.
func hasTests(content string, imports []string) bool {
	for _, imp := range imports {
		if imp == "XCTest" {
			return true
		}
	}
	return strings.Contains(content, "@Test")
}
