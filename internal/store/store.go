// Package store persists ctxhub documents as JSON files under .ctxhub/.
// Every document is fully replaced on write; there is no merge and no
// history beyond the single rotating backup of the generated digest.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ctxhub/internal/config"
	"ctxhub/internal/rules"
)

// Fixed relative document paths under the .ctxhub directory.
const (
	indexFile    = "index.json"
	rulesFile    = "rules.json"
	patternsFile = "patterns.json"
	quickRefFile = "quick_reference.json"
	symbolsFile  = "cache/symbols.json"
	modulesDir   = "modules"
	generatedDir = "generated"
	contextFile  = "context.md"
	backupSuffix = ".bak"
)

// Store reads and writes the .ctxhub document tree for one project.
type Store struct {
	dir string
}

// New creates a Store rooted at <projectRoot>/.ctxhub.
func New(projectRoot string) *Store {
	return &Store{dir: filepath.Join(projectRoot, config.ConfigDirName)}
}

// Dir returns the absolute .ctxhub directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether the .ctxhub directory has been initialized.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// SaveModuleSummary writes one per-module document.
func (s *Store) SaveModuleSummary(summary *ModuleSummary) error {
	return s.writeJSON(filepath.Join(modulesDir, summary.Name+".json"), summary)
}

// LoadModuleSummary reads one per-module document. A missing document
// returns nil without error.
func (s *Store) LoadModuleSummary(name string) (*ModuleSummary, error) {
	var summary ModuleSummary
	ok, err := s.readJSON(filepath.Join(modulesDir, name+".json"), &summary)
	if err != nil || !ok {
		return nil, err
	}
	return &summary, nil
}

// SaveSymbols writes the symbol lookup cache.
func (s *Store) SaveSymbols(symbols map[string]string) error {
	return s.writeJSON(symbolsFile, symbols)
}

// LoadSymbols reads the symbol lookup cache, empty if absent.
func (s *Store) LoadSymbols() (map[string]string, error) {
	symbols := map[string]string{}
	if _, err := s.readJSON(symbolsFile, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// SaveRules writes the rules-by-priority document.
func (s *Store) SaveRules(agg *rules.Aggregate) error {
	return s.writeJSON(rulesFile, agg)
}

// LoadRules reads the rules-by-priority document, empty if absent.
func (s *Store) LoadRules() (*rules.Aggregate, error) {
	var agg rules.Aggregate
	if _, err := s.readJSON(rulesFile, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// SavePatterns writes the patterns-by-category document.
func (s *Store) SavePatterns(patterns rules.PatternsByCategory) error {
	return s.writeJSON(patternsFile, patterns)
}

// LoadPatterns reads the patterns-by-category document, empty if absent.
func (s *Store) LoadPatterns() (rules.PatternsByCategory, error) {
	patterns := rules.PatternsByCategory{}
	if _, err := s.readJSON(patternsFile, &patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}

// SaveQuickReference writes the quick reference document.
func (s *Store) SaveQuickReference(ref *rules.QuickReference) error {
	return s.writeJSON(quickRefFile, ref)
}

// LoadQuickReference reads the quick reference document. A missing document
// returns nil without error.
func (s *Store) LoadQuickReference() (*rules.QuickReference, error) {
	var ref rules.QuickReference
	ok, err := s.readJSON(quickRefFile, &ref)
	if err != nil || !ok {
		return nil, err
	}
	return &ref, nil
}

// SaveMasterIndex writes the master index document.
func (s *Store) SaveMasterIndex(index *MasterIndex) error {
	return s.writeJSON(indexFile, index)
}

// LoadMasterIndex reads the master index. A missing index returns nil
// without error.
func (s *Store) LoadMasterIndex() (*MasterIndex, error) {
	var index MasterIndex
	ok, err := s.readJSON(indexFile, &index)
	if err != nil || !ok {
		return nil, err
	}
	return &index, nil
}

// ContextPath returns the absolute path of the generated context digest.
func (s *Store) ContextPath() string {
	return filepath.Join(s.dir, generatedDir, contextFile)
}

// SaveContext writes the generated digest. An existing digest is first
// renamed to the single backup slot; the backup from two runs prior is lost.
func (s *Store) SaveContext(content string) (string, error) {
	dir := filepath.Join(s.dir, generatedDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := s.ContextPath()
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+backupSuffix); err != nil {
			return "", fmt.Errorf("rotating previous context: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// writeJSON marshals a document with two-space indentation and fully
// replaces the file at the given relative path.
func (s *Store) writeJSON(relPath string, doc interface{}) error {
	path := filepath.Join(s.dir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// readJSON reads a document into out. Returns false without error when the
// document does not exist.
func (s *Store) readJSON(relPath string, out interface{}) (bool, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(relPath))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", relPath, err)
	}
	return true, nil
}
