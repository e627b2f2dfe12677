package rules

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ctxhub/internal/logging"
)

// Indexer scans a documentation directory and aggregates rules and patterns.
type Indexer struct {
	rulesPath string
	logger    *logging.Logger
}

// NewIndexer creates an Indexer over the given documentation directory.
func NewIndexer(rulesPath string, logger *logging.Logger) *Indexer {
	return &Indexer{rulesPath: rulesPath, logger: logger}
}

// IndexAll processes every markdown file in the rules directory. A missing
// directory is not an error: the indexer logs a warning and returns empty
// aggregates. Per-file read failures are logged and the file is skipped.
func (ix *Indexer) IndexAll() (*Aggregate, PatternsByCategory, error) {
	agg := &Aggregate{}
	patterns := PatternsByCategory{}

	if _, err := os.Stat(ix.rulesPath); os.IsNotExist(err) {
		ix.logger.Warn("Rules directory does not exist", map[string]interface{}{
			"path": ix.rulesPath,
		})
		return agg, patterns, nil
	}

	files, err := filepath.Glob(filepath.Join(ix.rulesPath, "*.md"))
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(files)

	ix.logger.Info("Indexing rule documents", map[string]interface{}{
		"path":  ix.rulesPath,
		"files": len(files),
	})

	for _, file := range files {
		content, readErr := os.ReadFile(file)
		if readErr != nil {
			ix.logger.Warn("Error reading rule document", map[string]interface{}{
				"file":  file,
				"error": readErr.Error(),
			})
			continue
		}

		docRules, docPatterns := ParseDocument(string(content), filepath.Base(file))

		for _, rule := range docRules {
			bucket := agg.Bucket(rule.Priority)
			*bucket = append(*bucket, rule)
		}
		for _, p := range docPatterns {
			patterns[p.Category] = append(patterns[p.Category], p.Description)
		}
	}

	for _, priority := range Priorities {
		bucket := agg.Bucket(priority)
		*bucket = capRules(dedupeRules(*bucket), MaxRulesPerPriority)
	}

	return agg, patterns, nil
}

// dedupeRules removes rules whose text shares a DedupePrefixLen-char prefix
// with an earlier rule, preserving first-seen order.
func dedupeRules(bucket []Rule) []Rule {
	seen := make(map[string]bool, len(bucket))
	out := bucket[:0]
	for _, rule := range bucket {
		key := clip(rule.Text, DedupePrefixLen)
		if !seen[key] {
			seen[key] = true
			out = append(out, rule)
		}
	}
	return out
}

func capRules(bucket []Rule, n int) []Rule {
	if len(bucket) > n {
		return bucket[:n]
	}
	return bucket
}

// BuildQuickReference derives the highlight structure from aggregated rules:
// top critical and high rule texts, plus naming/architecture/testing buckets
// filtered by category or text substrings. Every list is capped.
func BuildQuickReference(agg *Aggregate) *QuickReference {
	ref := &QuickReference{}

	for _, rule := range capRules(agg.Critical, 5) {
		ref.TopRules = append(ref.TopRules, rule.Text)
	}
	for _, rule := range capRules(agg.High, 3) {
		ref.TopRules = append(ref.TopRules, rule.Text)
	}

	var flat []Rule
	for _, priority := range Priorities {
		flat = append(flat, *agg.Bucket(priority)...)
	}

	for _, rule := range flat {
		text := strings.ToLower(rule.Text)
		switch {
		case strings.Contains(rule.Category, "naming") || strings.Contains(text, "name"):
			ref.NamingConventions = append(ref.NamingConventions, rule.Text)
		case strings.Contains(rule.Category, "architecture") || strings.Contains(text, "tca"):
			ref.ArchitectureRules = append(ref.ArchitectureRules, rule.Text)
		case strings.Contains(rule.Category, "test") || strings.Contains(text, "test"):
			ref.TestingRequirements = append(ref.TestingRequirements, rule.Text)
		}
	}

	ref.TopRules = capStrings(ref.TopRules, MaxQuickRefEntries)
	ref.NamingConventions = capStrings(ref.NamingConventions, MaxQuickRefEntries)
	ref.ArchitectureRules = capStrings(ref.ArchitectureRules, MaxQuickRefEntries)
	ref.TestingRequirements = capStrings(ref.TestingRequirements, MaxQuickRefEntries)

	return ref
}

func capStrings(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
