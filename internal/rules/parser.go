package rules

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// listItemPattern matches bulleted or numbered list markers at line start.
var listItemPattern = regexp.MustCompile(`^(?:[-*•]|\d+\.)`)

// patternKeywords trigger pattern snippet capture when present in a line.
var patternKeywords = []string{
	"pattern", "architecture", "structure", "design",
	"approach", "strategy", "methodology",
}

// priorityMarkers are checked in fixed precedence order; the first matching
// group on a line sets the sticky priority.
var priorityMarkers = []struct {
	markers  []string
	priority Priority
}{
	{[]string{"CRITICAL", "MUST"}, PriorityCritical},
	{[]string{"IMPORTANT", "SHOULD"}, PriorityHigh},
	{[]string{"OPTIONAL", "NICE TO HAVE"}, PriorityLow},
}

// frontMatter is the optional YAML header of a rule document. It overrides
// the default sticky state for the whole document.
type frontMatter struct {
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
}

// ParseDocument extracts rules and pattern snippets from one documentation
// unit. Category and priority are sticky line-scanner state: headers update
// the category, marker substrings update the priority, and both persist
// until changed again.
func ParseDocument(content, sourceFile string) ([]Rule, []Pattern) {
	category := "general"
	priority := PriorityMedium

	body, fm := splitFrontMatter(content)
	if fm != nil {
		if fm.Category != "" {
			category = strings.ToLower(fm.Category)
		}
		if p := parsePriority(fm.Priority); p != "" {
			priority = p
		}
	}

	var captured []Rule
	lines := strings.Split(body, "\n")

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// Section headers update the sticky category
		if strings.HasPrefix(line, "##") {
			category = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(line, "#", "")))
			continue
		}

		// Priority markers update the sticky priority and still allow the
		// same line to be captured as a rule below
		for _, group := range priorityMarkers {
			if containsAny(line, group.markers) {
				priority = group.priority
				break
			}
		}

		if listItemPattern.MatchString(line) {
			text := strings.TrimSpace(listItemPattern.ReplaceAllString(line, ""))
			if len(text) > MinRuleLength {
				captured = append(captured, Rule{
					Text:       text,
					Category:   category,
					Priority:   priority,
					SourceFile: sourceFile,
				})
			}
			continue
		}

		// Single lines fully wrapped in inline code become code-pattern rules
		if strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`") {
			text := strings.Trim(line, "`")
			if len(text) > MinRuleLength {
				captured = append(captured, Rule{
					Text:       "Code pattern: " + text,
					Category:   category,
					Priority:   priority,
					SourceFile: sourceFile,
				})
			}
		}
	}

	return captured, extractPatterns(body)
}

// extractPatterns captures narrative snippets around pattern keywords: the
// matching line plus up to the next two non-blank lines, joined by spaces,
// kept only within a length band and clipped to 200 characters.
func extractPatterns(content string) []Pattern {
	var patterns []Pattern
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if !containsAny(strings.ToLower(line), patternKeywords) {
			continue
		}

		var window []string
		for j := i; j < i+3 && j < len(lines); j++ {
			if trimmed := strings.TrimSpace(lines[j]); trimmed != "" {
				window = append(window, trimmed)
			}
		}
		if len(window) == 0 {
			continue
		}

		text := strings.Join(window, " ")
		if len(text) > 20 && len(text) < 500 {
			patterns = append(patterns, Pattern{
				Description: clip(text, 200),
				Category:    categorizePattern(text),
			})
		}
	}

	return patterns
}

// categoryKeywords map keyword families to pattern categories, checked in
// fixed order with first-match-wins precedence.
var categoryKeywords = []struct {
	keywords []string
	category string
}{
	{[]string{"component"}, "component"},
	{[]string{"navigation", "routing"}, "navigation"},
	{[]string{"state", "reducer"}, "state-management"},
	{[]string{"network", "api"}, "networking"},
	{[]string{"storage", "database"}, "persistence"},
}

func categorizePattern(text string) string {
	lower := strings.ToLower(text)
	for _, group := range categoryKeywords {
		if containsAny(lower, group.keywords) {
			return group.category
		}
	}
	return "general"
}

// splitFrontMatter strips an optional leading YAML front matter block.
// A malformed block is ignored and parsed as regular content.
func splitFrontMatter(content string) (string, *frontMatter) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return content, nil
	}

	rest := strings.TrimPrefix(content, "---\n")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return content, nil
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return content, nil
	}

	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return body, &fm
}

func parsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return ""
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
