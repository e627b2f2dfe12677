// Package rules extracts imperative rule statements and architectural
// pattern snippets from free-form documentation.
package rules

// Priority classifies how binding a rule is.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Priorities lists all priority buckets from most to least binding.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Rule is one extracted imperative statement.
type Rule struct {
	Text       string   `json:"text"`
	Category   string   `json:"category"`
	Priority   Priority `json:"priority"`
	SourceFile string   `json:"source_file"`
}

// Pattern is a short narrative snippet describing an architectural approach.
type Pattern struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Aggregate buckets rules by priority. Each bucket is deduplicated by a
// fixed-length text prefix and capped at MaxRulesPerPriority.
type Aggregate struct {
	Critical []Rule `json:"critical"`
	High     []Rule `json:"high"`
	Medium   []Rule `json:"medium"`
	Low      []Rule `json:"low"`
}

// Bucket returns a pointer to the slice for the given priority.
func (a *Aggregate) Bucket(p Priority) *[]Rule {
	switch p {
	case PriorityCritical:
		return &a.Critical
	case PriorityHigh:
		return &a.High
	case PriorityLow:
		return &a.Low
	default:
		return &a.Medium
	}
}

// Total counts rules across all buckets.
func (a *Aggregate) Total() int {
	return len(a.Critical) + len(a.High) + len(a.Medium) + len(a.Low)
}

// PatternsByCategory groups pattern descriptions by derived category.
type PatternsByCategory map[string][]string

// Total counts patterns across all categories.
func (p PatternsByCategory) Total() int {
	n := 0
	for _, v := range p {
		n += len(v)
	}
	return n
}

// QuickReference is the derived highlight structure built from an Aggregate.
type QuickReference struct {
	TopRules            []string `json:"top_rules"`
	NamingConventions   []string `json:"naming_conventions"`
	ArchitectureRules   []string `json:"architecture_rules"`
	TestingRequirements []string `json:"testing_requirements"`
}

const (
	// MaxRulesPerPriority caps each priority bucket after deduplication.
	MaxRulesPerPriority = 20

	// DedupePrefixLen is the text prefix length used as the dedupe key.
	DedupePrefixLen = 50

	// MinRuleLength is the minimum trimmed rule text length to capture.
	MinRuleLength = 10

	// MaxQuickRefEntries caps every quick reference list.
	MaxQuickRefEntries = 5
)
