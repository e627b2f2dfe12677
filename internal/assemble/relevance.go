// Package assemble scores module relevance for a task description and
// assembles the size-budgeted context digest.
package assemble

import (
	"sort"
	"strings"
)

// moduleKeywords maps each module to the keyword set used for relevance
// scoring against a lowercased task description.
var moduleKeywords = map[string][]string{
	"Core":         {"state", "reducer", "action", "store", "tca", "architecture", "config"},
	"Features":     {"screen", "view", "feature", "user interface", "ui", "page", "onboarding", "auth", "settings", "home", "profile"},
	"Services":     {"service", "api", "business", "logic", "manager", "firebase", "analytics"},
	"Theme":        {"theme", "color", "style", "dark mode", "typography", "design", "spacing"},
	"Network":      {"network", "api", "request", "http", "endpoint", "fetch", "moya"},
	"Storage":      {"storage", "database", "cache", "persist", "save", "keychain", "userdefaults"},
	"Monetization": {"iap", "purchase", "subscription", "admob", "ads", "revenue", "appsflyer"},
	"Utilities":    {"extension", "helper", "utility", "util", "common"},
}

const (
	// alwaysIncludeModule is force-included whenever any module matched.
	alwaysIncludeModule = "Core"

	// alwaysIncludeScore is the score assigned on force-inclusion.
	alwaysIncludeScore = 0.3
)

// fallbackScores is used when no module keyword matches the task at all.
var fallbackScores = map[string]float64{
	"Core":     1.0,
	"Features": 0.5,
}

// ScoreRelevance computes normalized relevance scores for a task
// description. Each module's raw score is the fraction of its keyword set
// found as substrings of the lowercased task; zero-score modules are
// excluded, survivors are normalized by the maximum, and Core is
// force-included at a fixed score if absent. With no matches at all the
// fixed fallback pair is returned.
func ScoreRelevance(task string) map[string]float64 {
	taskLower := strings.ToLower(task)

	scores := make(map[string]float64)
	for module, keywords := range moduleKeywords {
		matched := 0
		for _, keyword := range keywords {
			if strings.Contains(taskLower, keyword) {
				matched++
			}
		}
		if matched > 0 {
			scores[module] = float64(matched) / float64(len(keywords))
		}
	}

	if len(scores) == 0 {
		fallback := make(map[string]float64, len(fallbackScores))
		for module, score := range fallbackScores {
			fallback[module] = score
		}
		return fallback
	}

	maxScore := 0.0
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}
	for module := range scores {
		scores[module] /= maxScore
	}

	if _, ok := scores[alwaysIncludeModule]; !ok {
		scores[alwaysIncludeModule] = alwaysIncludeScore
	}

	return scores
}

// RankedModule pairs a module name with its normalized score.
type RankedModule struct {
	Name  string
	Score float64
}

// Rank orders modules by descending score. Ties break by name so ranking is
// deterministic.
func Rank(scores map[string]float64) []RankedModule {
	ranked := make([]RankedModule, 0, len(scores))
	for name, score := range scores {
		ranked = append(ranked, RankedModule{Name: name, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// EstimateTokens approximates token count as one token per four characters.
// It is a monotonic proxy, not an exact figure.
func EstimateTokens(text string) int {
	return len(text) / 4
}
