package assemble

import (
	"fmt"
	"strings"
	"time"

	"ctxhub/internal/config"
	"ctxhub/internal/logging"
	"ctxhub/internal/rules"
	"ctxhub/internal/store"
)

// Section inclusion thresholds as fractions of the token budget. A section
// stops adding entries once the running estimate crosses its threshold.
const (
	moduleBudgetFraction   = 0.60
	rulesBudgetFraction    = 0.85
	quickRefBudgetFraction = 0.90
)

const (
	// maxModuleBlocks bounds the ranked modules included in the digest.
	maxModuleBlocks = 5

	// maxRuleLines bounds the combined critical+high rules section.
	maxRuleLines = 12

	// rulesPerPriority bounds how many rules are drawn from each of the
	// critical and high buckets before combining.
	rulesPerPriority = 5

	// maxQuickRefRules bounds the quick reference highlight lines.
	maxQuickRefRules = 5
)

// Assembler builds the context digest from persisted documents.
type Assembler struct {
	cfg    *config.Config
	store  *store.Store
	logger *logging.Logger
	now    func() time.Time
}

// New creates an Assembler over the given store.
func New(cfg *config.Config, st *store.Store, logger *logging.Logger) *Assembler {
	return &Assembler{cfg: cfg, store: st, logger: logger, now: time.Now}
}

// Generate assembles the digest for a task description. It never fails on
// unmatched tasks: scoring falls back to the fixed default pair and assembly
// proceeds. Only document read errors are returned.
func (a *Assembler) Generate(task string) (string, error) {
	scores := ScoreRelevance(task)
	ranked := Rank(scores)

	a.logger.Info("Ranked relevant modules", map[string]interface{}{
		"task":    task,
		"modules": describeRanking(ranked),
	})

	var b strings.Builder

	header := a.header(task)
	b.WriteString(header)
	tokens := EstimateTokens(header)
	budget := float64(a.cfg.ContextLimits.MaxTokens)

	// Module blocks, most relevant first, until 60% of budget
	b.WriteString("## Relevant Modules\n\n")
	for i, module := range ranked {
		if i >= maxModuleBlocks {
			break
		}
		if float64(tokens) > budget*moduleBudgetFraction {
			break
		}

		summary, err := a.store.LoadModuleSummary(module.Name)
		if err != nil {
			return "", err
		}
		if summary == nil {
			continue
		}

		block := moduleBlock(summary, module.Score)
		b.WriteString(block)
		tokens += EstimateTokens(block)
	}

	// Critical and high priority rules until 85% of budget
	b.WriteString("\n---\n\n## Critical Rules\n\n")
	topRules, err := a.loadTopRules()
	if err != nil {
		return "", err
	}
	for i, rule := range topRules {
		if i >= maxRuleLines {
			break
		}
		if float64(tokens) > budget*rulesBudgetFraction {
			break
		}
		line := fmt.Sprintf("%d. **[%s]** %s\n\n", i+1, strings.ToUpper(string(rule.Priority)), rule.Text)
		b.WriteString(line)
		tokens += EstimateTokens(line)
	}

	// Quick reference highlights if still under 90% of budget
	if float64(tokens) < budget*quickRefBudgetFraction {
		ref, refErr := a.store.LoadQuickReference()
		if refErr != nil {
			return "", refErr
		}
		if ref != nil && len(ref.TopRules) > 0 {
			b.WriteString("\n---\n\n## Quick Reference\n\n")
			b.WriteString("**Most Important Rules**:\n")
			for i, rule := range ref.TopRules {
				if i >= maxQuickRefRules {
					break
				}
				b.WriteString("- " + rule + "\n")
			}
		}
	}

	// Footer is always appended in full
	b.WriteString(a.footer(task, tokens))

	return b.String(), nil
}

// loadTopRules returns up to rulesPerPriority rules from each of the
// critical and high buckets, critical first.
func (a *Assembler) loadTopRules() ([]rules.Rule, error) {
	agg, err := a.store.LoadRules()
	if err != nil {
		return nil, err
	}

	var top []rules.Rule
	for _, bucket := range [][]rules.Rule{agg.Critical, agg.High} {
		n := len(bucket)
		if n > rulesPerPriority {
			n = rulesPerPriority
		}
		top = append(top, bucket[:n]...)
	}
	return top, nil
}

func (a *Assembler) header(task string) string {
	return fmt.Sprintf(`# Context for Task

**Task**: %s

**Generated**: %s

---

## Project Overview

- **Name**: %s
- **Architecture**: %s
- **UI Framework**: SwiftUI
- **Language**: Swift

### Key Architectural Pattern: Parameterized Component

- Components = View + Config
- Views are pure rendering (no hardcoded values)
- Configs contain all customization (data, callbacks, styling)
- One template serves multiple apps without forking

---

`, task, a.now().Format("2006-01-02 15:04"), a.cfg.Project.Name, a.cfg.Project.Architecture)
}

func moduleBlock(summary *store.ModuleSummary, score float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### %s (Relevance: %.0f%%)\n\n", summary.Name, score*100)
	fmt.Fprintf(&b, "**Purpose**: %s\n\n", summary.Purpose)
	fmt.Fprintf(&b, "**Statistics**:\n- Files: %d\n- Lines of Code: %d\n\n", summary.TotalFiles, summary.TotalLOC)
	fmt.Fprintf(&b, "**Key Symbols**:\n%s\n\n", strings.Join(head(summary.KeySymbols, 8), ", "))

	deps := strings.Join(head(summary.Dependencies, 5), ", ")
	if deps == "" {
		deps = "None"
	}
	fmt.Fprintf(&b, "**Dependencies**: %s\n\n", deps)

	b.WriteString("**Main Files**:\n")
	for _, name := range head(summary.Files, 6) {
		b.WriteString("- " + name + "\n")
	}
	b.WriteString("\n")

	return b.String()
}

func (a *Assembler) footer(task string, tokens int) string {
	return fmt.Sprintf(`
---

## Instructions for Implementation

**Your Task**: %s

**Follow These Guidelines**:

1. **%s Architecture**: Use State -> Action -> Reducer -> Effect pattern
2. **Parameterized Components**: No hardcoded values in Views
3. **SwiftUI Best Practices**: Use proper state management
4. **Error Handling**: Add appropriate error handling and validation
5. **Testing**: Consider test coverage

**File Organization**:
- Configs -> %s/Core/ViewConfigs/
- Views -> %s/Features/
- Reducers -> %s/Core/
- Services -> %s/Services/

**Estimated Context Size**: ~%d tokens

---

*Context generated by ctxhub*
`, task, a.cfg.Project.Architecture,
		a.cfg.Project.RootPath, a.cfg.Project.RootPath, a.cfg.Project.RootPath, a.cfg.Project.RootPath,
		tokens)
}

func describeRanking(ranked []RankedModule) string {
	parts := make([]string, 0, len(ranked))
	for _, m := range ranked {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", m.Name, m.Score*100))
	}
	return strings.Join(parts, ", ")
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
