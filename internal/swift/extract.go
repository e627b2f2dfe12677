// Package swift extracts lightweight symbol metadata from Swift source text.
//
// Extraction is purely lexical: a name is captured when it follows one of the
// declaration keywords, optionally preceded by visibility or finality
// modifiers. There is no brace or scope tracking, so a keyword inside a
// string literal or comment is indistinguishable from a real declaration.
// That imprecision is an accepted heuristic, not a defect to fix.
package swift

import (
	"regexp"
	"sort"
)

// Symbol categories.
const (
	CategoryClasses    = "classes"
	CategoryStructs    = "structs"
	CategoryEnums      = "enums"
	CategoryProtocols  = "protocols"
	CategoryExtensions = "extensions"
	CategoryFunctions  = "functions"
)

// Categories lists all symbol categories in a fixed order.
var Categories = []string{
	CategoryClasses,
	CategoryStructs,
	CategoryEnums,
	CategoryProtocols,
	CategoryExtensions,
	CategoryFunctions,
}

// declarationPatterns maps each category to its declaration pattern.
var declarationPatterns = map[string]*regexp.Regexp{
	CategoryClasses:    regexp.MustCompile(`(?:public\s+)?(?:final\s+)?class\s+(\w+)`),
	CategoryStructs:    regexp.MustCompile(`(?:public\s+)?struct\s+(\w+)`),
	CategoryEnums:      regexp.MustCompile(`(?:public\s+)?enum\s+(\w+)`),
	CategoryProtocols:  regexp.MustCompile(`protocol\s+(\w+)`),
	CategoryExtensions: regexp.MustCompile(`extension\s+(\w+)`),
	CategoryFunctions:  regexp.MustCompile(`(?:public\s+)?func\s+(\w+)`),
}

var importPattern = regexp.MustCompile(`import\s+(\w+)`)

// ExtractSymbols returns the unique declared names per category found in the
// given source text. Duplicate names within a file are collapsed; the
// returned lists are sorted for stable output.
func ExtractSymbols(content string) map[string][]string {
	symbols := make(map[string][]string, len(declarationPatterns))

	for category, pattern := range declarationPatterns {
		matches := pattern.FindAllStringSubmatch(content, -1)
		seen := make(map[string]bool, len(matches))
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
		sort.Strings(names)
		symbols[category] = names
	}

	return symbols
}

// ExtractImports returns the unique imported module names found in the given
// source text, sorted.
func ExtractImports(content string) []string {
	matches := importPattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]bool, len(matches))
	imports := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			imports = append(imports, m[1])
		}
	}
	sort.Strings(imports)
	return imports
}

// SingularPrefix strips one trailing "s" from a category name to form the
// prefix used for module key symbols, e.g. "structs" -> "struct". Note that
// "classes" becomes "classe"; existing documents depend on that prefix.
func SingularPrefix(category string) string {
	if len(category) > 0 && category[len(category)-1] == 's' {
		return category[:len(category)-1]
	}
	return category
}
