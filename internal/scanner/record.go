package scanner

// FileRecord holds the extracted metadata for a single analyzed source file.
// Records are immutable after creation and owned by exactly one ModuleRecord.
type FileRecord struct {
	Path      string              `json:"path"`
	Name      string              `json:"name"`
	SizeBytes int64               `json:"size_bytes"`
	LOC       int                 `json:"loc"`
	Symbols   map[string][]string `json:"symbols"`
	Imports   []string            `json:"imports"`
	HasTests  bool                `json:"has_tests"`
}

// ModuleRecord aggregates the FileRecords of one module bucket.
type ModuleRecord struct {
	Name     string       `json:"name"`
	Files    []FileRecord `json:"files"`
	TotalLOC int          `json:"total_loc"`

	// KeySymbols holds category-prefixed names, deduplicated and capped at
	// KeySymbolCap. Truncation keeps insertion order, which follows the
	// enumeration order of the underlying walk.
	KeySymbols []string `json:"key_symbols"`

	// Dependencies is the deduplicated union of file imports, in first-seen
	// order.
	Dependencies []string `json:"dependencies"`
}

const (
	// KeySymbolCap bounds the deduplicated key symbol list per module.
	KeySymbolCap = 20

	// MiscModule is the fallback bucket for files whose first path segment
	// is not in the configured module allow-list.
	MiscModule = "Misc"
)

// modulePurposes describes each well-known module for persisted summaries.
var modulePurposes = map[string]string{
	"Core":         "TCA foundation - State, Actions, Reducers, Store, ViewConfigs",
	"Features":     "UI features - Onboarding, Auth, Settings, Home, Profile",
	"Services":     "Business logic and external services integrations",
	"Theme":        "UI theming - Colors, Typography, Spacing, Component styles",
	"Network":      "API clients and networking layer",
	"Storage":      "Data persistence - UserDefaults, Keychain, FileStorage",
	"Monetization": "IAP, AdMob, Revenue tracking, Analytics",
	"Utilities":    "Helper functions, extensions, utilities",
	MiscModule:     "Other files",
}

// Purpose returns the descriptive purpose for a module name.
func Purpose(moduleName string) string {
	if p, ok := modulePurposes[moduleName]; ok {
		return p
	}
	return "Miscellaneous files"
}
