package store

import (
	"os"
	"reflect"
	"testing"
	"time"

	"ctxhub/internal/rules"
	"ctxhub/internal/scanner"
)

func TestModuleSummaryRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	summary := &ModuleSummary{
		Name:         "Core",
		Purpose:      scanner.Purpose("Core"),
		TotalFiles:   3,
		TotalLOC:     412,
		KeySymbols:   []string{"struct:AppState", "function:makeStore"},
		Dependencies: []string{"ComposableArchitecture", "Foundation"},
		Files:        []string{"AppState.swift", "AppAction.swift", "Store.swift"},
	}
	if err := s.SaveModuleSummary(summary); err != nil {
		t.Fatalf("SaveModuleSummary: %v", err)
	}

	loaded, err := s.LoadModuleSummary("Core")
	if err != nil {
		t.Fatalf("LoadModuleSummary: %v", err)
	}
	if !reflect.DeepEqual(summary, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", summary, loaded)
	}
}

func TestLoadModuleSummaryMissing(t *testing.T) {
	s := New(t.TempDir())
	loaded, err := s.LoadModuleSummary("Nope")
	if err != nil {
		t.Fatalf("LoadModuleSummary: %v", err)
	}
	if loaded != nil {
		t.Errorf("missing summary should be nil, got %+v", loaded)
	}
}

func TestNewModuleSummaryCaps(t *testing.T) {
	record := &scanner.ModuleRecord{Name: "Features", TotalLOC: 10}
	for i := 0; i < 25; i++ {
		record.Files = append(record.Files, scanner.FileRecord{
			Name: string(rune('A'+i)) + ".swift",
		})
		record.KeySymbols = append(record.KeySymbols, "struct:T"+string(rune('A'+i)))
		record.Dependencies = append(record.Dependencies, "Dep"+string(rune('A'+i)))
	}

	summary := NewModuleSummary(record)

	if len(summary.KeySymbols) != SummarySymbolCap {
		t.Errorf("KeySymbols = %d, want %d", len(summary.KeySymbols), SummarySymbolCap)
	}
	if len(summary.Dependencies) != SummaryDependencyCap {
		t.Errorf("Dependencies = %d, want %d", len(summary.Dependencies), SummaryDependencyCap)
	}
	if len(summary.Files) != SummaryFileCap {
		t.Errorf("Files = %d, want %d", len(summary.Files), SummaryFileCap)
	}
	if summary.TotalFiles != 25 {
		t.Errorf("TotalFiles = %d, want 25 (cap applies to names, not count)", summary.TotalFiles)
	}
}

func TestNewModuleSummarySortsDependencies(t *testing.T) {
	record := &scanner.ModuleRecord{
		Name:         "Network",
		Dependencies: []string{"Moya", "Alamofire", "Foundation"},
	}
	summary := NewModuleSummary(record)
	want := []string{"Alamofire", "Foundation", "Moya"}
	if !reflect.DeepEqual(summary.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", summary.Dependencies, want)
	}
}

func TestSymbolsRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	symbols := map[string]string{
		"AppState":     "Sources/Core/AppState.swift",
		"SettingsView": "Sources/Features/SettingsView.swift",
	}
	if err := s.SaveSymbols(symbols); err != nil {
		t.Fatalf("SaveSymbols: %v", err)
	}

	loaded, err := s.LoadSymbols()
	if err != nil {
		t.Fatalf("LoadSymbols: %v", err)
	}
	if !reflect.DeepEqual(symbols, loaded) {
		t.Errorf("round trip mismatch: %v vs %v", symbols, loaded)
	}
}

func TestRulesAndQuickReferenceRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	agg := &rules.Aggregate{
		Critical: []rules.Rule{
			{Text: "Keep reducers pure", Category: "architecture", Priority: rules.PriorityCritical, SourceFile: "arch.md"},
		},
		Medium: []rules.Rule{
			{Text: "Prefer structs over classes", Category: "general", Priority: rules.PriorityMedium, SourceFile: "style.md"},
		},
	}
	if err := s.SaveRules(agg); err != nil {
		t.Fatalf("SaveRules: %v", err)
	}

	loadedRules, err := s.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if !reflect.DeepEqual(agg, loadedRules) {
		t.Errorf("rules round trip mismatch:\nsaved  %+v\nloaded %+v", agg, loadedRules)
	}

	ref := &rules.QuickReference{
		TopRules:          []string{"Keep reducers pure"},
		ArchitectureRules: []string{"Keep reducers pure"},
	}
	if err := s.SaveQuickReference(ref); err != nil {
		t.Fatalf("SaveQuickReference: %v", err)
	}

	loadedRef, err := s.LoadQuickReference()
	if err != nil {
		t.Fatalf("LoadQuickReference: %v", err)
	}
	if !reflect.DeepEqual(ref, loadedRef) {
		t.Errorf("quick reference round trip mismatch:\nsaved  %+v\nloaded %+v", ref, loadedRef)
	}

	patterns := rules.PatternsByCategory{
		"networking": []string{"All requests flow through APIClient"},
	}
	if err := s.SavePatterns(patterns); err != nil {
		t.Fatalf("SavePatterns: %v", err)
	}
	loadedPatterns, err := s.LoadPatterns()
	if err != nil {
		t.Fatalf("LoadPatterns: %v", err)
	}
	if !reflect.DeepEqual(patterns, loadedPatterns) {
		t.Errorf("patterns round trip mismatch: %v vs %v", patterns, loadedPatterns)
	}
}

func TestMasterIndexRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	index := &MasterIndex{
		Project:       "ios-template",
		Architecture:  "TCA",
		Modules:       3,
		ModuleList:    []string{"Core", "Features", "Misc"},
		TotalFiles:    42,
		TotalLOC:      9001,
		IndexedAt:     time.Now().UTC().Truncate(time.Second),
		ConfigVersion: 1,
		Stats: RunStats{
			RunID:          "run-1",
			ModulesIndexed: 3,
			FilesProcessed: 42,
			RulesIndexed:   7,
			Duration:       "1.2s",
		},
		Errors: []string{"rules indexer: boom"},
	}
	if err := s.SaveMasterIndex(index); err != nil {
		t.Fatalf("SaveMasterIndex: %v", err)
	}

	loaded, err := s.LoadMasterIndex()
	if err != nil {
		t.Fatalf("LoadMasterIndex: %v", err)
	}
	if !reflect.DeepEqual(index, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", index, loaded)
	}
}

func TestSaveContextRotatesBackup(t *testing.T) {
	s := New(t.TempDir())

	if _, err := s.SaveContext("first digest"); err != nil {
		t.Fatalf("SaveContext: %v", err)
	}
	if _, err := s.SaveContext("second digest"); err != nil {
		t.Fatalf("SaveContext: %v", err)
	}
	if _, err := s.SaveContext("third digest"); err != nil {
		t.Fatalf("SaveContext: %v", err)
	}

	current, err := os.ReadFile(s.ContextPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(current) != "third digest" {
		t.Errorf("current = %q, want %q", current, "third digest")
	}

	backup, err := os.ReadFile(s.ContextPath() + ".bak")
	if err != nil {
		t.Fatal(err)
	}
	// Single-slot rotation: only the immediately previous digest survives
	if string(backup) != "second digest" {
		t.Errorf("backup = %q, want %q", backup, "second digest")
	}
}
