package swift

import (
	"reflect"
	"testing"
)

const sampleSource = `
import SwiftUI
import ComposableArchitecture
import SwiftUI

public final class SessionManager {
    public func start() {}
    func reset() {}
}

struct SettingsView {
    let config: SettingsConfig
}

public struct SettingsConfig {}

enum Route {
    case home
}

protocol ThemeProvider {}

extension SettingsView {
    func body() {}
}
`

func TestExtractSymbols(t *testing.T) {
	symbols := ExtractSymbols(sampleSource)

	tests := []struct {
		category string
		want     []string
	}{
		{CategoryClasses, []string{"SessionManager"}},
		{CategoryStructs, []string{"SettingsConfig", "SettingsView"}},
		{CategoryEnums, []string{"Route"}},
		{CategoryProtocols, []string{"ThemeProvider"}},
		{CategoryExtensions, []string{"SettingsView"}},
		{CategoryFunctions, []string{"body", "reset", "start"}},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := symbols[tt.category]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestExtractSymbolsDeduplicates(t *testing.T) {
	content := "struct Foo {}\nstruct Foo {}\nstruct Foo {}"
	symbols := ExtractSymbols(content)
	if got := symbols[CategoryStructs]; !reflect.DeepEqual(got, []string{"Foo"}) {
		t.Errorf("structs = %v, want [Foo]", got)
	}
}

func TestExtractSymbolsMatchesInsideComments(t *testing.T) {
	// Lexical matching has no comment awareness; this is accepted behavior.
	content := "// class Ghost lives only in a comment"
	symbols := ExtractSymbols(content)
	if got := symbols[CategoryClasses]; !reflect.DeepEqual(got, []string{"Ghost"}) {
		t.Errorf("classes = %v, want [Ghost]", got)
	}
}

func TestExtractImports(t *testing.T) {
	imports := ExtractImports(sampleSource)
	want := []string{"ComposableArchitecture", "SwiftUI"}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("imports = %v, want %v", imports, want)
	}
}

func TestExtractImportsEmpty(t *testing.T) {
	if got := ExtractImports("struct Foo {}"); len(got) != 0 {
		t.Errorf("imports = %v, want none", got)
	}
}

func TestSingularPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"structs", "struct"},
		{"enums", "enum"},
		{"protocols", "protocol"},
		{"extensions", "extension"},
		{"functions", "function"},
		// Mirrors the naive trailing-s strip of the category name.
		{"classes", "classe"},
	}
	for _, tt := range tests {
		if got := SingularPrefix(tt.in); got != tt.want {
			t.Errorf("SingularPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
