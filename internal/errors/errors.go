// Package errors defines stable error codes and the error envelope for ctxhub.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration file is missing or malformed
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// SourceMissing indicates the configured source root does not exist
	SourceMissing ErrorCode = "SOURCE_MISSING"
	// ScanFailed indicates the required scanning stage failed
	ScanFailed ErrorCode = "SCAN_FAILED"
	// RulesUnavailable indicates the optional rules stage could not run
	RulesUnavailable ErrorCode = "RULES_UNAVAILABLE"
	// IndexMissing indicates the master index has not been built yet
	IndexMissing ErrorCode = "INDEX_MISSING"
	// ContextFailed indicates context assembly could not complete
	ContextFailed ErrorCode = "CONTEXT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditConfig suggests editing the configuration file
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// HubError represents a ctxhub error with code, message, and suggestions
type HubError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new HubError with suggested fixes looked up by code
func New(code ErrorCode, message string, cause error) *HubError {
	return &HubError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *HubError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *HubError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *HubError) WithDetails(details interface{}) *HubError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "ctxhub init",
			Safe:        true,
			Description: "Create a default .ctxhub/config.json",
		},
	},
	SourceMissing: {
		{
			Type:        EditConfig,
			Description: "Update indexing.root_path in .ctxhub/config.json to point at the Swift source tree",
		},
	},
	IndexMissing: {
		{
			Type:        RunCommand,
			Command:     "ctxhub scan",
			Safe:        true,
			Description: "Build the module index before generating context",
		},
	},
	RulesUnavailable: {
		{
			Type:        EditConfig,
			Description: "Update rules.source_path in .ctxhub/config.json or create the rules directory",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
