package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: WarnLevel, Output: &buf})

	logger.Debug("debug msg", nil)
	logger.Info("info msg", nil)
	logger.Warn("warn msg", nil)
	logger.Error("error msg", nil)

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("messages below warn level should be suppressed:\n%s", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("warn and error messages should be logged:\n%s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: JSONFormat, Level: InfoLevel, Output: &buf})

	logger.Info("scan complete", map[string]interface{}{"files": 42})

	var entry struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "info" {
		t.Errorf("level = %q, want %q", entry.Level, "info")
	}
	if entry.Message != "scan complete" {
		t.Errorf("message = %q, want %q", entry.Message, "scan complete")
	}
	if entry.Fields["files"] != float64(42) {
		t.Errorf("fields[files] = %v, want 42", entry.Fields["files"])
	}
}

func TestHumanFormatStableFieldOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Info("msg", map[string]interface{}{"zebra": 1, "alpha": 2, "mid": 3})

	out := buf.String()
	alpha := strings.Index(out, "alpha=")
	mid := strings.Index(out, "mid=")
	zebra := strings.Index(out, "zebra=")
	if alpha == -1 || mid == -1 || zebra == -1 {
		t.Fatalf("missing fields in output: %s", out)
	}
	if !(alpha < mid && mid < zebra) {
		t.Errorf("fields not in sorted order: %s", out)
	}
}
