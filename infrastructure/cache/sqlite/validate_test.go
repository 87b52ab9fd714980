package sqlite

import (
	"context"
	"strings"
	"testing"
	"time"

	coreerrors "syndication-kit/core/errors"
)

// MockLogger captures warnings for testing
type MockLogger struct {
	warnings []struct {
		msg    string
		fields map[string]interface{}
	}
}

func (ml *MockLogger) Warn(msg string, fields map[string]interface{}) {
	ml.warnings = append(ml.warnings, struct {
		msg    string
		fields map[string]interface{}
	}{msg: msg, fields: fields})
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"document key", "document:3f2c", false},
		{"empty", "", true},
		{"too long", strings.Repeat("k", maxKeyLength+1), true},
		{"max length", strings.Repeat("k", maxKeyLength), false},
		{"null byte", "doc\x00ument", true},
		{"suspicious but valid", "doc';--", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key, nil)
			if tt.wantErr && !coreerrors.IsInvalidArgument(err) {
				t.Errorf("ValidateKey() error = %v, want InvalidArgumentError", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateKey() error = %v", err)
			}
		})
	}
}

func TestValidateKey_LogsSuspiciousPatterns(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		patterns []string
	}{
		{"clean key", "document:123", nil},
		{"comment", "key--with--comments", []string{"--"}},
		{"quote and semicolon", "user';drop", []string{";", "'"}},
		{"block comment", "a/*b*/c", []string{"/*", "*/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &MockLogger{}
			if err := ValidateKey(tt.key, logger); err != nil {
				t.Fatalf("ValidateKey() error = %v", err)
			}
			if len(logger.warnings) != len(tt.patterns) {
				t.Fatalf("logged %d warnings, want %d", len(logger.warnings), len(tt.patterns))
			}
			seen := make(map[string]bool)
			for _, w := range logger.warnings {
				seen[w.fields["pattern"].(string)] = true
			}
			for _, p := range tt.patterns {
				if !seen[p] {
					t.Errorf("no warning for pattern %q", p)
				}
			}
		})
	}
}

func TestValidateKey_TruncatesPreview(t *testing.T) {
	logger := &MockLogger{}
	key := strings.Repeat("x", 100) + ";"
	_ = ValidateKey(key, logger)

	if len(logger.warnings) != 1 {
		t.Fatalf("logged %d warnings, want 1", len(logger.warnings))
	}
	preview := logger.warnings[0].fields["key_preview"].(string)
	if preview != strings.Repeat("x", 50)+"..." {
		t.Errorf("key_preview = %q", preview)
	}
}

func TestValidateValue(t *testing.T) {
	if err := ValidateValue(nil); !coreerrors.IsInvalidArgument(err) {
		t.Errorf("ValidateValue(nil) error = %v, want InvalidArgumentError", err)
	}
	if err := ValidateValue(make([]byte, maxValueLength+1)); !coreerrors.IsInvalidArgument(err) {
		t.Errorf("ValidateValue(oversized) error = %v, want InvalidArgumentError", err)
	}
	if err := ValidateValue([]byte("<rss/>")); err != nil {
		t.Errorf("ValidateValue() error = %v", err)
	}
}

func TestClient_WarnsThroughLogger(t *testing.T) {
	logger := &MockLogger{}
	client := newTestClient(t, logger)

	if err := client.Set(context.Background(), "doc';x", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if len(logger.warnings) == 0 {
		t.Error("expected a warning for a suspicious key")
	}
}
