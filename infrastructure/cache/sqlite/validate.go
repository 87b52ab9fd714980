// ABOUTME: Key and value checks applied before any SQLite statement runs
// ABOUTME: Suspicious key content is logged but accepted because every query is parameterized

package sqlite

import (
	"fmt"
	"strings"

	coreerrors "syndication-kit/core/errors"
)

// Logger is the subset of interfaces.Logger the store warns through
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

const (
	maxKeyLength   = 255
	maxValueLength = 8 * 1024 * 1024
)

var suspiciousPatterns = []string{"--", "/*", "*/", ";", "'", "\"", "\\", "\n", "\r", "\t"}

// ValidateKey rejects empty, oversized or NUL-containing keys
func ValidateKey(key string, logger Logger) error {
	if key == "" {
		return &coreerrors.InvalidArgumentError{Argument: "key", Message: "cannot be empty"}
	}
	if len(key) > maxKeyLength {
		return &coreerrors.InvalidArgumentError{Argument: "key", Message: fmt.Sprintf("too long: max %d characters", maxKeyLength)}
	}
	if strings.Contains(key, "\x00") {
		return &coreerrors.InvalidArgumentError{Argument: "key", Message: "cannot contain null bytes"}
	}

	if logger == nil {
		return nil
	}
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(key, pattern) {
			logger.Warn("Suspicious pattern detected in cache key", map[string]interface{}{
				"pattern":     pattern,
				"key_length":  len(key),
				"key_preview": truncateKey(key),
			})
		}
	}
	return nil
}

// ValidateValue rejects empty or oversized documents
func ValidateValue(value []byte) error {
	if len(value) == 0 {
		return &coreerrors.InvalidArgumentError{Argument: "value", Message: "cannot be empty"}
	}
	if len(value) > maxValueLength {
		return &coreerrors.InvalidArgumentError{Argument: "value", Message: fmt.Sprintf("too large: max %d bytes", maxValueLength)}
	}
	return nil
}

func truncateKey(key string) string {
	const maxPreview = 50
	if len(key) <= maxPreview {
		return key
	}
	return key[:maxPreview] + "..."
}
