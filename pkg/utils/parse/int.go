// ABOUTME: Utility functions for parsing integers from extension element text
// ABOUTME: Reports failure instead of defaulting so callers can leave a field unset

package parse

import (
	"strconv"
	"strings"
)

// Int parses a base-10 integer, ignoring surrounding whitespace
func Int(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// NonNegativeInt parses an integer that must be zero or greater
func NonNegativeInt(s string) (int, bool) {
	v, ok := Int(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// IntList parses a comma-separated list of integers. Every element must parse.
func IntList(s string) ([]int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, ok := Int(part)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// FormatIntList joins values with commas
func FormatIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
