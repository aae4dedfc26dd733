// Package internal holds low-level path and index primitives shared by
// the root package. It carries no state and no public API guarantees.
package internal

import (
	"strconv"
	"strings"
)

// SplitPath splits a dotted path into segments using delimiter.
// An empty path yields no segments.
func SplitPath(path, delimiter string) []string {
	if path == "" {
		return nil
	}
	if delimiter == "" {
		delimiter = "."
	}
	return strings.Split(path, delimiter)
}

// ParseIndex parses a sequence index segment, supporting negative indices.
// Returns the parsed index and whether the segment was numeric.
func ParseIndex(segment string) (int, bool) {
	// Fast path for single digit
	if len(segment) == 1 && segment[0] >= '0' && segment[0] <= '9' {
		return int(segment[0] - '0'), true
	}
	if index, err := strconv.Atoi(segment); err == nil {
		return index, true
	}
	return 0, false
}

// NormalizeIndex maps negative indices onto [0, length)
func NormalizeIndex(index, length int) int {
	if index < 0 {
		return length + index
	}
	return index
}

// IsValidIndex reports whether index addresses an element of a sequence
// of the given length, after negative-index normalization.
func IsValidIndex(index, length int) bool {
	index = NormalizeIndex(index, length)
	return index >= 0 && index < length
}

// SafeElement returns the element at index with bounds checking,
// normalizing negative indices.
func SafeElement(seq []any, index int) (any, bool) {
	index = NormalizeIndex(index, len(seq))
	if index < 0 || index >= len(seq) {
		return nil, false
	}
	return seq[index], true
}
