package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier for safety and correctness.
// Identifiers are fully qualified declaration names such as
// "Mathlib.Order.Lattice.inf_comm"; the rules are intentionally
// conservative and reject anything that could leak into file paths or
// storage keys:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No whitespace
//   - No leading or trailing dots, no empty segments
//   - Maximum length of 512 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node id cannot be empty")
	}

	if len(id) > 512 {
		return New(ErrCodeInvalidNode, "node id too long (max 512 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidNode, "node id contains invalid characters: %q", id)
		}
	}

	if strings.HasPrefix(id, ".") || strings.HasSuffix(id, ".") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidNode, "node id has malformed namespace segments: %q", id)
	}

	return nil
}

// ValidateEdgeEndpoints validates both endpoints of a user-added edge.
func ValidateEdgeEndpoints(from, to string) error {
	if err := ValidateNodeID(from); err != nil {
		return Wrap(ErrCodeInvalidEdge, err, "invalid source endpoint")
	}
	if err := ValidateNodeID(to); err != nil {
		return Wrap(ErrCodeInvalidEdge, err, "invalid target endpoint")
	}
	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
