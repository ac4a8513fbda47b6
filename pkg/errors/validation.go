package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// conceptIDRegex matches the identifiers used as TTL subjects (":physicalViolence").
var conceptIDRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateConceptID validates a concept identifier as typed by a user.
// A leading colon is tolerated so that ":poison" and "poison" both work.
func ValidateConceptID(id string) error {
	id = strings.TrimPrefix(id, ":")
	if id == "" {
		return New(ErrCodeInvalidConceptID, "concept id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidConceptID, "concept id too long (max 256 characters)")
	}
	if !conceptIDRegex.MatchString(id) {
		return New(ErrCodeInvalidConceptID, "invalid concept id %q (letters, digits and underscores only)", id)
	}
	return nil
}

// ValidateOutputName validates the base name of a rendered file.
// The name is joined under the output directory, so it must not escape it.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 200 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateOutputName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOutput, "output name cannot be empty")
	}

	const maxNameLength = 200
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidOutput, "output name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOutput, "output name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..", // Parent directory
		"/",  // Path separator
		"\\", // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidOutput, "output name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed values.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
