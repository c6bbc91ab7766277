// Package validation checks untrusted input: archive entry paths and text
// fields submitted over HTTP or in service plans.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits on untrusted input (CWE-400).
const (
	// MaxEntrySize is the largest file accepted from a corpus bundle (64 MB).
	MaxEntrySize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxCitationLength bounds a single citation string.
	MaxCitationLength = 200
	// MaxPlanItems bounds the scriptures or hymns in one service plan.
	MaxPlanItems = 100
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrPathTooLong      = errors.New("path too long")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrTooLong          = errors.New("value too long")
	ErrInvalidCharacter = errors.New("invalid character")
)

// SanitizePath validates a path taken from an archive or request so that it
// cannot escape baseDir. It returns the cleaned path relative to baseDir.
func SanitizePath(baseDir, userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}
	if len(userPath) > MaxPathLength {
		return "", ErrPathTooLong
	}

	cleanPath := filepath.Clean(filepath.FromSlash(userPath))

	for _, part := range strings.Split(cleanPath, string(filepath.Separator)) {
		if part == ".." {
			return "", ErrPathTraversal
		}
	}
	if filepath.IsAbs(cleanPath) || strings.HasPrefix(userPath, "/") {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}

	fullPath := filepath.Join(baseDir, cleanPath)
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return cleanPath, nil
}

// IsPathSafe is SanitizePath as a predicate.
func IsPathSafe(baseDir, userPath string) bool {
	_, err := SanitizePath(baseDir, userPath)
	return err == nil
}

// ValidateText rejects text that is longer than max runes, is not valid
// UTF-8, or contains control characters other than tab and newline.
func ValidateText(s string, max int) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidCharacter)
	}
	if n := utf8.RuneCountInString(s); n > max {
		return fmt.Errorf("%w: %d characters, limit %d", ErrTooLong, n, max)
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return fmt.Errorf("%w: %U", ErrInvalidCharacter, r)
		}
	}
	return nil
}

// ValidateCitation applies ValidateText with the citation limit.
func ValidateCitation(s string) error {
	return ValidateText(s, MaxCitationLength)
}
