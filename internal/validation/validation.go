// Package validation checks user-supplied document paths and bounds how
// much data a document may expand to.
package validation

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Limits on user input (CWE-400).
const (
	// MaxDocumentSize is the largest decompressed document accepted (256 MB).
	MaxDocumentSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrTooLarge         = errors.New("document too large")
)

// ValidatePath rejects empty or overlong paths and paths containing NUL
// or other control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ReadAll reads r to the end, failing with ErrTooLarge once more than
// limit bytes arrive.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}
