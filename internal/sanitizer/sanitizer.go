// Package sanitizer guards script text arriving over the network adapters.
package sanitizer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxScriptSize is 1MiB, far above any hand-written control script.
	DefaultMaxScriptSize = 1 << 20
	// EnvMaxScriptSize overrides the default limit.
	EnvMaxScriptSize = "BEHAVE_MAX_SCRIPT_SIZE"
)

var (
	ErrScriptTooLarge = errors.New("script exceeds maximum allowed size")
	ErrInvalidUTF8    = errors.New("script contains invalid UTF-8 sequences")
)

// Sanitizer rejects oversized or malformed text and strips control characters
// other than tab, newline and carriage return.
type Sanitizer struct {
	MaxBytes int
}

// New returns a Sanitizer with the given limit. A limit of zero or less falls
// back to the environment override, then to DefaultMaxScriptSize.
func New(maxBytes int) *Sanitizer {
	if maxBytes <= 0 {
		maxBytes = MaxScriptSize()
	}
	return &Sanitizer{MaxBytes: maxBytes}
}

// Sanitize returns the cleaned script text.
func (s *Sanitizer) Sanitize(input string) (string, error) {
	if len(input) > s.MaxBytes {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrScriptTooLarge, len(input), s.MaxBytes)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxScriptSize returns the limit from EnvMaxScriptSize, or the default.
func MaxScriptSize() int {
	if val := os.Getenv(EnvMaxScriptSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxScriptSize
}
