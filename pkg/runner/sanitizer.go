package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is 4KB.
const DefaultMaxInputSize = 4096

// echoRunes bounds how much of a rejected input is echoed back.
const echoRunes = 24

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans one command line before dispatch.
// Input over limit bytes is rejected rather than truncated. Line breaks and
// tabs become spaces; every other control character (ESC, NUL, BEL) is
// dropped. A limit of zero or less means DefaultMaxInputSize.
func SanitizeInput(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: nothing to strip.
	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// RejectedEcho returns a printable stand-in for input that SanitizeInput
// rejected, so it can still be answered with the not-found message.
// The result never names a command: oversized input ends with an ellipsis
// and invalid bytes become U+FFFD.
func RejectedEcho(input string) string {
	var (
		b         strings.Builder
		n         int
		truncated bool
	)
	for _, r := range strings.ToValidUTF8(input, string(utf8.RuneError)) {
		if n == echoRunes {
			truncated = true
			break
		}
		if unicode.IsControl(r) {
			r = ' '
		}
		b.WriteRune(r)
		n++
	}
	// Valid input was rejected for its size.
	if truncated || utf8.ValidString(input) {
		b.WriteString("…")
	}
	return b.String()
}
