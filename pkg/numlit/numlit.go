// Package numlit implements the "simple number parsing" collaborator
// spec.md treats as out of scope beyond its interface: turning the raw
// digit text the grammar recognised into a Go numeric value.
//
// Grounded on original_source/src/can/num.rs's finish_parsing_{int,hex,
// oct,bin,float} — underscores are stripped before delegating to the
// standard library parser, and out-of-range literals are reported rather
// than silently wrapping.
package numlit

import (
	"strconv"
	"strings"
)

// ErrOutOfRange mirrors num.rs's IntOutsideRange/FloatOutsideRange runtime
// errors: the digits were well-formed but didn't fit.
type ErrOutOfRange struct {
	Raw string
}

func (e *ErrOutOfRange) Error() string {
	return "numeric literal out of range: " + e.Raw
}

func stripUnderscores(raw string) string {
	return strings.ReplaceAll(raw, "_", "")
}

// ParseInt parses a base-10 integer literal.
func ParseInt(raw string) (int64, error) {
	v, err := strconv.ParseInt(stripUnderscores(raw), 10, 64)
	if err != nil {
		return 0, &ErrOutOfRange{Raw: raw}
	}
	return v, nil
}

// ParseHex parses digits after a `0x` prefix.
func ParseHex(raw string) (int64, error) {
	v, err := strconv.ParseInt(stripUnderscores(raw), 16, 64)
	if err != nil {
		return 0, &ErrOutOfRange{Raw: raw}
	}
	return v, nil
}

// ParseOctal parses digits after a `0o` prefix.
func ParseOctal(raw string) (int64, error) {
	v, err := strconv.ParseInt(stripUnderscores(raw), 8, 64)
	if err != nil {
		return 0, &ErrOutOfRange{Raw: raw}
	}
	return v, nil
}

// ParseBinary parses digits after a `0b` prefix.
func ParseBinary(raw string) (int64, error) {
	v, err := strconv.ParseInt(stripUnderscores(raw), 2, 64)
	if err != nil {
		return 0, &ErrOutOfRange{Raw: raw}
	}
	return v, nil
}

// ParseFloat parses a float literal; non-finite results (Inf/NaN) are
// rejected the same way num.rs rejects them.
func ParseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(stripUnderscores(raw), 64)
	if err != nil {
		return 0, &ErrOutOfRange{Raw: raw}
	}
	if v > 1.797693134862315708145274237317043567981e+308 || v < -1.797693134862315708145274237317043567981e+308 {
		return 0, &ErrOutOfRange{Raw: raw}
	}
	return v, nil
}

// IsFloatText reports whether raw's digit text requires float parsing —
// presence of `.` or an exponent marker, per spec.md §6.
func IsFloatText(raw string) bool {
	return strings.ContainsAny(raw, ".eE")
}
