package parser

import (
	"fmt"

	"github.com/loomlang/loom/pkg/region"
)

// Error is the parser's typed-error sum (§7): every grammar element that
// can commit a failure has its own kind, each carrying the (line, column)
// origin spec.md requires. Specialization (widening an inner error into
// an outer production's error) is modeled here simply by wrapping: outer
// productions construct a new Error with Kind naming themselves and Inner
// set to whatever committed first, rather than a generic type-level
// specialize combinator — idiomatic for Go's lack of combinator-level
// generics over error sums.
type Error struct {
	Kind  string
	Pos   region.Position
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("%s at %d:%d", e.Kind, e.Pos.Line, e.Pos.Column)
}

func (e *Error) Unwrap() error { return e.Inner }

func newErr(kind string, pos region.Position, msg string) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: msg}
}

func specialize(kind string, pos region.Position, inner error) *Error {
	return &Error{Kind: kind, Pos: pos, Inner: inner}
}

// Grammar-element error kind names, mirroring §7's named set
// (EExpr, ERecord, EInParens, ELambda, EString, If, When, List, …).
const (
	KindEExpr         = "EExpr"
	KindERecord       = "ERecord"
	KindEInParens     = "EInParens"
	KindELambda       = "ELambda"
	KindEString       = "EString"
	KindEIf           = "EIf"
	KindEWhen         = "EWhen"
	KindEList         = "EList"
	KindEPattern      = "EPattern"
	KindEDef          = "EDef"
	KindEClosureParam = "EClosureParam"
)

// ErrExpressionExpected is the sentinel failure the expression grammar's
// final alternative produces (§4.2 step 11).
func ErrExpressionExpected(pos region.Position) *Error {
	return newErr(KindEExpr, pos, "expression expected")
}

// ErrOutdentedTooFar is the Definition Coordinator's error when
// def_start_col < min_indent (§4.3 contract).
func ErrOutdentedTooFar(pos region.Position) *Error {
	return newErr(KindEDef, pos, "OutdentedTooFar")
}

// ErrPatternAlignment is the `when`-branch alternative-column mismatch
// error (§4.2.6), carrying the signed column delta between the
// offending alternative and the branch's first alternative.
func ErrPatternAlignment(pos region.Position, delta int) *Error {
	return newErr(KindEWhen, pos, fmt.Sprintf("PatternAlignment(%d)", delta))
}

// ErrInvalidPattern is surfaced when §4.2.1's expr_to_pattern conversion
// fails on a `(...)= ` destructure reinterpretation.
func ErrInvalidPattern(pos region.Position, reason string) *Error {
	return newErr(KindEPattern, pos, "invalid pattern: "+reason)
}
