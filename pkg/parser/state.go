// Package parser implements the indentation-aware, backtracking
// recursive-descent parser (C1-C4): a byte cursor with explicit
// indentation tracking, a small set of primitive combinators built over a
// three-valued progress result, and the expression/pattern/definition
// grammar built on top of them.
//
// Grounded on MadAppGang/dingo's pkg/parser package for the surrounding
// file layout (one file per grammar concern) and on
// original_source/compiler/parse/src/expr.rs for the grammar itself,
// which this package ports structurally: min_indent threaded as a plain
// argument across recursive calls rather than captured in combinator
// closures, exactly as §9's design notes require.
package parser

import "github.com/loomlang/loom/pkg/region"

// Progress is the two-valued tri-state every primitive and grammar
// production returns alongside its result: NoProgress means no input was
// consumed and a one_of caller may still try another alternative;
// MadeProgress means a failure from here on must be surfaced, not
// swallowed.
type Progress int

const (
	NoProgress Progress = iota
	MadeProgress
)

// Or combines two progress values the way sequential combinators do: if
// either child made progress, the combination did too.
func (p Progress) Or(other Progress) Progress {
	if p == MadeProgress || other == MadeProgress {
		return MadeProgress
	}
	return NoProgress
}

// State is the parser's cursor: remaining input and current position.
// The minimum column a newline may not cross below is not stored here;
// it is passed separately as the minIndent argument. State values are
// immutable from the caller's perspective — every primitive returns a new
// State rather than mutating in place, which is what makes
// Backtrackable's snapshot/restore trivial (see combinator.go).
type State struct {
	Src    []byte // full source buffer, for slicing out literal text
	Offset int    // byte offset of the remaining input within Src
	Line   int    // 1-indexed
	Column int    // 1-indexed
}

// NewState begins parsing src from its first byte.
func NewState(src []byte) State {
	return State{Src: src, Offset: 0, Line: 1, Column: 1}
}

// Remaining returns the unconsumed suffix of the source.
func (s State) Remaining() []byte {
	return s.Src[s.Offset:]
}

// AtEOF reports whether the cursor has consumed the entire buffer.
func (s State) AtEOF() bool {
	return s.Offset >= len(s.Src)
}

// Pos captures the cursor's current (line, column) as a region.Position.
func (s State) Pos() region.Position {
	return region.Position{Line: s.Line, Column: s.Column}
}

// advanceByte returns the state after consuming exactly one byte, correctly
// tracking line/column across newlines. It never checks indentation: byte
// and ascii-string never cross indentation boundaries per §4.1.
func (s State) advanceByte(b byte) State {
	next := s
	next.Offset++
	if b == '\n' {
		next.Line++
		next.Column = 1
	} else {
		next.Column++
	}
	return next
}

// Byte consumes exactly one expected byte, matching §4.1's "byte"
// primitive: advance exactly when the expected byte matches; otherwise
// NoProgress.
func Byte(s State, want byte) (Progress, State, bool) {
	rest := s.Remaining()
	if len(rest) == 0 || rest[0] != want {
		return NoProgress, s, false
	}
	return MadeProgress, s.advanceByte(want), true
}

// ASCIIString consumes an exact literal string, matching §4.1's
// "ascii-string" primitive. Fails with NoProgress if the literal doesn't
// match at the current offset.
func ASCIIString(s State, want string) (Progress, State, bool) {
	rest := s.Remaining()
	if len(rest) < len(want) || string(rest[:len(want)]) != want {
		return NoProgress, s, false
	}
	next := s
	for i := 0; i < len(want); i++ {
		next = next.advanceByte(want[i])
	}
	return MadeProgress, next, true
}

// PeekByte returns the byte at the cursor without consuming it, and
// whether one exists.
func (s State) PeekByte() (byte, bool) {
	rest := s.Remaining()
	if len(rest) == 0 {
		return 0, false
	}
	return rest[0], true
}

// PeekAt returns the byte offset bytes ahead of the cursor, or false if
// out of range.
func (s State) PeekAt(offset int) (byte, bool) {
	idx := s.Offset + offset
	if idx < 0 || idx >= len(s.Src) {
		return 0, false
	}
	return s.Src[idx], true
}

// isSpaceOrTab reports whether b is an intra-line whitespace byte.
func isSpaceOrTab(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isIdentContinue(b byte) bool {
	return isLower(b) || isUpper(b) || isDigit(b)
}

// ConsumeSpaces advances over a run of whitespace, including newlines,
// refusing to cross a newline into a column below minIndent — the
// indentation discipline §4.1 requires of every whitespace consumer. It
// returns MadeProgress if at least one byte was consumed.
func ConsumeSpaces(s State, minIndent int) (Progress, State) {
	cur := s
	progress := NoProgress
	for {
		b, ok := cur.PeekByte()
		if !ok {
			return progress, cur
		}
		if isSpaceOrTab(b) {
			cur = cur.advanceByte(b)
			progress = MadeProgress
			continue
		}
		if b == '\n' {
			lookaheadCol := 1
			j := cur.Offset + 1
			for j < len(cur.Src) && isSpaceOrTab(cur.Src[j]) {
				lookaheadCol++
				j++
			}
			if j < len(cur.Src) && cur.Src[j] == '\n' {
				// Blank line: consume and keep scanning, it carries no
				// indentation commitment of its own.
				cur = cur.advanceByte('\n')
				progress = MadeProgress
				continue
			}
			if lookaheadCol < minIndent {
				return progress, cur
			}
			cur = cur.advanceByte('\n')
			progress = MadeProgress
			continue
		}
		if b == '#' {
			for {
				b2, ok := cur.PeekByte()
				if !ok || b2 == '\n' {
					break
				}
				cur = cur.advanceByte(b2)
			}
			progress = MadeProgress
			continue
		}
		return progress, cur
	}
}

// spanState builds the region between two points on the same source
// buffer, start inclusive and end exclusive.
func spanState(start, end State) region.Region {
	return region.New(start.Line, start.Column, end.Line, end.Column)
}

// Ident scans a maximal identifier-shaped run starting at the cursor
// (letters/digits only, first byte already known to be a letter by the
// caller) and returns its text and the state just past it.
func Ident(s State) (string, State) {
	start := s.Offset
	cur := s
	for {
		b, ok := cur.PeekByte()
		if !ok || !isIdentContinue(b) {
			break
		}
		cur = cur.advanceByte(b)
	}
	return string(s.Src[start:cur.Offset]), cur
}
