package parser

import (
	"fmt"

	"github.com/loomlang/loom/pkg/region"
)

// HeaderImport is one parsed import clause: `ModuleName` or
// `ModuleName.{ ident, ident … }` (§6).
type HeaderImport struct {
	ModuleName string
	Idents     []string // entering the importer's default scope; empty for a bare import
}

// Header is the raw result of header-parsing, before the loader has
// interned module/ident ids — it re-enters C1-C4 the same way the body
// parser does, per §4.4's "header parser" collaborator.
type Header struct {
	ModuleName string
	Exposes    []string
	Imports    []HeaderImport
}

// ErrAppHeaderNotYetImplemented is returned when the file declares an
// `app` header: §9's open question notes only Interface headers are
// handled.
type ErrAppHeaderNotYetImplemented struct {
	Pos region.Position
}

func (e *ErrAppHeaderNotYetImplemented) Error() string {
	return "app module headers are not yet implemented"
}

// ParseHeader parses the leading `interface Name exposes [ … ] imports
// [ … ]` declaration. It re-enters the expression grammar's identifier
// and whitespace primitives (C1-C4) rather than a separate lexer.
func ParseHeader(src []byte) (*Header, State, error) {
	s := NewState(src)
	_, s = ConsumeSpaces(s, 1)

	if _, _, ok := ASCIIString(s, "app"); ok {
		return nil, s, &ErrAppHeaderNotYetImplemented{Pos: s.Pos()}
	}

	_, next, ok := ASCIIString(s, "interface")
	if !ok {
		return nil, s, newErr(KindEDef, s.Pos(), "expected interface header")
	}
	cur := next
	_, cur = ConsumeSpaces(cur, 1)

	b, ok := cur.PeekByte()
	if !ok || !isUpper(b) {
		return nil, cur, newErr(KindEDef, cur.Pos(), "expected module name")
	}
	moduleName, afterName := parseDottedUpperName(cur)
	cur = afterName
	_, cur = ConsumeSpaces(cur, 1)

	_, cur, exposesOK := ASCIIString(cur, "exposes")
	if !exposesOK {
		return nil, cur, newErr(KindEDef, cur.Pos(), "expected exposes")
	}
	_, cur = ConsumeSpaces(cur, 1)
	exposes, afterExposes, err := parseIdentList(cur)
	if err != nil {
		return nil, afterExposes, err
	}
	cur = afterExposes
	_, cur = ConsumeSpaces(cur, 1)

	_, cur, importsOK := ASCIIString(cur, "imports")
	if !importsOK {
		return nil, cur, newErr(KindEDef, cur.Pos(), "expected imports")
	}
	_, cur = ConsumeSpaces(cur, 1)
	imports, afterImports, err := parseImportList(cur)
	if err != nil {
		return nil, afterImports, err
	}
	cur = afterImports

	return &Header{ModuleName: moduleName, Exposes: exposes, Imports: imports}, cur, nil
}

func parseDottedUpperName(s State) (string, State) {
	first, after := Ident(s)
	name := first
	cur := after
	for {
		if b, ok := cur.PeekByte(); ok && b == '.' {
			if b2, ok2 := cur.PeekAt(1); ok2 && isUpper(b2) {
				dot := cur.advanceByte('.')
				seg, afterSeg := Ident(dot)
				name = name + "." + seg
				cur = afterSeg
				continue
			}
		}
		break
	}
	return name, cur
}

// parseIdentList parses `[ ident, ident, … ]`, the `exposes` clause's
// delimiter.
func parseIdentList(s State) ([]string, State, error) {
	return parseDelimitedIdentList(s, '[', ']')
}

// parseBracedIdentList parses `{ ident, ident, … }`, the qualified-import
// clause's delimiter (`Module.{ a, b }`) — a distinct bracket pair from
// `exposes`'s, so it cannot share parseIdentList's hardcoded `[`/`]`.
func parseBracedIdentList(s State) ([]string, State, error) {
	return parseDelimitedIdentList(s, '{', '}')
}

func parseDelimitedIdentList(s State, open, close byte) ([]string, State, error) {
	_, next, ok := Byte(s, open)
	if !ok {
		return nil, s, newErr(KindEDef, s.Pos(), fmt.Sprintf("expected %c", open))
	}
	cur := next
	var out []string
	for {
		_, cur = ConsumeSpaces(cur, 1)
		if b, ok := cur.PeekByte(); ok && b == close {
			break
		}
		b, ok := cur.PeekByte()
		if !ok || !isLower(b) {
			return nil, cur, newErr(KindEDef, cur.Pos(), "expected identifier")
		}
		name, after := Ident(cur)
		out = append(out, name)
		cur = after
		_, cur = ConsumeSpaces(cur, 1)
		if b, ok := cur.PeekByte(); ok && b == ',' {
			cur = cur.advanceByte(',')
			continue
		}
		break
	}
	_, cur = ConsumeSpaces(cur, 1)
	_, cur, closeOK := Byte(cur, close)
	if !closeOK {
		return nil, cur, newErr(KindEDef, cur.Pos(), fmt.Sprintf("expected %c", close))
	}
	return out, cur, nil
}

// parseImportList parses `[ ModuleName, ModuleName.{ a, b }, … ]`.
func parseImportList(s State) ([]HeaderImport, State, error) {
	_, next, ok := Byte(s, '[')
	if !ok {
		return nil, s, newErr(KindEDef, s.Pos(), "expected [")
	}
	cur := next
	var out []HeaderImport
	for {
		_, cur = ConsumeSpaces(cur, 1)
		if b, ok := cur.PeekByte(); ok && b == ']' {
			break
		}
		b, ok := cur.PeekByte()
		if !ok || !isUpper(b) {
			return nil, cur, newErr(KindEDef, cur.Pos(), "expected module name")
		}
		name, afterName := parseDottedUpperName(cur)
		cur = afterName
		var idents []string
		if b2, ok2 := cur.PeekByte(); ok2 && b2 == '.' {
			if b3, ok3 := cur.PeekAt(1); ok3 && b3 == '{' {
				dot := cur.advanceByte('.')
				ids, afterIds, err := parseBracedIdentList(dot)
				if err != nil {
					return nil, afterIds, err
				}
				idents = ids
				cur = afterIds
			}
		}
		out = append(out, HeaderImport{ModuleName: name, Idents: idents})
		_, cur = ConsumeSpaces(cur, 1)
		if b, ok := cur.PeekByte(); ok && b == ',' {
			cur = cur.advanceByte(',')
			continue
		}
		break
	}
	_, cur = ConsumeSpaces(cur, 1)
	_, cur, closeOK := Byte(cur, ']')
	if !closeOK {
		return nil, cur, newErr(KindEDef, cur.Pos(), "expected ]")
	}
	return out, cur, nil
}
