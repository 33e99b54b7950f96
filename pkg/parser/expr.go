package parser

import (
	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/region"
)

// reservedKeywords are never valid argument starts (isKeywordStart in
// apply.go is the only place that consults this table) — §4.2.3
// and the GLOSSARY's reserved-word list.
var reservedKeywords = map[string]bool{
	"if": true, "then": true, "else": true, "when": true, "is": true, "as": true,
}

// parseExpr is the grammar's entry point (§4.2): `expr(min_indent)`. It
// parses one atom per the ordered alternative list, then a trailing
// access chain, then greedily collected function arguments, then an
// optional binary-operator suffix.
func parseExpr(s State, minIndent int) (Progress, ast.Expr, State, error) {
	prog, atom, next, err := parseAtom(s, minIndent)
	if err != nil {
		return prog, nil, next, err
	}

	cur := next
	prog2, withAccess, afterAccess := parseAccessChain(atom, cur, minIndent)
	cur = afterAccess

	prog3, withArgs, afterArgs := parseArguments(withAccess, cur, minIndent)
	cur = afterArgs

	prog4, result, final := parseBinOpSuffix(withArgs, cur, minIndent)

	total := prog.Or(prog2).Or(prog3).Or(prog4)
	return total, result, final, nil
}

// parseAtom dispatches to the ordered atom alternatives of §4.2. Item 7
// (unary operator expression) is narrowed to `!` here, per the note in
// operator.go: `-` as unary-negate is only valid in argument position and
// is handled by parseArguments instead.
func parseAtom(s State, minIndent int) (Progress, ast.Expr, State, error) {
	b, ok := s.PeekByte()
	if !ok {
		return NoProgress, nil, s, ErrExpressionExpected(s.Pos())
	}

	switch {
	case b == '(':
		return parseParensExpr(s, minIndent)
	case b == '"':
		return parseString(s)
	case isDigit(b):
		return parseNumber(s)
	case b == '\\':
		return parseClosure(s, minIndent)
	case b == '{':
		return parseRecord(s, minIndent)
	case b == '[':
		return parseList(s, minIndent)
	case b == '!':
		return parseUnaryNot(s, minIndent, parseExpr)
	case matchKeyword(s, "when"):
		return parseWhen(s, minIndent)
	case matchKeyword(s, "if"):
		return parseIf(s, minIndent)
	case isLower(b):
		return parseVarAtom(s)
	case b == '.':
		return parseAccessorFunction(s)
	case b == '@':
		return parseTagAtom(s)
	case isUpper(b):
		return parseTagAtom(s)
	default:
		return NoProgress, nil, s, ErrExpressionExpected(s.Pos())
	}
}

// matchKeyword reports whether s begins with word followed by a
// non-identifier byte (so `whenever` doesn't match `when`).
func matchKeyword(s State, word string) bool {
	rest := s.Remaining()
	if len(rest) < len(word) || string(rest[:len(word)]) != word {
		return false
	}
	if len(rest) > len(word) && isIdentContinue(rest[len(word)]) {
		return false
	}
	return true
}

func parseAccessorFunction(s State) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := Byte(s, '.')
	if !ok {
		return NoProgress, nil, s, ErrExpressionExpected(s.Pos())
	}
	b, ok := next.PeekByte()
	if !ok || !isLower(b) {
		return MadeProgress, nil, next, newErr(KindEExpr, s.Pos(), "expected field name after .")
	}
	name, after := Ident(next)
	r := spanState(start, after)
	return MadeProgress, ast.NewAccessorFunction(r, name), after, nil
}

func parseTagAtom(s State) (Progress, ast.Expr, State, error) {
	start := s
	private := false
	cur := s
	if b, ok := cur.PeekByte(); ok && b == '@' {
		private = true
		cur = cur.advanceByte('@')
	}
	b, ok := cur.PeekByte()
	if !ok || !isUpper(b) {
		return MadeProgress, nil, cur, newErr(KindEExpr, s.Pos(), "expected tag name")
	}
	first, after := Ident(cur)
	name := first
	cur = after
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
	r := spanState(start, cur)
	return MadeProgress, ast.NewTag(r, name, private), cur, nil
}

func parseVarAtom(s State) (Progress, ast.Expr, State, error) {
	name, after := Ident(s)
	r := spanState(s, after)
	return MadeProgress, ast.NewVar(r, "", name), after, nil
}

// parseAccessChain parses a left-associative `.field` chain after an
// atom, e.g. `a.b.c` = `(a.b).c` (§6's identifier syntax). Module-
// qualified access (`Module.value`) is recognised at the Var atom level
// in header/pattern contexts; in expression position a leading Tag
// followed by `.lower` is reinterpreted as a qualified Var here.
func parseAccessChain(atom ast.Expr, s State, minIndent int) (Progress, ast.Expr, State) {
	startPos := atom.ExprRegion().Start
	if tag, ok := atom.(*ast.Tag); ok {
		if b, ok := s.PeekByte(); ok && b == '.' {
			if b2, ok2 := s.PeekAt(1); ok2 && isLower(b2) {
				dot := s.advanceByte('.')
				name, after := Ident(dot)
				r := region.New(startPos.Line, startPos.Column, after.Line, after.Column)
				qualified := ast.NewVar(r, tag.Name, name)
				return parseAccessChain(qualified, after, minIndent)
			}
		}
	}
	cur := s
	result := atom
	progress := NoProgress
	for {
		b, ok := cur.PeekByte()
		if !ok || b != '.' {
			break
		}
		b2, ok2 := cur.PeekAt(1)
		if !ok2 || !isLower(b2) {
			break
		}
		dot := cur.advanceByte('.')
		name, after := Ident(dot)
		r := region.New(startPos.Line, startPos.Column, after.Line, after.Column)
		result = ast.NewAccess(r, result, name)
		cur = after
		progress = MadeProgress
	}
	return progress, result, cur
}
