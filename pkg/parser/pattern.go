package parser

import (
	"github.com/loomlang/loom/pkg/ast"
)

// parsePattern parses a full pattern: an atom, then, if the atom is a tag
// or qualified identifier, zero or more whitespace-separated argument
// patterns forming a PApply (mirrors the expression grammar's Apply
// handling in spirit, scaled down to patterns).
func parsePattern(s State, minIndent int) (Progress, ast.Pattern, State, error) {
	prog, atom, next, err := parsePatternAtom(s, minIndent)
	if err != nil {
		return prog, nil, next, err
	}

	switch atom.(type) {
	case *ast.PTag, *ast.PQualified:
		var args []ast.Pattern
		cur := next
		for {
			save := cur
			wsProg, afterWS := ConsumeSpaces(cur, minIndent)
			if wsProg == NoProgress {
				break
			}
			argProg, arg, afterArg, argErr := parsePatternAtom(afterWS, minIndent)
			if argErr != nil {
				cur = save
				break
			}
			_ = argProg
			args = append(args, arg)
			cur = afterArg
		}
		if len(args) > 0 {
			r := spanState(s, cur)
			return MadeProgress, ast.NewPApply(r, atom, args), cur, nil
		}
		return prog, atom, next, nil
	default:
		return prog, atom, next, nil
	}
}

func parsePatternAtom(s State, minIndent int) (Progress, ast.Pattern, State, error) {
	b, ok := s.PeekByte()
	if !ok {
		return NoProgress, nil, s, newErr(KindEPattern, s.Pos(), "expected pattern")
	}

	switch {
	case b == '_':
		if b2, ok := s.PeekAt(1); !ok || !isIdentContinue(b2) {
			_, next, _ := Byte(s, '_')
			r := spanState(s, next)
			return MadeProgress, ast.NewPUnderscore(r), next, nil
		}
	case b == '"':
		prog, expr, next, err := parseString(s)
		if err != nil {
			return prog, nil, next, err
		}
		str := expr.(*ast.Str)
		return prog, ast.NewPStr(str.ExprRegion(), str.Value), next, nil
	case isDigit(b):
		prog, expr, next, err := parseNumber(s)
		if err != nil {
			return prog, nil, next, err
		}
		switch e := expr.(type) {
		case *ast.Int:
			return prog, ast.NewPInt(e.ExprRegion(), e.Text, e.Value), next, nil
		case *ast.Float:
			return prog, ast.NewPFloat(e.ExprRegion(), e.Text, e.Value), next, nil
		default:
			return MadeProgress, nil, next, newErr(KindEPattern, s.Pos(), "non-base-10 literal pattern not supported")
		}
	case b == '@':
		next := s.advanceByte('@')
		b2, ok := next.PeekByte()
		if !ok || !isUpper(b2) {
			return MadeProgress, nil, next, newErr(KindEPattern, s.Pos(), "expected tag name after @")
		}
		name, after := Ident(next)
		r := spanState(s, after)
		return MadeProgress, ast.NewPTag(r, name, true), after, nil
	case isUpper(b):
		return parseQualifiedOrTagPattern(s)
	case isLower(b):
		name, after := Ident(s)
		r := spanState(s, after)
		return MadeProgress, ast.NewPIdentifier(r, name), after, nil
	case b == '{':
		return parseRecordDestructure(s, minIndent)
	case b == '(':
		_, next, openOK := Byte(s, '(')
		if !openOK {
			return NoProgress, nil, s, newErr(KindEPattern, s.Pos(), "expected (")
		}
		_, afterWS := ConsumeSpaces(next, minIndent)
		_, pat, afterPat, patErr := parsePattern(afterWS, minIndent)
		if patErr != nil {
			return MadeProgress, nil, afterPat, specialize(KindEPattern, s.Pos(), patErr)
		}
		_, afterWS2 := ConsumeSpaces(afterPat, minIndent)
		_, closeNext, closeOK := Byte(afterWS2, ')')
		if !closeOK {
			return MadeProgress, nil, afterWS2, newErr(KindEPattern, afterWS2.Pos(), "expected )")
		}
		return MadeProgress, pat, closeNext, nil
	}
	return NoProgress, nil, s, newErr(KindEPattern, s.Pos(), "expected pattern")
}

// parseQualifiedOrTagPattern disambiguates `Module.name` (a qualified
// identifier pattern) from a bare or dotted tag reference: scan dotted
// Capitalized segments; if the walk ends on a lowercase segment, the
// pattern is qualified; otherwise it is a plain tag.
func parseQualifiedOrTagPattern(s State) (Progress, ast.Pattern, State, error) {
	first, after := Ident(s)
	cur := after
	modulePath := first
	for {
		if b, ok := cur.PeekByte(); ok && b == '.' {
			if b2, ok2 := cur.PeekAt(1); ok2 && (isUpper(b2) || isLower(b2)) {
				dot := cur.advanceByte('.')
				if isLower(b2) {
					name, afterName := Ident(dot)
					r := spanState(s, afterName)
					return MadeProgress, ast.NewPQualified(r, modulePath, name), afterName, nil
				}
				seg, afterSeg := Ident(dot)
				modulePath = modulePath + "." + seg
				cur = afterSeg
				continue
			}
		}
		break
	}
	r := spanState(s, cur)
	return MadeProgress, ast.NewPTag(r, modulePath, false), cur, nil
}

func parseRecordDestructure(s State, minIndent int) (Progress, ast.Pattern, State, error) {
	start := s
	_, next, ok := Byte(s, '{')
	if !ok {
		return NoProgress, nil, s, newErr(KindERecord, s.Pos(), "expected {")
	}
	var fields []ast.PatternRecordField
	cur := next
	for {
		_, cur = ConsumeSpaces(cur, minIndent)
		if b, ok := cur.PeekByte(); ok && b == '}' {
			break
		}
		if !isLower(firstByteOr(cur)) {
			return MadeProgress, nil, cur, newErr(KindERecord, cur.Pos(), "expected field name")
		}
		fieldStart := cur
		label, afterLabel := Ident(cur)
		cur = afterLabel
		_, cur = ConsumeSpaces(cur, minIndent)
		var fieldPattern ast.Pattern
		if b, ok := cur.PeekByte(); ok && b == ':' {
			cur = cur.advanceByte(':')
			_, cur = ConsumeSpaces(cur, minIndent)
			_, pat, afterPat, err := parsePattern(cur, minIndent)
			if err != nil {
				return MadeProgress, nil, afterPat, specialize(KindERecord, fieldStart.Pos(), err)
			}
			fieldPattern = pat
			cur = afterPat
		}
		fields = append(fields, ast.PatternRecordField{
			Region:  spanState(fieldStart, cur),
			Label:   label,
			Pattern: fieldPattern,
		})
		_, cur = ConsumeSpaces(cur, minIndent)
		if b, ok := cur.PeekByte(); ok && b == ',' {
			cur = cur.advanceByte(',')
			continue
		}
		break
	}
	_, cur = ConsumeSpaces(cur, minIndent)
	_, cur, closeOK := Byte(cur, '}')
	if !closeOK {
		return MadeProgress, nil, cur, newErr(KindERecord, cur.Pos(), "expected }")
	}
	r := spanState(start, cur)
	return MadeProgress, ast.NewPRecordDestructure(r, fields), cur, nil
}

func firstByteOr(s State) byte {
	b, ok := s.PeekByte()
	if !ok {
		return 0
	}
	return b
}
