package parser

import (
	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/numlit"
	"github.com/loomlang/loom/pkg/region"
)

// parseString parses a double-quoted string literal (§4.2 atom 2).
// Escapes recognised: \n \t \\ \" \r.
func parseString(s State) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := Byte(s, '"')
	if !ok {
		return NoProgress, nil, s, newErr(KindEString, s.Pos(), "expected opening quote")
	}
	var out []byte
	cur := next
	for {
		b, ok := cur.PeekByte()
		if !ok {
			return MadeProgress, nil, cur, newErr(KindEString, start.Pos(), "unterminated string")
		}
		if b == '"' {
			_, cur2, _ := Byte(cur, '"')
			r := region.New(start.Line, start.Column, cur2.Line, cur2.Column)
			return MadeProgress, ast.NewStr(r, string(out)), cur2, nil
		}
		if b == '\\' {
			esc, ok := cur.PeekAt(1)
			if !ok {
				return MadeProgress, nil, cur, newErr(KindEString, start.Pos(), "unterminated escape")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				return MadeProgress, nil, cur, newErr(KindEString, cur.Pos(), "unknown escape")
			}
			cur = cur.advanceByte(b)
			cur = cur.advanceByte(esc)
			continue
		}
		if b == '\n' {
			return MadeProgress, nil, cur, newErr(KindEString, start.Pos(), "unterminated string")
		}
		out = append(out, b)
		cur = cur.advanceByte(b)
	}
}

// parseNumber parses an unsigned decimal, hex, octal, or binary literal
// (§4.2 atom 3; the leading `-` is handled separately by argument
// collection, §4.2.2).
func parseNumber(s State) (Progress, ast.Expr, State, error) {
	b, ok := s.PeekByte()
	if !ok || !isDigit(b) {
		return NoProgress, nil, s, newErr(KindEExpr, s.Pos(), "expected digit")
	}
	start := s

	if b == '0' {
		if b2, ok := s.PeekAt(1); ok {
			switch b2 {
			case 'x', 'X':
				return scanNonBase10(start, 2, ast.Base16, isHexDigit)
			case 'o', 'O':
				return scanNonBase10(start, 2, ast.Base8, isOctalDigit)
			case 'b', 'B':
				return scanNonBase10(start, 2, ast.Base2, isBinaryDigit)
			}
		}
	}

	cur := s
	for {
		b, ok := cur.PeekByte()
		if !ok || !(isDigit(b) || b == '_') {
			break
		}
		cur = cur.advanceByte(b)
	}
	isFloat := false
	if b, ok := cur.PeekByte(); ok && b == '.' {
		if b2, ok2 := cur.PeekAt(1); ok2 && isDigit(b2) {
			isFloat = true
			cur = cur.advanceByte('.')
			for {
				b, ok := cur.PeekByte()
				if !ok || !(isDigit(b) || b == '_') {
					break
				}
				cur = cur.advanceByte(b)
			}
		}
	}
	if b, ok := cur.PeekByte(); ok && (b == 'e' || b == 'E') {
		save := cur
		exp := cur.advanceByte(b)
		if b2, ok2 := exp.PeekByte(); ok2 && (b2 == '+' || b2 == '-') {
			exp = exp.advanceByte(b2)
		}
		if b3, ok3 := exp.PeekByte(); ok3 && isDigit(b3) {
			isFloat = true
			cur = exp
			for {
				b, ok := cur.PeekByte()
				if !ok || !isDigit(b) {
					break
				}
				cur = cur.advanceByte(b)
			}
		} else {
			cur = save
		}
	}

	text := string(start.Src[start.Offset:cur.Offset])
	r := region.New(start.Line, start.Column, cur.Line, cur.Column)
	if isFloat {
		v, err := numlit.ParseFloat(text)
		if err != nil {
			return MadeProgress, nil, cur, specialize(KindEExpr, start.Pos(), err)
		}
		return MadeProgress, ast.NewFloat(r, text, v), cur, nil
	}
	v, err := numlit.ParseInt(text)
	if err != nil {
		return MadeProgress, nil, cur, specialize(KindEExpr, start.Pos(), err)
	}
	return MadeProgress, ast.NewInt(r, text, v), cur, nil
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }
func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }

func scanNonBase10(start State, prefixLen int, base ast.NumBase, digitOK func(byte) bool) (Progress, ast.Expr, State, error) {
	cur := start
	for i := 0; i < prefixLen; i++ {
		b, _ := cur.PeekByte()
		cur = cur.advanceByte(b)
	}
	for {
		b, ok := cur.PeekByte()
		if !ok || !(digitOK(b) || b == '_') {
			break
		}
		cur = cur.advanceByte(b)
	}
	text := string(start.Src[start.Offset:cur.Offset])
	digits := text[prefixLen:]
	r := region.New(start.Line, start.Column, cur.Line, cur.Column)
	var v int64
	var err error
	switch base {
	case ast.Base16:
		v, err = numlit.ParseHex(digits)
	case ast.Base8:
		v, err = numlit.ParseOctal(digits)
	case ast.Base2:
		v, err = numlit.ParseBinary(digits)
	}
	if err != nil {
		return MadeProgress, nil, cur, specialize(KindEExpr, start.Pos(), err)
	}
	return MadeProgress, ast.NewNonBase10Int(r, text, v, base, false), cur, nil
}
