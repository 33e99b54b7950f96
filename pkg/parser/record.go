package parser

import "github.com/loomlang/loom/pkg/ast"

// parseRecord parses a record literal (§4.2.5): either a plain record
// (fields only) or an update record (`{ expr & field, … }`). Field shapes
// are `name : expr` (required), `name ? expr` (optional), or a bare
// `name` (label-only). Disambiguating a plain record from an update
// record requires trying to parse an expression followed by `&` before
// falling back to field parsing, since both start with an identifier.
func parseRecord(s State, minIndent int) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := Byte(s, '{')
	if !ok {
		return NoProgress, nil, s, newErr(KindERecord, s.Pos(), "expected {")
	}
	cur := next
	_, cur = ConsumeSpaces(cur, minIndent)

	var updateSource ast.Expr
	if b, ok := cur.PeekByte(); ok && b != '}' {
		if _, candidate, afterCandidate, err := parseExpr(cur, minIndent); err == nil {
			_, afterWS := ConsumeSpaces(afterCandidate, minIndent)
			if b2, ok2 := afterWS.PeekByte(); ok2 && b2 == '&' {
				updateSource = candidate
				cur = afterWS.advanceByte('&')
				_, cur = ConsumeSpaces(cur, minIndent)
			}
		}
	}

	var fields []ast.RecordField
	var trailingComments []string
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

		var value ast.Expr
		optional := false
		if b, ok := cur.PeekByte(); ok {
			switch b {
			case ':':
				cur = cur.advanceByte(':')
				_, cur = ConsumeSpaces(cur, minIndent)
				_, v, afterV, err := parseExpr(cur, minIndent)
				if err != nil {
					return MadeProgress, nil, afterV, specialize(KindERecord, fieldStart.Pos(), err)
				}
				value = v
				cur = afterV
			case '?':
				optional = true
				cur = cur.advanceByte('?')
				_, cur = ConsumeSpaces(cur, minIndent)
				_, v, afterV, err := parseExpr(cur, minIndent)
				if err != nil {
					return MadeProgress, nil, afterV, specialize(KindERecord, fieldStart.Pos(), err)
				}
				value = v
				cur = afterV
			}
		}
		fields = append(fields, ast.RecordField{
			Region:   spanState(fieldStart, cur),
			Label:    label,
			Value:    value,
			Optional: optional,
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
	return MadeProgress, ast.NewRecord(r, updateSource, fields, trailingComments), cur, nil
}
