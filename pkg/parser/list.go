package parser

import "github.com/loomlang/loom/pkg/ast"

// parseList parses a list literal `[ expr, expr, … ]` with an optional
// trailing comma (§4.2 atom 6). The separator handling is a direct loop
// here; it does not go through TrailingSepBy0 from combinator.go.
func parseList(s State, minIndent int) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := Byte(s, '[')
	if !ok {
		return NoProgress, nil, s, newErr(KindEList, s.Pos(), "expected [")
	}
	cur := next
	var items []ast.Expr
	for {
		_, cur = ConsumeSpaces(cur, minIndent)
		if b, ok := cur.PeekByte(); ok && b == ']' {
			break
		}
		_, item, afterItem, err := parseExpr(cur, minIndent)
		if err != nil {
			return MadeProgress, nil, afterItem, specialize(KindEList, cur.Pos(), err)
		}
		items = append(items, item)
		cur = afterItem
		_, cur = ConsumeSpaces(cur, minIndent)
		if b, ok := cur.PeekByte(); ok && b == ',' {
			cur = cur.advanceByte(',')
			continue
		}
		break
	}
	_, cur = ConsumeSpaces(cur, minIndent)
	_, cur, closeOK := Byte(cur, ']')
	if !closeOK {
		return MadeProgress, nil, cur, newErr(KindEList, cur.Pos(), "expected ]")
	}
	r := spanState(start, cur)
	return MadeProgress, ast.NewList(r, items), cur, nil
}
