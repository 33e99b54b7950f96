package parser

import "github.com/loomlang/loom/pkg/ast"

// parseClosure parses `\ pat1, pat2, … -> body` (§4.2.8). Parameters are
// comma-separated patterns at the body's min_indent; the body follows
// `->` after optional whitespace.
func parseClosure(s State, minIndent int) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := Byte(s, '\\')
	if !ok {
		return NoProgress, nil, s, newErr(KindELambda, s.Pos(), "expected \\")
	}
	cur := next
	_, cur = ConsumeSpaces(cur, minIndent)

	var params []ast.Pattern
	for {
		_, param, afterParam, err := parsePattern(cur, minIndent)
		if err != nil {
			return MadeProgress, nil, afterParam, specialize(KindELambda, cur.Pos(), err)
		}
		params = append(params, param)
		cur = afterParam
		_, cur = ConsumeSpaces(cur, minIndent)
		if b, ok := cur.PeekByte(); ok && b == ',' {
			cur = cur.advanceByte(',')
			_, cur = ConsumeSpaces(cur, minIndent)
			continue
		}
		break
	}

	_, cur, arrowOK := ASCIIString(cur, "->")
	if !arrowOK {
		return MadeProgress, nil, cur, newErr(KindELambda, cur.Pos(), "expected ->")
	}
	_, cur = ConsumeSpaces(cur, minIndent)
	_, body, afterBody, err := parseExpr(cur, minIndent)
	if err != nil {
		return MadeProgress, nil, afterBody, specialize(KindELambda, cur.Pos(), err)
	}
	r := spanState(start, afterBody)
	return MadeProgress, ast.NewClosure(r, params, body), afterBody, nil
}
