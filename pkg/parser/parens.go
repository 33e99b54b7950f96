package parser

import (
	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/region"
)

// parseParensExpr parses a parenthesised expression (§4.2.1) and returns
// it as a plain ParensAround. Function arguments and a field-access chain
// after `(…)` are not looked for here; parseExpr collects them after the
// atom. A parenthesised pattern followed by `=`/`:` is recognised by the
// Definition Coordinator (defs.go) through parsePattern, which parses
// `(pattern)` directly; ast.ExprToPattern is not used on that path.
func parseParensExpr(s State, minIndent int) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := Byte(s, '(')
	if !ok {
		return NoProgress, nil, s, newErr(KindEInParens, s.Pos(), "expected (")
	}
	cur := next
	_, cur = ConsumeSpaces(cur, minIndent)
	_, inner, afterInner, err := parseBody(cur, minIndent)
	if err != nil {
		return MadeProgress, nil, afterInner, specialize(KindEInParens, cur.Pos(), err)
	}
	cur = afterInner
	_, cur = ConsumeSpaces(cur, minIndent)
	_, cur, closeOK := Byte(cur, ')')
	if !closeOK {
		return MadeProgress, nil, cur, newErr(KindEInParens, cur.Pos(), "expected )")
	}
	r := region.New(start.Line, start.Column, cur.Line, cur.Column)
	parens := ast.NewParensAround(r, inner)
	return MadeProgress, parens, cur, nil
}
