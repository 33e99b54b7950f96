package parser

import "github.com/loomlang/loom/pkg/ast"

// binOpOrder lists the recognised binary operators in the exact
// longest-match-first order §4.2.4 requires, so e.g. `==` is tried before
// a hypothetical bare `=` confusion and `<=` before `<`.
var binOpOrder = []struct {
	text string
	kind ast.BinOpKind
}{
	{"|>", ast.OpPizza},
	{"==", ast.OpEquals},
	{"!=", ast.OpNotEquals},
	{"&&", ast.OpAnd},
	{"||", ast.OpOr},
	{"//", ast.OpDoubleSlash},
	{"<=", ast.OpLessEq},
	{">=", ast.OpGreaterEq},
	{"%%", ast.OpDoublePercent},
	{"+", ast.OpPlus},
	{"*", ast.OpStar},
	{"-", ast.OpMinus},
	{"/", ast.OpSlash},
	{"<", ast.OpLess},
	{">", ast.OpGreater},
	{"^", ast.OpCaret},
	{"%", ast.OpPercent},
}

// parseBinOp matches the longest recognised operator at the cursor.
func parseBinOp(s State) (Progress, ast.BinOpKind, State, error) {
	for _, op := range binOpOrder {
		if prog, next, ok := ASCIIString(s, op.text); ok {
			return prog, op.kind, next, nil
		}
	}
	return NoProgress, 0, s, newErr(KindEExpr, s.Pos(), "expected binary operator")
}

// parseUnaryNot handles `!` (§4.2.2): it is unary-not exactly when the
// next byte is not `=`, leaving `!=` untouched for the binary-operator
// scan. Unary `-` is deliberately NOT handled here: §4.2.2 restricts it to
// function-argument position, so it is parsed by the argument collector
// in apply.go instead of as a general atom, overriding the atom-list order
// implied by §4.2's introductory numbering.
func parseUnaryNot(s State, minIndent int, parseOperand func(State, int) (Progress, ast.Expr, State, error)) (Progress, ast.Expr, State, error) {
	if b, ok := s.PeekAt(1); ok && b == '=' {
		return NoProgress, nil, s, newErr(KindEExpr, s.Pos(), "not unary-not")
	}
	_, next, ok := Byte(s, '!')
	if !ok {
		return NoProgress, nil, s, newErr(KindEExpr, s.Pos(), "expected !")
	}
	prog, operand, final, err := parseOperand(next, minIndent)
	if err != nil {
		return MadeProgress, nil, final, specialize(KindEExpr, s.Pos(), err)
	}
	r := spanState(s, final)
	_ = prog
	return MadeProgress, ast.NewUnaryOp(r, ast.UnaryNot, operand), final, nil
}
