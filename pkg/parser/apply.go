package parser

import (
	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/region"
)

// parseArguments greedily collects whitespace-separated function
// arguments at a call site (§4.2.3). Each argument must be preceded by at
// least one whitespace byte; a keyword immediately followed by whitespace
// is not a valid argument start, so argument collection stops there
// (letting e.g. `f then` leave `then` for an enclosing `if`). Within an
// argument position, a `-` preceded by whitespace and not followed by
// whitespace is unary-negate (§4.2.2), not the start of a binary `-`.
func parseArguments(fn ast.Expr, s State, minIndent int) (Progress, ast.Expr, State) {
	var args []ast.Expr
	cur := s
	for {
		save := cur
		wsProg, afterWS := ConsumeSpaces(cur, minIndent)
		if wsProg == NoProgress {
			break
		}
		if afterWS.AtEOF() {
			cur = save
			break
		}
		if isKeywordStart(afterWS) {
			cur = save
			break
		}
		argProg, arg, afterArg, argErr := parseArgumentAtom(afterWS, minIndent)
		if argErr != nil {
			cur = save
			break
		}
		_ = argProg
		accessProg, withAccess, afterAccess := parseAccessChain(arg, afterArg, minIndent)
		_ = accessProg
		args = append(args, withAccess)
		cur = afterAccess
	}
	if len(args) == 0 {
		return NoProgress, fn, s
	}
	startPos := fn.ExprRegion().Start
	r := region.New(startPos.Line, startPos.Column, cur.Line, cur.Column)
	return MadeProgress, ast.NewApply(r, fn, args, ast.CallSpace), cur
}

// isKeywordStart reports whether s begins with a reserved keyword
// immediately followed by whitespace or EOF — the shape §4.2.3 excludes
// from argument position. Unlike matchKeyword's general identifier-boundary
// rule, this only fires on whitespace/EOF, so e.g. a keyword immediately
// followed by `(` or `.` is still a valid argument start.
func isKeywordStart(s State) bool {
	rest := s.Remaining()
	for kw := range reservedKeywords {
		n := len(kw)
		if len(rest) < n || string(rest[:n]) != kw {
			continue
		}
		if len(rest) == n {
			return true
		}
		if b := rest[n]; isSpaceOrTab(b) || b == '\n' {
			return true
		}
	}
	return false
}

// parseArgumentAtom parses one argument position atom, applying the `-`
// vs binary-minus disambiguation: a `-` not followed by whitespace is
// unary-negate of the following atom; any other leading byte falls back
// to the ordinary atom grammar.
func parseArgumentAtom(s State, minIndent int) (Progress, ast.Expr, State, error) {
	if b, ok := s.PeekByte(); ok && b == '-' {
		if next, ok := s.PeekAt(1); ok && !isSpaceOrTab(next) && next != '\n' {
			start := s
			after := s.advanceByte('-')
			if isDigit(next) {
				prog, numExpr, afterNum, err := parseNumber(after)
				if err != nil {
					return prog, nil, afterNum, err
				}
				r := region.New(start.Line, start.Column, afterNum.Line, afterNum.Column)
				return MadeProgress, ast.NewUnaryOp(r, ast.UnaryNegate, numExpr), afterNum, nil
			}
			prog, operand, afterOperand, err := parseAtom(after, minIndent)
			if err != nil {
				return prog, nil, afterOperand, err
			}
			r := region.New(start.Line, start.Column, afterOperand.Line, afterOperand.Column)
			return MadeProgress, ast.NewUnaryOp(r, ast.UnaryNegate, operand), afterOperand, nil
		}
	}
	return parseAtom(s, minIndent)
}

// parseBinOpSuffix speculatively consumes optional whitespace and a
// binary operator after an expression; whitespace consumed before the
// operator stays attached to the left operand (§4.2), so no region
// surgery is needed beyond spanning left..right.
func parseBinOpSuffix(left ast.Expr, s State, minIndent int) (Progress, ast.Expr, State) {
	save := s
	_, afterWS := ConsumeSpaces(s, minIndent)
	opProg, op, afterOp, opErr := parseBinOp(afterWS)
	if opErr != nil {
		return NoProgress, left, save
	}
	_, afterOpWS := ConsumeSpaces(afterOp, minIndent)
	rhsProg, right, afterRight, rhsErr := parseExpr(afterOpWS, minIndent)
	if rhsErr != nil {
		return opProg, left, save
	}
	startPos := left.ExprRegion().Start
	r := region.New(startPos.Line, startPos.Column, afterRight.Line, afterRight.Column)
	_ = rhsProg
	return MadeProgress, ast.NewBinOp(r, left, op, right), afterRight
}
