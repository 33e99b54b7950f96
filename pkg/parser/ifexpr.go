package parser

import "github.com/loomlang/loom/pkg/ast"

// parseIf parses `if cond then expr else …`, where `else` may be
// immediately followed by another `if` to chain (§4.2.7). Parsing loops
// collecting (condition, then) pairs until the arm after the final
// `else` is reached.
func parseIf(s State, minIndent int) (Progress, ast.Expr, State, error) {
	start := s
	_, cur, ok := ASCIIString(s, "if")
	if !ok {
		return NoProgress, nil, s, newErr(KindEIf, s.Pos(), "expected if")
	}

	var branches []ast.IfBranch
	for {
		_, cur = ConsumeSpaces(cur, minIndent)
		_, cond, afterCond, err := parseExpr(cur, minIndent)
		if err != nil {
			return MadeProgress, nil, afterCond, specialize(KindEIf, cur.Pos(), err)
		}
		cur = afterCond
		_, cur = ConsumeSpaces(cur, minIndent)
		_, cur, thenOK := ASCIIString(cur, "then")
		if !thenOK {
			return MadeProgress, nil, cur, newErr(KindEIf, cur.Pos(), "expected then")
		}
		_, cur = ConsumeSpaces(cur, minIndent)
		_, thenExpr, afterThen, thenErr := parseExpr(cur, minIndent)
		if thenErr != nil {
			return MadeProgress, nil, afterThen, specialize(KindEIf, cur.Pos(), thenErr)
		}
		branches = append(branches, ast.IfBranch{Cond: cond, Then: thenExpr})
		cur = afterThen
		_, cur = ConsumeSpaces(cur, minIndent)
		_, afterElse, elseOK := ASCIIString(cur, "else")
		if !elseOK {
			return MadeProgress, nil, cur, newErr(KindEIf, cur.Pos(), "expected else")
		}
		cur = afterElse
		_, peekWS := ConsumeSpaces(cur, minIndent)
		if _, _, chainOK := ASCIIString(peekWS, "if"); chainOK {
			cur = peekWS
			continue
		}
		break
	}

	_, cur = ConsumeSpaces(cur, minIndent)
	_, elseExpr, afterElse2, err := parseExpr(cur, minIndent)
	if err != nil {
		return MadeProgress, nil, afterElse2, specialize(KindEIf, cur.Pos(), err)
	}
	r := spanState(start, afterElse2)
	return MadeProgress, ast.NewIf(r, branches, elseExpr), afterElse2, nil
}
