package parser

import "github.com/loomlang/loom/pkg/ast"

// parseWhen parses `when scrutinee is branch…` (§4.2.6). The `when`
// keyword's own column is only a floor (caseIndent): branches sit at
// whatever column the first branch's first pattern starts at
// (originalIndent, >= caseIndent), and every subsequent branch must align
// to that same column, or a PatternAlignment error is raised naming the
// signed column delta.
func parseWhen(s State, minIndent int) (Progress, ast.Expr, State, error) {
	start := s
	_, next, ok := ASCIIString(s, "when")
	if !ok {
		return NoProgress, nil, s, newErr(KindEWhen, s.Pos(), "expected when")
	}
	caseIndent := start.Column

	cur := next
	_, cur = ConsumeSpaces(cur, minIndent)
	_, scrutinee, afterScrutinee, err := parseExpr(cur, minIndent)
	if err != nil {
		return MadeProgress, nil, afterScrutinee, specialize(KindEWhen, cur.Pos(), err)
	}
	cur = afterScrutinee
	_, cur = ConsumeSpaces(cur, minIndent)
	_, cur, isOK := ASCIIString(cur, "is")
	if !isOK {
		return MadeProgress, nil, cur, newErr(KindEWhen, cur.Pos(), "expected is")
	}

	var branches []ast.WhenBranch
	originalIndent := -1
	for {
		_, afterWS := ConsumeSpaces(cur, caseIndent)
		if afterWS.AtEOF() || afterWS.Column < caseIndent {
			break
		}
		lineStart := afterWS
		if b, ok := lineStart.PeekByte(); ok && b == '|' {
			lineStart = lineStart.advanceByte('|')
			_, lineStart = ConsumeSpaces(lineStart, caseIndent)
		}
		if originalIndent == -1 {
			originalIndent = lineStart.Column
		} else if lineStart.Column != originalIndent {
			delta := lineStart.Column - originalIndent
			return MadeProgress, nil, lineStart, ErrPatternAlignment(lineStart.Pos(), delta)
		}
		branchStart := lineStart
		firstAltCol := lineStart.Column

		var patterns []ast.Pattern
		branchCur := lineStart
		for {
			_, pat, afterPat, patErr := parsePattern(branchCur, caseIndent+1)
			if patErr != nil {
				return MadeProgress, nil, afterPat, specialize(KindEWhen, branchCur.Pos(), patErr)
			}
			patternStartCol := branchCur.Column
			if len(patterns) > 0 && patternStartCol < firstAltCol {
				delta := patternStartCol - firstAltCol
				return MadeProgress, nil, afterPat, ErrPatternAlignment(branchCur.Pos(), delta)
			}
			patterns = append(patterns, pat)
			branchCur = afterPat
			_, peekWS := ConsumeSpaces(branchCur, caseIndent+1)
			if b, ok := peekWS.PeekByte(); ok && b == '|' {
				branchCur = peekWS.advanceByte('|')
				_, branchCur = ConsumeSpaces(branchCur, caseIndent+1)
				continue
			}
			break
		}

		_, branchCur = ConsumeSpaces(branchCur, caseIndent+1)
		var guard ast.Expr
		if _, afterIf, guardOK := ASCIIString(branchCur, "if"); guardOK {
			_, afterIfWS := ConsumeSpaces(afterIf, caseIndent+1)
			_, g, afterGuard, guardErr := parseExpr(afterIfWS, caseIndent+1)
			if guardErr != nil {
				return MadeProgress, nil, afterGuard, specialize(KindEWhen, afterIfWS.Pos(), guardErr)
			}
			guard = g
			branchCur = afterGuard
			_, branchCur = ConsumeSpaces(branchCur, caseIndent+1)
		}

		_, branchCur, arrowOK := ASCIIString(branchCur, "->")
		if !arrowOK {
			return MadeProgress, nil, branchCur, newErr(KindEWhen, branchCur.Pos(), "expected ->")
		}
		_, branchCur = ConsumeSpaces(branchCur, caseIndent+1)
		_, body, afterBody, bodyErr := parseExpr(branchCur, caseIndent+1)
		if bodyErr != nil {
			return MadeProgress, nil, afterBody, specialize(KindEWhen, branchCur.Pos(), bodyErr)
		}

		branches = append(branches, ast.WhenBranch{
			Region:   spanState(branchStart, afterBody),
			Patterns: patterns,
			Guard:    guard,
			Body:     body,
		})
		cur = afterBody
	}

	if len(branches) == 0 {
		return MadeProgress, nil, cur, newErr(KindEWhen, cur.Pos(), "expected at least one branch")
	}
	r := spanState(start, cur)
	return MadeProgress, ast.NewWhen(r, scrutinee, branches), cur, nil
}
