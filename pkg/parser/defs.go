package parser

import (
	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/region"
)

// parseBody parses a "body" position — any nested block (the module top
// level uses parseTopLevelDefs instead) that may introduce a sequence of sibling
// definitions before a trailing expression (§4.3): it first tries the
// Definition Coordinator, falling back to a plain expression when no def
// is recognised at this position.
func parseBody(s State, minIndent int) (Progress, ast.Expr, State, error) {
	prog, defsBlock, next, err := parseDefsBlock(s, minIndent)
	if err == nil && defsBlock != nil {
		return prog, defsBlock, next, nil
	}
	if prog == MadeProgress {
		return prog, nil, next, err
	}
	return parseExpr(s, minIndent)
}

// parseDefsBlock implements the Definition Coordinator (§4.3). It
// recognises the first def's introduction (identifier/record/parens
// pattern followed by `=` or `:`), fixes def_start_col from that pattern,
// scans further sibling defs at exactly that column, fuses adjacent
// Annotation+Body pairs sharing a pattern label into AnnotatedBody, and
// finally parses the trailing expression at the same column.
func parseDefsBlock(s State, minIndent int) (Progress, *ast.Defs, State, error) {
	start := s
	first, afterFirst, firstErr := tryParseDef(s, minIndent)
	if firstErr != nil {
		return NoProgress, nil, s, firstErr
	}
	if first == nil {
		return NoProgress, nil, s, nil
	}

	defStartCol := start.Column
	if defStartCol < minIndent {
		return MadeProgress, nil, afterFirst, ErrOutdentedTooFar(start.Pos())
	}

	defs := []ast.Def{first}
	cur := afterFirst
	for {
		_, afterWS := ConsumeSpaces(cur, minIndent)
		if afterWS.Column != defStartCol || afterWS.AtEOF() {
			break
		}
		def, afterDef, defErr := tryParseDef(afterWS, minIndent)
		if defErr != nil {
			return MadeProgress, nil, afterDef, defErr
		}
		if def == nil {
			break
		}
		defs = append(defs, def)
		cur = afterDef
	}

	defs = fuseAnnotatedBodies(defs)

	_, afterWS := ConsumeSpaces(cur, minIndent)
	if afterWS.Column != defStartCol || afterWS.AtEOF() {
		return MadeProgress, nil, afterWS, newErr(KindEDef, afterWS.Pos(), "expected trailing expression")
	}
	_, final, afterFinal, finalErr := parseBody(afterWS, minIndent)
	if finalErr != nil {
		return MadeProgress, nil, afterFinal, finalErr
	}

	r := region.New(start.Line, start.Column, afterFinal.Line, afterFinal.Column)
	return MadeProgress, ast.NewDefs(r, defs, final), afterFinal, nil
}

// tryParseDef attempts to recognise one def at s. It returns (nil, s, nil)
// — no error, no def — when the input doesn't look like a def at all
// (distinguishing "not a def" from "malformed def", which is reported as
// a committed error instead).
func tryParseDef(s State, minIndent int) (ast.Def, State, error) {
	patProg, pat, afterPat, patErr := parsePattern(s, minIndent)
	if patErr != nil || patProg == NoProgress {
		return nil, s, nil
	}
	defStartCol := s.Column
	bodyMinIndent := defStartCol + 1

	_, afterWS := ConsumeSpaces(afterPat, minIndent)
	b, ok := afterWS.PeekByte()
	if !ok {
		return nil, s, nil
	}

	switch b {
	case '=':
		if b2, ok2 := afterWS.PeekAt(1); ok2 && b2 == '=' {
			return nil, s, nil // `==` is a binary operator, not a binding
		}
		eq := afterWS.advanceByte('=')
		_, afterEqWS := ConsumeSpaces(eq, bodyMinIndent)
		_, body, afterBody, bodyErr := parseBody(afterEqWS, bodyMinIndent)
		if bodyErr != nil {
			return nil, afterBody, specialize(KindEDef, afterWS.Pos(), bodyErr)
		}
		r := region.New(s.Line, s.Column, afterBody.Line, afterBody.Column)
		return ast.NewDBody(r, pat, body), afterBody, nil

	case ':':
		colon := afterWS.advanceByte(':')
		_, afterColonWS := ConsumeSpaces(colon, bodyMinIndent)
		_, typ, afterType, typeErr := parseExpr(afterColonWS, bodyMinIndent)
		if typeErr != nil {
			return nil, afterType, specialize(KindEDef, afterWS.Pos(), typeErr)
		}
		r := region.New(s.Line, s.Column, afterType.Line, afterType.Column)
		if apply, ok := pat.(*ast.PApply); ok {
			if tag, ok := apply.Func.(*ast.PTag); ok {
				vars := make([]string, 0, len(apply.Args))
				allIdents := true
				for _, arg := range apply.Args {
					if ident, ok := arg.(*ast.PIdentifier); ok {
						vars = append(vars, ident.Name)
					} else {
						allIdents = false
						break
					}
				}
				if allIdents {
					return ast.NewDAlias(r, tag.Name, vars, typ), afterType, nil
				}
			}
		}
		return ast.NewDAnnotation(r, pat, typ), afterType, nil
	}

	return nil, s, nil
}

// fuseAnnotatedBodies fuses an Annotation immediately followed, at the
// same position, by a Body def with the same pattern label into a single
// AnnotatedBody def (§4.3's fusion rule).
func fuseAnnotatedBodies(defs []ast.Def) []ast.Def {
	out := make([]ast.Def, 0, len(defs))
	i := 0
	for i < len(defs) {
		ann, isAnn := defs[i].(*ast.DAnnotation)
		if isAnn && i+1 < len(defs) {
			if body, isBody := defs[i+1].(*ast.DBody); isBody {
				if sameLabel(ann.Pattern, body.Pattern) {
					r := region.Span(ann.DefRegion(), body.DefRegion())
					out = append(out, ast.NewDAnnotatedBody(r, ann.Pattern, ann.Type, "", body.Pattern, body.Expr))
					i += 2
					continue
				}
			}
		}
		out = append(out, defs[i])
		i++
	}
	return out
}

func sameLabel(a, b ast.Pattern) bool {
	ai, aok := a.(*ast.PIdentifier)
	bi, bok := b.(*ast.PIdentifier)
	return aok && bok && ai.Name == bi.Name
}
