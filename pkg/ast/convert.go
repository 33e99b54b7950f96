package ast

import "fmt"

// ErrInvalidPattern is returned by ExprToPattern when e has no pattern
// interpretation (spec.md §4.2.1: "everything else … fails").
type ErrInvalidPattern struct {
	Expr Expr
}

func (e *ErrInvalidPattern) Error() string {
	return fmt.Sprintf("invalid pattern at %s", e.Expr.ExprRegion())
}

// ExprToPattern is the total function spec.md §4.2.1 calls expr_to_pattern:
// it either succeeds or raises ErrInvalidPattern. It is a *partial inverse*
// of parsing (spec.md §8): for every Expr that also parses as a Pattern
// from the same bytes, this returns that Pattern.
//
// Convertible: variables, tags, applies, records with no update source,
// literals, and parenthesized wrappers. Not convertible: accessor
// functions, binary/unary ops, closures, if/when, malformed nodes, and
// record updates (an update source is only meaningful as an expression).
func ExprToPattern(e Expr) (Pattern, error) {
	switch v := e.(type) {
	case *Var:
		r := v.ExprRegion()
		if v.ModuleName != "" {
			return NewPQualified(r, v.ModuleName, v.Name), nil
		}
		if v.Name == "_" {
			return NewPUnderscore(r), nil
		}
		return NewPIdentifier(r, v.Name), nil

	case *Tag:
		return NewPTag(v.ExprRegion(), v.Name, v.Private), nil

	case *Int:
		return NewPInt(v.ExprRegion(), v.Text, v.Value), nil

	case *Float:
		return NewPFloat(v.ExprRegion(), v.Text, v.Value), nil

	case *NonBase10Int:
		return NewPInt(v.ExprRegion(), v.Text, v.Value), nil

	case *Str:
		return NewPStr(v.ExprRegion(), v.Value), nil

	case *ParensAround:
		return ExprToPattern(v.Inner)

	case *Apply:
		fnPattern, err := ExprToPattern(v.Func)
		if err != nil {
			return nil, err
		}
		args := make([]Pattern, len(v.Args))
		for i, a := range v.Args {
			p, err := ExprToPattern(a)
			if err != nil {
				return nil, err
			}
			args[i] = p
		}
		return NewPApply(v.ExprRegion(), fnPattern, args), nil

	case *Record:
		if v.Update != nil {
			return nil, &ErrInvalidPattern{Expr: e}
		}
		fields := make([]PatternRecordField, len(v.Fields))
		for i, f := range v.Fields {
			var fieldPattern Pattern
			switch {
			case f.Optional:
				fieldPattern = NewPOptionalField(f.Region, f.Label, f.Value)
			case f.Value != nil:
				inner, err := ExprToPattern(f.Value)
				if err != nil {
					return nil, err
				}
				fieldPattern = NewPRequiredField(f.Region, f.Label, inner)
			default:
				fieldPattern = nil // label-only shorthand, e.g. `{ x, y }`
			}
			fields[i] = PatternRecordField{Region: f.Region, Label: f.Label, Pattern: fieldPattern}
		}
		return NewPRecordDestructure(v.ExprRegion(), fields), nil

	default:
		return nil, &ErrInvalidPattern{Expr: e}
	}
}
