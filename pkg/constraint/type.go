// Package constraint is the IR the canonicalizer emits and the solver
// consumes (spec.md §3's Constraint/Solved data, SPEC_FULL.md §5). It is
// intentionally thin: full unification lives in pkg/solve, not here.
package constraint

import "fmt"

// TypeKind enumerates the handful of concrete types this front end's
// minimal solver can produce. A real compiler's Type is a recursive tree
// of many more shapes (tag unions, records, functions of any arity,
// aliases); this is the subset needed to make pkg/solve's unification
// observable end to end without implementing full Hindley-Milner.
type TypeKind int

const (
	KindFlex TypeKind = iota // unresolved type variable
	KindInt
	KindFloat
	KindStr
	KindList
	KindFunc
	KindErroneous // stands in for a module marked module.Invalid
)

// Type is a solved or partially solved type.
type Type struct {
	Kind    TypeKind
	FlexID  int    // valid when Kind == KindFlex
	Elem    *Type  // valid when Kind == KindList
	Args    []Type // valid when Kind == KindFunc
	Ret     *Type  // valid when Kind == KindFunc
	Name    string // valid when Kind == KindErroneous (the reason)
}

func Flex(id int) Type           { return Type{Kind: KindFlex, FlexID: id} }
func Int() Type                  { return Type{Kind: KindInt} }
func Float() Type                { return Type{Kind: KindFloat} }
func Str() Type                  { return Type{Kind: KindStr} }
func List(elem Type) Type        { return Type{Kind: KindList, Elem: &elem} }
func Func(args []Type, ret Type) Type {
	return Type{Kind: KindFunc, Args: args, Ret: &ret}
}
func Erroneous(reason string) Type { return Type{Kind: KindErroneous, Name: reason} }

func (t Type) String() string {
	switch t.Kind {
	case KindFlex:
		return fmt.Sprintf("_%d", t.FlexID)
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindList:
		return fmt.Sprintf("List %s", t.Elem.String())
	case KindFunc:
		return "Func"
	case KindErroneous:
		return fmt.Sprintf("<erroneous: %s>", t.Name)
	default:
		return "<unknown>"
	}
}
