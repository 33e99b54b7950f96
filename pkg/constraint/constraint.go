package constraint

import (
	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/region"
)

// Constraint is the tree the canonicalizer builds per definition and the
// solver walks to unify types (spec.md §3's Constraint data). It mirrors
// the shape of a classic HM constraint generator's output (Eq/Lookup/And)
// scaled down to the handful of forms this front end needs to resolve
// spec.md §8 scenario 1.
type Constraint interface {
	isConstraint()
}

type base struct{}

func (base) isConstraint() {}

// Eq asserts that Var must unify with Type, recording Region for error
// reporting once a real solver backs this out with source spans.
type Eq struct {
	base
	Var    int
	Type   Type
	Region region.Region
}

// Lookup resolves Symbol's type and asserts it must unify with Var — this
// is how `y = x` constrains y's var against x's already-bound one.
type Lookup struct {
	base
	Symbol module.Symbol
	Var    int
	Region region.Region
}

// And combines a def's sub-constraints (its pattern, its body, and any
// nested lets) into one.
type And struct {
	base
	Constraints []Constraint
}

// True is the trivially satisfied constraint, used for defs that bind no
// obligation on their own (e.g. a type alias).
type True struct{ base }

// VarStore hands out fresh, module-unique type variable numbers. The
// canonicalizer owns one per module; the solver treats var numbers as
// keys into its own substitution map, so they never need to be globally
// unique across modules.
type VarStore struct {
	next int
}

// NewVarStore creates an empty store.
func NewVarStore() *VarStore {
	return &VarStore{}
}

// Fresh returns a new, never-before-issued variable number.
func (s *VarStore) Fresh() int {
	v := s.next
	s.next++
	return v
}
