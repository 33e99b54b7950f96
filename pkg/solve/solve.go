// Package solve is the minimal constraint solver collaborator spec.md
// leaves unspecified beyond "produces a Solved summary of each module's
// declarations." It implements just enough unification over
// constraint.Constraint to reproduce spec.md §8 scenario 1
// (`x = 1`, `y = x`, `y` solving to `x : Int, y : Int`): Eq constraints
// bind a variable directly, And constraints propagate to every child, and
// Lookup constraints union two variables together via a union-find so one
// var's eventual binding is visible through the other.
//
// Grounded on original_source/src/load/mod.rs's solve_module step, which
// calls out to a separate solver exactly where this package sits in the
// pipeline; the union-find itself is the standard approach any HM-style
// solver in the example pack's domain would use, scaled down to this
// front end's Eq/Lookup/And vocabulary.
package solve

import (
	"github.com/loomlang/loom/pkg/constraint"
	"github.com/loomlang/loom/pkg/module"
)

// Solved is one module's solve-phase output: a concrete (or still flexible)
// type per declared symbol.
type Solved struct {
	Types map[module.Symbol]constraint.Type
}

// unionFind implements path-compressed union over variable numbers.
type unionFind struct {
	parent map[int]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[int]int)}
}

func (u *unionFind) find(v int) int {
	p, ok := u.parent[v]
	if !ok {
		return v
	}
	root := u.find(p)
	u.parent[v] = root
	return root
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// Solve walks con, accumulating a type binding per representative
// variable. symbolVars is the symbol -> variable map pkg/canonicalize
// produced for the same module, used to resolve a Lookup constraint's
// referenced symbol back to the variable number its own def was assigned,
// and externalTypes supplies already-solved types for symbols imported
// from other modules (so Lookup can resolve across module boundaries
// without re-running their constraints).
func Solve(con constraint.Constraint, symbolVars map[module.Symbol]int, externalTypes map[module.Symbol]constraint.Type) Solved {
	uf := newUnionFind()
	bindings := make(map[int]constraint.Type)
	mentioned := make(map[int]struct{})

	var walk func(c constraint.Constraint)
	walk = func(c constraint.Constraint) {
		switch v := c.(type) {
		case constraint.True:
		case constraint.Eq:
			mentioned[v.Var] = struct{}{}
			root := uf.find(v.Var)
			bindings[root] = v.Type
		case constraint.Lookup:
			mentioned[v.Var] = struct{}{}
			if ext, ok := externalTypes[v.Symbol]; ok {
				root := uf.find(v.Var)
				bindings[root] = ext
				return
			}
			if sourceVar, ok := symbolVars[v.Symbol]; ok {
				mentioned[sourceVar] = struct{}{}
				uf.union(v.Var, sourceVar)
			}
		case constraint.And:
			for _, child := range v.Constraints {
				walk(child)
			}
		}
	}
	walk(con)

	resolved := make(map[int]constraint.Type, len(mentioned))
	nextFlex := 0
	for v := range mentioned {
		root := uf.find(v)
		if t, ok := bindings[root]; ok {
			resolved[v] = t
			continue
		}
		resolved[v] = constraint.Flex(nextFlex)
		nextFlex++
	}

	types := make(map[module.Symbol]constraint.Type, len(symbolVars))
	for sym, v := range symbolVars {
		if t, ok := resolved[v]; ok {
			types[sym] = t
		} else {
			types[sym] = constraint.Flex(v)
		}
	}
	return Solved{Types: types}
}
