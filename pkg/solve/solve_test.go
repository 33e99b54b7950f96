package solve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomlang/loom/pkg/constraint"
	"github.com/loomlang/loom/pkg/module"
)

func TestSolveLetChainResolvesThroughLookup(t *testing.T) {
	// x = 1
	// y = x
	x := module.Symbol{Module: 0, Ident: 0}
	y := module.Symbol{Module: 0, Ident: 1}
	xVar, yVar := 0, 1

	con := constraint.And{Constraints: []constraint.Constraint{
		constraint.Eq{Var: xVar, Type: constraint.Int()},
		constraint.Lookup{Symbol: x, Var: yVar},
	}}
	symbolVars := map[module.Symbol]int{x: xVar, y: yVar}

	solved := Solve(con, symbolVars, nil)
	require.Contains(t, solved.Types, x)
	require.Contains(t, solved.Types, y)
	assert.Equal(t, constraint.Int(), solved.Types[x])
	assert.Equal(t, constraint.Int(), solved.Types[y])
}

func TestSolveUnboundVariableStaysFlex(t *testing.T) {
	z := module.Symbol{Module: 0, Ident: 0}
	zVar := 0
	// A def with no Eq binding at all (e.g. an unconstrained expr form)
	// still gets recorded as a flexible type, never dropped.
	con := constraint.True{}
	symbolVars := map[module.Symbol]int{z: zVar}

	solved := Solve(con, symbolVars, nil)
	require.Contains(t, solved.Types, z)
	assert.Equal(t, constraint.KindFlex, solved.Types[z].Kind)
}

func TestSolveResolvesExternalModuleSymbol(t *testing.T) {
	// Module B: b = A.a, where A.a already solved to Str in a prior module.
	importedA := module.Symbol{Module: 0, Ident: 0}
	localB := module.Symbol{Module: 1, Ident: 0}
	bVar := 0

	con := constraint.Lookup{Symbol: importedA, Var: bVar}
	symbolVars := map[module.Symbol]int{localB: bVar}
	externalTypes := map[module.Symbol]constraint.Type{importedA: constraint.Str()}

	solved := Solve(con, symbolVars, externalTypes)
	require.Contains(t, solved.Types, localB)
	assert.Equal(t, constraint.Str(), solved.Types[localB])
}

func TestSolveIndependentBindingsDoNotInterfere(t *testing.T) {
	a := module.Symbol{Module: 0, Ident: 0}
	b := module.Symbol{Module: 0, Ident: 1}
	aVar, bVar := 0, 1

	con := constraint.And{Constraints: []constraint.Constraint{
		constraint.Eq{Var: aVar, Type: constraint.Int()},
		constraint.Eq{Var: bVar, Type: constraint.Str()},
	}}
	symbolVars := map[module.Symbol]int{a: aVar, b: bVar}

	solved := Solve(con, symbolVars, nil)
	assert.Equal(t, constraint.Int(), solved.Types[a])
	assert.Equal(t, constraint.Str(), solved.Types[b])
}
