package canonicalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/parser"
	"github.com/loomlang/loom/pkg/solve"
)

func parseDefs(t *testing.T, src string) []ast.Def {
	t.Helper()
	_, defs, err := parser.ParseModule([]byte(src))
	require.NoError(t, err)
	return defs
}

func TestCanonicalizeLetChainSolvesThroughLookup(t *testing.T) {
	defs := parseDefs(t, "interface Test exposes [y] imports []\nx=1\ny=x\n")

	identIds := module.NewIdentIds(nil)
	res := Canonicalize(0, identIds, nil, defs)
	require.False(t, res.Module.Invalid, res.Module.InvalidReason)

	xID, ok := identIds.Get("x")
	require.True(t, ok)
	yID, ok := identIds.Get("y")
	require.True(t, ok)
	xSym := module.Symbol{Module: 0, Ident: xID}
	ySym := module.Symbol{Module: 0, Ident: yID}

	require.Contains(t, res.Vars, xSym)
	require.Contains(t, res.Vars, ySym)
	assert.Contains(t, res.Module.SymbolRefs, xSym, "y=x should record a reference to x")

	solved := solve.Solve(res.Constraint, res.Vars, nil)
	assert.Equal(t, "Int", solved.Types[xSym].String())
	assert.Equal(t, "Int", solved.Types[ySym].String())
}

func TestCanonicalizeUnresolvedIdentifierIsInvalid(t *testing.T) {
	defs := parseDefs(t, "interface Test exposes [y] imports []\ny=x\n")

	res := Canonicalize(0, module.NewIdentIds(nil), nil, defs)
	require.True(t, res.Module.Invalid)
	assert.Contains(t, res.Module.InvalidReason, "unresolved identifier")
}

func TestCanonicalizeResolvesImportedInitialScope(t *testing.T) {
	// y = value, where value comes from the module's InitialScope (as if
	// imported via `imports [Mod.{value}]`), not declared locally.
	defs := parseDefs(t, "interface Test exposes [y] imports []\ny=value\n")

	importingIdentIds := module.NewIdentIds(nil)
	valueSym := module.Symbol{Module: 7, Ident: 3}
	initialScope := map[string]module.ScopeEntry{
		"value": {Symbol: valueSym},
	}

	res := Canonicalize(0, importingIdentIds, initialScope, defs)
	require.False(t, res.Module.Invalid, res.Module.InvalidReason)
	assert.Contains(t, res.Module.SymbolRefs, valueSym)
	assert.Equal(t, []module.ID{7}, res.Module.ReferencedModules())
}

func TestCanonicalizeMutualRecursionPredeclares(t *testing.T) {
	// b is referenced by a's body before b's own def appears — this only
	// resolves because predeclare binds every sibling's pattern up front.
	defs := parseDefs(t, "interface Test exposes [a] imports []\na=b\nb=1\n")

	res := Canonicalize(0, module.NewIdentIds(nil), nil, defs)
	require.False(t, res.Module.Invalid, res.Module.InvalidReason)
}
