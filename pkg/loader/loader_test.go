package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomlang/loom/pkg/module"
)

func writeModule(t *testing.T, dir, relPath, src string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(src), 0644))
}

func TestLoadSingleModuleLetChain(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.loom")
	writeModule(t, dir, "root.loom", "interface Root exposes [x, y] imports []\nx=1\ny=x\n")

	res, err := Load(rootPath, dir, 2, nil)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Modules, 1)

	var rootID module.ID
	for id, name := range res.Names {
		if name == "root" {
			rootID = id
		}
	}
	mod := res.Modules[rootID]
	require.False(t, mod.Invalid, mod.InvalidReason)

	hdr := res.Headers[rootID]
	xID, ok := hdr.IdentIds.Get("x")
	require.True(t, ok)
	yID, ok := hdr.IdentIds.Get("y")
	require.True(t, ok)

	solved := res.Solved[rootID]
	assert.Equal(t, "Int", solved.Types[module.Symbol{Module: rootID, Ident: xID}].String())
	assert.Equal(t, "Int", solved.Types[module.Symbol{Module: rootID, Ident: yID}].String())
}

func TestLoadResolvesCrossModuleImport(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.loom")
	writeModule(t, dir, "root.loom", "interface Root exposes [result] imports [Utils.{double}]\nresult=double\n")
	writeModule(t, dir, "Utils.loom", "interface Utils exposes [double] imports []\ndouble=2\n")

	res, err := Load(rootPath, dir, 2, nil)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Modules, 2)

	var rootID, utilsID module.ID
	for id, name := range res.Names {
		switch name {
		case "root":
			rootID = id
		case "Utils":
			utilsID = id
		}
	}

	rootMod := res.Modules[rootID]
	require.False(t, rootMod.Invalid, rootMod.InvalidReason)
	utilsMod := res.Modules[utilsID]
	require.False(t, utilsMod.Invalid, utilsMod.InvalidReason)

	resultID, ok := res.Headers[rootID].IdentIds.Get("result")
	require.True(t, ok)
	doubleID, ok := res.Headers[utilsID].IdentIds.Get("double")
	require.True(t, ok)

	assert.Equal(t, "Int", res.Solved[utilsID].Types[module.Symbol{Module: utilsID, Ident: doubleID}].String())
	assert.Equal(t, "Int", res.Solved[rootID].Types[module.Symbol{Module: rootID, Ident: resultID}].String())
}

func TestLoadDiamondImportSolvesThroughSharedDependency(t *testing.T) {
	// Root imports B and C; C also imports B. B must be discovered and
	// loaded exactly once (the orchestrator's loadingStarted set is keyed
	// by module ID, so a second discovery of B is a no-op) and solved before
	// either C or root needs its type.
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.loom")
	writeModule(t, dir, "root.loom", "interface Root exposes [result] imports [B.{bVal}, C.{cVal}]\nresult=cVal\n")
	writeModule(t, dir, "B.loom", "interface B exposes [bVal] imports []\nbVal=1\n")
	writeModule(t, dir, "C.loom", "interface C exposes [cVal] imports [B.{bVal}]\ncVal=bVal\n")

	res, err := Load(rootPath, dir, 2, nil)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Len(t, res.Modules, 3)

	ids := make(map[string]module.ID)
	for id, name := range res.Names {
		ids[name] = id
	}
	require.Len(t, ids, 3, "B must be discovered once, not once per importer")

	for _, name := range []string{"root", "B", "C"} {
		require.False(t, res.Modules[ids[name]].Invalid, "%s should have canonicalized cleanly", name)
	}

	bValID, ok := res.Headers[ids["B"]].IdentIds.Get("bVal")
	require.True(t, ok)
	cValID, ok := res.Headers[ids["C"]].IdentIds.Get("cVal")
	require.True(t, ok)
	resultID, ok := res.Headers[ids["root"]].IdentIds.Get("result")
	require.True(t, ok)

	assert.Equal(t, "Int", res.Solved[ids["B"]].Types[module.Symbol{Module: ids["B"], Ident: bValID}].String())
	assert.Equal(t, "Int", res.Solved[ids["C"]].Types[module.Symbol{Module: ids["C"], Ident: cValID}].String())
	assert.Equal(t, "Int", res.Solved[ids["root"]].Types[module.Symbol{Module: ids["root"], Ident: resultID}].String())
}

func TestLoadDetectsCyclicImports(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.loom")
	writeModule(t, dir, "root.loom", "interface Root exposes [] imports [A]\n")
	writeModule(t, dir, "A.loom", "interface A exposes [] imports [B]\n")
	writeModule(t, dir, "B.loom", "interface B exposes [] imports [A]\n")

	_, err := Load(rootPath, dir, 2, nil)
	require.Error(t, err)
	var cyc *CyclicImport
	require.ErrorAs(t, err, &cyc)
}

func TestLoadMissingImportFailsThatModuleOnly(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.loom")
	writeModule(t, dir, "root.loom", "interface Root exposes [] imports [Missing]\n")

	res, err := Load(rootPath, dir, 2, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Errors)

	var missingID module.ID
	for id, name := range res.Names {
		if name == "Missing" {
			missingID = id
		}
	}
	require.True(t, res.Modules[missingID].Invalid)
}
