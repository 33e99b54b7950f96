package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathForJoinsDottedModuleName(t *testing.T) {
	r := NewResolver("/project/src")
	assert.Equal(t, filepath.Join("/project/src", "Foo", "Bar", "Baz")+".loom", r.PathFor("Foo.Bar.Baz"))
	assert.Equal(t, filepath.Join("/project/src", "Main")+".loom", r.PathFor("Main"))
}

func TestReadReturnsFileContents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Sub", "Mod.loom"), []byte("interface Sub.Mod exposes [] imports []\n"), 0644))

	r := NewResolver(dir)
	data, path, err := r.Read("Sub.Mod")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Sub", "Mod.loom"), path)
	assert.Contains(t, string(data), "interface Sub.Mod")
}

func TestReadMissingFileReturnsFileProblem(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)
	_, _, err := r.Read("Missing")

	var fp *FileProblem
	require.ErrorAs(t, err, &fp)
	assert.Equal(t, "Missing", fp.ModuleName)
	assert.ErrorIs(t, err, fp.Err)
}

func TestReadRootFileDerivesModuleNameFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.loom")
	require.NoError(t, os.WriteFile(path, []byte("interface Main exposes [] imports []\n"), 0644))

	data, name, err := ReadRootFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Main", name)
	assert.Contains(t, string(data), "interface Main")
}

func TestReadRootFileMissingReturnsFileProblem(t *testing.T) {
	_, _, err := ReadRootFile("/does/not/exist.loom")
	var fp *FileProblem
	require.ErrorAs(t, err, &fp)
}
