// Package source resolves dotted module names to filesystem paths and
// reads their bytes — the filesystem collaborator spec.md treats as given
// ("resolve module name to file path" is stated, not specified further).
//
// Grounded on MadAppGang/dingo's pkg/build/workspace.go, which walks a
// project root and maps package-ish names to file paths before handing
// them to the parser; this package narrows that to the one rule spec.md
// actually needs: a dotted module name like `Foo.Bar.Baz` lives at
// `<root>/Foo/Bar/Baz.loom`.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the source file suffix this front end recognizes, chosen
// during the spec expansion since spec.md never names one.
const Extension = ".loom"

// FileProblem reports why a module's source file could not be read —
// the error kind the loader surfaces up through Msg handling (spec.md
// §4.4's FileProblem, grounded on original_source/src/load/mod.rs's
// Msg::FailedToReadFile/FailedToParse).
type FileProblem struct {
	ModuleName string
	Path       string
	Err        error
}

func (e *FileProblem) Error() string {
	return fmt.Sprintf("cannot read module %q at %s: %v", e.ModuleName, e.Path, e.Err)
}

func (e *FileProblem) Unwrap() error { return e.Err }

// Resolver maps module names to file paths under one root directory.
type Resolver struct {
	Root string
}

// NewResolver creates a Resolver rooted at root.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root}
}

// PathFor returns the file path a dotted module name resolves to, without
// touching the filesystem.
func (r *Resolver) PathFor(moduleName string) string {
	parts := strings.Split(moduleName, ".")
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, r.Root)
	segments = append(segments, parts...)
	return filepath.Join(segments...) + Extension
}

// Read resolves moduleName to a path and reads its full contents.
func (r *Resolver) Read(moduleName string) ([]byte, string, error) {
	path := r.PathFor(moduleName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, &FileProblem{ModuleName: moduleName, Path: path, Err: err}
	}
	return data, path, nil
}

// ReadRootFile reads a file given directly by path (the entry point the
// user names on the command line), rather than resolved from a module
// name, returning the module name it implies from its filename.
func ReadRootFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &FileProblem{ModuleName: "", Path: path, Err: err}
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return data, name, nil
}
