package module

import (
	"sort"

	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/region"
)

// ScopeEntry is one entry of a module's initial scope: the symbol an
// imported identifier resolves to, and the region of the import that
// brought it in (spec.md §3's Module Header shape).
type ScopeEntry struct {
	Symbol Symbol
	Region region.Region
}

// Header is the result of header-parsing one module (spec.md §3).
type Header struct {
	ModuleID     ID
	Name         string
	Imports      map[string]ID // imported module name -> its ID
	Exposed      []string      // identifiers this module exposes
	InitialScope map[string]ScopeEntry
	Source       []byte // owned source buffer, moved into canonicalization
	IdentIds     *IdentIds
}

// ImportNames returns the header's imported module names in a
// deterministic (sorted) order.
func (h *Header) ImportNames() []string {
	names := make([]string, 0, len(h.Imports))
	for name := range h.Imports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Module is the result of canonicalizing one module's body (spec.md §3):
// its declarations, which imports it actually exposes further, which of
// its own variables are exposed by symbol, and the set of symbols it
// references (used by the solver to know what it's waiting on).
type Module struct {
	ModuleID        ID
	Declarations    []ast.Def
	ExposedImports  map[string]ID
	ExposedVars     map[Symbol]region.Region
	SymbolRefs      map[Symbol]struct{}
	Invalid         bool   // set when canonicalization recovered from a failure
	InvalidReason   string
}

// ReferencedModules returns the distinct module IDs m's SymbolRefs point
// into, excluding itself — this is the module's solve-dependency set.
func (m *Module) ReferencedModules() []ID {
	seen := make(map[ID]struct{})
	var out []ID
	for sym := range m.SymbolRefs {
		if sym.Module == m.ModuleID {
			continue
		}
		if _, ok := seen[sym.Module]; ok {
			continue
		}
		seen[sym.Module] = struct{}{}
		out = append(out, sym.Module)
	}
	return out
}

// NewInvalid builds the recovery marker spec.md §9's open question names as
// the intended-but-unimplemented behavior for canonicalization failures:
// rather than aborting the whole session, the orchestrator substitutes
// this and continues other modules.
func NewInvalid(id ID, reason string) *Module {
	return &Module{
		ModuleID:      id,
		ExposedImports: map[string]ID{},
		ExposedVars:    map[Symbol]region.Region{},
		SymbolRefs:     map[Symbol]struct{}{},
		Invalid:        true,
		InvalidReason:  reason,
	}
}
