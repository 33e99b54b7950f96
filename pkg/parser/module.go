package parser

import (
	"github.com/loomlang/loom/pkg/arena"
	"github.com/loomlang/loom/pkg/ast"
)

// ParseModule parses one full source file: a header followed by the
// module's top-level definitions. Unlike parseBody's let-style block, a
// module's top level never ends in a trailing expression — every
// declaration at column 1 is a sibling def, and the loader (§4.4)
// resolves which of them the header's Exposes list makes visible
// outside the module.
//
// The returned def slice is copied into one Arena scoped to this parse
// before it is handed back, so the whole module's top-level declaration
// list shares a single backing allocation that the loader can drop in
// one step once the module is canonicalized.
func ParseModule(src []byte) (*Header, []ast.Def, error) {
	header, afterHeader, err := ParseHeader(src)
	if err != nil {
		return nil, nil, err
	}
	defs, err := parseTopLevelDefs(afterHeader)
	if err != nil {
		return header, nil, err
	}
	a := &arena.Arena{}
	owned := arena.NewSlice[ast.Def](a, len(defs))
	copy(owned, defs)
	return header, owned, nil
}

// parseTopLevelDefs collects every sibling def at column 1 after the
// header, the same sibling-scanning discipline parseDefsBlock uses for
// nested blocks (§4.3), but with no trailing expression to parse.
func parseTopLevelDefs(s State) ([]ast.Def, error) {
	const topCol = 1
	var defs []ast.Def
	cur := s
	for {
		_, afterWS := ConsumeSpaces(cur, topCol)
		if afterWS.AtEOF() {
			break
		}
		if afterWS.Column != topCol {
			return nil, ErrOutdentedTooFar(afterWS.Pos())
		}
		def, afterDef, err := tryParseDef(afterWS, topCol)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return nil, newErr(KindEDef, afterWS.Pos(), "expected a top-level definition")
		}
		defs = append(defs, def)
		cur = afterDef
	}
	return fuseAnnotatedBodies(defs), nil
}
