package loader

import (
	"github.com/loomlang/loom/pkg/constraint"
	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/parser"
)

// Msg is the single-consumer channel's message sum (spec.md §4.4),
// grounded on original_source/src/load/mod.rs's Msg enum (Msg::Header,
// Msg::Constrained, Msg::Solved). Every worker goroutine sends exactly
// one Msg before exiting; the orchestrator goroutine is the sole reader
// and owner of every shared table.
type Msg interface{ isMsg() }

type msgBase struct{}

func (msgBase) isMsg() {}

// MsgHeader reports that a module's header has been read and parsed, and
// carries everything the orchestrator needs to either dispatch its
// dependencies' own header loads or, once every dependency's header is
// already known, move straight on to parse-and-canonicalize
// (original_source's Msg::Header).
type MsgHeader struct {
	msgBase
	ModuleID   module.ID
	Name       string
	Path       string
	Source     []byte
	Header     *parser.Header
	IdentIds   *module.IdentIds
	DepsByName map[string]module.ID
}

// MsgConstrained reports that a module canonicalized and produced its
// constraint tree — the point at which the orchestrator can attempt to
// solve it, once every module it references has already solved
// (original_source's Msg::Constrained).
type MsgConstrained struct {
	msgBase
	ModuleID   module.ID
	Module     *module.Module
	Constraint constraint.Constraint
	SymbolVars map[module.Symbol]int
}

// MsgSolved reports that a module's constraint tree has been solved,
// unblocking any listener waiting on it for its own solve
// (original_source's Msg::Solved).
type MsgSolved struct {
	msgBase
	ModuleID module.ID
	Types    map[module.Symbol]constraint.Type
}

// MsgFailed reports that a module could not be read, parsed, or
// canonicalized. The orchestrator resolves this the way spec.md §9's
// open question intends: substitute an invalid module and continue,
// rather than aborting the whole session.
type MsgFailed struct {
	msgBase
	ModuleID module.ID
	Reason   string
}
