package loader

import (
	"fmt"
	"strings"

	"github.com/loomlang/loom/pkg/module"
)

// CyclicImport is raised when the dependency graph (pkg/module/graph.go),
// built incrementally as each module's header arrives, finds an import
// cycle, resolving spec.md §9's open question: cycles are detected as
// soon as they close rather than left to deadlock the load orchestrator.
type CyclicImport struct {
	Cycle []string // module names, in cycle order, closing back to the first
}

func (e *CyclicImport) Error() string {
	return fmt.Sprintf("cyclic module imports: %s", strings.Join(e.Cycle, " -> "))
}

// InternalError wraps an unexpected failure inside a worker goroutine —
// spec.md §9's unimplemented Err(runtime_error) branch, resolved here as:
// convert to a message and let the orchestrator mark the module invalid
// and continue, exactly like any other canonicalization failure.
type InternalError struct {
	ModuleID module.ID
	Cause    error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error loading module %d: %v", e.ModuleID, e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }

// MsgChannelDied is surfaced if the orchestrator's receive loop exits
// before every dispatched module has reported in — it should never
// happen in practice (every worker path sends exactly one Msg) and
// exists as a defensive diagnostic for "the impossible happened".
type MsgChannelDied struct {
	Pending int
}

func (e *MsgChannelDied) Error() string {
	return fmt.Sprintf("message channel closed with %d module(s) still pending", e.Pending)
}
