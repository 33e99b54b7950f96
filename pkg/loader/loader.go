// Package loader is the C5 collaborator spec.md names but leaves almost
// entirely to the implementation: "given a root file, load its module
// graph, resolving imports, concurrently." It is grounded on
// original_source/src/load/mod.rs's single event loop: one orchestrator
// goroutine is the sole reader of a Msg channel, workers read headers,
// parse+canonicalize, and solve independently, and a module only moves
// to its next stage once a per-module wait-set (waitingForHeaders /
// waitingForSolve) empties out — never a blocking join on another
// module's task.
package loader

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/loomlang/loom/pkg/builtin"
	"github.com/loomlang/loom/pkg/canonicalize"
	"github.com/loomlang/loom/pkg/constraint"
	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/parser"
	"github.com/loomlang/loom/pkg/region"
	"github.com/loomlang/loom/pkg/solve"
	"github.com/loomlang/loom/pkg/source"
)

// silentEntry is the logger a caller gets by passing nil to Load, so
// every log call site below can stay unconditional.
func silentEntry() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}

// Result is everything a load session produced: every module's header and
// canonicalized body, its solved types (when it solved), and the errors
// collected along the way. A module present in Modules but absent from
// Solved failed somewhere in the pipeline and is marked module.Invalid.
type Result struct {
	Headers map[module.ID]*module.Header
	Modules map[module.ID]*module.Module
	Solved  map[module.ID]solve.Solved
	Names   map[module.ID]string
	Errors  []error
}

// pendingHeader is a module whose header has been read and parsed but
// which is still waiting on one or more of its own imports' headers
// before it has everything it needs to build an InitialScope and move to
// parse-and-canonicalize.
type pendingHeader struct {
	header    *module.Header
	rawHeader *parser.Header
}

func builtinNames() []string {
	idents := builtin.Exposed()
	names := make([]string, len(idents))
	for i, id := range idents {
		names[i] = id.Name
	}
	return names
}

// headerWorker parses one module's already-read source into a header,
// then reports a MsgHeader or MsgFailed. It resolves each import name to
// a module.ID through shared, which is safe to call from many goroutines
// at once.
func headerWorker(id module.ID, name, path string, src []byte, shared *module.SharedModuleIds, msgCh chan<- Msg) {
	hdr, _, err := parser.ParseHeader(src)
	if err != nil {
		msgCh <- &MsgFailed{ModuleID: id, Reason: err.Error()}
		return
	}
	depsByName := make(map[string]module.ID, len(hdr.Imports))
	for _, imp := range hdr.Imports {
		depsByName[imp.ModuleName] = shared.GetOrInsert(imp.ModuleName)
	}
	identIds := module.NewIdentIds(builtinNames())
	for _, n := range hdr.Exposes {
		identIds.GetOrInsert(n)
	}
	msgCh <- &MsgHeader{
		ModuleID:   id,
		Name:       name,
		Path:       path,
		Source:     src,
		Header:     hdr,
		IdentIds:   identIds,
		DepsByName: depsByName,
	}
}

// constrainWorker parses a module's top-level defs and canonicalizes them
// against its already-built Header, then reports a MsgConstrained or
// MsgFailed.
func constrainWorker(id module.ID, hdr *module.Header, msgCh chan<- Msg) {
	_, defs, err := parser.ParseModule(hdr.Source)
	if err != nil {
		msgCh <- &MsgFailed{ModuleID: id, Reason: err.Error()}
		return
	}
	res := canonicalize.Canonicalize(id, hdr.IdentIds, hdr.InitialScope, defs)
	if res.Module.Invalid {
		msgCh <- &MsgFailed{ModuleID: id, Reason: res.Module.InvalidReason}
		return
	}
	msgCh <- &MsgConstrained{ModuleID: id, Module: res.Module, Constraint: res.Constraint, SymbolVars: res.Vars}
}

// solveWorker solves one module's constraint tree against the types
// already solved for the modules it references, then reports a MsgSolved.
func solveWorker(id module.ID, con constraint.Constraint, vars map[module.Symbol]int, externalTypes map[module.Symbol]constraint.Type, msgCh chan<- Msg) {
	solved := solve.Solve(con, vars, externalTypes)
	msgCh <- &MsgSolved{ModuleID: id, Types: solved.Types}
}

// buildInitialScope resolves a module's explicit `Module.{a, b}` import
// clauses against the already-known imported modules' IdentIds, assigning
// each imported name the stable module.Symbol its exporting module
// committed to when its own header was parsed. Bare imports (no `{ … }`
// clause) contribute no unqualified names — only qualified access, which
// this front end's minimal canonicalizer leaves unconstrained (see
// pkg/canonicalize's qualified-Var comment).
func buildInitialScope(rawHeader *parser.Header, depsByName map[string]module.ID, exposedIdentsByModule map[module.ID]*module.IdentIds) (map[string]module.ScopeEntry, error) {
	scope := make(map[string]module.ScopeEntry)
	for _, imp := range rawHeader.Imports {
		if len(imp.Idents) == 0 {
			continue
		}
		impID := depsByName[imp.ModuleName]
		impIdentIds, ok := exposedIdentsByModule[impID]
		if !ok {
			return nil, fmt.Errorf("cannot import from %q: module failed to load", imp.ModuleName)
		}
		for _, name := range imp.Idents {
			identID, ok := impIdentIds.Get(name)
			if !ok {
				return nil, fmt.Errorf("module %q does not expose %q", imp.ModuleName, name)
			}
			scope[name] = module.ScopeEntry{
				Symbol: module.Symbol{Module: impID, Ident: identID},
				Region: region.Region{},
			}
		}
	}
	return scope, nil
}

// Load reads rootPath and drives the whole module graph it (transitively)
// imports through one message-driven event loop: a single orchestrator
// goroutine owns every shared table and is the sole reader of msgCh;
// workers read files, parse headers, canonicalize, and solve
// independently and report back with exactly one Msg each. maxWorkers
// bounds how many workers run at once; values less than 1 are treated as
// 1. entry carries this session's correlation ID onto every log line
// (pkg/logx.WithSession); pass nil to log nothing.
func Load(rootPath, dir string, maxWorkers int, entry *log.Entry) (*Result, error) {
	if entry == nil {
		entry = silentEntry()
	}
	resolver := source.NewResolver(dir)
	moduleIds := module.NewModuleIds()

	rootData, rootName, err := source.ReadRootFile(rootPath)
	if err != nil {
		return nil, err
	}
	rootID := moduleIds.GetOrInsert(rootName)
	// From here on module IDs may be requested from multiple worker
	// goroutines at once (each resolving its own header's import names),
	// so the registry is handed over to its mutex-guarded wrapper before
	// the first worker is spawned.
	shared := moduleIds.AsShared()

	disp := newDispatcher(maxWorkers)
	bufSize := maxWorkers * 4
	if bufSize < 8 {
		bufSize = 8
	}
	msgCh := make(chan Msg, bufSize)

	graph := module.NewGraph()
	names := map[module.ID]string{rootID: rootName}
	loadingStarted := map[module.ID]bool{rootID: true}
	exposedIdentsByModule := map[module.ID]*module.IdentIds{}
	headersOut := map[module.ID]*module.Header{}
	pendingHeaders := map[module.ID]*pendingHeader{}

	waitingForHeaders := map[module.ID]map[module.ID]bool{}
	headerListeners := map[module.ID][]module.ID{}

	waitingForSolve := map[module.ID]map[module.ID]bool{}
	solveListeners := map[module.ID][]module.ID{}

	modules := map[module.ID]*module.Module{}
	constraints := map[module.ID]constraint.Constraint{}
	symbolVars := map[module.ID]map[module.Symbol]int{}
	solved := map[module.ID]solve.Solved{}

	var errs []error
	var cycleErr error
	aborting := false

	pending := 0

	// dispatchConstrain, dispatchSolve, failModule, notifyHeaderListeners
	// and notifySolveListeners call each other (a listener unblocking is
	// what lets the next stage dispatch), so each is declared before it's
	// assigned.
	var dispatchConstrain func(module.ID)
	var dispatchSolve func(module.ID)
	var failModule func(module.ID, string)
	var notifyHeaderListeners func(module.ID)
	var notifySolveListeners func(module.ID)

	dispatchConstrain = func(id module.ID) {
		ph := pendingHeaders[id]
		delete(pendingHeaders, id)
		scope, err := buildInitialScope(ph.rawHeader, ph.header.Imports, exposedIdentsByModule)
		if err != nil {
			failModule(id, err.Error())
			return
		}
		ph.header.InitialScope = scope
		headersOut[id] = ph.header
		hdr := ph.header
		pending++
		disp.Go(func() {
			constrainWorker(id, hdr, msgCh)
		})
	}

	dispatchSolve = func(id module.ID) {
		mod := modules[id]
		externalTypes := make(map[module.Symbol]constraint.Type)
		for _, dep := range mod.ReferencedModules() {
			if s, ok := solved[dep]; ok {
				for sym, t := range s.Types {
					externalTypes[sym] = t
				}
			}
		}
		con := constraints[id]
		vars := symbolVars[id]
		pending++
		disp.Go(func() {
			solveWorker(id, con, vars, externalTypes, msgCh)
		})
	}

	notifyHeaderListeners = func(id module.ID) {
		listeners := headerListeners[id]
		delete(headerListeners, id)
		for _, listenerID := range listeners {
			wf := waitingForHeaders[listenerID]
			delete(wf, id)
			if len(wf) == 0 {
				delete(waitingForHeaders, listenerID)
				if !aborting {
					dispatchConstrain(listenerID)
				}
			}
		}
	}

	notifySolveListeners = func(id module.ID) {
		listeners := solveListeners[id]
		delete(solveListeners, id)
		for _, listenerID := range listeners {
			wf := waitingForSolve[listenerID]
			delete(wf, id)
			if len(wf) == 0 {
				delete(waitingForSolve, listenerID)
				if !aborting {
					dispatchSolve(listenerID)
				}
			}
		}
	}

	failModule = func(id module.ID, reason string) {
		if _, ok := modules[id]; !ok || !modules[id].Invalid {
			modules[id] = module.NewInvalid(id, reason)
			errs = append(errs, &InternalError{ModuleID: id, Cause: fmt.Errorf("%s", reason)})
		}
		notifyHeaderListeners(id)
		notifySolveListeners(id)
	}

	pending++
	disp.Go(func() {
		headerWorker(rootID, rootName, rootPath, rootData, shared, msgCh)
	})

	for pending > 0 {
		msg, ok := <-msgCh
		if !ok {
			errs = append(errs, &MsgChannelDied{Pending: pending})
			break
		}
		pending--

		switch m := msg.(type) {
		case *MsgHeader:
			id := m.ModuleID
			names[id] = m.Name
			exposedIdentsByModule[id] = m.IdentIds
			// Any module already waiting on this one's header (it was
			// registered as a listener before this message arrived) can
			// now be unblocked; a listener can never register *after*
			// this point, since it would see exposedIdentsByModule[id]
			// already populated and skip waiting on id in the first
			// place.
			notifyHeaderListeners(id)

			for _, depID := range m.DepsByName {
				graph.AddImport(id, depID)
			}
			if !aborting && graph.HasCycle() {
				aborting = true
				cycles := graph.Cycles()
				cycleNames := make([]string, len(cycles[0]))
				for i, cid := range cycles[0] {
					cycleNames[i] = shared.Name(cid)
				}
				cycleErr = &CyclicImport{Cycle: cycleNames}
			}

			headersNeeded := map[module.ID]bool{}
			for _, depID := range m.DepsByName {
				if _, ok := exposedIdentsByModule[depID]; !ok {
					headersNeeded[depID] = true
				}
			}

			hdr := &module.Header{
				ModuleID: id,
				Name:     m.Name,
				Imports:  m.DepsByName,
				Exposed:  m.Header.Exposes,
				Source:   m.Source,
				IdentIds: m.IdentIds,
			}
			pendingHeaders[id] = &pendingHeader{header: hdr, rawHeader: m.Header}

			if !aborting {
				for depName, depID := range m.DepsByName {
					if loadingStarted[depID] {
						continue
					}
					loadingStarted[depID] = true
					names[depID] = depName
					depName, depID := depName, depID
					pending++
					disp.Go(func() {
						data, path, err := resolver.Read(depName)
						if err != nil {
							msgCh <- &MsgFailed{ModuleID: depID, Reason: err.Error()}
							return
						}
						headerWorker(depID, depName, path, data, shared, msgCh)
					})
				}
			}

			if len(headersNeeded) == 0 {
				if !aborting {
					dispatchConstrain(id)
				}
			} else {
				waitingForHeaders[id] = headersNeeded
				for depID := range headersNeeded {
					headerListeners[depID] = append(headerListeners[depID], id)
				}
			}

		case *MsgConstrained:
			modules[m.ModuleID] = m.Module
			constraints[m.ModuleID] = m.Constraint
			symbolVars[m.ModuleID] = m.SymbolVars

			waitFor := map[module.ID]bool{}
			for _, dep := range m.Module.ReferencedModules() {
				if _, ok := solved[dep]; ok {
					continue
				}
				if depMod, ok := modules[dep]; ok && depMod.Invalid {
					continue
				}
				waitFor[dep] = true
			}
			if len(waitFor) == 0 {
				if !aborting {
					dispatchSolve(m.ModuleID)
				}
			} else {
				waitingForSolve[m.ModuleID] = waitFor
				for dep := range waitFor {
					solveListeners[dep] = append(solveListeners[dep], m.ModuleID)
				}
			}

		case *MsgSolved:
			solved[m.ModuleID] = solve.Solved{Types: m.Types}
			notifySolveListeners(m.ModuleID)

		case *MsgFailed:
			failModule(m.ModuleID, m.Reason)
		}
	}

	if cycleErr != nil {
		entry.WithField("cycle", cycleErr.Error()).Error("cyclic module imports")
		return nil, cycleErr
	}

	entry.WithFields(log.Fields{"solved": len(solved), "errors": len(errs)}).Info("load session complete")

	return &Result{Headers: headersOut, Modules: modules, Solved: solved, Names: names, Errors: errs}, nil
}
