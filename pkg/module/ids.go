// Package module implements the Shared Module Registry (spec.md §4.5, C6)
// and the Module/Header data model (spec.md §3).
package module

import "sync"

// ID is a dense integer identifying a module by name, stable for the
// entire load session once assigned (spec.md §3 invariants).
type ID int

// IdentID is a dense integer identifying an identifier string within one
// module's IdentIds table.
type IdentID int

// Symbol packs (module, ident) into a single globally unique, comparable
// identifier — usable directly as a map key, matching spec.md §4.5.
type Symbol struct {
	Module ID
	Ident  IdentID
}

// ModuleIds interns module-name -> ID. The zero value is ready to use in
// single-owner mode; call AsShared to get a mutex-guarded wrapper once
// worker goroutines are spawned (spec.md §4.5 and §9's MaybeShared note).
type ModuleIds struct {
	byName []string
	ids    map[string]ID
}

// NewModuleIds creates an empty, single-owner registry.
func NewModuleIds() *ModuleIds {
	return &ModuleIds{ids: make(map[string]ID)}
}

// GetOrInsert is the only mutation: it returns the existing ID for name,
// or assigns and returns a fresh one.
func (m *ModuleIds) GetOrInsert(name string) ID {
	if id, ok := m.ids[name]; ok {
		return id
	}
	id := ID(len(m.byName))
	m.byName = append(m.byName, name)
	m.ids[name] = id
	return id
}

// Name returns the module name for id; panics if id is out of range,
// which would indicate a registry bug (every ID handed out is valid for
// the lifetime of the session per spec.md §3's invariants).
func (m *ModuleIds) Name(id ID) string {
	return m.byName[id]
}

// Len reports how many modules have been interned so far.
func (m *ModuleIds) Len() int {
	return len(m.byName)
}

// SharedModuleIds is the mutex-guarded wrapper used once workers are
// spawned; the root file is always loaded single-owner first (spec.md
// §4.4/§9), so there is never lock contention before the first worker
// starts.
type SharedModuleIds struct {
	mu    sync.Mutex
	inner *ModuleIds
}

// AsShared adopts an existing single-owner ModuleIds into a shared,
// mutex-guarded one. Call this exactly once, after the root module's ID
// has been assigned and before any worker goroutine is spawned.
func (m *ModuleIds) AsShared() *SharedModuleIds {
	return &SharedModuleIds{inner: m}
}

func (s *SharedModuleIds) GetOrInsert(name string) ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.GetOrInsert(name)
}

func (s *SharedModuleIds) Name(id ID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Name(id)
}

func (s *SharedModuleIds) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Len()
}

// IdentIds interns identifier text to IdentID within one module. Each
// module owns its own IdentIds; the loader creates one per module as its
// header is parsed.
type IdentIds struct {
	byText []string
	ids    map[string]IdentID
}

// NewIdentIds creates an IdentIds table seeded with the given builtin
// names (exposed_builtins(), spec.md §4.5), so references to them resolve
// to stable IdentIDs from the start.
func NewIdentIds(builtinNames []string) *IdentIds {
	ii := &IdentIds{ids: make(map[string]IdentID, len(builtinNames))}
	for _, name := range builtinNames {
		ii.GetOrInsert(name)
	}
	return ii
}

// GetOrInsert is the only mutation.
func (ii *IdentIds) GetOrInsert(text string) IdentID {
	if id, ok := ii.ids[text]; ok {
		return id
	}
	id := IdentID(len(ii.byText))
	ii.byText = append(ii.byText, text)
	ii.ids[text] = id
	return id
}

// Get looks up an already-interned identifier without inserting.
func (ii *IdentIds) Get(text string) (IdentID, bool) {
	id, ok := ii.ids[text]
	return id, ok
}

// Text returns the identifier string for id.
func (ii *IdentIds) Text(id IdentID) string {
	return ii.byText[id]
}
