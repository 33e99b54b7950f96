// Package canonicalize is the C2 collaborator spec.md names but leaves
// unspecified beyond its interface: "resolve identifiers to symbols,
// build the module's declaration list, emit a constraint for the solver."
// It walks one module's parsed ast.Defs, resolves every bound and
// referenced identifier to a module.Symbol, and emits the
// constraint.Constraint tree pkg/solve consumes.
//
// Grounded on the shape of original_source/src/load/mod.rs's
// canonicalize_and_constrain step (it calls out to a canonicalize/solve
// pair exactly where this package sits in the pipeline) and on
// MadAppGang/dingo's pkg/build package, which resolves identifiers against
// a workspace-wide symbol table the same way scope here resolves against
// a module's InitialScope.
package canonicalize

import (
	"fmt"

	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/constraint"
	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/region"
)

// Result is one module's canonicalization output: its Module record plus
// the constraint to hand the solver. A failed canonicalization still
// returns a Result, with Module.Invalid set (spec.md §9's recovery
// decision), so the loader can keep the rest of the session moving.
type Result struct {
	Module     *module.Module
	Constraint constraint.Constraint
	// Vars maps each symbol this module declares to the constraint
	// variable number its Eq constraint resolves — pkg/solve's entry
	// point for reading back a solved type per declaration.
	Vars map[module.Symbol]int
}

// scope tracks identifier -> symbol bindings visible at a point in the
// walk: the module's InitialScope (its explicit `Module.{a, b}` imports;
// builtin names are not added to it) plus whatever
// this module's own top-level defs and any enclosing nested defs add.
type scope struct {
	parent *scope
	names  map[string]module.Symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]module.Symbol)}
}

func (s *scope) lookup(name string) (module.Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym, true
		}
	}
	return module.Symbol{}, false
}

func (s *scope) bind(name string, sym module.Symbol) {
	s.names[name] = sym
}

// canonicalizer holds the per-module state threaded through the walk.
type canonicalizer struct {
	moduleID   module.ID
	identIds   *module.IdentIds
	vars       *constraint.VarStore
	symbolRefs map[module.Symbol]struct{}
	symbolVars map[module.Symbol]int
	invalid    bool
	reason     string
}

// Canonicalize turns one module's parsed definitions and header-derived
// initial scope into a Result. defs is the top-level Defs block the
// Definition Coordinator produced for the whole file.
func Canonicalize(id module.ID, identIds *module.IdentIds, initialScope map[string]module.ScopeEntry, defs []ast.Def) Result {
	c := &canonicalizer{
		moduleID:   id,
		identIds:   identIds,
		vars:       constraint.NewVarStore(),
		symbolRefs: make(map[module.Symbol]struct{}),
		symbolVars: make(map[module.Symbol]int),
	}

	root := newScope(nil)
	for name, entry := range initialScope {
		root.bind(name, entry.Symbol)
	}

	// Two-pass per spec.md §4.3: every sibling def's pattern is bound
	// into scope before any def's body is walked, so mutually-recursive
	// and out-of-order references resolve.
	declScope := newScope(root)
	for _, d := range defs {
		c.predeclare(declScope, d)
	}

	var constraints []constraint.Constraint
	var decls []ast.Def
	for _, d := range defs {
		con := c.canonicalizeDef(declScope, d)
		if con != nil {
			constraints = append(constraints, con)
		}
		decls = append(decls, d)
	}

	exposedVars := make(map[module.Symbol]region.Region)
	for _, d := range defs {
		if pat, ok := ast.DefPattern(d); ok {
			if ident, ok := pat.(*ast.PIdentifier); ok {
				if sym, ok := declScope.lookup(ident.Name); ok && sym.Module == id {
					exposedVars[sym] = ident.PatternRegion()
				}
			}
		}
	}

	mod := &module.Module{
		ModuleID:       id,
		Declarations:   decls,
		ExposedImports: map[string]module.ID{},
		ExposedVars:    exposedVars,
		SymbolRefs:     c.symbolRefs,
		Invalid:        c.invalid,
		InvalidReason:  c.reason,
	}

	var top constraint.Constraint = constraint.True{}
	if len(constraints) > 0 {
		top = constraint.And{Constraints: constraints}
	}

	if c.invalid {
		return Result{Module: module.NewInvalid(id, c.reason), Constraint: constraint.True{}, Vars: c.symbolVars}
	}
	return Result{Module: mod, Constraint: top, Vars: c.symbolVars}
}

// predeclare assigns a symbol for every name a def's pattern binds, before
// any bodies are walked, implementing the mutual-recursion guarantee.
func (c *canonicalizer) predeclare(s *scope, d ast.Def) {
	switch v := d.(type) {
	case *ast.DBody:
		c.bindPattern(s, v.Pattern)
	case *ast.DAnnotation:
		// An annotation alone introduces no new binding beyond what its
		// paired DBody (if any) will; nothing to predeclare.
	case *ast.DAnnotatedBody:
		c.bindPattern(s, v.BodyPattern)
	case *ast.DAlias:
		// Type aliases live in a separate namespace from value bindings;
		// out of scope for the minimal solver (spec.md §5 notes type
		// aliases are recognized syntactically but not solved).
	case *ast.DSpaceBefore:
		c.predeclare(s, v.Def)
	case *ast.DSpaceAfter:
		c.predeclare(s, v.Def)
	case *ast.DNotYetImplemented:
		// nothing to bind
	}
}

// bindPattern assigns fresh symbols for every identifier a pattern
// introduces. Only the plain-identifier case produces a bindable name at
// the top level; destructuring patterns bind their own sub-identifiers.
func (c *canonicalizer) bindPattern(s *scope, pat ast.Pattern) {
	switch p := pat.(type) {
	case *ast.PIdentifier:
		id := c.identIds.GetOrInsert(p.Name)
		sym := module.Symbol{Module: c.moduleID, Ident: id}
		s.bind(p.Name, sym)
		c.symbolVars[sym] = c.vars.Fresh()
	case *ast.PUnderscore:
		// binds nothing
	case *ast.PRecordDestructure:
		for _, f := range p.Fields {
			if f.Pattern != nil {
				c.bindPattern(s, f.Pattern)
			} else {
				id := c.identIds.GetOrInsert(f.Label)
				sym := module.Symbol{Module: c.moduleID, Ident: id}
				s.bind(f.Label, sym)
				c.symbolVars[sym] = c.vars.Fresh()
			}
		}
	case *ast.PApply:
		for _, arg := range p.Args {
			c.bindPattern(s, arg)
		}
	}
}

// canonicalizeDef walks one def, returning the constraint it contributes.
func (c *canonicalizer) canonicalizeDef(s *scope, d ast.Def) constraint.Constraint {
	switch v := d.(type) {
	case *ast.DBody:
		return c.canonicalizeBody(s, v.Pattern, v.Expr, v.DefRegion())
	case *ast.DAnnotation:
		return c.canonicalizeAnnotationOnly(v.Pattern, v.DefRegion())
	case *ast.DAnnotatedBody:
		return c.canonicalizeBody(s, v.BodyPattern, v.BodyExpr, v.DefRegion())
	case *ast.DAlias:
		return constraint.True{}
	case *ast.DSpaceBefore:
		return c.canonicalizeDef(s, v.Def)
	case *ast.DSpaceAfter:
		return c.canonicalizeDef(s, v.Def)
	case *ast.DNotYetImplemented:
		return constraint.True{}
	default:
		c.fail(fmt.Sprintf("unrecognized def variant %T", d))
		return constraint.True{}
	}
}

// canonicalizeAnnotationOnly returns True for every standalone
// annotation. An annotation on anything but a plain identifier is not
// reported or recorded: no error, no invalid marker, no placeholder.
func (c *canonicalizer) canonicalizeAnnotationOnly(pat ast.Pattern, r region.Region) constraint.Constraint {
	if _, ok := pat.(*ast.PIdentifier); !ok {
		return constraint.True{}
	}
	return constraint.True{}
}

// canonicalizeBody resolves pattern's symbol (already predeclared),
// canonicalizes expr for its referenced symbols, and emits an Eq
// constraint tying the bound variable to whatever type expr turns out to
// have, sufficient for spec.md §8 scenario 1's let-chain.
func (c *canonicalizer) canonicalizeBody(s *scope, pat ast.Pattern, expr ast.Expr, r region.Region) constraint.Constraint {
	_ = r
	v := c.vars.Fresh()
	if ident, ok := pat.(*ast.PIdentifier); ok {
		if sym, ok := s.lookup(ident.Name); ok {
			if predeclared, ok := c.symbolVars[sym]; ok {
				v = predeclared
			}
		}
	}
	return c.canonicalizeExpr(s, expr, v)
}

// canonicalizeExpr walks expr, recording every Var reference it resolves
// into symbolRefs, and returns the constraint binding targetVar to expr's
// contribution (a literal's concrete type, or a Lookup against a
// referenced symbol).
func (c *canonicalizer) canonicalizeExpr(s *scope, expr ast.Expr, targetVar int) constraint.Constraint {
	switch e := expr.(type) {
	case *ast.Int:
		return constraint.Eq{Var: targetVar, Type: constraint.Int(), Region: e.ExprRegion()}
	case *ast.Float:
		return constraint.Eq{Var: targetVar, Type: constraint.Float(), Region: e.ExprRegion()}
	case *ast.NonBase10Int:
		return constraint.Eq{Var: targetVar, Type: constraint.Int(), Region: e.ExprRegion()}
	case *ast.Str:
		return constraint.Eq{Var: targetVar, Type: constraint.Str(), Region: e.ExprRegion()}
	case *ast.List:
		var cons []constraint.Constraint
		for _, item := range e.Items {
			iv := c.vars.Fresh()
			cons = append(cons, c.canonicalizeExpr(s, item, iv))
		}
		return constraint.And{Constraints: cons}
	case *ast.Var:
		if e.ModuleName != "" {
			// Qualified references are recognized but not resolved by
			// this minimal solver (spec.md §7 NotYetImplemented list).
			return constraint.True{}
		}
		sym, ok := s.lookup(e.Name)
		if !ok {
			c.fail(fmt.Sprintf("unresolved identifier %q", e.Name))
			return constraint.True{}
		}
		c.symbolRefs[sym] = struct{}{}
		return constraint.Lookup{Symbol: sym, Var: targetVar, Region: e.ExprRegion()}
	case *ast.ParensAround:
		return c.canonicalizeExpr(s, e.Inner, targetVar)
	case *ast.Nested:
		return c.canonicalizeExpr(s, e.Inner, targetVar)
	case *ast.Defs:
		return c.canonicalizeNestedDefs(s, e, targetVar)
	case *ast.BinOp, *ast.UnaryOp, *ast.Apply, *ast.If, *ast.When, *ast.Closure,
		*ast.Access, *ast.AccessorFunction, *ast.Record, *ast.Tag:
		// These forms are parsed in full but their type contribution is
		// left unconstrained: a complete solver would need operator
		// signatures, branch-unification, and row polymorphism this
		// minimal pass intentionally doesn't implement (spec.md §5).
		return constraint.True{}
	case *ast.Malformed:
		c.fail(e.Reason)
		return constraint.True{}
	default:
		c.fail(fmt.Sprintf("unrecognized expr variant %T", expr))
		return constraint.True{}
	}
}

// canonicalizeNestedDefs handles a let-block nested inside an expression
// position: its own sibling defs get predeclared into a child scope, then
// its final expression is canonicalized against targetVar.
func (c *canonicalizer) canonicalizeNestedDefs(s *scope, d *ast.Defs, targetVar int) constraint.Constraint {
	child := newScope(s)
	for _, def := range d.Defs {
		c.predeclare(child, def)
	}
	var cons []constraint.Constraint
	for _, def := range d.Defs {
		if con := c.canonicalizeDef(child, def); con != nil {
			cons = append(cons, con)
		}
	}
	cons = append(cons, c.canonicalizeExpr(child, d.Final, targetVar))
	return constraint.And{Constraints: cons}
}

func (c *canonicalizer) fail(reason string) {
	if !c.invalid {
		c.invalid = true
		c.reason = reason
	}
}
