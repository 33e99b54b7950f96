// Package builtin is the "low-level builtin enumeration" collaborator
// spec.md treats as out of scope beyond its interface: a fixed table of
// exposed identifiers every module's IdentIds table is seeded with.
//
// Grounded on original_source/compiler/module/src/low_level.rs's LowLevel
// enum — that file enumerates primitives the real compiler lowers straight
// to machine instructions; this package collapses the same surface to the
// dotted names user code actually writes (`Num.add`, `Str.concat`, …)
// rather than modeling code generation, since code generation is out of
// scope (spec.md §1 Non-goals).
package builtin

// Ident is one exposed builtin identifier: its dotted name and whether it
// is higher-order (its signature takes a function argument), mirroring
// low_level.rs's LowLevel::is_higher_order distinction.
type Ident struct {
	Name         string
	HigherOrder  bool
}

var table = []Ident{
	{Name: "Str.concat"},
	{Name: "Str.joinWith"},
	{Name: "Str.isEmpty"},
	{Name: "Str.startsWith"},
	{Name: "Str.endsWith"},
	{Name: "Str.split"},
	{Name: "Str.countGraphemes"},
	{Name: "Str.fromInt"},
	{Name: "Str.fromFloat"},
	{Name: "Str.toBytes"},

	{Name: "List.len"},
	{Name: "List.get"},
	{Name: "List.set"},
	{Name: "List.single"},
	{Name: "List.repeat"},
	{Name: "List.reverse"},
	{Name: "List.concat"},
	{Name: "List.contains"},
	{Name: "List.append"},
	{Name: "List.prepend"},
	{Name: "List.join"},
	{Name: "List.range"},
	{Name: "List.drop"},
	{Name: "List.map", HigherOrder: true},
	{Name: "List.map2", HigherOrder: true},
	{Name: "List.mapWithIndex", HigherOrder: true},
	{Name: "List.keepIf", HigherOrder: true},
	{Name: "List.walk", HigherOrder: true},
	{Name: "List.sortWith", HigherOrder: true},

	{Name: "Num.add"},
	{Name: "Num.sub"},
	{Name: "Num.mul"},
	{Name: "Num.gt"},
	{Name: "Num.gte"},
	{Name: "Num.lt"},
	{Name: "Num.lte"},
	{Name: "Num.compare"},
	{Name: "Num.abs"},
	{Name: "Num.neg"},
	{Name: "Num.round"},
	{Name: "Num.toFloat"},
	{Name: "Num.isFinite"},

	{Name: "Bool.and"},
	{Name: "Bool.or"},
	{Name: "Bool.not"},
}

// Exposed returns the builtin identifiers whose names the loader interns
// into every module's IdentIds table. They are not entries of
// module.Header.InitialScope.
func Exposed() []Ident {
	out := make([]Ident, len(table))
	copy(out, table)
	return out
}

// Lookup reports whether name is a known builtin, and its metadata.
func Lookup(name string) (Ident, bool) {
	for _, id := range table {
		if id.Name == name {
			return id, true
		}
	}
	return Ident{}, false
}
