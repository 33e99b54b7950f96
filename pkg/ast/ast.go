// Package ast defines the located abstract syntax tree produced by
// pkg/parser. Every node carries its own region.Region; nodes are sum
// types modeled as small sealed interfaces (an unexported marker method)
// over concrete struct variants, the same shape the teacher repository
// uses for its own go/ast extensions (see MadAppGang/dingo's
// ast.DingoNode marker interface) — except here every variant is our own,
// not a go/ast passthrough, because this language's AST has no Go
// equivalent to borrow.
//
// Nodes must not be mutated after construction. ParseModule copies the
// top-level declaration list it returns into one pkg/arena.Arena scoped to
// that parse, so a module's whole declaration set can be dropped in one
// step once it is no longer needed.
package ast

import "github.com/loomlang/loom/pkg/region"

// NumBase identifies how an integer literal's digits were written.
type NumBase int

const (
	Base10 NumBase = iota
	Base16
	Base8
	Base2
)

// CallStyle distinguishes normal function application from operator-like
// application forms; kept as a field on Apply rather than a separate node
// so canonicalization can treat them uniformly.
type CallStyle int

const (
	CallParens CallStyle = iota // f(a, b) surfaced from parenthesized follow-up
	CallSpace                   // f a b, the common case
)

// UnaryOpKind enumerates the two unary operators (§4.2.2).
type UnaryOpKind int

const (
	UnaryNot UnaryOpKind = iota
	UnaryNegate
)

// BinOpKind enumerates the binary operators recognised by §4.2.4. The
// grammar's longest-match-first try order is binOpOrder in
// pkg/parser/operator.go, not this enum order.
type BinOpKind int

const (
	OpPizza     BinOpKind = iota // |>
	OpEquals                     // ==
	OpNotEquals                  // !=
	OpAnd                        // &&
	OpOr                         // ||
	OpPlus                       // +
	OpStar                       // *
	OpMinus                      // -
	OpDoubleSlash                // //
	OpSlash                      // /
	OpLessEq                     // <=
	OpLess                       // <
	OpGreaterEq                  // >=
	OpGreater                    // >
	OpCaret                      // ^
	OpDoublePercent               // %%
	OpPercent                    // %
)

// BinOpText is the canonical textual form of each operator. The grammar
// scans its own table (binOpOrder in pkg/parser/operator.go) rather than
// this map.
var BinOpText = map[BinOpKind]string{
	OpPizza:        "|>",
	OpEquals:       "==",
	OpNotEquals:    "!=",
	OpAnd:          "&&",
	OpOr:           "||",
	OpPlus:         "+",
	OpStar:         "*",
	OpMinus:        "-",
	OpDoubleSlash:  "//",
	OpSlash:        "/",
	OpLessEq:       "<=",
	OpLess:         "<",
	OpGreaterEq:    ">=",
	OpGreater:      ">",
	OpCaret:        "^",
	OpDoublePercent: "%%",
	OpPercent:      "%",
}

// Expr is the sum type of expression nodes (spec.md §3).
type Expr interface {
	isExpr()
	ExprRegion() region.Region
}

type exprBase struct {
	Region region.Region
}

func (e exprBase) ExprRegion() region.Region { return e.Region }
func (exprBase) isExpr()                     {}

// Var is a plain lowercase identifier access, optionally qualified by a
// module name (`Module.value`).
type Var struct {
	exprBase
	ModuleName string // empty when unqualified
	Name       string
}

// Tag is an uppercase tag reference, global or private (`@Tag`).
type Tag struct {
	exprBase
	Name    string
	Private bool
}

// Int is a base-10 integer literal.
type Int struct {
	exprBase
	Text  string
	Value int64
}

// Float is a floating point literal (`.` or exponent present).
type Float struct {
	exprBase
	Text  string
	Value float64
}

// NonBase10Int is a hex/octal/binary integer literal, optionally signed.
type NonBase10Int struct {
	exprBase
	Text       string
	Value      int64
	Base       NumBase
	IsNegative bool
}

// Str is a string literal.
type Str struct {
	exprBase
	Value string
}

// List is a list literal.
type List struct {
	exprBase
	Items []Expr
}

// RecordField is one field of a record literal or record pattern.
// Exactly one of Value/Optional applies at a time: a label-only field has
// Value == nil and Optional == false.
type RecordField struct {
	Region   region.Region
	Label    string
	Value    Expr // nil for a label-only field (`{ name }`)
	Optional bool // `name ? expr`
}

// Record is a record literal, optionally an update (`{ expr & field, … }`).
type Record struct {
	exprBase
	Update           Expr // nil unless this is an update record
	Fields           []RecordField
	TrailingComments []string
}

// ParensAround wraps a parenthesized expression that was not reinterpreted
// as arguments, an access chain, or a pattern binding (§4.2.1).
type ParensAround struct {
	exprBase
	Inner Expr
}

// AccessorFunction is the `.field` accessor-as-function form.
type AccessorFunction struct {
	exprBase
	Field string
}

// Access is a field access, left-associative (`a.b.c` = `(a.b).c`).
type Access struct {
	exprBase
	Target Expr
	Field  string
}

// Apply is function application with a non-empty argument slice.
type Apply struct {
	exprBase
	Func  Expr
	Args  []Expr
	Style CallStyle
}

// UnaryOp is a prefix unary operator expression.
type UnaryOp struct {
	exprBase
	Op      UnaryOpKind
	Operand Expr
}

// BinOp is a flat left/operator/right triple; precedence is a collaborator
// concern (spec.md §4.2.4), not resolved here.
type BinOp struct {
	exprBase
	Left  Expr
	Op    BinOpKind
	Right Expr
}

// Closure is `\ pat, pat -> body`.
type Closure struct {
	exprBase
	Params []Pattern
	Body   Expr
}

// IfBranch is one (condition, then-branch) pair of an If expression.
type IfBranch struct {
	Cond Expr
	Then Expr
}

// If is `if cond then expr else …`, possibly chained (§4.2.7).
type If struct {
	exprBase
	Branches []IfBranch
	Else     Expr
}

// WhenBranch is one branch of a When expression (spec.md §3).
type WhenBranch struct {
	Region   region.Region
	Patterns []Pattern // non-empty; `|`-separated alternatives
	Guard    Expr      // nil when no `if <guard>` present
	Body     Expr
}

// When is `when scrutinee is branch…` (§4.2.6).
type When struct {
	exprBase
	Scrutinee Expr
	Branches  []WhenBranch
}

// Defs is a block of sibling definitions plus a trailing expression
// (§4.3). The trailing expression may itself be a Defs when the source
// nests further blocks.
type Defs struct {
	exprBase
	Defs  []Def
	Final Expr
}

// Nested wraps an expression that appeared as a parenthesized or indented
// sub-block distinct from ParensAround (e.g. the body of a when/if branch
// captured as its own located unit for error reporting).
type Nested struct {
	exprBase
	Inner Expr
}

// Malformed marks a location where parsing gave up but committed progress,
// carrying the reason so callers can still produce a located error.
type Malformed struct {
	exprBase
	Reason string
}

func (*Var) isExpr()              {}
func (*Tag) isExpr()              {}
func (*Int) isExpr()              {}
func (*Float) isExpr()            {}
func (*NonBase10Int) isExpr()     {}
func (*Str) isExpr()              {}
func (*List) isExpr()             {}
func (*Record) isExpr()           {}
func (*ParensAround) isExpr()     {}
func (*AccessorFunction) isExpr() {}
func (*Access) isExpr()           {}
func (*Apply) isExpr()            {}
func (*UnaryOp) isExpr()          {}
func (*BinOp) isExpr()            {}
func (*Closure) isExpr()          {}
func (*If) isExpr()               {}
func (*When) isExpr()             {}
func (*Defs) isExpr()             {}
func (*Nested) isExpr()           {}
func (*Malformed) isExpr()        {}

// NewVar etc. below are small located constructors used by the grammar;
// they exist so grammar code reads as `ast.NewVar(r, name)` rather than
// repeating the embedded-field literal everywhere.

func NewVar(r region.Region, moduleName, name string) *Var {
	return &Var{exprBase: exprBase{r}, ModuleName: moduleName, Name: name}
}

func NewTag(r region.Region, name string, private bool) *Tag {
	return &Tag{exprBase: exprBase{r}, Name: name, Private: private}
}

func NewInt(r region.Region, text string, value int64) *Int {
	return &Int{exprBase: exprBase{r}, Text: text, Value: value}
}

func NewFloat(r region.Region, text string, value float64) *Float {
	return &Float{exprBase: exprBase{r}, Text: text, Value: value}
}

func NewNonBase10Int(r region.Region, text string, value int64, base NumBase, negative bool) *NonBase10Int {
	return &NonBase10Int{exprBase: exprBase{r}, Text: text, Value: value, Base: base, IsNegative: negative}
}

func NewStr(r region.Region, value string) *Str {
	return &Str{exprBase: exprBase{r}, Value: value}
}

func NewList(r region.Region, items []Expr) *List {
	return &List{exprBase: exprBase{r}, Items: items}
}

func NewRecord(r region.Region, update Expr, fields []RecordField, trailingComments []string) *Record {
	return &Record{exprBase: exprBase{r}, Update: update, Fields: fields, TrailingComments: trailingComments}
}

func NewParensAround(r region.Region, inner Expr) *ParensAround {
	return &ParensAround{exprBase: exprBase{r}, Inner: inner}
}

func NewAccessorFunction(r region.Region, field string) *AccessorFunction {
	return &AccessorFunction{exprBase: exprBase{r}, Field: field}
}

func NewAccess(r region.Region, target Expr, field string) *Access {
	return &Access{exprBase: exprBase{r}, Target: target, Field: field}
}

func NewApply(r region.Region, fn Expr, args []Expr, style CallStyle) *Apply {
	return &Apply{exprBase: exprBase{r}, Func: fn, Args: args, Style: style}
}

func NewUnaryOp(r region.Region, op UnaryOpKind, operand Expr) *UnaryOp {
	return &UnaryOp{exprBase: exprBase{r}, Op: op, Operand: operand}
}

func NewBinOp(r region.Region, left Expr, op BinOpKind, right Expr) *BinOp {
	return &BinOp{exprBase: exprBase{r}, Left: left, Op: op, Right: right}
}

func NewClosure(r region.Region, params []Pattern, body Expr) *Closure {
	return &Closure{exprBase: exprBase{r}, Params: params, Body: body}
}

func NewIf(r region.Region, branches []IfBranch, els Expr) *If {
	return &If{exprBase: exprBase{r}, Branches: branches, Else: els}
}

func NewWhen(r region.Region, scrutinee Expr, branches []WhenBranch) *When {
	return &When{exprBase: exprBase{r}, Scrutinee: scrutinee, Branches: branches}
}

func NewDefs(r region.Region, defs []Def, final Expr) *Defs {
	return &Defs{exprBase: exprBase{r}, Defs: defs, Final: final}
}

func NewNested(r region.Region, inner Expr) *Nested {
	return &Nested{exprBase: exprBase{r}, Inner: inner}
}

func NewMalformed(r region.Region, reason string) *Malformed {
	return &Malformed{exprBase: exprBase{r}, Reason: reason}
}
