package ast

import "github.com/loomlang/loom/pkg/region"

// Def is the sum type of definitions assembled by the Definition
// Coordinator (spec.md §3, §4.3).
type Def interface {
	isDef()
	DefRegion() region.Region
}

type defBase struct {
	Region region.Region
}

func (d defBase) DefRegion() region.Region { return d.Region }
func (defBase) isDef()                     {}

// DBody is a value/function binding: `pattern = expr`.
type DBody struct {
	defBase
	Pattern Pattern
	Expr    Expr
}

// DAnnotation is a standalone type annotation: `pattern : type`.
type DAnnotation struct {
	defBase
	Pattern Pattern
	Type    Expr
}

// DAnnotatedBody fuses an annotation with the body def that immediately
// follows it at the same column and with the same pattern label
// (spec.md §4.3's fusion rule). The parser's fusion step always sets
// Comment to ""; a comment between the annotation and the body is not
// kept.
type DAnnotatedBody struct {
	defBase
	AnnPattern  Pattern
	AnnType     Expr
	Comment     string
	BodyPattern Pattern
	BodyExpr    Expr
}

// DAlias is a type alias definition: `Name vars… : type`, recognised when
// the annotated pattern is a tag application.
type DAlias struct {
	defBase
	Name string
	Vars []string
	Type Expr
}

// DSpaceBefore/DSpaceAfter wrap a def with leading/trailing blank-line or
// comment decoration, mirroring spec.md's "space-wrappers" variant without
// forcing every consumer to special-case whitespace.
type DSpaceBefore struct {
	defBase
	Def      Def
	Comments []string
}

type DSpaceAfter struct {
	defBase
	Def      Def
	Comments []string
}

// DNotYetImplemented marks a recognised-but-unsupported definition shape,
// e.g. annotating a qualified identifier or a literal (spec.md §7).
type DNotYetImplemented struct {
	defBase
	Feature string
}

func (*DBody) isDef()               {}
func (*DAnnotation) isDef()         {}
func (*DAnnotatedBody) isDef()      {}
func (*DAlias) isDef()              {}
func (*DSpaceBefore) isDef()        {}
func (*DSpaceAfter) isDef()         {}
func (*DNotYetImplemented) isDef()  {}

func NewDBody(r region.Region, pattern Pattern, expr Expr) *DBody {
	return &DBody{defBase: defBase{r}, Pattern: pattern, Expr: expr}
}

func NewDAnnotation(r region.Region, pattern Pattern, typ Expr) *DAnnotation {
	return &DAnnotation{defBase: defBase{r}, Pattern: pattern, Type: typ}
}

func NewDAnnotatedBody(r region.Region, annPattern Pattern, annType Expr, comment string, bodyPattern Pattern, bodyExpr Expr) *DAnnotatedBody {
	return &DAnnotatedBody{
		defBase:     defBase{r},
		AnnPattern:  annPattern,
		AnnType:     annType,
		Comment:     comment,
		BodyPattern: bodyPattern,
		BodyExpr:    bodyExpr,
	}
}

func NewDAlias(r region.Region, name string, vars []string, typ Expr) *DAlias {
	return &DAlias{defBase: defBase{r}, Name: name, Vars: vars, Type: typ}
}

func NewDNotYetImplemented(r region.Region, feature string) *DNotYetImplemented {
	return &DNotYetImplemented{defBase: defBase{r}, Feature: feature}
}

// DefPattern returns the pattern a def introduces into its enclosing
// scope, used by the Definition Coordinator to check sibling column
// alignment and by canonicalization to know what each def binds.
func DefPattern(d Def) (Pattern, bool) {
	switch v := d.(type) {
	case *DBody:
		return v.Pattern, true
	case *DAnnotation:
		return v.Pattern, true
	case *DAnnotatedBody:
		return v.BodyPattern, true
	default:
		return nil, false
	}
}
