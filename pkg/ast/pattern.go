package ast

import "github.com/loomlang/loom/pkg/region"

// Pattern is the sum type of pattern nodes (spec.md §3); each variant
// mirrors the Expr shape it may be derived from via ExprToPattern.
type Pattern interface {
	isPattern()
	PatternRegion() region.Region
}

type patternBase struct {
	Region region.Region
}

func (p patternBase) PatternRegion() region.Region { return p.Region }
func (patternBase) isPattern()                     {}

// PIdentifier binds a plain lowercase name.
type PIdentifier struct {
	patternBase
	Name string
}

// PQualified is a qualified identifier pattern (`Module.name`); spec.md §7
// marks annotating one of these as a NotYetImplemented case, but the
// pattern itself can still appear and be parsed.
type PQualified struct {
	patternBase
	ModuleName string
	Name       string
}

// PTag is a bare, argument-less tag pattern.
type PTag struct {
	patternBase
	Name    string
	Private bool
}

// PApply is an applied pattern: a tag or qualified identifier applied to
// sub-patterns, e.g. `Ok(value)` or `Pair(a, b)`.
type PApply struct {
	patternBase
	Func Pattern
	Args []Pattern
}

// PInt is an integer literal pattern.
type PInt struct {
	patternBase
	Text  string
	Value int64
}

// PFloat is a float literal pattern.
type PFloat struct {
	patternBase
	Text  string
	Value float64
}

// PStr is a string literal pattern.
type PStr struct {
	patternBase
	Value string
}

// PatternRecordField is one field of a record destructure pattern.
type PatternRecordField struct {
	Region  region.Region
	Label   string
	Pattern Pattern // nil for a bare `{ x, y }` shorthand field
}

// PRecordDestructure destructures a record.
type PRecordDestructure struct {
	patternBase
	Fields []PatternRecordField
}

// PRequiredField is `name: pattern` inside a record destructure.
type PRequiredField struct {
	patternBase
	Label   string
	Pattern Pattern
}

// POptionalField is `name ? default` inside a record destructure.
type POptionalField struct {
	patternBase
	Label   string
	Default Expr
}

// PUnderscore is the wildcard pattern `_`.
type PUnderscore struct {
	patternBase
}

// PMalformed marks a pattern position that failed to parse or convert.
type PMalformed struct {
	patternBase
	Reason string
}

func (*PIdentifier) isPattern()        {}
func (*PQualified) isPattern()         {}
func (*PTag) isPattern()               {}
func (*PApply) isPattern()             {}
func (*PInt) isPattern()               {}
func (*PFloat) isPattern()             {}
func (*PStr) isPattern()               {}
func (*PRecordDestructure) isPattern() {}
func (*PRequiredField) isPattern()     {}
func (*POptionalField) isPattern()     {}
func (*PUnderscore) isPattern()        {}
func (*PMalformed) isPattern()         {}

func NewPIdentifier(r region.Region, name string) *PIdentifier {
	return &PIdentifier{patternBase: patternBase{r}, Name: name}
}

func NewPQualified(r region.Region, moduleName, name string) *PQualified {
	return &PQualified{patternBase: patternBase{r}, ModuleName: moduleName, Name: name}
}

func NewPTag(r region.Region, name string, private bool) *PTag {
	return &PTag{patternBase: patternBase{r}, Name: name, Private: private}
}

func NewPApply(r region.Region, fn Pattern, args []Pattern) *PApply {
	return &PApply{patternBase: patternBase{r}, Func: fn, Args: args}
}

func NewPInt(r region.Region, text string, value int64) *PInt {
	return &PInt{patternBase: patternBase{r}, Text: text, Value: value}
}

func NewPFloat(r region.Region, text string, value float64) *PFloat {
	return &PFloat{patternBase: patternBase{r}, Text: text, Value: value}
}

func NewPStr(r region.Region, value string) *PStr {
	return &PStr{patternBase: patternBase{r}, Value: value}
}

func NewPRecordDestructure(r region.Region, fields []PatternRecordField) *PRecordDestructure {
	return &PRecordDestructure{patternBase: patternBase{r}, Fields: fields}
}

func NewPRequiredField(r region.Region, label string, pattern Pattern) *PRequiredField {
	return &PRequiredField{patternBase: patternBase{r}, Label: label, Pattern: pattern}
}

func NewPOptionalField(r region.Region, label string, def Expr) *POptionalField {
	return &POptionalField{patternBase: patternBase{r}, Label: label, Default: def}
}

func NewPUnderscore(r region.Region) *PUnderscore {
	return &PUnderscore{patternBase: patternBase{r}}
}

func NewPMalformed(r region.Region, reason string) *PMalformed {
	return &PMalformed{patternBase: patternBase{r}, Reason: reason}
}
