package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomlang/loom/pkg/ast"
)

func mustParseBody(t *testing.T, src string) ast.Expr {
	t.Helper()
	_, expr, _, err := parseBody(NewState([]byte(src)), 1)
	require.NoError(t, err)
	return expr
}

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	_, expr, _, err := parseExpr(NewState([]byte(src)), 1)
	require.NoError(t, err)
	return expr
}

func TestLetChainResolvesThroughReference(t *testing.T) {
	expr := mustParseBody(t, "x=1\ny=x\ny")

	defs, ok := expr.(*ast.Defs)
	require.True(t, ok, "expected a Defs block, got %T", expr)
	require.Len(t, defs.Defs, 2)

	xDef, ok := defs.Defs[0].(*ast.DBody)
	require.True(t, ok)
	assert.Equal(t, "x", xDef.Pattern.(*ast.PIdentifier).Name)
	assert.Equal(t, int64(1), xDef.Expr.(*ast.Int).Value)

	yDef, ok := defs.Defs[1].(*ast.DBody)
	require.True(t, ok)
	assert.Equal(t, "y", yDef.Pattern.(*ast.PIdentifier).Name)
	assert.Equal(t, "x", yDef.Expr.(*ast.Var).Name)

	final, ok := defs.Final.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "y", final.Name)
}

func TestClosureTwoParams(t *testing.T) {
	expr := mustParseExpr(t, `\x, y -> x + y`)

	closure, ok := expr.(*ast.Closure)
	require.True(t, ok, "expected a Closure, got %T", expr)
	require.Len(t, closure.Params, 2)
	assert.Equal(t, "x", closure.Params[0].(*ast.PIdentifier).Name)
	assert.Equal(t, "y", closure.Params[1].(*ast.PIdentifier).Name)

	body, ok := closure.Body.(*ast.BinOp)
	require.True(t, ok, "expected a BinOp body, got %T", closure.Body)
	assert.Equal(t, ast.OpPlus, body.Op)
	assert.Equal(t, "x", body.Left.(*ast.Var).Name)
	assert.Equal(t, "y", body.Right.(*ast.Var).Name)
}

func TestUnaryMinusArgumentDisambiguation(t *testing.T) {
	// "foo -1": no space before the digit means unary-negate in argument
	// position, so foo is applied to a single negated literal.
	apply, ok := mustParseExpr(t, "foo -1").(*ast.Apply)
	require.True(t, ok, "expected an Apply, got %T", mustParseExpr(t, "foo -1"))
	require.Len(t, apply.Args, 1)
	neg, ok := apply.Args[0].(*ast.UnaryOp)
	require.True(t, ok, "expected a UnaryOp argument, got %T", apply.Args[0])
	assert.Equal(t, ast.UnaryNegate, neg.Op)
	assert.Equal(t, int64(1), neg.Operand.(*ast.Int).Value)

	// "foo - 1": space on both sides of `-` makes it a binary operator.
	bin1, ok := mustParseExpr(t, "foo - 1").(*ast.BinOp)
	require.True(t, ok, "expected a BinOp, got %T", mustParseExpr(t, "foo - 1"))
	assert.Equal(t, ast.OpMinus, bin1.Op)
	assert.Equal(t, "foo", bin1.Left.(*ast.Var).Name)
	assert.Equal(t, int64(1), bin1.Right.(*ast.Int).Value)

	// "foo-1": no spaces at all, same binary reading as "foo - 1".
	bin2, ok := mustParseExpr(t, "foo-1").(*ast.BinOp)
	require.True(t, ok, "expected a BinOp, got %T", mustParseExpr(t, "foo-1"))
	assert.Equal(t, ast.OpMinus, bin2.Op)
	assert.Equal(t, "foo", bin2.Left.(*ast.Var).Name)
	assert.Equal(t, int64(1), bin2.Right.(*ast.Int).Value)
}

func TestRecordDestructurePattern(t *testing.T) {
	_, pat, _, err := parsePattern(NewState([]byte("{x,y}")), 1)
	require.NoError(t, err)

	destructure, ok := pat.(*ast.PRecordDestructure)
	require.True(t, ok, "expected a PRecordDestructure, got %T", pat)
	require.Len(t, destructure.Fields, 2)
	assert.Equal(t, "x", destructure.Fields[0].Label)
	assert.Nil(t, destructure.Fields[0].Pattern)
	assert.Equal(t, "y", destructure.Fields[1].Label)
	assert.Nil(t, destructure.Fields[1].Pattern)
}

func TestRecordDestructureDef(t *testing.T) {
	expr := mustParseBody(t, "{x,y}=pair\nx")

	defs, ok := expr.(*ast.Defs)
	require.True(t, ok, "expected a Defs block, got %T", expr)
	require.Len(t, defs.Defs, 1)

	def, ok := defs.Defs[0].(*ast.DBody)
	require.True(t, ok)
	destructure, ok := def.Pattern.(*ast.PRecordDestructure)
	require.True(t, ok)
	assert.Len(t, destructure.Fields, 2)
	assert.Equal(t, "pair", def.Expr.(*ast.Var).Name)
}

func TestWhenPatternAlignmentError(t *testing.T) {
	src := "when x is\n" +
		"  Ok value -> value\n" +
		"  | Err reason -> 0\n"
	_, _, _, err := parseExpr(NewState([]byte(src)), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PatternAlignment")
}

func TestWhenAlignedAlternatives(t *testing.T) {
	src := "when x is\n" +
		"  Ok value | Err value -> value\n"
	_, expr, _, err := parseExpr(NewState([]byte(src)), 1)
	require.NoError(t, err)

	when, ok := expr.(*ast.When)
	require.True(t, ok, "expected a When, got %T", expr)
	require.Len(t, when.Branches, 1)
	assert.Len(t, when.Branches[0].Patterns, 2)
}

func TestParseHeaderInterface(t *testing.T) {
	src := "interface Foo.Bar exposes [value] imports [Str, List.{map, len}]\n"
	hdr, _, err := ParseHeader([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Foo.Bar", hdr.ModuleName)
	assert.Equal(t, []string{"value"}, hdr.Exposes)
	require.Len(t, hdr.Imports, 2)
	assert.Equal(t, "Str", hdr.Imports[0].ModuleName)
	assert.Empty(t, hdr.Imports[0].Idents)
	assert.Equal(t, "List", hdr.Imports[1].ModuleName)
	assert.Equal(t, []string{"map", "len"}, hdr.Imports[1].Idents)
}

func TestParseHeaderAppNotYetImplemented(t *testing.T) {
	_, _, err := ParseHeader([]byte("app MyApp\n"))
	require.Error(t, err)
	_, ok := err.(*ErrAppHeaderNotYetImplemented)
	assert.True(t, ok, "expected ErrAppHeaderNotYetImplemented, got %T", err)
}

func TestParseModuleTopLevelDefs(t *testing.T) {
	src := "interface Greet exposes [greet] imports []\n" +
		"greet = \\name -> name\n"
	hdr, defs, err := ParseModule([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Greet", hdr.ModuleName)
	require.Len(t, defs, 1)
	body, ok := defs[0].(*ast.DBody)
	require.True(t, ok)
	assert.Equal(t, "greet", body.Pattern.(*ast.PIdentifier).Name)
}
