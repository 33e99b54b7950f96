package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomlang/loom/pkg/ast"
	"github.com/loomlang/loom/pkg/region"
)

func r(line int) region.Region {
	return region.New(line, 1, line, 5)
}

func TestExprToPattern_Identifier(t *testing.T) {
	e := ast.NewVar(r(1), "", "pair")
	p, err := ast.ExprToPattern(e)
	require.NoError(t, err)
	ident, ok := p.(*ast.PIdentifier)
	require.True(t, ok)
	assert.Equal(t, "pair", ident.Name)
}

func TestExprToPattern_Underscore(t *testing.T) {
	e := ast.NewVar(r(1), "", "_")
	p, err := ast.ExprToPattern(e)
	require.NoError(t, err)
	_, ok := p.(*ast.PUnderscore)
	assert.True(t, ok)
}

func TestExprToPattern_RecordDestructure(t *testing.T) {
	// { x, y } = pair
	fields := []ast.RecordField{
		{Region: r(1), Label: "x"},
		{Region: r(1), Label: "y"},
	}
	e := ast.NewRecord(r(1), nil, fields, nil)
	p, err := ast.ExprToPattern(e)
	require.NoError(t, err)
	destructure, ok := p.(*ast.PRecordDestructure)
	require.True(t, ok)
	require.Len(t, destructure.Fields, 2)
	assert.Equal(t, "x", destructure.Fields[0].Label)
	assert.Nil(t, destructure.Fields[0].Pattern)
}

func TestExprToPattern_RecordUpdateRejected(t *testing.T) {
	e := ast.NewRecord(r(1), ast.NewVar(r(1), "", "base"), nil, nil)
	_, err := ast.ExprToPattern(e)
	require.Error(t, err)
	var invalid *ast.ErrInvalidPattern
	require.ErrorAs(t, err, &invalid)
}

func TestExprToPattern_ApplyBecomesTagPattern(t *testing.T) {
	// Ok(value)
	e := ast.NewApply(r(1), ast.NewTag(r(1), "Ok", false), []ast.Expr{ast.NewVar(r(1), "", "value")}, ast.CallParens)
	p, err := ast.ExprToPattern(e)
	require.NoError(t, err)
	apply, ok := p.(*ast.PApply)
	require.True(t, ok)
	tag, ok := apply.Func.(*ast.PTag)
	require.True(t, ok)
	assert.Equal(t, "Ok", tag.Name)
}

func TestExprToPattern_RejectsClosure(t *testing.T) {
	e := ast.NewClosure(r(1), nil, ast.NewVar(r(1), "", "x"))
	_, err := ast.ExprToPattern(e)
	assert.Error(t, err)
}

func TestExprToPattern_RejectsAccessorFunction(t *testing.T) {
	e := ast.NewAccessorFunction(r(1), "field")
	_, err := ast.ExprToPattern(e)
	assert.Error(t, err)
}

func TestRegionContainsChild(t *testing.T) {
	parent := region.New(1, 1, 3, 10)
	child := region.New(2, 1, 2, 5)
	assert.True(t, parent.Contains(child))
	assert.False(t, child.Contains(parent))
}
