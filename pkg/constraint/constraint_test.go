package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomlang/loom/pkg/module"
	"github.com/loomlang/loom/pkg/region"
)

func TestVarStoreFreshIsUnique(t *testing.T) {
	store := NewVarStore()
	a := store.Fresh()
	b := store.Fresh()
	c := store.Fresh()
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 2, c)
}

func TestConstraintVariantsSatisfyInterface(t *testing.T) {
	var cons []Constraint
	cons = append(cons, Eq{Var: 0, Type: Int(), Region: region.Region{}})
	cons = append(cons, Lookup{Symbol: module.Symbol{Module: 0, Ident: 1}, Var: 1, Region: region.Region{}})
	cons = append(cons, And{Constraints: cons})
	cons = append(cons, True{})
	assert.Len(t, cons, 4)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Int", Int().String())
	assert.Equal(t, "Float", Float().String())
	assert.Equal(t, "Str", Str().String())
	assert.Equal(t, "_3", Flex(3).String())
	assert.Equal(t, "List Int", List(Int()).String())
	assert.Equal(t, "Func", Func([]Type{Int()}, Str()).String())
	assert.Equal(t, "<erroneous: bad module>", Erroneous("bad module").String())
}
