package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringifyOmitsTrailingZeroForWholeNumbers(t *testing.T) {
	assert.Equal(t, "14", Stringify(Number{Val: 14}))
	assert.Equal(t, "3.14", Stringify(Number{Val: 3.14}))
}

func TestStringifyArrayAndObject(t *testing.T) {
	arr := NewArray([]Value{Number{Val: 1}, String{Val: "a"}, Boolean{Val: true}})
	assert.Equal(t, "[1, a, true]", Stringify(arr))

	obj := NewObject()
	obj.Set("a", Number{Val: 1})
	obj.Set("b", Number{Val: 2})
	assert.Equal(t, "{a: 1, b: 2}", Stringify(obj))
}

func TestTruthiness(t *testing.T) {
	assert.False(t, Truthy(Null{}))
	assert.False(t, Truthy(Boolean{Val: false}))
	assert.False(t, Truthy(Number{Val: 0}))
	assert.False(t, Truthy(String{Val: ""}))
	assert.True(t, Truthy(Number{Val: 1}))
	assert.True(t, Truthy(String{Val: "x"}))
	assert.True(t, Truthy(NewArray(nil)))
}

func TestEqualsRequiresSameTag(t *testing.T) {
	assert.True(t, Equals(Number{Val: 1}, Number{Val: 1}))
	assert.False(t, Equals(Number{Val: 1}, String{Val: "1"}))
	assert.True(t, Equals(Null{}, Null{}))
	assert.False(t, Equals(NewArray(nil), NewArray(nil)))
}

func TestScopeShadowingAndAssignment(t *testing.T) {
	root := NewScope(nil)
	root.Define("x", Number{Val: 1})

	child := NewScope(root)
	child.Define("x", Number{Val: 2})

	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, Number{Val: 2}, v)

	v, ok = root.Get("x")
	assert.True(t, ok)
	assert.Equal(t, Number{Val: 1}, v)
}

func TestScopeAssignWalksToDefiningFrame(t *testing.T) {
	root := NewScope(nil)
	root.Define("x", Number{Val: 1})

	child := NewScope(root)
	ok := child.Assign("x", Number{Val: 9})
	assert.True(t, ok)

	v, _ := root.Get("x")
	assert.Equal(t, Number{Val: 9}, v)
}

func TestScopeAssignUndefinedFails(t *testing.T) {
	root := NewScope(nil)
	assert.False(t, root.Assign("missing", Number{Val: 1}))
}
