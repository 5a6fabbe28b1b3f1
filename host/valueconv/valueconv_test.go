package valueconv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JangRuBin2/rulang/runtime/value"
)

func TestToJSONConvertsEveryScalarAndContainer(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Number{Val: 1})
	obj.Set("b", value.NewArray([]value.Value{value.String{Val: "x"}, value.Boolean{Val: true}}))

	got := ToJSON(obj)
	assert.Equal(t, map[string]interface{}{
		"a": 1.0,
		"b": []interface{}{"x", true},
	}, got)
}

func TestFromJSONRoundTripsThroughToJSON(t *testing.T) {
	decoded := map[string]interface{}{
		"n":     2.0,
		"s":     "hi",
		"flag":  false,
		"items": []interface{}{1.0, 2.0},
	}
	v := FromJSON(decoded)
	obj, ok := v.(*value.Object)
	assert.True(t, ok)

	assert.Equal(t, decoded, ToJSON(obj))
}

func TestStringMapToObjectPreservesEntries(t *testing.T) {
	obj := StringMapToObject(map[string]string{"x-request-id": "abc"})
	v, ok := obj.Get("x-request-id")
	assert.True(t, ok)
	assert.Equal(t, "abc", v.(value.String).Val)
}
