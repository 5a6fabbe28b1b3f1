// Package valueconv translates between Rulang's runtime Value domain and
// the plain Go values (map[string]interface{}, []interface{}, ...) that
// encoding/json and the CRUD store traffic in. Nothing in the core needs
// this; it exists purely at the host boundary, so it lives outside
// runtime/value rather than growing that package's surface.
//
// No example repo ships a Value-domain-to-JSON bridge (each one's domain
// model already is its wire format), so this stays on encoding/json: it is
// the one adapter concern with no grounding in the examples beyond "Go's
// standard JSON marshaling is what the teacher's own HTTP handlers use."
package valueconv

import (
	"fmt"

	"github.com/JangRuBin2/rulang/runtime/value"
)

// ToJSON converts a Rulang Value into a plain Go value suitable for
// json.Marshal.
func ToJSON(v value.Value) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case value.Null:
		return nil
	case value.Number:
		return t.Val
	case value.String:
		return t.Val
	case value.Boolean:
		return t.Val
	case *value.Array:
		out := make([]interface{}, len(t.Elements))
		for i, el := range t.Elements {
			out[i] = ToJSON(el)
		}
		return out
	case *value.Object:
		out := make(map[string]interface{}, len(t.Keys()))
		for _, k := range t.Keys() {
			el, _ := t.Get(k)
			out[k] = ToJSON(el)
		}
		return out
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FromJSON converts a decoded JSON value (as produced by
// json.Unmarshal(..., &interface{}{})) into a Rulang Value.
func FromJSON(v interface{}) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null{}
	case float64:
		return value.Number{Val: t}
	case string:
		return value.String{Val: t}
	case bool:
		return value.Boolean{Val: t}
	case []interface{}:
		elements := make([]value.Value, len(t))
		for i, el := range t {
			elements[i] = FromJSON(el)
		}
		return value.NewArray(elements)
	case map[string]interface{}:
		obj := value.NewObject()
		for k, el := range t {
			obj.Set(k, FromJSON(el))
		}
		return obj
	default:
		return value.Null{}
	}
}

// StringMapToObject converts a plain string->string map (query params,
// headers, path params) into a Rulang Object of Strings.
func StringMapToObject(m map[string]string) *value.Object {
	obj := value.NewObject()
	for k, v := range m {
		obj.Set(k, value.String{Val: v})
	}
	return obj
}
