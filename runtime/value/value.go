// Package value defines Rulang's runtime value domain and the lexically
// nested Scope used to bind names to values. The two live together
// deliberately: the core treats them as one shared subsystem, and a
// Function value must be able to hold a *Scope without an import cycle.
package value

import (
	"strconv"
	"strings"

	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/statecompiler"
)

// Type tags a Value's variant.
type Type int

const (
	TNull Type = iota
	TNumber
	TString
	TBoolean
	TArray
	TObject
	TFunction
	TNative
	TStateType
	TStateInstance
)

func (t Type) String() string {
	switch t {
	case TNull:
		return "null"
	case TNumber:
		return "number"
	case TString:
		return "string"
	case TBoolean:
		return "boolean"
	case TArray:
		return "array"
	case TObject:
		return "object"
	case TFunction:
		return "function"
	case TNative:
		return "native"
	case TStateType:
		return "state-type"
	case TStateInstance:
		return "state-instance"
	default:
		return "unknown"
	}
}

// Value is the tagged union every Rulang runtime value implements. Member
// access and arithmetic dispatch on Type(), never on a shared method table.
type Value interface {
	Type() Type
}

// Null is the singleton absence-of-value.
type Null struct{}

func (Null) Type() Type { return TNull }

// Number is Rulang's only numeric type, a 64-bit float.
type Number struct{ Val float64 }

func (Number) Type() Type { return TNumber }

// String is an immutable string value.
type String struct{ Val string }

func (String) Type() Type { return TString }

// Boolean is true or false.
type Boolean struct{ Val bool }

func (Boolean) Type() Type { return TBoolean }

// Array is a mutable ordered list of values. Arrays are reference types: two
// bindings to the same *Array see the same underlying slice.
type Array struct {
	Elements []Value
}

func (*Array) Type() Type { return TArray }

// NewArray wraps a slice of values as an Array.
func NewArray(elements []Value) *Array {
	return &Array{Elements: elements}
}

// Object is an insertion-ordered string-keyed map. Objects are reference
// types so that `res.status(n)` and friends can mutate the same object the
// caller holds a binding to.
type Object struct {
	keys   []string
	values map[string]Value
}

func (*Object) Type() Type { return TObject }

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set binds key to v, appending key to insertion order the first time it is
// seen and overwriting in place thereafter.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the bound value and whether key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Function is a user-declared or anonymous closure: its parameter list, body
// statements, and the scope it closed over at declaration time.
type Function struct {
	Params  []string
	Body    []parser.StmtNode
	Closure *Scope
}

func (*Function) Type() Type { return TFunction }

// NativeFn is a host- or builtin-provided callable. It receives already
// evaluated arguments and returns a Value or an error (TypeError,
// TransitionError, ...).
type NativeFn func(args []Value) (Value, error)

// Native wraps a NativeFn as a callable Value.
type Native struct {
	Name string
	Fn   NativeFn
}

func (*Native) Type() Type { return TNative }

// StateType is a compiled state machine exposed as a first-class value; its
// only member is `.new`.
type StateType struct {
	Compiled *statecompiler.CompiledState
}

func (*StateType) Type() Type { return TStateType }

// StateInstance is a live cursor over a StateType: the current state index
// and the full history of indices visited. StateInstances are mutated in
// place by .apply and .rollback; aliasing is intentional.
type StateInstance struct {
	Compiled *statecompiler.CompiledState
	Current  int
	History  []int
}

func (*StateInstance) Type() Type { return TStateInstance }

// NewStateInstance returns a fresh instance parked at the machine's initial
// state.
func NewStateInstance(compiled *statecompiler.CompiledState) *StateInstance {
	return &StateInstance{
		Compiled: compiled,
		Current:  compiled.Initial,
		History:  []int{compiled.Initial},
	}
}

// Truthy implements the language's truthiness rule: Null, false, 0, and ""
// are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Null:
		return false
	case Boolean:
		return t.Val
	case Number:
		return t.Val != 0
	case String:
		return t.Val != ""
	default:
		return true
	}
}

// Equals implements `==`: values of different tags are never equal; Null
// always equals Null; Number/String/Boolean compare by payload; every other
// tag pair (arrays, objects, functions, ...) compares false.
func Equals(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Number:
		return av.Val == b.(Number).Val
	case String:
		return av.Val == b.(String).Val
	case Boolean:
		return av.Val == b.(Boolean).Val
	default:
		return false
	}
}

// Stringify renders a Value the way `print` and string concatenation
// expect.
func Stringify(v Value) string {
	switch t := v.(type) {
	case Null:
		return "null"
	case Number:
		return formatNumber(t.Val)
	case Boolean:
		if t.Val {
			return "true"
		}
		return "false"
	case String:
		return t.Val
	case *Array:
		parts := make([]string, len(t.Elements))
		for i, el := range t.Elements {
			parts[i] = Stringify(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Object:
		parts := make([]string, 0, len(t.keys))
		for _, k := range t.keys {
			v, _ := t.Get(k)
			parts = append(parts, k+": "+Stringify(v))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Function:
		return "<function>"
	case *Native:
		return "<native function>"
	case *StateType:
		return "<state-type " + t.Compiled.Name + ">"
	case *StateInstance:
		return "<" + t.Compiled.Name + ": " + t.Compiled.NameOf(t.Current) + ">"
	default:
		return "null"
	}
}

// formatNumber renders a float64 as locale-independent decimal, omitting a
// trailing ".0" for whole numbers.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
