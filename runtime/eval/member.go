package eval

import (
	"fmt"

	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/runtime/value"
)

// memberAccess implements §4.6's state-machine value protocol plus Object
// field lookup and Array.length. Dispatch is purely on obj's tag.
func memberAccess(obj value.Value, prop string) (value.Value, error) {
	switch o := obj.(type) {
	case *value.Object:
		if v, ok := o.Get(prop); ok {
			return v, nil
		}
		return value.Null{}, nil

	case *value.Array:
		if prop == "length" {
			return value.Number{Val: float64(len(o.Elements))}, nil
		}
		return nil, &rerrors.TypeError{Message: fmt.Sprintf("array has no property %q", prop)}

	case *value.StateType:
		if prop == "new" {
			compiled := o.Compiled
			return &value.Native{
				Name: compiled.Name + ".new",
				Fn: func(args []value.Value) (value.Value, error) {
					return value.NewStateInstance(compiled), nil
				},
			}, nil
		}
		return nil, &rerrors.TypeError{Message: fmt.Sprintf("state type %s has no property %q", o.Compiled.Name, prop)}

	case *value.StateInstance:
		return stateInstanceMember(o, prop)

	default:
		return nil, &rerrors.TypeError{Message: fmt.Sprintf("cannot access property %q on %s", prop, obj.Type())}
	}
}

func stateInstanceMember(inst *value.StateInstance, prop string) (value.Value, error) {
	switch prop {
	case "state":
		return value.String{Val: inst.Compiled.NameOf(inst.Current)}, nil

	case "history":
		elements := make([]value.Value, len(inst.History))
		for i, idx := range inst.History {
			elements[i] = value.String{Val: inst.Compiled.NameOf(idx)}
		}
		return value.NewArray(elements), nil

	case "apply":
		return &value.Native{Name: "apply", Fn: func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return nil, &rerrors.TypeError{Message: "apply expects exactly one event string"}
			}
			event, ok := args[0].(value.String)
			if !ok {
				return nil, &rerrors.TypeError{Message: "apply expects a string event"}
			}
			to, ok := inst.Compiled.Lookup(inst.Current, event.Val)
			if !ok {
				return nil, &rerrors.TransitionError{Message: fmt.Sprintf(
					"Cannot apply %s in state %s", event.Val, inst.Compiled.NameOf(inst.Current))}
			}
			inst.Current = to
			inst.History = append(inst.History, to)
			return value.Null{}, nil
		}}, nil

	case "rollback":
		return &value.Native{Name: "rollback", Fn: func(args []value.Value) (value.Value, error) {
			if len(inst.History) <= 1 {
				return nil, &rerrors.TransitionError{Message: "no previous state"}
			}
			inst.History = inst.History[:len(inst.History)-1]
			inst.Current = inst.History[len(inst.History)-1]
			return value.String{Val: inst.Compiled.NameOf(inst.Current)}, nil
		}}, nil

	default:
		return nil, &rerrors.TypeError{Message: fmt.Sprintf("state instance has no property %q", prop)}
	}
}
