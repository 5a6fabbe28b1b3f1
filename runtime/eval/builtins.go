package eval

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/runtime/value"
)

// registerBuiltins binds the String and Util namespaces as Objects of
// Native functions. Namespaced calls like `String.upper(s)` need no special
// evaluator support: MemberExpr does a plain Object.Get on the namespace,
// and the result is an ordinary callable Native.
func registerBuiltins(scope *value.Scope) {
	stringNS := value.NewObject()
	stringNS.Set("upper", &value.Native{Name: "String.upper", Fn: stringUpper})
	stringNS.Set("lower", &value.Native{Name: "String.lower", Fn: stringLower})
	stringNS.Set("trim", &value.Native{Name: "String.trim", Fn: stringTrim})
	stringNS.Set("contains", &value.Native{Name: "String.contains", Fn: stringContains})
	scope.Define("String", stringNS)

	utilNS := value.NewObject()
	utilNS.Set("uuid", &value.Native{Name: "Util.uuid", Fn: utilUUID})
	utilNS.Set("now", &value.Native{Name: "Util.now", Fn: utilNow})
	scope.Define("Util", utilNS)
}

func oneStringArg(name string, args []value.Value) (string, error) {
	if len(args) != 1 {
		return "", &rerrors.TypeError{Message: name + " expects exactly one string argument"}
	}
	s, ok := args[0].(value.String)
	if !ok {
		return "", &rerrors.TypeError{Message: name + " expects a string argument"}
	}
	return s.Val, nil
}

func stringUpper(args []value.Value) (value.Value, error) {
	s, err := oneStringArg("String.upper", args)
	if err != nil {
		return nil, err
	}
	return value.String{Val: strings.ToUpper(s)}, nil
}

func stringLower(args []value.Value) (value.Value, error) {
	s, err := oneStringArg("String.lower", args)
	if err != nil {
		return nil, err
	}
	return value.String{Val: strings.ToLower(s)}, nil
}

func stringTrim(args []value.Value) (value.Value, error) {
	s, err := oneStringArg("String.trim", args)
	if err != nil {
		return nil, err
	}
	return value.String{Val: strings.TrimSpace(s)}, nil
}

func stringContains(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, &rerrors.TypeError{Message: "String.contains expects two string arguments"}
	}
	haystack, ok1 := args[0].(value.String)
	needle, ok2 := args[1].(value.String)
	if !ok1 || !ok2 {
		return nil, &rerrors.TypeError{Message: "String.contains expects two string arguments"}
	}
	return value.Boolean{Val: strings.Contains(haystack.Val, needle.Val)}, nil
}

func utilUUID(args []value.Value) (value.Value, error) {
	return value.String{Val: uuid.New().String()}, nil
}

// utilNow returns the current Unix timestamp in seconds. The value domain
// has no dedicated timestamp tag, so this stays a plain Number, matching
// every other builtin's rule of never introducing a new Value variant.
func utilNow(args []value.Value) (value.Value, error) {
	return value.Number{Val: float64(time.Now().Unix())}, nil
}
