package eval

import (
	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/runtime/value"
)

func (e *Evaluator) execValidate(s *parser.ValidateStmt, scope *value.Scope) (Outcome, error) {
	target, outcome, err := e.evalAsStmt(s.Target, scope)
	if err != nil || outcome.Kind != OutcomeNormal {
		return outcome, err
	}

	obj, ok := target.(*value.Object)
	if !ok {
		return Outcome{}, &rerrors.TypeError{Message: "validate target must be an object"}
	}

	if err := validateFields(obj, s.Fields, ""); err != nil {
		return Outcome{}, err
	}
	return normal, nil
}

func validateFields(obj *value.Object, fields []*parser.ValidationField, path string) error {
	for _, field := range fields {
		fieldPath := field.Name
		if path != "" {
			fieldPath = path + "." + field.Name
		}

		v, present := obj.Get(field.Name)
		missing := !present
		if present {
			if _, isNull := v.(value.Null); isNull {
				missing = true
			}
		}

		if missing {
			if field.Optional {
				continue
			}
			return &rerrors.ValidationError{Path: fieldPath, Missing: true}
		}

		actual := runtimeTypeName(v)
		if actual != field.Type {
			return &rerrors.ValidationError{Path: fieldPath, Expected: field.Type, Actual: actual}
		}

		if field.Type == "object" && len(field.Nested) > 0 {
			nested, ok := v.(*value.Object)
			if !ok {
				return &rerrors.ValidationError{Path: fieldPath, Expected: "object", Actual: actual}
			}
			if err := validateFields(nested, field.Nested, fieldPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// runtimeTypeName maps a runtime value to the declared-schema type name it
// satisfies. Values with no schema equivalent (functions, natives, state
// machines) return their own tag name, which never matches a declared type.
func runtimeTypeName(v value.Value) string {
	switch v.(type) {
	case value.Number:
		return "number"
	case value.String:
		return "string"
	case value.Boolean:
		return "boolean"
	case *value.Array:
		return "array"
	case *value.Object:
		return "object"
	default:
		return v.Type().String()
	}
}
