// Shared helpers for translating between JSON and engine values.
package main

import (
	"encoding/json"
	"fmt"
	"math"

	"jsprop/pkg/vm"
)

// parseDescriptorLiteral decodes a JSON object into a descriptor literal.
// String values under "get" and "set" become named stub functions, since
// JSON cannot express callables.
func parseDescriptorLiteral(input string) (vm.Value, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return vm.Undefined, fmt.Errorf("parse descriptor literal: %w", err)
	}

	obj := vm.NewDictObject(vm.Undefined)
	dict := obj.AsDictObject()
	for key, rv := range raw {
		if (key == "get" || key == "set") && rv != nil {
			if name, ok := rv.(string); ok {
				dict.SetOwn(key, stubFunction(name))
				continue
			}
		}
		v, err := jsonToValue(rv)
		if err != nil {
			return vm.Undefined, fmt.Errorf("key %q: %w", key, err)
		}
		dict.SetOwn(key, v)
	}
	return obj, nil
}

func stubFunction(name string) vm.Value {
	return vm.NewNativeFunction(0, false, name, func(this vm.Value, args []vm.Value) (vm.Value, error) {
		return vm.Undefined, nil
	})
}

func jsonToValue(raw interface{}) (vm.Value, error) {
	switch v := raw.(type) {
	case nil:
		return vm.Null, nil
	case bool:
		return vm.BooleanValue(v), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return vm.IntegerValue(int32(v)), nil
		}
		return vm.NumberValue(v), nil
	case string:
		return vm.NewString(v), nil
	default:
		return vm.Undefined, fmt.Errorf("unsupported JSON value %v", raw)
	}
}

// valueToJSON renders an engine value as a JSON-marshalable shape. JSON has
// no undefined or function values, so both get readable placeholders.
func valueToJSON(v vm.Value) interface{} {
	switch {
	case v.IsUndefined():
		return "undefined"
	case v.IsNull():
		return nil
	case v.IsBoolean():
		return v.AsBoolean()
	case v.IsIntegerNumber():
		return v.AsInteger()
	case v.IsFloatNumber():
		return v.AsFloat()
	case v.IsString():
		return v.AsString()
	case v.IsCallable():
		return fmt.Sprintf("[function %s]", v.AsNativeFunction().Name)
	case v.Type() == vm.TypeObject:
		obj := v.AsPlainObject()
		out := make(map[string]interface{})
		for _, key := range obj.OwnPropertyNames() {
			slot, _ := obj.GetOwn(key)
			out[key] = valueToJSON(slot)
		}
		return out
	case v.IsDictObject():
		dict := v.AsDictObject()
		out := make(map[string]interface{})
		for _, key := range dict.OwnKeys() {
			slot, _ := dict.GetOwn(key)
			out[key] = valueToJSON(slot)
		}
		return out
	default:
		return v.Inspect()
	}
}

// descriptorReport renders a descriptor for display. Tri-state attributes
// appear only when explicitly set.
func descriptorReport(pd *vm.PropertyDescriptor) map[string]interface{} {
	out := make(map[string]interface{})
	switch {
	case pd.IsAccessorDescriptor():
		out["kind"] = "accessor"
		if pd.HasGetter() {
			out["get"] = valueToJSON(pd.Getter())
		}
		if pd.HasSetter() {
			out["set"] = valueToJSON(pd.Setter())
		}
	case pd.IsDataDescriptor():
		out["kind"] = "data"
		if pd.HasValue() {
			out["value"] = valueToJSON(pd.ValueOrUndefined())
		}
		if pd.WritableSet() {
			out["writable"] = pd.Writable()
		}
	default:
		out["kind"] = "generic"
	}
	if pd.EnumerableSet() {
		out["enumerable"] = pd.Enumerable()
	}
	if pd.ConfigurableSet() {
		out["configurable"] = pd.Configurable()
	}
	return out
}

func printJSON(v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
