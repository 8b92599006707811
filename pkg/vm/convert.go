package vm

import (
	"jsprop/pkg/errors"
)

// objectHas reports whether an object value has the named property, own or
// inherited.
func objectHas(v Value, name string) bool {
	switch v.Type() {
	case TypeObject:
		return v.AsPlainObject().Has(name)
	case TypeDictObject:
		return v.AsDictObject().Has(name)
	}
	return false
}

// objectGet reads the named property off an object value, walking the
// prototype chain; absent properties read as Undefined. A read can land on
// an accessor property, in which case its getter runs with the candidate as
// receiver and may fail.
func objectGet(vmctx *VM, receiver Value, name string) (Value, error) {
	current := receiver
	for current.IsObject() {
		switch current.Type() {
		case TypeObject:
			po := current.AsPlainObject()
			if g, _, _, _, ok := po.GetOwnAccessor(name); ok {
				if g.IsUndefined() {
					return Undefined, nil
				}
				return vmctx.Call(g, receiver, nil)
			}
			if val, ok := po.GetOwn(name); ok {
				return val, nil
			}
			current = po.GetPrototype()
		case TypeDictObject:
			do := current.AsDictObject()
			if val, ok := do.GetOwn(name); ok {
				return val, nil
			}
			current = do.GetPrototype()
		}
	}
	return Undefined, nil
}

// ToPropertyDescriptor converts a plain language object into a property
// descriptor, validating it along the way. The probe order is observable
// (a field read can invoke a getter on the candidate) and must not change:
// get/set presence is checked first for the mutual-exclusion test, then
// reads happen in the order enumerable, configurable, value, writable,
// get, set.
func ToPropertyDescriptor(vmctx *VM, candidate Value) (*PropertyDescriptor, error) {
	if !candidate.IsObject() {
		return nil, errors.NewTypeError("property description must be an object: %s", candidate.TypeName())
	}

	hasGetProp := objectHas(candidate, "get")
	hasSetProp := objectHas(candidate, "set")
	hasValue := objectHas(candidate, "value")
	hasWritable := objectHas(candidate, "writable")

	// A descriptor cannot mix data and accessor facets.
	if (hasValue || hasWritable) && (hasGetProp || hasSetProp) {
		return nil, errors.NewTypeError("invalid property descriptor: cannot both specify accessors and a value or writable attribute")
	}

	// The shape emerges from which facets get populated below; an object
	// carrying get/set ends up accessor-shaped, anything else data or
	// generic.
	pd := &PropertyDescriptor{}
	pd.reclassify()

	if objectHas(candidate, "enumerable") {
		ev, err := objectGet(vmctx, candidate, "enumerable")
		if err != nil {
			return nil, err
		}
		pd.SetEnumerable(FlagOf(ev.ToBoolean()))
	}
	if objectHas(candidate, "configurable") {
		cv, err := objectGet(vmctx, candidate, "configurable")
		if err != nil {
			return nil, err
		}
		pd.SetConfigurable(FlagOf(cv.ToBoolean()))
	}
	if hasValue {
		v, err := objectGet(vmctx, candidate, "value")
		if err != nil {
			return nil, err
		}
		if err := pd.SetValue(v); err != nil {
			return nil, err
		}
	}
	if hasWritable {
		wv, err := objectGet(vmctx, candidate, "writable")
		if err != nil {
			return nil, err
		}
		pd.SetWritable(FlagOf(wv.ToBoolean()))
	}
	if hasGetProp {
		getter, err := objectGet(vmctx, candidate, "get")
		if err != nil {
			return nil, err
		}
		if !getter.IsUndefined() && !getter.IsCallable() {
			return nil, errors.NewTypeError("getter must be a function: %s", getter.Inspect())
		}
		pd.SetGetter(getter)
	}
	if hasSetProp {
		setter, err := objectGet(vmctx, candidate, "set")
		if err != nil {
			return nil, err
		}
		if !setter.IsUndefined() && !setter.IsCallable() {
			return nil, errors.NewTypeError("setter must be a function: %s", setter.Inspect())
		}
		pd.SetSetter(setter)
	}

	// Defensive re-check of the facet exclusion: unreachable given the
	// early check above, but guards additions that bypass it.
	if pd.HasGetter() && (pd.HasValue() || pd.WritableSet()) {
		return nil, errors.NewTypeError("invalid property descriptor: cannot both specify accessors and a value or writable attribute")
	}

	return pd, nil
}

// FromPropertyDescriptor materializes a descriptor into a fresh plain
// object with fully-permissive own properties. The absent sentinel maps to
// Undefined, not an object. With strict set, enumerable and configurable
// are emitted only when explicitly specified.
func FromPropertyDescriptor(vmctx *VM, pd *PropertyDescriptor, strict bool) Value {
	if pd == nil || pd.IsAbsent() {
		return Undefined
	}

	obj := NewObject(vmctx.ObjectPrototype).AsPlainObject()

	if pd.IsDataDescriptor() {
		obj.SetOwn("value", pd.ValueOrUndefined())
		if pd.WritableSet() || pd.EnumerableSet() || pd.ConfigurableSet() {
			obj.SetOwn("writable", BooleanValue(pd.Writable()))
		}
	} else {
		obj.SetOwn("get", pd.Getter())
		obj.SetOwn("set", pd.Setter())
	}

	if !strict || pd.EnumerableSet() {
		obj.SetOwn("enumerable", BooleanValue(pd.Enumerable()))
	}
	if !strict || pd.ConfigurableSet() {
		obj.SetOwn("configurable", BooleanValue(pd.Configurable()))
	}

	return NewValueFromPlainObject(obj)
}
