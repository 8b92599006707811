package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsprop/pkg/errors"
)

func descriptorLiteral(props map[string]Value) Value {
	obj := NewObject(Null).AsPlainObject()
	for name, v := range props {
		obj.SetOwn(name, v)
	}
	return NewValueFromPlainObject(obj)
}

func TestToPropertyDescriptorData(t *testing.T) {
	vmctx := New()
	candidate := descriptorLiteral(map[string]Value{
		"value":        IntegerValue(7),
		"writable":     True,
		"enumerable":   False,
		"configurable": True,
	})

	pd, err := ToPropertyDescriptor(vmctx, candidate)
	require.NoError(t, err)
	assert.True(t, pd.IsDataDescriptor())
	assert.True(t, pd.ValueOrUndefined().Is(IntegerValue(7)))
	assert.True(t, pd.Writable())
	assert.False(t, pd.Enumerable())
	assert.True(t, pd.EnumerableSet())
	assert.True(t, pd.Configurable())
}

func TestToPropertyDescriptorAccessor(t *testing.T) {
	vmctx := New()
	getter := nopGetter()
	candidate := descriptorLiteral(map[string]Value{
		"get":          getter,
		"enumerable":   True,
		"configurable": False,
	})

	pd, err := ToPropertyDescriptor(vmctx, candidate)
	require.NoError(t, err)
	assert.True(t, pd.IsAccessorDescriptor())
	assert.True(t, pd.HasGetter())
	assert.True(t, pd.Getter().Is(getter))
	assert.False(t, pd.HasSetter())
	assert.True(t, pd.Enumerable())
	assert.False(t, pd.Configurable())
	assert.True(t, pd.ConfigurableSet())
}

func TestToPropertyDescriptorAttributeCoercion(t *testing.T) {
	vmctx := New()
	// Attribute values run through ToBoolean: a nonempty string is true,
	// zero is false.
	candidate := descriptorLiteral(map[string]Value{
		"enumerable":   NewString("yes"),
		"configurable": IntegerValue(0),
	})

	pd, err := ToPropertyDescriptor(vmctx, candidate)
	require.NoError(t, err)
	assert.True(t, pd.IsGenericDescriptor())
	assert.True(t, pd.Enumerable())
	assert.False(t, pd.Configurable())
	assert.True(t, pd.ConfigurableSet())
}

func TestToPropertyDescriptorInheritedProperties(t *testing.T) {
	vmctx := New()
	// Probing is own-or-inherited: a descriptor literal may carry its
	// fields on the prototype.
	proto := NewObject(Null)
	proto.AsPlainObject().SetOwn("value", IntegerValue(9))
	child := NewObject(proto)

	pd, err := ToPropertyDescriptor(vmctx, child)
	require.NoError(t, err)
	assert.True(t, pd.IsDataDescriptor())
	assert.True(t, pd.ValueOrUndefined().Is(IntegerValue(9)))
}

func TestToPropertyDescriptorInvokesCandidateGetters(t *testing.T) {
	vmctx := New()
	candidate := NewObject(Null)
	obj := candidate.AsPlainObject()

	// A field of the literal may itself be an accessor property; probing
	// must run its getter rather than read the slot.
	var observedThis Value
	valueGetter := NewNativeFunction(0, false, "value", func(this Value, args []Value) (Value, error) {
		observedThis = this
		return IntegerValue(7), nil
	})
	require.True(t, obj.DefineOwnProperty("value", NewGetterDescriptor(valueGetter, FlagTrue, FlagTrue)))
	obj.SetOwn("writable", True)

	pd, err := ToPropertyDescriptor(vmctx, candidate)
	require.NoError(t, err)
	assert.True(t, pd.IsDataDescriptor())
	assert.True(t, pd.ValueOrUndefined().Is(IntegerValue(7)))
	assert.True(t, pd.Writable())
	assert.True(t, observedThis.Is(candidate), "field getter runs with the candidate as receiver")
}

func TestToPropertyDescriptorCandidateGetterErrorPropagates(t *testing.T) {
	vmctx := New()
	candidate := NewObject(Null)
	boom := errors.NewTypeError("value read failed")
	failing := NewNativeFunction(0, false, "value", func(this Value, args []Value) (Value, error) {
		return Undefined, boom
	})
	require.True(t, candidate.AsPlainObject().DefineOwnProperty("value", NewGetterDescriptor(failing, FlagTrue, FlagTrue)))

	_, err := ToPropertyDescriptor(vmctx, candidate)
	require.Error(t, err)
	assert.Equal(t, boom, err)
}

func TestToPropertyDescriptorRejectsNonObject(t *testing.T) {
	vmctx := New()
	for _, v := range []Value{Undefined, Null, IntegerValue(1), NewString("d"), True} {
		_, err := ToPropertyDescriptor(vmctx, v)
		require.Error(t, err)
		assert.True(t, errors.IsTypeError(err))
	}
}

func TestToPropertyDescriptorRejectsMixedFacets(t *testing.T) {
	vmctx := New()
	tests := []struct {
		name  string
		props map[string]Value
	}{
		{"value and get", map[string]Value{"value": IntegerValue(1), "get": nopGetter()}},
		{"value and set", map[string]Value{"value": IntegerValue(1), "set": nopGetter()}},
		{"writable and get", map[string]Value{"writable": True, "get": nopGetter()}},
		{"writable and set", map[string]Value{"writable": False, "set": nopGetter()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToPropertyDescriptor(vmctx, descriptorLiteral(tt.props))
			require.Error(t, err)
			assert.True(t, errors.IsTypeError(err))
		})
	}
}

func TestToPropertyDescriptorRejectsNonCallableAccessors(t *testing.T) {
	vmctx := New()

	_, err := ToPropertyDescriptor(vmctx, descriptorLiteral(map[string]Value{
		"get": IntegerValue(5),
	}))
	require.Error(t, err)
	assert.True(t, errors.IsTypeError(err))

	_, err = ToPropertyDescriptor(vmctx, descriptorLiteral(map[string]Value{
		"set": NewString("not callable"),
	}))
	require.Error(t, err)
	assert.True(t, errors.IsTypeError(err))

	// The undefined placeholder is allowed for either half.
	pd, err := ToPropertyDescriptor(vmctx, descriptorLiteral(map[string]Value{
		"get": Undefined,
		"set": Undefined,
	}))
	require.NoError(t, err)
	assert.True(t, pd.IsAccessorDescriptor())
	assert.True(t, pd.Getter().IsUndefined())
	assert.True(t, pd.Setter().IsUndefined())
}

func TestFromPropertyDescriptorData(t *testing.T) {
	vmctx := New()
	pd := NewDataDescriptor(IntegerValue(7), true, true, true)

	out := FromPropertyDescriptor(vmctx, pd, false)
	require.Equal(t, TypeObject, out.Type())
	obj := out.AsPlainObject()

	v, ok := obj.GetOwn("value")
	require.True(t, ok)
	assert.True(t, v.Is(IntegerValue(7)))
	w, ok := obj.GetOwn("writable")
	require.True(t, ok)
	assert.True(t, w.Is(True))
	e, _ := obj.GetOwn("enumerable")
	assert.True(t, e.Is(True))
	c, _ := obj.GetOwn("configurable")
	assert.True(t, c.Is(True))

	assert.False(t, obj.HasOwn("get"))
	assert.False(t, obj.HasOwn("set"))
}

func TestFromPropertyDescriptorAccessor(t *testing.T) {
	vmctx := New()
	getter := nopGetter()
	pd := NewGenericDescriptor(FlagFalse, FlagTrue)
	pd.SetGetter(getter)

	out := FromPropertyDescriptor(vmctx, pd, false)
	require.Equal(t, TypeObject, out.Type())
	obj := out.AsPlainObject()

	g, ok := obj.GetOwn("get")
	require.True(t, ok)
	assert.True(t, g.Is(getter))
	s, ok := obj.GetOwn("set")
	require.True(t, ok)
	assert.True(t, s.IsUndefined(), "absent setter materializes as the undefined placeholder")
	e, _ := obj.GetOwn("enumerable")
	assert.True(t, e.Is(False))
	c, _ := obj.GetOwn("configurable")
	assert.True(t, c.Is(True))

	assert.False(t, obj.HasOwn("value"))
	assert.False(t, obj.HasOwn("writable"))
}

func TestFromPropertyDescriptorEmittedPropertiesArePermissive(t *testing.T) {
	vmctx := New()
	pd := NewDataDescriptor(IntegerValue(1), false, false, false)

	obj := FromPropertyDescriptor(vmctx, pd, false).AsPlainObject()
	for _, name := range []string{"value", "writable", "enumerable", "configurable"} {
		got := obj.GetOwnPropertyDescriptor(vmctx, name)
		require.False(t, got.IsAbsent(), name)
		assert.True(t, got.Writable(), name)
		assert.True(t, got.Enumerable(), name)
		assert.True(t, got.Configurable(), name)
	}
}

func TestFromPropertyDescriptorStrict(t *testing.T) {
	vmctx := New()

	// Writable set but enumerable/configurable never specified: strict
	// emission drops the unspecified attributes.
	pd := NewDataDescriptorFlags(IntegerValue(1), FlagTrue, FlagNotSet, FlagNotSet)
	obj := FromPropertyDescriptor(vmctx, pd, true).AsPlainObject()
	assert.True(t, obj.HasOwn("value"))
	assert.True(t, obj.HasOwn("writable"))
	assert.False(t, obj.HasOwn("enumerable"))
	assert.False(t, obj.HasOwn("configurable"))

	// Non-strict emits them as false.
	obj = FromPropertyDescriptor(vmctx, pd, false).AsPlainObject()
	e, _ := obj.GetOwn("enumerable")
	assert.True(t, e.Is(False))
	c, _ := obj.GetOwn("configurable")
	assert.True(t, c.Is(False))
}

func TestFromPropertyDescriptorAbsentIsUndefined(t *testing.T) {
	vmctx := New()
	out := FromPropertyDescriptor(vmctx, vmctx.Descriptors().Absent(), false)
	assert.True(t, out.IsUndefined(), "the absent sentinel maps to undefined, not an object")

	out = FromPropertyDescriptor(vmctx, nil, false)
	assert.True(t, out.IsUndefined())
}

func TestFromPropertyDescriptorGenericEmitsAccessorSlots(t *testing.T) {
	vmctx := New()
	pd := NewGenericDescriptor(FlagTrue, FlagNotSet)

	obj := FromPropertyDescriptor(vmctx, pd, false).AsPlainObject()
	g, ok := obj.GetOwn("get")
	require.True(t, ok)
	assert.True(t, g.IsUndefined())
	s, ok := obj.GetOwn("set")
	require.True(t, ok)
	assert.True(t, s.IsUndefined())
	assert.False(t, obj.HasOwn("value"))
	assert.False(t, obj.HasOwn("writable"))
}

func TestDescriptorRoundTrip(t *testing.T) {
	vmctx := New()
	d := NewDataDescriptor(IntegerValue(11), true, true, true)

	back, err := ToPropertyDescriptor(vmctx, FromPropertyDescriptor(vmctx, d, false))
	require.NoError(t, err)
	assert.True(t, back.IsDataDescriptor())
	assert.True(t, back.ValueOrUndefined().Is(d.ValueOrUndefined()))
	assert.Equal(t, d.Writable(), back.Writable())
	assert.Equal(t, d.Enumerable(), back.Enumerable())
	assert.Equal(t, d.Configurable(), back.Configurable())
}
