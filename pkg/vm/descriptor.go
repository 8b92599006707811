package vm

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrNoValue is returned by ResolveValue when the descriptor has no value
// to resolve: the absent sentinel, or an accessor descriptor without a
// getter.
var ErrNoValue = stderrors.New("no value available")

// Flag is the tri-state representation of a single boolean property
// attribute: never specified, explicitly false, or explicitly true.
// Reading the boolean of an unset flag yields false by convention.
type Flag uint8

const (
	FlagNotSet Flag = iota
	FlagFalse
	FlagTrue
)

// Bool returns the attribute value, defaulting unset to false.
func (f Flag) Bool() bool { return f == FlagTrue }

// IsSet reports whether the attribute was explicitly specified, in either
// direction. This is what distinguishes "explicitly false" from "never
// specified".
func (f Flag) IsSet() bool { return f != FlagNotSet }

func (f Flag) String() string {
	switch f {
	case FlagFalse:
		return "false"
	case FlagTrue:
		return "true"
	default:
		return "unset"
	}
}

// FlagOf converts a boolean into an explicitly-set Flag.
func FlagOf(b bool) Flag {
	if b {
		return FlagTrue
	}
	return FlagFalse
}

// descriptorKind tags the shape of a descriptor. The tag is recomputed by
// reclassify every time a facet field is populated, so classification is a
// total function of the populated fields and a mixed data/accessor state is
// never observable.
type descriptorKind uint8

const (
	kindGeneric descriptorKind = iota
	kindData
	kindAccessor
)

// PropertyDescriptor is the attribute-and-value record describing one
// property of one object. It is either data-shaped (a stored value, inline
// or behind a ValueStrategy, plus a writable attribute), accessor-shaped
// (a getter and/or setter), or generic (attributes only).
type PropertyDescriptor struct {
	value    Value
	hasValue bool
	strategy ValueStrategy

	getter    Value
	setter    Value
	hasGetter bool
	hasSetter bool

	writable     Flag
	enumerable   Flag
	configurable Flag

	kind descriptorKind

	// shared marks registry singletons. Mutating a shared descriptor would
	// corrupt state observed by every other holder, so all mutators panic.
	shared bool
	// absent marks the registry's "no such property" sentinel.
	absent bool
}

// NewDataDescriptor builds a data descriptor with all three attributes
// explicitly set.
func NewDataDescriptor(value Value, writable, enumerable, configurable bool) *PropertyDescriptor {
	return NewDataDescriptorFlags(value, FlagOf(writable), FlagOf(enumerable), FlagOf(configurable))
}

// NewDataDescriptorFlags builds a data descriptor with tri-state attributes.
func NewDataDescriptorFlags(value Value, writable, enumerable, configurable Flag) *PropertyDescriptor {
	pd := &PropertyDescriptor{
		value:        value,
		hasValue:     true,
		writable:     writable,
		enumerable:   enumerable,
		configurable: configurable,
	}
	pd.reclassify()
	return pd
}

// NewAccessorDescriptor builds an accessor descriptor with both halves
// marked present: passing Undefined for a half means "explicitly undefined",
// and defining with such a descriptor clears that half on an existing
// property. Use NewGetterDescriptor or NewSetterDescriptor to leave the
// other half untouched. Writable is meaningless for accessors and stays
// unset.
func NewAccessorDescriptor(getter, setter Value, enumerable, configurable Flag) *PropertyDescriptor {
	pd := &PropertyDescriptor{
		getter:       getter,
		setter:       setter,
		hasGetter:    true,
		hasSetter:    true,
		enumerable:   enumerable,
		configurable: configurable,
	}
	pd.reclassify()
	return pd
}

// NewGetterDescriptor builds an accessor descriptor with only the getter
// half present; the setter half stays absent rather than explicitly
// undefined.
func NewGetterDescriptor(getter Value, enumerable, configurable Flag) *PropertyDescriptor {
	pd := &PropertyDescriptor{
		getter:       getter,
		hasGetter:    true,
		enumerable:   enumerable,
		configurable: configurable,
	}
	pd.reclassify()
	return pd
}

// NewSetterDescriptor is the setter-half counterpart of NewGetterDescriptor.
func NewSetterDescriptor(setter Value, enumerable, configurable Flag) *PropertyDescriptor {
	pd := &PropertyDescriptor{
		setter:       setter,
		hasSetter:    true,
		enumerable:   enumerable,
		configurable: configurable,
	}
	pd.reclassify()
	return pd
}

// NewGenericDescriptor builds an attribute-only descriptor, e.g. mid-parse
// of a descriptor literal before its shape is known.
func NewGenericDescriptor(enumerable, configurable Flag) *PropertyDescriptor {
	pd := &PropertyDescriptor{
		enumerable:   enumerable,
		configurable: configurable,
	}
	pd.reclassify()
	return pd
}

// NewAllForbiddenDescriptor builds a data descriptor with writable,
// enumerable and configurable all explicitly false.
func NewAllForbiddenDescriptor(value Value) *PropertyDescriptor {
	return NewDataDescriptorFlags(value, FlagFalse, FlagFalse, FlagFalse)
}

// NewIndirectDescriptor builds a data descriptor whose value reads and
// writes are routed through the given strategy instead of an inline field.
func NewIndirectDescriptor(strategy ValueStrategy, writable, enumerable, configurable Flag) *PropertyDescriptor {
	if strategy == nil {
		panic("descriptor: indirect descriptor requires a strategy")
	}
	pd := &PropertyDescriptor{
		strategy:     strategy,
		writable:     writable,
		enumerable:   enumerable,
		configurable: configurable,
	}
	pd.reclassify()
	return pd
}

// reclassify recomputes the shape tag from the populated fields. Accessor
// presence wins; a stored value (inline or via strategy) or an explicitly
// set writable attribute makes the descriptor data-shaped; otherwise it is
// generic.
func (pd *PropertyDescriptor) reclassify() {
	switch {
	case pd.hasGetter || pd.hasSetter:
		pd.kind = kindAccessor
	case pd.hasValue || pd.writable.IsSet() || pd.strategyHasValue():
		pd.kind = kindData
	default:
		pd.kind = kindGeneric
	}
}

func (pd *PropertyDescriptor) strategyHasValue() bool {
	if pd.strategy == nil {
		return false
	}
	_, ok := pd.strategy.Load()
	return ok
}

// --- Classification ---

// IsDataDescriptor reports whether the descriptor is data-shaped: writable
// explicitly set in either direction, or a stored value present (inline or
// through the value strategy).
func (pd *PropertyDescriptor) IsDataDescriptor() bool { return pd.kind == kindData }

// IsAccessorDescriptor reports whether a getter or setter is present.
func (pd *PropertyDescriptor) IsAccessorDescriptor() bool { return pd.kind == kindAccessor }

// IsGenericDescriptor reports whether the descriptor specifies only
// attributes: neither a value facet nor an accessor facet.
func (pd *PropertyDescriptor) IsGenericDescriptor() bool { return pd.kind == kindGeneric }

// IsAbsent reports whether this is a registry's "no such property" sentinel.
func (pd *PropertyDescriptor) IsAbsent() bool { return pd.absent }

// IsAllForbidden reports whether all three attributes are explicitly false.
func (pd *PropertyDescriptor) IsAllForbidden() bool {
	return pd.writable == FlagFalse && pd.enumerable == FlagFalse && pd.configurable == FlagFalse
}

// --- Value facet ---

// HasValue reports whether a stored value is present, inline or through
// the value strategy.
func (pd *PropertyDescriptor) HasValue() bool {
	return pd.hasValue || pd.strategyHasValue()
}

// ValueOrUndefined returns the stored value, routing through the strategy
// when one is attached, or Undefined when no value is present.
func (pd *PropertyDescriptor) ValueOrUndefined() Value {
	if pd.strategy != nil {
		v, ok := pd.strategy.Load()
		if !ok {
			return Undefined
		}
		return v
	}
	if !pd.hasValue {
		return Undefined
	}
	return pd.value
}

// SetValue stores a value. Writes on an indirected descriptor go through
// the strategy and may fail (the default strategy rejects every write,
// which is how mutating the absent sentinel becomes a hard failure).
func (pd *PropertyDescriptor) SetValue(v Value) error {
	if pd.hasGetter || pd.hasSetter {
		panic("descriptor: cannot store a value on an accessor descriptor")
	}
	if pd.strategy != nil {
		return pd.strategy.Store(v)
	}
	if pd.shared {
		panic("descriptor: mutation of a shared descriptor")
	}
	pd.value = v
	pd.hasValue = true
	pd.reclassify()
	return nil
}

// --- Accessor facet ---

// Getter returns the stored getter, or Undefined when absent.
func (pd *PropertyDescriptor) Getter() Value {
	if !pd.hasGetter {
		return Undefined
	}
	return pd.getter
}

// Setter returns the stored setter, or Undefined when absent.
func (pd *PropertyDescriptor) Setter() Value {
	if !pd.hasSetter {
		return Undefined
	}
	return pd.setter
}

func (pd *PropertyDescriptor) HasGetter() bool { return pd.hasGetter }
func (pd *PropertyDescriptor) HasSetter() bool { return pd.hasSetter }

// SetGetter stores a getter. The value may be Undefined; "present but
// undefined" and "absent" are distinct states.
func (pd *PropertyDescriptor) SetGetter(v Value) {
	if pd.shared {
		panic("descriptor: mutation of a shared descriptor")
	}
	if pd.hasValue || pd.strategy != nil || pd.writable.IsSet() {
		panic("descriptor: cannot store a getter on a data descriptor")
	}
	pd.getter = v
	pd.hasGetter = true
	pd.reclassify()
}

// SetSetter stores a setter, under the same rules as SetGetter.
func (pd *PropertyDescriptor) SetSetter(v Value) {
	if pd.shared {
		panic("descriptor: mutation of a shared descriptor")
	}
	if pd.hasValue || pd.strategy != nil || pd.writable.IsSet() {
		panic("descriptor: cannot store a setter on a data descriptor")
	}
	pd.setter = v
	pd.hasSetter = true
	pd.reclassify()
}

// --- Attributes ---

func (pd *PropertyDescriptor) Writable() bool        { return pd.writable.Bool() }
func (pd *PropertyDescriptor) WritableSet() bool     { return pd.writable.IsSet() }
func (pd *PropertyDescriptor) Enumerable() bool      { return pd.enumerable.Bool() }
func (pd *PropertyDescriptor) EnumerableSet() bool   { return pd.enumerable.IsSet() }
func (pd *PropertyDescriptor) Configurable() bool    { return pd.configurable.Bool() }
func (pd *PropertyDescriptor) ConfigurableSet() bool { return pd.configurable.IsSet() }

// SetWritable marks the writable attribute. Setting it on an accessor
// descriptor is internal misuse.
func (pd *PropertyDescriptor) SetWritable(f Flag) {
	if pd.shared {
		panic("descriptor: mutation of a shared descriptor")
	}
	if f.IsSet() && (pd.hasGetter || pd.hasSetter) {
		panic("descriptor: writable is meaningless for accessor descriptors")
	}
	pd.writable = f
	pd.reclassify()
}

func (pd *PropertyDescriptor) SetEnumerable(f Flag) {
	if pd.shared {
		panic("descriptor: mutation of a shared descriptor")
	}
	pd.enumerable = f
}

func (pd *PropertyDescriptor) SetConfigurable(f Flag) {
	if pd.shared {
		panic("descriptor: mutation of a shared descriptor")
	}
	pd.configurable = f
}

// --- Effective-value resolution ---

// ResolveValue resolves the value this descriptor yields for the given
// receiver. A data descriptor with a concrete stored value returns it
// directly without invoking anything. The absent sentinel fails with
// ErrNoValue. Otherwise a present, non-undefined getter is invoked with
// receiver as its call target; an accessor descriptor without a getter
// fails with ErrNoValue. A getter can run arbitrary script, so errors from
// the call propagate unchanged.
func (pd *PropertyDescriptor) ResolveValue(vm *VM, receiver Value) (Value, error) {
	if pd.IsDataDescriptor() && pd.HasValue() {
		return pd.ValueOrUndefined(), nil
	}
	if pd.absent {
		return Undefined, ErrNoValue
	}
	if pd.hasGetter && !pd.getter.IsUndefined() {
		return vm.Call(pd.getter, receiver, nil)
	}
	return Undefined, ErrNoValue
}

// String renders a debug representation of the descriptor.
func (pd *PropertyDescriptor) String() string {
	if pd.absent {
		return "{absent}"
	}
	var parts []string
	switch {
	case pd.IsAccessorDescriptor():
		parts = append(parts, "get: "+pd.Getter().Inspect(), "set: "+pd.Setter().Inspect())
	case pd.IsDataDescriptor():
		parts = append(parts, "value: "+pd.ValueOrUndefined().Inspect(), "writable: "+pd.writable.String())
	}
	parts = append(parts,
		"enumerable: "+pd.enumerable.String(),
		"configurable: "+pd.configurable.String())
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
