package vm

import "math"

// forbiddenIntCacheSize bounds the frozen-descriptor table for small
// non-negative integers. Array index definitions are the hot path this
// serves; indices past the range fall back to allocation.
const forbiddenIntCacheSize = 256

// DescriptorCache holds the immutable descriptor singletons owned by one
// VM instance: the "absent property" sentinel and frozen, all-forbidden
// data descriptors for common literal values. Entries are shared by
// reference across unrelated call sites and are read-only by contract;
// every mutator on a shared descriptor panics. Instances are never shared
// between VMs, so one VM's lifecycle cannot violate another's invariants.
type DescriptorCache struct {
	absent    *PropertyDescriptor
	ints      [forbiddenIntCacheSize]*PropertyDescriptor
	trueDesc  *PropertyDescriptor
	falseDesc *PropertyDescriptor
}

func newDescriptorCache() *DescriptorCache {
	c := &DescriptorCache{}
	c.absent = &PropertyDescriptor{
		strategy: RejectStrategy{},
		shared:   true,
		absent:   true,
	}
	c.absent.reclassify()
	for i := range c.ints {
		c.ints[i] = newSharedForbidden(IntegerValue(int32(i)))
	}
	c.trueDesc = newSharedForbidden(True)
	c.falseDesc = newSharedForbidden(False)
	return c
}

func newSharedForbidden(v Value) *PropertyDescriptor {
	pd := NewAllForbiddenDescriptor(v)
	pd.shared = true
	return pd
}

// Absent returns the sentinel representing "this property does not exist".
// It is distinguished by identity; any attempt to store a value through it
// fails with an unsupported-operation error.
func (c *DescriptorCache) Absent() *PropertyDescriptor { return c.absent }

// Forbidden returns the shared frozen descriptor for a cached literal
// value: small non-negative integers and the two boolean literals. The
// second result is false when the value is outside the cached set and the
// caller must allocate.
func (c *DescriptorCache) Forbidden(v Value) (*PropertyDescriptor, bool) {
	switch v.Type() {
	case TypeIntegerNumber:
		i := v.AsInteger()
		if i >= 0 && int(i) < forbiddenIntCacheSize {
			return c.ints[i], true
		}
	case TypeFloatNumber:
		f := v.AsFloat()
		// Negative zero stays out of the integer entries: the cached value
		// is IntegerValue(0) and the sign would be lost.
		if math.Signbit(f) {
			return nil, false
		}
		i := int32(f)
		if float64(i) == f && int(i) < forbiddenIntCacheSize {
			return c.ints[i], true
		}
	case TypeBoolean:
		if v.AsBoolean() {
			return c.trueDesc, true
		}
		return c.falseDesc, true
	}
	return nil, false
}
