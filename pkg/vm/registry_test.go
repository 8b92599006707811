package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsprop/pkg/errors"
)

func TestForbiddenCacheSharesInstances(t *testing.T) {
	vmctx := New()
	cache := vmctx.Descriptors()

	first, ok := cache.Forbidden(IntegerValue(3))
	require.True(t, ok)
	second, ok := cache.Forbidden(IntegerValue(3))
	require.True(t, ok)
	assert.Same(t, first, second, "two requests for the same literal must share one instance")

	// A float spelling of the same integer hits the same entry.
	viaFloat, ok := cache.Forbidden(NumberValue(3))
	require.True(t, ok)
	assert.Same(t, first, viaFloat)

	assert.True(t, first.ValueOrUndefined().Is(IntegerValue(3)))
	assert.False(t, first.Writable())
	assert.True(t, first.WritableSet())
	assert.False(t, first.Enumerable())
	assert.True(t, first.EnumerableSet())
	assert.False(t, first.Configurable())
	assert.True(t, first.ConfigurableSet())
	assert.True(t, first.IsAllForbidden())
}

func TestForbiddenCacheBooleans(t *testing.T) {
	cache := New().Descriptors()

	td, ok := cache.Forbidden(True)
	require.True(t, ok)
	fd, ok := cache.Forbidden(False)
	require.True(t, ok)

	assert.NotSame(t, td, fd)
	assert.True(t, td.ValueOrUndefined().Is(True))
	assert.True(t, fd.ValueOrUndefined().Is(False))
	assert.True(t, td.IsAllForbidden())
	assert.True(t, fd.IsAllForbidden())
}

func TestForbiddenCacheMisses(t *testing.T) {
	cache := New().Descriptors()

	tests := []struct {
		name  string
		value Value
	}{
		{"negative integer", IntegerValue(-1)},
		{"past the cached range", IntegerValue(forbiddenIntCacheSize)},
		{"fractional float", NumberValue(3.5)},
		{"negative zero", NumberValue(math.Copysign(0, -1))},
		{"string", NewString("3")},
		{"undefined", Undefined},
		{"null", Null},
		{"object", NewObject(Null)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd, ok := cache.Forbidden(tt.value)
			assert.False(t, ok)
			assert.Nil(t, pd)
		})
	}
}

func TestSharedDescriptorMutationPanics(t *testing.T) {
	cache := New().Descriptors()
	pd, ok := cache.Forbidden(IntegerValue(3))
	require.True(t, ok)

	require.Panics(t, func() { pd.SetWritable(FlagTrue) })
	require.Panics(t, func() { pd.SetEnumerable(FlagTrue) })
	require.Panics(t, func() { pd.SetConfigurable(FlagTrue) })
	require.Panics(t, func() { _ = pd.SetValue(IntegerValue(4)) })
}

func TestAbsentSentinel(t *testing.T) {
	vmctx := New()
	cache := vmctx.Descriptors()

	absent := cache.Absent()
	assert.Same(t, absent, cache.Absent(), "the sentinel is a singleton per instance")
	assert.True(t, absent.IsAbsent())

	// Any attempted value write is an unsupported operation, for any value.
	for _, v := range []Value{IntegerValue(1), Undefined, NewString("x"), NewObject(Null)} {
		err := absent.SetValue(v)
		require.Error(t, err)
		assert.True(t, errors.IsUnsupportedOperation(err))
	}
}

func TestRegistryIsPerInstance(t *testing.T) {
	a := New()
	b := New()

	assert.NotSame(t, a.Descriptors(), b.Descriptors())
	assert.NotSame(t, a.Descriptors().Absent(), b.Descriptors().Absent())

	ad, _ := a.Descriptors().Forbidden(IntegerValue(0))
	bd, _ := b.Descriptors().Forbidden(IntegerValue(0))
	assert.NotSame(t, ad, bd, "no cross-instance sharing")

	// Within one instance the cache is built exactly once.
	assert.Same(t, a.Descriptors(), a.Descriptors())
}
