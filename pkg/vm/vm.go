package vm

import (
	"sync"

	"jsprop/pkg/errors"
)

// VM is the runtime context for one engine instance. It owns the
// descriptor cache so that multiple embedded instances stay fully
// isolated; nothing here is shared process-wide. The engine is
// single-threaded per instance: all descriptor construction,
// classification and conversion is synchronous and either completes or
// fails immediately.
type VM struct {
	// ObjectPrototype is the prototype given to plain objects the engine
	// materializes, e.g. the result of FromPropertyDescriptor.
	ObjectPrototype Value

	descOnce    sync.Once
	descriptors *DescriptorCache
}

// New creates a fresh engine instance.
func New() *VM {
	vm := &VM{}
	vm.ObjectPrototype = NewObject(Null)
	return vm
}

// Descriptors returns the instance's descriptor cache, building it exactly
// once on first use. After initialization the cache is read-only, so no
// further locking is needed.
func (vm *VM) Descriptors() *DescriptorCache {
	vm.descOnce.Do(func() {
		vm.descriptors = newDescriptorCache()
	})
	return vm.descriptors
}

// Call invokes a callable value with the given this binding. Getter
// invocation in the effective-value resolver funnels through here; a
// callee can run arbitrary code, so its error propagates unchanged.
func (vm *VM) Call(fn Value, this Value, args []Value) (Value, error) {
	if !fn.IsCallable() {
		return Undefined, errors.NewTypeError("%s is not a function", fn.TypeName())
	}
	native := fn.AsNativeFunction()
	return native.Fn(this, args)
}
