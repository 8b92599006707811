package vm

import (
	"jsprop/pkg/errors"
)

// ValueStrategy supplies the load/store behavior for descriptors whose
// value is not stored inline: properties whose backing value is recomputed
// or validated on write rather than stored verbatim (a length-like
// property), and the absent sentinel.
type ValueStrategy interface {
	// Load computes the effective value. The second result is false when
	// the strategy has no concrete value to offer.
	Load() (Value, bool)
	// Store validates and applies a write to the backing value.
	Store(v Value) error
}

// RejectStrategy is the default strategy behavior: it holds no value and
// every write fails with an unsupported-operation error. The absent
// sentinel is built on it, turning "mutate the absent descriptor" into a
// hard failure rather than silently creating a phantom value.
type RejectStrategy struct{}

func (RejectStrategy) Load() (Value, bool) { return Undefined, false }

func (RejectStrategy) Store(v Value) error {
	return errors.NewUnsupportedOperationError("cannot write a value through a strategy with no store behavior")
}

// FuncStrategy adapts a pair of closures to a ValueStrategy. A nil LoadFn
// offers no value; a nil StoreFn rejects writes like RejectStrategy.
type FuncStrategy struct {
	LoadFn  func() (Value, bool)
	StoreFn func(Value) error
}

func (s FuncStrategy) Load() (Value, bool) {
	if s.LoadFn == nil {
		return Undefined, false
	}
	return s.LoadFn()
}

func (s FuncStrategy) Store(v Value) error {
	if s.StoreFn == nil {
		return RejectStrategy{}.Store(v)
	}
	return s.StoreFn(v)
}
