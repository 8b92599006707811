package vm

import (
	"unsafe"
)

// NativeFunctionObject represents a native Go function callable from the engine.
// The this argument carries the receiver; getters invoked through the
// effective-value resolver observe the descriptor's receiver here.
type NativeFunctionObject struct {
	Object
	Arity    int
	Variadic bool
	Name     string
	Fn       func(this Value, args []Value) (Value, error)
}

func NewNativeFunction(arity int, variadic bool, name string, fn func(this Value, args []Value) (Value, error)) Value {
	return Value{typ: TypeNativeFunction, obj: unsafe.Pointer(&NativeFunctionObject{
		Arity:    arity,
		Variadic: variadic,
		Name:     name,
		Fn:       fn,
	})}
}
