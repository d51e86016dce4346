package domain

// Value is the runtime value flowing through a compiled module: a vector
// of float64 applied elementwise. A length-1 value broadcasts against any
// other length.
type Value []float64

// Scalar returns a length-1 value.
func Scalar(f float64) Value {
	return Value{f}
}

// Clone returns a copy of the value.
func (v Value) Clone() Value {
	c := make(Value, len(v))
	copy(c, v)
	return c
}

// Entry is the compiled entry point of a module. A saved Entry obtained
// from a module is a trampoline: it resolves the current compiled program
// on every call, so it never executes stale behavior.
type Entry func(inputs ...Value) (Value, error)
