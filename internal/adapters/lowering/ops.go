package lowering

import (
	"math"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/zerr"
)

// opFunc applies one operation to already-evaluated operands.
type opFunc func(args []domain.Value, attrs map[string]float64) (domain.Value, error)

type opDef struct {
	arity int
	fn    opFunc
}

// registry maps operation targets to their implementations. Lowering
// rejects graphs that reference targets outside this table.
var registry = map[string]opDef{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"neg":  unary(func(x float64) float64 { return -x }),
	"relu": unary(func(x float64) float64 { return math.Max(x, 0) }),

	"add": binary(func(a, b float64) float64 { return a + b }),
	"sub": binary(func(a, b float64) float64 { return a - b }),
	"mul": binary(func(a, b float64) float64 { return a * b }),
	"div": binary(func(a, b float64) float64 { return a / b }),
	"pow": binary(math.Pow),

	// scale and offset read their scalar operand from node attributes.
	"scale": {arity: 1, fn: func(args []domain.Value, attrs map[string]float64) (domain.Value, error) {
		factor := attrOr(attrs, "factor", 1)
		return mapValue(args[0], func(x float64) float64 { return x * factor }), nil
	}},
	"offset": {arity: 1, fn: func(args []domain.Value, attrs map[string]float64) (domain.Value, error) {
		bias := attrOr(attrs, "bias", 0)
		return mapValue(args[0], func(x float64) float64 { return x + bias }), nil
	}},
}

// Targets returns the registered operation names, for diagnostics.
func Targets() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func unary(f func(float64) float64) opDef {
	return opDef{arity: 1, fn: func(args []domain.Value, _ map[string]float64) (domain.Value, error) {
		return mapValue(args[0], f), nil
	}}
}

func binary(f func(a, b float64) float64) opDef {
	return opDef{arity: 2, fn: func(args []domain.Value, _ map[string]float64) (domain.Value, error) {
		return zipValues(args[0], args[1], f)
	}}
}

func mapValue(v domain.Value, f func(float64) float64) domain.Value {
	out := make(domain.Value, len(v))
	for i, x := range v {
		out[i] = f(x)
	}
	return out
}

// zipValues applies f elementwise. A length-1 operand broadcasts against
// the other operand's length.
func zipValues(a, b domain.Value, f func(x, y float64) float64) (domain.Value, error) {
	switch {
	case len(a) == len(b):
		out := make(domain.Value, len(a))
		for i := range a {
			out[i] = f(a[i], b[i])
		}
		return out, nil
	case len(a) == 1:
		out := make(domain.Value, len(b))
		for i := range b {
			out[i] = f(a[0], b[i])
		}
		return out, nil
	case len(b) == 1:
		out := make(domain.Value, len(a))
		for i := range a {
			out[i] = f(a[i], b[0])
		}
		return out, nil
	default:
		return nil, zerr.With(zerr.With(domain.ErrShapeMismatch, "left", len(a)), "right", len(b))
	}
}

func attrOr(attrs map[string]float64, key string, def float64) float64 {
	if v, ok := attrs[key]; ok {
		return v
	}
	return def
}
