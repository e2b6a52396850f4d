package evaluation

import (
	"github.com/taldoflemis/lateq/internal/ast"
)

// NativeFunc is the Go implementation of a native math function. It receives
// the already evaluated arguments and the calling context.
type NativeFunc func(args []Value, mctx *MathContext) (Value, error)

// MathFunction is a callable bound in a MathContext. It is either native (a
// Go function with a declared arity) or foreign (an expression body with an
// ordered parameter list, defined from the calculator itself).
type MathFunction struct {
	native NativeFunc
	arity  int

	body   ast.MathExpr
	params []ast.MathIdentifier
}

// NewNativeFunction wraps a Go function with its declared arity.
func NewNativeFunction(fn NativeFunc, arity int) *MathFunction {
	return &MathFunction{native: fn, arity: arity}
}

// NewForeignFunction wraps an expression body over the given parameters.
func NewForeignFunction(body ast.MathExpr, params []ast.MathIdentifier) *MathFunction {
	return &MathFunction{body: body, params: params, arity: len(params)}
}

// Arity returns the number of arguments the function accepts.
func (f *MathFunction) Arity() int {
	return f.arity
}

// IsForeign reports whether the function was defined from an expression.
func (f *MathFunction) IsForeign() bool {
	return f.body != nil
}

// Body returns the expression body and parameters of a foreign function.
func (f *MathFunction) Body() (ast.MathExpr, []ast.MathIdentifier) {
	return f.body, f.params
}

// Call validates the argument count and dispatches. Foreign functions
// evaluate their body against a copy of the calling context with the
// parameters bound to the argument values.
func (f *MathFunction) Call(args []Value, mctx *MathContext) (Value, error) {
	if len(args) != f.arity {
		return nil, &ArgumentLengthMismatchError{
			Expected: f.arity,
			Found:    len(args),
		}
	}
	if f.native != nil {
		return f.native(args, mctx)
	}

	scope := mctx.Clone()
	for i, param := range f.params {
		scope.AddVariable(param, args[i])
	}
	return NewApproximator(scope).EvalExpression(f.body)
}

// scalarFunc adapts a float64 function of one argument into a native math
// function.
func scalarFunc(fn func(float64) float64) *MathFunction {
	return NewNativeFunction(func(args []Value, _ *MathContext) (Value, error) {
		s, err := AsScalar(args[0])
		if err != nil {
			return nil, err
		}
		return Scalar(fn(s)), nil
	}, 1)
}
