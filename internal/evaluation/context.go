package evaluation

import (
	"math"

	"github.com/taldoflemis/lateq/internal/ast"
)

// MathContext holds the variable and function bindings an expression is
// resolved against. Bindings are keyed by the identifier's structural key.
//
// A context is passed by reference into the parser (for function-name
// disambiguation) and into the approximator (for resolution) during a single
// parse or evaluation; mutation happens only between calls.
type MathContext struct {
	variables map[string]Value
	functions map[string]*MathFunction
}

func NewMathContext() *MathContext {
	return &MathContext{
		variables: make(map[string]Value),
		functions: make(map[string]*MathFunction),
	}
}

// StandardMath returns a context with the standard constants and the
// single-argument scalar functions.
func StandardMath() *MathContext {
	mctx := NewMathContext()

	mctx.AddVariable(ast.IdentifierFromCommand("pi"), Scalar(math.Pi))
	mctx.AddVariable(ast.IdentifierFromName("e"), Scalar(math.E))

	mctx.SetFunction(ast.IdentifierFromCommand("sin"), scalarFunc(math.Sin))
	mctx.SetFunction(ast.IdentifierFromCommand("cos"), scalarFunc(math.Cos))
	mctx.SetFunction(ast.IdentifierFromCommand("tan"), scalarFunc(math.Tan))
	mctx.SetFunction(ast.IdentifierFromCommand("ln"), scalarFunc(math.Log))

	return mctx
}

// Clone returns an independent copy of the bindings.
func (m *MathContext) Clone() *MathContext {
	clone := NewMathContext()
	for key, value := range m.variables {
		clone.variables[key] = value
	}
	for key, fn := range m.functions {
		clone.functions[key] = fn
	}
	return clone
}

// Merge copies bindings from other for keys not already present. Existing
// bindings win.
func (m *MathContext) Merge(other *MathContext) {
	for key, value := range other.variables {
		if _, ok := m.variables[key]; !ok {
			m.variables[key] = value
		}
	}
	for key, fn := range other.functions {
		if _, ok := m.functions[key]; !ok {
			m.functions[key] = fn
		}
	}
}

// IsDefinedFunction reports whether the identifier names a function. The
// parser consults this to tell function calls apart from implicit
// multiplication.
func (m *MathContext) IsDefinedFunction(id ast.MathIdentifier) bool {
	_, ok := m.functions[id.Key()]
	return ok
}

// AddVariable binds a value to the identifier, replacing any previous
// binding.
func (m *MathContext) AddVariable(id ast.MathIdentifier, value Value) {
	m.variables[id.Key()] = value
}

// Variable looks up the value bound to the identifier.
func (m *MathContext) Variable(id ast.MathIdentifier) (Value, bool) {
	value, ok := m.variables[id.Key()]
	return value, ok
}

// AddFunction binds a native function with the given arity.
func (m *MathContext) AddFunction(id ast.MathIdentifier, fn NativeFunc, arity int) {
	m.functions[id.Key()] = NewNativeFunction(fn, arity)
}

// SetFunction binds an already constructed function.
func (m *MathContext) SetFunction(id ast.MathIdentifier, fn *MathFunction) {
	m.functions[id.Key()] = fn
}

// Function looks up the function bound to the identifier.
func (m *MathContext) Function(id ast.MathIdentifier) (*MathFunction, bool) {
	fn, ok := m.functions[id.Key()]
	return fn, ok
}
