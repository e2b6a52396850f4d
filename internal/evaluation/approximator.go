package evaluation

import (
	"fmt"
	"math"

	"github.com/taldoflemis/lateq/internal/ast"
)

// Approximator numerically evaluates expression trees against a MathContext.
// It is a single-threaded recursion over owned trees; the input is never
// mutated.
type Approximator struct {
	context *MathContext
}

func NewApproximator(mctx *MathContext) *Approximator {
	if mctx == nil {
		mctx = NewMathContext()
	}
	return &Approximator{context: mctx}
}

// Context returns the context the approximator resolves against.
func (a *Approximator) Context() *MathContext {
	return a.context
}

// EvalExpression evaluates an expression to a Value.
func (a *Approximator) EvalExpression(expr ast.MathExpr) (Value, error) {
	switch n := expr.(type) {
	case *ast.Add:
		lhs, err := a.EvalExpression(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := a.EvalExpression(n.RHS)
		if err != nil {
			return nil, err
		}
		return AddValues(lhs, rhs)
	case *ast.Subtract:
		lhs, err := a.EvalExpression(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := a.EvalExpression(n.RHS)
		if err != nil {
			return nil, err
		}
		return SubtractValues(lhs, rhs)
	case ast.Term:
		return a.evalTerm(n)
	}
	return nil, &IncompatibleTypesError{Message: fmt.Sprintf("unknown expression node %T", expr)}
}

func (a *Approximator) evalTerm(term ast.Term) (Value, error) {
	switch n := term.(type) {
	case *ast.Multiply:
		lhs, err := a.evalTerm(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := a.evalFactor(n.RHS)
		if err != nil {
			return nil, err
		}
		return MultiplyValues(n.Kind, lhs, rhs)
	case *ast.Divide:
		lhs, err := a.evalTerm(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := a.evalFactor(n.RHS)
		if err != nil {
			return nil, err
		}
		return DivideValues(lhs, rhs)
	case ast.Factor:
		return a.evalFactor(n)
	}
	return nil, &IncompatibleTypesError{Message: fmt.Sprintf("unknown term node %T", term)}
}

func (a *Approximator) evalFactor(factor ast.Factor) (Value, error) {
	switch n := factor.(type) {
	case *ast.Constant:
		return Scalar(n.Value), nil
	case *ast.Parenthesis:
		return a.EvalExpression(n.Inner)
	case *ast.Variable:
		value, ok := a.context.Variable(n.Ident)
		if !ok {
			return nil, ErrNotDefined
		}
		return value, nil
	case *ast.FunctionCall:
		return a.evalFunctionCall(n)
	case *ast.Power:
		base, err := a.evalScalar(n.Base)
		if err != nil {
			return nil, err
		}
		exponent, err := a.evalScalar(n.Exponent)
		if err != nil {
			return nil, err
		}
		return Scalar(math.Pow(base, exponent)), nil
	case *ast.Root:
		radicand, err := a.evalScalar(n.Radicand)
		if err != nil {
			return nil, err
		}
		if n.Degree == nil {
			return Scalar(math.Sqrt(radicand)), nil
		}
		degree, err := a.evalScalar(n.Degree)
		if err != nil {
			return nil, err
		}
		return Scalar(math.Pow(radicand, 1.0/degree)), nil
	case *ast.Fraction:
		numerator, err := a.EvalExpression(n.Numerator)
		if err != nil {
			return nil, err
		}
		denominator, err := a.EvalExpression(n.Denominator)
		if err != nil {
			return nil, err
		}
		return DivideValues(numerator, denominator)
	case *ast.Abs:
		inner, err := a.evalScalar(n.Inner)
		if err != nil {
			return nil, err
		}
		return Scalar(math.Abs(inner)), nil
	case *ast.MatrixLiteral:
		cells, err := ast.MapMatrix(n.Cells, func(cell ast.MathExpr) (Value, error) {
			return a.EvalExpression(cell)
		})
		if err != nil {
			return nil, err
		}
		return &MatrixValue{Cells: cells}, nil
	}
	return nil, &IncompatibleTypesError{Message: fmt.Sprintf("unknown factor node %T", factor)}
}

func (a *Approximator) evalFunctionCall(call *ast.FunctionCall) (Value, error) {
	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		value, err := a.EvalExpression(arg)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}

	fn, ok := a.context.Function(call.Name)
	if !ok {
		return nil, ErrNotDefined
	}
	return fn.Call(args, a.context)
}

func (a *Approximator) evalScalar(expr ast.MathExpr) (float64, error) {
	value, err := a.EvalExpression(expr)
	if err != nil {
		return 0, err
	}
	return AsScalar(value)
}
