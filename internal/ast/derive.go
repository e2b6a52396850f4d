package ast

import "fmt"

// UnsupportedDerivativeError reports a node kind the differentiator has no
// rule for.
type UnsupportedDerivativeError struct {
	Node string
}

func (e *UnsupportedDerivativeError) Error() string {
	return fmt.Sprintf("derivative of %s is not implemented", e.Node)
}

// Derivative differentiates the expression with respect to the dependent
// variable, producing a new tree. The result is usually fed through Simplify.
func (e *Expression) Derivative(dependent MathIdentifier) (AST, error) {
	root, err := DeriveExpr(e.Root, dependent)
	if err != nil {
		return nil, err
	}
	return &Expression{Root: root}, nil
}

// Derivative differentiates both sides of the equality.
func (e *Equality) Derivative(dependent MathIdentifier) (AST, error) {
	lhs, err := DeriveExpr(e.LHS, dependent)
	if err != nil {
		return nil, err
	}
	rhs, err := DeriveExpr(e.RHS, dependent)
	if err != nil {
		return nil, err
	}
	return &Equality{LHS: lhs, RHS: rhs}, nil
}

// DeriveExpr differentiates a single expression with respect to the
// dependent variable.
func DeriveExpr(e MathExpr, dependent MathIdentifier) (MathExpr, error) {
	switch n := e.(type) {
	case *Add:
		lhs, err := DeriveExpr(n.LHS, dependent)
		if err != nil {
			return nil, err
		}
		rhs, err := DeriveExpr(n.RHS, dependent)
		if err != nil {
			return nil, err
		}
		return &Add{LHS: lhs, RHS: TermOrWrap(rhs)}, nil
	case *Subtract:
		lhs, err := DeriveExpr(n.LHS, dependent)
		if err != nil {
			return nil, err
		}
		rhs, err := DeriveExpr(n.RHS, dependent)
		if err != nil {
			return nil, err
		}
		return &Subtract{LHS: lhs, RHS: TermOrWrap(rhs)}, nil
	case Term:
		return deriveTerm(n, dependent)
	}
	return nil, &UnsupportedDerivativeError{Node: fmt.Sprintf("%T", e)}
}

func deriveTerm(t Term, dependent MathIdentifier) (MathExpr, error) {
	switch n := t.(type) {
	case *Multiply:
		dl, err := DeriveExpr(n.LHS, dependent)
		if err != nil {
			return nil, err
		}
		dr, err := DeriveExpr(n.RHS, dependent)
		if err != nil {
			return nil, err
		}
		// Product rule: (ab)' = a'b + ab'.
		return &Add{
			LHS: &Multiply{Kind: n.Kind, LHS: TermOrWrap(dl), RHS: n.RHS},
			RHS: &Multiply{Kind: n.Kind, LHS: n.LHS, RHS: FactorOrWrap(dr)},
		}, nil
	case *Divide:
		return quotientRule(n.LHS, n.RHS, dependent)
	case Factor:
		return deriveFactor(n, dependent)
	}
	return nil, &UnsupportedDerivativeError{Node: fmt.Sprintf("%T", t)}
}

// quotientRule differentiates f/g, covering both Divide and Fraction nodes.
func quotientRule(f, g MathExpr, dependent MathIdentifier) (MathExpr, error) {
	df, err := DeriveExpr(f, dependent)
	if err != nil {
		return nil, err
	}
	dg, err := DeriveExpr(g, dependent)
	if err != nil {
		return nil, err
	}

	// f'(x)g(x)
	a := &Multiply{
		Kind: MulKindImplicit,
		LHS:  TermOrWrap(df),
		RHS:  FactorOrWrap(g),
	}
	// f(x)g'(x)
	b := &Multiply{
		Kind: MulKindImplicit,
		LHS:  TermOrWrap(f),
		RHS:  FactorOrWrap(dg),
	}

	top := &Subtract{LHS: a, RHS: b}
	bottom := &Power{Base: FactorOrWrap(g), Exponent: &Constant{Value: 2}}

	return &Fraction{Numerator: top, Denominator: bottom}, nil
}

func deriveFactor(f Factor, dependent MathIdentifier) (MathExpr, error) {
	switch n := f.(type) {
	case *Constant:
		return &Constant{Value: 0}, nil
	case *Parenthesis:
		return DeriveExpr(n.Inner, dependent)
	case *Variable:
		if n.Ident.Equal(dependent) {
			return &Constant{Value: 1}, nil
		}
		return &Constant{Value: 0}, nil
	case *Power:
		return derivePower(n, dependent)
	case *Fraction:
		return quotientRule(n.Numerator, n.Denominator, dependent)
	case *FunctionCall:
		return nil, &UnsupportedDerivativeError{Node: "a function call"}
	case *Root:
		return nil, &UnsupportedDerivativeError{Node: "a root"}
	case *Abs:
		return nil, &UnsupportedDerivativeError{Node: "an absolute value"}
	case *MatrixLiteral:
		return nil, &UnsupportedDerivativeError{Node: "a matrix"}
	}
	return nil, &UnsupportedDerivativeError{Node: fmt.Sprintf("%T", f)}
}

// derivePower applies the generalized power rule
// (b^e)' = e*b^(e-1)*b' + ln(b)*b^e*e', which covers constant exponents,
// constant bases and the full b(x)^e(x) case at once.
func derivePower(p *Power, dependent MathIdentifier) (MathExpr, error) {
	db, err := DeriveExpr(p.Base, dependent)
	if err != nil {
		return nil, err
	}
	de, err := DeriveExpr(p.Exponent, dependent)
	if err != nil {
		return nil, err
	}

	// e*b^(e-1)*b'
	a := &Multiply{
		Kind: MulKindImplicit,
		LHS: &Multiply{
			Kind: MulKindImplicit,
			LHS:  FactorOrWrap(p.Exponent),
			RHS: &Power{
				Base: p.Base,
				Exponent: &Subtract{
					LHS: p.Exponent,
					RHS: &Constant{Value: 1},
				},
			},
		},
		RHS: FactorOrWrap(db),
	}

	// ln(b)*b^e*e'
	b := &Multiply{
		Kind: MulKindImplicit,
		LHS: &Multiply{
			Kind: MulKindImplicit,
			LHS: &FunctionCall{
				Name: IdentifierFromCommand("ln"),
				Args: []MathExpr{p.Base},
			},
			RHS: &Power{Base: p.Base, Exponent: p.Exponent},
		},
		RHS: FactorOrWrap(de),
	}

	return &Add{LHS: a, RHS: b}, nil
}
