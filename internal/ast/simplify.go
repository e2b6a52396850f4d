package ast

// Simplify returns a reduced copy of the tree: constants are folded and
// additive/multiplicative identities eliminated, bottom up. The input is not
// mutated. Simplify is idempotent and preserves the evaluated value.

func (e *Expression) Simplify() AST {
	return &Expression{Root: SimplifyExpr(e.Root)}
}

func (e *Equality) Simplify() AST {
	return &Equality{
		LHS: SimplifyExpr(e.LHS),
		RHS: SimplifyExpr(e.RHS),
	}
}

// SimplifyExpr simplifies a single expression.
func SimplifyExpr(e MathExpr) MathExpr {
	switch n := e.(type) {
	case *Add:
		lhs := SimplifyExpr(n.LHS)
		rhs := SimplifyExpr(n.RHS)
		if a, lok := constantValue(lhs); lok {
			if b, rok := constantValue(rhs); rok {
				return &Constant{Value: a + b}
			}
			if isZero(a) {
				return rhs
			}
		}
		if b, rok := constantValue(rhs); rok && isZero(b) {
			return lhs
		}
		return addWrapped(lhs, rhs)
	case *Subtract:
		lhs := SimplifyExpr(n.LHS)
		rhs := SimplifyExpr(n.RHS)
		if a, lok := constantValue(lhs); lok {
			if b, rok := constantValue(rhs); rok {
				return &Constant{Value: a - b}
			}
		}
		if b, rok := constantValue(rhs); rok && isZero(b) {
			return lhs
		}
		return subtractWrapped(lhs, rhs)
	case Term:
		return simplifyTerm(n)
	}
	return e
}

func simplifyTerm(t Term) MathExpr {
	switch n := t.(type) {
	case *Multiply:
		lhs := SimplifyExpr(n.LHS)
		rhs := SimplifyExpr(n.RHS)
		if a, lok := constantValue(lhs); lok {
			if isZero(a) {
				return &Constant{Value: 0}
			}
			if isOne(a) {
				return rhs
			}
			if b, rok := constantValue(rhs); rok {
				return &Constant{Value: a * b}
			}
			if inner, ok := rhs.(*Multiply); ok {
				if b, iok := constantValue(inner.LHS); iok {
					return mulWrapped(inner.Kind, &Constant{Value: a * b}, inner.RHS)
				}
			}
		}
		if b, rok := constantValue(rhs); rok {
			if isZero(b) {
				return &Constant{Value: 0}
			}
			if isOne(b) {
				return lhs
			}
		}
		return mulWrapped(n.Kind, lhs, rhs)
	case *Divide:
		return divWrapped(SimplifyExpr(n.LHS), SimplifyExpr(n.RHS))
	case Factor:
		return simplifyFactor(n)
	}
	return t
}

func simplifyFactor(f Factor) MathExpr {
	switch n := f.(type) {
	case *Constant:
		return &Constant{Value: n.Value}
	case *Parenthesis:
		return SimplifyExpr(n.Inner)
	case *Variable:
		return n
	case *FunctionCall:
		args := make([]MathExpr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = SimplifyExpr(arg)
		}
		return &FunctionCall{Name: n.Name, Args: args}
	case *Power:
		base := SimplifyExpr(n.Base)
		exponent := SimplifyExpr(n.Exponent)
		if e, ok := constantValue(exponent); ok {
			if isOne(e) {
				return base
			}
			if isZero(e) {
				return &Constant{Value: 1}
			}
		}
		if b, ok := constantValue(base); ok && isOne(b) {
			return &Constant{Value: 1}
		}
		return &Power{Base: FactorOrWrap(base), Exponent: exponent}
	case *Root:
		var degree MathExpr
		if n.Degree != nil {
			degree = SimplifyExpr(n.Degree)
		}
		return &Root{Degree: degree, Radicand: SimplifyExpr(n.Radicand)}
	case *Fraction:
		return &Fraction{
			Numerator:   SimplifyExpr(n.Numerator),
			Denominator: SimplifyExpr(n.Denominator),
		}
	case *Abs:
		return &Abs{Inner: SimplifyExpr(n.Inner)}
	case *MatrixLiteral:
		cells, _ := MapMatrix(n.Cells, func(cell MathExpr) (MathExpr, error) {
			return SimplifyExpr(cell), nil
		})
		return &MatrixLiteral{Cells: cells}
	}
	return f
}
