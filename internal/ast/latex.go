package ast

import (
	"fmt"
	"strings"
)

// Latex renders the tree back to LaTeX source. The rendering re-parses to an
// identical tree up to wrapping.

func (e *Expression) Latex() string {
	return e.Root.Latex()
}

func (e *Equality) Latex() string {
	return e.LHS.Latex() + "=" + e.RHS.Latex()
}

func (a *Add) Latex() string {
	return a.LHS.Latex() + "+" + a.RHS.Latex()
}

func (s *Subtract) Latex() string {
	return s.LHS.Latex() + "-" + s.RHS.Latex()
}

func (m *Multiply) Latex() string {
	return m.LHS.Latex() + m.Kind.String() + m.RHS.Latex()
}

func (d *Divide) Latex() string {
	return fmt.Sprintf(`\frac{%s}{%s}`, d.LHS.Latex(), d.RHS.Latex())
}

func (c *Constant) Latex() string {
	return fmt.Sprintf("%g", c.Value)
}

func (p *Parenthesis) Latex() string {
	return fmt.Sprintf(`\left(%s\right)`, p.Inner.Latex())
}

func (v *Variable) Latex() string {
	return v.Ident.Latex()
}

func (f *FunctionCall) Latex() string {
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		args[i] = arg.Latex()
	}
	return fmt.Sprintf("%s(%s)", f.Name.Latex(), strings.Join(args, ","))
}

func (p *Power) Latex() string {
	return fmt.Sprintf("%s^{%s}", p.Base.Latex(), p.Exponent.Latex())
}

func (r *Root) Latex() string {
	if r.Degree != nil {
		return fmt.Sprintf(`\sqrt[%s]{%s}`, r.Degree.Latex(), r.Radicand.Latex())
	}
	return fmt.Sprintf(`\sqrt{%s}`, r.Radicand.Latex())
}

func (f *Fraction) Latex() string {
	return fmt.Sprintf(`\frac{%s}{%s}`, f.Numerator.Latex(), f.Denominator.Latex())
}

func (a *Abs) Latex() string {
	return "|" + a.Inner.Latex() + "|"
}

func (m *MatrixLiteral) Latex() string {
	var b strings.Builder
	b.WriteString(`\begin{bmatrix}`)
	for row := 0; row < m.Cells.RowCount(); row++ {
		if row > 0 {
			b.WriteString(` \\`)
		}
		for column := 0; column < m.Cells.ColumnCount(); column++ {
			if column > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(m.Cells.Get(row, column).Latex())
		}
	}
	b.WriteString(`\end{bmatrix}`)
	return b.String()
}
