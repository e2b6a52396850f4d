package ast_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/evaluation"
	"github.com/taldoflemis/lateq/internal/parsers"
)

func parseAST(t *testing.T, text string) ast.AST {
	t.Helper()
	found, err := parsers.Parse(context.Background(), text, evaluation.StandardMath())
	require.NoError(t, err)
	return found
}

func constant(v float64) *ast.Expression {
	return &ast.Expression{Root: &ast.Constant{Value: v}}
}

func TestSimplifyConstantFolding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want ast.AST
	}{
		{name: "one plus one", text: "1+1", want: constant(2)},
		{name: "one minus one", text: "1-1", want: constant(0)},
		{name: "two minus one", text: "2-1", want: constant(1)},
		{name: "one times one", text: "1*1", want: constant(1)},
		{name: "one times zero", text: "1*0", want: constant(0)},
		{name: "zero times parenthesis", text: "0*(1+1+1+1+1*2)", want: constant(0)},
		{name: "nested constants", text: "2*3+4", want: constant(10)},
		{name: "power of one", text: "x^1", want: &ast.Expression{
			Root: &ast.Variable{Ident: ast.IdentifierFromName("x")},
		}},
		{name: "power of zero", text: "x^0", want: constant(1)},
		{name: "one to any power", text: "1^x", want: constant(1)},
		{name: "additive identity", text: "x+0", want: &ast.Expression{
			Root: &ast.Variable{Ident: ast.IdentifierFromName("x")},
		}},
		{name: "zero on the left", text: "0+x", want: &ast.Expression{
			Root: &ast.Variable{Ident: ast.IdentifierFromName("x")},
		}},
		{name: "multiplicative identity", text: "1x", want: &ast.Expression{
			Root: &ast.Variable{Ident: ast.IdentifierFromName("x")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, parseAST(t, tt.text).Simplify())
		})
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1+1",
		"2x^{2} + 5xy",
		`\frac{2(1+1)^3+5}{\sqrt{\frac{49}{3}\sqrt[3]{27}}}`,
		"x+y+z",
		"0*(x+1)+y",
		`\begin{bmatrix} 1+1 & 0x \\ 2 & 3 \end{bmatrix}`,
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			once := parseAST(t, text).Simplify()
			twice := once.Simplify()
			assert.Equal(t, once, twice)
		})
	}
}

func TestSimplifyPreservesValue(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1+2*3",
		"2(3)^3",
		`\frac{2(1+1)^3+5}{\sqrt{\frac{49}{3}\sqrt[3]{27}}}`,
		"0*7+2^{3}",
		"|-3|+1",
	}

	approximator := evaluation.NewApproximator(evaluation.StandardMath())
	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			parsed := parseAST(t, text)
			expression, ok := parsed.(*ast.Expression)
			require.True(t, ok)
			simplified, ok := parsed.Simplify().(*ast.Expression)
			require.True(t, ok)

			original, err := approximator.EvalExpression(expression.Root)
			require.NoError(t, err)
			reduced, err := approximator.EvalExpression(simplified.Root)
			require.NoError(t, err)

			assert.InDelta(t, mustScalar(t, original), mustScalar(t, reduced), 1e-9)
		})
	}
}

func TestSimplifyEquality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, &ast.Equality{
		LHS: &ast.Variable{Ident: ast.IdentifierFromName("x")},
		RHS: &ast.Constant{Value: 3},
	}, parseAST(t, "x=1+2").Simplify())
}

func mustScalar(t *testing.T, v evaluation.Value) float64 {
	t.Helper()
	s, err := evaluation.AsScalar(v)
	require.NoError(t, err)
	return s
}
