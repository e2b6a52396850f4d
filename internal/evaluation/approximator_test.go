package evaluation_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/evaluation"
	"github.com/taldoflemis/lateq/internal/parsers"
)

func evalScalar(t *testing.T, mctx *evaluation.MathContext, text string) float64 {
	t.Helper()

	parsed, err := parsers.Parse(context.Background(), text, mctx)
	require.NoError(t, err)
	expression, ok := parsed.(*ast.Expression)
	require.True(t, ok, "expected an expression, got %T", parsed)

	value, err := evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	require.NoError(t, err)
	scalar, err := evaluation.AsScalar(value)
	require.NoError(t, err)
	return scalar
}

func TestApproximatorScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "one plus one", text: "1+1", want: 2.0},
		{name: "precedence", text: "2+3*5", want: 17.0},
		{name: "parenthesis and exponent", text: "2(3)^3", want: 54.0},
		{
			name: "fraction sqrt cube root",
			text: `\frac{2( 1+1)^{3} +5}{\sqrt{\frac{49}{3}\sqrt[3]{27}}}`,
			want: 3.0,
		},
		{name: "abs", text: "|-3|", want: 3.0},
		{name: "division", text: "7/2", want: 3.5},
		{name: "sqrt", text: `\sqrt{16}`, want: 4.0},
		{name: "cube root", text: `\sqrt[3]{27}`, want: 3.0},
		{name: "subtraction chain", text: "10-3-2", want: 5.0},
		{name: "negation", text: "-3+5", want: 2.0},
		{name: "exponent split", text: "2^025", want: 25.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found := evalScalar(t, evaluation.StandardMath(), tt.text)
			assert.InDelta(t, tt.want, found, 1e-9)
		})
	}
}

func TestApproximatorStandardContext(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	assert.InDelta(t, math.Pi, evalScalar(t, mctx, `\pi`), 1e-12)
	assert.InDelta(t, math.E, evalScalar(t, mctx, "e"), 1e-12)
	assert.InDelta(t, 1.0, evalScalar(t, mctx, `\sin(\frac{\pi}{2})`), 1e-12)
	assert.InDelta(t, -1.0, evalScalar(t, mctx, `\cos(\pi)`), 1e-12)
	assert.InDelta(t, 0.0, evalScalar(t, mctx, `\tan(0)`), 1e-12)
	assert.InDelta(t, 1.0, evalScalar(t, mctx, `\ln(e)`), 1e-12)
	assert.InDelta(t, math.Log(2), evalScalar(t, mctx, `\ln 2`), 1e-12)
}

func TestApproximatorAdditionCommutesUnderEvaluation(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	mctx.AddVariable(ast.IdentifierFromName("a"), evaluation.Scalar(13.5))
	mctx.AddVariable(ast.IdentifierFromName("b"), evaluation.Scalar(-2.25))

	assert.InDelta(t,
		evalScalar(t, mctx, "a+b"),
		evalScalar(t, mctx, "b+a"),
		1e-12,
	)
}

func TestApproximatorUndefinedVariable(t *testing.T) {
	t.Parallel()

	mctx := evaluation.NewMathContext()
	parsed, err := parsers.Parse(context.Background(), "x+1", mctx)
	require.NoError(t, err)
	expression := parsed.(*ast.Expression)

	_, err = evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	assert.ErrorIs(t, err, evaluation.ErrNotDefined)
}

func TestApproximatorMatrixLiteral(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	parsed, err := parsers.Parse(context.Background(),
		`\begin{bmatrix} 1+1 & 2 \\ 3 & 2*2 \end{bmatrix}`, mctx)
	require.NoError(t, err)
	expression := parsed.(*ast.Expression)

	value, err := evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	require.NoError(t, err)

	matrix, ok := value.(*evaluation.MatrixValue)
	require.True(t, ok)
	assert.Equal(t, evaluation.Scalar(2), matrix.Cells.Get(0, 0))
	assert.Equal(t, evaluation.Scalar(2), matrix.Cells.Get(0, 1))
	assert.Equal(t, evaluation.Scalar(3), matrix.Cells.Get(1, 0))
	assert.Equal(t, evaluation.Scalar(4), matrix.Cells.Get(1, 1))
}

func TestApproximatorMatrixProduct(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	text := `\begin{bmatrix} 1 & 2 \\ 3 & 4 \end{bmatrix}` +
		`\begin{bmatrix} 5 & 6 \\ 7 & 8 \end{bmatrix}`
	parsed, err := parsers.Parse(context.Background(), text, mctx)
	require.NoError(t, err)
	expression := parsed.(*ast.Expression)

	value, err := evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	require.NoError(t, err)

	matrix, ok := value.(*evaluation.MatrixValue)
	require.True(t, ok)
	assert.Equal(t, evaluation.Scalar(19), matrix.Cells.Get(0, 0))
	assert.Equal(t, evaluation.Scalar(22), matrix.Cells.Get(0, 1))
	assert.Equal(t, evaluation.Scalar(43), matrix.Cells.Get(1, 0))
	assert.Equal(t, evaluation.Scalar(50), matrix.Cells.Get(1, 1))
}

func TestApproximatorAsteriskBetweenMatricesIsAmbiguous(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	text := `\begin{bmatrix} 1 \end{bmatrix} * \begin{bmatrix} 2 \end{bmatrix}`
	parsed, err := parsers.Parse(context.Background(), text, mctx)
	require.NoError(t, err)
	expression := parsed.(*ast.Expression)

	_, err = evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	var ambiguous *evaluation.AmbiguousMulKindError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, ast.MulKindAsterisk, ambiguous.Kind)
}

func TestApproximatorForeignFunction(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	body, err := parsers.Parse(context.Background(), "x^2+1", mctx)
	require.NoError(t, err)
	mctx.SetFunction(
		ast.IdentifierFromName("f"),
		evaluation.NewForeignFunction(
			body.(*ast.Expression).Root,
			[]ast.MathIdentifier{ast.IdentifierFromName("x")},
		),
	)

	assert.InDelta(t, 10.0, evalScalar(t, mctx, "f(3)"), 1e-12)
	// The parameter binding is call-local.
	_, defined := mctx.Variable(ast.IdentifierFromName("x"))
	assert.False(t, defined)
}

func TestApproximatorArgumentLengthMismatch(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	parsed, err := parsers.Parse(context.Background(), `\sin(1,2)`, mctx)
	require.NoError(t, err)
	expression := parsed.(*ast.Expression)

	_, err = evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	var mismatch *evaluation.ArgumentLengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 1, mismatch.Expected)
	assert.Equal(t, 2, mismatch.Found)
}

func TestApproximatorPowerRequiresScalars(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	parsed, err := parsers.Parse(context.Background(),
		`\begin{bmatrix} 1 \end{bmatrix}^{2}`, mctx)
	require.NoError(t, err)
	expression := parsed.(*ast.Expression)

	_, err = evaluation.NewApproximator(mctx).EvalExpression(expression.Root)
	assert.ErrorIs(t, err, evaluation.ErrExpectedScalar)
}
