package evaluation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taldoflemis/lateq/internal/ast"
)

func TestContextVariables(t *testing.T) {
	t.Parallel()

	mctx := NewMathContext()
	x := ast.IdentifierFromName("x")

	_, ok := mctx.Variable(x)
	assert.False(t, ok)

	mctx.AddVariable(x, Scalar(2))
	value, ok := mctx.Variable(x)
	require.True(t, ok)
	assert.Equal(t, Scalar(2), value)

	// Identifiers are structural: the command \x is a different binding.
	_, ok = mctx.Variable(ast.IdentifierFromCommand("x"))
	assert.False(t, ok)
}

func TestContextIsDefinedFunction(t *testing.T) {
	t.Parallel()

	mctx := StandardMath()
	assert.True(t, mctx.IsDefinedFunction(ast.IdentifierFromCommand("sin")))
	assert.False(t, mctx.IsDefinedFunction(ast.IdentifierFromName("sin")))
	assert.False(t, mctx.IsDefinedFunction(ast.IdentifierFromCommand("pi")))
}

func TestContextMergeIsNonOverriding(t *testing.T) {
	t.Parallel()

	x := ast.IdentifierFromName("x")
	mine := NewMathContext()
	mine.AddVariable(x, Scalar(1))

	other := NewMathContext()
	other.AddVariable(x, Scalar(2))
	other.AddVariable(ast.IdentifierFromName("y"), Scalar(3))
	other.AddFunction(ast.IdentifierFromName("f"),
		func(args []Value, _ *MathContext) (Value, error) {
			return args[0], nil
		}, 1)

	mine.Merge(other)

	value, ok := mine.Variable(x)
	require.True(t, ok)
	assert.Equal(t, Scalar(1), value, "existing bindings win")

	value, ok = mine.Variable(ast.IdentifierFromName("y"))
	require.True(t, ok)
	assert.Equal(t, Scalar(3), value)
	assert.True(t, mine.IsDefinedFunction(ast.IdentifierFromName("f")))
}

func TestContextCloneIsIndependent(t *testing.T) {
	t.Parallel()

	mctx := NewMathContext()
	x := ast.IdentifierFromName("x")
	mctx.AddVariable(x, Scalar(1))

	clone := mctx.Clone()
	clone.AddVariable(x, Scalar(9))

	value, ok := mctx.Variable(x)
	require.True(t, ok)
	assert.Equal(t, Scalar(1), value)
}

func TestStandardMathBindings(t *testing.T) {
	t.Parallel()

	mctx := StandardMath()

	pi, ok := mctx.Variable(ast.IdentifierFromCommand("pi"))
	require.True(t, ok)
	assert.Equal(t, Scalar(math.Pi), pi)

	e, ok := mctx.Variable(ast.IdentifierFromName("e"))
	require.True(t, ok)
	assert.Equal(t, Scalar(math.E), e)

	for _, name := range []string{"sin", "cos", "tan", "ln"} {
		assert.True(t, mctx.IsDefinedFunction(ast.IdentifierFromCommand(name)), name)
	}
}

func TestNativeFunctionArityValidation(t *testing.T) {
	t.Parallel()

	fn := NewNativeFunction(func(args []Value, _ *MathContext) (Value, error) {
		return args[0], nil
	}, 2)

	_, err := fn.Call([]Value{Scalar(1)}, NewMathContext())
	var mismatch *ArgumentLengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Found)

	result, err := fn.Call([]Value{Scalar(1), Scalar(2)}, NewMathContext())
	require.NoError(t, err)
	assert.Equal(t, Scalar(1), result)
}

func TestForeignFunctionEvaluatesBody(t *testing.T) {
	t.Parallel()

	// g(y) = y + 1 built by hand.
	y := ast.IdentifierFromName("y")
	body := &ast.Add{
		LHS: &ast.Variable{Ident: y},
		RHS: &ast.Constant{Value: 1},
	}
	fn := NewForeignFunction(body, []ast.MathIdentifier{y})
	assert.True(t, fn.IsForeign())
	assert.Equal(t, 1, fn.Arity())

	result, err := fn.Call([]Value{Scalar(41)}, NewMathContext())
	require.NoError(t, err)
	assert.Equal(t, Scalar(42), result)
}
