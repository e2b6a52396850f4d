package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/latex"
)

func TestIdentifierKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", ast.IdentifierFromName("x").Key())
	assert.Equal(t, `\pi`, ast.IdentifierFromCommand("pi").Key())
}

func TestIdentifierEquality(t *testing.T) {
	t.Parallel()

	pi := ast.IdentifierFromCommand("pi")
	assert.True(t, pi.Equal(ast.IdentifierFromCommand("pi")))
	assert.False(t, pi.Equal(ast.IdentifierFromName("pi")))
	assert.False(t, pi.Equal(ast.IdentifierFromName("x")))

	fromTokens := ast.NewMathIdentifier(
		latex.Token{Kind: latex.TokenBackslash},
		latex.IdentifierToken("pi"),
	)
	assert.True(t, pi.Equal(fromTokens))
}

func TestMatrixRowMajorAccess(t *testing.T) {
	t.Parallel()

	m := ast.NewZeroMatrix[int](2, 3)
	m.Set(0, 0, 1)
	m.Set(0, 2, 3)
	m.Set(1, 1, 5)

	assert.Equal(t, 1, m.Get(0, 0))
	assert.Equal(t, 3, m.Get(0, 2))
	assert.Equal(t, 5, m.Get(1, 1))
	assert.Equal(t, 2, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())
	assert.Equal(t, []int{1, 0, 3, 0, 5, 0}, m.Values())
}

func TestMatrixSizeMismatchPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		ast.NewMatrix([]int{1, 2, 3}, 2, 2)
	})
}
