package parsers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/evaluation"
)

// The channels between the stages are bounded, so inputs far larger than the
// buffer must still stream through without stalling.
func TestPipelineStreamsLongInput(t *testing.T) {
	t.Parallel()

	text := "1" + strings.Repeat("+1", 10*pipelineBufferSize)
	found, err := Parse(context.Background(), text, evaluation.StandardMath())
	require.NoError(t, err)

	expression, ok := found.(*ast.Expression)
	require.True(t, ok)

	value, err := evaluation.NewApproximator(evaluation.StandardMath()).
		EvalExpression(expression.Root)
	require.NoError(t, err)
	scalar, err := evaluation.AsScalar(value)
	require.NoError(t, err)
	assert.Equal(t, float64(10*pipelineBufferSize+1), scalar)
}

// A parse error must not leave producer goroutines blocked; a second parse
// with the same math context works as usual.
func TestPipelineRecoversAfterParseError(t *testing.T) {
	t.Parallel()

	mctx := evaluation.StandardMath()
	_, err := Parse(context.Background(), "(1+", mctx)
	require.Error(t, err)

	found, err := Parse(context.Background(), "(1+1)", mctx)
	require.NoError(t, err)
	assert.Equal(t, &ast.Expression{
		Root: &ast.Parenthesis{
			Inner: &ast.Add{
				LHS: &ast.Constant{Value: 1},
				RHS: &ast.Constant{Value: 1},
			},
		},
	}, found)
}
