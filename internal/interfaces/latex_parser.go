package interfaces

import (
	"context"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/evaluation"
)

type LatexParser interface {
	ParseExpression(
		ctx context.Context,
		input string,
		mctx *evaluation.MathContext,
	) (ast.AST, error)
}
