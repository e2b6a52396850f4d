package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/evaluation"
	"github.com/taldoflemis/lateq/internal/interfaces"
)

// ErrUnknownStatement is returned for an equality whose left side is neither
// a variable nor a function header.
var ErrUnknownStatement = errors.New("could not understand the equality statement")

// CalculatorUseCase owns the per-session math context and implements the
// calculator semantics on top of the parser and the tree passes: evaluating
// expressions, defining variables and functions through equalities, and the
// symbolic simplify and derivative operations.
type CalculatorUseCase struct {
	parser       interfaces.LatexParser
	approximator *evaluation.Approximator
	store        interfaces.DefinitionStore
}

func NewCalculatorUseCase(
	parser interfaces.LatexParser,
	mctx *evaluation.MathContext,
) *CalculatorUseCase {
	return &CalculatorUseCase{
		parser:       parser,
		approximator: evaluation.NewApproximator(mctx),
	}
}

// SetDefinitionStore makes the use case persist definitions. A nil store
// keeps everything in memory only.
func (u *CalculatorUseCase) SetDefinitionStore(store interfaces.DefinitionStore) {
	u.store = store
}

// Context returns the session's math context.
func (u *CalculatorUseCase) Context() *evaluation.MathContext {
	return u.approximator.Context()
}

// Parse runs the pipeline over one line against the session context.
func (u *CalculatorUseCase) Parse(ctx context.Context, line string) (ast.AST, error) {
	return u.parser.ParseExpression(ctx, line, u.Context())
}

// EvalLine evaluates one calculator line: an expression yields its value, an
// equality defines a variable or function into the context.
func (u *CalculatorUseCase) EvalLine(ctx context.Context, line string) (string, error) {
	parsed, err := u.Parse(ctx, line)
	if err != nil {
		slog.DebugContext(ctx, "failed to parse line",
			slog.String("line", line), slog.Any("error", err))
		return "", err
	}

	switch statement := parsed.(type) {
	case *ast.Expression:
		value, err := u.approximator.EvalExpression(statement.Root)
		if err != nil {
			slog.DebugContext(ctx, "failed to evaluate expression",
				slog.String("line", line), slog.Any("error", err))
			return "", err
		}
		return value.String(), nil
	case *ast.Equality:
		return u.defineEquality(ctx, statement)
	}
	return "", ErrUnknownStatement
}

// Approximate evaluates one expression line to a value.
func (u *CalculatorUseCase) Approximate(ctx context.Context, line string) (evaluation.Value, error) {
	parsed, err := u.Parse(ctx, line)
	if err != nil {
		return nil, err
	}
	expression, ok := parsed.(*ast.Expression)
	if !ok {
		return nil, errors.New("cannot approximate an equality statement")
	}
	return u.approximator.EvalExpression(expression.Root)
}

// Simplify parses one line and returns the LaTeX of its simplified tree.
func (u *CalculatorUseCase) Simplify(ctx context.Context, line string) (string, error) {
	parsed, err := u.Parse(ctx, line)
	if err != nil {
		return "", err
	}
	return parsed.Simplify().Latex(), nil
}

// Derivative parses one line, differentiates it with respect to the named
// variable and returns the LaTeX of the simplified result. The variable is
// spelled as the user writes it, for example "x" or `\theta`.
func (u *CalculatorUseCase) Derivative(
	ctx context.Context,
	line string,
	variable string,
) (string, error) {
	parsed, err := u.Parse(ctx, line)
	if err != nil {
		return "", err
	}
	derived, err := parsed.Derivative(identifierFromInput(variable))
	if err != nil {
		slog.DebugContext(ctx, "failed to differentiate",
			slog.String("line", line), slog.String("variable", variable),
			slog.Any("error", err))
		return "", err
	}
	return derived.Simplify().Latex(), nil
}

// RestoreDefinitions replays the persisted definitions into the session
// context, oldest first.
func (u *CalculatorUseCase) RestoreDefinitions(ctx context.Context) error {
	if u.store == nil {
		return nil
	}
	defs, err := u.store.ListDefinitions(ctx)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if _, err := u.EvalLine(ctx, def.Latex); err != nil {
			slog.WarnContext(ctx, "skipping stored definition",
				slog.String("name", def.Name), slog.Any("error", err))
		}
	}
	return nil
}

func (u *CalculatorUseCase) defineEquality(ctx context.Context, eq *ast.Equality) (string, error) {
	if name, params, ok := functionHeader(eq.LHS); ok {
		u.Context().SetFunction(name, evaluation.NewForeignFunction(eq.RHS, params))
		u.persist(ctx, interfaces.Definition{
			Name:  name.Latex(),
			Kind:  interfaces.DefinitionKindFunction,
			Latex: eq.Latex(),
		})
		slog.InfoContext(ctx, "defined function", slog.String("name", name.Latex()))
		return fmt.Sprintf("defined function %s", name.Latex()), nil
	}

	if variable, ok := eq.LHS.(*ast.Variable); ok {
		value, err := u.approximator.EvalExpression(eq.RHS)
		if err != nil {
			slog.DebugContext(ctx, "failed to evaluate definition",
				slog.Any("error", err))
			return "", err
		}
		u.Context().AddVariable(variable.Ident, value)
		u.persist(ctx, interfaces.Definition{
			Name:  variable.Ident.Latex(),
			Kind:  interfaces.DefinitionKindVariable,
			Latex: eq.Latex(),
		})
		slog.InfoContext(ctx, "defined variable",
			slog.String("name", variable.Ident.Latex()))
		return fmt.Sprintf("%s = %s", variable.Ident.Latex(), value.String()), nil
	}

	return "", ErrUnknownStatement
}

func (u *CalculatorUseCase) persist(ctx context.Context, def interfaces.Definition) {
	if u.store == nil {
		return
	}
	if err := u.store.SaveDefinition(ctx, def); err != nil {
		slog.ErrorContext(ctx, "failed to persist definition",
			slog.String("name", def.Name), slog.Any("error", err))
	}
}

// functionHeader recognizes the left side of a function definition. A fresh
// name parses as an implicit multiplication of a variable by a parenthesized
// argument tuple, `f(x)` or `f(x,y)`; a name that is already a function
// parses as a call.
func functionHeader(lhs ast.MathExpr) (ast.MathIdentifier, []ast.MathIdentifier, bool) {
	switch n := lhs.(type) {
	case *ast.Multiply:
		if n.Kind != ast.MulKindImplicit {
			return ast.MathIdentifier{}, nil, false
		}
		name, ok := n.LHS.(*ast.Variable)
		if !ok {
			return ast.MathIdentifier{}, nil, false
		}
		switch args := n.RHS.(type) {
		case *ast.Parenthesis:
			param, ok := args.Inner.(*ast.Variable)
			if !ok {
				return ast.MathIdentifier{}, nil, false
			}
			return name.Ident, []ast.MathIdentifier{param.Ident}, true
		case *ast.MatrixLiteral:
			if args.Cells.RowCount() != 1 {
				return ast.MathIdentifier{}, nil, false
			}
			params, ok := variableIdentifiers(args.Cells.Values())
			if !ok {
				return ast.MathIdentifier{}, nil, false
			}
			return name.Ident, params, true
		}
	case *ast.FunctionCall:
		params, ok := variableIdentifiers(n.Args)
		if !ok {
			return ast.MathIdentifier{}, nil, false
		}
		return n.Name, params, true
	}
	return ast.MathIdentifier{}, nil, false
}

func variableIdentifiers(exprs []ast.MathExpr) ([]ast.MathIdentifier, bool) {
	params := make([]ast.MathIdentifier, 0, len(exprs))
	for _, expr := range exprs {
		variable, ok := expr.(*ast.Variable)
		if !ok {
			return nil, false
		}
		params = append(params, variable.Ident)
	}
	return params, true
}

func identifierFromInput(variable string) ast.MathIdentifier {
	if name, ok := strings.CutPrefix(variable, `\`); ok {
		return ast.IdentifierFromCommand(name)
	}
	return ast.IdentifierFromName(variable)
}
