package parsers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taldoflemis/lateq/internal/ast"
	"github.com/taldoflemis/lateq/internal/evaluation"
	"github.com/taldoflemis/lateq/internal/interfaces"
	"github.com/taldoflemis/lateq/internal/latex"
)

// pipelineBufferSize is the capacity of the channels between the pipeline
// stages. It bounds memory regardless of input length.
const pipelineBufferSize = 32

// RecursiveDescentParser drives the four-stage pipeline from characters to
// an AST: the lexer and the normalizer run as producer goroutines over
// bounded channels and the parser consumes in the caller's goroutine,
// descending recursively with one to two tokens of lookahead.
type RecursiveDescentParser struct{}

var _ interfaces.LatexParser = (*RecursiveDescentParser)(nil)

func NewRecursiveDescentParser() *RecursiveDescentParser {
	return &RecursiveDescentParser{}
}

// ParseExpression implements interfaces.LatexParser.
func (p *RecursiveDescentParser) ParseExpression(
	ctx context.Context,
	input string,
	mctx *evaluation.MathContext,
) (ast.AST, error) {
	result, err := Parse(ctx, input, mctx)
	if err != nil {
		slog.DebugContext(ctx, "failed to parse expression",
			slog.String("input", input), slog.Any("error", err))
		return nil, err
	}
	return result, nil
}

// Parse runs the whole pipeline over input. The math context is consulted to
// tell function calls apart from implicit multiplication; nil means an empty
// context.
func Parse(
	ctx context.Context,
	input string,
	mctx *evaluation.MathContext,
) (ast.AST, error) {
	if mctx == nil {
		mctx = evaluation.NewMathContext()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lexed := make(chan latex.Token, pipelineBufferSize)
	normalized := make(chan latex.Token, pipelineBufferSize)
	panics := make(chan *PipelineError, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(lexed)
		defer capturePanic(panics)
		latex.NewLexer(lexed).Tokenize(ctx, input)
	}()
	go func() {
		defer wg.Done()
		defer close(normalized)
		defer capturePanic(panics)
		latex.NewNormalizer(lexed, normalized).Normalize(ctx)
	}()

	p := &parser{
		reader: latex.NewTokenReader(normalized),
		mctx:   mctx,
	}
	root, err := p.parse()

	// Unblock the producers if the parser stopped early, then make sure any
	// panic they hit wins over the parse error it caused downstream.
	cancel()
	wg.Wait()

	select {
	case pipeErr := <-panics:
		return nil, pipeErr
	default:
	}
	if err != nil {
		return nil, err
	}
	return root, nil
}

func capturePanic(panics chan<- *PipelineError) {
	if r := recover(); r != nil {
		panics <- &PipelineError{Message: fmt.Sprint(r)}
	}
}

type parser struct {
	reader *latex.TokenReader
	mctx   *evaluation.MathContext
}

// parse reads a full statement: an expression, optionally followed by `=`
// and a second expression, followed by end of content.
func (p *parser) parse() (ast.AST, error) {
	root, err := p.expr()
	if err != nil {
		return nil, err
	}

	next := p.reader.Read()
	if next.Kind == latex.TokenEndOfContent {
		return &ast.Expression{Root: root}, nil
	}
	if next.Kind == latex.TokenEquals {
		rhs, err := p.expr()
		if err != nil {
			return nil, err
		}
		next = p.reader.Read()
		if next.Kind != latex.TokenEndOfContent {
			return nil, &TrailingTokenError{Token: next}
		}
		return &ast.Equality{LHS: root, RHS: rhs}, nil
	}
	return nil, &TrailingTokenError{Token: next}
}

func (p *parser) expect(expected latex.Token) error {
	found := p.reader.Read()
	if found == expected {
		return nil
	}
	return &UnexpectedTokenError{
		Expected: []latex.Token{expected},
		Found:    found,
	}
}

func (p *parser) readIdentifier() (string, error) {
	tok := p.reader.Read()
	if tok.Kind != latex.TokenIdentifier {
		return "", &UnexpectedTokenError{
			Expected: []latex.Token{latex.IdentifierToken("")},
			Found:    tok,
		}
	}
	return tok.Value, nil
}

// expr parses a chain of terms added and subtracted, left-associating.
func (p *parser) expr() (ast.MathExpr, error) {
	term, err := p.term()
	if err != nil {
		return nil, err
	}
	expr := ast.MathExpr(term)

	for {
		switch p.reader.Peek().Kind {
		case latex.TokenPlus:
			p.reader.Skip()
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			expr = &ast.Add{LHS: expr, RHS: rhs}
		case latex.TokenMinus:
			p.reader.Skip()
			rhs, err := p.term()
			if err != nil {
				return nil, err
			}
			expr = &ast.Subtract{LHS: expr, RHS: rhs}
		default:
			return expr, nil
		}
	}
}

// term parses a chain of factors multiplied and divided. Implicit
// multiplication kicks in whenever the next tokens begin a new atom.
func (p *parser) term() (ast.Term, error) {
	factor, err := p.factor()
	if err != nil {
		return nil, err
	}
	term := ast.Term(factor)

	for {
		next := p.reader.Peek()
		switch next.Kind {
		case latex.TokenAsterisk, latex.TokenCdot, latex.TokenTimes:
			kind := mulKindOf(next.Kind)
			p.reader.Skip()
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			term = &ast.Multiply{Kind: kind, LHS: term, RHS: rhs}
		case latex.TokenSlash:
			p.reader.Skip()
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			term = &ast.Divide{LHS: term, RHS: rhs}
		case latex.TokenBackslash:
			second := p.reader.PeekN(1)
			// `\\` ends a matrix row and `\end` a matrix; both end the term.
			if second.Kind == latex.TokenBackslash || second.IsIdent("end") {
				return term, nil
			}
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			term = &ast.Multiply{Kind: ast.MulKindImplicit, LHS: term, RHS: rhs}
		case latex.TokenIdentifier, latex.TokenNumber, latex.TokenLeftParen:
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			term = &ast.Multiply{Kind: ast.MulKindImplicit, LHS: term, RHS: rhs}
		default:
			return term, nil
		}
	}
}

func mulKindOf(kind latex.TokenKind) ast.MulKind {
	switch kind {
	case latex.TokenCdot:
		return ast.MulKindCdot
	case latex.TokenTimes:
		return ast.MulKindTimes
	default:
		return ast.MulKindAsterisk
	}
}

// factor parses an atom, including any exponent attached to it. Exponents
// are baked into the factor since they bind tighter than multiplication.
func (p *parser) factor() (ast.Factor, error) {
	// The LaTeX convention is that `xy` means `x*y`, so identifiers longer
	// than one character are split in place, one token per code point.
	// Backslash commands like `\pi` never reach this path.
	if next := p.reader.Peek(); next.Kind == latex.TokenIdentifier {
		p.splitIdentifier(next.Value)
	}

	tok := p.reader.Read()
	var factor ast.Factor
	var err error
	switch tok.Kind {
	case latex.TokenNumber:
		factor = &ast.Constant{Value: tok.Number}
	case latex.TokenLeftParen:
		factor, err = p.parenthesis()
	case latex.TokenBackslash:
		var command string
		command, err = p.readIdentifier()
		if err != nil {
			return nil, err
		}
		factor, err = p.factorCommand(command)
	case latex.TokenVerticalPipe:
		var inner ast.MathExpr
		inner, err = p.expr()
		if err != nil {
			return nil, err
		}
		if err = p.expect(latex.Token{Kind: latex.TokenVerticalPipe}); err != nil {
			return nil, err
		}
		factor = &ast.Abs{Inner: inner}
	case latex.TokenIdentifier:
		factor, err = p.factorIdentifier(ast.NewMathIdentifier(tok))
	case latex.TokenMinus:
		factor = &ast.Constant{Value: -1}
	case latex.TokenEndOfContent:
		return nil, &UnexpectedTokenError{
			Expected: factorStartTokens(),
			Found:    tok,
		}
	default:
		return nil, &InvalidFactorError{Token: tok}
	}
	if err != nil {
		return nil, err
	}

	if p.reader.Peek().Kind == latex.TokenCaret {
		p.reader.Skip()
		return p.factorExponent(factor)
	}
	return factor, nil
}

func (p *parser) splitIdentifier(text string) {
	runes := []rune(text)
	if len(runes) <= 1 {
		return
	}
	split := make([]latex.Token, len(runes))
	for i, r := range runes {
		split[i] = latex.IdentifierToken(string(r))
	}
	p.reader.Replace(0, 0, split)
}

func factorStartTokens() []latex.Token {
	return []latex.Token{
		{Kind: latex.TokenNumber},
		{Kind: latex.TokenIdentifier},
		{Kind: latex.TokenBackslash},
		{Kind: latex.TokenLeftParen},
		{Kind: latex.TokenVerticalPipe},
		{Kind: latex.TokenMinus},
	}
}

// parenthesis parses the contents after a `(`. In most cases this is one
// expression, but commas make it a tuple, which is a 1×N matrix.
func (p *parser) parenthesis() (ast.Factor, error) {
	values := make([]ast.MathExpr, 0, 1)
	for {
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		values = append(values, expr)
		if p.reader.Peek().Kind != latex.TokenComma {
			break
		}
		p.reader.Skip()
	}
	if err := p.expect(latex.Token{Kind: latex.TokenRightParen}); err != nil {
		return nil, err
	}

	if len(values) == 1 {
		return &ast.Parenthesis{Inner: values[0]}, nil
	}
	return &ast.MatrixLiteral{
		Cells: ast.NewMatrix(values, 1, len(values)),
	}, nil
}

// factorCommand parses a factor that is a LaTeX command. Reserved command
// names have their own productions; everything else is an identifier with a
// leading backslash, like `\pi` and `\alpha`.
func (p *parser) factorCommand(command string) (ast.Factor, error) {
	switch command {
	case "sqrt":
		var degree ast.MathExpr
		if p.reader.Peek().Kind == latex.TokenLeftBracket {
			p.reader.Skip()
			inner, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(latex.Token{Kind: latex.TokenRightBracket}); err != nil {
				return nil, err
			}
			degree = inner
		}
		if err := p.expect(latex.Token{Kind: latex.TokenLeftCurly}); err != nil {
			return nil, err
		}
		radicand, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
			return nil, err
		}
		return &ast.Root{Degree: degree, Radicand: radicand}, nil
	case "frac":
		if err := p.expect(latex.Token{Kind: latex.TokenLeftCurly}); err != nil {
			return nil, err
		}
		numerator, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
			return nil, err
		}
		if err := p.expect(latex.Token{Kind: latex.TokenLeftCurly}); err != nil {
			return nil, err
		}
		denominator, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
			return nil, err
		}
		return &ast.Fraction{Numerator: numerator, Denominator: denominator}, nil
	case "begin":
		return p.beginEnvironment()
	default:
		return p.factorIdentifier(ast.IdentifierFromCommand(command))
	}
}

func (p *parser) beginEnvironment() (ast.Factor, error) {
	if err := p.expect(latex.Token{Kind: latex.TokenLeftCurly}); err != nil {
		return nil, err
	}
	name, err := p.readIdentifier()
	if err != nil {
		return nil, err
	}
	switch name {
	case "bmatrix", "pmatrix", "Bmatrix":
		if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
			return nil, err
		}
		cells, err := p.matrix(name)
		if err != nil {
			return nil, err
		}
		return &ast.MatrixLiteral{Cells: cells}, nil
	case "vmatrix", "Vmatrix":
		if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
			return nil, err
		}
		cells, err := p.matrix(name)
		if err != nil {
			return nil, err
		}
		return &ast.Abs{Inner: &ast.MatrixLiteral{Cells: cells}}, nil
	default:
		return nil, &InvalidBeginError{Name: name}
	}
}

// factorIdentifier decides between a function call and a variable by
// consulting the math context.
func (p *parser) factorIdentifier(id ast.MathIdentifier) (ast.Factor, error) {
	if p.mctx.IsDefinedFunction(id) {
		return p.functionCall(id)
	}
	return &ast.Variable{Ident: id}, nil
}

// factorExponent parses the exponent of a factor: a curly-braced expression,
// a command, a single character or a single digit. The normalizer has
// already split multi-digit numbers.
func (p *parser) factorExponent(base ast.Factor) (ast.Factor, error) {
	var exponent ast.MathExpr
	next := p.reader.Peek()
	switch next.Kind {
	case latex.TokenLeftCurly:
		p.reader.Skip()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
			return nil, err
		}
		exponent = inner
	case latex.TokenBackslash:
		factor, err := p.factor()
		if err != nil {
			return nil, err
		}
		exponent = factor
	case latex.TokenIdentifier:
		p.splitIdentifier(next.Value)
		tok := p.reader.Read()
		exponent = &ast.Variable{Ident: ast.NewMathIdentifier(tok)}
	case latex.TokenNumber:
		if len(next.Value) != 1 {
			return nil, &InvalidTokenError{Token: next}
		}
		p.reader.Skip()
		exponent = &ast.Constant{Value: next.Number}
	default:
		return nil, &InvalidTokenError{Token: next}
	}

	return &ast.Power{Base: base, Exponent: exponent}, nil
}

// functionCall parses the arguments of a known function: a comma-separated
// parenthesized list like `f(1, 2)`, or a single term like `\ln 2`.
func (p *parser) functionCall(name ast.MathIdentifier) (ast.Factor, error) {
	var args []ast.MathExpr
	if p.reader.Peek().Kind == latex.TokenLeftParen {
		p.reader.Skip()
		for {
			next := p.reader.Peek()
			if next.Kind == latex.TokenRightParen {
				break
			}
			if next.Kind == latex.TokenComma {
				p.reader.Skip()
				continue
			}
			expr, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
		}
		if err := p.expect(latex.Token{Kind: latex.TokenRightParen}); err != nil {
			return nil, err
		}
	} else {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.MathExpr(arg))
	}

	return &ast.FunctionCall{Name: name, Args: args}, nil
}

// matrix parses cells separated by `&` and rows separated by `\\` until
// `\end{envName}`. Every row must have the same number of columns.
func (p *parser) matrix(envName string) (*ast.Matrix[ast.MathExpr], error) {
	var rows [][]ast.MathExpr
	var current []ast.MathExpr
	columnCount := -1

	finishRow := func() error {
		if columnCount >= 0 && columnCount != len(current) {
			return &MismatchedMatrixColumnSizeError{
				Prev:    columnCount,
				Current: len(current),
			}
		}
		columnCount = len(current)
		rows = append(rows, current)
		current = nil
		return nil
	}

	if p.reader.Peek().Kind == latex.TokenBackslash && p.reader.PeekN(1).IsIdent("end") {
		return nil, ErrEmptyMatrix
	}

loop:
	for {
		cell, err := p.expr()
		if err != nil {
			return nil, err
		}
		current = append(current, cell)

		next := p.reader.Peek()
		switch next.Kind {
		case latex.TokenAmpersand:
			p.reader.Skip()
		case latex.TokenBackslash:
			if p.reader.PeekN(1).Kind == latex.TokenBackslash {
				p.reader.Skip()
				p.reader.Skip()
				if err := finishRow(); err != nil {
					return nil, err
				}
				continue
			}
			p.reader.Skip()
			if err := p.expect(latex.IdentifierToken("end")); err != nil {
				return nil, err
			}
			if err := p.expect(latex.Token{Kind: latex.TokenLeftCurly}); err != nil {
				return nil, err
			}
			if err := p.expect(latex.IdentifierToken(envName)); err != nil {
				return nil, err
			}
			if err := p.expect(latex.Token{Kind: latex.TokenRightCurly}); err != nil {
				return nil, err
			}
			if err := finishRow(); err != nil {
				return nil, err
			}
			break loop
		default:
			return nil, &UnexpectedTokenError{
				Expected: []latex.Token{
					{Kind: latex.TokenAmpersand},
					{Kind: latex.TokenBackslash},
				},
				Found: next,
			}
		}
	}

	if len(rows) == 0 || columnCount == 0 {
		return nil, ErrEmptyMatrix
	}
	values := make([]ast.MathExpr, 0, len(rows)*columnCount)
	for _, row := range rows {
		values = append(values, row...)
	}
	return ast.NewMatrix(values, len(rows), columnCount), nil
}
