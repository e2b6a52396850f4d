package parsers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taldoflemis/lateq/internal/latex"
)

// ErrEmptyMatrix is returned for a matrix environment without any cells.
var ErrEmptyMatrix = errors.New("a matrix must have at least one row and one column")

// UnexpectedTokenError reports a token that does not match what the grammar
// required at that position.
type UnexpectedTokenError struct {
	Expected []latex.Token
	Found    latex.Token
}

func (e *UnexpectedTokenError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, tok := range e.Expected {
		expected[i] = fmt.Sprintf("%q", tok.String())
	}
	return fmt.Sprintf(
		"got unexpected token %q, expected one of %s",
		e.Found.String(), strings.Join(expected, ", "),
	)
}

// InvalidTokenError reports a token that cannot appear at all in the current
// production.
type InvalidTokenError struct {
	Token latex.Token
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("got invalid token %q", e.Token.String())
}

// TrailingTokenError reports leftover input after a complete statement.
type TrailingTokenError struct {
	Token latex.Token
}

func (e *TrailingTokenError) Error() string {
	return fmt.Sprintf("trailing invalid token %q", e.Token.String())
}

// InvalidFactorError reports a token that cannot begin a factor.
type InvalidFactorError struct {
	Token latex.Token
}

func (e *InvalidFactorError) Error() string {
	return fmt.Sprintf("token %q cannot start a factor", e.Token.String())
}

// InvalidBeginError reports an unknown `\begin{...}` environment name.
type InvalidBeginError struct {
	Name string
}

func (e *InvalidBeginError) Error() string {
	return fmt.Sprintf(`got invalid \begin{%s}`, e.Name)
}

// MismatchedMatrixColumnSizeError reports matrix rows of unequal length.
type MismatchedMatrixColumnSizeError struct {
	Prev    int
	Current int
}

func (e *MismatchedMatrixColumnSizeError) Error() string {
	return fmt.Sprintf(
		"expected every matrix row to have the same number of columns, previous had %d but got %d",
		e.Prev, e.Current,
	)
}

// PipelineError reports a lexer or normalizer goroutine that terminated
// abnormally.
type PipelineError struct {
	Message string
}

func (e *PipelineError) Error() string {
	return "token pipeline panicked: " + e.Message
}
