package evaluation

import (
	"errors"
	"fmt"

	"github.com/taldoflemis/lateq/internal/ast"
)

var (
	// ErrExpectedScalar is returned when a matrix shows up where only a
	// scalar makes sense, for example as an exponent.
	ErrExpectedScalar = errors.New("a matrix was found where a scalar was expected")

	// ErrNotDefined is returned when a variable or function is missing from
	// the context.
	ErrNotDefined = errors.New("value is not defined")
)

// IncompatibleTypesError reports an operation between values whose types do
// not combine, such as adding a scalar to a matrix.
type IncompatibleTypesError struct {
	Message string
}

func (e *IncompatibleTypesError) Error() string {
	return "the types are not compatible: " + e.Message
}

// MatrixDimension names the axis of a size mismatch.
type MatrixDimension string

const (
	MatrixDimensionRow    MatrixDimension = "row"
	MatrixDimensionColumn MatrixDimension = "column"
)

// IncompatibleMatrixSizesError reports a dimension mismatch between two
// matrices.
type IncompatibleMatrixSizesError struct {
	Dimension MatrixDimension
	Expected  int
	Found     int
}

func (e *IncompatibleMatrixSizesError) Error() string {
	return fmt.Sprintf(
		"expected %s count %d, found %d",
		e.Dimension, e.Expected, e.Found,
	)
}

// AmbiguousMulKindError reports a matrix multiplication whose operator does
// not determine the intended product.
type AmbiguousMulKindError struct {
	Kind ast.MulKind
}

func (e *AmbiguousMulKindError) Error() string {
	return fmt.Sprintf(
		"unclear multiplication kind %q when multiplying matrices",
		e.Kind.String(),
	)
}

// ArgumentLengthMismatchError reports a function call with the wrong number
// of arguments.
type ArgumentLengthMismatchError struct {
	Expected int
	Found    int
}

func (e *ArgumentLengthMismatchError) Error() string {
	return fmt.Sprintf("expected %d arguments, found %d", e.Expected, e.Found)
}

// NotImplementedError reports an operation the evaluator does not support
// yet, such as the dot and cross products.
type NotImplementedError struct {
	Operation string
}

func (e *NotImplementedError) Error() string {
	return e.Operation + " is not implemented"
}
