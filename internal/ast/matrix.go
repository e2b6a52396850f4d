package ast

import "fmt"

// Matrix is row-major flat storage of RowCount*ColumnCount elements. It is
// shared between the parser (cells are expressions) and the evaluator (cells
// are values).
type Matrix[T any] struct {
	values      []T
	rowCount    int
	columnCount int
}

// NewMatrix wraps an existing row-major slice. The slice length must be
// rows*columns.
func NewMatrix[T any](values []T, rows, columns int) *Matrix[T] {
	if len(values) != rows*columns {
		panic(fmt.Sprintf(
			"matrix values have incorrect size: got %d, want %d*%d",
			len(values), rows, columns,
		))
	}
	return &Matrix[T]{
		values:      values,
		rowCount:    rows,
		columnCount: columns,
	}
}

// NewZeroMatrix allocates a rows×columns matrix of zero values.
func NewZeroMatrix[T any](rows, columns int) *Matrix[T] {
	return &Matrix[T]{
		values:      make([]T, rows*columns),
		rowCount:    rows,
		columnCount: columns,
	}
}

func (m *Matrix[T]) Get(row, column int) T {
	return m.values[row*m.columnCount+column]
}

func (m *Matrix[T]) Set(row, column int, value T) {
	m.values[row*m.columnCount+column] = value
}

func (m *Matrix[T]) RowCount() int {
	return m.rowCount
}

func (m *Matrix[T]) ColumnCount() int {
	return m.columnCount
}

// Values returns the backing row-major slice.
func (m *Matrix[T]) Values() []T {
	return m.values
}

// SameSize reports whether both matrices have the same dimensions.
func (m *Matrix[T]) SameSize(other *Matrix[T]) bool {
	return m.rowCount == other.rowCount && m.columnCount == other.columnCount
}

// MapMatrix applies f to every cell, producing a matrix of the results. The
// first error aborts the mapping.
func MapMatrix[In, Out any](m *Matrix[In], f func(In) (Out, error)) (*Matrix[Out], error) {
	out := make([]Out, len(m.values))
	for i, v := range m.values {
		mapped, err := f(v)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return NewMatrix(out, m.rowCount, m.columnCount), nil
}
