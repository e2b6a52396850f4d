package evaluation

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/taldoflemis/lateq/internal/ast"
)

// Value is the runtime result of evaluating an expression: a 64-bit scalar
// or a matrix of values.
type Value interface {
	String() string
	value()
}

var (
	_ Value = Scalar(0)
	_ Value = (*MatrixValue)(nil)
)

// Scalar is a 64-bit IEEE-754 number. NaN and infinity propagate naturally.
type Scalar float64

func (s Scalar) value() {}

func (s Scalar) String() string {
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

// MatrixValue is a matrix whose cells are themselves values.
type MatrixValue struct {
	Cells *ast.Matrix[Value]
}

func (m *MatrixValue) value() {}

func (m *MatrixValue) String() string {
	var b strings.Builder
	b.WriteString("[")
	for row := 0; row < m.Cells.RowCount(); row++ {
		if row > 0 {
			b.WriteString("; ")
		}
		for column := 0; column < m.Cells.ColumnCount(); column++ {
			if column > 0 {
				b.WriteString(" ")
			}
			b.WriteString(m.Cells.Get(row, column).String())
		}
	}
	b.WriteString("]")
	return b.String()
}

// AsScalar unwraps a scalar value.
func AsScalar(v Value) (float64, error) {
	s, ok := v.(Scalar)
	if !ok {
		return 0, ErrExpectedScalar
	}
	return float64(s), nil
}

// AddValues adds two values: scalar+scalar, or componentwise matrix+matrix
// of matching dimensions.
func AddValues(a, b Value) (Value, error) {
	switch lhs := a.(type) {
	case Scalar:
		if rhs, ok := b.(Scalar); ok {
			return lhs + rhs, nil
		}
		return nil, &IncompatibleTypesError{Message: "cannot add a scalar and a matrix"}
	case *MatrixValue:
		rhs, ok := b.(*MatrixValue)
		if !ok {
			return nil, &IncompatibleTypesError{Message: "cannot add a matrix and a scalar"}
		}
		cells, err := pairMap(lhs.Cells, rhs.Cells, AddValues)
		if err != nil {
			return nil, err
		}
		return &MatrixValue{Cells: cells}, nil
	}
	return nil, &IncompatibleTypesError{Message: fmt.Sprintf("cannot add %T values", a)}
}

// SubtractValues subtracts two values with the same shape rules as AddValues.
func SubtractValues(a, b Value) (Value, error) {
	switch lhs := a.(type) {
	case Scalar:
		if rhs, ok := b.(Scalar); ok {
			return lhs - rhs, nil
		}
		return nil, &IncompatibleTypesError{Message: "cannot subtract a matrix from a scalar"}
	case *MatrixValue:
		rhs, ok := b.(*MatrixValue)
		if !ok {
			return nil, &IncompatibleTypesError{Message: "cannot subtract a scalar from a matrix"}
		}
		cells, err := pairMap(lhs.Cells, rhs.Cells, SubtractValues)
		if err != nil {
			return nil, err
		}
		return &MatrixValue{Cells: cells}, nil
	}
	return nil, &IncompatibleTypesError{Message: fmt.Sprintf("cannot subtract %T values", a)}
}

// MultiplyValues multiplies two values. Scalars multiply plainly and scale
// matrices componentwise. Two matrices multiply according to the operator
// the user wrote: juxtaposition is the matrix product, `\cdot` and `\times`
// would be the dot and cross products (not implemented), and `*` between
// matrices is ambiguous.
func MultiplyValues(kind ast.MulKind, a, b Value) (Value, error) {
	switch lhs := a.(type) {
	case Scalar:
		switch rhs := b.(type) {
		case Scalar:
			return lhs * rhs, nil
		case *MatrixValue:
			return scaleMatrix(rhs, lhs, kind)
		}
	case *MatrixValue:
		switch rhs := b.(type) {
		case Scalar:
			return scaleMatrix(lhs, rhs, kind)
		case *MatrixValue:
			switch kind {
			case ast.MulKindImplicit:
				return matrixProduct(lhs, rhs)
			case ast.MulKindCdot:
				return nil, &NotImplementedError{Operation: "the dot product"}
			case ast.MulKindTimes:
				return nil, &NotImplementedError{Operation: "the cross product"}
			default:
				return nil, &AmbiguousMulKindError{Kind: kind}
			}
		}
	}
	return nil, &IncompatibleTypesError{Message: fmt.Sprintf("cannot multiply %T and %T", a, b)}
}

// DivideValues divides two scalars. Division involving matrices is not
// defined.
func DivideValues(a, b Value) (Value, error) {
	lhs, lok := a.(Scalar)
	rhs, rok := b.(Scalar)
	if !lok || !rok {
		return nil, &IncompatibleTypesError{Message: "cannot perform division with matrices"}
	}
	return lhs / rhs, nil
}

func scaleMatrix(m *MatrixValue, s Scalar, kind ast.MulKind) (Value, error) {
	cells, err := ast.MapMatrix(m.Cells, func(cell Value) (Value, error) {
		return MultiplyValues(kind, s, cell)
	})
	if err != nil {
		return nil, err
	}
	return &MatrixValue{Cells: cells}, nil
}

// matrixProduct computes the matrix product of two all-scalar matrices by
// delegating to gonum's dense multiplication.
func matrixProduct(a, b *MatrixValue) (Value, error) {
	if a.Cells.ColumnCount() != b.Cells.RowCount() {
		return nil, &IncompatibleMatrixSizesError{
			Dimension: MatrixDimensionRow,
			Expected:  a.Cells.ColumnCount(),
			Found:     b.Cells.RowCount(),
		}
	}
	da, err := toDense(a.Cells)
	if err != nil {
		return nil, err
	}
	db, err := toDense(b.Cells)
	if err != nil {
		return nil, err
	}

	var product mat.Dense
	product.Mul(da, db)

	return fromDense(&product), nil
}

func toDense(m *ast.Matrix[Value]) (*mat.Dense, error) {
	data := make([]float64, 0, m.RowCount()*m.ColumnCount())
	for _, cell := range m.Values() {
		s, ok := cell.(Scalar)
		if !ok {
			return nil, &IncompatibleTypesError{
				Message: "matrix product requires scalar cells",
			}
		}
		data = append(data, float64(s))
	}
	return mat.NewDense(m.RowCount(), m.ColumnCount(), data), nil
}

func fromDense(d *mat.Dense) *MatrixValue {
	rows, columns := d.Dims()
	cells := ast.NewZeroMatrix[Value](rows, columns)
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			cells.Set(row, column, Scalar(d.At(row, column)))
		}
	}
	return &MatrixValue{Cells: cells}
}

// pairMap zips two equally sized matrices through f.
func pairMap(
	a, b *ast.Matrix[Value],
	f func(Value, Value) (Value, error),
) (*ast.Matrix[Value], error) {
	if a.RowCount() != b.RowCount() {
		return nil, &IncompatibleMatrixSizesError{
			Dimension: MatrixDimensionRow,
			Expected:  a.RowCount(),
			Found:     b.RowCount(),
		}
	}
	if a.ColumnCount() != b.ColumnCount() {
		return nil, &IncompatibleMatrixSizesError{
			Dimension: MatrixDimensionColumn,
			Expected:  a.ColumnCount(),
			Found:     b.ColumnCount(),
		}
	}
	out := ast.NewZeroMatrix[Value](a.RowCount(), a.ColumnCount())
	for row := 0; row < a.RowCount(); row++ {
		for column := 0; column < a.ColumnCount(); column++ {
			combined, err := f(a.Get(row, column), b.Get(row, column))
			if err != nil {
				return nil, err
			}
			out.Set(row, column, combined)
		}
	}
	return out, nil
}
