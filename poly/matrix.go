package poly

import "fmt"

// Matrix is a row-major matrix whose shape is fixed at construction.
type Matrix[T any] struct {
	rows, cols int
	data       []T
}

// NewMatrix allocates a rows×cols matrix of zero values.
func NewMatrix[T any](rows, cols int) Matrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("poly.NewMatrix: negative shape %dx%d", rows, cols))
	}
	return Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// MatrixFromRows copies a slice of rows into a matrix, rejecting ragged input.
func MatrixFromRows[T any](rows [][]T) (Matrix[T], error) {
	if len(rows) == 0 {
		return Matrix[T]{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix[T](len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix[T]{}, fmt.Errorf("ragged matrix at row %d: %d cols, want %d", i, len(row), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// ColumnVector returns v as a len(v)×1 matrix.
func ColumnVector[T any](v []T) Matrix[T] {
	m := NewMatrix[T](len(v), 1)
	copy(m.data, v)
	return m
}

func (m Matrix[T]) Rows() int { return m.rows }
func (m Matrix[T]) Cols() int { return m.cols }

// Shape returns (rows, cols).
func (m Matrix[T]) Shape() (int, int) { return m.rows, m.cols }

func (m Matrix[T]) At(i, j int) T {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

func (m Matrix[T]) Set(i, j int, v T) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

// Row returns a copy of row i.
func (m Matrix[T]) Row(i int) []T {
	m.check(i, 0)
	out := make([]T, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

func (m Matrix[T]) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || (m.cols > 0 && j >= m.cols) {
		panic(fmt.Sprintf("poly.Matrix: index (%d,%d) outside %dx%d", i, j, m.rows, m.cols))
	}
}
