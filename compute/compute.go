package compute

import (
	"slices"

	_ "github.com/expki/go-numutil/env"
	"gorgonia.org/tensor"
)

// NewVector copies vector into a rank-1 dense array.
func NewVector[T any](vector []T) (*tensor.Dense, error) {
	if len(vector) == 0 {
		return nil, opError("new vector", ErrEmptySequence)
	}
	return tensor.New(tensor.WithBacking(slices.Clone(vector)), tensor.WithShape(len(vector))), nil
}

// NewMatrix copies a rectangular matrix into a rank-2 dense array.
func NewMatrix[T any](matrix [][]T) (*tensor.Dense, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, opError("new matrix", ErrEmptySequence)
	}
	rows, cols := len(matrix), len(matrix[0])
	flat := make([]T, 0, rows*cols)
	for i, row := range matrix {
		if len(row) != cols {
			return nil, opErrorf("new matrix", ErrInvalidShape, "row %d has %d columns, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return tensor.New(tensor.WithBacking(flat), tensor.WithShape(rows, cols)), nil
}

// NewImage copies an (H, W, C) pixel grid into a rank-3 dense array.
func NewImage[T any](image [][][]T) (*tensor.Dense, error) {
	if len(image) == 0 || len(image[0]) == 0 || len(image[0][0]) == 0 {
		return nil, opError("new image", ErrEmptySequence)
	}
	height, width, channels := len(image), len(image[0]), len(image[0][0])
	flat := make([]T, 0, height*width*channels)
	for i, row := range image {
		if len(row) != width {
			return nil, opErrorf("new image", ErrInvalidShape, "row %d has width %d, want %d", i, len(row), width)
		}
		for j, pixel := range row {
			if len(pixel) != channels {
				return nil, opErrorf("new image", ErrInvalidShape, "pixel (%d, %d) has %d channels, want %d", i, j, len(pixel), channels)
			}
			flat = append(flat, pixel...)
		}
	}
	return tensor.New(tensor.WithBacking(flat), tensor.WithShape(height, width, channels)), nil
}

// VectorOf returns a copy of the elements of a rank-1 dense array.
func VectorOf[T any](d *tensor.Dense) ([]T, error) {
	data, _, err := backing[T]("vector of", d, 1)
	if err != nil {
		return nil, err
	}
	return slices.Clone(data), nil
}

// MatrixOf returns a copy of a rank-2 dense array as row slices.
func MatrixOf[T any](d *tensor.Dense) ([][]T, error) {
	data, shape, err := backing[T]("matrix of", d, 2)
	if err != nil {
		return nil, err
	}
	rows, cols := shape[0], shape[1]
	matrix := make([][]T, rows)
	for i := range rows {
		matrix[i] = slices.Clone(data[i*cols : (i+1)*cols])
	}
	return matrix, nil
}

// backing returns the row-major elements of d after checking its rank and element type.
// The returned slice aliases d and must not be modified.
func backing[T any](op string, d *tensor.Dense, rank int) (data []T, shape tensor.Shape, err error) {
	if d == nil {
		return nil, nil, opError(op, ErrNilTensor)
	}
	if d.IsMaterializable() {
		materialized, ok := d.Materialize().(*tensor.Dense)
		if !ok {
			return nil, nil, opErrorf(op, ErrDtype, "cannot materialize %T", d)
		}
		d = materialized
	}
	shape = d.Shape()
	if shape.Dims() != rank {
		return nil, nil, opErrorf(op, ErrInvalidShape, "rank %d, want %d", shape.Dims(), rank)
	}
	data, ok := d.Data().([]T)
	if !ok {
		var zero T
		return nil, nil, opErrorf(op, ErrDtype, "have %v, want %T", d.Dtype(), zero)
	}
	size := shape.TotalSize()
	if size == 0 {
		return nil, shape, opError(op, ErrEmptySequence)
	}
	return data[:size], shape, nil
}
