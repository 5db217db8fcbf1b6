package compute

import (
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// Dimensions is the number of coordinates per point PairwiseDistance expects.
const Dimensions = 2

// PairwiseDistance returns the (N, N) float64 matrix whose [i][j] cell is the
// Euclidean distance between row i of x and row j of y. Both inputs must be (N, 2).
func PairwiseDistance[T Number](x, y *tensor.Dense) (*tensor.Dense, error) {
	xs, xShape, err := backing[T]("pairwise distance", x, 2)
	if err != nil {
		return nil, err
	}
	ys, yShape, err := backing[T]("pairwise distance", y, 2)
	if err != nil {
		return nil, err
	}
	if xShape[1] != Dimensions || yShape[1] != Dimensions {
		return nil, opErrorf("pairwise distance", ErrInvalidShape, "points have %d and %d coordinates, want %d", xShape[1], yShape[1], Dimensions)
	}
	n := xShape[0]
	if yShape[0] != n {
		return nil, opErrorf("pairwise distance", ErrShapeMismatch, "%d points against %d", n, yShape[0])
	}

	left, right := toFloat64(xs), toFloat64(ys)
	result := make([]float64, n*n)
	for i := range n {
		p := left[i*Dimensions : (i+1)*Dimensions]
		for j := range n {
			q := right[j*Dimensions : (j+1)*Dimensions]
			result[i*n+j] = floats.Distance(p, q, 2)
		}
	}
	return tensor.New(tensor.WithBacking(result), tensor.WithShape(n, n)), nil
}

func toFloat64[T Number](values []T) []float64 {
	converted := make([]float64, len(values))
	for i, value := range values {
		converted[i] = float64(value)
	}
	return converted
}
