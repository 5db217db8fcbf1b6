package compute

import (
	"reflect"

	"gorgonia.org/tensor"
)

// ProdNonZeroDiag multiplies the nonzero entries of the main diagonal of a rank-2 array of T.
// The diagonal has min(rows, cols) entries; if all of them are zero the result is 1.
// The product is accumulated in W, which must hold every value of T:
// int64 for signed input, uint64 for unsigned input, float64 for anything.
func ProdNonZeroDiag[T, W Number](x *tensor.Dense) (product W, err error) {
	const op = "prod non zero diag"
	if !widens[T, W]() {
		return 0, opErrorf(op, ErrDtype, "accumulator %v narrower than %v", reflect.TypeFor[W](), reflect.TypeFor[T]())
	}
	data, shape, err := backing[T](op, x, 2)
	if err != nil {
		return 0, err
	}
	rows, cols := shape[0], shape[1]
	product = 1
	for i := range min(rows, cols) {
		if value := data[i*cols+i]; value != 0 {
			product *= W(value)
		}
	}
	return product, nil
}

// widens reports whether every value of T converts to W without wrapping.
func widens[T, W Number]() bool {
	from, to := reflect.TypeFor[T](), reflect.TypeFor[W]()
	switch {
	case isFloat(to.Kind()):
		return !isFloat(from.Kind()) || from.Size() <= to.Size()
	case isFloat(from.Kind()):
		return false
	case isUnsigned(to.Kind()):
		return isUnsigned(from.Kind()) && from.Size() <= to.Size()
	case isUnsigned(from.Kind()):
		return from.Size() < to.Size()
	default:
		return from.Size() <= to.Size()
	}
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

func isUnsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}
