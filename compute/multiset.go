package compute

import (
	"maps"

	"gorgonia.org/tensor"
)

// AreMultisetsEqual reports whether x and y hold the same values with the same
// multiplicities, ignoring order. NaN never equals itself, so float inputs
// containing NaN are never equal.
func AreMultisetsEqual[T comparable](x, y *tensor.Dense) (equal bool, err error) {
	xs, _, err := backing[T]("are multisets equal", x, 1)
	if err != nil {
		return false, err
	}
	ys, _, err := backing[T]("are multisets equal", y, 1)
	if err != nil {
		return false, err
	}
	if len(xs) != len(ys) {
		return false, nil
	}
	return maps.Equal(counter(xs), counter(ys)), nil
}

func counter[T comparable](values []T) map[T]int {
	counts := make(map[T]int, len(values))
	for _, value := range values {
		counts[value]++
	}
	return counts
}
