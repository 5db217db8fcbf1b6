package compute

import (
	"gorgonia.org/tensor"
)

// NoSuccessor is returned by MaxAfterZero when no zero is followed by an element greater than it.
const NoSuccessor = -1

// MaxAfterZero returns the largest element that directly follows a zero.
// The running maximum starts at NoSuccessor, so successors at or below -1 never win.
func MaxAfterZero[T Signed | Float](x *tensor.Dense) (maximum T, err error) {
	data, _, err := backing[T]("max after zero", x, 1)
	if err != nil {
		return 0, err
	}
	maximum = NoSuccessor
	for i := 1; i < len(data); i++ {
		if data[i-1] == 0 && data[i] > maximum {
			maximum = data[i]
		}
	}
	return maximum, nil
}
