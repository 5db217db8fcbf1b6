package compute

import (
	"cmp"
	"slices"

	"gorgonia.org/tensor"
)

// Encoding is a run-length encoding: Counters[i] copies of Elements[i], Elements ascending.
type Encoding[T cmp.Ordered] struct {
	Elements []T
	Counters []int
}

// Len returns the number of runs.
func (e Encoding[T]) Len() int {
	return len(e.Elements)
}

// Decode expands the encoding back into the sorted sequence.
func (e Encoding[T]) Decode() []T {
	total := 0
	for _, count := range e.Counters {
		total += count
	}
	sequence := make([]T, 0, total)
	for i, element := range e.Elements {
		for range e.Counters[i] {
			sequence = append(sequence, element)
		}
	}
	return sequence
}

// RunLengthEncoding sorts a copy of x ascending and collapses equal neighbours into runs.
// The output follows sorted order, not input order.
func RunLengthEncoding[T cmp.Ordered](x *tensor.Dense) (encoding Encoding[T], err error) {
	data, _, err := backing[T]("run length encoding", x, 1)
	if err != nil {
		return encoding, err
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			run++
			continue
		}
		encoding.Elements = append(encoding.Elements, sorted[i-1])
		encoding.Counters = append(encoding.Counters, run)
		run = 1
	}
	encoding.Elements = append(encoding.Elements, sorted[len(sorted)-1])
	encoding.Counters = append(encoding.Counters, run)
	return encoding, nil
}
