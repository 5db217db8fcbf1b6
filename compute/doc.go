// Package compute holds small pure numeric functions over gorgonia dense arrays:
// diagonal product, multiset equality, maximum after zero, channel-weighted image
// reduction, run-length encoding and pairwise Euclidean distance.
//
// Inputs are never modified. Malformed input fails fast with one of the sentinel
// errors in errors.go.
package compute
