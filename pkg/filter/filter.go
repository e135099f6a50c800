// Package filter provides a generic slice filter used to prune SARIF
// result sets.
package filter

type Predicate[T any] func(T) bool

// Filter returns the elements of input for which keep returns true,
// preserving order.
func Filter[T any](input []T, keep Predicate[T]) []T {
	output := make([]T, 0, len(input))
	for i := range input {
		if keep(input[i]) {
			output = append(output, input[i])
		}
	}
	return output
}
