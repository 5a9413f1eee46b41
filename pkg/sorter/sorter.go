// Package sorter implements the in-place comparator-driven quicksort used
// for ranked match output. The sequences involved are small (at most the
// top-K cap), so a plain last-element-pivot partition is sufficient.
package sorter

// Sort orders s in place. cmp returns a negative value when a sorts before
// b, zero when equal, positive when a sorts after b.
func Sort[T any](s []T, cmp func(a, b T) int) {
	if len(s) < 2 {
		return
	}
	quicksort(s, cmp, 0, len(s)-1)
}

func quicksort[T any](s []T, cmp func(a, b T) int, low, high int) {
	if low >= high {
		return
	}
	p := partition(s, cmp, low, high)
	quicksort(s, cmp, low, p-1)
	quicksort(s, cmp, p+1, high)
}

// partition uses the last element as pivot and returns its final index.
func partition[T any](s []T, cmp func(a, b T) int, low, high int) int {
	pivot := s[high]
	i := low - 1
	for j := low; j < high; j++ {
		if cmp(s[j], pivot) <= 0 {
			i++
			s[i], s[j] = s[j], s[i]
		}
	}
	s[i+1], s[high] = s[high], s[i+1]
	return i + 1
}
