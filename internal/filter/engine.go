// Package filter implements the in-memory search used by the catalog and the
// contributor dashboard: composable predicates, the catalog filter state and
// fixed-size paging.
package filter

// Predicate reports whether an item should be kept.
type Predicate[T any] func(T) bool

// Apply returns the items that satisfy every predicate, in their original
// order. Evaluation stops at the first failing predicate for an item. The
// input slice is never modified and the result is never nil.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}
