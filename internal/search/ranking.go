package search

import "sort"

// RankStable orders items by score descending. Items with equal scores keep
// their input order, so callers pass them in insertion order.
func RankStable[T any](items []T, score func(T) int) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return score(out[i]) > score(out[j])
	})
	return out
}

// Limit truncates items to n when n is positive.
func Limit[T any](items []T, n int) []T {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
