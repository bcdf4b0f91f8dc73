package flex

import (
	"cmp"
	"slices"
)

// orderIndex maps reordered positions to original item indices.
// orders caches the Order value each original index had when the
// permutation was built, for the dirty check.
type orderIndex struct {
	perm   []int
	orders []int
}

// reorder returns the stable permutation of items sorted by Order.
func reorder(items []Item) orderIndex {
	perm := make([]int, len(items))
	orders := make([]int, len(items))
	for i := range items {
		perm[i] = i
		orders[i] = items[i].Order
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp.Compare(items[a].Order, items[b].Order)
	})
	return orderIndex{perm: perm, orders: orders}
}

// changed reports whether items differ in count or in any Order value from
// the ones the index was built with.
func (o orderIndex) changed(items []Item) bool {
	if len(o.orders) != len(items) {
		return true
	}
	for i := range items {
		if items[i].Order != o.orders[i] {
			return true
		}
	}
	return false
}
