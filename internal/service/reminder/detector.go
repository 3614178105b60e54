package reminder

import "productivity-hub/internal/domain"

// IncompleteSubItems returns the sub-items that are not done, in their original order.
// An empty input yields an empty result, so an item without sub-items is never incomplete.
func IncompleteSubItems[S ~[]E, E domain.Completable](items S) S {
	out := make(S, 0, len(items))
	for _, item := range items {
		if !item.IsDone() {
			out = append(out, item)
		}
	}
	return out
}
