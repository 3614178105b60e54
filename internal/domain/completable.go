package domain

import "math"

// Completable is a sub-item owned by a Task or Course that can be ticked off.
type Completable interface {
	IsDone() bool
}

// PercentCompleted is the share of done items rounded to a whole percent.
// An empty list is 0% complete.
func PercentCompleted[S ~[]E, E Completable](items S) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.IsDone() {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(items)) * 100))
}
