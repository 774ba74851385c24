package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// StreakTracker counts consecutive work days for a single person.
// Only the maximum is enforced: checking the minimum would need lookahead
// into days that have not been decided yet.
type StreakTracker struct {
	max   int
	count int
}

// NewStreakTracker creates a tracker that flags streaks longer than max
func NewStreakTracker(max int) *StreakTracker {
	return &StreakTracker{max: max}
}

// Observe records the next day's status in chronological order.
// It returns the running count after the day and whether the count is over the maximum.
// The count keeps growing past the maximum; only a non-work day resets it.
func (s *StreakTracker) Observe(status model.Status) (int, bool) {
	if status != model.StatusWork {
		s.count = 0
		return 0, false
	}

	s.count++
	return s.count, s.count > s.max
}

// Count returns the current run of consecutive work days
func (s *StreakTracker) Count() int {
	return s.count
}
