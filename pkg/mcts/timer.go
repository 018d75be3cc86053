package mcts

import "time"

// Wall-clock budget of a single search
type searchTimer struct {
	start  time.Time
	budget time.Duration // negative when there is no time limit
}

func newSearchTimer() *searchTimer {
	return &searchTimer{start: time.Now(), budget: -1}
}

// In milliseconds, negative disables the time limit
func (t *searchTimer) SetMovetime(ms int) {
	t.budget = -1
	if ms >= 0 {
		t.budget = time.Duration(ms) * time.Millisecond
	}
}

func (t *searchTimer) Armed() bool {
	return t.budget >= 0
}

func (t *searchTimer) Restart() {
	t.start = time.Now()
}

func (t *searchTimer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Whole budget used up, a zero budget is used up right away
func (t *searchTimer) Expired() bool {
	return t.Armed() && t.Elapsed() >= t.budget
}

// At least 'fraction' of the budget used up
func (t *searchTimer) Passed(fraction float64) bool {
	return t.Armed() && t.Elapsed() >= time.Duration(fraction*float64(t.budget))
}

// Elapsed milliseconds, at least 1 so it can be used as a divisor
func (t *searchTimer) ElapsedMs() uint32 {
	return uint32(max(t.Elapsed().Milliseconds(), 1))
}
