package sender

import (
	"errors"
	"sync"
	"time"
)

var ErrDailyLimitExceeded = errors.New("telegram daily send limit exceeded")

// DailyLimiter keeps a separate daily budget for every chat so one noisy
// customer cannot use up the bot's allowance for everyone else. Budgets
// reset at midnight in loc.
type DailyLimiter struct {
	mu    sync.Mutex
	day   string
	used  map[int64]int
	limit int
	loc   *time.Location
}

func NewDailyLimiter(limit int, loc *time.Location) *DailyLimiter {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyLimiter{
		used:  make(map[int64]int),
		limit: limit,
		loc:   loc,
	}
}

// Reserve takes one slot from chatID's budget for the day of now. It
// reports the slots left and whether the send may go ahead.
func (l *DailyLimiter) Reserve(chatID int64, now time.Time) (remaining int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover(now)
	if l.used[chatID] >= l.limit {
		return 0, false
	}

	l.used[chatID]++
	return l.limit - l.used[chatID], true
}

// Release gives back a slot taken by Reserve when the send failed. A
// release after midnight is a no-op: the new day starts with a full budget.
func (l *DailyLimiter) Release(chatID int64, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover(now)
	if l.used[chatID] > 0 {
		l.used[chatID]--
	}
}

func (l *DailyLimiter) rollover(now time.Time) {
	today := now.In(l.loc).Format(time.DateOnly)
	if l.day != today {
		l.day = today
		clear(l.used)
	}
}
