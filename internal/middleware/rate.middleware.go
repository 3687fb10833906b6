package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

// RateLimiter is a single process-wide throttle: a time-ordered queue of the
// last accepted request timestamps, shared by every caller. It is not
// per-IP or per-user. The queue is read-evicted and appended on every
// request, so all access holds the mutex.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	period time.Duration
	queue  []time.Time

	now func() time.Time // overridable for tests
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		period: period,
		queue:  make([]time.Time, 0, limit),
		now:    time.Now,
	}
}

// Allow evicts timestamps older than now-period, then admits the request if
// the queue is below capacity. Rejected requests are not enqueued.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.period)
	i := 0
	for i < len(rl.queue) && rl.queue[i].Before(cutoff) {
		i++
	}
	rl.queue = rl.queue[i:]

	if len(rl.queue) >= rl.limit {
		return false
	}
	rl.queue = append(rl.queue, now)
	return true
}

// Middleware is the outermost stage of the request pipeline: cheapest
// rejection first, before any crypto work.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow() {
			response.Error(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
