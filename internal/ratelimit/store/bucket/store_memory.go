package bucket

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kredita/internal/ratelimit/models"
)

const idleAfter = 10 * time.Minute

// InMemoryBucketStore keeps one token bucket per key in process memory. It is
// the store of a single instance and the fallback while Redis is unreachable.
type InMemoryBucketStore struct {
	mu          sync.Mutex
	buckets     map[string]*entry
	lastCleanup time.Time
	now         func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewInMemoryBucketStore creates a new in-memory bucket store.
func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow takes one token from key's bucket.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit models.Limit) (*models.RateLimitResult, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maybeCleanup(now)
	e := s.bucket(key, limit, now)
	e.lastSeen = now

	burst := e.limiter.Burst()
	if e.limiter.AllowN(now, 1) {
		tokens := e.limiter.TokensAt(now)
		return &models.RateLimitResult{
			Allowed:   true,
			Limit:     burst,
			Remaining: max(int(math.Floor(tokens)), 0),
			ResetAt:   now.Add(refillTime(limit, float64(burst)-tokens)),
		}, nil
	}

	wait := refillTime(limit, 1-e.limiter.TokensAt(now))
	return &models.RateLimitResult{
		Allowed:    false,
		Limit:      burst,
		Remaining:  0,
		ResetAt:    now.Add(wait),
		RetryAfter: max(int(math.Ceil(wait.Seconds())), 1),
	}, nil
}

// Len reports how many keys are tracked.
func (s *InMemoryBucketStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// bucket returns the entry for key, creating it full. Must be called while
// holding s.mu.
func (s *InMemoryBucketStore) bucket(key string, limit models.Limit, now time.Time) *entry {
	if e := s.buckets[key]; e != nil {
		return e
	}
	burst := limit.Burst
	if burst <= 0 {
		burst = limit.RequestsPerWindow
	}
	e := &entry{limiter: rate.NewLimiter(rate.Limit(limit.PerSecond()), burst), lastSeen: now}
	s.buckets[key] = e
	return e
}

// maybeCleanup drops buckets idle for longer than idleAfter. A bucket idle
// that long has refilled, so dropping it changes no decision.
func (s *InMemoryBucketStore) maybeCleanup(now time.Time) {
	if now.Sub(s.lastCleanup) < idleAfter {
		return
	}
	s.lastCleanup = now
	for key, e := range s.buckets {
		if now.Sub(e.lastSeen) >= idleAfter {
			delete(s.buckets, key)
		}
	}
}

func refillTime(limit models.Limit, tokens float64) time.Duration {
	perSecond := limit.PerSecond()
	if tokens <= 0 || perSecond <= 0 {
		return 0
	}
	return time.Duration(tokens / perSecond * float64(time.Second))
}
