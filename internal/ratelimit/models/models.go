package models

import "time"

// Limit is a request budget per key. Burst bounds how many requests may
// arrive back to back before the steady rate applies.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// PerSecond is the steady refill rate of the limit.
func (l Limit) PerSecond() float64 {
	if l.Window <= 0 {
		return 0
	}
	return float64(l.RequestsPerWindow) / l.Window.Seconds()
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// NewIPKey is the bucket key for form submissions from ip.
func NewIPKey(ip string) string {
	return "register:ip:" + ip
}
