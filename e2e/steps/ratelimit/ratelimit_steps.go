package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetEnv(key, value string)
	PostForm(path string, form url.Values) error
	LastStatus() int
	LastHeader(name string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^the register form allows a burst of (\d+) submissions$`, steps.allowsBurst)
	ctx.Step(`^rate limiting is disabled$`, steps.disabled)
	ctx.Step(`^I submit the register form (\d+) times$`, steps.submitNTimes)
	ctx.Step(`^the (\d+)(?:st|nd|rd|th) attempt should return (\d+)$`, steps.nthAttemptShouldReturn)
	ctx.Step(`^the last attempt should say when to retry$`, steps.lastAttemptShouldSayWhenToRetry)
}

type ratelimitSteps struct {
	tc       TestContext
	statuses []int
	retry    string
}

func (s *ratelimitSteps) allowsBurst(ctx context.Context, burst int) error {
	s.tc.SetEnv("RATELIMIT_REGISTER_PER_MINUTE", "10")
	s.tc.SetEnv("RATELIMIT_REGISTER_BURST", strconv.Itoa(burst))
	return nil
}

func (s *ratelimitSteps) disabled(ctx context.Context) error {
	s.tc.SetEnv("RATELIMIT_DISABLED", "true")
	return nil
}

// submitNTimes posts the standard form with an address the wallet does not
// know, so every admitted attempt answers 200.
func (s *ratelimitSteps) submitNTimes(ctx context.Context, times int) error {
	s.statuses = s.statuses[:0]
	form := url.Values{
		"action": {"regular"},
		"email":  {"nobody@example.com"},
	}
	for range times {
		if err := s.tc.PostForm("/register", form); err != nil {
			return err
		}
		s.statuses = append(s.statuses, s.tc.LastStatus())
	}
	s.retry = s.tc.LastHeader("Retry-After")
	return nil
}

func (s *ratelimitSteps) nthAttemptShouldReturn(ctx context.Context, n, expectedStatus int) error {
	if n < 1 || n > len(s.statuses) {
		return fmt.Errorf("only %d attempts were made", len(s.statuses))
	}
	if got := s.statuses[n-1]; got != expectedStatus {
		return fmt.Errorf("attempt %d: expected status %d, got %d (all: %v)", n, expectedStatus, got, s.statuses)
	}
	return nil
}

func (s *ratelimitSteps) lastAttemptShouldSayWhenToRetry(ctx context.Context) error {
	seconds, err := strconv.Atoi(s.retry)
	if err != nil || seconds < 1 {
		return fmt.Errorf("expected a positive Retry-After, got %q", s.retry)
	}
	return nil
}
