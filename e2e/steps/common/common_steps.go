package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetEnv(key, value string)
	PreferHTML()
	GET(path string) error
	LastStatus() int
	LastBody() []byte
	LastHeader(name string) string
	ResponseField(field string) (any, error)
}

var flows = map[string]map[string]string{
	"standard":             {},
	"one-click":            {"ONE_CLICK_ENABLED": "true"},
	"one-click-non-hosted": {"ONE_CLICK_ENABLED": "true", "ONE_CLICK_NON_HOSTED_ENABLED": "true"},
}

// RegisterSteps registers background, request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the demo runs the "([^"]*)" flow$`, steps.demoRunsFlow)
	ctx.Step(`^I browse with a web browser$`, steps.browseWithBrowser)
	ctx.Step(`^I open "([^"]*)"$`, steps.open)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^I should be redirected to "([^"]*)"$`, steps.redirectedTo)
	ctx.Step(`^the page should contain "([^"]*)"$`, steps.bodyShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, steps.headerShouldBe)
	ctx.Step(`^the response header "([^"]*)" should be set$`, steps.headerShouldBeSet)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) demoRunsFlow(ctx context.Context, flow string) error {
	vars, ok := flows[flow]
	if !ok {
		return fmt.Errorf("unknown flow %q", flow)
	}
	for k, v := range vars {
		s.tc.SetEnv(k, v)
	}
	return nil
}

func (s *commonSteps) browseWithBrowser(ctx context.Context) error {
	s.tc.PreferHTML()
	return nil
}

func (s *commonSteps) open(ctx context.Context, path string) error {
	return s.tc.GET(path)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if got := s.tc.LastStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.LastBody())
	}
	return nil
}

func (s *commonSteps) redirectedTo(ctx context.Context, location string) error {
	if got := s.tc.LastStatus(); got != http.StatusFound {
		return fmt.Errorf("expected a redirect, got status %d: %s", got, s.tc.LastBody())
	}
	if got := s.tc.LastHeader("Location"); got != location {
		return fmt.Errorf("expected redirect to %q, got %q", location, got)
	}
	return nil
}

func (s *commonSteps) bodyShouldContain(ctx context.Context, text string) error {
	if !strings.Contains(string(s.tc.LastBody()), text) {
		return fmt.Errorf("expected response to contain %q", text)
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(ctx context.Context, field, expected string) error {
	v, err := s.tc.ResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *commonSteps) headerShouldBe(ctx context.Context, name, expected string) error {
	if got := s.tc.LastHeader(name); got != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", name, expected, got)
	}
	return nil
}

func (s *commonSteps) headerShouldBeSet(ctx context.Context, name string) error {
	if s.tc.LastHeader(name) == "" {
		return fmt.Errorf("expected header %s to be set", name)
	}
	return nil
}
