package e2e

import (
	"context"
	"testing"

	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping acceptance scenarios in short mode")
	}
	tc := NewTestContext(t)

	suite := godog.TestSuite{
		Name: "kredita",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.Reset()
				return ctx, nil
			})
			ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
				tc.Close()
				return ctx, err
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("acceptance scenarios failed")
	}
}
