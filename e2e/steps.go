package e2e

import (
	"github.com/cucumber/godog"

	"kredita/e2e/steps/common"
	"kredita/e2e/steps/ratelimit"
	"kredita/e2e/steps/registration"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Wallet fixtures and sign-in flows
	registration.RegisterSteps(ctx, tc)

	// Register form throttling
	ratelimit.RegisterSteps(ctx, tc)
}
