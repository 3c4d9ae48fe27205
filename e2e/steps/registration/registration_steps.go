package registration

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/cucumber/godog"

	"kredita/internal/coreapi"
	"kredita/internal/coreapi/coreapitest"
)

const sessionCookie = "__session"

var aliasPattern = regexp.MustCompile(`\{[^}]+\}`)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Core() *coreapitest.Server
	Alias(name string) string
	GET(path string) error
	PostForm(path string, form url.Values) error
	LastHeader(name string) string
	HasCookie(name string) bool
}

// RegisterSteps registers wallet fixtures and the sign-in flow steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrationSteps{tc: tc}

	// Core service fixtures
	ctx.Step(`^the wallet shared "([^"]*)" as "([^"]*)"$`, steps.walletShared)
	ctx.Step(`^the wallet released "([^"]*)" through 1-click link "([^"]*)"$`, steps.walletReleasedOneClick)
	ctx.Step(`^"([^"]*)" already holds credentials continuing at "([^"]*)"$`, steps.alreadyHoldsCredentials)
	ctx.Step(`^the core service texts "([^"]*)" the link "([^"]*)"$`, steps.coreTextsLink)

	// Flow
	ctx.Step(`^I return from the wallet with "([^"]*)"$`, steps.returnWithShared)
	ctx.Step(`^I follow the 1-click link "([^"]*)"$`, steps.followOneClick)
	ctx.Step(`^I submit the "([^"]*)" action with:$`, steps.submitAction)
	ctx.Step(`^I submit the "([^"]*)" action$`, steps.submitBareAction)

	// Assertions
	ctx.Step(`^I should be signed in$`, steps.shouldBeSignedIn)
	ctx.Step(`^I should not be signed in$`, steps.shouldNotBeSignedIn)
	ctx.Step(`^I should be sent to the wallet at "([^"]*)"$`, steps.sentToWallet)
	ctx.Step(`^the core service should have been asked for "([^"]*)"$`, steps.coreAskedFor)
}

type registrationSteps struct {
	tc TestContext
}

func fullName(name string) coreapi.SharedCredentials {
	return coreapi.SharedCredentials{
		Credentials: []coreapi.Credential{
			{Type: coreapi.TypeFullName, Value: coreapitest.TextValue(name)},
		},
	}
}

func (s *registrationSteps) walletShared(ctx context.Context, name, alias string) error {
	s.tc.Core().AddSharedCredentials(s.tc.Alias(alias), fullName(name))
	return nil
}

func (s *registrationSteps) walletReleasedOneClick(ctx context.Context, name, alias string) error {
	s.tc.Core().AddOneClickCredentials(s.tc.Alias(alias), fullName(name))
	return nil
}

func (s *registrationSteps) alreadyHoldsCredentials(ctx context.Context, email, continuation string) error {
	s.tc.Core().AddMatch(strings.ToLower(email), continuation)
	return nil
}

func (s *registrationSteps) coreTextsLink(ctx context.Context, phone, link string) error {
	s.tc.Core().AddOneClickLink(coreapi.NormalizePhone(phone), link)
	return nil
}

func (s *registrationSteps) returnWithShared(ctx context.Context, alias string) error {
	return s.tc.GET("/register?sharedCredentialsUuid=" + s.tc.Alias(alias))
}

func (s *registrationSteps) followOneClick(ctx context.Context, alias string) error {
	return s.tc.GET("/register?1ClickUuid=" + s.tc.Alias(alias))
}

func (s *registrationSteps) submitAction(ctx context.Context, action string, table *godog.Table) error {
	form := url.Values{"action": {action}}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected field and value columns, got %d cells", len(row.Cells))
		}
		form.Set(row.Cells[0].Value, row.Cells[1].Value)
	}
	return s.tc.PostForm("/register", form)
}

func (s *registrationSteps) submitBareAction(ctx context.Context, action string) error {
	return s.tc.PostForm("/register", url.Values{"action": {action}})
}

func (s *registrationSteps) shouldBeSignedIn(ctx context.Context) error {
	if !s.tc.HasCookie(sessionCookie) {
		return fmt.Errorf("expected a session cookie")
	}
	return nil
}

func (s *registrationSteps) shouldNotBeSignedIn(ctx context.Context) error {
	if s.tc.HasCookie(sessionCookie) {
		return fmt.Errorf("expected no session cookie")
	}
	return nil
}

func (s *registrationSteps) sentToWallet(ctx context.Context, prefix string) error {
	location := s.tc.LastHeader("Location")
	if !strings.HasPrefix(location, prefix) {
		return fmt.Errorf("expected redirect to %s..., got %q", prefix, location)
	}
	target, err := url.Parse(location)
	if err != nil {
		return err
	}
	if target.Query().Get("redirectUrl") == "" {
		return fmt.Errorf("wallet redirect carries no callback: %s", location)
	}
	return nil
}

// coreAskedFor expands {alias} placeholders to the uuids handed out for them.
func (s *registrationSteps) coreAskedFor(ctx context.Context, request string) error {
	request = aliasPattern.ReplaceAllStringFunc(request, func(m string) string {
		return s.tc.Alias(strings.Trim(m, "{}"))
	})
	for _, r := range s.tc.Core().Requests() {
		if r == request {
			return nil
		}
	}
	return fmt.Errorf("core service never received %q; got %v", request, s.tc.Core().Requests())
}
