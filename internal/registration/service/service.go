// Package service orchestrates the registration flows against the core
// service: standard email/phone matching, 1-click SMS links, and the
// exchange of returned correlation uuids for verified credentials.
package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"kredita/internal/coreapi"
	"kredita/internal/platform/config"
	"kredita/internal/platform/logger"
	"kredita/internal/registration/metrics"
	"kredita/internal/registration/models"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/requestcontext"
)

// Paths the core service sends visitors back to.
const (
	RegisterPath            = "/register"
	PersonalInformationPath = "/personal-information"
)

//go:generate mockgen -source=service.go -destination=mocks/service-mocks.go -package=mocks CoreAPI

// CoreAPI is the subset of the core service client the flows call.
type CoreAPI interface {
	HasMatchingCredentials(ctx context.Context, email, phone string, requests []coreapi.CredentialRequest) (string, error)
	SharedCredentials(ctx context.Context, uuid string) (*coreapi.SharedCredentials, error)
	OneClick(ctx context.Context, apiKey, phone string, opts coreapi.OneClickOptions) (*coreapi.OneClickResult, error)
	OneClickCredentials(ctx context.Context, apiKey, uuid string) (*coreapi.SharedCredentials, error)
}

// Config carries the settings the flows depend on.
type Config struct {
	DemoURL              string
	WalletURL            string
	Flow                 config.Flow
	RequireEmailAndPhone bool
}

// Service runs the registration flows.
type Service struct {
	core    CoreAPI
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(core CoreAPI, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Service {
	cfg.DemoURL = strings.TrimSuffix(cfg.DemoURL, "/")
	cfg.WalletURL = strings.TrimSuffix(cfg.WalletURL, "/")
	return &Service{core: core, cfg: cfg, logger: logger, metrics: m}
}

// Flow is the registration form currently served.
func (s *Service) Flow() config.Flow {
	return s.cfg.Flow
}

// Resume exchanges the correlation uuid carried by state for verified
// credentials. It returns nil when state has nothing to exchange or the core
// service has nothing for it, in which case the input form is shown again.
func (s *Service) Resume(ctx context.Context, state models.FlowState, apiKey string) (*models.Verification, error) {
	var (
		shared *coreapi.SharedCredentials
		err    error
		action string
	)
	switch state.Kind {
	case models.KindSharedCredentialsPending:
		action = "shared_credentials"
		shared, err = s.core.SharedCredentials(ctx, state.SharedCredentialsUUID)
	case models.KindOneClickPending:
		action = "one_click_credentials"
		shared, err = s.core.OneClickCredentials(ctx, apiKey, state.OneClickUUID)
	default:
		return nil, nil
	}
	if err != nil {
		s.metrics.IncrementOutcome(action, metrics.OutcomeFailed)
		return nil, err
	}

	identity := IdentityFrom(shared)
	if identity == "" {
		s.logger.InfoContext(ctx, "no usable credentials, showing form",
			"request_id", requestcontext.RequestID(ctx),
			"flow_state", state.Kind.String(),
		)
		s.metrics.IncrementOutcome(action, metrics.OutcomeNotFound)
		return nil, nil
	}

	s.metrics.IncrementOutcome(action, metrics.OutcomeVerified)
	return &models.Verification{Identity: identity, Credentials: shared}, nil
}

// Regular checks the wallet for existing email and phone credentials. On a
// match it returns the wallet URL the visitor must be sent to, carrying the
// contact details and the callback back to this application. "" means no
// match.
func (s *Service) Regular(ctx context.Context, req models.RegularRequest, state models.FlowState) (string, error) {
	const action = models.ActionRegular
	if err := req.Validate(s.cfg.RequireEmailAndPhone); err != nil {
		s.metrics.IncrementOutcome(action, metrics.OutcomeInvalid)
		return "", err
	}

	continuation, err := s.core.HasMatchingCredentials(ctx, req.Email, req.Phone, nil)
	if err != nil {
		s.metrics.IncrementOutcome(action, metrics.OutcomeFailed)
		return "", err
	}
	if continuation == "" {
		s.metrics.IncrementOutcome(action, metrics.OutcomeNoMatch)
		return "", nil
	}

	target, err := s.walletURL(continuation)
	if err != nil {
		s.metrics.IncrementOutcome(action, metrics.OutcomeFailed)
		return "", err
	}
	q := target.Query()
	if req.Email != "" {
		q.Set("email", req.Email)
	}
	if req.Phone != "" {
		q.Set("phone", coreapi.NormalizePhone(req.Phone))
	}
	q.Set("redirectUrl", s.cfg.DemoURL+RegisterPath+state.Completed().Query())
	target.RawQuery = q.Encode()

	s.logger.InfoContext(ctx, "redirecting to wallet",
		"request_id", requestcontext.RequestID(ctx),
		"host", target.Host,
	)
	s.metrics.IncrementOutcome(action, metrics.OutcomeRedirected)
	return target.String(), nil
}

// walletURL resolves the continuation returned by the core service: absolute
// wallet URLs are used as they are, anything else is a path on the wallet.
func (s *Service) walletURL(continuation string) (*url.URL, error) {
	raw := continuation
	if !strings.Contains(strings.ToLower(continuation), "wallet") {
		raw = s.cfg.WalletURL + continuation
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, dErrors.New(dErrors.CodeUnavailable, "core service returned an unusable wallet url")
	}
	return u, nil
}

// OneClick asks the core service to text a verification link. apiKey is the
// resolved brand's key; a key posted with the form takes precedence.
func (s *Service) OneClick(ctx context.Context, req models.OneClickRequest, state models.FlowState, apiKey string) (*coreapi.OneClickResult, error) {
	const action = models.ActionOneClick
	nonHosted := s.cfg.Flow == config.FlowOneClickNonHosted
	if err := req.Validate(nonHosted); err != nil {
		s.metrics.IncrementOutcome(action, metrics.OutcomeInvalid)
		return nil, err
	}
	if req.APIKey != "" {
		apiKey = req.APIKey
	}

	opts := coreapi.OneClickOptions{
		VerificationOptions: state.VerificationOptions,
		RedirectURL:         s.callbackURL(req.RedirectURL, state, nonHosted),
	}
	if nonHosted {
		opts.BirthDate = req.BirthDate
		opts.CredentialRequests = personalInformationRequests()
	}

	result, err := s.core.OneClick(ctx, apiKey, req.Phone, opts)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeUnavailable) {
			s.metrics.IncrementOutcome(action, metrics.OutcomeFailed)
		} else {
			s.metrics.IncrementOutcome(action, metrics.OutcomeInvalid)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "1-click link sent",
		"request_id", requestcontext.RequestID(ctx),
		"phone", logger.MaskPhone(result.Phone),
	)
	s.metrics.IncrementOutcome(action, metrics.OutcomeSent)
	return result, nil
}

// callbackURL is where the core service sends the visitor after the SMS
// link. A posted URL is honoured only when it points back at this
// application.
func (s *Service) callbackURL(posted string, state models.FlowState, nonHosted bool) string {
	if posted != "" && s.sameOrigin(posted) {
		return posted
	}
	path := RegisterPath
	if nonHosted {
		path = PersonalInformationPath
	}
	return s.cfg.DemoURL + path + state.Completed().Query()
}

func (s *Service) sameOrigin(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	demo, err := url.Parse(s.cfg.DemoURL)
	if err != nil {
		return false
	}
	return u.Scheme == demo.Scheme && u.Host == demo.Host
}

// PersonalInformation fetches the credentials released through a 1-click
// link for review. It returns nil when there is nothing to show.
func (s *Service) PersonalInformation(ctx context.Context, state models.FlowState, apiKey string) (*models.PersonalInformation, error) {
	if state.Kind != models.KindOneClickPending {
		return nil, nil
	}
	shared, err := s.core.OneClickCredentials(ctx, apiKey, state.OneClickUUID)
	if err != nil {
		return nil, err
	}
	if shared == nil || len(shared.Credentials) == 0 {
		return nil, nil
	}
	info := PersonalInformationFrom(shared)
	return &info, nil
}

func personalInformationRequests() []coreapi.CredentialRequest {
	return []coreapi.CredentialRequest{
		{Type: coreapi.TypeFullName, Issuers: []string{}, Required: true},
		{Type: coreapi.TypeEmail, Issuers: []string{}, Required: false},
		{Type: coreapi.TypeAddress, Issuers: []string{}, Required: false},
		{Type: coreapi.TypeBirthDate, Issuers: []string{}, Required: false},
		{Type: coreapi.TypeSSN, Issuers: []string{}, Required: false},
	}
}
