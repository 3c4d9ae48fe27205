package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients and stores return these
// (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: the remote resource does not exist or was already consumed
// - ErrUnavailable: the remote service could not be reached
// - ErrInvalidSignature: a signed value failed verification
// - ErrExpired: a signed value is past its expiry
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnavailable      = errors.New("unavailable")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrExpired          = errors.New("expired")
)
