package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrPhaseNotFound      = errors.New("phase not found")
)

// FailureKind classifies request failures for callers that need to decide
// between retry affordances, inline form messages, and session teardown.
type FailureKind int

const (
	// KindNetwork: transport-level failure, no HTTP response at all.
	KindNetwork FailureKind = iota + 1
	// KindAuth: non-2xx on login/me, or a 401 from any endpoint.
	KindAuth
	// KindValidation: rejected client-side before any network call.
	KindValidation
	// KindBusiness: the backend answered but refused the operation
	// (success:false body or a non-2xx status other than 401).
	KindBusiness
)

// RequestError is the uniform failure shape surfaced by the API layer.
// Message is display-ready; Status is zero for network and validation
// failures.
type RequestError struct {
	Kind    FailureKind
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// FailureKindOf extracts the failure kind from err, or zero when err is not a
// RequestError.
func FailureKindOf(err error) FailureKind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

// FailureMessage returns the display-ready message for err, falling back to
// err.Error() for plain errors.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re.Error()
	}
	return err.Error()
}
