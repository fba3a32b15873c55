package service

import "errors"

// Kind classifies a service failure so the request layer can pick a status
// code without inspecting messages.
type Kind int

// Failure kinds
const (
	KindInternal      Kind = iota // Uncaught internal failure
	KindValidation                // Missing/malformed field, unknown enum value
	KindAuthorization             // Role mismatch or not-owner
	KindNotFound                  // Missing bill/document/delivery/user
	KindDuplicate                 // Username/email/number already exists
	KindExternal                  // Collaborator failure: mail, tracker, sheet fetch
)

// Error carries a failure kind and the human-readable (Thai) message shown
// to the user. The wrapped cause is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a service error
func E(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the failure kind; anything that is not a service error is
// internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message, falling back to a generic one
func MessageOf(err error, fallback string) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return fallback
}
