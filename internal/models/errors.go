package models

import "errors"

// Error taxonomy shared by services and the HTTP layer. Handlers map these
// to status codes; none of them is fatal to the process.
var (
	// ErrNotAuthenticated means no valid session accompanies the request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden means the session is valid but lacks rights, e.g. a
	// member attempting a delete reserved for the owner.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced project, period or task is missing.
	ErrNotFound = errors.New("not found")

	// ErrValidation means a required field is empty or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrServiceUnavailable means an external collaborator (report
	// generation, federated login) is unreachable or unconfigured.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrNetwork is a generic transport failure talking to the data store.
	ErrNetwork = errors.New("network error")
)
