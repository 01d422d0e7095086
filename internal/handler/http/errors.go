package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("authentication credentials were not provided")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a well-formed bearer credential.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// errInvalidJSONBody is the uniform message for request bodies that fail
	// to decode.
	errInvalidJSONBody = errors.New("invalid JSON was passed")

	// errInvalidIDList is returned for filter query parameters that are not
	// comma-separated integer lists.
	errInvalidIDList = errors.New("filter values must be comma-separated integers")
)
