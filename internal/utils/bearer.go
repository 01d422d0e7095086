package utils

import (
	"errors"
	"strings"
)

// ParseBearerToken extracts the credential string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: Bearer <token>
//
// Returns an error when the header does not consist of exactly two
// space-separated parts or the token part is empty.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
