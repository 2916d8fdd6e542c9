package github

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrMissingToken is returned when an operation requires authentication
	// but no API token was configured (GITHUB_TOKEN unset and Config.Token empty).
	ErrMissingToken = errors.New("missing GitHub API token (GITHUB_TOKEN not set)")

	// ErrInvalidToken is returned when the configured token contains bytes
	// that cannot appear in an HTTP header value.
	ErrInvalidToken = errors.New("GitHub API token contains invalid header characters")

	// ErrMissingData is returned when a GraphQL response carries neither
	// errors nor a data object.
	ErrMissingData = errors.New("missing graphql data")
)

// StatusError represents a non-2xx HTTP response from the GitHub API.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("github: unexpected status %s for %s", e.Status, e.URL)
}

// GraphQLError represents an application-level error returned inside a
// GraphQL response envelope. When the platform reports several errors only
// the first is kept.
type GraphQLError struct {
	Message string
}

// Error implements the error interface.
func (e *GraphQLError) Error() string {
	return fmt.Sprintf("graphql error: %s", e.Message)
}
