package polaris

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for Polaris API responses.
var (
	// ErrUnauthorised indicates the session token is invalid or expired.
	ErrUnauthorised = errors.New("polaris: unauthorised")

	// ErrForbidden indicates the user lacks permission for the requested resource.
	ErrForbidden = errors.New("polaris: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("polaris: not found")

	// ErrRateLimited indicates the request was throttled by Polaris.
	ErrRateLimited = errors.New("polaris: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("polaris: bad request")

	// ErrServerError indicates a server-side error from Polaris.
	ErrServerError = errors.New("polaris: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// AuthError indicates the credential exchange with the session endpoint
// failed: a non-2xx response or a response without an access token.
type AuthError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("polaris: authentication failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("polaris: authentication failed: %s", e.Message)
}

// Unwrap maps the HTTP status onto the sentinel taxonomy so callers can
// branch with errors.Is.
func (e *AuthError) Unwrap() error {
	return WrapError(e.StatusCode)
}

// GraphQLError indicates the server answered a GraphQL request with a
// top-level errors array instead of data.
type GraphQLError struct {
	Operation string
	Errors    []ResponseError
	// Raw is the full response body, kept for diagnostics.
	Raw []byte
}

// ResponseError is a single entry of a GraphQL errors array.
type ResponseError struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *GraphQLError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("polaris: %s: graphql error", e.Operation)
	}
	return fmt.Sprintf("polaris: %s: %s", e.Operation, e.Errors[0].Message)
}

// AssignmentError indicates an SLA assignment mutation did not report
// success. RawResponse carries the server payload for diagnostics.
type AssignmentError struct {
	RawResponse []byte
}

// Error implements the error interface.
func (e *AssignmentError) Error() string {
	return "polaris: sla assignment was not successful"
}

// PaginationError indicates a connection response was missing the
// edges/pageInfo shape the pager depends on. The accumulated partial page
// set is discarded rather than returned as a complete result.
type PaginationError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *PaginationError) Error() string {
	return fmt.Sprintf("polaris: %s: malformed connection page: %s", e.Operation, e.Reason)
}
