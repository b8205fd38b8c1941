package blizzard

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Common errors. The typed errors below match these with errors.Is.
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid battle.net client configuration")
	// ErrConnectivity indicates the request never produced an HTTP response
	ErrConnectivity = errors.New("battle.net connection failed")
	// ErrUnauthorized indicates rejected credentials or a rejected access token
	ErrUnauthorized = errors.New("battle.net authentication failed")
	// ErrNotFound indicates the requested document does not exist
	ErrNotFound = errors.New("resource not found")
	// ErrParse indicates a response body that does not match the expected schema
	ErrParse = errors.New("failed to parse battle.net response")
)

// ConnectivityError is returned when a token or data request fails before a response arrives.
type ConnectivityError struct {
	Op  string
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("battle.net %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is matches ErrConnectivity.
func (e *ConnectivityError) Is(target error) bool {
	return target == ErrConnectivity
}

// AuthError is returned when the identity service rejects the credentials, or
// when a data request is still unauthorized after one token refresh.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("battle.net authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("battle.net authentication failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnauthorized.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// APIError is a non-2xx response from a game data endpoint. Status and body
// are passed through from the vendor unchanged.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	URL        string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("battle.net API error: status %d: %s", e.StatusCode, e.Message)
}

// Is matches ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.IsNotFound()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the vendor throttled the request
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if the vendor failed with a 5xx status
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ParseError is returned when a token or data response cannot be decoded.
type ParseError struct {
	Target string
	Body   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Target, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

const maxBodySnippet = 512

// snippet truncates body to maxBodySnippet bytes without splitting a UTF-8 sequence.
func snippet(body []byte) string {
	if len(body) <= maxBodySnippet {
		return string(body)
	}
	cut := maxBodySnippet
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
