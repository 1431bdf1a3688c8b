// Package errors provides custom error types for the encyclopedia client.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	ErrNoResults       = errors.New("no search results")
	ErrPageNotFound    = errors.New("page not found")
	ErrAmbiguous       = errors.New("ambiguous title")
	ErrNetwork         = errors.New("network error")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrClosed          = errors.New("client is closed")
)

// PageError means the requested title does not resolve to an article.
type PageError struct {
	Title string
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %q does not match any pages", e.Title)
}

// Is allows comparison with sentinel errors
func (e *PageError) Is(target error) bool {
	if target == ErrPageNotFound {
		return true
	}
	_, ok := target.(*PageError)
	return ok
}

// NewPageError creates a new PageError
func NewPageError(title string) *PageError {
	return &PageError{Title: title}
}

// DisambiguationError means the title names several distinct subjects.
// Options holds the alternative titles in page order.
type DisambiguationError struct {
	Title   string
	Options []string
}

func (e *DisambiguationError) Error() string {
	return fmt.Sprintf("%q may refer to: %s", e.Title, strings.Join(e.Options, ", "))
}

// Is allows comparison with sentinel errors
func (e *DisambiguationError) Is(target error) bool {
	if target == ErrAmbiguous {
		return true
	}
	_, ok := target.(*DisambiguationError)
	return ok
}

// NewDisambiguationError creates a new DisambiguationError
func NewDisambiguationError(title string, options []string) *DisambiguationError {
	return &DisambiguationError{Title: title, Options: options}
}

// APIError represents an API request failure
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates a new APIError carrying a truncated response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	e := NewAPIError(statusCode, endpoint, message)
	e.Body = body
	return e
}

// NetworkError represents a transport-level failure (DNS, TLS, connection reset).
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("network error during %s", e.Operation)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	if target == ErrNetwork {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Cause: cause}
}

// NewNetworkErrorWithEndpoint creates a new NetworkError that records the endpoint
func NewNetworkErrorWithEndpoint(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// IsPageError reports whether err is a missing-page error
func IsPageError(err error) bool {
	return errors.Is(err, ErrPageNotFound)
}

// IsDisambiguationError reports whether err is an ambiguous-title error
func IsDisambiguationError(err error) bool {
	return errors.Is(err, ErrAmbiguous)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsTimeoutError reports whether err is a timeout
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// AsDisambiguation extracts a DisambiguationError from the chain
func AsDisambiguation(err error) (*DisambiguationError, bool) {
	var de *DisambiguationError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}
