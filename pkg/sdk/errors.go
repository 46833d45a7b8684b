package jobdex

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried by API error responses.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeUnknownFilter     = "unknown_filter"
	CodeJobNotFound       = "job_not_found"
	CodeEngineUnavailable = "engine_unavailable"
	CodeEngineBadResponse = "engine_bad_response"
	CodeInternalError     = "internal_error"
)

// APIError is a non-2xx answer from the API. Code is empty when the body
// did not carry the error envelope (a proxy page, an empty reply).
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable code, e.g. "unknown_filter"
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code == "" {
		return fmt.Sprintf("jobdex: API error %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("jobdex: API error %d (%s): %s", e.Status, e.Code, msg)
}

// IsNotFound reports whether err is the API answering that a job does not
// exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeJobNotFound
}
