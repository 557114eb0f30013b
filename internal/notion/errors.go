package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// RateLimitCode is the machine-readable code the API attaches to
// throttled responses.
const RateLimitCode = "rate_limited"

// APIError is a non-2xx response from the remote store
type APIError struct {
	StatusCode int    `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Body       string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimit reports whether err is a rate limit signal from the store
func IsRateLimit(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.Code == RateLimitCode
}

// IsNotFound reports whether err is a 404 from the store
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.StatusCode == http.StatusNotFound
}
