package erp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error the client returns for any upstream failure.
// StatusCode is 0 when the request never got a response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("erp: %d %s: %s", e.StatusCode, e.Code, message)
	}
	return fmt.Sprintf("erp: %d: %s", e.StatusCode, message)
}

// IsAuth reports whether the upstream rejected the caller's token.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether the record no longer exists upstream.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// parseAPIError decodes the two error envelope shapes the backend uses:
// {"error":{"code","message"}} and {"detail":"..."}.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope struct {
		Detail string `json:"detail"`
		Error  *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		} else if envelope.Detail != "" {
			apiErr.Message = envelope.Detail
		}
	}
	// An empty Message means the backend gave no reason; callers
	// substitute their localized fallback.
	return apiErr
}
