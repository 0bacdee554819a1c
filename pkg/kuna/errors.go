package kuna

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"kunaclient/pkg/errors"
)

// APIError is returned for any response the exchange itself rejected:
// non-2xx statuses and 2xx bodies carrying the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("kuna: http %d: %s (%s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("kuna: http %d: %s", e.Status, e.Body)
}

// StatusCode reports the HTTP status of the failed request.
func (e *APIError) StatusCode() int {
	return e.Status
}

// Unwrap maps well-known statuses onto the shared sentinel errors so
// callers can match with errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusTooManyRequests:
		return errors.ErrRateLimited
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return errors.ErrUnauthorized
	case e.Status >= http.StatusInternalServerError:
		return errors.ErrExchangeUnavailable
	}
	return nil
}

// errorEnvelope is the failure shape of the v3 API:
// {"error": {"code": ..., "message": ...}}.
type errorEnvelope struct {
	Error *struct {
		Code    json.RawMessage `json:"code"`
		Message string          `json:"message"`
	} `json:"error"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Body: string(body)}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		apiErr.Code = rawToString(env.Error.Code)
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

// parseErrorEnvelope reports an APIError when a syntactically successful
// response still carries the error envelope, nil otherwise.
func parseErrorEnvelope(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		return nil
	}
	return &APIError{
		Status:  status,
		Code:    rawToString(env.Error.Code),
		Message: env.Error.Message,
		Body:    string(body),
	}
}

// rawToString renders the error code, which the exchange emits as either
// a string or a number.
func rawToString(raw json.RawMessage) string {
	return strings.Trim(string(raw), `"`)
}
