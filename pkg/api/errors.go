package api

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	// ErrRequestFailed is returned when the request could not be sent
	// or no response was received (network down, timeout, DNS failure).
	ErrRequestFailed = errors.New("api: request failed")

	// ErrEncodeFailed is returned when the request body cannot be
	// serialized to JSON.
	ErrEncodeFailed = errors.New("api: failed to encode request body")

	// ErrDecodeFailed is returned when the response body cannot be
	// decoded into the expected shape.
	ErrDecodeFailed = errors.New("api: failed to decode response")
)

// statusError carries a non-2xx HTTP status together with the backend's
// decoded error body, if one was received.
type statusError struct {
	payload *ErrorPayload
	status  int
}

func (e *statusError) Error() string {
	if e.payload != nil && e.payload.Summary() != "" {
		return "api: backend returned " + httpStatusText(e.status) + ": " + e.payload.Summary()
	}
	return "api: backend returned " + httpStatusText(e.status)
}

func httpStatusText(code int) string {
	return strconv.Itoa(code) + " " + http.StatusText(code)
}

// errorPayload normalizes a transport or HTTP error into an ErrorPayload.
// A structured backend body is surfaced unmodified; anything else becomes
// the operation-specific fallback message.
func errorPayload(err error, fallback string) *ErrorPayload {
	var se *statusError
	if errors.As(err, &se) && se.payload != nil && !se.payload.Empty() {
		return se.payload
	}
	return &ErrorPayload{Message: fallback}
}
