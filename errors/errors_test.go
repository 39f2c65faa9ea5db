package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := ErrNotFound("summary")
	assert.Equal(t, "[NOT_FOUND] summary not found", err.Error())

	raw := fmt.Errorf("connection refused")
	wrapped := ErrDBQueryFailed("insert summary", raw)
	assert.Equal(t, "[DB_QUERY_FAILED] Database query failed: connection refused", wrapped.Error())
	assert.Equal(t, "insert summary", wrapped.Details["query"])
}

func TestAppError_AsAndUnwrap(t *testing.T) {
	raw := fmt.Errorf("smtp: 535 auth failed")
	var err error = fmt.Errorf("send: %w", ErrEmailDeliveryFailed(raw))

	var appErr AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Equal(t, ErrorCode_EMAIL_DELIVERY_FAILED, appErr.Code)
	assert.True(t, stdErrors.Is(err, raw))
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    AppError
		status int
	}{
		{ErrMissingSummaryID(), http.StatusBadRequest},
		{ErrMissingEmailFields(), http.StatusBadRequest},
		{ErrInvalidRecipient("nope"), http.StatusBadRequest},
		{ErrSummaryNotFound("abc"), http.StatusNotFound},
		{ErrPayloadTooLarge(), http.StatusRequestEntityTooLarge},
		{ErrMethodNotAllowed(), http.StatusMethodNotAllowed},
		{ErrAISummaryFailed(nil), http.StatusInternalServerError},
		{ErrDBConnectionFailed(nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPCode, tc.err.Code.String())
	}
}

func TestErrorCode_MarshalText(t *testing.T) {
	b, err := ErrorCode_PAYLOAD_TOO_LARGE.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", string(b))
	assert.Equal(t, "UNKNOWN", ErrorCode(42).String())
}

func TestSummaryNotFound_UsesGeneralCode(t *testing.T) {
	err := ErrSummaryNotFound("abc")
	assert.Equal(t, ErrorCode_NOT_FOUND, err.Code)
	assert.Equal(t, "not found", err.Message)
	assert.Equal(t, "abc", err.Details["summary_id"])
}

func TestFromHTTPError(t *testing.T) {
	raw := fmt.Errorf("code=413, message=Request Entity Too Large")
	cases := []struct {
		status int
		code   ErrorCode
	}{
		{http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT},
		{http.StatusNotFound, ErrorCode_NOT_FOUND},
		{http.StatusMethodNotAllowed, ErrorCode_METHOD_NOT_ALLOWED},
		{http.StatusRequestEntityTooLarge, ErrorCode_PAYLOAD_TOO_LARGE},
		{http.StatusUnauthorized, ErrorCode_INTERNAL},
		{http.StatusServiceUnavailable, ErrorCode_INTERNAL},
	}
	for _, tc := range cases {
		got := FromHTTPError(tc.status, http.StatusText(tc.status), raw)
		assert.Equal(t, tc.status, got.HTTPCode, http.StatusText(tc.status))
		assert.Equal(t, tc.code, got.Code, http.StatusText(tc.status))
		assert.ErrorIs(t, got, raw)
	}

	assert.Equal(t, "Unauthorized", FromHTTPError(http.StatusUnauthorized, "Unauthorized", raw).Message)
	assert.Equal(t, "Internal server error", FromHTTPError(http.StatusServiceUnavailable, "Service Unavailable", raw).Message)
}
