package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocal-site/internal/service"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	t.Parallel()

	wrap := func(err error) error { return fmt.Errorf("service.x: %w", err) }

	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"not_found", wrap(service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"invalid_argument", wrap(service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"bad_request", ErrBadRequest, http.StatusBadRequest, "invalid_argument"},
		{"rate_limited", wrap(service.ErrRateLimited), http.StatusTooManyRequests, "resource_exhausted"},
		{"canceled", wrap(context.Canceled), StatusClientClosedRequest, "canceled"},
		{"deadline", wrap(context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"internal", fmt.Errorf("pgx: connection refused"), http.StatusInternalServerError, "internal"},
		{"nil", nil, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
			require.NotContains(t, resp.Error.Message, "pgx")
		})
	}
}

func TestToHTTP_NotFoundHasHomeLink(t *testing.T) {
	t.Parallel()

	_, resp := ToHTTP(service.ErrNotFound)
	require.Equal(t, "/", resp.Error.Home)
}

func TestToHTTP_ValidationFields(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("op: %w", &service.ValidationError{Fields: []string{"email:email", "amount:gt"}})

	status, resp := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, []string{"email:email", "amount:gt"}, resp.Error.Fields)
	require.Equal(t, "invalid fields: email, amount", resp.Error.Message)
}

func TestWriteError_AddsRequestID(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/content/Report/999", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "rid-1", env.Error.RequestID)
	require.Equal(t, "/", env.Error.Home)
}
