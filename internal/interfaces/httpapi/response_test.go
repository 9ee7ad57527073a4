package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/touchline/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2.0", body["apiVersion"])
	require.Contains(t, body, "data")
	require.NotContains(t, body, "error")
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		status  string
		reason  string
		message string
	}{
		{
			name:    "invalid input",
			err:     fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput),
			code:    http.StatusBadRequest,
			status:  "INVALID_ARGUMENT",
			reason:  "invalidInput",
			message: "invalid input: bad payload",
		},
		{
			name:    "not found",
			err:     fmt.Errorf("%w: period=3 team=1", usecase.ErrNotFound),
			code:    http.StatusNotFound,
			status:  "NOT_FOUND",
			reason:  "notFound",
			message: "resource not found: period=3 team=1",
		},
		{
			name:    "conflict",
			err:     fmt.Errorf("%w: board is in picking_squad mode", usecase.ErrConflict),
			code:    http.StatusConflict,
			status:  "FAILED_PRECONDITION",
			reason:  "conflict",
			message: "board state conflict: board is in picking_squad mode",
		},
		{
			name:    "dependency unavailable",
			err:     fmt.Errorf("%w: db down", usecase.ErrDependencyUnavailable),
			code:    http.StatusServiceUnavailable,
			status:  "UNAVAILABLE",
			reason:  "dependencyUnavailable",
			message: "dependency unavailable: db down",
		},
		{
			name:    "internal details are hidden",
			err:     errors.New("pq: connection refused"),
			code:    http.StatusInternalServerError,
			status:  "INTERNAL",
			reason:  "internalError",
			message: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			require.Equal(t, tt.code, rec.Code)

			var body googleResponseEnvelope
			require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, googleAPIVersion, body.APIVersion)
			require.NotNil(t, body.Error)
			require.Equal(t, tt.code, body.Error.Code)
			require.Equal(t, tt.status, body.Error.Status)
			require.Equal(t, tt.message, body.Error.Message)
			require.Len(t, body.Error.Errors, 1)
			require.Equal(t, errorDomain, body.Error.Errors[0].Domain)
			require.Equal(t, tt.reason, body.Error.Errors[0].Reason)
		})
	}
}
