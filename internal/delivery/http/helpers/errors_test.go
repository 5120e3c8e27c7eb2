package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/domain"
)

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{
			name:        "validation",
			err:         fmt.Errorf("create venue: %w", domain.InvalidField("name", "is required")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    ErrCodeBadRequest,
			wantMessage: "validation failed",
			wantDetails: map[string]string{"name": "is required"},
		},
		{
			name:        "not found",
			err:         fmt.Errorf("get venue: %w", domain.NewNotFound(domain.ResourceVenue, 7)),
			wantStatus:  http.StatusNotFound,
			wantCode:    ErrCodeNotFound,
			wantMessage: "venue 7 not found",
		},
		{
			name:        "duplicate",
			err:         &domain.DuplicateError{Resource: "venue", Field: "name", Value: "Teatro X"},
			wantStatus:  http.StatusConflict,
			wantCode:    ErrCodeConflict,
			wantMessage: `venue with name "Teatro X" already exists`,
		},
		{
			name:        "state transition",
			err:         &domain.StateTransitionError{Resource: "event", ID: 1, From: "CANCELLED", To: "CANCELLED"},
			wantStatus:  http.StatusConflict,
			wantCode:    ErrCodeInvalidStateTransition,
			wantMessage: "event 1 cannot transition from CANCELLED to CANCELLED",
		},
		{
			name:        "credentials",
			err:         domain.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    ErrCodeUnauthorized,
			wantMessage: "invalid credentials",
		},
		{
			name:        "storage failure is hidden",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    ErrCodeInternalError,
			wantMessage: "internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			rr.Header().Set(TraceIDHeader, "trace-1")
			req := httptest.NewRequest(http.MethodGet, "/api/v1/venues", nil)

			WriteError(rr, req, logger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			assert.Nil(t, envelope.Data)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			assert.Equal(t, tt.wantDetails, envelope.Error.Details)
			assert.Equal(t, "trace-1", envelope.Error.TraceID)
		})
	}
}
