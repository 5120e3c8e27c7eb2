package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/delivery/http/helpers"
)

func TestTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"honours incoming id", "client-trace-1", true},
		{"generates when absent", "", false},
		{"replaces oversized id", strings.Repeat("x", 200), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = helpers.TraceIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.incoming != "" {
				req.Header.Set(helpers.TraceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			echoed := rr.Header().Get(helpers.TraceIDHeader)
			require.NotEmpty(t, echoed)
			assert.Equal(t, echoed, seen)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, echoed)
			} else {
				_, err := uuid.Parse(echoed)
				assert.NoError(t, err)
			}
		})
	}
}

func TestTraceID_in_error_envelope(t *testing.T) {
	handler := TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "nope")
	}))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(helpers.TraceIDHeader, "t-42")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Contains(t, rr.Body.String(), `"traceId":"t-42"`)
}
