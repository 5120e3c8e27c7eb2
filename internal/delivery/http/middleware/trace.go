package middleware

import (
	"net/http"

	"github.com/google/uuid"

	h "eventcatalog/internal/delivery/http/helpers"
)

const maxTraceIDLen = 128

// TraceID honours an incoming X-Trace-Id or generates one, stores it in the request
// context and echoes it on the response.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(h.TraceIDHeader)
		if id == "" || len(id) > maxTraceIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(h.TraceIDHeader, id)
		next.ServeHTTP(w, r.WithContext(h.WithTraceID(r.Context(), id)))
	})
}
