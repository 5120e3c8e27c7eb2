package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventcatalog/internal/domain"
)

// WriteError maps a service error onto the envelope. Unknown errors are logged
// and reported as internal_error without their text.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		verr *domain.ValidationError
		nf   *domain.NotFoundError
		dup  *domain.DuplicateError
		ste  *domain.StateTransitionError
	)
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr)
	case errors.Is(err, domain.ErrInvalidArgument):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.As(err, &nf):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, nf.Error())
	case errors.As(err, &dup):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, dup.Error())
	case errors.As(err, &ste):
		WriteJSONError(w, http.StatusConflict, ErrCodeInvalidStateTransition, ste.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// WriteValidationError writes a 400 with the field map of verr.
func WriteValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	writeAPIError(w, http.StatusBadRequest, &APIError{
		Code:    ErrCodeBadRequest,
		Message: "validation failed",
		Details: verr.Fields,
	})
}
