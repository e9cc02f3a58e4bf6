package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"seocontrol/internal/api/v1/dto"
	"seocontrol/internal/service"
	"seocontrol/internal/validation"

	"github.com/rs/zerolog"
)

const (
	MsgUnauthorized   = "Unauthorized"
	MsgInternal       = "Internal server error"
	MsgTooManyRequest = "Too many requests"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, dto.ErrorResponse{Error: msg})
}

// Unauthorized writes the single 401 body used by every gate failure.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, MsgUnauthorized)
}

// FromError maps err onto the error taxonomy. Errors outside the taxonomy are
// logged and answered with fallback so collaborator details never leak.
func FromError(w http.ResponseWriter, logger zerolog.Logger, err error, fallback string) {
	var verr *validation.ValidationError
	var perr *service.ProviderError

	switch {
	case errors.As(err, &verr):
		Error(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &perr):
		Error(w, http.StatusBadRequest, perr.Message)
	case errors.Is(err, service.ErrUnauthorized):
		Unauthorized(w)
	case errors.Is(err, service.ErrNotFound):
		Error(w, http.StatusNotFound, notFoundMessage(err))
	default:
		logger.Error().Err(err).Msg(fallback)
		Error(w, http.StatusInternalServerError, fallback)
	}
}

func notFoundMessage(err error) string {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return "Not found"
}
