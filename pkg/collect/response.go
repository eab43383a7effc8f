package collect

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/gabeacon/pkg/environment"
	"github.com/dmitrymomot/gabeacon/pkg/logger"
	"github.com/dmitrymomot/gabeacon/pkg/tracker"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

var clientErrors = []struct {
	err    error
	status int
}{
	{ErrMissingContentType, http.StatusUnsupportedMediaType},
	{ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrRateLimited, http.StatusTooManyRequests},
	{tracker.ErrMissingCategory, http.StatusBadRequest},
	{tracker.ErrMissingAction, http.StatusBadRequest},
	{tracker.ErrUnknownVisibility, http.StatusNotFound},
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			writeJSON(w, ce.status, errorResponse{Error: errorDetail{
				Code:    ce.err.Error(),
				Message: err.Error(),
			}})
			return
		}
	}

	h.log.ErrorContext(r.Context(), "tracking request failed",
		logger.Path(r.URL.Path),
		logger.Error(err),
	)
	detail := errorDetail{Code: "collect.internal_error"}
	if !environment.IsProduction(r.Context()) {
		detail.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
