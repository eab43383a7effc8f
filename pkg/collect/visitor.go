package collect

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// visitor resolves the visitor id from the signed cookie. A missing or
// tampered cookie yields a fresh id, which is written back so the browser
// keeps it.
func (h *Handler) visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := h.cookies.GetSigned(r, h.cfg.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		h.cookies.SetSigned(w, h.cfg.CookieName, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, id)))
	})
}
