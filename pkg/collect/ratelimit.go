package collect

import (
	"net/http"
)

// rateLimit rejects clients that exhausted their token bucket. Requests
// without a resolved client IP are not limited.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromContext(r.Context())
		if ip == "" {
			next.ServeHTTP(w, r)
			return
		}

		res, err := h.limiter.Allow(r.Context(), ip)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		res.SetHeaders(w)
		if !res.Allowed() {
			h.writeError(w, r, ErrRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}
