package environment

import (
	"context"
	"net/http"
	"strings"
)

// Environment is the deployment stage the proxy runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse normalizes APP_ENV. "prod" and "stage" are accepted; anything else
// is Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	}
	return Development
}

type ctxKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, ctxKey{}, env)
}

// FromContext returns the stored environment or "" when none was set.
func FromContext(ctx context.Context) Environment {
	env, _ := ctx.Value(ctxKey{}).(Environment)
	return env
}

// IsProduction reports whether ctx carries Production. Collect handlers use
// it to hide internal error causes from clients.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// Middleware stores env in every request context.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), env)))
		})
	}
}
