package middleware

import (
	"net/http"

	"github.com/templui/screentime/internal/config"
	"github.com/templui/screentime/internal/ctxkeys"
)

// Config puts the sanitized configuration on the request context so pages can
// read the app name and timezone without access to credentials.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
