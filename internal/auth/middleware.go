package auth

import (
	"context"
	"net/http"
	"strings"

	"notes/internal/logger"
)

type ctxKey string

const emailKey ctxKey = "email"

// EmailFromContext returns the verified email set by RequireAuth.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// RequireAuth rejects requests without a valid bearer ID token and stores the
// token's email in the request context.
func RequireAuth(jwtSvc *JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")

			email, err := jwtSvc.Verify(token)
			if err != nil {
				logger.FromContext(r.Context()).WithError(err).Debugln("rejected bearer token")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := ContextWithEmail(r.Context(), email)
			ctx, _ = logger.ContextWithLoggerIdentity(ctx, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
