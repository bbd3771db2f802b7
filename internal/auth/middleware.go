package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "authUser"

// Middleware rejects requests without a valid Bearer token and stores the
// authenticated identity in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		payload, err := VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromRequest returns the identity stored by Middleware, or nil when the
// request skipped it.
func UserFromRequest(r *http.Request) *TokenPayload {
	payload, _ := r.Context().Value(userContextKey).(*TokenPayload)
	return payload
}
