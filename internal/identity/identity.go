// Package identity carries the caller identity asserted by the fronting
// gateway. It performs no authentication of its own.
package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderStaff  = "X-User-Staff"
)

type Identity struct {
	UserID  int
	IsStaff bool
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// Middleware reads the identity headers. Requests with a missing or invalid
// user id pass through without an identity.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(strings.TrimSpace(r.Header.Get(HeaderUserID)))
		if err != nil || userID <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		staff, _ := strconv.ParseBool(r.Header.Get(HeaderStaff))
		ctx := WithIdentity(r.Context(), Identity{UserID: userID, IsStaff: staff})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user identity required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "user identity required")
			return
		}
		if !id.IsStaff {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "staff only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
