package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureIdentity(got *Identity, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *found = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware_ReadsHeaders(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		staff     string
		wantFound bool
		want      Identity
	}{
		{name: "customer", userID: "7", wantFound: true, want: Identity{UserID: 7}},
		{name: "staff", userID: "3", staff: "true", wantFound: true, want: Identity{UserID: 3, IsStaff: true}},
		{name: "bad staff flag", userID: "3", staff: "maybe", wantFound: true, want: Identity{UserID: 3}},
		{name: "missing user", wantFound: false},
		{name: "non numeric user", userID: "abc", wantFound: false},
		{name: "zero user", userID: "0", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Identity
			var found bool

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.staff != "" {
				req.Header.Set(HeaderStaff, tt.staff)
			}

			Middleware(captureIdentity(&got, &found)).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	RequireUser(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{UserID: 1}))
	w = httptest.NewRecorder()
	RequireUser(next).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireStaff(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		identity *Identity
		want     int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"customer", &Identity{UserID: 1}, http.StatusForbidden},
		{"staff", &Identity{UserID: 2, IsStaff: true}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tt.identity))
			}
			w := httptest.NewRecorder()
			RequireStaff(next).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
