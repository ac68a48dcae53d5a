package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func adminProtected(token string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AdminToken(token, zap.NewNop())(next)
}

func TestAdminTokenAllowsValidBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/webhook-events", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()

	adminProtected("tok-1").ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAdminTokenRejections(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
	}{
		{"missing header", "tok-1", ""},
		{"wrong scheme", "tok-1", "Basic tok-1"},
		{"wrong token", "tok-1", "Bearer tok-2"},
		{"unconfigured fails closed", "", "Bearer tok-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/webhook-events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			adminProtected(tt.token).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
