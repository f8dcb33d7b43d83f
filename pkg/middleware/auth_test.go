package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vendora/pkg/auth"
	"vendora/pkg/middleware"
)

func protectedHandler(t *testing.T, sawClaims **auth.Claims) http.Handler {
	t.Helper()
	return middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawClaims = middleware.ClaimsFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMissingToken(t *testing.T) {
	var claims *auth.Claims
	handler := protectedHandler(t, &claims)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "Access denied. No token provided" {
		t.Errorf("error = %q", body["error"])
	}
	if claims != nil {
		t.Error("handler ran without a token")
	}
}

func TestAuthBadToken(t *testing.T) {
	var claims *auth.Claims
	handler := protectedHandler(t, &claims)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Invalid token" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	token, err := auth.Issue(auth.PurposeRefresh, "64f1c2d3e4a5b6c7d8e9f0a1", "customer")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var claims *auth.Claims
	handler := protectedHandler(t, &claims)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token accepted as session: status = %d", rec.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	token, err := auth.Issue(auth.PurposeSession, "64f1c2d3e4a5b6c7d8e9f0a1", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var claims *auth.Claims
	handler := protectedHandler(t, &claims)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if claims == nil {
		t.Fatal("claims missing from request context")
	}
	if claims.UserID != "64f1c2d3e4a5b6c7d8e9f0a1" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAuthAcceptsBareToken(t *testing.T) {
	token, err := auth.Issue(auth.PurposeSession, "64f1c2d3e4a5b6c7d8e9f0a1", "customer")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var claims *auth.Claims
	handler := protectedHandler(t, &claims)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", token) // no Bearer prefix

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
