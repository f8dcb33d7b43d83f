package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"vendora/app/controllers"
	"vendora/app/services"
)

// A PUT to a missing category must answer 404 before the body is looked at,
// even when that body would fail validation.
func TestCategoryUpdateMissingIDWinsOverBadBody(t *testing.T) {
	ctrl := controllers.NewCategoryController(services.NewCategoryService())

	r := chi.NewRouter()
	r.Put("/api/category/{categoryId}", ctrl.Update)

	req := httptest.NewRequest(http.MethodPut, "/api/category/not-an-id", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "Category not found" {
		t.Errorf("error = %q", body["error"])
	}
}
