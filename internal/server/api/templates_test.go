package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nileshs31/Project-ARMagic/internal/app"
	"github.com/nileshs31/Project-ARMagic/internal/store"
	"github.com/nileshs31/Project-ARMagic/internal/testutil"
)

// newTestHandlers creates a store-backed app and the handlers under test.
func newTestHandlers(t *testing.T) (*store.Store, *app.App) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "armagic-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s, app.New(app.Config{Store: s})
}

func TestTemplateHandler_List(t *testing.T) {
	s, a := newTestHandlers(t)
	handler := NewTemplateHandler(s, a)

	if _, err := a.SaveTemplate("circle", testutil.Circle(48, 1)); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listTemplatesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(response.Templates))
	}
	if response.Templates[0].Name != "circle" {
		t.Errorf("expected template name 'circle', got %q", response.Templates[0].Name)
	}
}

func TestTemplateHandler_Create(t *testing.T) {
	s, a := newTestHandlers(t)
	handler := NewTemplateHandler(s, a)

	reqBody := createTemplateRequest{
		Name:   "circle",
		Points: testutil.Circle(48, 1),
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response templateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.ID == "" {
		t.Error("expected a generated template ID")
	}
	if response.Name != "circle" {
		t.Errorf("expected template name 'circle', got %q", response.Name)
	}
}

func TestTemplateHandler_Create_Validation(t *testing.T) {
	s, a := newTestHandlers(t)
	handler := NewTemplateHandler(s, a)

	cases := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing name", `{"points":[{"x":0,"y":0,"z":0}]}`},
		{"too few points", `{"name":"x","points":[{"x":0,"y":0,"z":0}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestTemplateHandler_Get_NotFound(t *testing.T) {
	s, a := newTestHandlers(t)
	handler := NewTemplateHandler(s, a)

	req := httptest.NewRequest(http.MethodGet, "/api/templates/nope", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestTemplateHandler_MethodNotAllowed(t *testing.T) {
	s, a := newTestHandlers(t)
	handler := NewTemplateHandler(s, a)

	req := httptest.NewRequest(http.MethodPatch, "/api/templates", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestClassifyHandler(t *testing.T) {
	_, a := newTestHandlers(t)
	handler := NewClassifyHandler(a)

	if _, err := a.SaveTemplate("circle", testutil.Circle(48, 1)); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	body, _ := json.Marshal(classifyRequest{
		Strategy: "knn",
		Points:   testutil.Circle(48, 1),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var result app.Classification
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Label != "circle" {
		t.Errorf("expected label 'circle', got %q", result.Label)
	}
}

func TestClassifyHandler_Errors(t *testing.T) {
	_, a := newTestHandlers(t)
	handler := NewClassifyHandler(a)

	// Only POST is allowed
	req := httptest.NewRequest(http.MethodGet, "/api/classify", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}

	// Unknown strategy is a bad request
	body, _ := json.Marshal(classifyRequest{
		Strategy: "bogus",
		Points:   testutil.Circle(48, 1),
	})
	req = httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBuffer(body))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
