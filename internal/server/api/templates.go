// Package api provides HTTP API handlers for the ARMagic stroke recognition
// system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/nileshs31/Project-ARMagic/internal/app"
	"github.com/nileshs31/Project-ARMagic/internal/geom"
	"github.com/nileshs31/Project-ARMagic/internal/store"
)

// TemplateHandler handles HTTP requests for template resources.
type TemplateHandler struct {
	store *store.Store
	app   *app.App
}

// NewTemplateHandler creates a new TemplateHandler with the given store and
// application.
func NewTemplateHandler(s *store.Store, a *app.App) *TemplateHandler {
	return &TemplateHandler{store: s, app: a}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/templates, /api/templates/{id} or
	// /api/templates/{id}/train
	path := strings.TrimPrefix(r.URL.Path, "/api/templates")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/templates
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/train"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.train(w, r, id)
		return
	}

	// Item endpoint: /api/templates/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.rename(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createTemplateRequest struct {
	Name   string      `json:"name"`
	Points []geom.Vec3 `json:"points"`
}

type renameTemplateRequest struct {
	Name string `json:"name"`
}

type templateResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Samples   int          `json:"samples"`
	Points    []geom.Point `json:"points,omitempty"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

type listTemplatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Template to a templateResponse.
func toResponse(t *store.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Samples:   t.Samples,
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/templates and returns all templates.
func (h *TemplateHandler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.Templates().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}

	response := listTemplatesResponse{
		Templates: make([]templateResponse, 0, len(templates)),
	}

	for _, t := range templates {
		response.Templates = append(response.Templates, toResponse(t))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/templates/{id} and returns a single template with its
// point sequence.
func (h *TemplateHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	template, err := h.store.Templates().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	points, err := h.store.Templates().GetPoints(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template points")
		return
	}

	response := toResponse(template)
	response.Points = points
	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/templates and learns a new template from a raw
// stroke.
func (h *TemplateHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	template, err := h.app.SaveTemplate(req.Name, req.Points)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.store.Templates().GetByID(template.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read created template")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(record))
}

// rename handles PUT /api/templates/{id} and renames an existing template.
func (h *TemplateHandler) rename(w http.ResponseWriter, r *http.Request, id string) {
	var req renameTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.store.Templates().Rename(id, req.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to rename template")
		return
	}

	// Keep the in-memory template set in sync with the store
	if err := h.app.LoadTemplates(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload templates")
		return
	}

	template, err := h.store.Templates().GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(template))
}

// delete handles DELETE /api/templates/{id} and removes a template.
func (h *TemplateHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.app.DeleteTemplate(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// train handles POST /api/templates/{id}/train and averages the template's
// recorded samples into a fresh exemplar.
func (h *TemplateHandler) train(w http.ResponseWriter, r *http.Request, id string) {
	template, err := h.app.TrainTemplate(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.store.Templates().GetByID(template.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read trained template")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(record))
}
