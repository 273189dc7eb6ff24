package api

import (
	"encoding/json"
	"net/http"

	"github.com/nileshs31/Project-ARMagic/internal/app"
	"github.com/nileshs31/Project-ARMagic/internal/geom"
	"github.com/nileshs31/Project-ARMagic/internal/gesture"
)

// ClassifyHandler handles one-shot stroke classification requests.
type ClassifyHandler struct {
	app *app.App
}

// NewClassifyHandler creates a new ClassifyHandler with the given
// application.
func NewClassifyHandler(a *app.App) *ClassifyHandler {
	return &ClassifyHandler{app: a}
}

type classifyRequest struct {
	Strategy string      `json:"strategy"`
	Points   []geom.Vec3 `json:"points"`
}

// ServeHTTP handles POST /api/classify.
func (h *ClassifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, "Points are required")
		return
	}

	result, err := h.app.Classify(gesture.Strategy(req.Strategy), req.Points)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
