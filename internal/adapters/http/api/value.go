package api

import (
	"net/http"

	"github.com/okian/liftrank/internal/domain/scoring"
)

// ValueHandler returns the value a competitor is ranked on.
type ValueHandler struct {
	deps Dependencies
}

// NewValueHandler creates a new value handler.
func NewValueHandler(deps Dependencies) *ValueHandler {
	return &ValueHandler{deps: deps}
}

// HandlePostValue handles POST /value requests.
func (h *ValueHandler) HandlePostValue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req valueRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, err)
		return
	}
	m, err := scoring.ParseMetric(req.Metric)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, valueResponse{
		ID:     req.Athlete.ID,
		Metric: m,
		Value:  h.deps.Value(r.Context(), req.Athlete, m),
	})
}
