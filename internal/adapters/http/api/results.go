package api

import (
	"net/http"

	"github.com/okian/liftrank/internal/domain/scoring"
)

// ResultsHandler serves per category results lists.
type ResultsHandler struct {
	deps Dependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps Dependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandlePostCategories handles POST /results/categories requests.
func (h *ResultsHandler) HandlePostCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req categoriesRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, err)
		return
	}
	m, err := scoring.ParseMetric(req.Metric)
	if err != nil {
		fail(w, err)
		return
	}
	groups, err := h.deps.CategoryResults(r.Context(), m, req.Options, req.Athletes)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCategoryResponses(groups, m))
}
