package api

import (
	"net/http"

	service "github.com/okian/liftrank/internal/app"
)

// RanksHandler handles rank assignment requests.
type RanksHandler struct {
	deps Dependencies
}

// NewRanksHandler creates a new ranks handler.
func NewRanksHandler(deps Dependencies) *RanksHandler {
	return &RanksHandler{deps: deps}
}

// HandlePostRanks handles POST /ranks requests.
func (h *RanksHandler) HandlePostRanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req ranksRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, err)
		return
	}
	m, err := req.metric()
	if err != nil {
		fail(w, err)
		return
	}

	res, err := h.deps.Rank(r.Context(), service.RankInput{
		Metric:   m,
		Options:  req.Options,
		Athletes: req.Athletes,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranksResponse{
		Summaries: res.Summaries,
		Athletes:  newAthleteResponses(res.Athletes, res.Metrics),
	})
}
