package api

import (
	"net/http"
	"strconv"

	service "github.com/okian/liftrank/internal/app"
)

// OrderHandler handles ordering requests.
type OrderHandler struct {
	deps Dependencies
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(deps Dependencies) *OrderHandler {
	return &OrderHandler{deps: deps}
}

// HandlePostOrder handles POST /order requests. The explain flag may also be
// given as a query parameter.
func (h *OrderHandler) HandlePostOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req orderRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, err)
		return
	}
	if q := r.URL.Query().Get("explain"); q != "" {
		on, err := strconv.ParseBool(q)
		if err != nil {
			fail(w, badRequest(err))
			return
		}
		req.Explain = on
	}
	oreq, err := req.request()
	if err != nil {
		fail(w, err)
		return
	}

	res, err := h.deps.Order(r.Context(), service.OrderInput{
		Request:  oreq,
		Options:  req.Options,
		Athletes: req.Athletes,
		Explain:  req.Explain,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{
		Spec:     res.Spec,
		Steps:    res.Steps,
		Athletes: newAthleteResponses(res.Athletes, res.Metrics),
		Explain:  res.Explain,
	})
}
