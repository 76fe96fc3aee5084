package api

import (
	"fmt"
	"slices"

	service "github.com/okian/liftrank/internal/app"
	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/rank"
	"github.com/okian/liftrank/internal/domain/scoring"
)

type orderRequest struct {
	Kind             string           `json:"kind"`
	Metric           string           `json:"metric,omitempty"`
	IgnoreCategories bool             `json:"ignore_categories,omitempty"`
	Options          *order.Options   `json:"options,omitempty"`
	Explain          bool             `json:"explain,omitempty"`
	Athletes         []athlete.Record `json:"athletes"`
}

// request validates the kind and, for metric based orderings, the metric.
func (r orderRequest) request() (order.Request, error) {
	kind, err := order.ParseKind(r.Kind)
	if err != nil {
		return order.Request{}, err
	}
	req := order.Request{Kind: kind, IgnoreCategories: r.IgnoreCategories}
	if kind != order.Results && kind != order.TeamPoints {
		return req, nil
	}
	if r.Metric == "" {
		return order.Request{}, badRequest(fmt.Errorf("metric is required for %s", kind))
	}
	if req.Metric, err = scoring.ParseMetric(r.Metric); err != nil {
		return order.Request{}, err
	}
	return req, nil
}

type orderResponse struct {
	Spec     string             `json:"spec"`
	Steps    []string           `json:"steps"`
	Athletes []athleteResponse  `json:"athletes"`
	Explain  []service.Adjacent `json:"explain,omitempty"`
}

type ranksRequest struct {
	// Metric is a metric name or "all" for every orderable metric.
	Metric   string           `json:"metric"`
	Options  *order.Options   `json:"options,omitempty"`
	Athletes []athlete.Record `json:"athletes"`
}

func (r ranksRequest) metric() (*scoring.Metric, error) {
	if r.Metric == "" || r.Metric == "all" {
		return nil, nil
	}
	m, err := scoring.ParseMetric(r.Metric)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type ranksResponse struct {
	Summaries []rank.Summary    `json:"summaries"`
	Athletes  []athleteResponse `json:"athletes"`
}

type valueRequest struct {
	Metric  string         `json:"metric"`
	Athlete athlete.Record `json:"athlete"`
}

type valueResponse struct {
	ID     string         `json:"id"`
	Metric scoring.Metric `json:"metric"`
	Value  float64        `json:"value"`
}

type categoriesRequest struct {
	Metric   string           `json:"metric"`
	Options  *order.Options   `json:"options,omitempty"`
	Athletes []athlete.Record `json:"athletes"`
}

type categoryResponse struct {
	Category athlete.Category `json:"category"`
	Athletes []viewResponse   `json:"athletes"`
}

type viewResponse struct {
	ID        string  `json:"id"`
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	Club      string  `json:"club,omitempty"`
	Value     float64 `json:"value"`
	Rank      int     `json:"rank"`
	Points    int     `json:"points"`
}

type athleteResponse struct {
	athlete.Record
	BestSnatch     int                     `json:"best_snatch"`
	BestCleanJerk  int                     `json:"best_clean_jerk"`
	Total          int                     `json:"total"`
	AttemptsDone   int                     `json:"attempts_done"`
	Ranks          map[scoring.Metric]int  `json:"ranks,omitempty"`
	Points         map[scoring.Metric]int  `json:"points,omitempty"`
	Participations []participationResponse `json:"participations,omitempty"`
}

type participationResponse struct {
	Category   string                 `json:"category"`
	TeamMember bool                   `json:"team_member"`
	Ranks      map[scoring.Metric]int `json:"ranks,omitempty"`
	Points     map[scoring.Metric]int `json:"points,omitempty"`
}

// newAthleteResponse renders a competitor with the ranks and points of ms.
func newAthleteResponse(a *athlete.Athlete, ms []scoring.Metric) athleteResponse {
	out := athleteResponse{
		Record:        a.Record(),
		BestSnatch:    a.BestSnatch(),
		BestCleanJerk: a.BestCleanJerk(),
		Total:         a.Total(),
		AttemptsDone:  a.AttemptsDone(),
	}
	if len(ms) == 0 {
		return out
	}
	ms = withSnatchCjTotal(ms)
	out.Ranks = make(map[scoring.Metric]int, len(ms))
	out.Points = make(map[scoring.Metric]int, len(ms))
	for _, m := range ms {
		if m != scoring.SnatchCjTotal {
			out.Ranks[m] = a.Rank(m)
		}
		out.Points[m] = a.Points(m)
	}
	for _, p := range a.Participations() {
		pr := participationResponse{Category: p.Category().Code, TeamMember: p.TeamMember()}
		for _, m := range ms {
			if m.Family() != scoring.CategoryTiered {
				continue
			}
			if pr.Ranks == nil {
				pr.Ranks = map[scoring.Metric]int{}
				pr.Points = map[scoring.Metric]int{}
			}
			pr.Ranks[m] = p.Rank(m)
			pr.Points[m] = p.Points(m)
		}
		out.Participations = append(out.Participations, pr)
	}
	return out
}

// withSnatchCjTotal adds the summed discipline points once all three
// disciplines are present.
func withSnatchCjTotal(ms []scoring.Metric) []scoring.Metric {
	if slices.Contains(ms, scoring.SnatchCjTotal) {
		return ms
	}
	for _, m := range []scoring.Metric{scoring.Snatch, scoring.CleanJerk, scoring.Total} {
		if !slices.Contains(ms, m) {
			return ms
		}
	}
	return append(slices.Clone(ms), scoring.SnatchCjTotal)
}

func newAthleteResponses(list []*athlete.Athlete, ms []scoring.Metric) []athleteResponse {
	out := make([]athleteResponse, len(list))
	for i, a := range list {
		out[i] = newAthleteResponse(a, ms)
	}
	return out
}

func newCategoryResponses(groups []service.CategoryResult, m scoring.Metric) []categoryResponse {
	out := make([]categoryResponse, len(groups))
	for i, g := range groups {
		views := make([]viewResponse, len(g.Athletes))
		for j, v := range g.Athletes {
			views[j] = viewResponse{
				ID:        v.ID(),
				LastName:  v.LastName(),
				FirstName: v.FirstName(),
				Club:      v.Club(),
				Value:     scoring.Resolve(v, m),
				Rank:      v.Rank(m),
				Points:    v.Points(m),
			}
		}
		out[i] = categoryResponse{Category: g.Category, Athletes: views}
	}
	return out
}
