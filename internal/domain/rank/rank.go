// Package rank walks an already sorted sequence of competitors and writes
// sequential ranks and team points back onto them.
//
// Rank values: a positive rank for an eligible competitor with a score, 0 for
// an eligible competitor without one, -1 for a competitor not eligible for
// individual ranking. Ties are not merged: equal scores take consecutive ranks
// in the order produced by the results order.
package rank

import (
	"fmt"

	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// Rank values that are not places.
const (
	Unscored   = 0
	Ineligible = -1
)

// Summary counts the outcomes of one pass.
type Summary struct {
	Metric     scoring.Metric `json:"metric"`
	Ranked     int            `json:"ranked"`
	Unscored   int            `json:"unscored"`
	Ineligible int            `json:"ineligible"`
}

func (s *Summary) count(rank int) {
	switch {
	case rank > 0:
		s.Ranked++
	case rank == Unscored:
		s.Unscored++
	default:
		s.Ineligible++
	}
}

// Overall ranks competitors inside a gender. The input must be grouped by
// gender; the counter restarts whenever the gender changes.
type Overall struct {
	metric  scoring.Metric
	counter int
	gender  athlete.Gender
	started bool
	summary Summary
}

// NewOverall starts an overall pass for m.
func NewOverall(m scoring.Metric) *Overall {
	return &Overall{metric: m, summary: Summary{Metric: m}}
}

// Next ranks c, the next competitor in sorted order, and returns its rank.
func (o *Overall) Next(c athlete.Competitor) int {
	if !o.started || c.Gender() != o.gender {
		o.counter = 0
		o.gender = c.Gender()
		o.started = true
	}
	rank := Ineligible
	if c.EligibleForIndividualRanking() {
		rank = Unscored
		if scoring.Resolve(c, o.metric) != 0 {
			o.counter++
			rank = o.counter
		}
	}
	c.SetRank(o.metric, rank)
	c.SetPoints(o.metric, teamPoints(c.EligibleForTeamRanking(), rank))
	o.summary.count(rank)
	return rank
}

// Summary returns the counts so far.
func (o *Overall) Summary() Summary { return o.summary }

// MultiCategory ranks every participation of each competitor with an
// independent counter per category code, so that one competitor holds a
// correct rank in every category it is eligible for.
type MultiCategory struct {
	metric   scoring.Metric
	counters map[string]int
	summary  Summary
}

// NewMultiCategory starts a category pass for m.
func NewMultiCategory(m scoring.Metric) *MultiCategory {
	return &MultiCategory{metric: m, counters: make(map[string]int), summary: Summary{Metric: m}}
}

// Next ranks all participations of c, the next competitor in sorted order.
// A competitor whose main category is not one of its participations, or
// that has no category at all, is also ranked at competitor level: in its
// main category, or among the uncategorized competitors of its gender.
func (mc *MultiCategory) Next(c athlete.Competitor) {
	eligible := c.EligibleForIndividualRanking()
	scored := scoring.Resolve(c, mc.metric) != 0
	main := c.Category()
	covered := false
	for _, p := range c.Participations() {
		code := p.Category().Code
		if main != nil && code == main.Code {
			covered = true
		}
		rank := mc.place(code, eligible, scored)
		p.SetRank(mc.metric, rank)
		p.SetPoints(mc.metric, teamPoints(c.EligibleForTeamRanking() && p.TeamMember(), rank))
		mc.summary.count(rank)
	}
	if covered {
		return
	}
	key := uncategorized + string(c.Gender())
	if main != nil {
		key = main.Code
	}
	rank := mc.place(key, eligible, scored)
	c.SetRank(mc.metric, rank)
	c.SetPoints(mc.metric, teamPoints(c.EligibleForTeamRanking(), rank))
	mc.summary.count(rank)
}

// uncategorized prefixes counter keys of competitors without a category so
// they never share a counter with a category code.
const uncategorized = "\x00"

func (mc *MultiCategory) place(key string, eligible, scored bool) int {
	switch {
	case !eligible:
		return Ineligible
	case !scored:
		return Unscored
	default:
		mc.counters[key]++
		return mc.counters[key]
	}
}

// Summary returns the counts so far, one per participation plus one per
// competitor ranked at competitor level.
func (mc *MultiCategory) Summary() Summary { return mc.summary }

func teamPoints(teamEligible bool, rank int) int {
	if !teamEligible {
		return 0
	}
	return scoring.Points(rank)
}

// Assign sorts list by the results order of m and ranks it. The input slice
// order is left untouched; only rank and point fields are written.
// Category-tiered metrics are ranked per participation, coefficient metrics
// per competitor.
func Assign[S ~[]E, E athlete.Competitor](list S, m scoring.Metric, opts order.Options) (Summary, error) {
	switch m {
	case scoring.Snatch, scoring.CleanJerk, scoring.Total, scoring.Custom:
		sorted, err := order.Sort(list, order.Request{Kind: order.Results, Metric: m, IgnoreCategories: true}, opts)
		if err != nil {
			return Summary{}, err
		}
		pass := NewMultiCategory(m)
		for _, c := range sorted {
			pass.Next(c)
		}
		return pass.Summary(), nil
	case scoring.BWSinclair, scoring.CatSinclair, scoring.SMM, scoring.Robi,
		scoring.QPoints, scoring.QAge, scoring.Gamx, scoring.AgeAdjustedTotal:
		sorted, err := order.Sort(list, order.Request{Kind: order.Results, Metric: m}, opts)
		if err != nil {
			return Summary{}, err
		}
		pass := NewOverall(m)
		for _, c := range sorted {
			pass.Next(c)
		}
		return pass.Summary(), nil
	case scoring.SnatchCjTotal:
		return Summary{}, fmt.Errorf("assign ranks: %w: %s", order.ErrMetricNotOrderable, m)
	default:
		return Summary{}, fmt.Errorf("assign ranks: %w: %s", order.ErrMetricNotOrderable, m)
	}
}

// AssignAll ranks list for every orderable metric, in declaration order.
func AssignAll[S ~[]E, E athlete.Competitor](list S, opts order.Options) ([]Summary, error) {
	var out []Summary
	for _, m := range scoring.Metrics() {
		if !m.Orderable() {
			continue
		}
		s, err := Assign(list, m, opts)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}
