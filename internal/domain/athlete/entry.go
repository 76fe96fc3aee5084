package athlete

import (
	"maps"

	"github.com/okian/liftrank/internal/domain/scoring"
)

// Entry is the in-memory implementation of Participation.
type Entry struct {
	category   Category
	teamMember bool
	ranks      map[scoring.Metric]int
	points     map[scoring.Metric]int
}

// NewEntry creates a participation in category c.
func NewEntry(c Category, teamMember bool) *Entry {
	return &Entry{
		category:   c,
		teamMember: teamMember,
		ranks:      make(map[scoring.Metric]int),
		points:     make(map[scoring.Metric]int),
	}
}

func (e *Entry) Category() *Category                    { return &e.category }
func (e *Entry) TeamMember() bool                       { return e.teamMember }
func (e *Entry) Rank(m scoring.Metric) int              { return e.ranks[m] }
func (e *Entry) SetRank(m scoring.Metric, rank int)     { e.ranks[m] = rank }
func (e *Entry) Points(m scoring.Metric) int            { return e.points[m] }
func (e *Entry) SetPoints(m scoring.Metric, pts int)    { e.points[m] = pts }
func (e *Entry) Ranks() map[scoring.Metric]int          { return maps.Clone(e.ranks) }
func (e *Entry) PointsByMetric() map[scoring.Metric]int { return maps.Clone(e.points) }
