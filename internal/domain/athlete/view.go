package athlete

import "github.com/okian/liftrank/internal/domain/scoring"

// CategoryView presents a competitor as if its category were the one of a
// single participation. Everything except the category and the rank and
// point fields is delegated to the underlying snapshot.
type CategoryView struct {
	Snapshot
	part Participation
}

// InCategory projects s onto participation p.
func InCategory(s Snapshot, p Participation) CategoryView {
	return CategoryView{Snapshot: s, part: p}
}

// Participation returns the participation the view is scoped to.
func (v CategoryView) Participation() Participation { return v.part }

func (v CategoryView) Category() *Category { return v.part.Category() }

func (v CategoryView) Rank(m scoring.Metric) int {
	if m.Family() == scoring.CategoryTiered {
		return v.part.Rank(m)
	}
	return v.Snapshot.Rank(m)
}

func (v CategoryView) Points(m scoring.Metric) int {
	switch {
	case m == scoring.SnatchCjTotal:
		return v.part.Points(scoring.Snatch) + v.part.Points(scoring.CleanJerk) + v.part.Points(scoring.Total)
	case m.Family() == scoring.CategoryTiered:
		return v.part.Points(m)
	default:
		return v.Snapshot.Points(m)
	}
}

func (v CategoryView) Participations() []Participation { return []Participation{v.part} }

// Views expands competitors into one view per participation.
func Views[S Snapshot](list []S) []CategoryView {
	var out []CategoryView
	for _, s := range list {
		for _, p := range s.Participations() {
			out = append(out, InCategory(s, p))
		}
	}
	return out
}
