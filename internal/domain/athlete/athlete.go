package athlete

import (
	"maps"
	"time"

	"github.com/okian/liftrank/internal/domain/scoring"
)

// Record is the plain data of a competitor as supplied by the host.
type Record struct {
	ID                   string        `json:"id"`
	LotNumber            *int          `json:"lot_number,omitempty"`
	StartNumber          *int          `json:"start_number,omitempty"`
	FirstName            string        `json:"first_name"`
	LastName             string        `json:"last_name"`
	Gender               Gender        `json:"gender"`
	Category             *Category     `json:"category,omitempty"`
	RegistrationCategory *Category     `json:"registration_category,omitempty"`
	AgeGroup             *AgeGroup     `json:"age_group,omitempty"`
	Club                 string        `json:"club,omitempty"`
	BirthDate            *time.Time    `json:"birth_date,omitempty"`
	BodyWeight           *float64      `json:"body_weight,omitempty"`
	Group                *Group        `json:"group,omitempty"`
	Attempts             []Attempt     `json:"attempts,omitempty"`
	ForcedAsCurrent      bool          `json:"forced_as_current,omitempty"`
	IndividualRanking    *bool         `json:"eligible_for_individual_ranking,omitempty"`
	TeamRanking          *bool         `json:"eligible_for_team_ranking,omitempty"`
	Scores               Scores        `json:"scores"`
	Eligible             []Eligibility `json:"eligible,omitempty"`
}

// Athlete is the in-memory implementation of Competitor.
// Bests and attempts done are derived once from the attempts on construction.
type Athlete struct {
	rec     Record
	entries []*Entry
	ranks   map[scoring.Metric]int
	points  map[scoring.Metric]int

	attemptsDone    int
	bestSnatch      int
	bestSnatchAt    int
	bestCleanJerk   int
	bestCleanJerkAt int
}

// New builds an Athlete from a record. When the record lists no eligible
// categories the main category becomes the single participation.
func New(rec Record) *Athlete {
	a := &Athlete{
		rec:    rec,
		ranks:  make(map[scoring.Metric]int),
		points: make(map[scoring.Metric]int),
	}
	switch {
	case len(rec.Eligible) > 0:
		for _, e := range rec.Eligible {
			member := e.TeamMember == nil || *e.TeamMember
			a.entries = append(a.entries, NewEntry(e.Category, member))
		}
	case rec.Category != nil:
		a.entries = append(a.entries, NewEntry(*rec.Category, true))
	}
	a.derive()
	return a
}

func (a *Athlete) derive() {
	for i := 1; i <= TotalAttempts; i++ {
		att := a.Attempt(i)
		if !att.Done() {
			continue
		}
		a.attemptsDone++
		lift := att.Lifted()
		if i <= SnatchAttempts {
			if lift > a.bestSnatch {
				a.bestSnatch, a.bestSnatchAt = lift, i
			}
			continue
		}
		if lift > a.bestCleanJerk {
			a.bestCleanJerk, a.bestCleanJerkAt = lift, i
		}
	}
}

// Record returns a copy of the underlying data.
func (a *Athlete) Record() Record { return a.rec }

// Entries returns the concrete participations.
func (a *Athlete) Entries() []*Entry { return a.entries }

// Ranks returns a copy of the competitor-level rank fields.
func (a *Athlete) Ranks() map[scoring.Metric]int { return maps.Clone(a.ranks) }

// PointsByMetric returns a copy of the competitor-level point fields.
func (a *Athlete) PointsByMetric() map[scoring.Metric]int { return maps.Clone(a.points) }

func (a *Athlete) ID() string                      { return a.rec.ID }
func (a *Athlete) LastName() string                { return a.rec.LastName }
func (a *Athlete) FirstName() string               { return a.rec.FirstName }
func (a *Athlete) Gender() Gender                  { return a.rec.Gender }
func (a *Athlete) Category() *Category             { return a.rec.Category }
func (a *Athlete) RegistrationCategory() *Category { return a.rec.RegistrationCategory }
func (a *Athlete) Club() string                    { return a.rec.Club }
func (a *Athlete) Group() *Group                   { return a.rec.Group }
func (a *Athlete) ForcedAsCurrent() bool           { return a.rec.ForcedAsCurrent }

// AgeGroup returns the competitor's age group, falling back to the category's.
func (a *Athlete) AgeGroup() *AgeGroup {
	if a.rec.AgeGroup != nil {
		return a.rec.AgeGroup
	}
	if a.rec.Category != nil {
		return a.rec.Category.AgeGroup
	}
	return nil
}

func (a *Athlete) LotNumber() (int, bool)   { return optInt(a.rec.LotNumber) }
func (a *Athlete) StartNumber() (int, bool) { return optInt(a.rec.StartNumber) }

func (a *Athlete) BirthDate() (time.Time, bool) {
	if a.rec.BirthDate == nil {
		return time.Time{}, false
	}
	return *a.rec.BirthDate, true
}

func (a *Athlete) BodyWeight() float64 { return optFloat(a.rec.BodyWeight) }

func (a *Athlete) Attempt(n int) Attempt {
	if n < 1 || n > len(a.rec.Attempts) || n > TotalAttempts {
		return Attempt{}
	}
	return a.rec.Attempts[n-1]
}

func (a *Athlete) AttemptsDone() int               { return a.attemptsDone }
func (a *Athlete) BestSnatch() int                 { return a.bestSnatch }
func (a *Athlete) BestSnatchAttemptNumber() int    { return a.bestSnatchAt }
func (a *Athlete) BestCleanJerk() int              { return a.bestCleanJerk }
func (a *Athlete) BestCleanJerkAttemptNumber() int { return a.bestCleanJerkAt }

// Total is zero unless both disciplines have a successful lift.
func (a *Athlete) Total() int {
	if a.bestSnatch <= 0 || a.bestCleanJerk <= 0 {
		return 0
	}
	return a.bestSnatch + a.bestCleanJerk
}

// NextRequestedWeight returns the weight requested for the attempt after the
// last one done.
func (a *Athlete) NextRequestedWeight() (int, bool) {
	if a.attemptsDone >= TotalAttempts {
		return 0, false
	}
	return a.Attempt(a.attemptsDone + 1).Requested()
}

func (a *Athlete) EligibleForIndividualRanking() bool { return optBool(a.rec.IndividualRanking) }
func (a *Athlete) EligibleForTeamRanking() bool       { return optBool(a.rec.TeamRanking) }

func (a *Athlete) Sinclair() float64         { return optFloat(a.rec.Scores.Sinclair) }
func (a *Athlete) CatSinclair() float64      { return optFloat(a.rec.Scores.CatSinclair) }
func (a *Athlete) SMM() float64              { return optFloat(a.rec.Scores.SMM) }
func (a *Athlete) Robi() float64             { return optFloat(a.rec.Scores.Robi) }
func (a *Athlete) QPoints() float64          { return optFloat(a.rec.Scores.QPoints) }
func (a *Athlete) QAge() float64             { return optFloat(a.rec.Scores.QAge) }
func (a *Athlete) Gamx() float64             { return optFloat(a.rec.Scores.Gamx) }
func (a *Athlete) AgeAdjustedTotal() float64 { return optFloat(a.rec.Scores.AgeAdjustedTotal) }
func (a *Athlete) CustomScore() float64      { return optFloat(a.rec.Scores.Custom) }

// Rank returns a competitor-level rank. Category-tiered metrics read the
// participation of the main category.
func (a *Athlete) Rank(m scoring.Metric) int {
	if m.Family() == scoring.CategoryTiered {
		if e := a.mainEntry(); e != nil {
			return e.Rank(m)
		}
	}
	return a.ranks[m]
}

// Points returns competitor-level team points, with the same main category
// fallback as Rank. SnatchCjTotal sums the three discipline points.
func (a *Athlete) Points(m scoring.Metric) int {
	if m == scoring.SnatchCjTotal {
		return a.Points(scoring.Snatch) + a.Points(scoring.CleanJerk) + a.Points(scoring.Total)
	}
	if m.Family() == scoring.CategoryTiered {
		if e := a.mainEntry(); e != nil {
			return e.Points(m)
		}
	}
	return a.points[m]
}

func (a *Athlete) SetRank(m scoring.Metric, rank int)     { a.ranks[m] = rank }
func (a *Athlete) SetPoints(m scoring.Metric, points int) { a.points[m] = points }

func (a *Athlete) Participations() []Participation {
	out := make([]Participation, len(a.entries))
	for i, e := range a.entries {
		out[i] = e
	}
	return out
}

func (a *Athlete) mainEntry() *Entry {
	if a.rec.Category == nil {
		return nil
	}
	for _, e := range a.entries {
		if e.category.Code == a.rec.Category.Code {
			return e
		}
	}
	return nil
}

func optInt(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func optFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// optBool treats a missing flag as true.
func optBool(p *bool) bool {
	return p == nil || *p
}
