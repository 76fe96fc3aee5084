// Package athletetest builds competitor records for tests.
package athletetest

import (
	"time"

	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// Builder accumulates a record; attempts are filled in lifting order.
type Builder struct {
	rec  athlete.Record
	done int
}

// New starts a record with id and an empty six-attempt card.
func New(id string) *Builder {
	return &Builder{rec: athlete.Record{
		ID:       id,
		LastName: id,
		Attempts: make([]athlete.Attempt, athlete.TotalAttempts),
	}}
}

// Category returns a senior category of code with weight limit max.
func Category(code string, g athlete.Gender, max float64) athlete.Category {
	return athlete.Category{Code: code, Gender: g, MaximumWeight: max}
}

func (b *Builder) Named(last, first string) *Builder {
	b.rec.LastName, b.rec.FirstName = last, first
	return b
}

func (b *Builder) Gender(g athlete.Gender) *Builder {
	b.rec.Gender = g
	return b
}

func (b *Builder) Category(c athlete.Category) *Builder {
	b.rec.Category = &c
	if b.rec.Gender == "" {
		b.rec.Gender = c.Gender
	}
	return b
}

func (b *Builder) RegistrationCategory(c athlete.Category) *Builder {
	b.rec.RegistrationCategory = &c
	return b
}

// Eligible lists the participations; the main category must be repeated
// when it is one of them.
func (b *Builder) Eligible(cats ...athlete.Category) *Builder {
	for _, c := range cats {
		b.rec.Eligible = append(b.rec.Eligible, athlete.Eligibility{Category: c})
	}
	return b
}

func (b *Builder) AgeGroup(g athlete.AgeGroup) *Builder {
	b.rec.AgeGroup = &g
	return b
}

func (b *Builder) Lot(n int) *Builder {
	b.rec.LotNumber = &n
	return b
}

func (b *Builder) Start(n int) *Builder {
	b.rec.StartNumber = &n
	return b
}

func (b *Builder) Club(name string) *Builder {
	b.rec.Club = name
	return b
}

func (b *Builder) BodyWeight(w float64) *Builder {
	b.rec.BodyWeight = &w
	return b
}

func (b *Builder) BirthDate(t time.Time) *Builder {
	b.rec.BirthDate = &t
	return b
}

func (b *Builder) Group(g athlete.Group) *Builder {
	b.rec.Group = &g
	return b
}

// Lifts records the next attempts; negative weights are misses.
func (b *Builder) Lifts(weights ...int) *Builder {
	for _, w := range weights {
		b.LiftAt(w, time.Time{})
	}
	return b
}

// LiftAt records the next attempt with its timestamp.
func (b *Builder) LiftAt(weight int, at time.Time) *Builder {
	if b.done >= athlete.TotalAttempts {
		return b
	}
	w := weight
	abs := w
	if abs < 0 {
		abs = -abs
	}
	b.rec.Attempts[b.done] = athlete.Attempt{Declaration: abs, ActualLift: &w, LiftTime: at}
	b.done++
	return b
}

// Request declares the weight for the next attempt.
func (b *Builder) Request(weight int) *Builder {
	if b.done < athlete.TotalAttempts {
		b.rec.Attempts[b.done].Declaration = weight
	}
	return b
}

// Change records a change of the next attempt's weight.
func (b *Builder) Change(weight int) *Builder {
	if b.done < athlete.TotalAttempts {
		b.rec.Attempts[b.done].Change1 = weight
	}
	return b
}

func (b *Builder) Forced() *Builder {
	b.rec.ForcedAsCurrent = true
	return b
}

// Ineligible excludes the competitor from individual ranking.
func (b *Builder) Ineligible() *Builder {
	no := false
	b.rec.IndividualRanking = &no
	return b
}

// NoTeam excludes the competitor from team ranking.
func (b *Builder) NoTeam() *Builder {
	no := false
	b.rec.TeamRanking = &no
	return b
}

// Score sets an alternate score. Lift-based metrics are ignored.
func (b *Builder) Score(m scoring.Metric, v float64) *Builder {
	s := &b.rec.Scores
	switch m {
	case scoring.BWSinclair:
		s.Sinclair = &v
	case scoring.CatSinclair:
		s.CatSinclair = &v
	case scoring.SMM:
		s.SMM = &v
	case scoring.Robi:
		s.Robi = &v
	case scoring.QPoints:
		s.QPoints = &v
	case scoring.QAge:
		s.QAge = &v
	case scoring.Gamx:
		s.Gamx = &v
	case scoring.AgeAdjustedTotal:
		s.AgeAdjustedTotal = &v
	case scoring.Custom:
		s.Custom = &v
	case scoring.Snatch, scoring.CleanJerk, scoring.Total, scoring.SnatchCjTotal:
	}
	return b
}

// Record returns the record built so far.
func (b *Builder) Record() athlete.Record { return b.rec }

// Build returns the athlete.
func (b *Builder) Build() *athlete.Athlete { return athlete.New(b.rec) }

// IDs lists the ids of competitors in order.
func IDs[S ~[]E, E athlete.Snapshot](list S) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID()
	}
	return out
}
