// Package athlete defines the accessor contract the ranking engine reads and
// writes, together with a concrete in-memory competitor record.
package athlete

import "time"

// Gender of a competitor or category.
type Gender string

// Known genders. An empty Gender means unknown.
const (
	Female Gender = "F"
	Male   Gender = "M"
)

// AgeGroup is an age bracket inside which categories are defined.
type AgeGroup struct {
	Code   string `json:"code"`
	Gender Gender `json:"gender"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
	// Masters age groups are shown oldest first in display order.
	Masters bool `json:"masters,omitempty"`
}

// Category is a gender + body weight (+ age group) class.
type Category struct {
	Code          string    `json:"code"`
	Gender        Gender    `json:"gender"`
	AgeGroup      *AgeGroup `json:"age_group,omitempty"`
	MinimumWeight float64   `json:"minimum_weight"`
	MaximumWeight float64   `json:"maximum_weight"`
	// WorldRecordTotal feeds the Robi coefficient when it is derived.
	WorldRecordTotal int `json:"world_record_total,omitempty"`
}

// Group is a competition session.
type Group struct {
	Name            string    `json:"name"`
	Platform        string    `json:"platform,omitempty"`
	WeighInTime     time.Time `json:"weigh_in_time,omitzero"`
	CompetitionTime time.Time `json:"competition_time,omitzero"`
}

// Attempt is one of the six lifts of a competitor.
//
// Weights of 0 mean "not declared". ActualLift is nil until the attempt is
// done; a negative value records a failed attempt at that weight and 0 a
// forfeited attempt.
type Attempt struct {
	AutomaticProgression int       `json:"automatic_progression,omitempty"`
	Declaration          int       `json:"declaration,omitempty"`
	Change1              int       `json:"change1,omitempty"`
	Change2              int       `json:"change2,omitempty"`
	ActualLift           *int      `json:"actual_lift,omitempty"`
	LiftTime             time.Time `json:"lift_time,omitzero"`
}

// Done reports whether the attempt has been taken.
func (a Attempt) Done() bool { return a.ActualLift != nil }

// Lifted returns the recorded lift or 0 when the attempt is not done.
func (a Attempt) Lifted() int {
	if a.ActualLift == nil {
		return 0
	}
	return *a.ActualLift
}

// Requested returns the latest weight asked for, falling back to automatic progression.
func (a Attempt) Requested() (int, bool) {
	for _, w := range []int{a.Change2, a.Change1, a.Declaration, a.AutomaticProgression} {
		if w > 0 {
			return w, true
		}
	}
	return 0, false
}

// Scores carries the alternate scoring values computed by the host.
type Scores struct {
	Sinclair         *float64 `json:"sinclair,omitempty"`
	CatSinclair      *float64 `json:"cat_sinclair,omitempty"`
	SMM              *float64 `json:"smm,omitempty"`
	Robi             *float64 `json:"robi,omitempty"`
	QPoints          *float64 `json:"qpoints,omitempty"`
	QAge             *float64 `json:"qage,omitempty"`
	Gamx             *float64 `json:"gamx,omitempty"`
	AgeAdjustedTotal *float64 `json:"age_adjusted_total,omitempty"`
	Custom           *float64 `json:"custom,omitempty"`
}

// Eligibility links a competitor to one more category it is ranked in.
type Eligibility struct {
	Category Category `json:"category"`
	// TeamMember defaults to true.
	TeamMember *bool `json:"team_member,omitempty"`
}
