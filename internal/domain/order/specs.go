package order

import (
	"fmt"

	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/compare"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// Shared tail that makes the pre-competition orders reproducible.
var registrationTail = []compare.Step{
	compare.By("lot_number", compare.LotNumber),
	compare.By("last_name", compare.LastName),
	compare.By("first_name", compare.FirstName),
}

// LiftingOrder decides who lifts next.
func LiftingOrder(opts Options) *Specification {
	steps := []compare.Step{
		compare.By("forced_as_current", compare.ForcedAsCurrent),
		compare.By("done_lifting", compare.DoneLifting),
		compare.By("lift_phase", compare.LiftPhase),
	}
	if opts.RoundRobin {
		steps = append(steps, compare.By("attempts_done", compare.AttemptsDone))
	}
	if opts.GenderOrder {
		steps = append(steps, compare.By("gender", compare.Gender))
	}
	if opts.FixedOrder {
		steps = append(steps, compare.By("lot_number", compare.LotNumber))
	}
	steps = append(steps, compare.By("requested_weight", compare.RequestedWeight))
	if !opts.RoundRobin {
		steps = append(steps, compare.By("attempts_done", compare.AttemptsDone))
	}
	steps = append(steps,
		compare.Checked("progression", compare.Progression),
		compare.By("start_number", compare.StartNumber),
	)
	return &Specification{name: "lifting", chain: steps}
}

// DisplayOrder is the order of scoreboards before results are known.
func DisplayOrder(opts Options) *Specification {
	var steps []compare.Step
	if opts.Masters {
		steps = append(steps, compare.By("age_group_desc", compare.AgeGroupDescending))
	}
	steps = append(steps, compare.By("category", compare.Category))
	steps = append(steps, registrationTail...)
	return &Specification{name: "display", chain: steps}
}

// RegistrationOrder is the order of weigh-in and registration documents.
func RegistrationOrder(opts Options) *Specification {
	steps := []compare.Step{compare.By("group", compare.Group)}
	if !opts.DisplayByAgeGroup {
		steps = append(steps, compare.By("age_group", compare.AgeGroup))
	}
	steps = append(steps, compare.By("category", compare.Category))
	steps = append(steps, registrationTail...)
	return &Specification{name: "registration", chain: steps}
}

// StartNumberOrder follows previously assigned start numbers.
func StartNumberOrder() *Specification {
	steps := []compare.Step{compare.By("start_number", compare.StartNumber)}
	steps = append(steps, registrationTail...)
	return &Specification{name: "start_number", chain: steps}
}

// ResultsOrder is the winning order for m. Category-tiered metrics rank inside
// a category unless ignoreCategories is set; coefficient metrics rank inside
// a gender. The last step is the stable id so that no two competitors tie.
func ResultsOrder(m scoring.Metric, ignoreCategories bool, opts Options) (*Specification, error) {
	switch m.Family() {
	case scoring.CategoryTiered:
		return &Specification{
			name:  Request{Kind: Results, Metric: m, IgnoreCategories: ignoreCategories}.String(),
			chain: tieredResults(m, ignoreCategories, opts),
		}, nil
	case scoring.Coefficient:
		return &Specification{
			name:  Request{Kind: Results, Metric: m}.String(),
			chain: coefficientResults(m),
		}, nil
	case scoring.Derived:
		return nil, fmt.Errorf("%w: %s", ErrMetricNotOrderable, m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrMetricNotOrderable, m)
	}
}

func tieredResults(m scoring.Metric, ignoreCategories bool, opts Options) compare.Chain {
	var steps []compare.Step
	if !ignoreCategories {
		if opts.UseRegistrationCategory {
			steps = append(steps, compare.By("registration_category", compare.RegistrationCategory))
		} else {
			steps = append(steps, compare.By("category", compare.Category))
		}
	}
	steps = append(steps, compare.Reversed(compare.By(m.String(), compare.Value(m))))
	if opts.OldBodyWeightTieBreak {
		steps = append(steps, compare.By("body_weight", compare.BodyWeight))
	}
	cleanJerk := decidedInCleanJerk(m)
	attemptNumber := compare.BestSnatchAttemptNumber
	if cleanJerk {
		attemptNumber = compare.BestCleanJerkAttemptNumber
	}
	steps = append(steps,
		compare.By("best_attempt_number", attemptNumber),
		compare.By("previous_attempts", compare.PreviousToBest(cleanJerk)),
		compare.By("best_lift_time", otherSession(compare.BestLiftTime(cleanJerk))),
		compare.By("session_time", otherSession(compare.SessionTime)),
		compare.By("start_number", compare.StartNumber),
		compare.By("id", compare.ID),
	)
	return steps
}

// decidedInCleanJerk reports whether ties on m are broken on the clean & jerk.
// A total is reached with the best clean & jerk; custom scores follow the total.
func decidedInCleanJerk(m scoring.Metric) bool {
	switch m {
	case scoring.Snatch:
		return false
	case scoring.CleanJerk, scoring.Total, scoring.Custom:
		return true
	default:
		return true
	}
}

func coefficientResults(m scoring.Metric) compare.Chain {
	return compare.Chain{
		compare.By("gender", compare.Gender),
		compare.Reversed(compare.By(m.String(), compare.Value(m))),
		compare.By("body_weight", compare.BodyWeight),
		compare.By("start_number", compare.StartNumber),
		compare.By("id", compare.ID),
	}
}

// TeamPointsOrder orders the members of each club by the points they bring
// for m. SnatchCjTotal points are the sum of the three discipline points, and
// ties on them fall back to the total.
func TeamPointsOrder(m scoring.Metric, opts Options) *Specification {
	value := m
	if !m.Orderable() {
		value = scoring.Total
	}
	steps := compare.Chain{
		compare.By("club", compare.Club),
		compare.By("gender", compare.Gender),
		compare.By("team_points", compare.TeamPoints(m)),
		compare.Reversed(compare.By(value.String(), compare.Value(value))),
	}
	if opts.OldBodyWeightTieBreak {
		steps = append(steps, compare.By("body_weight", compare.BodyWeight))
	}
	steps = append(steps,
		compare.By("start_number", compare.StartNumber),
		compare.By("id", compare.ID),
	)
	return &Specification{name: Request{Kind: TeamPoints, Metric: m}.String(), chain: steps}
}

// otherSession only compares competitors who lifted in different sessions.
func otherSession(fn compare.Func) compare.Func {
	return func(a, b athlete.Snapshot) int {
		if compare.SameSession(a, b) {
			return 0
		}
		return fn(a, b)
	}
}
