package compare

import (
	"cmp"
	"strings"
	"time"

	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// MissingRequestedWeight is used for a competitor with no weight requested,
// so that they sort after everyone who has one.
const MissingRequestedWeight = 999

// Identity and registration.

var (
	LotNumber   = Ints(athlete.Snapshot.LotNumber, Ascending, NullsFirst)
	StartNumber = Ints(athlete.Snapshot.StartNumber, Ascending, NullsFirst)
	LastName    = Strings(always(folded(athlete.Snapshot.LastName)), Ascending, NullsFirst)
	FirstName   = Strings(always(folded(athlete.Snapshot.FirstName)), Ascending, NullsFirst)
	Club        = Strings(present(folded(athlete.Snapshot.Club)), Ascending, NullsLast)
	BodyWeight  = Floats(always(athlete.Snapshot.BodyWeight), Ascending, NullsLast)
)

// ID orders by stable id. It is the last resort that makes an order strict.
func ID(a, b athlete.Snapshot) int {
	return cmp.Compare(a.ID(), b.ID())
}

// BirthDate orders older competitors first; a missing birth date counts as today.
func BirthDate(a, b athlete.Snapshot) int {
	today := time.Now()
	return birthOrToday(a, today).Compare(birthOrToday(b, today))
}

func birthOrToday(s athlete.Snapshot, today time.Time) time.Time {
	if d, ok := s.BirthDate(); ok {
		return d
	}
	return today
}

// Gender orders F before M; unknown gender sorts last.
func Gender(a, b athlete.Snapshot) int {
	return cmp.Compare(genderOrder(a.Gender()), genderOrder(b.Gender()))
}

func genderOrder(g athlete.Gender) int {
	switch g {
	case athlete.Female:
		return 0
	case athlete.Male:
		return 1
	default:
		return 2
	}
}

// Category orders by the competition category; missing sorts last.
func Category(a, b athlete.Snapshot) int {
	return categories(a.Category(), b.Category())
}

// RegistrationCategory orders by the category entered at registration.
func RegistrationCategory(a, b athlete.Snapshot) int {
	return categories(a.RegistrationCategory(), b.RegistrationCategory())
}

// AgeGroup orders by age group; missing sorts last.
func AgeGroup(a, b athlete.Snapshot) int {
	return ageGroups(a.AgeGroup(), b.AgeGroup())
}

func categories(x, y *athlete.Category) int {
	if r, done := nullOrder(x != nil, y != nil, NullsLast); done {
		return r
	}
	if r := cmp.Compare(genderOrder(x.Gender), genderOrder(y.Gender)); r != 0 {
		return r
	}
	if r := ageGroups(x.AgeGroup, y.AgeGroup); r != 0 {
		return r
	}
	if r := cmp.Compare(x.MaximumWeight, y.MaximumWeight); r != 0 {
		return r
	}
	if r := cmp.Compare(x.MinimumWeight, y.MinimumWeight); r != 0 {
		return r
	}
	return cmp.Compare(x.Code, y.Code)
}

// AgeGroupDescending is AgeGroup with present values reversed; missing still sorts last.
func AgeGroupDescending(a, b athlete.Snapshot) int {
	x, y := a.AgeGroup(), b.AgeGroup()
	if r, done := nullOrder(x != nil, y != nil, NullsLast); done {
		return r
	}
	return -ageGroups(x, y)
}

func ageGroups(x, y *athlete.AgeGroup) int {
	if r, done := nullOrder(x != nil, y != nil, NullsLast); done {
		return r
	}
	if r := cmp.Compare(genderOrder(x.Gender), genderOrder(y.Gender)); r != 0 {
		return r
	}
	if r := cmp.Compare(x.MinAge, y.MinAge); r != 0 {
		return r
	}
	if r := cmp.Compare(x.MaxAge, y.MaxAge); r != 0 {
		return r
	}
	return cmp.Compare(x.Code, y.Code)
}

// Group orders sessions by weigh-in time, competition time, platform and name.
// A competitor without a session sorts last.
func Group(a, b athlete.Snapshot) int {
	x, y := a.Group(), b.Group()
	if r, done := nullOrder(x != nil, y != nil, NullsLast); done {
		return r
	}
	if r := zeroLast(x.WeighInTime, y.WeighInTime); r != 0 {
		return r
	}
	if r := zeroLast(x.CompetitionTime, y.CompetitionTime); r != 0 {
		return r
	}
	if r := cmp.Compare(x.Platform, y.Platform); r != 0 {
		return r
	}
	return cmp.Compare(x.Name, y.Name)
}

// SessionTime orders by the competition time of the session.
var SessionTime = Times(func(s athlete.Snapshot) (time.Time, bool) {
	g := s.Group()
	if g == nil || g.CompetitionTime.IsZero() {
		return time.Time{}, false
	}
	return g.CompetitionTime, true
}, Ascending, NullsLast)

// SameSession reports whether both competitors lift in the same named group.
func SameSession(a, b athlete.Snapshot) bool {
	x, y := a.Group(), b.Group()
	if x == nil || y == nil {
		return x == y
	}
	return x.Name == y.Name
}

func zeroLast(x, y time.Time) int {
	if r, done := nullOrder(!x.IsZero(), !y.IsZero(), NullsLast); done {
		return r
	}
	return x.Compare(y)
}

// Lift progress.

var (
	AttemptsDone               = Ints(always(athlete.Snapshot.AttemptsDone), Ascending, NullsLast)
	BestSnatchAttemptNumber    = Ints(always(athlete.Snapshot.BestSnatchAttemptNumber), Ascending, NullsLast)
	BestCleanJerkAttemptNumber = Ints(always(athlete.Snapshot.BestCleanJerkAttemptNumber), Ascending, NullsLast)
	BestSnatch                 = Ints(always(abs(athlete.Snapshot.BestSnatch)), Ascending, NullsLast)
	BestCleanJerk              = Ints(always(abs(athlete.Snapshot.BestCleanJerk)), Ascending, NullsLast)
	Total                      = Ints(always(abs(athlete.Snapshot.Total)), Ascending, NullsLast)
)

// ForcedAsCurrent puts the competitor flagged as current first.
func ForcedAsCurrent(a, b athlete.Snapshot) int {
	return falseLast(a.ForcedAsCurrent(), b.ForcedAsCurrent())
}

// DoneLifting puts competitors with attempts left first. Among those who are
// done, the higher total comes first.
func DoneLifting(a, b athlete.Snapshot) int {
	doneA := a.AttemptsDone() >= athlete.TotalAttempts
	doneB := b.AttemptsDone() >= athlete.TotalAttempts
	switch {
	case doneA && doneB:
		return -Total(a, b)
	case doneA:
		return 1
	case doneB:
		return -1
	default:
		return 0
	}
}

// LiftPhase puts competitors still in the snatch before those in the clean & jerk.
func LiftPhase(a, b athlete.Snapshot) int {
	return falseLast(inSnatch(a), inSnatch(b))
}

func inSnatch(s athlete.Snapshot) bool {
	return s.AttemptsDone() < athlete.SnatchAttempts
}

// RequestedWeight orders by the next requested weight; none counts as 999.
func RequestedWeight(a, b athlete.Snapshot) int {
	return cmp.Compare(requested(a), requested(b))
}

func requested(s athlete.Snapshot) int {
	if w, ok := s.NextRequestedWeight(); ok {
		return w
	}
	return MissingRequestedWeight
}

// BestLiftTime orders by when the best lift of the discipline was made.
// Competitors without a timestamp sort last.
func BestLiftTime(cleanJerk bool) Func {
	return Times(func(s athlete.Snapshot) (time.Time, bool) {
		n := s.BestSnatchAttemptNumber()
		if cleanJerk {
			n = s.BestCleanJerkAttemptNumber()
		}
		t := s.Attempt(n).LiftTime
		return t, n > 0 && !t.IsZero()
	}, Ascending, NullsLast)
}

// Scores.

// Value orders by the resolved value of m, smallest first.
func Value(m scoring.Metric) Func {
	return func(a, b athlete.Snapshot) int {
		return cmp.Compare(scoring.Resolve(a, m), scoring.Resolve(b, m))
	}
}

// Score orders inside a gender by the value of m, largest first. Coefficient
// scores are only comparable within a gender.
func Score(m scoring.Metric) Func {
	value := Value(m)
	return func(a, b athlete.Snapshot) int {
		if r := Gender(a, b); r != 0 {
			return r
		}
		return -value(a, b)
	}
}

var (
	Sinclair         = Score(scoring.BWSinclair)
	CatSinclair      = Score(scoring.CatSinclair)
	SMM              = Score(scoring.SMM)
	Robi             = Score(scoring.Robi)
	QPoints          = Score(scoring.QPoints)
	QAge             = Score(scoring.QAge)
	Gamx             = Score(scoring.Gamx)
	AgeAdjustedTotal = Score(scoring.AgeAdjustedTotal)
	Custom           = Score(scoring.Custom)
)

// TeamPoints orders by the team points earned for m, largest first.
func TeamPoints(m scoring.Metric) Func {
	return func(a, b athlete.Snapshot) int {
		return -cmp.Compare(a.Points(m), b.Points(m))
	}
}

// extractor helpers

func always[T any](f func(athlete.Snapshot) T) func(athlete.Snapshot) (T, bool) {
	return func(s athlete.Snapshot) (T, bool) { return f(s), true }
}

func present(f func(athlete.Snapshot) string) func(athlete.Snapshot) (string, bool) {
	return func(s athlete.Snapshot) (string, bool) {
		v := f(s)
		return v, v != ""
	}
}

func folded(f func(athlete.Snapshot) string) func(athlete.Snapshot) string {
	return func(s athlete.Snapshot) string { return strings.ToLower(strings.TrimSpace(f(s))) }
}

func abs(f func(athlete.Snapshot) int) func(athlete.Snapshot) int {
	return func(s athlete.Snapshot) int { return absInt(f(s)) }
}

func falseLast(x, y bool) int {
	switch {
	case x == y:
		return 0
	case x:
		return -1
	default:
		return 1
	}
}
