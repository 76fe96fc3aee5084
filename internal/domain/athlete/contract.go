package athlete

import (
	"time"

	"github.com/okian/liftrank/internal/domain/scoring"
)

// Attempts per discipline and overall.
const (
	SnatchAttempts = 3
	TotalAttempts  = 6
)

// Snapshot is the read view of a competitor consumed by the comparators.
type Snapshot interface {
	scoring.Scores

	ID() string
	LotNumber() (int, bool)
	StartNumber() (int, bool)
	LastName() string
	FirstName() string
	Gender() Gender
	Category() *Category
	RegistrationCategory() *Category
	AgeGroup() *AgeGroup
	Club() string
	BirthDate() (time.Time, bool)
	BodyWeight() float64
	Group() *Group

	// Attempt returns attempt n (1..6); out of range yields a zero Attempt.
	Attempt(n int) Attempt
	AttemptsDone() int
	BestSnatchAttemptNumber() int
	BestCleanJerkAttemptNumber() int
	NextRequestedWeight() (int, bool)

	ForcedAsCurrent() bool
	EligibleForIndividualRanking() bool
	EligibleForTeamRanking() bool

	Rank(m scoring.Metric) int
	Points(m scoring.Metric) int
	Participations() []Participation
}

// Ranked is the write view used by the overall rank assigner.
type Ranked interface {
	SetRank(m scoring.Metric, rank int)
	SetPoints(m scoring.Metric, points int)
}

// Competitor is a snapshot that accepts rank writes.
type Competitor interface {
	Snapshot
	Ranked
}

// Participation pairs a competitor with an eligible category and holds the
// category-scoped ranks.
type Participation interface {
	Category() *Category
	TeamMember() bool
	Rank(m scoring.Metric) int
	SetRank(m scoring.Metric, rank int)
	Points(m scoring.Metric) int
	SetPoints(m scoring.Metric, points int)
}
