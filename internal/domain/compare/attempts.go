package compare

import (
	"cmp"
	"fmt"

	"github.com/okian/liftrank/internal/domain/athlete"
)

// PreviousAttempts walks the attempts before startingFrom, latest first, and
// orders by the first attempted weight that differs. Weights are compared by
// magnitude, so a failed attempt counts at the weight that was tried. With
// excludeSnatch the walk stops at the first clean & jerk.
//
// The competitor who attempted less on the last differing attempt was on the
// platform earlier and sorts first.
func PreviousAttempts(startingFrom int, excludeSnatch bool, a, b athlete.Snapshot) int {
	stopAt := 1
	if excludeSnatch {
		stopAt = athlete.SnatchAttempts + 1
	}
	for i := startingFrom - 1; i >= stopAt; i-- {
		if r := cmp.Compare(absInt(a.Attempt(i).Lifted()), absInt(b.Attempt(i).Lifted())); r != 0 {
			return r
		}
	}
	return 0
}

// PreviousToBest applies PreviousAttempts from the best attempt of the
// discipline. It runs after the best attempt numbers compared equal, so the
// starting attempt is the same for both competitors.
func PreviousToBest(cleanJerk bool) Func {
	return func(a, b athlete.Snapshot) int {
		if cleanJerk {
			return PreviousAttempts(a.BestCleanJerkAttemptNumber(), true, a, b)
		}
		return PreviousAttempts(a.BestSnatchAttemptNumber(), false, a, b)
	}
}

// Progression decides who is due first between two competitors asking for
// the same weight on the same attempt. The one whose previous attempt in the
// current discipline was lighter lifted earlier and goes first; equal weights
// fall back to who lifted that attempt first.
//
// Calling it with different requested weights or attempts done is a caller
// bug reported as ErrPrecondition.
func Progression(a, b athlete.Snapshot) (int, error) {
	if err := checkProgression(a, b); err != nil {
		return 0, err
	}
	done := a.AttemptsDone()
	// first attempt of a discipline has no previous attempt to compare
	if done == 0 || done == athlete.SnatchAttempts {
		return 0, nil
	}
	prevA, prevB := a.Attempt(done), b.Attempt(done)
	if r := cmp.Compare(absInt(prevA.Lifted()), absInt(prevB.Lifted())); r != 0 {
		return r, nil
	}
	return zeroLast(prevA.LiftTime, prevB.LiftTime), nil
}

func checkProgression(a, b athlete.Snapshot) error {
	if a.AttemptsDone() != b.AttemptsDone() {
		return fmt.Errorf("%w: progression between %q and %q with attempts done %d and %d",
			ErrPrecondition, a.ID(), b.ID(), a.AttemptsDone(), b.AttemptsDone())
	}
	if wa, wb := requested(a), requested(b); wa != wb {
		return fmt.Errorf("%w: progression between %q and %q with requested weights %d and %d",
			ErrPrecondition, a.ID(), b.ID(), wa, wb)
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
