package scoring

// Team points for the two podium places that do not follow the linear scale.
const (
	firstPlacePoints  = 28
	secondPlacePoints = 25
	linearBase        = 26
)

// Points converts an individual rank to team points.
// Unranked (0) and ineligible (-1) competitors score nothing.
func Points(rank int) int {
	switch {
	case rank <= 0:
		return 0
	case rank == 1:
		return firstPlacePoints
	case rank == 2:
		return secondPlacePoints
	default:
		return linearBase - rank
	}
}
