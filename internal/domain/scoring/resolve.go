package scoring

// Scores exposes the values a competitor carries for every metric.
// Missing alternate scores are reported as 0.
type Scores interface {
	BestSnatch() int
	BestCleanJerk() int
	Total() int
	Sinclair() float64
	CatSinclair() float64
	SMM() float64
	Robi() float64
	QPoints() float64
	QAge() float64
	Gamx() float64
	AgeAdjustedTotal() float64
	CustomScore() float64
}

// Resolve returns the value compared on when ranking s by m.
// SnatchCjTotal is a sum of points and has no value of its own; it resolves to 0.
func Resolve(s Scores, m Metric) float64 {
	switch m {
	case Snatch:
		return float64(s.BestSnatch())
	case CleanJerk:
		return float64(s.BestCleanJerk())
	case Total:
		return float64(s.Total())
	case BWSinclair:
		return s.Sinclair()
	case CatSinclair:
		return s.CatSinclair()
	case SMM:
		return s.SMM()
	case Robi:
		return s.Robi()
	case Custom:
		return s.CustomScore()
	case QPoints:
		return s.QPoints()
	case QAge:
		return s.QAge()
	case Gamx:
		return s.Gamx()
	case AgeAdjustedTotal:
		return s.AgeAdjustedTotal()
	case SnatchCjTotal:
		return 0
	default:
		return 0
	}
}
