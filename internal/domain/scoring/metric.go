// Package scoring defines the ranking metrics, how a competitor's value is
// resolved for each of them, and how ranks convert to team points.
package scoring

import (
	"fmt"
	"strings"
)

// Metric identifies a scoring system used to rank competitors.
type Metric int

// Supported metrics. The zero value is Snatch.
const (
	Snatch Metric = iota
	CleanJerk
	Total
	BWSinclair
	CatSinclair
	SMM
	Robi
	Custom
	QPoints
	QAge
	Gamx
	AgeAdjustedTotal
	SnatchCjTotal
)

// Family groups metrics by how their results order is tiered.
type Family int

const (
	// CategoryTiered metrics are ranked inside a category.
	CategoryTiered Family = iota
	// Coefficient metrics are ranked inside a gender, across categories.
	Coefficient
	// Derived metrics have no value of their own and cannot be ordered directly.
	Derived
)

var metricNames = map[Metric]string{
	Snatch:           "snatch",
	CleanJerk:        "clean_jerk",
	Total:            "total",
	BWSinclair:       "bw_sinclair",
	CatSinclair:      "cat_sinclair",
	SMM:              "smm",
	Robi:             "robi",
	Custom:           "custom",
	QPoints:          "qpoints",
	QAge:             "qage",
	Gamx:             "gamx",
	AgeAdjustedTotal: "age_adjusted_total",
	SnatchCjTotal:    "snatch_cj_total",
}

// Metrics returns every metric in declaration order.
func Metrics() []Metric {
	return []Metric{
		Snatch, CleanJerk, Total, BWSinclair, CatSinclair, SMM, Robi,
		Custom, QPoints, QAge, Gamx, AgeAdjustedTotal, SnatchCjTotal,
	}
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// ParseMetric maps a metric name (case-insensitive, "-" or "_" separated) to a Metric.
func ParseMetric(s string) (Metric, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch key {
	case "cj", "cleanjerk":
		return CleanJerk, nil
	case "sinclair":
		return BWSinclair, nil
	}
	for m, name := range metricNames {
		if name == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Family classifies the metric.
func (m Metric) Family() Family {
	switch m {
	case Snatch, CleanJerk, Total, Custom:
		return CategoryTiered
	case BWSinclair, CatSinclair, SMM, Robi, QPoints, QAge, Gamx, AgeAdjustedTotal:
		return Coefficient
	case SnatchCjTotal:
		return Derived
	default:
		return Derived
	}
}

// Orderable reports whether a results order exists for the metric.
func (m Metric) Orderable() bool {
	return m.Family() != Derived
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
