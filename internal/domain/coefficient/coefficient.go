// Package coefficient computes the body-weight coefficients that hosts can
// derive when a competitor record does not carry them.
package coefficient

import (
	"math"

	"github.com/okian/liftrank/internal/domain/athlete"
)

// RobiExponent is log2(10), the exponent of the Robi formula.
const RobiExponent = 3.321928095

// SinclairParams are the A and b coefficients of one gender.
type SinclairParams struct {
	A float64 `koanf:"a"`
	B float64 `koanf:"b"`
}

// Sinclair holds the coefficients for both genders.
type Sinclair struct {
	Men   SinclairParams `koanf:"men"`
	Women SinclairParams `koanf:"women"`
}

// DefaultSinclair returns the coefficients published for the 2020-2024 cycle.
func DefaultSinclair() Sinclair {
	return Sinclair{
		Men:   SinclairParams{A: 0.751945030, B: 175.508},
		Women: SinclairParams{A: 0.783497476, B: 153.655},
	}
}

// Factor returns the Sinclair multiplier for bodyWeight. Competitors at or
// above b, and unknown genders, get 1.
func (s Sinclair) Factor(g athlete.Gender, bodyWeight float64) float64 {
	var p SinclairParams
	switch g {
	case athlete.Male:
		p = s.Men
	case athlete.Female:
		p = s.Women
	default:
		return 1
	}
	if bodyWeight <= 0 || p.B <= 0 || bodyWeight >= p.B {
		return 1
	}
	x := math.Log10(bodyWeight / p.B)
	return math.Pow(10, p.A*x*x)
}

// Score returns total multiplied by the Sinclair factor.
func (s Sinclair) Score(g athlete.Gender, bodyWeight float64, total int) float64 {
	if total <= 0 || bodyWeight <= 0 {
		return 0
	}
	return float64(total) * s.Factor(g, bodyWeight)
}

// CategoryScore is the Sinclair score computed at the upper limit of the
// category instead of the actual body weight. Open-ended categories use the
// actual body weight.
func (s Sinclair) CategoryScore(c *athlete.Category, bodyWeight float64, total int) float64 {
	if c == nil {
		return 0
	}
	limit := c.MaximumWeight
	if limit <= 0 || limit >= 999 {
		limit = bodyWeight
	}
	return s.Score(c.Gender, limit, total)
}

// Robi scores total against the world record of the category: a total equal
// to the record scores 1000.
func Robi(total, worldRecord int) float64 {
	if total <= 0 || worldRecord <= 0 {
		return 0
	}
	a := 1000 / math.Pow(float64(worldRecord), RobiExponent)
	return a * math.Pow(float64(total), RobiExponent)
}
