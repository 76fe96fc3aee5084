package coefficient

import "github.com/okian/liftrank/internal/domain/athlete"

// Fill returns rec with the Sinclair, category Sinclair and Robi scores set
// from its lifts wherever the host left them out. Scores already present are
// kept as supplied.
func Fill(rec athlete.Record, s Sinclair) athlete.Record {
	total := athlete.New(rec).Total()
	if total <= 0 {
		return rec
	}
	bw := 0.0
	if rec.BodyWeight != nil {
		bw = *rec.BodyWeight
	}
	if rec.Scores.Sinclair == nil && bw > 0 {
		v := s.Score(rec.Gender, bw, total)
		rec.Scores.Sinclair = &v
	}
	if rec.Scores.CatSinclair == nil && rec.Category != nil {
		v := s.CategoryScore(rec.Category, bw, total)
		rec.Scores.CatSinclair = &v
	}
	if rec.Scores.Robi == nil && rec.Category != nil && rec.Category.WorldRecordTotal > 0 {
		v := Robi(total, rec.Category.WorldRecordTotal)
		rec.Scores.Robi = &v
	}
	return rec
}
