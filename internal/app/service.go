// Package service runs ordering and ranking passes for the HTTP API. It turns
// posted records into competitors, applies the configured competition rules
// and instruments every pass.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/coefficient"
	"github.com/okian/liftrank/internal/domain/compare"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/rank"
	"github.com/okian/liftrank/internal/domain/scoring"
	"github.com/okian/liftrank/pkg/logger"
	"github.com/okian/liftrank/pkg/metrics"
)

// Service implements the API dependencies for the ranking engine.
type Service struct {
	mu sync.RWMutex

	// Configuration
	options     order.Options
	sinclair    coefficient.Sinclair
	derive      bool
	maxAthletes int

	metrics *metrics.Manager
	logger  logger.Logger

	// State
	stats counters
}

// counters track the work done since the service was created.
type counters struct {
	passes                 int
	rankPasses             int
	athletes               int
	preconditionViolations int
	errors                 int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOrderOptions sets the competition rules used when a request has none.
func WithOrderOptions(opts order.Options) Option {
	return func(s *Service) {
		s.options = opts
	}
}

// WithSinclair sets the coefficients used to derive Sinclair scores.
func WithSinclair(c coefficient.Sinclair) Option {
	return func(s *Service) {
		s.sinclair = c
	}
}

// WithDeriveCoefficients turns coefficient derivation on or off.
func WithDeriveCoefficients(on bool) Option {
	return func(s *Service) {
		s.derive = on
	}
}

// WithMaxAthletes caps the number of competitors accepted per call.
func WithMaxAthletes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAthletes = n
		}
	}
}

// WithMetrics records pass metrics on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sinclair:    coefficient.DefaultSinclair(),
		derive:      true,
		maxAthletes: 500,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// OrderInput asks for one ordering.
type OrderInput struct {
	Request  order.Request
	Options  *order.Options
	Athletes []athlete.Record
	// Explain reports which step separated each adjacent pair.
	Explain bool
}

// Adjacent explains the order between two neighbours of a sorted list.
type Adjacent struct {
	Before   string           `json:"before"`
	After    string           `json:"after"`
	Decision compare.Decision `json:"decision"`
}

// OrderResult is a sorted list of competitors. Metrics lists the metrics
// ranked before sorting, if any.
type OrderResult struct {
	Spec     string
	Steps    []string
	Metrics  []scoring.Metric
	Athletes []*athlete.Athlete
	Explain  []Adjacent
}

// Order sorts the posted competitors.
func (s *Service) Order(ctx context.Context, in OrderInput) (OrderResult, error) {
	list, err := s.athletes(in.Athletes)
	if err != nil {
		return OrderResult{}, err
	}
	opts := s.resolve(in.Options)
	spec, err := order.For(in.Request, opts)
	if err != nil {
		return OrderResult{}, err
	}

	var (
		sorted    []*athlete.Athlete
		ranked    []scoring.Metric
		summaries []rank.Summary
	)
	err = s.pass(ctx, in.Request.Kind.String(), requestMetric(in.Request), len(list), func() error {
		// Team points only exist once the ranks they derive from are assigned.
		if in.Request.Kind == order.TeamPoints {
			ranked = teamPointMetrics(in.Request.Metric)
			for _, m := range ranked {
				summary, rankErr := rank.Assign(list, m, opts)
				if rankErr != nil {
					return rankErr
				}
				summaries = append(summaries, summary)
			}
		}
		var sortErr error
		sorted, sortErr = order.SortWith(spec, list)
		return sortErr
	})
	if err != nil {
		return OrderResult{}, err
	}
	for _, summary := range summaries {
		s.recordRanks(summary)
	}

	res := OrderResult{Spec: spec.Name(), Steps: spec.Steps(), Metrics: ranked, Athletes: sorted}
	if in.Explain {
		for i := 1; i < len(sorted); i++ {
			d, err := spec.Explain(sorted[i-1], sorted[i])
			if err != nil {
				return OrderResult{}, err
			}
			res.Explain = append(res.Explain, Adjacent{Before: sorted[i-1].ID(), After: sorted[i].ID(), Decision: d})
		}
	}
	return res, nil
}

// RankInput asks for ranks on one metric, or on every orderable metric
// when Metric is nil.
type RankInput struct {
	Metric   *scoring.Metric
	Options  *order.Options
	Athletes []athlete.Record
}

// RankResult holds the ranked competitors in their posted order.
type RankResult struct {
	Metrics   []scoring.Metric
	Summaries []rank.Summary
	Athletes  []*athlete.Athlete
}

// Rank assigns ranks and team points.
func (s *Service) Rank(ctx context.Context, in RankInput) (RankResult, error) {
	list, err := s.athletes(in.Athletes)
	if err != nil {
		return RankResult{}, err
	}
	opts := s.resolve(in.Options)

	ms := orderable()
	if in.Metric != nil {
		ms = []scoring.Metric{*in.Metric}
	}
	res := RankResult{Metrics: ms, Athletes: list}
	for _, m := range ms {
		var summary rank.Summary
		err := s.pass(ctx, "rank", m.String(), len(list), func() error {
			var rankErr error
			summary, rankErr = rank.Assign(list, m, opts)
			return rankErr
		})
		if err != nil {
			return RankResult{}, err
		}
		s.recordRanks(summary)
		res.Summaries = append(res.Summaries, summary)
	}
	return res, nil
}

// Value resolves the value of one competitor for m.
func (s *Service) Value(_ context.Context, rec athlete.Record, m scoring.Metric) float64 {
	return scoring.Resolve(s.athlete(rec), m)
}

// CategoryResult is the results order of one category.
type CategoryResult struct {
	Category athlete.Category
	Athletes []athlete.CategoryView
}

// CategoryResults ranks the competitors on m and returns one results list
// per category, each competitor appearing in every category it is eligible for.
func (s *Service) CategoryResults(ctx context.Context, m scoring.Metric, opts *order.Options, records []athlete.Record) ([]CategoryResult, error) {
	metric := m
	res, err := s.Rank(ctx, RankInput{Metric: &metric, Options: opts, Athletes: records})
	if err != nil {
		return nil, err
	}
	resolved := s.resolve(opts)

	groups := map[string]*CategoryResult{}
	var codes []string
	for _, v := range athlete.Views(res.Athletes) {
		c := v.Category()
		g, ok := groups[c.Code]
		if !ok {
			g = &CategoryResult{Category: *c}
			groups[c.Code] = g
			codes = append(codes, c.Code)
		}
		g.Athletes = append(g.Athletes, v)
	}

	out := make([]CategoryResult, 0, len(codes))
	for _, code := range codes {
		g := groups[code]
		sorted, err := order.Sort(g.Athletes, order.Request{Kind: order.Results, Metric: m}, resolved)
		if err != nil {
			return nil, err
		}
		g.Athletes = sorted
		out = append(out, *g)
	}
	slices.SortStableFunc(out, func(a, b CategoryResult) int {
		return compare.Category(a.Athletes[0], b.Athletes[0])
	})
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"passes":                  s.stats.passes,
		"rank_passes":             s.stats.rankPasses,
		"athletes":                s.stats.athletes,
		"precondition_violations": s.stats.preconditionViolations,
		"errors":                  s.stats.errors,
		"max_athletes":            s.maxAthletes,
		"derive_coefficients":     s.derive,
		"options":                 s.options,
	}
}

// MaxAthletes returns the per call cap.
func (s *Service) MaxAthletes() int { return s.maxAthletes }

// pass runs fn as one instrumented pass.
func (s *Service) pass(ctx context.Context, kind, metric string, n int, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := uuid.NewString()
	start := time.Now()
	err := fn()
	took := time.Since(start)

	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, compare.ErrPrecondition):
		outcome = metrics.OutcomePrecondition
	default:
		outcome = metrics.OutcomeError
	}
	s.recordPass(kind, metric, outcome, took, n)

	s.mu.Lock()
	s.stats.passes++
	if kind == "rank" {
		s.stats.rankPasses++
	}
	s.stats.athletes += n
	switch outcome {
	case metrics.OutcomePrecondition:
		s.stats.preconditionViolations++
	case metrics.OutcomeError:
		s.stats.errors++
	}
	s.mu.Unlock()

	fields := []logger.Field{
		logger.String("pass_id", id),
		logger.String("kind", kind),
		logger.String("metric", metric),
		logger.Int("athletes", n),
		logger.Duration("took", took),
	}
	switch outcome {
	case metrics.OutcomeOK:
		s.logger.Debug(ctx, "pass done", fields...)
	case metrics.OutcomePrecondition:
		s.logger.Warn(ctx, "comparator precondition violated", append(fields, logger.Error(err))...)
	default:
		s.logger.Error(ctx, "pass failed", append(fields, logger.Error(err))...)
	}
	return err
}

func (s *Service) recordPass(kind, metric, outcome string, took time.Duration, n int) {
	if s.metrics != nil {
		s.metrics.RecordPass(kind, metric, outcome, took, n)
		return
	}
	metrics.RecordPass(kind, metric, outcome, took, n)
}

func (s *Service) recordRanks(sum rank.Summary) {
	if s.metrics != nil {
		s.metrics.RecordRanks(sum.Metric.String(), sum.Ranked, sum.Unscored, sum.Ineligible)
		return
	}
	metrics.RecordRanks(sum.Metric.String(), sum.Ranked, sum.Unscored, sum.Ineligible)
}

func (s *Service) resolve(opts *order.Options) order.Options {
	if opts != nil {
		return *opts
	}
	return s.options
}

// athletes validates the posted records and builds competitors. Records
// without an id get a random one so that results orders stay strict.
func (s *Service) athletes(records []athlete.Record) ([]*athlete.Athlete, error) {
	if len(records) > s.maxAthletes {
		return nil, fmt.Errorf("%w: %d posted, at most %d accepted", ErrTooManyAthletes, len(records), s.maxAthletes)
	}
	list := make([]*athlete.Athlete, len(records))
	for i, rec := range records {
		list[i] = s.athlete(rec)
	}
	return list, nil
}

func (s *Service) athlete(rec athlete.Record) *athlete.Athlete {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if s.derive {
		rec = coefficient.Fill(rec, s.sinclair)
	}
	return athlete.New(rec)
}

// teamPointMetrics lists the metrics whose ranks make up the team points of m.
func teamPointMetrics(m scoring.Metric) []scoring.Metric {
	if m == scoring.SnatchCjTotal {
		return []scoring.Metric{scoring.Snatch, scoring.CleanJerk, scoring.Total}
	}
	return []scoring.Metric{m}
}

func requestMetric(r order.Request) string {
	switch r.Kind {
	case order.Results, order.TeamPoints:
		return r.Metric.String()
	default:
		return ""
	}
}

func orderable() []scoring.Metric {
	var out []scoring.Metric
	for _, m := range scoring.Metrics() {
		if m.Orderable() {
			out = append(out, m)
		}
	}
	return out
}
