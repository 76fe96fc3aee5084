// Package order composes the comparison primitives into the official
// orderings: lifting order, display, registration and start-number orders,
// results (winning) order per metric and team-points order.
package order

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/okian/liftrank/internal/domain/athlete"
	"github.com/okian/liftrank/internal/domain/compare"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// Kind selects an ordering family.
type Kind int

const (
	Lifting Kind = iota
	Display
	Registration
	StartNumber
	Results
	TeamPoints
)

var kindNames = map[Kind]string{
	Lifting:      "lifting",
	Display:      "display",
	Registration: "registration",
	StartNumber:  "start_number",
	Results:      "results",
	TeamPoints:   "team_points",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps an order name to a Kind.
func ParseKind(s string) (Kind, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k, name := range kindNames {
		if name == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Options are the competition settings that change the orderings. The host
// reads them from its configuration and passes them on every call.
type Options struct {
	RoundRobin              bool `json:"round_robin" koanf:"round_robin"`
	GenderOrder             bool `json:"gender_order" koanf:"gender_order"`
	FixedOrder              bool `json:"fixed_order" koanf:"fixed_order"`
	OldBodyWeightTieBreak   bool `json:"old_body_weight_tiebreak" koanf:"old_body_weight_tiebreak"`
	Masters                 bool `json:"masters" koanf:"masters"`
	DisplayByAgeGroup       bool `json:"display_by_age_group" koanf:"display_by_age_group"`
	UseRegistrationCategory bool `json:"use_registration_category" koanf:"use_registration_category"`
}

// Request names the ordering to apply. Metric is used by Results and
// TeamPoints; IgnoreCategories flattens a category-tiered results order.
type Request struct {
	Kind             Kind
	Metric           scoring.Metric
	IgnoreCategories bool
}

func (r Request) String() string {
	switch r.Kind {
	case Results:
		if r.IgnoreCategories {
			return fmt.Sprintf("%s(%s,flat)", r.Kind, r.Metric)
		}
		return fmt.Sprintf("%s(%s)", r.Kind, r.Metric)
	case TeamPoints:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Metric)
	default:
		return r.Kind.String()
	}
}

// Specification is an immutable, named comparator chain.
type Specification struct {
	name  string
	chain compare.Chain
}

// Name identifies the specification in logs and explanations.
func (s *Specification) Name() string { return s.name }

// Steps returns the step names in evaluation order.
func (s *Specification) Steps() []string { return s.chain.Names() }

// Compare orders a against b.
func (s *Specification) Compare(a, b athlete.Snapshot) (int, error) {
	return s.chain.Compare(a, b)
}

// Explain reports the step that separates a and b.
func (s *Specification) Explain(a, b athlete.Snapshot) (compare.Decision, error) {
	return s.chain.Explain(a, b)
}

type cacheKey struct {
	req  Request
	opts Options
}

// specs holds built specifications; they are immutable and safe to share.
var specs sync.Map

// For returns the specification for req under opts.
func For(req Request, opts Options) (*Specification, error) {
	key := cacheKey{req: req, opts: opts}
	if s, ok := specs.Load(key); ok {
		return s.(*Specification), nil
	}
	s, err := build(req, opts)
	if err != nil {
		return nil, err
	}
	actual, _ := specs.LoadOrStore(key, s)
	return actual.(*Specification), nil
}

func build(req Request, opts Options) (*Specification, error) {
	switch req.Kind {
	case Lifting:
		return LiftingOrder(opts), nil
	case Display:
		return DisplayOrder(opts), nil
	case Registration:
		return RegistrationOrder(opts), nil
	case StartNumber:
		return StartNumberOrder(), nil
	case Results:
		return ResultsOrder(req.Metric, req.IgnoreCategories, opts)
	case TeamPoints:
		return TeamPointsOrder(req.Metric, opts), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(req.Kind))
	}
}

// Sort returns a sorted copy of list. The input slice is not modified.
func Sort[S ~[]E, E athlete.Snapshot](list S, req Request, opts Options) (S, error) {
	spec, err := For(req, opts)
	if err != nil {
		return nil, err
	}
	return SortWith(spec, list)
}

// SortWith sorts a copy of list by spec. A precondition error raised by any
// comparison is returned and the partial order is discarded.
func SortWith[S ~[]E, E athlete.Snapshot](spec *Specification, list S) (S, error) {
	out := slices.Clone(list)
	var firstErr error
	slices.SortStableFunc(out, func(a, b E) int {
		r, err := spec.Compare(a, b)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return r
	})
	if firstErr != nil {
		return nil, fmt.Errorf("sort %s: %w", spec.name, firstErr)
	}
	return out, nil
}
