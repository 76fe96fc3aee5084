// Package compare holds the single-criterion comparators used to build the
// official orderings, and the Chain type that composes them.
//
// Every comparator returns a negative number when a sorts before b, zero when
// they are equal on that criterion and a positive number otherwise. All of
// them are total: missing values follow a fixed null policy instead of failing.
package compare

import (
	"cmp"
	"time"

	"github.com/okian/liftrank/internal/domain/athlete"
)

// Func compares two competitors on one criterion.
type Func func(a, b athlete.Snapshot) int

// CheckedFunc is a comparator with a precondition it can report as an error.
type CheckedFunc func(a, b athlete.Snapshot) (int, error)

// Direction of a value comparison.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// NullPolicy places missing values regardless of Direction.
type NullPolicy int

const (
	NullsLast NullPolicy = iota
	NullsFirst
)

// Step is one named link of a Chain.
type Step struct {
	Name string
	Fn   CheckedFunc
}

// By lifts a total comparator into a Step.
func By(name string, fn Func) Step {
	return Step{Name: name, Fn: func(a, b athlete.Snapshot) (int, error) { return fn(a, b), nil }}
}

// Checked wraps a comparator that can fail its precondition.
func Checked(name string, fn CheckedFunc) Step {
	return Step{Name: name, Fn: fn}
}

// Reversed flips the result of s.
func Reversed(s Step) Step {
	return Step{Name: "-" + s.Name, Fn: func(a, b athlete.Snapshot) (int, error) {
		c, err := s.Fn(a, b)
		return -c, err
	}}
}

// Chain evaluates steps in order until one of them is not equal.
type Chain []Step

// Compare runs the chain. The first precondition error stops the evaluation.
func (c Chain) Compare(a, b athlete.Snapshot) (int, error) {
	for _, s := range c {
		r, err := s.Fn(a, b)
		if err != nil {
			return 0, err
		}
		if r != 0 {
			return r, nil
		}
	}
	return 0, nil
}

// Decision tells which step separated two competitors.
// Step is empty when the chain found them equal.
type Decision struct {
	Step   string `json:"step"`
	Result int    `json:"result"`
}

// Explain is Compare that also reports the deciding step.
func (c Chain) Explain(a, b athlete.Snapshot) (Decision, error) {
	for _, s := range c {
		r, err := s.Fn(a, b)
		if err != nil {
			return Decision{Step: s.Name}, err
		}
		if r != 0 {
			return Decision{Step: s.Name, Result: sign(r)}, nil
		}
	}
	return Decision{}, nil
}

// Names lists the step names in evaluation order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// Ints builds a comparator over an optional integer field.
func Ints(extract func(athlete.Snapshot) (int, bool), dir Direction, nulls NullPolicy) Func {
	return func(a, b athlete.Snapshot) int {
		x, okA := extract(a)
		y, okB := extract(b)
		return ordered(x, okA, y, okB, dir, nulls)
	}
}

// Floats builds a comparator over an optional float field.
func Floats(extract func(athlete.Snapshot) (float64, bool), dir Direction, nulls NullPolicy) Func {
	return func(a, b athlete.Snapshot) int {
		x, okA := extract(a)
		y, okB := extract(b)
		return ordered(x, okA, y, okB, dir, nulls)
	}
}

// Strings builds a comparator over an optional string field.
func Strings(extract func(athlete.Snapshot) (string, bool), dir Direction, nulls NullPolicy) Func {
	return func(a, b athlete.Snapshot) int {
		x, okA := extract(a)
		y, okB := extract(b)
		return ordered(x, okA, y, okB, dir, nulls)
	}
}

// Times builds a comparator over an optional timestamp.
func Times(extract func(athlete.Snapshot) (time.Time, bool), dir Direction, nulls NullPolicy) Func {
	return func(a, b athlete.Snapshot) int {
		x, okA := extract(a)
		y, okB := extract(b)
		if r, done := nullOrder(okA, okB, nulls); done {
			return r
		}
		return directed(x.Compare(y), dir)
	}
}

func ordered[T cmp.Ordered](x T, okA bool, y T, okB bool, dir Direction, nulls NullPolicy) int {
	if r, done := nullOrder(okA, okB, nulls); done {
		return r
	}
	return directed(cmp.Compare(x, y), dir)
}

// nullOrder resolves the comparison when at least one value is missing.
func nullOrder(okA, okB bool, nulls NullPolicy) (int, bool) {
	switch {
	case okA && okB:
		return 0, false
	case !okA && !okB:
		return 0, true
	case !okA:
		if nulls == NullsFirst {
			return -1, true
		}
		return 1, true
	default:
		if nulls == NullsFirst {
			return 1, true
		}
		return -1, true
	}
}

func directed(r int, dir Direction) int {
	if dir == Descending {
		return -r
	}
	return r
}

func sign(r int) int {
	switch {
	case r < 0:
		return -1
	case r > 0:
		return 1
	default:
		return 0
	}
}
