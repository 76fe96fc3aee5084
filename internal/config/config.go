// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"

	"github.com/okian/liftrank/internal/domain/coefficient"
	"github.com/okian/liftrank/internal/domain/order"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: json or text.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxAthletes caps the number of competitors accepted in one request.
	MaxAthletes int `koanf:"max_athletes"`

	// Competition rules that change the orderings.
	RoundRobin              bool `koanf:"round_robin"`
	GenderOrder             bool `koanf:"gender_order"`
	FixedOrder              bool `koanf:"fixed_order"`
	OldBodyWeightTieBreak   bool `koanf:"old_body_weight_tiebreak"`
	Masters                 bool `koanf:"masters"`
	DisplayByAgeGroup       bool `koanf:"display_by_age_group"`
	UseRegistrationCategory bool `koanf:"use_registration_category"`

	// DeriveCoefficients computes Sinclair and Robi scores for athletes
	// posted without them.
	DeriveCoefficients bool `koanf:"derive_coefficients"`

	// Sinclair coefficients per gender.
	SinclairMenA   float64 `koanf:"sinclair_men_a"`
	SinclairMenB   float64 `koanf:"sinclair_men_b"`
	SinclairWomenA float64 `koanf:"sinclair_women_a"`
	SinclairWomenB float64 `koanf:"sinclair_women_b"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	s := coefficient.DefaultSinclair()
	return &Config{
		LogLevel:           "info",
		LogFormat:          "json",
		Addr:               ":9080",
		MaxAthletes:        500,
		DeriveCoefficients: true,
		SinclairMenA:       s.Men.A,
		SinclairMenB:       s.Men.B,
		SinclairWomenA:     s.Women.A,
		SinclairWomenB:     s.Women.B,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxAthletes <= 0:
		return fmt.Errorf("%w: max_athletes must be positive, got %d", ErrInvalidConfig, c.MaxAthletes)
	case c.LogFormat != "json" && c.LogFormat != "text":
		return fmt.Errorf("%w: log_format must be json or text, got %q", ErrInvalidConfig, c.LogFormat)
	case c.SinclairMenA <= 0 || c.SinclairMenB <= 0 || c.SinclairWomenA <= 0 || c.SinclairWomenB <= 0:
		return fmt.Errorf("%w: sinclair coefficients must be positive", ErrInvalidConfig)
	}
	return nil
}

// OrderOptions returns the competition rules passed to every ordering.
func (c *Config) OrderOptions() order.Options {
	return order.Options{
		RoundRobin:              c.RoundRobin,
		GenderOrder:             c.GenderOrder,
		FixedOrder:              c.FixedOrder,
		OldBodyWeightTieBreak:   c.OldBodyWeightTieBreak,
		Masters:                 c.Masters,
		DisplayByAgeGroup:       c.DisplayByAgeGroup,
		UseRegistrationCategory: c.UseRegistrationCategory,
	}
}

// Sinclair returns the configured coefficients.
func (c *Config) Sinclair() coefficient.Sinclair {
	return coefficient.Sinclair{
		Men:   coefficient.SinclairParams{A: c.SinclairMenA, B: c.SinclairMenB},
		Women: coefficient.SinclairParams{A: c.SinclairWomenA, B: c.SinclairWomenB},
	}
}
