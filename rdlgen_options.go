package rdlgen

import (
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/rdlgen/parser"
	"github.com/deepnoodle-ai/rdlgen/rdl"
	"github.com/deepnoodle-ai/rdlgen/sandbox"
)

type config struct {
	logger   zerolog.Logger
	rules    []sandbox.RuleSet
	maxDepth int
	docOpts  []rdl.Option
}

func newConfig(opts ...Option) config {
	cfg := config{
		logger:   zerolog.Nop(),
		maxDepth: parser.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a conversion.
type Option func(*config)

// WithLogger supplies a logger for conversion diagnostics. Conversion is
// silent by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithRules replaces the default sandbox rule sets.
func WithRules(rules ...sandbox.RuleSet) Option {
	return func(cfg *config) {
		cfg.rules = rules
	}
}

// WithMaxDepth bounds expression nesting during parsing.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithDataSet requests a named data set in the synthesized document.
func WithDataSet(name string) Option {
	return func(cfg *config) {
		cfg.docOpts = append(cfg.docOpts, rdl.WithDataSet(name))
	}
}

// WithPageSize sets the page size of the synthesized document.
func WithPageSize(width, height rdl.Inches) Option {
	return func(cfg *config) {
		cfg.docOpts = append(cfg.docOpts, rdl.WithPageSize(width, height))
	}
}

// WithMargins sets the page margins of the synthesized document.
func WithMargins(left, right, top, bottom rdl.Inches) Option {
	return func(cfg *config) {
		cfg.docOpts = append(cfg.docOpts, rdl.WithMargins(left, right, top, bottom))
	}
}
