package services

import (
	"io"
	"log/slog"
	"time"

	"eventcatalog/internal/query"
	"eventcatalog/internal/validation"
)

// TransitionRecorder observes successful status changes.
type TransitionRecorder interface {
	RecordTransition(resource, status string)
}

type noopRecorder struct{}

func (noopRecorder) RecordTransition(string, string) {}

type options struct {
	now         func() time.Time
	logger      *slog.Logger
	recorder    TransitionRecorder
	validator   *validation.Validator
	maxPageSize int
}

// Option configures a lifecycle service.
type Option func(*options)

// WithClock replaces time.Now, e.g. for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTransitionRecorder reports status changes to r (typically Prometheus metrics).
func WithTransitionRecorder(r TransitionRecorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithMaxPageSize sets the ceiling page sizes are clamped to.
func WithMaxPageSize(n int) Option {
	return func(o *options) { o.maxPageSize = n }
}

func buildOptions(opts []Option) options {
	o := options{
		now:         time.Now,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:    noopRecorder{},
		validator:   validation.New(),
		maxPageSize: query.DefaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
