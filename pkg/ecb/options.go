package ecb

import (
	"github.com/argus-labs/ecb/pkg/jobs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/argus-labs/ecb/pkg/ecb"

type options struct {
	policy           Policy
	shards           int
	blockRecords     int
	writeBackWorkers int
	logger           zerolog.Logger
	tracer           trace.Tracer
}

func newDefaultOptions() options {
	return options{
		policy:           PolicyDrop,
		shards:           0,
		blockRecords:     1024,
		writeBackWorkers: 1,
		logger:           log.Logger.With().Str("component", "ecb").Logger(),
		tracer:           otel.Tracer(tracerName),
	}
}

// Option configures a command buffer.
type Option func(*options)

// WithPolicy sets what apply playback does with destroyed targets. Instantiate buffers ignore it.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithShards sets the number of recording shards, i.e. the number of distinct worker indices the
// parallel writer accepts. Zero or less means one per logical CPU.
func WithShards(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

// WithBlockRecords sets how many records each allocation block holds.
func WithBlockRecords(n int) Option {
	return func(o *options) {
		o.blockRecords = n
	}
}

// WithWriteBackWorkers sets how many workers copy page runs during playback. Values above 1 copy
// disjoint pages in parallel.
func WithWriteBackWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.writeBackWorkers = n
		}
	}
}

// WithLogger sets the logger. A buffer_id field is added to it.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer sets the tracer used for playback spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithConfig applies a loaded Config. Options after it override its values.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		cfg.applyToOptions(o)
	}
}

func (o *options) shardCount() int {
	return jobs.Workers(o.shards)
}
