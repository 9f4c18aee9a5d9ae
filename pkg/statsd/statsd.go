// Package statsd is a helper package that wraps the statsd methods command buffers use.
// It hides the datadog dependency so if we decide to migrate away from datadog in the future, we only
// need to edit this package.
package statsd

import (
	"strings"
	"sync"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const namespace = "ecb."

var (
	mu     sync.RWMutex                                      //nolint:gochecknoglobals // guards client
	client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{} //nolint:gochecknoglobals // process-wide client
)

// Config holds the statsd configuration.
type Config struct {
	// Address of the statsd agent, e.g. "localhost:8125". Empty disables metrics.
	Address string `env:"STATSD_ADDRESS"`

	// Tags added to every metric, e.g. "env:dev,service:bench".
	Tags []string `env:"STATSD_TAGS" envSeparator:","`
}

// LoadConfig loads the statsd configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse statsd config")
	}
	for i, tag := range cfg.Tags {
		cfg.Tags[i] = strings.TrimSpace(tag)
	}
	return cfg, nil
}

// Client returns the process-wide client. It is a no-op client until Init succeeds.
func Client() ddstatsd.ClientInterface {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Init replaces the process-wide client with one sending to cfg.Address.
func Init(cfg Config) error {
	if cfg.Address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace(namespace),
	}
	if len(cfg.Tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(cfg.Tags))
	}

	newClient, err := ddstatsd.New(cfg.Address, opts...)
	if err != nil {
		return eris.Wrap(err, "failed to create statsd client")
	}

	mu.Lock()
	defer mu.Unlock()
	// Success! replace the global client
	client = newClient
	return nil
}

// Close flushes and closes the process-wide client and puts the no-op client back.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := client.Close()
	client = &ddstatsd.NoOpClient{}
	if err != nil {
		return eris.Wrap(err, "failed to close statsd client")
	}
	return nil
}

// PlaybackStat is what a single playback reports.
type PlaybackStat struct {
	Variant string
	Records int
	Dropped int
	Pages   int
}

// EmitPlaybackStat reports the duration and volume of a playback that started at start.
func EmitPlaybackStat(start time.Time, stat PlaybackStat) {
	c := Client()
	tags := []string{"variant:" + stat.Variant}
	if err := c.Timing("playback", time.Since(start), tags, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit playback stat")
	}
	if err := c.Count("records", int64(stat.Records), tags, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit records stat")
	}
	if err := c.Count("dropped", int64(stat.Dropped), tags, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit dropped stat")
	}
	if err := c.Histogram("pages", float64(stat.Pages), tags, 1); err != nil {
		log.Logger.Warn().Err(err).Msg("failed to emit pages stat")
	}
}
