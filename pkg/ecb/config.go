package ecb

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

// Config holds the environment configuration of command buffers.
type Config struct {
	// What apply playback does with destroyed targets ("drop", "throw", "substitute").
	Policy Policy `env:"ECB_DESTROYED_TARGET_POLICY" envDefault:"drop"`

	// Number of recording shards. 0 means one per logical CPU.
	Shards int `env:"ECB_SHARDS" envDefault:"0"`

	// Records per allocation block of each shard.
	BlockRecords int `env:"ECB_BLOCK_RECORDS" envDefault:"1024"`

	// Number of workers copying page runs during write-back.
	WriteBackWorkers int `env:"ECB_WRITEBACK_WORKERS" envDefault:"1"`
}

// LoadConfig loads the command buffer configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse command buffer config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate command buffer config")
	}

	return cfg, nil
}

// validate performs validation on the loaded configuration.
func (cfg *Config) validate() error {
	if cfg.Policy > PolicySubstitute {
		return eris.Errorf("invalid destroyed target policy: %d", cfg.Policy)
	}
	if cfg.Shards < 0 {
		return eris.New("shard count cannot be negative")
	}
	if cfg.BlockRecords <= 0 {
		return eris.New("block records must be positive")
	}
	if cfg.WriteBackWorkers <= 0 {
		return eris.New("write-back workers must be positive")
	}
	return nil
}

// applyToOptions applies the configuration values to the given options.
func (cfg *Config) applyToOptions(opt *options) {
	opt.policy = cfg.Policy
	opt.shards = cfg.Shards
	opt.blockRecords = cfg.BlockRecords
	opt.writeBackWorkers = cfg.WriteBackWorkers
}
