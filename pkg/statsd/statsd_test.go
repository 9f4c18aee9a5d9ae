package statsd

import (
	"testing"
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests below touch the process-wide client, so they don't run in parallel.

func TestLoadConfig(t *testing.T) {
	t.Setenv("STATSD_ADDRESS", "localhost:8125")
	t.Setenv("STATSD_TAGS", "env:dev, service:bench")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8125", cfg.Address)
	assert.Equal(t, []string{"env:dev", "service:bench"}, cfg.Tags)
}

func TestInit(t *testing.T) {
	err := Init(Config{})
	require.Error(t, err)
	assert.IsType(t, &ddstatsd.NoOpClient{}, Client())

	// UDP clients don't dial a listener, so any well-formed address works.
	require.NoError(t, Init(Config{Address: "127.0.0.1:8125", Tags: []string{"env:test"}}))
	assert.NotNil(t, Client())
	EmitPlaybackStat(time.Now(), PlaybackStat{Variant: "apply", Records: 10, Pages: 1})

	require.NoError(t, Close())
	assert.IsType(t, &ddstatsd.NoOpClient{}, Client())
}
