package testsupport

import (
	"path/filepath"
	"testing"

	"filmtag/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithExifToolBinary overrides the exiftool binary on the test config.
func WithExifToolBinary(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.ExifTool.Binary = path
	}
}

// WithStrategy sets the match strategy on the test config.
func WithStrategy(strategy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Match.Strategy = strategy
	}
}

// WithShards sets the shard count on the test config.
func WithShards(shards int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Batch.Shards = shards
	}
}
