package config

const (
	defaultStateDir         = "~/.local/share/filmtag"
	defaultLogDir           = "~/.local/share/filmtag/logs"
	defaultExifToolBinary   = "exiftool"
	defaultPayloadTimeout   = 120
	defaultRetries          = 3
	defaultRetryBackoffMS   = 500
	defaultMaxPayloadTasks  = 100
	defaultMaxPayloadBytes  = 256 * 1024
	defaultShards           = 1
	defaultStrategy         = "sequence"
	defaultToleranceMinutes = 5
	defaultHybridThreshold  = 0.5
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		ExifTool: ExifTool{
			Binary:           defaultExifToolBinary,
			PayloadTimeout:   defaultPayloadTimeout,
			Retries:          defaultRetries,
			RetryBackoffMS:   defaultRetryBackoffMS,
			PreserveModTime:  true,
			OverwriteInPlace: true,
		},
		Engine: Engine{
			Concurrency: 0, // 0 means match available processing units
		},
		Batch: Batch{
			MaxPayloadTasks: defaultMaxPayloadTasks,
			MaxPayloadBytes: defaultMaxPayloadBytes,
			Shards:          defaultShards,
		},
		Match: Match{
			Strategy:         defaultStrategy,
			ToleranceMinutes: defaultToleranceMinutes,
			HybridThreshold:  defaultHybridThreshold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
