package preflight

import (
	"context"

	"filmtag/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minStateDirBytes is the free-space floor for the state directory;
// argfiles and the run journal are small, so 64 MiB is generous.
const minStateDirBytes = 64 << 20

// RunAll executes all preflight checks for the given config.
func RunAll(_ context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDiskSpace("State directory space", cfg.Paths.StateDir, minStateDirBytes),
		CheckExifTool(cfg.ExifToolBinary()),
	}
}

// Passed reports whether every check succeeded.
func Passed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return len(results) > 0
}
