package engine

import (
	"sort"
	"sync"
)

// collector merges per-payload outcomes into a run-wide view. Entries are
// keyed by photo path, so recording the same path twice replaces the
// earlier entry instead of double-counting it. Workers call it
// concurrently.
type collector struct {
	mu    sync.Mutex
	byKey map[string]TaskOutcome
	order []string
}

func newCollector() *collector {
	return &collector{byKey: make(map[string]TaskOutcome)}
}

func (c *collector) record(outcome TaskOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, seen := c.byKey[outcome.Path]; !seen {
		c.order = append(c.order, outcome.Path)
	}
	c.byKey[outcome.Path] = outcome
}

func (c *collector) recordAll(outcomes []TaskOutcome) {
	for _, outcome := range outcomes {
		c.record(outcome)
	}
}

// snapshot returns the merged outcomes sorted by path for stable output.
func (c *collector) snapshot() []TaskOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	paths := make([]string, len(c.order))
	copy(paths, c.order)
	sort.Strings(paths)
	tasks := make([]TaskOutcome, 0, len(paths))
	for _, path := range paths {
		tasks = append(tasks, c.byKey[path])
	}
	return tasks
}
