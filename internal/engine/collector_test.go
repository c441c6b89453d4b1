package engine

import (
	"sync"
	"testing"
)

func TestCollectorIdempotentMerge(t *testing.T) {
	t.Parallel()
	c := newCollector()
	c.record(TaskOutcome{Path: "a.jpg", Status: StatusFailed, Detail: "transient"})
	c.record(TaskOutcome{Path: "b.jpg", Status: StatusApplied})
	c.record(TaskOutcome{Path: "a.jpg", Status: StatusApplied, Retries: 1})

	tasks := c.snapshot()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tasks))
	}
	if tasks[0].Path != "a.jpg" || tasks[0].Status != StatusApplied || tasks[0].Retries != 1 {
		t.Fatalf("re-recorded entry not replaced: %+v", tasks[0])
	}
}

func TestCollectorSnapshotSorted(t *testing.T) {
	t.Parallel()
	c := newCollector()
	c.recordAll([]TaskOutcome{
		{Path: "c.jpg", Status: StatusApplied},
		{Path: "a.jpg", Status: StatusApplied},
		{Path: "b.jpg", Status: StatusApplied},
	})
	tasks := c.snapshot()
	for i, want := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if tasks[i].Path != want {
			t.Fatalf("snapshot[%d] = %s, want %s", i, tasks[i].Path, want)
		}
	}
}

func TestCollectorConcurrentRecords(t *testing.T) {
	t.Parallel()
	c := newCollector()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.recordAll([]TaskOutcome{
				{Path: "a.jpg", Status: StatusApplied},
				{Path: "b.jpg", Status: StatusApplied},
			})
		}()
	}
	wg.Wait()
	if got := len(c.snapshot()); got != 2 {
		t.Fatalf("expected 2 unique entries, got %d", got)
	}
}
