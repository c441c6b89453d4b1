package batch

import (
	"fmt"

	"filmtag/internal/services"
)

// Payload is one externally-dispatchable instruction unit: the rendered
// argfile body plus the tasks it covers, in body order, so subprocess
// results can be reconciled back to files.
type Payload struct {
	ID    string
	Shard int
	Tasks []Task
	Body  []byte
}

// Plan is an ordered set of payloads covering the input task set exactly.
type Plan struct {
	Payloads  []Payload
	TaskCount int
}

// Options tunes payload sizing and sharding.
type Options struct {
	// MaxTasks caps the task count of one payload.
	MaxTasks int
	// MaxBytes caps the rendered body size of one payload. A single task
	// larger than the cap still ships alone rather than being dropped.
	MaxBytes int
	// Shards spreads tasks round-robin across this many concurrent lanes.
	Shards  int
	Argfile ArgfileOptions
}

// BuildPlan partitions tasks into payloads. Every input task lands in
// exactly one payload and order is preserved within each shard.
func BuildPlan(tasks []Task, opts Options) (*Plan, error) {
	if opts.MaxTasks <= 0 {
		return nil, services.Wrap(services.ErrValidation, "plan", "sizing", "max payload tasks must be positive", nil)
	}
	if opts.MaxBytes <= 0 {
		return nil, services.Wrap(services.ErrValidation, "plan", "sizing", "max payload bytes must be positive", nil)
	}
	if opts.Shards < 1 {
		return nil, services.Wrap(services.ErrValidation, "plan", "sharding", "shard count must be at least 1", nil)
	}

	header := renderHeader(opts.Argfile)
	baseSize := headerSize(header)

	shards := make([][]Task, opts.Shards)
	for i, task := range tasks {
		lane := i % opts.Shards
		shards[lane] = append(shards[lane], task)
	}

	plan := &Plan{TaskCount: len(tasks)}
	for lane, laneTasks := range shards {
		var current []Task
		currentSize := baseSize
		sequence := 0

		flush := func() {
			if len(current) == 0 {
				return
			}
			plan.Payloads = append(plan.Payloads, Payload{
				ID:    fmt.Sprintf("s%d-%02d", lane, sequence),
				Shard: lane,
				Tasks: current,
				Body:  renderBody(header, current),
			})
			sequence++
			current = nil
			currentSize = baseSize
		}

		for _, task := range laneTasks {
			size := taskSize(task)
			if len(current) > 0 && (len(current)+1 > opts.MaxTasks || currentSize+size > opts.MaxBytes) {
				flush()
			}
			current = append(current, task)
			currentSize += size
		}
		flush()
	}

	return plan, nil
}
