package exiftool

import (
	"regexp"
	"strings"
	"sync"
)

// FileResult is the outcome of a single -execute unit within a payload.
type FileResult struct {
	Updated bool
	Detail  string
}

var (
	updatedPattern = regexp.MustCompile(`^\s*\d+ (?:image|output) files? (?:updated|created)$`)
	skippedPattern = regexp.MustCompile(`^\s*(\d+) files? weren't updated due to errors$`)
	errorPattern   = regexp.MustCompile(`^Error:\s*(.+)$`)
)

// applyParser folds exiftool output lines into per-execute results. The
// argfile issues one -execute per file, so each execute unit ends with
// exactly one summary line: either an "updated" count or a "weren't
// updated due to errors" count. Error detail lines precede the summary
// of the unit they belong to; the executor delivers both streams as one
// ordered sequence, and the mutex keeps feed safe for any executor that
// does not.
type applyParser struct {
	mu      sync.Mutex
	done    []FileResult
	pending []string
}

func newApplyParser() *applyParser {
	return &applyParser{}
}

func (p *applyParser) feed(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if m := errorPattern.FindStringSubmatch(trimmed); m != nil {
		p.pending = append(p.pending, strings.TrimSpace(m[1]))
		return
	}
	if strings.HasPrefix(trimmed, "Warning:") {
		return
	}
	if updatedPattern.MatchString(trimmed) {
		p.done = append(p.done, FileResult{Updated: true})
		p.pending = nil
		return
	}
	if skippedPattern.MatchString(trimmed) {
		detail := strings.Join(p.pending, "; ")
		if detail == "" {
			detail = "not updated"
		}
		p.done = append(p.done, FileResult{Updated: false, Detail: detail})
		p.pending = nil
		return
	}
}

func (p *applyParser) results() []FileResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
