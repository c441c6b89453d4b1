package batch

import "strings"

// ArgfileOptions controls the global flags rendered at the top of every
// payload body.
type ArgfileOptions struct {
	// OverwriteInPlace renders -overwrite_original so no _original backup
	// files are left behind.
	OverwriteInPlace bool
	// PreserveModTime renders -P to keep file modification times.
	PreserveModTime bool
}

// renderHeader produces the argfile lines shared by every task in a payload.
func renderHeader(opts ArgfileOptions) []string {
	lines := make([]string, 0, 6)
	if opts.OverwriteInPlace {
		lines = append(lines, "-overwrite_original")
	}
	if opts.PreserveModTime {
		lines = append(lines, "-P")
	}
	lines = append(lines,
		"-charset",
		"filename=utf8",
		"-charset",
		"utf8",
	)
	return lines
}

// renderTask produces the argfile lines for one write task: the tag
// assignments, the target path, and an -execute terminator so the tool
// applies each file as its own unit and reports per-unit results.
func renderTask(task Task) []string {
	lines := make([]string, 0, len(task.Assignments)+2)
	for _, assignment := range task.Assignments {
		lines = append(lines, "-"+assignment.Tag+"="+assignment.Value)
	}
	lines = append(lines, task.Path, "-execute")
	return lines
}

func renderBody(header []string, tasks []Task) []byte {
	var sb strings.Builder
	for _, line := range header {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	for _, task := range tasks {
		for _, line := range renderTask(task) {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return []byte(sb.String())
}

func taskSize(task Task) int {
	size := 0
	for _, line := range renderTask(task) {
		size += len(line) + 1
	}
	return size
}

func headerSize(header []string) int {
	size := 0
	for _, line := range header {
		size += len(line) + 1
	}
	return size
}
