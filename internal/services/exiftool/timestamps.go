package exiftool

import (
	"context"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"filmtag/internal/services"
)

const exifTimestampLayout = "2006:01:02 15:04:05"

// ReadTimestamps extracts capture timestamps for the given files using a
// single batched -json invocation. Files without a usable timestamp are
// absent from the returned map.
func (c *Client) ReadTimestamps(ctx context.Context, paths []string) (map[string]time.Time, error) {
	if len(paths) == 0 {
		return map[string]time.Time{}, nil
	}

	args := []string{"-json", "-fast2", "-DateTimeOriginal", "-CreateDate"}
	args = append(args, paths...)

	var out strings.Builder
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		out.WriteString(line)
		out.WriteString("\n")
	})
	if ctx.Err() != nil {
		return nil, services.Wrap(services.ErrTimeout, "scan", "read-timestamps", "deadline exceeded", ctx.Err())
	}

	parsed := gjson.Parse(out.String())
	if !parsed.IsArray() {
		if err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "scan", "read-timestamps", "tool failed", err)
		}
		return nil, services.Wrap(services.ErrExternalTool, "scan", "read-timestamps", "unparseable json output", nil)
	}

	stamps := make(map[string]time.Time, len(paths))
	parsed.ForEach(func(_, entry gjson.Result) bool {
		source := entry.Get("SourceFile").String()
		if source == "" {
			return true
		}
		for _, tag := range []string{"DateTimeOriginal", "CreateDate"} {
			raw := strings.TrimSpace(entry.Get(tag).String())
			if raw == "" {
				continue
			}
			if ts, perr := time.ParseInLocation(exifTimestampLayout, raw, time.Local); perr == nil {
				stamps[source] = ts
				break
			}
		}
		return true
	})
	return stamps, nil
}
