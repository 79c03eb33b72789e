// Package reports reads batches of reports from JSON Lines files.
package reports

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/triage/pkg/triage/ingest"
)

// LoadFromJSONL loads reports from a JSONL file, one object per line. The
// path "-" reads standard input.
func LoadFromJSONL(path string, log *zap.Logger) ([]ingest.Report, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return Parse(data, path, log)
}

// Parse decodes JSONL data. Blank lines are ignored and malformed lines are
// logged and skipped. Reports without an id get their line number. name only
// labels log entries and errors.
func Parse(data []byte, name string, log *zap.Logger) ([]ingest.Report, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var out []ingest.Report
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var r ingest.Report
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			log.Warn("skipping malformed report",
				zap.String("file", name),
				zap.Int("line", i+1),
				zap.Error(err),
			)
			continue
		}
		if r.ID == "" {
			r.ID = strconv.Itoa(i + 1)
		}
		out = append(out, r)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid reports found in %s", name)
	}

	return out, nil
}

// StripHTML returns reports with HTML markup removed from both fields.
func StripHTML(in []ingest.Report) []ingest.Report {
	out := make([]ingest.Report, len(in))
	for i, r := range in {
		r.Title = ingest.StripHTML(r.Title)
		r.Description = ingest.StripHTML(r.Description)
		out[i] = r
	}
	return out
}
