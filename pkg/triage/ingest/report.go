package ingest

import (
	"fmt"
	"strings"

	"github.com/cognicore/triage/pkg/triage/internalerr"
)

// Report is a free-text submission awaiting analysis.
type Report struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks that the report carries some text. The analysis engine
// accepts empty reports and falls back to defaults, so callers that want to
// reject them do it here, before analyzing.
func (r Report) Validate() error {
	if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("title or description required: %w", internalerr.ErrInvalidInput)
	}
	return nil
}
