package history

import "time"

const (
	OutcomeSuccess = "success"

	// OutcomeWarning is recorded when the run finished but skipped or
	// missed files.
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// Run is one recorded convert or deploy invocation.
type Run struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Command    string    `json:"command"`
	SourceDir  string    `json:"source_dir,omitempty"`
	OutputDir  string    `json:"output_dir,omitempty"`
	Converted  int       `json:"converted"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Entries    int       `json:"entries"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	DurationMs int64     `json:"duration_ms"`
}
