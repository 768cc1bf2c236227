package types

import (
	"encoding/json"
)

// RunStats holds the counters of one run. Moved counts planned moves when
// DryRun is set.
type RunStats struct {
	RunID   string
	DryRun  bool
	Moved   int
	Skipped int
	Removed int
	Errors  int
}

// Record folds one file result into the counters
func (s *RunStats) Record(r FileResult) {
	switch {
	case r.Failed():
		s.Errors++
	case r.Plan.Action == ActionSkip:
		s.Skipped++
	case r.Plan.Action == ActionMove:
		s.Moved++
	}
}

// Processed is the number of files the run looked at
func (s RunStats) Processed() int {
	return s.Moved + s.Skipped + s.Errors
}

// MovedLabel is "planned" for dry runs and "moved" otherwise
func (s RunStats) MovedLabel() string {
	if s.DryRun {
		return "planned"
	}
	return "moved"
}

// MarshalJSON reports the move counter as "planned" under dry-run
func (s RunStats) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		s.MovedLabel(): s.Moved,
		"skipped":      s.Skipped,
		"removed":      s.Removed,
		"errors":       s.Errors,
		"dryRun":       s.DryRun,
	}
	if s.RunID != "" {
		out["runId"] = s.RunID
	}
	return json.Marshal(out)
}
