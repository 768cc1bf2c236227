package types

// Action is what the engine does with one file
type Action string

const (
	// ActionMove relocates the file to MovePlan.TargetPath
	ActionMove Action = "move"
	// ActionSkip leaves a file that already sits in its target folder
	ActionSkip Action = "skip"
)

// MovePlan is the planner's decision for a single file
type MovePlan struct {
	SourcePath string `json:"source"`
	TargetDir  string `json:"targetDir"`
	// TargetPath differs from TargetDir/<name> when a collision was resolved
	TargetPath string `json:"target"`
	Action     Action `json:"action"`
}

// FileResult is the outcome of processing one file. Err is set when the
// file could not be planned or moved; Plan may then be partially filled.
type FileResult struct {
	Path string
	Plan MovePlan
	Err  error
}

// Failed reports whether processing the file failed
func (r FileResult) Failed() bool {
	return r.Err != nil
}
