package types

// RuleEntry is one extension to folder rule as shown to users
type RuleEntry struct {
	Extension string `json:"extension"`
	Folder    string `json:"folder"`
}

// RuleListing is the result of the rules command
type RuleListing struct {
	// Sources describes where the rules came from, lowest priority first
	Sources  []string    `json:"sources"`
	Rules    []RuleEntry `json:"rules"`
	Fallback string      `json:"fallback"`
}

// FileOutcome is the printable form of a FileResult
type FileOutcome struct {
	Source string `json:"source"`
	Target string `json:"target,omitempty"`
	Action Action `json:"action,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewFileOutcome converts a file result for display
func NewFileOutcome(r FileResult) FileOutcome {
	out := FileOutcome{
		Source: r.Path,
		Target: r.Plan.TargetPath,
		Action: r.Plan.Action,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// RunReport is the result of an organize run
type RunReport struct {
	Source string        `json:"source"`
	Dest   string        `json:"dest"`
	Stats  RunStats      `json:"stats"`
	Files  []FileOutcome `json:"files,omitempty"`
}

// Failures returns the outcomes that carry an error
func (r *RunReport) Failures() []FileOutcome {
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Error != "" {
			out = append(out, f)
		}
	}
	return out
}
