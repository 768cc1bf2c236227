package types

// OrganizeRequest carries the validated inputs of one run. It is built once
// and not mutated afterwards.
type OrganizeRequest struct {
	Source      string
	DestRoot    string
	Recursive   bool
	DryRun      bool
	CleanSource bool
}

// NewOrganizeRequest builds a request, defaulting the destination root to
// the source directory when dest is empty.
func NewOrganizeRequest(source, dest string, recursive, dryRun, cleanSource bool) OrganizeRequest {
	if dest == "" {
		dest = source
	}
	return OrganizeRequest{
		Source:      source,
		DestRoot:    dest,
		Recursive:   recursive,
		DryRun:      dryRun,
		CleanSource: cleanSource,
	}
}

// Dest returns the destination root, falling back to Source
func (r OrganizeRequest) Dest() string {
	if r.DestRoot == "" {
		return r.Source
	}
	return r.DestRoot
}
