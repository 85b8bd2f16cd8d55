package parsing

// Drop reasons recorded in a Report.
const (
	ReasonNoCandidates   = "no candidate entries matched"
	ReasonInvalidVoteFor = "vote-for count below 1"
)

// Report collects what the parser silently skipped for one document. It never affects output.
type Report struct {
	DroppedSections  []DroppedSection  `json:"dropped_sections,omitempty"`
	SkippedHeaders   []Header          `json:"skipped_headers,omitempty"`
	DuplicateNumbers []DuplicateNumber `json:"duplicate_numbers,omitempty"`
}

// DroppedSection is a discovered position that produced no output.
type DroppedSection struct {
	Name    string `json:"name"`
	VoteFor int    `json:"vote_for"`
	Reason  string `json:"reason"`
}

// DuplicateNumber is a candidate number that appeared more than once in a section.
type DuplicateNumber struct {
	Position string `json:"position"`
	Number   int    `json:"number"`
}

// HasIssues reports whether any section was dropped or any candidate entry discarded.
// Skipped headers alone are expected (the fixed positions always repeat) and do not count.
func (r *Report) HasIssues() bool {
	if r == nil {
		return false
	}
	return len(r.DroppedSections) > 0 || len(r.DuplicateNumbers) > 0
}
