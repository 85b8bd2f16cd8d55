package parsing

import (
	"github.com/jonathan/ballot-parser/internal/types"
)

// ParsePositions discovers every non-fixed position in ballot text, in header order.
// Sections without candidates are left out of the result and recorded in the report.
func ParsePositions(text string) ([]types.Position, *Report) {
	report := &Report{}
	sections, skipped := SplitSections(text)
	report.SkippedHeaders = skipped

	positions := make([]types.Position, 0, len(sections))
	for _, section := range sections {
		if section.VoteFor < 1 {
			report.DroppedSections = append(report.DroppedSections, DroppedSection{
				Name:    section.Name,
				VoteFor: section.VoteFor,
				Reason:  ReasonInvalidVoteFor,
			})
			continue
		}

		candidates, duplicates := ExtractCandidates(section.Text)
		for _, n := range duplicates {
			report.DuplicateNumbers = append(report.DuplicateNumbers, DuplicateNumber{
				Position: section.Name,
				Number:   n,
			})
		}
		if len(candidates) == 0 {
			report.DroppedSections = append(report.DroppedSections, DroppedSection{
				Name:    section.Name,
				VoteFor: section.VoteFor,
				Reason:  ReasonNoCandidates,
			})
			continue
		}

		positions = append(positions, types.Position{
			Name:         section.Name,
			VoteFor:      section.VoteFor,
			Instructions: types.DefaultInstructions,
			Candidates:   candidates,
		})
	}
	return positions, report
}
