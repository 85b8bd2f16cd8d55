package parsing

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/jonathan/ballot-parser/internal/types"
)

var (
	// candidateRe matches "<number>. <NAME, possibly over several lines> (<party>)" entries.
	candidateRe = regexp.MustCompile(`(?s)(\d{1,3})\.\s+([\p{Lu}.,' \-\n]+?)\s*\((.*?)\)`)

	// loneCandidateRe matches a single entry numbered 1 whose layout lost the "N. " rhythm,
	// e.g. "1.NAME (PARTY)" or "1 NAME (PARTY)". The number must open its line.
	loneCandidateRe = regexp.MustCompile(`(?m)^[ \t]*1\.?[ \t]*(\p{Lu}[\p{Lu}.,' \-\n]*?)\s*\(([^)]*)\)`)
)

// ExtractCandidates pulls numbered candidates out of one section's text.
// The result is sorted by ballot number and holds each number once (first occurrence wins);
// duplicates lists the numbers that were dropped for repeating. An empty result means the
// section matched neither the numbered-list pattern nor the lone-candidate fallback.
func ExtractCandidates(sectionText string) (candidates []types.Candidate, duplicates []int) {
	matches := candidateRe.FindAllStringSubmatch(sectionText, -1)

	if len(matches) == 0 {
		if m := loneCandidateRe.FindStringSubmatch(sectionText); m != nil {
			if name := NormalizeName(m[1]); name != "" {
				return []types.Candidate{{
					Number: 1,
					Name:   name,
					Party:  NormalizeParty(m[2]),
				}}, nil
			}
		}
		return nil, nil
	}

	seen := make(map[int]bool, len(matches))
	candidates = make([]types.Candidate, 0, len(matches))
	for _, m := range matches {
		number, err := strconv.Atoi(m[1])
		if err != nil || number < 1 {
			continue
		}
		name := NormalizeName(m[2])
		if name == "" {
			continue
		}
		if seen[number] {
			duplicates = append(duplicates, number)
			continue
		}
		seen[number] = true

		candidates = append(candidates, types.Candidate{
			Number: number,
			Name:   name,
			Party:  NormalizeParty(m[3]),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Number < candidates[j].Number
	})
	return candidates, duplicates
}
