package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/ballot-parser/internal/types"
)

var headerRe = regexp.MustCompile(`([\p{Lu} ,\-/]+) / Vote for (\d+)`)

// Header is one "POSITION NAME / Vote for N" occurrence in the ballot text.
type Header struct {
	Name    string `json:"name"`
	VoteFor int    `json:"vote_for"`
	Start   int    `json:"start"` // byte offset of the match start
	End     int    `json:"end"`   // byte offset just past the match
}

// Section is the text span that belongs to one newly seen position header.
type Section struct {
	Name    string
	VoteFor int
	Text    string
}

// FindHeaders returns every position header in text order.
func FindHeaders(text string) []Header {
	matches := headerRe.FindAllStringSubmatchIndex(text, -1)
	headers := make([]Header, 0, len(matches))
	for _, m := range matches {
		voteFor, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			continue
		}
		headers = append(headers, Header{
			Name:    strings.TrimSpace(text[m[2]:m[3]]),
			VoteFor: voteFor,
			Start:   m[0],
			End:     m[1],
		})
	}
	return headers
}

// SplitSections slices text into one section per header whose name has not been seen yet.
// The seen set always contains the fixed SENATOR and PARTY LIST positions. A section runs from
// the end of its header to the start of the next header of any name, or to the end of text.
// Headers skipped because their name was already seen are returned as duplicates.
func SplitSections(text string, seen ...string) ([]Section, []Header) {
	seenSet := map[string]bool{
		types.SenatorPosition:   true,
		types.PartyListPosition: true,
	}
	for _, name := range seen {
		seenSet[name] = true
	}

	headers := FindHeaders(text)
	var sections []Section
	var duplicates []Header
	for i, h := range headers {
		if seenSet[h.Name] {
			duplicates = append(duplicates, h)
			continue
		}
		seenSet[h.Name] = true

		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].Start
		}
		sections = append(sections, Section{
			Name:    h.Name,
			VoteFor: h.VoteFor,
			Text:    text[h.End:end],
		})
	}
	return sections, duplicates
}
