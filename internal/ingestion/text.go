package ingestion

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	inlineSpaceRe = regexp.MustCompile(`[ \t\f\v]+`)
	blankRunRe    = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted ballot text while preserving line structure.
// Blank lines are kept (collapsed to at most one) since the precinct list ends at one.
// Runs of spaces inside a line become one space, so metadata such as the location is
// reported with single spacing rather than the extractor's column padding.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Compose decomposed diacritics (N + U+0303 → Ñ) so patterns see one rune
	content = norm.NFC.String(content)

	// 3. Clean each line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	result := strings.Join(lines, "\n")

	// 4. Remove excessive blank lines
	result = removeExcessiveBlankLines(result)

	// 5. Trim leading blank lines, keep a single trailing newline for line-bounded patterns
	result = strings.TrimLeft(result, "\n")
	result = strings.TrimRight(result, "\n")
	if result == "" {
		return ""
	}
	return result + "\n"
}

// cleanLine trims the line and collapses runs of inline whitespace
func cleanLine(line string) string {
	line = strings.ReplaceAll(line, "\u00a0", " ")
	return strings.TrimSpace(inlineSpaceRe.ReplaceAllString(line, " "))
}

// removeExcessiveBlankLines reduces consecutive blank lines to one
func removeExcessiveBlankLines(content string) string {
	return blankRunRe.ReplaceAllString(content, "\n\n")
}
