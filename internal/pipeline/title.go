package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleSeparators = regexp.MustCompile(`[-_]+`)

var titleCaser = cases.Title(language.English)

// DisplayTitle derives a human-readable title from a document file stem,
// e.g. "ch03-error_handling" becomes "Ch03 Error Handling".
func DisplayTitle(stem string) string {
	spaced := titleSeparators.ReplaceAllString(stem, " ")
	spaced = strings.Join(strings.Fields(spaced), " ")
	if spaced == "" {
		return stem
	}
	return titleCaser.String(spaced)
}
