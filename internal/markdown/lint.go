package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// Problem is one advisory finding about changelog structure.
type Problem struct {
	Offset  int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("offset %d: %s", p.Offset, p.Message)
}

// LintChangelog checks that doc contains the configured title and that every
// subsection heading inside the pending block uses a known header text.
// Unlike the rewrite core, the block boundary here is located in the
// unstripped document; lint findings are advisory and never gate the
// rewrite.
func LintChangelog(doc, titlePattern, nextReleasePattern, headerPrefix string, knownHeaders []string) ([]Problem, error) {
	titleRe, err := regexp.Compile("(?m)" + titlePattern)
	if err != nil {
		return nil, fmt.Errorf("compile title pattern: %w", err)
	}
	titleLoc := titleRe.FindStringIndex(doc)
	if titleLoc == nil {
		return []Problem{{Offset: 0, Message: fmt.Sprintf("changelog title not found (pattern %q)", titlePattern)}}, nil
	}
	titleEnd := titleLoc[1]

	endRe, err := regexp.Compile("(?m)" + nextReleasePattern)
	if err != nil {
		return nil, fmt.Errorf("compile next release pattern: %w", err)
	}
	releaseEnd := len(doc)
	if loc := endRe.FindStringIndex(doc[titleEnd:]); loc != nil {
		releaseEnd = titleEnd + loc[0]
	}

	known := make(map[string]bool, len(knownHeaders))
	for _, h := range knownHeaders {
		known[h] = true
	}
	sectionLevel := strings.Count(strings.TrimSpace(headerPrefix), "#")

	var problems []Problem
	for _, h := range ExtractHeadings([]byte(doc)) {
		if h.Level != sectionLevel || h.Offset <= titleEnd || h.Offset >= releaseEnd {
			continue
		}
		if !known[h.Text] {
			problems = append(problems, Problem{
				Offset:  h.Offset,
				Message: fmt.Sprintf("unknown subsection header %q in pending release block", h.Text),
			})
		}
	}
	return problems, nil
}
