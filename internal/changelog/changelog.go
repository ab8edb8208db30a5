package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// Section pairs a classification label with the human-readable subsection
// header it maps to. Slice order is priority order: it decides both which
// label wins when an issue carries several, and the order subsections are
// emitted in.
type Section struct {
	Label  string `yaml:"label"`
	Header string `yaml:"header"`
}

// Options carries everything the transform needs. All patterns are regular
// expressions evaluated in multiline mode.
type Options struct {
	// TitlePattern locates the pending-release title line.
	TitlePattern string
	// NextReleasePattern locates the first line belonging to a prior
	// release, ending the pending block.
	NextReleasePattern string
	// HeaderPrefix introduces every subsection header line, e.g. "#### ".
	HeaderPrefix string
	// Sections is the ordered label-to-header mapping.
	Sections []Section
	// Message is the fully rendered entry to insert. Opaque except for
	// exact-substring duplicate detection.
	Message string
	// IssueNumber is attached to duplicate errors.
	IssueNumber int
	// IssueLabels classifies the entry; the first Section whose label is
	// present receives the message.
	IssueLabels []string
}

// Transform inserts opts.Message into the pending-release block of doc and
// returns the rewritten document. Regions before the title and after the
// next-release marker are preserved apart from whitespace normalization at
// the block boundary. The output always ends with exactly one newline.
//
// Offset convention: the next-release marker is searched in the
// whitespace-stripped remainder after the title, but the resulting match
// offset is applied to the original document. This mirrors the historical
// behavior exactly; leading whitespace between title and marker therefore
// shifts the block end slightly into the marker region, and the shifted
// bytes are re-normalized during reassembly. Pinned by tests.
func Transform(doc string, opts Options) (string, error) {
	titleRe, err := regexp.Compile("(?m)" + opts.TitlePattern)
	if err != nil {
		return "", fmt.Errorf("compile title pattern: %w", err)
	}
	titleLoc := titleRe.FindStringIndex(doc)
	if titleLoc == nil {
		return "", &TitleNotFoundError{Pattern: opts.TitlePattern}
	}
	titleEnd := titleLoc[1]

	if strings.Contains(doc, opts.Message) {
		return "", &DuplicateEntryError{Number: opts.IssueNumber}
	}

	endRe, err := regexp.Compile("(?m)" + opts.NextReleasePattern)
	if err != nil {
		return "", fmt.Errorf("compile next release pattern: %w", err)
	}
	releaseEnd := len(doc)
	if loc := endRe.FindStringIndex(strings.TrimSpace(doc[titleEnd:])); loc != nil {
		releaseEnd = titleEnd + loc[0]
	}
	releaseContent := strings.TrimSpace(doc[titleEnd:releaseEnd])

	sections, err := splitSections(releaseContent, opts.HeaderPrefix, opts.Sections)
	if err != nil {
		return "", err
	}
	prefix, merged := merge(releaseContent, sections, opts)

	newRelease := assembleRelease(prefix, merged, opts.HeaderPrefix)

	preTitle := strings.TrimSpace(doc[:titleEnd])
	postRelease := strings.TrimSpace(doc[releaseEnd:])
	out := strings.TrimSpace(preTitle + "\n\n" + newRelease + "\n\n" + postRelease)
	return out + "\n", nil
}

// assembleRelease rebuilds the pending block: unlabeled prefix first, then
// every subsection with remaining content in mapping order, blank-line
// separated. Empty subsections are omitted rather than emitted as bare
// headers.
func assembleRelease(prefix string, sections []sectionContent, headerPrefix string) string {
	rendered := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.content == "" {
			continue
		}
		rendered = append(rendered, headerPrefix+s.header+"\n\n"+s.content)
	}
	body := strings.Join(rendered, "\n\n")
	if prefix == "" {
		return body
	}
	if body == "" {
		return prefix
	}
	return prefix + "\n\n" + body
}
