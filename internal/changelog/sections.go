package changelog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// sectionContent is one parsed (or synthesized) subsection of the pending
// block. index is the byte offset of the header match in the block text;
// -1 marks subsections synthesized during merge. It matters only while
// parsing — output order always follows the configured mapping, never the
// order headers appeared in the document.
type sectionContent struct {
	label   string
	header  string
	content string
	index   int
}

// splitSections scans the pending-block text for each configured subsection
// header. A subsection's content runs from the end of its header line to the
// next header-prefix line, or to the end of the block. The returned slice is
// sorted by occurrence in the text.
func splitSections(release string, headerPrefix string, mapping []Section) ([]sectionContent, error) {
	nextHeaderRe, err := regexp.Compile("(?m)^" + headerPrefix)
	if err != nil {
		return nil, fmt.Errorf("compile header prefix pattern: %w", err)
	}

	var sections []sectionContent
	for _, sec := range mapping {
		headerRe, err := regexp.Compile("(?m)^" + headerPrefix + sec.Header)
		if err != nil {
			return nil, fmt.Errorf("compile header pattern for %q: %w", sec.Label, err)
		}
		loc := headerRe.FindStringIndex(release)
		if loc == nil {
			continue
		}
		end := len(release)
		if next := nextHeaderRe.FindStringIndex(release[loc[1]:]); next != nil {
			end = loc[1] + next[0]
		}
		sections = append(sections, sectionContent{
			label:   sec.Label,
			header:  sec.Header,
			content: strings.TrimSpace(release[loc[1]:end]),
			index:   loc[0],
		})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].index < sections[j].index })
	return sections, nil
}

// merge walks the mapping in priority order, synthesizing empty subsections
// for headers absent from the document, and prepends the message to the
// first subsection whose label the issue carries. When no label matches, the
// message lands in the unlabeled prefix instead so an entry is never
// dropped. Returns the (possibly augmented) prefix and every subsection in
// mapping order.
func merge(release string, parsed []sectionContent, opts Options) (string, []sectionContent) {
	byLabel := make(map[string]sectionContent, len(parsed))
	for _, s := range parsed {
		byLabel[s.label] = s
	}

	prefix := ""
	if len(parsed) == 0 {
		prefix = release
	} else if parsed[0].index > 0 {
		prefix = strings.TrimSpace(release[:parsed[0].index])
	}

	issueLabels := make(map[string]bool, len(opts.IssueLabels))
	for _, l := range opts.IssueLabels {
		issueLabels[l] = true
	}

	found := false
	merged := make([]sectionContent, 0, len(opts.Sections))
	for _, sec := range opts.Sections {
		s, ok := byLabel[sec.Label]
		if !ok {
			s = sectionContent{label: sec.Label, header: sec.Header, content: "", index: -1}
		}
		if issueLabels[sec.Label] && !found {
			found = true
			s.content = strings.TrimSpace(opts.Message + "\n" + s.content)
		}
		merged = append(merged, s)
	}

	if !found {
		if prefix != "" {
			prefix = opts.Message + "\n" + prefix
		} else {
			prefix = opts.Message
		}
	}
	return prefix, merged
}
