// Package markdown provides advisory structure checks for changelog
// documents. The rewrite core deliberately does not depend on it.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one ATX heading found in a document. Offset is the byte offset
// of the heading content in the source, used to place the heading relative
// to the pending-release boundaries.
type Heading struct {
	Level  int
	Text   string
	Offset int
}

// ExtractHeadings parses a Markdown body and collects its headings in
// document order.
//
// This is an analysis API; it does not attempt to re-render Markdown.
func ExtractHeadings(body []byte) []Heading {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	headings := make([]Heading, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		offset := -1
		if h.Lines().Len() > 0 {
			offset = h.Lines().At(0).Start
		}
		headings = append(headings, Heading{
			Level:  h.Level,
			Text:   headingText(h, body),
			Offset: offset,
		})
		return gmast.WalkContinue, nil
	})
	return headings
}

func headingText(h *gmast.Heading, src []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
	}
	return b.String()
}
