// Package content cross-checks navigation links against the markdown
// documents they point to.
package content

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TitleOf extracts the first level-1 heading from a markdown document.
// Returns "" when the document has no H1.
func TitleOf(md []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(md))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			return gmast.WalkContinue, nil
		}
		title = headingText(h, md)
		return gmast.WalkStop, nil
	})
	return title
}

func headingText(h *gmast.Heading, source []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, &buf)
	}
	return buf.String()
}

func collectText(n gmast.Node, source []byte, buf *bytes.Buffer) {
	if t, ok := n.(*gmast.Text); ok {
		buf.Write(t.Segment.Value(source))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, buf)
	}
}
