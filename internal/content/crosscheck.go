package content

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/book"
)

// Crosscheck walks the resolved forest and compares each site-relative link
// against the markdown tree under dir: a link path /x maps to dir/x.md or
// dir/x/index.md. Findings are non-fatal and flow through the same issue
// stream as structural validation.
func Crosscheck(b *book.Book, dir string) []book.Issue {
	c := &checker{dir: dir}
	c.tabs(b.UpperTabs, "upper_tabs")
	c.tabs(b.LowerTabs, "lower_tabs")
	return c.issues
}

type checker struct {
	dir    string
	issues []book.Issue
}

func (c *checker) tabs(tabs []*book.Tab, pos string) {
	for i, t := range tabs {
		tabPos := pos + "[" + strconv.Itoa(i) + "]"
		// Menu entries are routing chrome, not content; skip them.
		c.nodes(t.Contents, tabPos+".contents")
	}
}

func (c *checker) nodes(nodes []*book.Node, pos string) {
	for i, n := range nodes {
		nodePos := pos + "[" + strconv.Itoa(i) + "]"
		if n.Kind() == book.KindLink && strings.HasPrefix(n.Path, "/") {
			c.link(n, nodePos)
		}
		c.nodes(n.Children, nodePos+".contents")
	}
}

func (c *checker) link(n *book.Node, pos string) {
	md, ok := c.readDoc(n.Path)
	if !ok {
		c.issues = append(c.issues, book.Issue{
			Severity: book.SeverityWarning,
			Rule:     "missing-document",
			Position: pos,
			Message:  "no markdown document for path " + strconv.Quote(n.Path),
		})
		return
	}
	docTitle := TitleOf(md)
	if docTitle == "" {
		return
	}
	if !strings.EqualFold(strings.TrimSpace(docTitle), strings.TrimSpace(n.Label())) {
		c.issues = append(c.issues, book.Issue{
			Severity: book.SeverityInfo,
			Rule:     "title-drift",
			Position: pos,
			Message:  "nav title " + strconv.Quote(n.Label()) + " differs from document heading " + strconv.Quote(docTitle),
		})
	}
}

func (c *checker) readDoc(path string) ([]byte, bool) {
	rel := strings.TrimPrefix(path, "/")
	for _, candidate := range []string{rel + ".md", filepath.Join(rel, "index.md")} {
		md, err := os.ReadFile(filepath.Join(c.dir, filepath.FromSlash(candidate)))
		if err == nil {
			return md, true
		}
	}
	return nil, false
}
