// Package book models declarative navigation books for documentation sites:
// ordered tab groups of headings, links, nested containers, and include
// directives. The package is a pure transform layer; it performs no I/O of
// its own beyond the resolver capability injected into ResolveIncludes.
package book

// Kind classifies a node by the field combination it carries.
type Kind int

const (
	// KindHeading is a non-clickable section label.
	KindHeading Kind = iota
	// KindLink is a clickable entry with a title and a target path.
	KindLink
	// KindContainer owns an ordered list of child nodes.
	KindContainer
	// KindInclude is a leaf placeholder spliced out by ResolveIncludes.
	KindInclude
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindLink:
		return "link"
	case KindContainer:
		return "container"
	case KindInclude:
		return "include"
	default:
		return "unknown"
	}
}

// Node is one entry in the navigation tree. Exactly one Kind applies to a
// valid node; Parse rejects field combinations that match none.
type Node struct {
	Name    string
	Title   string
	Heading string
	Path    string
	Include string
	Status  string

	Children []*Node

	// hasChildren records that a contents key was present, so that an
	// explicitly empty container survives a round trip.
	hasChildren bool
}

// Kind reports the node kind inferred from the populated fields.
func (n *Node) Kind() Kind {
	switch {
	case n.Include != "":
		return KindInclude
	case n.Heading != "":
		return KindHeading
	case n.hasChildren:
		return KindContainer
	default:
		return KindLink
	}
}

// Label returns the display label of the node regardless of kind.
func (n *Node) Label() string {
	switch {
	case n.Heading != "":
		return n.Heading
	case n.Title != "":
		return n.Title
	default:
		return n.Name
	}
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Tab is a top-level named group of navigation entries plus its routing
// attributes. Menu entries render as a dropdown; Contents is the tab's tree.
type Tab struct {
	Name            string
	Path            string
	IsDefault       bool
	SkipTranslation bool
	Menu            []*Node
	Contents        []*Node
}

// Clone returns a deep copy of the tab.
func (t *Tab) Clone() *Tab {
	c := *t
	c.Menu = cloneNodes(t.Menu)
	c.Contents = cloneNodes(t.Contents)
	return &c
}

// Book is the navigation forest: the ordered upper and lower tab groups.
type Book struct {
	UpperTabs []*Tab
	LowerTabs []*Tab
}

// Clone returns a deep copy of the book.
func (b *Book) Clone() *Book {
	c := &Book{}
	if b.UpperTabs != nil {
		c.UpperTabs = make([]*Tab, len(b.UpperTabs))
		for i, t := range b.UpperTabs {
			c.UpperTabs[i] = t.Clone()
		}
	}
	if b.LowerTabs != nil {
		c.LowerTabs = make([]*Tab, len(b.LowerTabs))
		for i, t := range b.LowerTabs {
			c.LowerTabs[i] = t.Clone()
		}
	}
	return c
}

func cloneNodes(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
