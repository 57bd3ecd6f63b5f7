package book

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalYAML serializes the book so that Parse(Marshal(b)) reproduces b:
// node order and the populated field set are preserved exactly. Key order
// within a mapping is canonical, which YAML mappings do not make
// significant.
func (b *Book) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	if b.UpperTabs != nil {
		appendKey(root, "upper_tabs", tabsNode(b.UpperTabs))
	}
	if b.LowerTabs != nil {
		appendKey(root, "lower_tabs", tabsNode(b.LowerTabs))
	}
	return root, nil
}

// MarshalYAML serializes a single tab.
func (t *Tab) MarshalYAML() (any, error) {
	return tabNode(t), nil
}

// MarshalYAML serializes a single node subtree.
func (n *Node) MarshalYAML() (any, error) {
	return nodeNode(n), nil
}

func tabsNode(tabs []*Tab) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range tabs {
		seq.Content = append(seq.Content, tabNode(t))
	}
	return seq
}

func tabNode(t *Tab) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	appendKey(m, "name", strNode(t.Name))
	if t.Path != "" {
		appendKey(m, "path", strNode(t.Path))
	}
	if t.IsDefault {
		appendKey(m, "is_default", boolNode(true))
	}
	if t.SkipTranslation {
		appendKey(m, "skip_translation", boolNode(true))
	}
	if t.Menu != nil {
		appendKey(m, "menu", nodesNode(t.Menu))
	}
	if t.Contents != nil {
		appendKey(m, "contents", nodesNode(t.Contents))
	}
	return m
}

func nodesNode(nodes []*Node) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, n := range nodes {
		seq.Content = append(seq.Content, nodeNode(n))
	}
	return seq
}

func nodeNode(n *Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	if n.Name != "" {
		appendKey(m, "name", strNode(n.Name))
	}
	if n.Title != "" {
		appendKey(m, "title", strNode(n.Title))
	}
	if n.Heading != "" {
		appendKey(m, "heading", strNode(n.Heading))
	}
	if n.Path != "" {
		appendKey(m, "path", strNode(n.Path))
	}
	if n.Include != "" {
		appendKey(m, "include", strNode(n.Include))
	}
	if n.Status != "" {
		appendKey(m, "status", strNode(n.Status))
	}
	if n.hasChildren {
		appendKey(m, "contents", nodesNode(n.Children))
	}
	return m
}

func appendKey(m *yaml.Node, key string, val *yaml.Node) {
	m.Content = append(m.Content, strNode(key), val)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolNode(b bool) *yaml.Node {
	v := "false"
	if b {
		v = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v}
}

// jsonNode mirrors the wire shape handed to the rendering system.
type jsonNode struct {
	Name     string  `json:"name,omitempty"`
	Title    string  `json:"title,omitempty"`
	Heading  string  `json:"heading,omitempty"`
	Path     string  `json:"path,omitempty"`
	Include  string  `json:"include,omitempty"`
	Status   string  `json:"status,omitempty"`
	Contents []*Node `json:"contents,omitempty"`
}

// MarshalJSON emits only the populated fields, matching the YAML shape.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode{
		Name:     n.Name,
		Title:    n.Title,
		Heading:  n.Heading,
		Path:     n.Path,
		Include:  n.Include,
		Status:   n.Status,
		Contents: n.Children,
	})
}

type jsonTab struct {
	Name            string  `json:"name"`
	Path            string  `json:"path,omitempty"`
	IsDefault       bool    `json:"is_default,omitempty"`
	SkipTranslation bool    `json:"skip_translation,omitempty"`
	Menu            []*Node `json:"menu,omitempty"`
	Contents        []*Node `json:"contents,omitempty"`
}

// MarshalJSON emits only the populated tab fields.
func (t *Tab) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTab{
		Name:            t.Name,
		Path:            t.Path,
		IsDefault:       t.IsDefault,
		SkipTranslation: t.SkipTranslation,
		Menu:            t.Menu,
		Contents:        t.Contents,
	})
}

type jsonBook struct {
	UpperTabs []*Tab `json:"upper_tabs,omitempty"`
	LowerTabs []*Tab `json:"lower_tabs,omitempty"`
}

// MarshalJSON emits the forest for the rendering system.
func (b *Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBook{UpperTabs: b.UpperTabs, LowerTabs: b.LowerTabs})
}
