package book

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse deserializes a navigation book document. The decode is strict: it
// fails with a malformed_input error when the text is not a YAML mapping of
// the expected shape, and with a schema_violation error when a node carries
// a field combination that matches no valid kind. Errors carry the position
// of the offending node within the tree (e.g. "upper_tabs[1].contents[3]").
func Parse(raw []byte) (*Book, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, malformedWrap(err, "", "document is not valid YAML")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document parses to an empty book.
		return &Book{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, malformed("", "top level must be a mapping, got %s", yamlKindName(root))
	}

	b := &Book{}
	for i := 0; i < len(root.Content)-1; i += 2 {
		key := root.Content[i]
		val := root.Content[i+1]
		switch key.Value {
		case "upper_tabs":
			tabs, err := parseTabs(val, "upper_tabs")
			if err != nil {
				return nil, err
			}
			b.UpperTabs = tabs
		case "lower_tabs":
			tabs, err := parseTabs(val, "lower_tabs")
			if err != nil {
				return nil, err
			}
			b.LowerTabs = tabs
		default:
			return nil, schemaViolation(key.Value, "unknown top-level key %q", key.Value)
		}
	}
	return b, nil
}

// ParseFragment deserializes an include fragment: either a bare sequence of
// nodes, or a mapping wrapping that sequence under a "contents" or "toc"
// key, or a single node mapping.
func ParseFragment(raw []byte) ([]*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, malformedWrap(err, "", "fragment is not valid YAML")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return parseNodeList(root, "")
	case yaml.MappingNode:
		if len(root.Content) == 2 {
			key := root.Content[0].Value
			if key == "contents" || key == "toc" {
				return parseNodeList(root.Content[1], key)
			}
		}
		n, err := parseNode(root, "")
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	default:
		return nil, malformed("", "fragment must be a sequence or mapping, got %s", yamlKindName(root))
	}
}

func parseTabs(val *yaml.Node, pos string) ([]*Tab, error) {
	if val.Kind != yaml.SequenceNode {
		return nil, malformed(pos, "expected a sequence of tabs, got %s", yamlKindName(val))
	}
	tabs := make([]*Tab, 0, len(val.Content))
	for i, item := range val.Content {
		tab, err := parseTab(item, fmt.Sprintf("%s[%d]", pos, i))
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

func parseTab(val *yaml.Node, pos string) (*Tab, error) {
	if val.Kind != yaml.MappingNode {
		return nil, malformed(pos, "expected a tab mapping, got %s", yamlKindName(val))
	}
	t := &Tab{}
	for i := 0; i < len(val.Content)-1; i += 2 {
		key := val.Content[i]
		v := val.Content[i+1]
		fieldPos := pos + "." + key.Value
		var err error
		switch key.Value {
		case "name":
			t.Name, err = scalarString(v, fieldPos)
		case "path":
			t.Path, err = scalarString(v, fieldPos)
		case "is_default":
			t.IsDefault, err = scalarBool(v, fieldPos)
		case "skip_translation":
			t.SkipTranslation, err = scalarBool(v, fieldPos)
		case "menu":
			t.Menu, err = parseNodeList(v, fieldPos)
		case "contents":
			t.Contents, err = parseNodeList(v, fieldPos)
		default:
			return nil, schemaViolation(fieldPos, "unknown tab field %q", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if t.Name == "" {
		return nil, schemaViolation(pos, "tab requires a name")
	}
	return t, nil
}

func parseNodeList(val *yaml.Node, pos string) ([]*Node, error) {
	if val.Kind != yaml.SequenceNode {
		return nil, malformed(pos, "expected a sequence of nodes, got %s", yamlKindName(val))
	}
	nodes := make([]*Node, 0, len(val.Content))
	for i, item := range val.Content {
		n, err := parseNode(item, fmt.Sprintf("%s[%d]", pos, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func parseNode(val *yaml.Node, pos string) (*Node, error) {
	if val.Kind != yaml.MappingNode {
		return nil, malformed(pos, "expected a node mapping, got %s", yamlKindName(val))
	}
	n := &Node{}
	for i := 0; i < len(val.Content)-1; i += 2 {
		key := val.Content[i]
		v := val.Content[i+1]
		fieldPos := pos + "." + key.Value
		var err error
		switch key.Value {
		case "name":
			n.Name, err = scalarString(v, fieldPos)
		case "title":
			n.Title, err = scalarString(v, fieldPos)
		case "heading":
			n.Heading, err = scalarString(v, fieldPos)
		case "path":
			n.Path, err = scalarString(v, fieldPos)
		case "include":
			n.Include, err = scalarString(v, fieldPos)
		case "status":
			n.Status, err = scalarString(v, fieldPos)
		case "contents":
			n.Children, err = parseNodeList(v, fieldPos)
			n.hasChildren = true
		default:
			return nil, schemaViolation(fieldPos, "unknown node field %q", key.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := checkNodeShape(n, pos); err != nil {
		return nil, err
	}
	return n, nil
}

// checkNodeShape enforces kind exclusivity: every node is exactly one of
// include, heading, container, or link.
func checkNodeShape(n *Node, pos string) error {
	if n.Include != "" {
		if n.Name != "" || n.Title != "" || n.Heading != "" || n.Path != "" || n.Status != "" || n.hasChildren {
			return schemaViolation(pos, "include node must carry only the include reference")
		}
		return nil
	}
	if n.Heading != "" {
		if n.Path != "" {
			return schemaViolation(pos, "node mixes heading and path")
		}
		if n.Name != "" || n.Title != "" {
			return schemaViolation(pos, "node mixes heading and title")
		}
		if n.hasChildren {
			return schemaViolation(pos, "heading node cannot own children")
		}
		return nil
	}
	if n.hasChildren {
		if n.Name == "" && n.Title == "" {
			return schemaViolation(pos, "container node requires a name or title")
		}
		return nil
	}
	if n.Name == "" && n.Title == "" {
		return schemaViolation(pos, "link node requires a title")
	}
	if n.Path == "" {
		return schemaViolation(pos, "link node requires a path")
	}
	return nil
}

func scalarString(v *yaml.Node, pos string) (string, error) {
	if v.Kind != yaml.ScalarNode {
		return "", malformed(pos, "expected a string, got %s", yamlKindName(v))
	}
	var s string
	if err := v.Decode(&s); err != nil {
		return "", malformedWrap(err, pos, "expected a string")
	}
	return s, nil
}

func scalarBool(v *yaml.Node, pos string) (bool, error) {
	if v.Kind != yaml.ScalarNode {
		return false, malformed(pos, "expected a boolean, got %s", yamlKindName(v))
	}
	var b bool
	if err := v.Decode(&b); err != nil {
		return false, malformedWrap(err, pos, "expected a boolean")
	}
	return b, nil
}

func yamlKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
