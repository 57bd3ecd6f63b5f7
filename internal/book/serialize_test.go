package book

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func yamlString(b *Book) (string, error) {
	out, err := yaml.Marshal(b)
	return string(out), err
}

func TestRoundTripPreservesOrderAndFields(t *testing.T) {
	raw := `
upper_tabs:
  - name: Guide
    path: /cirq
    is_default: true
    contents:
      - heading: First steps
      - title: Install
        path: /cirq/install
        status: new
      - name: Build
        contents:
          - title: Circuits
            path: /cirq/build/circuits
          - title: Gates
            path: /cirq/build/gates
lower_tabs:
  - name: Terms
    skip_translation: true
    menu:
      - title: GitHub
        path: https://github.com/example/example
`
	first, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	serialized, err := yamlString(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := Parse([]byte(serialized))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	again, err := yamlString(second)
	if err != nil {
		t.Fatalf("remarshal: %v", err)
	}
	if serialized != again {
		t.Fatalf("round trip not stable:\nfirst=%s\nsecond=%s", serialized, again)
	}

	guide := second.UpperTabs[0]
	if !guide.IsDefault || guide.Path != "/cirq" {
		t.Fatalf("tab attributes lost: %+v", guide)
	}
	if guide.Contents[1].Status != "new" {
		t.Fatalf("status field lost: %+v", guide.Contents[1])
	}
	build := guide.Contents[2]
	if build.Kind() != KindContainer || len(build.Children) != 2 {
		t.Fatalf("container subtree lost: %+v", build)
	}
	if build.Children[0].Path != "/cirq/build/circuits" || build.Children[1].Path != "/cirq/build/gates" {
		t.Fatalf("child order lost: %+v", build.Children)
	}
}

func TestRoundTripKeepsIncludeNodes(t *testing.T) {
	raw := "upper_tabs:\n  - name: Guide\n    contents:\n      - include: /frag.yaml\n"
	b, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := yamlString(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(out, "include: /frag.yaml") {
		t.Fatalf("include directive lost in serialization:\n%s", out)
	}
}

func TestRoundTripKeepsEmptyContainer(t *testing.T) {
	raw := "upper_tabs:\n  - name: Guide\n    contents:\n      - name: Empty\n        contents: []\n"
	b, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := yamlString(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	reparsed, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	n := reparsed.UpperTabs[0].Contents[0]
	if n.Kind() != KindContainer {
		t.Fatalf("empty container degraded to %s on round trip", n.Kind())
	}
}

func TestJSONOmitsUnsetFields(t *testing.T) {
	b := mustParse(t, `
upper_tabs:
  - name: Guide
    contents:
      - heading: First steps
`)
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	s := string(out)
	if strings.Contains(s, `"title"`) || strings.Contains(s, `"path"`) {
		t.Fatalf("unset fields leaked into JSON: %s", s)
	}
	if !strings.Contains(s, `"heading":"First steps"`) {
		t.Fatalf("heading missing from JSON: %s", s)
	}
}
