package book

import (
	"strings"
	"testing"
)

func TestParseGuideExample(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - name: Guide
    path: /cirq
    contents:
      - heading: First steps
      - title: Install
        path: /cirq/install
`)
	b, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(b.UpperTabs) != 1 {
		t.Fatalf("expected 1 upper tab, got %d", len(b.UpperTabs))
	}
	tab := b.UpperTabs[0]
	if tab.Name != "Guide" || tab.Path != "/cirq" {
		t.Fatalf("unexpected tab: %+v", tab)
	}
	if len(tab.Contents) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tab.Contents))
	}
	if tab.Contents[0].Kind() != KindHeading || tab.Contents[0].Heading != "First steps" {
		t.Errorf("first child should be heading, got %+v", tab.Contents[0])
	}
	if tab.Contents[1].Kind() != KindLink || tab.Contents[1].Path != "/cirq/install" {
		t.Errorf("second child should be link, got %+v", tab.Contents[1])
	}
}

func TestParsePreservesChildOrder(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - name: API
    contents:
      - title: One
        path: /one
      - title: Two
        path: /two
      - title: Three
        path: /three
`)
	b, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"One", "Two", "Three"}
	got := b.UpperTabs[0].Contents
	if len(got) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(got))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("child %d: expected %q, got %q", i, title, got[i].Title)
		}
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("upper_tabs: [unclosed"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsCategory(err, CategoryMalformedInput) {
		t.Fatalf("expected malformed_input, got %v", err)
	}
}

func TestParseTopLevelNotMapping(t *testing.T) {
	_, err := Parse([]byte("- just\n- a list\n"))
	if err == nil || !IsCategory(err, CategoryMalformedInput) {
		t.Fatalf("expected malformed_input, got %v", err)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	b, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.UpperTabs != nil || b.LowerTabs != nil {
		t.Fatalf("expected empty book, got %+v", b)
	}
}

func TestParseHeadingWithPathIsSchemaViolation(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - name: Guide
    contents:
      - heading: Broken
        path: /broken
`)
	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsCategory(err, CategorySchemaViolation) {
		t.Fatalf("expected schema_violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "upper_tabs[0].contents[0]") {
		t.Errorf("error should carry the node position, got %q", err.Error())
	}
}

func TestParseLinkWithoutPathIsSchemaViolation(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - name: Guide
    contents:
      - title: Dangling
`)
	_, err := Parse(raw)
	if err == nil || !IsCategory(err, CategorySchemaViolation) {
		t.Fatalf("expected schema_violation, got %v", err)
	}
}

func TestParseIncludeMixedWithTitleIsSchemaViolation(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - name: Guide
    contents:
      - include: /fragments/extra.yaml
        title: Not allowed
`)
	_, err := Parse(raw)
	if err == nil || !IsCategory(err, CategorySchemaViolation) {
		t.Fatalf("expected schema_violation, got %v", err)
	}
}

func TestParseUnknownNodeFieldIsSchemaViolation(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - name: Guide
    contents:
      - title: Install
        path: /install
        weight: 3
`)
	_, err := Parse(raw)
	if err == nil || !IsCategory(err, CategorySchemaViolation) {
		t.Fatalf("expected schema_violation, got %v", err)
	}
}

func TestParseTabWithoutName(t *testing.T) {
	raw := []byte(`
upper_tabs:
  - path: /nameless
`)
	_, err := Parse(raw)
	if err == nil || !IsCategory(err, CategorySchemaViolation) {
		t.Fatalf("expected schema_violation, got %v", err)
	}
}

func TestParseTabAttributes(t *testing.T) {
	raw := []byte(`
lower_tabs:
  - name: Terms
    path: /terms
    is_default: true
    skip_translation: true
    menu:
      - title: GitHub
        path: https://github.com/example/example
`)
	b, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tab := b.LowerTabs[0]
	if !tab.IsDefault || !tab.SkipTranslation {
		t.Fatalf("boolean tab attributes not decoded: %+v", tab)
	}
	if len(tab.Menu) != 1 || tab.Menu[0].Path != "https://github.com/example/example" {
		t.Fatalf("menu not decoded: %+v", tab.Menu)
	}
}

func TestParseFragmentShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"bare sequence", "- title: A\n  path: /a\n- heading: B\n", 2},
		{"contents wrapper", "contents:\n  - title: A\n    path: /a\n", 1},
		{"toc wrapper", "toc:\n  - heading: Intro\n", 1},
		{"single node", "name: Wrapper\ncontents:\n  - title: A\n    path: /a\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := ParseFragment([]byte(tc.raw))
			if err != nil {
				t.Fatalf("parse fragment: %v", err)
			}
			if len(nodes) != tc.want {
				t.Fatalf("expected %d nodes, got %d", tc.want, len(nodes))
			}
		})
	}
}

func TestParseFragmentSchemaViolationPropagates(t *testing.T) {
	_, err := ParseFragment([]byte("- heading: H\n  path: /x\n"))
	if err == nil || !IsCategory(err, CategorySchemaViolation) {
		t.Fatalf("expected schema_violation, got %v", err)
	}
}
