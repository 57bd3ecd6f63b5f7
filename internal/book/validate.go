package book

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity indicates the importance level of a validation issue.
type Severity int

const (
	// SeverityInfo indicates informational findings.
	SeverityInfo Severity = iota
	// SeverityWarning indicates issues that should be fixed but don't block
	// a site build.
	SeverityWarning
	// SeverityError indicates issues a renderer cannot work around.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON emits the severity name rather than its ordinal.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Issue is a single non-fatal validation finding. Validate never fails;
// callers decide whether an issue aborts the site build.
type Issue struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Position string   `json:"position"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s (%s)", i.Severity, i.Rule, i.Message, i.Position)
}

// HasErrors reports whether any error-level issues exist.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any warning-level issues exist.
func HasWarnings(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Promote raises every warning to an error, for strict mode.
func Promote(issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, iss := range issues {
		if iss.Severity == SeverityWarning {
			iss.Severity = SeverityError
		}
		out[i] = iss
	}
	return out
}

// Validate walks the forest and reports structural issues that parsing does
// not reject: duplicate sibling paths, empty containers, paths that are not
// site-relative, duplicate tab names, blank labels. Unresolved include nodes
// are reported as info so hosts that validate before resolution are not
// drowned in warnings.
func Validate(b *Book) []Issue {
	v := &validator{}
	v.tabs(b.UpperTabs, "upper_tabs")
	v.tabs(b.LowerTabs, "lower_tabs")
	return v.issues
}

type validator struct {
	issues []Issue
}

func (v *validator) add(sev Severity, rule, pos, format string, args ...any) {
	v.issues = append(v.issues, Issue{
		Severity: sev,
		Rule:     rule,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) tabs(tabs []*Tab, pos string) {
	seen := map[string]int{}
	for i, t := range tabs {
		tabPos := pos + "[" + strconv.Itoa(i) + "]"
		if prev, ok := seen[t.Name]; ok {
			v.add(SeverityWarning, "duplicate-tab-name", tabPos,
				"tab name %q already used at %s[%d]", t.Name, pos, prev)
		} else {
			seen[t.Name] = i
		}
		if t.Path != "" {
			v.checkPath(t.Path, tabPos+".path", false)
		}
		// Menu entries commonly link off-site, so external URLs pass there.
		v.nodes(t.Menu, tabPos+".menu", true)
		v.nodes(t.Contents, tabPos+".contents", false)
	}
}

func (v *validator) nodes(nodes []*Node, pos string, menu bool) {
	paths := map[string]int{}
	for i, n := range nodes {
		nodePos := pos + "[" + strconv.Itoa(i) + "]"
		switch n.Kind() {
		case KindInclude:
			v.add(SeverityInfo, "unresolved-include", nodePos,
				"include %q not yet resolved", n.Include)
		case KindHeading:
			if strings.TrimSpace(n.Heading) == "" {
				v.add(SeverityWarning, "blank-label", nodePos, "heading label is blank")
			}
		case KindLink:
			if strings.TrimSpace(n.Label()) == "" {
				v.add(SeverityWarning, "blank-label", nodePos, "link title is blank")
			}
			v.checkPath(n.Path, nodePos+".path", menu)
			if prev, ok := paths[n.Path]; ok {
				v.add(SeverityWarning, "duplicate-path", nodePos,
					"path %q already used by sibling %s[%d]", n.Path, pos, prev)
			} else {
				paths[n.Path] = i
			}
		case KindContainer:
			if strings.TrimSpace(n.Label()) == "" {
				v.add(SeverityWarning, "blank-label", nodePos, "container label is blank")
			}
			if len(n.Children) == 0 {
				v.add(SeverityWarning, "empty-container", nodePos,
					"container %q has no children", n.Label())
			}
			if n.Path != "" {
				v.checkPath(n.Path, nodePos+".path", menu)
			}
			v.nodes(n.Children, nodePos+".contents", menu)
		}
	}
}

func (v *validator) checkPath(path, pos string, menu bool) {
	if strings.HasPrefix(path, "/") {
		return
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if !menu {
			v.add(SeverityWarning, "external-path", pos,
				"path %q leaves the site; expected a site-relative path", path)
		}
		return
	}
	v.add(SeverityWarning, "relative-path", pos,
		"path %q is not site-relative (must start with /)", path)
}
