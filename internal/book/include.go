package book

import (
	"context"
	"slices"
	"strconv"
)

// Resolver supplies the fragment referenced by an include node. The
// resolution mechanism (filesystem, HTTP, registry) is the host's choice;
// the loader only requires the capability.
type Resolver interface {
	Resolve(ctx context.Context, ref string) ([]*Node, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, ref string) ([]*Node, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, ref string) ([]*Node, error) {
	return f(ctx, ref)
}

// ResolveIncludes replaces every include node with the fragment the resolver
// supplies for its reference, recursively: fragments may themselves contain
// includes, resolved under the same stack. The input book is not mutated;
// the returned book is a fresh tree.
//
// Fails with a cyclic_include error when a reference is revisited on the
// current resolution stack, and with an unresolved_include error (wrapping
// the resolver's failure) when a fragment cannot be supplied.
func ResolveIncludes(ctx context.Context, b *Book, r Resolver) (*Book, error) {
	out := &Book{}
	var err error
	if out.UpperTabs, err = resolveTabs(ctx, b.UpperTabs, r, "upper_tabs"); err != nil {
		return nil, err
	}
	if out.LowerTabs, err = resolveTabs(ctx, b.LowerTabs, r, "lower_tabs"); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveNodeIncludes resolves includes within a bare node list (fragment
// level entry point for hosts that load fragments directly).
func ResolveNodeIncludes(ctx context.Context, nodes []*Node, r Resolver) ([]*Node, error) {
	return resolveNodes(ctx, nodes, r, "", nil)
}

func resolveTabs(ctx context.Context, tabs []*Tab, r Resolver, pos string) ([]*Tab, error) {
	if tabs == nil {
		return nil, nil
	}
	out := make([]*Tab, 0, len(tabs))
	for i, t := range tabs {
		tabPos := pos + "[" + strconv.Itoa(i) + "]"
		rt := &Tab{
			Name:            t.Name,
			Path:            t.Path,
			IsDefault:       t.IsDefault,
			SkipTranslation: t.SkipTranslation,
		}
		var err error
		if rt.Menu, err = resolveNodes(ctx, t.Menu, r, tabPos+".menu", nil); err != nil {
			return nil, err
		}
		if rt.Contents, err = resolveNodes(ctx, t.Contents, r, tabPos+".contents", nil); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, nil
}

// resolveNodes splices resolved fragments in place of include nodes,
// preserving sibling order. stack holds the include references currently
// being expanded, outermost first.
func resolveNodes(ctx context.Context, nodes []*Node, r Resolver, pos string, stack []string) ([]*Node, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]*Node, 0, len(nodes))
	for i, n := range nodes {
		nodePos := pos + "[" + strconv.Itoa(i) + "]"
		if n.Include == "" {
			rn := n.Clone()
			children, err := resolveNodes(ctx, n.Children, r, nodePos+".contents", stack)
			if err != nil {
				return nil, err
			}
			rn.Children = children
			out = append(out, rn)
			continue
		}

		ref := n.Include
		if slices.Contains(stack, ref) {
			return nil, cyclicInclude(nodePos, ref, append(slices.Clone(stack), ref))
		}
		fragment, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, unresolvedInclude(err, nodePos, ref)
		}
		spliced, err := resolveNodes(ctx, fragment, r, nodePos, append(stack, ref))
		if err != nil {
			return nil, err
		}
		out = append(out, spliced...)
	}
	return out, nil
}

// HasIncludes reports whether any include node remains in the forest.
func HasIncludes(b *Book) bool {
	for _, tabs := range [][]*Tab{b.UpperTabs, b.LowerTabs} {
		for _, t := range tabs {
			if nodesHaveIncludes(t.Menu) || nodesHaveIncludes(t.Contents) {
				return true
			}
		}
	}
	return false
}

func nodesHaveIncludes(nodes []*Node) bool {
	for _, n := range nodes {
		if n.Include != "" || nodesHaveIncludes(n.Children) {
			return true
		}
	}
	return false
}
