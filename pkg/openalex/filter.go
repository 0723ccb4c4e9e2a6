package openalex

import "sort"

// F expresses one or more filter or sort directives as nested key-value
// pairs. Values may be scalars, slices of scalars, nested F maps, or values
// wrapped with Not, Gt or Lt.
type F map[string]any

type wrapOp byte

// Prefix tokens the API understands in filter values.
const (
	opNot wrapOp = '!'
	opGt  wrapOp = '>'
	opLt  wrapOp = '<'
)

type wrapped struct {
	op    wrapOp
	inner any
}

// Not marks a single filter value as negated.
func Not(v any) any { return wrapped{op: opNot, inner: v} }

// Gt marks a single filter value as a greater-than comparison.
func Gt(v any) any { return wrapped{op: opGt, inner: v} }

// Lt marks a single filter value as a less-than comparison.
func Lt(v any) any { return wrapped{op: opLt, inner: v} }

// filterNode is the tagged variant behind a filter or sort expression:
// either a leaf holding one or more values, or a group of named children.
type filterNode interface {
	isFilterNode()
	clone() filterNode
}

// leaf holds the value(s) at the end of a dotted path. A single-element leaf
// renders as a plain token; multi-element leaves join with the conjunction
// token of the enclosing scope, or disjunctively when the leaf itself was set
// under an OR scope.
type leaf struct {
	or     bool
	values []any
}

func (*leaf) isFilterNode() {}

func (l *leaf) clone() filterNode {
	values := make([]any, len(l.values))
	copy(values, l.values)

	return &leaf{or: l.or, values: values}
}

// group is an inner node keyed by path segment. Child order is preserved so
// serialized filters are deterministic. The or flag switches the value join
// token for every descendant leaf.
type group struct {
	or       bool
	keys     []string
	children map[string]filterNode
}

func newEmptyGroup() *group {
	return &group{children: make(map[string]filterNode)}
}

func (*group) isFilterNode() {}

func (g *group) clone() filterNode {
	cloned := &group{
		or:       g.or,
		keys:     append([]string(nil), g.keys...),
		children: make(map[string]filterNode, len(g.children)),
	}
	for key, child := range g.children {
		cloned.children[key] = child.clone()
	}

	return cloned
}

// set merges one key-value pair into the group. Nested maps become child
// groups; everything else becomes a leaf, with op applied to every value.
func (g *group) set(key string, value any, or bool, op wrapOp) {
	g.merge(key, buildNode(value, or, op))
}

// buildNode converts a caller-supplied value into a tree node. Map keys fan
// out in sorted order so a multi-key map serializes deterministically.
func buildNode(value any, or bool, op wrapOp) filterNode {
	if nested, ok := toMap(value); ok {
		child := newEmptyGroup()
		child.or = or

		keys := make([]string, 0, len(nested))
		for key := range nested {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			child.merge(key, buildNode(nested[key], or, op))
		}

		return child
	}

	return &leaf{or: or, values: wrapValues(toSlice(value), op)}
}

// merge deep-merges node under key. Two groups merge recursively, two leaves
// coalesce their values into one list (OR-by-repetition at that key), and a
// shape mismatch is last-write-wins.
func (g *group) merge(key string, node filterNode) {
	existing, ok := g.children[key]
	if !ok {
		g.keys = append(g.keys, key)
		g.children[key] = node

		return
	}

	existingGroup, existingIsGroup := existing.(*group)

	incomingGroup, incomingIsGroup := node.(*group)
	if existingIsGroup && incomingIsGroup {
		if incomingGroup.or {
			existingGroup.or = true
		}

		for _, childKey := range incomingGroup.keys {
			existingGroup.merge(childKey, incomingGroup.children[childKey])
		}

		return
	}

	existingLeaf, existingIsLeaf := existing.(*leaf)

	incomingLeaf, incomingIsLeaf := node.(*leaf)
	if existingIsLeaf && incomingIsLeaf {
		if incomingLeaf.or {
			existingLeaf.or = true
		}

		existingLeaf.values = append(existingLeaf.values, incomingLeaf.values...)

		return
	}

	g.children[key] = node
}

// tokens flattens the tree into path:value tokens. orScope is inherited from
// the enclosing group unless this group sets its own.
func (g *group) tokens(prefix string, orScope bool) []string {
	joinOr := orScope || g.or

	var out []string

	for _, key := range g.keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch child := g.children[key].(type) {
		case *group:
			out = append(out, child.tokens(path, joinOr)...)
		case *leaf:
			out = append(out, path+":"+child.render(joinOr || child.or))
		}
	}

	return out
}

// render encodes the leaf values and joins them: "+" is the API's in-key
// conjunction token, "|" its disjunction token under an OR scope.
func (l *leaf) render(or bool) string {
	sep := "+"
	if or {
		sep = "|"
	}

	rendered := ""

	for i, value := range l.values {
		if i > 0 {
			rendered += sep
		}

		rendered += encodeValue(value)
	}

	return rendered
}

func toMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case F:
		return typed, true
	case map[string]any:
		return typed, true
	default:
		return nil, false
	}
}

// toSlice normalizes a scalar or slice value into a flat value list.
func toSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = v
		}

		return out
	case []int:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = v
		}

		return out
	default:
		return []any{value}
	}
}

// wrapValues applies an operator to every element, so a negated list renders
// each element independently negated.
func wrapValues(values []any, op wrapOp) []any {
	if op == 0 {
		return values
	}

	out := make([]any, len(values))
	for i, value := range values {
		out[i] = wrapped{op: op, inner: value}
	}

	return out
}
