package css

import (
	"strings"

	"cstyle/cache"
)

// Node is one materialized entry in a sheet's hierarchy. The closed set of
// implementations is Selector, Style and AtRule; nodes are immutable in
// content once created, and their Key is derived from that content.
type Node interface {
	cache.Keyed
	render(sb *strings.Builder)
}

// Selector is a leaf naming one rendered selector of a Style.
type Selector struct {
	key  string
	text string
}

// NewSelector creates a selector node for the given selector text.
func NewSelector(text string) *Selector {
	return &Selector{key: identity(text), text: text}
}

func (s *Selector) Key() string { return s.key }

// Text returns the selector text.
func (s *Selector) Text() string { return s.text }

func (s *Selector) render(sb *strings.Builder) {
	sb.WriteString(s.text)
}

// Style is a compiled declaration block together with every selector that
// currently references it. The declaration text is fixed at creation; only
// the selector cache changes over the style's lifetime.
type Style struct {
	key       string
	decls     string
	selectors *cache.Cache[Node]
}

// NewStyle creates a style node for the given compiled declaration text.
func NewStyle(decls string, listeners ...cache.Listener[Node]) *Style {
	return &Style{
		key:       identity(decls),
		decls:     decls,
		selectors: cache.New[Node](listeners...),
	}
}

func (s *Style) Key() string { return s.key }

// Declarations returns the compiled declaration text.
func (s *Style) Declarations() string { return s.decls }

// Selectors returns the refcounted cache of selectors pointing at this
// style.
func (s *Style) Selectors() *cache.Cache[Node] { return s.selectors }

// render emits "<selectors joined by comma>{<declarations>}". A style with
// zero declaration characters renders nothing, even with live selectors.
func (s *Style) render(sb *strings.Builder) {
	if s.decls == "" {
		return
	}
	for i, sel := range s.selectors.Values() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sel.render(sb)
	}
	sb.WriteByte('{')
	sb.WriteString(s.decls)
	sb.WriteByte('}')
}

// AtRule is a container keyed by its rule text (e.g. "@media print"). Its
// children hoist to the rule's own CSS nesting level and are wrapped in
// "<rule>{...}" when rendered.
type AtRule struct {
	key      string
	rule     string
	children *cache.Cache[Node]
}

// NewAtRule creates an at-rule container for the given rule text.
func NewAtRule(rule string, listeners ...cache.Listener[Node]) *AtRule {
	return &AtRule{
		key:      identity(rule),
		rule:     rule,
		children: cache.New[Node](listeners...),
	}
}

func (r *AtRule) Key() string { return r.key }

// Rule returns the at-rule text.
func (r *AtRule) Rule() string { return r.rule }

// Children returns the refcounted cache of nested styles and at-rules.
func (r *AtRule) Children() *cache.Cache[Node] { return r.children }

func (r *AtRule) render(sb *strings.Builder) {
	sb.WriteString(r.rule)
	sb.WriteByte('{')
	renderAll(sb, r.children)
	sb.WriteByte('}')
}

// renderAll concatenates the rendered text of every present child, no
// separator; each child self-terminates.
func renderAll(sb *strings.Builder, children *cache.Cache[Node]) {
	for _, n := range children.Values() {
		n.render(sb)
	}
}
