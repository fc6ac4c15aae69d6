// Package css compiles nested declarative style trees into deduplicated
// CSS text. Each registration yields a stable, content-derived class name;
// structurally identical trees share every compiled node no matter the key
// order or how many times they are registered, and the rendered stylesheet
// contains each distinct block exactly once.
package css

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cstyle/cache"
)

// Sheet is the top-level registration surface: a container of compiled
// styles and at-rules with an externally assigned instance identity (a
// root has no content to hash from).
//
// All operations are synchronous pure computation; a Sheet shared across
// goroutines needs external serialization.
type Sheet struct {
	id       string
	children *cache.Cache[Node]
	log      *zap.Logger
	changes  []cache.Listener[Node]
}

// NewSheet creates an empty sheet. A nil logger is treated as a no-op
// logger; cache changes are logged at Debug level.
func NewSheet(log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sheet{
		id:  uuid.NewString(),
		log: log.Named("sheet"),
	}
	s.changes = []cache.Listener[Node]{s.logChange}
	s.children = cache.New[Node](s.changes...)
	return s
}

// ID returns the sheet's instance identity.
func (s *Sheet) ID() string { return s.id }

// Children returns the sheet's top-level refcounted node cache.
func (s *Sheet) Children() *cache.Cache[Node] { return s.children }

func (s *Sheet) logChange(ev cache.Event, n Node) {
	s.log.Debug("cache change", zap.String("event", string(ev)), zap.String("key", n.Key()))
}

// recorded pairs a selector (relative to the synthetic root "&") with the
// canonical style it resolved to during one walk.
type recorded struct {
	selector string
	style    *Style
}

// registration is the explicit accumulator threaded through the walk: the
// running chained hash plus the selector/style pairs collected so far.
type registration struct {
	hash  uint32
	pairs []recorded
}

// Register compiles a style tree into the sheet and returns its class
// name. Equal normalized trees return equal class names and reuse every
// underlying node; rolling a registration back requires replaying the
// identical tree through Deregister.
func (s *Sheet) Register(t Tree) string {
	l := compileTree(t)
	reg := &registration{hash: hashSeed}
	s.walk(reg, s.children, "&", l)

	name := className(l, reg.hash)
	root := "." + name
	for _, p := range reg.pairs {
		p.style.selectors.Add(NewSelector(interpolate(p.selector, root)))
	}
	s.log.Debug("style registered", zap.String("class", name), zap.Int("layers", len(reg.pairs)))
	return name
}

// RegisterRule compiles a style tree under a literal selector or at-rule
// text, e.g. "body" or "@font-face", instead of a generated class. It
// returns the content hash of the registration.
func (s *Sheet) RegisterRule(rule string, t Tree) string {
	l := compileTree(t)
	reg := &registration{hash: hashString(hashSeed, rule)}
	s.walk(reg, s.children, rule, l)

	for _, p := range reg.pairs {
		p.style.selectors.Add(NewSelector(p.selector))
	}
	s.log.Debug("rule registered", zap.String("rule", rule))
	return hashName(reg.hash)
}

// walk compiles one layer in pre-order: the layer's style joins the
// current container, the running hash absorbs the current selector then
// the declaration text, and nested layers follow in sorted key order.
// At-rule keys open a new container under the current one but keep the
// current selector; other keys keep the container and interpolate the
// selector.
func (s *Sheet) walk(reg *registration, parent *cache.Cache[Node], selector string, l *layer) {
	st := parent.Add(NewStyle(l.text, s.changes...)).(*Style)
	reg.pairs = append(reg.pairs, recorded{selector: selector, style: st})
	reg.hash = hashString(reg.hash, selector)
	reg.hash = hashString(reg.hash, l.text)

	for _, n := range l.nested {
		if strings.HasPrefix(n.key, "@") {
			rule := parent.Add(NewAtRule(n.key, s.changes...)).(*AtRule)
			s.walk(reg, rule.children, selector, n.layer)
		} else {
			s.walk(reg, parent, interpolate(n.key, selector), n.layer)
		}
	}
}

// removal remembers one node reference taken during a registration so the
// rollback can drop references symmetrically.
type removal struct {
	from *cache.Cache[Node]
	node Node
}

type rollback struct {
	hash     uint32
	pairs    []recorded
	removals []removal
}

// Deregister replays a previously registered tree with removals, so every
// reference the registration took is dropped and fully released nodes
// evict. Nodes the tree never produced are silently skipped; deregistering
// a tree that was not registered is a no-op.
func (s *Sheet) Deregister(t Tree) {
	l := compileTree(t)
	rb := &rollback{hash: hashSeed}
	s.resolve(rb, s.children, "&", l)

	root := "." + className(l, rb.hash)
	for _, p := range rb.pairs {
		p.style.selectors.Remove(NewSelector(interpolate(p.selector, root)))
	}
	// Children before parents, mirroring the registration order.
	for i := len(rb.removals) - 1; i >= 0; i-- {
		rb.removals[i].from.Remove(rb.removals[i].node)
	}
	s.log.Debug("style deregistered", zap.String("class", root[1:]))
}

// resolve mirrors walk but looks nodes up instead of adding them, keeping
// the hash computation identical so the class name comes out the same.
func (s *Sheet) resolve(rb *rollback, parent *cache.Cache[Node], selector string, l *layer) {
	rb.hash = hashString(rb.hash, selector)
	rb.hash = hashString(rb.hash, l.text)
	if n, ok := parent.Get(identity(l.text)); ok {
		if st, ok := n.(*Style); ok {
			rb.pairs = append(rb.pairs, recorded{selector: selector, style: st})
			rb.removals = append(rb.removals, removal{from: parent, node: st})
		}
	}

	for _, nested := range l.nested {
		if strings.HasPrefix(nested.key, "@") {
			n, ok := parent.Get(identity(nested.key))
			if !ok {
				continue
			}
			rule, ok := n.(*AtRule)
			if !ok {
				continue
			}
			rb.removals = append(rb.removals, removal{from: parent, node: rule})
			s.resolve(rb, rule.children, selector, nested.layer)
		} else {
			s.resolve(rb, parent, interpolate(nested.key, selector), nested.layer)
		}
	}
}

// Merge replays every live node of other into this sheet, taking one
// reference per entry recursively. Nodes new to this sheet are stored by
// instance, not copied, so merged sheets share canonical nodes; Unmerge is
// the symmetric rollback.
func (s *Sheet) Merge(other *Sheet) {
	mergeNodes(s.children, other.children)
	s.log.Debug("sheet merged", zap.String("from", other.id))
}

// Unmerge drops the references a Merge of other took, evicting nodes whose
// count reaches zero.
func (s *Sheet) Unmerge(other *Sheet) {
	unmergeNodes(s.children, other.children)
	s.log.Debug("sheet unmerged", zap.String("from", other.id))
}

func mergeNodes(dst, src *cache.Cache[Node]) {
	for _, n := range src.Values() {
		canonical := dst.Add(n)
		if canonical == n {
			continue
		}
		switch c := canonical.(type) {
		case *Style:
			mergeNodes(c.selectors, n.(*Style).selectors)
		case *AtRule:
			mergeNodes(c.children, n.(*AtRule).children)
		}
	}
}

func unmergeNodes(dst, src *cache.Cache[Node]) {
	for _, n := range src.Values() {
		canonical, ok := dst.Get(n.Key())
		if !ok {
			continue
		}
		if canonical != n && dst.Count(n) > 1 {
			switch c := canonical.(type) {
			case *Style:
				unmergeNodes(c.selectors, n.(*Style).selectors)
			case *AtRule:
				unmergeNodes(c.children, n.(*AtRule).children)
			}
		}
		dst.Remove(n)
	}
}

// String renders the full CSS text of the live hierarchy, top-down.
func (s *Sheet) String() string {
	var sb strings.Builder
	renderAll(&sb, s.children)
	return sb.String()
}

// WriteTo writes the rendered CSS to w, implementing io.WriterTo.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// className derives the class name from the accumulated hash, prefixed so
// it never starts with a digit, with an optional $displayName prefix.
func className(l *layer, h uint32) string {
	name := "f" + hashName(h)
	if l.displayName != "" {
		name = safeName(l.displayName) + "_" + name
	}
	return name
}

// safeName replaces characters that cannot appear in a CSS class name.
func safeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
