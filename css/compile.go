package css

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tree is one layer of a user style tree. Keys are property names (in
// camelCase or hyphen-case), nested selector fragments, or at-rule strings
// (starting with "@"). Values are scalars, slices of scalars, or nested
// Trees. Keys starting with "$" are directives and never emitted as CSS.
type Tree map[string]any

// DisplayName is the directive key that prefixes the generated class name,
// mainly useful for debugging rendered output.
const DisplayName = "$displayName"

// declaration is one property with its stringified values. Several values
// mean a CSS fallback chain: one declaration line per value, in order.
type declaration struct {
	property string
	values   []string
}

type nestedLayer struct {
	key   string
	layer *layer
}

// layer is the canonical form of one Tree level: properties and nested
// layers in sorted key order, with the declaration text precompiled. All
// classification of user values happens here, once; the tree walk never
// inspects raw values again.
type layer struct {
	displayName string
	decls       []declaration
	nested      []nestedLayer
	text        string
}

// compileTree normalizes a user style tree into its canonical layered
// form. Two trees with equal normalized content compile to identical
// layers regardless of map key order.
func compileTree(t Tree) *layer {
	return compileLayer(map[string]any(t))
}

func compileLayer(m map[string]any) *layer {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	l := &layer{}
	var text strings.Builder
	for _, rawKey := range keys {
		key := strings.TrimSpace(rawKey)
		value := m[rawKey]

		if strings.HasPrefix(key, "$") {
			if key == DisplayName {
				l.displayName = formatScalar(value)
			}
			continue
		}
		if child, ok := asLayer(value); ok {
			l.nested = append(l.nested, nestedLayer{key: key, layer: compileLayer(child)})
			continue
		}

		d := declaration{property: hyphenate(key), values: scalarValues(value)}
		l.decls = append(l.decls, d)
		for _, v := range d.values {
			text.WriteString(d.property)
			text.WriteByte(':')
			text.WriteString(v)
			text.WriteByte(';')
		}
	}
	l.text = text.String()
	return l
}

// asLayer reports whether value is a plain nested mapping.
func asLayer(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case Tree:
		return map[string]any(m), true
	case map[string]any:
		return m, true
	}
	return nil, false
}

// scalarValues stringifies a property value. nil yields no values (the
// property is omitted); a slice yields one value per element in slice
// order, without deduplication, so CSS fallback chains survive.
func scalarValues(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, formatScalar(e))
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return []string{formatScalar(value)}
	}
}

// formatScalar turns a scalar into CSS value text. Numbers never get a
// unit suffix. Anything unexpected is stringified rather than rejected.
func formatScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}

// hyphenate converts a camelCase property name to hyphen-case: a "-" is
// inserted before every uppercase letter and the result lowered. A leading
// "ms" segment additionally gets a leading "-" so Microsoft vendor
// prefixes come out as "-ms-...". Other vendor prefixes need no special
// case since their leading capital already produces the dash.
func hyphenate(property string) string {
	var b strings.Builder
	b.Grow(len(property) + 4)
	for i := 0; i < len(property); i++ {
		c := property[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
		} else {
			b.WriteByte(c)
		}
	}
	s := b.String()
	if strings.HasPrefix(s, "ms-") {
		s = "-" + s
	}
	return s
}

// interpolate combines a nested selector fragment with its parent
// selector: every "&" placeholder is replaced with the parent verbatim,
// and a fragment without a placeholder becomes a descendant of the parent.
func interpolate(key, parent string) string {
	if strings.Contains(key, "&") {
		return strings.ReplaceAll(key, "&", parent)
	}
	return parent + " " + key
}
