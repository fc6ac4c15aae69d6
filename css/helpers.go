package css

import (
	"fmt"
	"sort"
	"strings"
)

// uriSafe lists the bytes left unescaped by URL: alphanumerics plus the
// unreserved and reserved URI punctuation.
const uriSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()#"

const upperhex = "0123456789ABCDEF"

// URL percent-encodes s and wraps it as a CSS url() value.
func URL(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 7)
	b.WriteString(`url("`)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(uriSafe, c) >= 0 {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	b.WriteString(`")`)
	return b.String()
}

// Join flattens class name fragments into one space-separated class
// string. It accepts strings, string slices, nested []any, and
// map[string]bool where only keys mapped to true are kept (in sorted
// order, since Go map iteration is unordered). Empty and nil fragments
// vanish; anything else is stringified.
func Join(parts ...any) string {
	var names []string
	appendPart(&names, parts)
	return strings.Join(names, " ")
}

func appendPart(names *[]string, part any) {
	switch v := part.(type) {
	case nil:
	case string:
		if v != "" {
			*names = append(*names, v)
		}
	case []string:
		for _, s := range v {
			appendPart(names, s)
		}
	case []any:
		for _, p := range v {
			appendPart(names, p)
		}
	case map[string]bool:
		keys := make([]string, 0, len(v))
		for k, on := range v {
			if on {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		*names = append(*names, keys...)
	default:
		appendPart(names, fmt.Sprint(v))
	}
}
