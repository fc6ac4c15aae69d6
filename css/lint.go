package css

import (
	"bytes"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	tdcss "github.com/tdewolff/parse/v2/css"
)

// Lint runs rendered CSS through a tokenizer and reports structural
// problems: unbalanced braces and tokenizer errors. It is a sanity pass
// over the engine's own output, not a CSS validator; an empty result means
// the text tokenized cleanly.
func Lint(cssText string) []string {
	var warnings []string

	lexer := tdcss.NewLexer(parse.NewInput(bytes.NewReader([]byte(cssText))))
	depth := 0
	for {
		tt, _ := lexer.Next()
		switch tt {
		case tdcss.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				warnings = append(warnings, fmt.Sprintf("tokenizer error: %v", err))
			}
			if depth != 0 {
				warnings = append(warnings, fmt.Sprintf("unbalanced braces: depth %d at end of input", depth))
			}
			return warnings
		case tdcss.LeftBraceToken:
			depth++
		case tdcss.RightBraceToken:
			depth--
			if depth < 0 {
				warnings = append(warnings, "unexpected '}'")
				depth = 0
			}
		}
	}
}
