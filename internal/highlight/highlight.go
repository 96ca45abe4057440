// Package highlight colours source snippets with Chroma for terminal
// output.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/xonecas/reach/internal/constants"
)

// Highlight returns text with ANSI colours for language using the named
// Chroma theme, or constants.SyntaxTheme when theme is empty. Unknown
// languages and formatting errors return text unchanged.
func Highlight(text, language, theme string) string {
	lex := lexers.Get(language)
	if lex == nil {
		return text
	}
	lex = chroma.Coalesce(lex)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	if theme == "" {
		theme = constants.SyntaxTheme
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, styles.Get(theme), it); err != nil {
		return text
	}
	return strings.TrimRight(buf.String(), "\n")
}
