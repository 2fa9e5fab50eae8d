package changelog

import (
	"fmt"
	"strings"
)

// hashPlaceholder is the only placeholder a link template may contain.
const hashPlaceholder = "hash"

// FormatLink expands {hash} in layout with hash. Literal braces are written
// as {{ and }}. Unknown placeholders and unbalanced braces fail with ErrLinkFormat.
func FormatLink(layout, hash string) (string, error) {
	var b strings.Builder
	b.Grow(len(layout) + len(hash))

	for i := 0; i < len(layout); i++ {
		ch := layout[i]
		switch ch {
		case '{':
			if i+1 < len(layout) && layout[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(layout[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d in %q", ErrLinkFormat, i, layout)
			}
			name := strings.TrimSpace(layout[i+1 : i+1+end])
			if name != hashPlaceholder {
				return "", fmt.Errorf("%w: unknown placeholder {%s} in %q", ErrLinkFormat, name, layout)
			}
			b.WriteString(hash)
			i += end + 1
		case '}':
			if i+1 < len(layout) && layout[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: unmatched '}' at offset %d in %q", ErrLinkFormat, i, layout)
		default:
			b.WriteByte(ch)
		}
	}

	return b.String(), nil
}
