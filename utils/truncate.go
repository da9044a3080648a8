package utils

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// TruncateHTMLWords shortens rendered HTML to at most limit words while
// keeping the markup well formed: tags still open at the cut point are
// closed in reverse order and an ellipsis marks the truncation. Words are
// only counted inside text nodes, so markup never inflates the count.
func TruncateHTMLWords(input string, limit int) string {
	if limit <= 0 {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(input))
	var out strings.Builder
	var open []string
	words := 0
	truncated := false

loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			break loop
		case html.TextToken:
			text := string(z.Text())
			fields := strings.Fields(text)
			if words+len(fields) <= limit {
				words += len(fields)
				out.Write(z.Raw())
				continue
			}
			if remaining := limit - words; remaining > 0 {
				// Keep the boundary whitespace so words from adjacent
				// nodes do not run together.
				if strings.TrimLeftFunc(text, unicode.IsSpace) != text {
					out.WriteString(" ")
				}
				out.WriteString(html.EscapeString(strings.Join(fields[:remaining], " ")))
				out.WriteString(" …")
			} else {
				out.WriteString("…")
			}
			truncated = true
			break loop
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				open = append(open, string(name))
			}
			out.Write(z.Raw())
		case html.EndTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == name {
					open = append(open[:i], open[i+1:]...)
					break
				}
			}
			out.Write(z.Raw())
		default:
			out.Write(z.Raw())
		}
	}

	if truncated {
		for i := len(open) - 1; i >= 0; i-- {
			out.WriteString("</" + open[i] + ">")
		}
	}
	return out.String()
}
