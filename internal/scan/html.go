package scan

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// tagPattern is a cheap check for markup; plain prose with a stray "<" must
// not be run through the HTML parser.
var tagPattern = regexp.MustCompile(`<(?:!--|/?[a-zA-Z][^>]*)>`)

// VisibleText reduces a document body to scannable text. Lore pages
// authored as HTML are stripped to their visible text nodes; plain text
// passes through untouched.
func VisibleText(text string) string {
	if !tagPattern.MatchString(text) {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}
