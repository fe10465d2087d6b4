package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FirstHeading returns the text of the first markdown heading in the
// note body, or "" when there is none. Display-only: result lists use
// it when a note has neither a subject line nor a meaningful name.
func FirstHeading(raw []byte) string {
	// Frontmatter is stripped so a stray scalar in the block cannot
	// masquerade as a heading.
	_, body := splitFrontMatter(raw)

	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var heading string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			heading = strings.TrimSpace(string(h.Text(body)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return heading
}
