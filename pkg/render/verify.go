package render

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CountLinks parses doc as Markdown and counts list items that carry a link.
// For a rendered document this equals the number of article links.
func CountLinks(doc []byte) int {
	root := goldmark.New().Parser().Parse(text.NewReader(doc))

	count := 0
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindListItem {
			return ast.WalkContinue, nil
		}
		if containsLink(n) {
			count++
		}
		return ast.WalkSkipChildren, nil
	})
	return count
}

func containsLink(n ast.Node) bool {
	found := false
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && child.Kind() == ast.KindLink {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
