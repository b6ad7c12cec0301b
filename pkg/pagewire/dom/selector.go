package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// translateCSSToXPath converts a simple CSS selector into an XPath
// expression. It covers the subset the behavior layer configures with:
// tag, #id, .class, compounds of those, and space-separated descent.
// Combinators beyond the descendant space are not supported.
func translateCSSToXPath(css string) (string, error) {
	css = strings.TrimSpace(css)
	if css == "" {
		return "", fmt.Errorf("empty selector")
	}
	if css == "*" {
		return "//*", nil
	}

	var xpath strings.Builder
	xpath.WriteString("//")

	parts := strings.Fields(css)
	for i, part := range parts {
		if i > 0 {
			xpath.WriteString("//")
		}

		step, err := translateCompound(part)
		if err != nil {
			return "", err
		}
		xpath.WriteString(step)
	}
	return xpath.String(), nil
}

// translateCompound handles one compound selector like form#contact.wide.
func translateCompound(part string) (string, error) {
	tagName := "*"
	var predicates []string
	hasExplicitTag := false

	token := part
	for len(token) > 0 {
		switch {
		case strings.HasPrefix(token, "#"):
			end := simpleTokenEnd(token[1:])
			id := token[1 : 1+end]
			if id == "" || strings.Contains(id, "'") {
				return "", fmt.Errorf("unsupported id in selector %q", part)
			}
			predicates = append(predicates, fmt.Sprintf("@id='%s'", id))
			token = token[1+end:]

		case strings.HasPrefix(token, "."):
			end := simpleTokenEnd(token[1:])
			class := token[1 : 1+end]
			if class == "" || strings.Contains(class, "'") {
				return "", fmt.Errorf("unsupported class in selector %q", part)
			}
			predicates = append(predicates, classPredicate(class))
			token = token[1+end:]

		case !hasExplicitTag:
			end := simpleTokenEnd(token)
			tagName = strings.ToLower(token[:end])
			if !validTagName(tagName) {
				return "", fmt.Errorf("unsupported selector syntax in %q", part)
			}
			hasExplicitTag = true
			token = token[end:]

		default:
			return "", fmt.Errorf("unsupported selector syntax in %q", part)
		}
	}

	step := tagName
	if len(predicates) > 0 {
		step += "[" + strings.Join(predicates, " and ") + "]"
	}
	return step, nil
}

// classPredicate matches one class in a space-separated class attribute.
func classPredicate(class string) string {
	return fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), ' %s ')", class)
}

// validTagName accepts plain element names and the universal selector.
// Combinator characters land here when a selector uses syntax beyond
// the supported subset, and get rejected.
func validTagName(tag string) bool {
	if tag == "*" {
		return true
	}
	if tag == "" {
		return false
	}
	for _, r := range tag {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return false
		}
	}
	return true
}

func simpleTokenEnd(s string) int {
	if i := strings.IndexAny(s, ".#"); i >= 0 {
		return i
	}
	return len(s)
}

// queryOne runs a translated selector against a subtree root.
func queryOne(root *html.Node, css string) (*html.Node, error) {
	xpath, err := translateCSSToXPath(css)
	if err != nil {
		return nil, err
	}
	if root.Type != html.DocumentNode {
		xpath = "." + xpath
	}
	node, err := htmlquery.Query(root, xpath)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", css, err)
	}
	return node, nil
}

// queryAll runs a translated selector against a subtree root.
func queryAll(root *html.Node, css string) ([]*html.Node, error) {
	xpath, err := translateCSSToXPath(css)
	if err != nil {
		return nil, err
	}
	if root.Type != html.DocumentNode {
		xpath = "." + xpath
	}
	nodes, err := htmlquery.QueryAll(root, xpath)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", css, err)
	}
	return nodes, nil
}
