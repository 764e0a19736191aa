// Package selector implements CSS selector parsing and matching.
package selector

import (
	"github.com/go-parse/html5/dom"
)

// Selector represents a parsed CSS selector.
type Selector interface {
	// Match returns true if the element matches this selector.
	Match(element *dom.Element) bool

	// String returns the original selector string.
	String() string
}

// parsedSelector is the Selector implementation returned by Parse: a
// compiled AST plus the original source text for String().
type parsedSelector struct {
	ast selectorAST
	src string
}

func (s parsedSelector) Match(element *dom.Element) bool {
	return matchAST(element, s.ast)
}

func (s parsedSelector) String() string {
	return s.src
}

// Parse parses a CSS selector string into a matchable Selector.
func Parse(selector string) (Selector, error) {
	tz := newTokenizer(selector)
	tokens, err := tz.tokenize()
	if err != nil {
		return nil, err
	}

	ast, err := newParser(tokens, selector).parse()
	if err != nil {
		return nil, err
	}

	return parsedSelector{ast: ast, src: selector}, nil
}

// Match returns all elements in the subtree that match the selector.
func Match(root *dom.Element, selector string) ([]*dom.Element, error) {
	sel, err := Parse(selector)
	if err != nil {
		return nil, err
	}

	var results []*dom.Element
	matchDescendants(root, sel, &results)
	return results, nil
}

// MatchFirst returns the first element that matches the selector.
func MatchFirst(root *dom.Element, selector string) (*dom.Element, error) {
	sel, err := Parse(selector)
	if err != nil {
		return nil, err
	}

	return findFirst(root, sel), nil
}

func matchDescendants(elem *dom.Element, sel Selector, results *[]*dom.Element) {
	if sel.Match(elem) {
		*results = append(*results, elem)
	}
	for _, child := range elem.Children() {
		if childElem, ok := child.(*dom.Element); ok {
			matchDescendants(childElem, sel, results)
		}
	}
}

func findFirst(elem *dom.Element, sel Selector) *dom.Element {
	if sel.Match(elem) {
		return elem
	}
	for _, child := range elem.Children() {
		if childElem, ok := child.(*dom.Element); ok {
			if found := findFirst(childElem, sel); found != nil {
				return found
			}
		}
	}
	return nil
}

func init() {
	dom.QuerySelectorFunc = Match
	dom.QuerySelectorFirstFunc = MatchFirst
}
