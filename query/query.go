/*
Package query implements the element query driver on top of CSS
selector matching: selectors produced by the animation DSL are resolved
to the matching descendants of an element, in document order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package query

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// tracer traces to 'anim.query'.
func tracer() tracing.Trace {
	return tracing.Select("anim.query")
}

// Driver resolves query() selectors against an HTML tree. It satisfies
// the timeline compiler's QueryDriver interface.
type Driver struct{}

// Query returns the descendants of element matching selector, in
// document order. The element itself is never part of the result. With
// multi unset at most one match is returned. Unparsable selectors
// yield no matches (and a trace message).
func (Driver) Query(element *html.Node, selector string, multi bool) []*html.Node {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		tracer().Errorf("query(%q): %v", selector, err)
		return nil
	}
	matches := sel.MatchAll(element)
	results := make([]*html.Node, 0, len(matches))
	for _, m := range matches {
		if m == element {
			continue
		}
		results = append(results, m)
		if !multi {
			break
		}
	}
	return results
}

// ParseHTML parses an HTML document fragment and returns its root
// node. A convenience for setting up trees to animate.
func ParseHTML(src string) (*html.Node, error) {
	return html.Parse(strings.NewReader(src))
}

// First returns the first descendant of root matching selector, or nil.
func First(root *html.Node, selector string) *html.Node {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		tracer().Errorf("first(%q): %v", selector, err)
		return nil
	}
	return sel.MatchFirst(root)
}
