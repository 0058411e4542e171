package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/aymerick/douceur/parser"
)

// ParseDecls parses a CSS declaration block, e.g.
//
//	"opacity: 0; height: 100px"
//
// into a style map. It is a convenience for building style steps from CSS
// text instead of literal maps. Parsing is delegated to the douceur CSS
// parser; important-flags are ignored (they have no meaning inside an
// animation step).
func ParseDecls(decls string) (Map, error) {
	parsed, err := parser.ParseDeclarations(decls)
	if err != nil {
		tracer().Errorf("cannot parse style declarations: %v", err)
		return nil, err
	}
	m := make(Map, len(parsed))
	for _, d := range parsed {
		m[d.Property] = d.Value
	}
	return m, nil
}
