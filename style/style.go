/*
Package style holds the style-map model used by the animation DSL and the
timeline compiler: property→value mappings, the auto/pre sentinels, and
the copy/merge/flatten operations performed on them while compiling.

A style map is the value payload of a single keyframe. Property keys are
plain CSS property names; values are strings or float64 numbers. Two
sentinel values exist: Auto ("*") stands for "whatever the element's
computed value turns out to be", and Pre ("!") marks a value that must be
captured from the live document immediately before playback starts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to 'anim.style'.
func tracer() tracing.Trace {
	return tracing.Select("anim.style")
}

// Value is a raw style property value: a string or a float64 number.
type Value = interface{}

// Sentinel property values.
const (
	// Auto resolves to the element's computed/previous value at playback time.
	Auto = "*"
	// Pre marks a value to be captured from the live document right before
	// playback.
	Pre = "!"
)

// Map is a property→value mapping for one style snapshot. Key order is
// irrelevant; keys are unique. A nil Map is a legal empty map for reading.
type Map map[string]Value

// Clone returns a shallow copy of the map. Cloning nil yields an empty,
// writable map.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// CopyInto copies all entries of src into dst, overwriting existing keys.
func CopyInto(dst Map, src Map) {
	for k, v := range src {
		dst[k] = v
	}
}

// --- Style tokens ----------------------------------------------------------

// Token is a single entry of a style step: either a literal style map or
// the wildcard "*", which stands for every property known on the element
// so far. Tokens are what style() calls carry in the AST.
type Token struct {
	styles   Map
	wildcard bool
}

// Tok wraps a literal style map into a token.
func Tok(m Map) Token {
	return Token{styles: m}
}

// WildcardTok returns the "*" token.
func WildcardTok() Token {
	return Token{wildcard: true}
}

// IsWildcard denotes whether the token is the "*" wildcard.
func (t Token) IsWildcard() bool {
	return t.wildcard
}

// Styles returns the literal style map of a non-wildcard token.
func (t Token) Styles() Map {
	return t.styles
}

// Flatten resolves a sequence of style tokens into one style map.
// The wildcard token expands to every property with a known value on
// the element at this point in time, each mapped to Auto: the element
// animates back to whatever its computed value will be. Later tokens
// overwrite earlier ones.
func Flatten(tokens []Token, allStyles Map) Map {
	styles := make(Map)
	for _, token := range tokens {
		if token.IsWildcard() {
			for prop := range allStyles {
				styles[prop] = Auto
			}
		} else {
			CopyInto(styles, token.Styles())
		}
	}
	return styles
}
