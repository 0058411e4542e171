package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"regexp"
	"strings"
)

// Sigil is the prefix of variable bindings ("locals"). Binding maps are
// keyed with the sigil included, e.g. "$delay" → "200ms".
const Sigil = "$"

// paramPattern matches "${name}" and "$name" substitution tokens inside
// string values.
var paramPattern = regexp.MustCompile(`\$\{([\w$]+)\}|\$([\w$]+)`)

// Interpolate substitutes "$name" and "${name}" tokens within a string
// value against the given bindings. Values that are not strings (numbers
// in particular) pass through unchanged. An unbound reference appends an
// error to errs and substitutes the empty string.
func Interpolate(value Value, params map[string]Value, errs *[]error) Value {
	original, ok := value.(string)
	if !ok {
		return value
	}
	str := paramPattern.ReplaceAllStringFunc(original, func(token string) string {
		name := token[1:] // strip the sigil
		name = strings.TrimPrefix(name, "{")
		name = strings.TrimSuffix(name, "}")
		v, bound := params[Sigil+name]
		if !bound {
			*errs = append(*errs, fmt.Errorf("please provide a value for the animation param %s%s", Sigil, name))
			tracer().Errorf("unbound animation param %s%s", Sigil, name)
			return ""
		}
		return fmt.Sprintf("%v", v)
	})
	if str == original {
		return value // avoid re-boxing when nothing was substituted
	}
	return str
}

// ContainsParams denotes whether a string value carries substitution
// tokens that Interpolate would rewrite.
func ContainsParams(value Value) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	return paramPattern.MatchString(str)
}
