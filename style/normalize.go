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

var camelCasePattern = regexp.MustCompile(`([a-z])([A-Z])`)

// NormalizePropertyName rewrites a camelCased property name into its
// dash-cased CSS form, e.g. "backgroundColor" → "background-color".
// Dash-cased names pass through unchanged.
func NormalizePropertyName(prop string) string {
	return strings.ToLower(camelCasePattern.ReplaceAllString(prop, "$1-$2"))
}

// Properties whose bare numeric values denote pixel lengths.
var dimensionalProps = map[string]bool{
	"width": true, "height": true,
	"min-width": true, "min-height": true,
	"max-width": true, "max-height": true,
	"top": true, "bottom": true, "left": true, "right": true,
	"font-size": true, "line-height": true, "letter-spacing": true, "word-spacing": true,
	"margin": true, "margin-top": true, "margin-bottom": true, "margin-left": true, "margin-right": true,
	"padding": true, "padding-top": true, "padding-bottom": true, "padding-left": true, "padding-right": true,
	"border-radius": true, "border-width": true,
	"border-top-width": true, "border-bottom-width": true, "border-left-width": true, "border-right-width": true,
	"outline-width": true, "outline-offset": true,
	"perspective": true, "translate": true,
}

var bareNumberPattern = regexp.MustCompile(`^[+-]?[\d.]+([a-z%]*)$`)

// NormalizeStyleValue renders a style value as the CSS string a playback
// engine expects. Bare numbers on dimensional properties (width, top,
// font-size, …) get a "px" suffix; a unit-less numeric string on such a
// property appends an error to errs. prop is the property name as
// authored, normalizedProp its dash-cased form.
func NormalizeStyleValue(prop string, normalizedProp string, value Value, errs *[]error) string {
	unit := ""
	strVal := strings.TrimSpace(fmt.Sprintf("%v", value))
	if dimensionalProps[normalizedProp] && strVal != "0" {
		if _, isNum := value.(float64); isNum {
			unit = "px"
		} else if _, isInt := value.(int); isInt {
			unit = "px"
		} else if m := bareNumberPattern.FindStringSubmatch(strVal); m != nil && m[1] == "" {
			*errs = append(*errs, fmt.Errorf("please provide a CSS unit value for %s:%s", prop, strVal))
		}
	}
	return strVal + unit
}
