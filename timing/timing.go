/*
Package timing resolves duration/delay/easing expressions of the
animation DSL into normalized millisecond triples.

An expression is either a bare number (milliseconds), an already resolved
Timing, or a string of the form

	<number>("s"|"ms") [<number>("s"|"ms")] [<easing>]

e.g. "1s", "300ms 100ms", ".5s ease-out", "1s 50ms cubic-bezier(.17,.67,.88,.1)".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package timing

import (
	"fmt"
	"regexp"
	"strconv"
)

const oneSecond = 1000 // ms

// Timing is a normalized (duration, delay, easing) triple. Durations and
// delays are in milliseconds.
type Timing struct {
	Duration float64
	Delay    float64
	Easing   string
}

var timeValuePattern = regexp.MustCompile(`^(-?[\d.]+)(m?s)`)

var timeExprPattern = regexp.MustCompile(
	`(?i)^(-?[\d.]+)(m?s)(?:\s+(-?[\d.]+)(m?s))?(?:\s+([-a-z]+(?:\(.+?\))?))?$`)

// ResolveValue converts a bare timing value into milliseconds. Accepted
// are numbers (taken as ms) and strings with a leading "<number>s|ms"
// part. Anything else resolves to 0.
func ResolveValue(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		m := timeValuePattern.FindStringSubmatch(v)
		if m == nil {
			return 0
		}
		return toMilliseconds(m[1], m[2])
	}
	return 0
}

// Resolve normalizes a timing expression into a Timing. Recoverable
// problems (unparsable expression, negative duration or delay) are
// appended to errs; the returned Timing is then the zero triple resp.
// the parsed values. Negative values pass without error iff
// allowNegative is set (the stagger step relies on this).
func Resolve(expr interface{}, errs *[]error, allowNegative bool) Timing {
	switch e := expr.(type) {
	case Timing:
		return e
	case float64:
		return checked(Timing{Duration: e}, expr, errs, allowNegative)
	case int:
		return checked(Timing{Duration: float64(e)}, expr, errs, allowNegative)
	case string:
		m := timeExprPattern.FindStringSubmatch(e)
		if m == nil {
			*errs = append(*errs, fmt.Errorf("the provided timing value %q is invalid", e))
			return Timing{}
		}
		t := Timing{Duration: toMilliseconds(m[1], m[2])}
		if m[3] != "" {
			t.Delay = toMilliseconds(m[3], m[4])
		}
		t.Easing = m[5]
		return checked(t, expr, errs, allowNegative)
	}
	*errs = append(*errs, fmt.Errorf("the provided timing value %q is invalid", fmt.Sprintf("%v", expr)))
	return Timing{}
}

func checked(t Timing, expr interface{}, errs *[]error, allowNegative bool) Timing {
	if allowNegative {
		return t
	}
	if t.Duration >= 0 && t.Delay >= 0 {
		return t
	}
	*errs = append(*errs, fmt.Errorf("the provided timing value %q is invalid", fmt.Sprintf("%v", expr)))
	if t.Duration < 0 {
		*errs = append(*errs, fmt.Errorf("duration values below 0 are not allowed for this animation step"))
	}
	if t.Delay < 0 {
		*errs = append(*errs, fmt.Errorf("delay values below 0 are not allowed for this animation step"))
	}
	return t
}

func toMilliseconds(value string, unit string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	if unit == "s" {
		return f * oneSecond
	}
	return f
}
