package anim

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"regexp"
	"strconv"
)

// AnyState is the wildcard state in transition expressions.
const AnyState = "*"

// TransitionMatcher decides whether a transition fires for a
// (fromState, toState) pair. States are strings, bools or numbers.
type TransitionMatcher func(fromState, toState interface{}) bool

var transitionPattern = regexp.MustCompile(`^(\*|[-\w]+)\s*(<?[=-]>)\s*(\*|[-\w]+)$`)

// ParseTransitionExpr parses a transition expression into matcher
// functions. Expressions are comma-separated terms of the forms
//
//	"a => b", "a <=> b", "* => *", "void => *",
//	":enter", ":leave", ":increment", ":decrement"
//
// Boolean states match their aliases: "true"/"1" and "false"/"0".
// Malformed terms append an error to errs and yield no matcher.
func ParseTransitionExpr(expr string, errs *[]error) []TransitionMatcher {
	var matchers []TransitionMatcher
	for _, term := range commaSplitPattern.Split(expr, -1) {
		matchers = parseInnerTransition(term, matchers, errs)
	}
	return matchers
}

func parseInnerTransition(term string, matchers []TransitionMatcher, errs *[]error) []TransitionMatcher {
	if len(term) > 0 && term[0] == ':' {
		expanded, matcher, ok := expandTransitionAlias(term)
		if !ok {
			*errs = append(*errs, fmt.Errorf("the transition alias value %q is not supported", term))
			return matchers
		}
		if matcher != nil {
			return append(matchers, matcher)
		}
		term = expanded
	}
	m := transitionPattern.FindStringSubmatch(term)
	if m == nil {
		*errs = append(*errs, fmt.Errorf("the provided transition expression %q is not supported", term))
		return matchers
	}
	fromState, separator, toState := m[1], m[2], m[3]
	matchers = append(matchers, matchStates(fromState, toState))
	fullAnyState := fromState == AnyState && toState == AnyState
	if separator[0] == '<' && !fullAnyState {
		matchers = append(matchers, matchStates(toState, fromState))
	}
	return matchers
}

func expandTransitionAlias(alias string) (string, TransitionMatcher, bool) {
	switch alias {
	case ":enter":
		return "void => *", nil, true
	case ":leave":
		return "* => void", nil, true
	case ":increment":
		return "", func(from, to interface{}) bool {
			return stateNumber(to) > stateNumber(from)
		}, true
	case ":decrement":
		return "", func(from, to interface{}) bool {
			return stateNumber(to) < stateNumber(from)
		}, true
	}
	return "", nil, false
}

var trueBooleanValues = map[string]bool{"true": true, "1": true}
var falseBooleanValues = map[string]bool{"false": true, "0": true}

func matchStates(lhs, rhs string) TransitionMatcher {
	lhsIsBoolean := trueBooleanValues[lhs] || falseBooleanValues[lhs]
	rhsIsBoolean := trueBooleanValues[rhs] || falseBooleanValues[rhs]
	return func(fromState, toState interface{}) bool {
		lhsMatch := lhs == AnyState || stateEqual(lhs, fromState)
		rhsMatch := rhs == AnyState || stateEqual(rhs, toState)
		if !lhsMatch && lhsIsBoolean {
			if b, isBool := fromState.(bool); isBool {
				lhsMatch = matchBoolean(lhs, b)
			}
		}
		if !rhsMatch && rhsIsBoolean {
			if b, isBool := toState.(bool); isBool {
				rhsMatch = matchBoolean(rhs, b)
			}
		}
		return lhsMatch && rhsMatch
	}
}

func matchBoolean(token string, state bool) bool {
	if state {
		return trueBooleanValues[token]
	}
	return falseBooleanValues[token]
}

func stateEqual(token string, state interface{}) bool {
	return token == fmt.Sprintf("%v", state)
}

func stateNumber(state interface{}) float64 {
	switch s := state.(type) {
	case float64:
		return s
	case int:
		return float64(s)
	case string:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
