package anim

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"regexp"
	"strings"

	"github.com/swseverance/angular/style"
)

// Selector fragments produced by query-selector normalization.
const (
	selfToken         = ":self"
	TriggerSelector   = ".ng-trigger"
	AnimatingSelector = ".ng-animating"
)

// --- Style steps -----------------------------------------------------------

// Style creates a style() step from a literal style map.
func Style(m style.Map) *StyleNode {
	return &StyleNode{Styles: []style.Token{style.Tok(m)}}
}

// StyleText creates a style() step from CSS declaration text, e.g.
//
//	anim.StyleText("opacity: 0; height: 100px")
//
// Unparsable text yields an empty style step (and a trace message); the
// declaration parser is forgiving enough for this to be rare.
func StyleText(decls string) *StyleNode {
	m, err := style.ParseDecls(decls)
	if err != nil {
		tracer().Errorf("style(%q): %v", decls, err)
		m = style.Map{}
	}
	return Style(m)
}

// StyleTokens creates a style() step from raw tokens, allowing the "*"
// wildcard to be mixed with literal maps.
func StyleTokens(tokens ...style.Token) *StyleNode {
	return &StyleNode{Styles: tokens}
}

// WildcardStyle creates the style("*") step: re-assert every property
// known on the element so far.
func WildcardStyle() *StyleNode {
	return StyleTokens(style.WildcardTok())
}

// WithOffset places a style step at a keyframe offset in [0,1].
func (s *StyleNode) WithOffset(offset float64) *StyleNode {
	s.Offset = offset
	return s
}

// WithEasing sets the easing into this style step.
func (s *StyleNode) WithEasing(easing string) *StyleNode {
	s.Easing = easing
	return s
}

// --- Timed steps -----------------------------------------------------------

// Animate creates an animate() step. timings is a number of milliseconds
// or a timing string (see package timing); the string form may contain
// "$var" substitutions, which are resolved against the active bindings
// at compile time. styles is a *StyleNode, a *KeyframesNode, or nil for
// the "empty step" form animate(duration) that animates every known
// property to its computed value.
func Animate(timings interface{}, styles Node) *AnimateNode {
	if styles == nil {
		styles = &StyleNode{IsEmptyStep: true}
	}
	return &AnimateNode{Timings: timings, Style: styles}
}

// Keyframes creates a keyframes() interpolation from style steps. An
// explicit "offset" entry inside a step's style map is lifted into the
// step's offset; when no step carries an offset, offsets are distributed
// evenly across [0,1].
func Keyframes(steps ...*StyleNode) *KeyframesNode {
	anyOffset := false
	for _, step := range steps {
		if lifted, ok := liftOffset(step); ok {
			step.Offset = lifted
			anyOffset = true
		} else if step.Offset != 0 {
			anyOffset = true
		}
	}
	if !anyOffset && len(steps) > 1 {
		limit := float64(len(steps) - 1)
		for i, step := range steps {
			step.Offset = float64(i) / limit
		}
	}
	return &KeyframesNode{Steps: steps}
}

// liftOffset removes an explicit "offset" entry from the step's style
// maps and reports its value.
func liftOffset(step *StyleNode) (float64, bool) {
	offset := 0.0
	found := false
	for _, token := range step.Styles {
		if token.IsWildcard() {
			continue
		}
		if v, ok := token.Styles()["offset"]; ok {
			if f, isNum := toFloat(v); isNum {
				offset, found = f, true
			}
			delete(token.Styles(), "offset")
		}
	}
	return offset, found
}

func toFloat(v style.Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// --- Composition -----------------------------------------------------------

// Sequence runs steps back-to-back. opts may be nil.
func Sequence(steps []Node, opts *Options) *SequenceNode {
	return &SequenceNode{Steps: steps, Options: opts}
}

// Group runs steps concurrently. opts may be nil.
func Group(steps []Node, opts *Options) *GroupNode {
	return &GroupNode{Steps: steps, Options: opts}
}

// Animation packages steps into a reusable, named sub-animation. Use
// UseAnimation to invoke it.
func Animation(steps []Node, opts *Options) *ReferenceNode {
	return &ReferenceNode{Animation: Sequence(steps, nil), Options: opts}
}

// UseAnimation invokes a sub-animation built with Animation, with
// optionally overriding options.
func UseAnimation(ref *ReferenceNode, opts *Options) *AnimateRefNode {
	return &AnimateRefNode{Animation: ref, Options: opts}
}

// AnimateChild executes an element's queued child animations. A Duration
// of exactly 0 in opts skips them entirely.
func AnimateChild(opts *Options) *AnimateChildNode {
	return &AnimateChildNode{Options: opts}
}

// --- Queries ---------------------------------------------------------------

var triggerAllPattern = regexp.MustCompile(`@\*`)
var triggerNamePattern = regexp.MustCompile(`@\w+`)
var commaSplitPattern = regexp.MustCompile(`\s*,\s*`)

// Query matches elements below the current element and runs animation on
// each match, in document order. The selector understands the
// pseudo-selectors ":self" (include the queried element itself),
// ":enter"/":leave" (substituted with the configured enter/leave class
// at compile time), "@name"/"@*" (trigger selectors) and ":animating".
// opts may be nil.
func Query(selector string, animation Node, opts *QueryOptions) *QueryNode {
	q := &QueryNode{OriginalSelector: selector, Animation: animation}
	normalized, includeSelf := normalizeSelector(selector)
	q.Selector = normalized
	q.IncludeSelf = includeSelf
	if opts != nil {
		q.Optional = opts.Optional
		q.Limit = opts.Limit
		q.Options = &opts.Options
	}
	return q
}

func normalizeSelector(selector string) (string, bool) {
	includeSelf := false
	for _, token := range commaSplitPattern.Split(selector, -1) {
		if token == selfToken {
			includeSelf = true
		}
	}
	if includeSelf {
		selector = strings.ReplaceAll(selector, selfToken, "")
		selector = strings.Trim(selector, ", \t")
	}
	selector = triggerAllPattern.ReplaceAllString(selector, TriggerSelector)
	selector = triggerNamePattern.ReplaceAllStringFunc(selector, func(match string) string {
		return TriggerSelector + "-" + match[1:]
	})
	selector = strings.ReplaceAll(selector, ":animating", AnimatingSelector)
	return selector, includeSelf
}

// Stagger delays each query match incrementally. timings is a timing
// expression; a negative duration reverses the order, the literal "full"
// chains matches end-to-end.
func Stagger(timings interface{}, animation Node) *StaggerNode {
	return &StaggerNode{Timings: timings, Animation: animation}
}

// --- Triggers --------------------------------------------------------------

// Trigger declares a named trigger from state and transition
// definitions. Definitions of other kinds are ignored.
func Trigger(name string, defs ...Node) *TriggerNode {
	t := &TriggerNode{Name: name}
	for _, def := range defs {
		switch d := def.(type) {
		case *StateNode:
			t.States = append(t.States, d)
		case *TransitionNode:
			t.Transitions = append(t.Transitions, d)
		default:
			tracer().Errorf("trigger(%q): definition of kind %s ignored", name, def.NodeKind())
		}
	}
	return t
}

// State binds a state name to its style definition.
func State(name string, s *StyleNode) *StateNode {
	return &StateNode{Name: name, Style: s}
}

// Transition binds a transition expression (see ParseTransitionExpr) to
// an animation. opts may be nil.
func Transition(expr string, animation Node, opts *Options) *TransitionNode {
	var errs []error
	matchers := ParseTransitionExpr(expr, &errs)
	for _, err := range errs {
		tracer().Errorf("transition(%q): %v", expr, err)
	}
	return &TransitionNode{Expr: expr, Matchers: matchers, Animation: animation, Options: opts}
}
