package anim

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/swseverance/angular/style"
	"github.com/swseverance/angular/timing"
)

// Kind discriminates the node kinds of the animation AST.
type Kind int8

// The closed set of AST node kinds.
const (
	KindTrigger Kind = iota
	KindState
	KindTransition
	KindSequence
	KindGroup
	KindAnimate
	KindKeyframes
	KindStyle
	KindReference
	KindAnimateChild
	KindAnimateRef
	KindQuery
	KindStagger
)

var kindNames = [...]string{
	"trigger", "state", "transition", "sequence", "group", "animate",
	"keyframes", "style", "reference", "animateChild", "animateRef",
	"query", "stagger",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// Node is one operation of the animation AST. The set of implementations
// is closed: consumers dispatch with an exhaustive type switch over the
// *Node structs of this package, so adding a kind is a compile-time
// checked exercise.
type Node interface {
	NodeKind() Kind
}

// Options carries the optional per-node settings of composite nodes:
// a duration/delay override (number of milliseconds or a timing string)
// and variable bindings. Binding keys carry the "$" sigil, e.g.
// Params["$delay"] = "200ms".
type Options struct {
	Duration interface{} // float64 | string | nil
	Delay    interface{} // float64 | string | nil
	Params   map[string]style.Value
}

// QueryOptions extends Options for query() nodes.
type QueryOptions struct {
	Options
	// Optional suppresses the zero-match error.
	Optional bool
	// Limit caps the number of matched elements; negative values take
	// from the tail, 0 means unlimited.
	Limit int
}

// StyleNode is a style() step: a list of style tokens applied at the
// current point of a timeline. Within a keyframes() node the Offset
// field places the step inside [0,1].
type StyleNode struct {
	Styles []style.Token
	Easing string
	Offset float64
	// IsEmptyStep marks the implicit style step of an animate(duration)
	// call that carries no explicit styles.
	IsEmptyStep bool
}

// AnimateNode is an animate() step: a timing expression applied to
// either a single style step or a keyframes interpolation.
type AnimateNode struct {
	// Timings is a timing expression: float64 ms, a timing string
	// (possibly containing "$var" substitutions), or a resolved
	// timing.Timing.
	Timings interface{}
	// Style is a *StyleNode or a *KeyframesNode.
	Style Node
}

// SequenceNode runs its steps back-to-back.
type SequenceNode struct {
	Steps   []Node
	Options *Options
}

// GroupNode runs its steps concurrently; it completes when the slowest
// step completes.
type GroupNode struct {
	Steps   []Node
	Options *Options
}

// KeyframesNode interpolates through an ordered series of style steps
// whose offsets are monotonically non-decreasing within [0,1].
type KeyframesNode struct {
	Steps []*StyleNode
}

// QueryNode matches elements below the current element and runs an
// animation on each match.
type QueryNode struct {
	// Selector is the normalized selector handed to the query driver;
	// OriginalSelector is the authored text, kept for error messages.
	Selector         string
	OriginalSelector string
	Limit            int
	Optional         bool
	// IncludeSelf is set when the authored selector contained ":self".
	IncludeSelf bool
	Animation   Node
	Options     *Options
}

// StaggerNode delays each query match incrementally.
type StaggerNode struct {
	// Timings is a timing expression, or the literal "full" for
	// end-to-end chaining of matches.
	Timings   interface{}
	Animation Node
}

// ReferenceNode is a reusable, named sub-animation produced by
// Animation(); UseAnimation() invokes it with overriding options.
type ReferenceNode struct {
	Animation Node
	Options   *Options
}

// AnimateChildNode executes the queued child animations of the current
// element (delegation to pre-compiled instructions).
type AnimateChildNode struct {
	Options *Options
}

// AnimateRefNode invokes a ReferenceNode with optional timing overrides.
type AnimateRefNode struct {
	Animation *ReferenceNode
	Options   *Options
}

// TriggerNode declares a named trigger with its states and transitions.
// Triggers are carried by the AST but are not themselves animated by the
// timeline compiler.
type TriggerNode struct {
	Name        string
	States      []*StateNode
	Transitions []*TransitionNode
}

// StateNode binds a state name to a style definition.
type StateNode struct {
	Name  string
	Style *StyleNode
}

// TransitionNode binds a transition expression to an animation.
type TransitionNode struct {
	Expr      string
	Matchers  []TransitionMatcher
	Animation Node
	Options   *Options
}

func (*TriggerNode) NodeKind() Kind      { return KindTrigger }
func (*StateNode) NodeKind() Kind        { return KindState }
func (*TransitionNode) NodeKind() Kind   { return KindTransition }
func (*SequenceNode) NodeKind() Kind     { return KindSequence }
func (*GroupNode) NodeKind() Kind        { return KindGroup }
func (*AnimateNode) NodeKind() Kind      { return KindAnimate }
func (*KeyframesNode) NodeKind() Kind    { return KindKeyframes }
func (*StyleNode) NodeKind() Kind        { return KindStyle }
func (*ReferenceNode) NodeKind() Kind    { return KindReference }
func (*AnimateChildNode) NodeKind() Kind { return KindAnimateChild }
func (*AnimateRefNode) NodeKind() Kind   { return KindAnimateRef }
func (*QueryNode) NodeKind() Kind        { return KindQuery }
func (*StaggerNode) NodeKind() Kind      { return KindStagger }

// ResolveStaggerTimings maps a stagger timing expression to a Timing.
// The literal "full" selects chained staggering and is encoded in the
// easing slot; negative durations are legal (they select reverse order).
func ResolveStaggerTimings(timings interface{}, errs *[]error) timing.Timing {
	if s, ok := timings.(string); ok && s == "full" {
		return timing.Timing{Easing: "full"}
	}
	return timing.Resolve(timings, errs, true)
}
