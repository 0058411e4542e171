package timeline

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"github.com/swseverance/angular/anim"
	"github.com/swseverance/angular/style"
	"github.com/swseverance/angular/timing"
)

// visit dispatches one AST node. The switch is exhaustive over the node
// kinds of package anim; trigger declarations and their states and
// transitions carry no timeline semantics of their own and pass through.
func visit(node anim.Node, ctx *context) {
	tracer().Debugf("visit %s at t=%.4g", node.NodeKind(), ctx.currentTimeline.CurrentTime())
	switch n := node.(type) {
	case *anim.StyleNode:
		visitStyle(n, ctx)
	case *anim.AnimateNode:
		visitAnimate(n, ctx)
	case *anim.SequenceNode:
		visitSequence(n, ctx)
	case *anim.GroupNode:
		visitGroup(n, ctx)
	case *anim.KeyframesNode:
		visitKeyframes(n, ctx)
	case *anim.QueryNode:
		visitQuery(n, ctx)
	case *anim.StaggerNode:
		visitStagger(n, ctx)
	case *anim.ReferenceNode:
		visitReference(n, ctx)
	case *anim.AnimateChildNode:
		visitAnimateChild(n, ctx)
	case *anim.AnimateRefNode:
		visitAnimateRef(n, ctx)
	case *anim.TriggerNode:
		for _, t := range n.Transitions {
			visit(t, ctx)
		}
	case *anim.StateNode, *anim.TransitionNode:
		// declarative only
	default:
		tracer().Errorf("cannot compile node of kind %s", node.NodeKind())
	}
}

func visitTiming(timings interface{}, ctx *context) timing.Timing {
	switch t := timings.(type) {
	case timing.Timing:
		return t
	case string:
		if style.ContainsParams(t) {
			resolved := style.Interpolate(t, ctx.options.params, ctx.errors)
			return timing.Resolve(resolved, ctx.errors, false)
		}
		return timing.Resolve(t, ctx.errors, false)
	default:
		return timing.Resolve(timings, ctx.errors, false)
	}
}

func visitStyle(n *anim.StyleNode, ctx *context) {
	tl := ctx.currentTimeline
	timings := ctx.currentAnimateTimings

	// A style() step directly following an animate() step needs its own
	// frame; the previous keyframe is already populated.
	if timings == nil && tl.hasCurrentStyleProperties() {
		tl.ForwardFrame()
	}

	easing := n.Easing
	if timings != nil && timings.Easing != "" {
		easing = timings.Easing
	}
	if n.IsEmptyStep {
		tl.ApplyEmptyStep(easing)
	} else {
		tl.SetStyles(n.Styles, easing, ctx.errors, ctx.options.params)
	}
	ctx.previousNode = n
}

func visitAnimate(n *anim.AnimateNode, ctx *context) {
	timings := visitTiming(n.Timings, ctx)
	ctx.currentAnimateTimings = &timings
	tl := ctx.currentTimeline

	if timings.Delay > 0 {
		ctx.incrementTime(timings.Delay)
		tl.SnapshotCurrentStyles()
	}

	switch s := n.Style.(type) {
	case *anim.KeyframesNode:
		visitKeyframes(s, ctx)
	case *anim.StyleNode:
		ctx.incrementTime(timings.Duration)
		visitStyle(s, ctx)
		tl.applyStylesToKeyframe()
	default:
		tracer().Errorf("animate() expects style() or keyframes(), got %s", n.Style.NodeKind())
	}

	ctx.currentAnimateTimings = nil
	ctx.previousNode = n
}

func visitSequence(n *anim.SequenceNode, ctx *context) {
	subContextCount := ctx.subContextCount
	opts := n.Options

	if opts != nil && (len(opts.Params) > 0 || opts.Delay != nil) {
		ctx = ctx.createSubContext(opts, nil, 0)
		ctx.transformIntoNewTimeline(0)

		if opts.Delay != nil {
			// When the preceding step was a plain style() step its styles
			// must be pinned before the delay window opens.
			if _, wasStyle := ctx.previousNode.(*anim.StyleNode); wasStyle {
				ctx.currentTimeline.SnapshotCurrentStyles()
				ctx.previousNode = nil
			}
			ctx.delayNextStep(timing.ResolveValue(opts.Delay))
		}
	}

	if len(n.Steps) > 0 {
		for _, step := range n.Steps {
			visit(step, ctx)
		}

		// in case the sequence only contains or ends with a style() step
		ctx.currentTimeline.applyStylesToKeyframe()

		// a step opened a sub-timeline, so the current timeline may not
		// overlap with the sequence's contents
		if ctx.subContextCount > subContextCount {
			ctx.transformIntoNewTimeline(0)
		}
	}

	ctx.previousNode = n
}

func visitGroup(n *anim.GroupNode, ctx *context) {
	var innerTimelines []*TimelineBuilder
	furthestTime := ctx.currentTimeline.CurrentTime()
	delay := 0.0
	if n.Options != nil && n.Options.Delay != nil {
		delay = timing.ResolveValue(n.Options.Delay)
	}

	for _, step := range n.Steps {
		inner := ctx.createSubContext(n.Options, nil, 0)
		if delay != 0 {
			inner.delayNextStep(delay)
		}

		visit(step, inner)
		if t := inner.currentTimeline.CurrentTime(); t > furthestTime {
			furthestTime = t
		}
		innerTimelines = append(innerTimelines, inner.currentTimeline)
	}

	// Merging happens after the loop; merging inside it would leak one
	// branch's collected styles into its siblings' forks.
	for _, inner := range innerTimelines {
		ctx.currentTimeline.MergeTimelineCollectedStyles(inner)
	}
	ctx.transformIntoNewTimeline(furthestTime)
	ctx.previousNode = n
}

func visitKeyframes(n *anim.KeyframesNode, ctx *context) {
	currentAnimateTimings := ctx.currentAnimateTimings
	if currentAnimateTimings == nil {
		tracer().Errorf("keyframes() outside of animate() ignored")
		return
	}
	startTime := ctx.currentTimeline.CurrentTime()
	duration := currentAnimateTimings.Duration

	inner := ctx.createSubContext(nil, nil, 0)
	innerTl := inner.currentTimeline
	innerTl.easing = currentAnimateTimings.Easing

	for _, step := range n.Steps {
		innerTl.ForwardTime(innerTl.StartTime() + step.Offset*duration)
		innerTl.SetStyles(step.Styles, step.Easing, ctx.errors, ctx.options.params)
		innerTl.applyStylesToKeyframe()
	}

	// the parent timeline sees the child's styles even if the fork below
	// goes unused
	ctx.currentTimeline.MergeTimelineCollectedStyles(innerTl)

	ctx.transformIntoNewTimeline(startTime + duration)
	ctx.previousNode = n
}

func visitQuery(n *anim.QueryNode, ctx *context) {
	startTime := ctx.currentTimeline.CurrentTime()
	delay := 0.0
	if n.Options != nil && n.Options.Delay != nil {
		delay = timing.ResolveValue(n.Options.Delay)
	}

	_, prevWasStyle := ctx.previousNode.(*anim.StyleNode)
	if delay != 0 && (prevWasStyle ||
		(startTime == 0 && ctx.currentTimeline.hasCurrentStyleProperties())) {
		ctx.currentTimeline.SnapshotCurrentStyles()
		ctx.previousNode = nil
	}

	furthestTime := startTime
	elms := ctx.invokeQuery(n.Selector, n.OriginalSelector, n.Limit, n.IncludeSelf, n.Optional)

	ctx.currentQueryTotal = len(elms)
	var sameElementTimeline *TimelineBuilder
	for i, element := range elms {
		ctx.currentQueryIndex = i
		inner := ctx.createSubContext(n.Options, element, 0)
		if delay != 0 {
			inner.delayNextStep(delay)
		}

		if element == ctx.element {
			sameElementTimeline = inner.currentTimeline
		}

		visit(n.Animation, inner)

		// in case the inner steps only contain or end with a style() step
		inner.currentTimeline.applyStylesToKeyframe()

		if t := inner.currentTimeline.CurrentTime(); t > furthestTime {
			furthestTime = t
		}
	}

	ctx.currentQueryIndex = 0
	ctx.currentQueryTotal = 0
	ctx.transformIntoNewTimeline(furthestTime)

	if sameElementTimeline != nil {
		ctx.currentTimeline.MergeTimelineCollectedStyles(sameElementTimeline)
		ctx.currentTimeline.SnapshotCurrentStyles()
	}

	ctx.previousNode = n
}

func visitStagger(n *anim.StaggerNode, ctx *context) {
	parent := ctx.parent
	if parent == nil {
		*ctx.errors = append(*ctx.errors, errors.New("stagger() can only be used inside of query()"))
		return
	}
	tl := ctx.currentTimeline
	timings := anim.ResolveStaggerTimings(n.Timings, ctx.errors)
	duration := timings.Duration
	if duration < 0 {
		duration = -duration
	}
	maxTime := duration * float64(ctx.currentQueryTotal-1)
	delay := duration * float64(ctx.currentQueryIndex)

	transformer := timings.Easing
	if timings.Duration < 0 {
		transformer = "reverse"
	}
	switch transformer {
	case "reverse":
		delay = maxTime - delay
	case "full":
		delay = parent.currentStaggerTime
	}

	if delay > 0 {
		tl.DelayNextStep(delay)
	}

	startingTime := tl.CurrentTime()
	visit(n.Animation, ctx)
	ctx.previousNode = n

	// The span covers duration plus delay. The inner timeline may carry
	// the delay in its start time or stretched into its keyframes, hence
	// the two-part sum.
	parent.currentStaggerTime = (tl.CurrentTime() - startingTime) +
		(tl.StartTime() - parent.currentTimeline.StartTime())
}

func visitReference(n *anim.ReferenceNode, ctx *context) {
	ctx.updateOptions(n.Options, true)
	visit(n.Animation, ctx)
	ctx.previousNode = n
}

func visitAnimateChild(n *anim.AnimateChildNode, ctx *context) {
	elementInstructions := ctx.subInstructions.Consume(ctx.element)
	if len(elementInstructions) > 0 {
		inner := ctx.createSubContext(n.Options, nil, 0)
		startTime := ctx.currentTimeline.CurrentTime()
		endTime := visitSubInstructions(elementInstructions, inner, inner.options)
		if startTime != endTime {
			// the sub context holds the child animations; fork past them
			ctx.transformIntoNewTimeline(endTime)
		}
	}
	ctx.previousNode = n
}

// visitSubInstructions schedules pre-compiled child instructions. A
// duration override of exactly 0 skips them entirely.
func visitSubInstructions(instructions []*Instruction, ctx *context, opts contextOptions) float64 {
	furthestTime := ctx.currentTimeline.CurrentTime()
	if opts.duration != nil && *opts.duration == 0 {
		return furthestTime
	}
	for _, instr := range instructions {
		tm := ctx.appendInstructionToTimeline(instr, opts.duration, opts.delay)
		if t := tm.Duration + tm.Delay; t > furthestTime {
			furthestTime = t
		}
	}
	return furthestTime
}

func visitAnimateRef(n *anim.AnimateRefNode, ctx *context) {
	inner := ctx.createSubContext(n.Options, nil, 0)
	inner.transformIntoNewTimeline(0)
	applyAnimationRefDelays([]*anim.Options{n.Options, n.Animation.Options}, ctx, inner)
	visitReference(n.Animation, inner)
	ctx.transformIntoNewTimeline(inner.currentTimeline.CurrentTime())
	ctx.previousNode = n
}

// applyAnimationRefDelays applies the delay of the invocation and of
// the referenced animation itself before its body plays.
func applyAnimationRefDelays(optionSets []*anim.Options, ctx, inner *context) {
	for _, opts := range optionSets {
		if opts == nil || opts.Delay == nil {
			continue
		}
		var delay float64
		switch d := opts.Delay.(type) {
		case string:
			resolved := style.Interpolate(d, opts.Params, ctx.errors)
			delay = timing.ResolveValue(resolved)
		default:
			delay = timing.ResolveValue(opts.Delay)
		}
		inner.delayNextStep(delay)
	}
}
