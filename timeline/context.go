package timeline

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/swseverance/angular/anim"
	"github.com/swseverance/angular/style"
	"github.com/swseverance/angular/timing"
)

// contextOptions are the resolved options in effect at one point of the
// traversal: duration/delay overrides (nil means not set) and the
// variable bindings visible to interpolation.
type contextOptions struct {
	duration *float64
	delay    *float64
	params   map[string]style.Value
}

// context is the per-branch state of the AST traversal. Sequences
// mutate one context; groups, queries and references fork sub-contexts
// so that sibling branches see their own timeline, options and query
// coordinates. All contexts of one compilation share the timelines
// slice and the error sink.
type context struct {
	driver          QueryDriver
	element         *html.Node
	subInstructions *ElementInstructionMap
	enterClassName  string
	leaveClassName  string
	errors          *[]error
	timelines       *[]builder

	currentTimeline       *TimelineBuilder
	currentAnimateTimings *timing.Timing
	previousNode          anim.Node
	subContextCount       int
	options               contextOptions
	currentQueryIndex     int
	currentQueryTotal     int
	currentStaggerTime    float64
	parent                *context
}

func newContext(driver QueryDriver, element *html.Node, subInstructions *ElementInstructionMap,
	enterClassName, leaveClassName string, errs *[]error, timelines *[]builder,
	initialTimeline *TimelineBuilder) *context {

	ctx := &context{
		driver:          driver,
		element:         element,
		subInstructions: subInstructions,
		enterClassName:  enterClassName,
		leaveClassName:  leaveClassName,
		errors:          errs,
		timelines:       timelines,
		currentTimeline: initialTimeline,
	}
	if ctx.currentTimeline == nil {
		ctx.currentTimeline = NewTimelineBuilder(element, 0)
	}
	*timelines = append(*timelines, ctx.currentTimeline)
	return ctx
}

// updateOptions folds node options into the context. Duration and delay
// are resolved to milliseconds; new params are interpolated against the
// bindings already in effect, so a binding may reference an outer one.
// With skipIfExists, bindings already present win (reference semantics:
// caller options override the reference's defaults).
func (ctx *context) updateOptions(opts *anim.Options, skipIfExists bool) {
	if opts == nil {
		return
	}
	if opts.Duration != nil {
		d := timing.ResolveValue(opts.Duration)
		ctx.options.duration = &d
	}
	if opts.Delay != nil {
		d := timing.ResolveValue(opts.Delay)
		ctx.options.delay = &d
	}
	if len(opts.Params) > 0 {
		if ctx.options.params == nil {
			ctx.options.params = make(map[string]style.Value)
		}
		names := make([]string, 0, len(opts.Params))
		for name := range opts.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if skipIfExists {
				if _, ok := ctx.options.params[name]; ok {
					continue
				}
			}
			ctx.options.params[name] = style.Interpolate(opts.Params[name], ctx.options.params, ctx.errors)
		}
	}
}

// copyOptions duplicates the variable bindings for a sub-context.
// Duration and delay overrides do not propagate; they are consumed by
// the node that declared them.
func (ctx *context) copyOptions() contextOptions {
	copied := contextOptions{}
	if len(ctx.options.params) > 0 {
		copied.params = make(map[string]style.Value, len(ctx.options.params))
		for name, value := range ctx.options.params {
			if strings.HasPrefix(name, style.Sigil) {
				copied.params[name] = value
			}
		}
	}
	return copied
}

func (ctx *context) createSubContext(opts *anim.Options, element *html.Node, newTime float64) *context {
	target := element
	if target == nil {
		target = ctx.element
	}
	sub := newContext(ctx.driver, target, ctx.subInstructions, ctx.enterClassName,
		ctx.leaveClassName, ctx.errors, ctx.timelines,
		ctx.currentTimeline.Fork(target, newTime))
	sub.previousNode = ctx.previousNode
	sub.currentAnimateTimings = ctx.currentAnimateTimings

	sub.options = ctx.copyOptions()
	sub.updateOptions(opts, false)

	sub.currentQueryIndex = ctx.currentQueryIndex
	sub.currentQueryTotal = ctx.currentQueryTotal
	sub.parent = ctx
	ctx.subContextCount++
	return sub
}

// transformIntoNewTimeline forks the current timeline at newTime (or at
// its leading edge when 0) and makes the fork current.
func (ctx *context) transformIntoNewTimeline(newTime float64) *TimelineBuilder {
	ctx.previousNode = nil
	ctx.currentTimeline = ctx.currentTimeline.Fork(ctx.element, newTime)
	*ctx.timelines = append(*ctx.timelines, ctx.currentTimeline)
	tracer().Debugf("forked timeline at t=%.4g", ctx.currentTimeline.StartTime())
	return ctx.currentTimeline
}

// appendInstructionToTimeline schedules a pre-compiled child
// instruction relative to the current time, applying the caller's
// duration/delay overrides.
func (ctx *context) appendInstructionToTimeline(instr *Instruction, duration, delay *float64) timing.Timing {
	updated := timing.Timing{
		Duration: instr.Duration,
		Delay:    ctx.currentTimeline.CurrentTime() + instr.Delay,
	}
	if duration != nil {
		updated.Duration = *duration
	}
	if delay != nil {
		updated.Delay += *delay
	}
	sub := newSubTimelineBuilder(instr.Element, instr.Keyframes, instr.PreStyleProps,
		instr.PostStyleProps, updated, instr.Stretched)
	*ctx.timelines = append(*ctx.timelines, sub)
	return updated
}

func (ctx *context) incrementTime(t float64) {
	ctx.currentTimeline.ForwardTime(ctx.currentTimeline.CurrentTime() + t)
}

func (ctx *context) delayNextStep(delay float64) {
	// Negative delays are tolerated and ignored.
	if delay > 0 {
		ctx.currentTimeline.DelayNextStep(delay)
	}
}

// invokeQuery resolves a query() selector to the matched elements,
// honoring ":self", the enter/leave substitutions and the match limit.
func (ctx *context) invokeQuery(selector, originalSelector string, limit int,
	includeSelf, optional bool) []*html.Node {

	var results []*html.Node
	if includeSelf {
		results = append(results, ctx.element)
	}
	if len(selector) > 0 {
		selector = strings.ReplaceAll(selector, ":enter", "."+ctx.enterClassName)
		selector = strings.ReplaceAll(selector, ":leave", "."+ctx.leaveClassName)
		multi := limit != 1
		elements := ctx.driver.Query(ctx.element, selector, multi)
		if limit != 0 && limit < len(elements) && -limit < len(elements) {
			if limit < 0 {
				elements = elements[len(elements)+limit:]
			} else {
				elements = elements[:limit]
			}
		}
		results = append(results, elements...)
	}
	if !optional && len(results) == 0 {
		*ctx.errors = append(*ctx.errors, fmt.Errorf(
			"query(%q) returned zero elements (set the Optional query option if you wish to allow this)",
			originalSelector))
	}
	return results
}
