package timeline

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/swseverance/angular/anim"
	"github.com/swseverance/angular/style"
	"github.com/swseverance/angular/timing"
)

// Class names substituted for the ":enter" and ":leave" query tokens
// when BuildOptions does not override them.
const (
	DefaultEnterClassName = "ng-enter"
	DefaultLeaveClassName = "ng-leave"
)

// BuildOptions configures one compilation run.
type BuildOptions struct {
	// EnterClassName and LeaveClassName substitute the ":enter" and
	// ":leave" query tokens; empty fields fall back to the defaults.
	EnterClassName string
	LeaveClassName string
	// Delay postpones the whole animation; a number of milliseconds or
	// a timing string.
	Delay interface{}
	// Params are the root variable bindings, keys carrying the "$"
	// sigil.
	Params map[string]style.Value
}

func (opts BuildOptions) enterClassName() string {
	if opts.EnterClassName == "" {
		return DefaultEnterClassName
	}
	return opts.EnterClassName
}

func (opts BuildOptions) leaveClassName() string {
	if opts.LeaveClassName == "" {
		return DefaultLeaveClassName
	}
	return opts.LeaveClassName
}

// BuildTimelines compiles an animation AST into per-element keyframe
// instructions. startingStyles seed the root element's timeline before
// the first step runs; finalStyles are folded in after the last step
// when that step was an empty one (animate(duration) without styles),
// giving its "*" placeholders concrete destination values.
//
// subInstructions queues pre-compiled child animations for
// animateChild() steps; nil means none. Compilation never aborts:
// semantic errors are appended to errs and the affected values degrade
// to zeros or empty strings.
func BuildTimelines(driver QueryDriver, rootElement *html.Node, ast anim.Node,
	startingStyles, finalStyles style.Map, opts BuildOptions,
	subInstructions *ElementInstructionMap, errs *[]error) []*Instruction {

	if subInstructions == nil {
		subInstructions = NewElementInstructionMap()
	}

	var timelines []builder
	ctx := newContext(driver, rootElement, subInstructions,
		opts.enterClassName(), opts.leaveClassName(), errs, &timelines, nil)
	if len(opts.Params) > 0 {
		ctx.options.params = make(map[string]style.Value, len(opts.Params))
		for name, value := range opts.Params {
			ctx.options.params[name] = value
		}
	}

	delay := 0.0
	if opts.Delay != nil {
		delay = timing.ResolveValue(opts.Delay)
	}
	ctx.currentTimeline.DelayNextStep(delay)
	ctx.currentTimeline.SetStyles([]style.Token{style.Tok(startingStyles)}, "", errs, ctx.options.params)

	visit(ast, ctx)

	var animated []builder
	for _, tl := range timelines {
		if tl.ContainsAnimation() {
			animated = append(animated, tl)
		}
	}

	if len(animated) > 0 && len(finalStyles) > 0 {
		last := animated[len(animated)-1]
		if !last.AllowOnlyTimelineStyles() {
			last.SetStyles([]style.Token{style.Tok(finalStyles)}, "", errs, ctx.options.params)
		}
	}

	if len(animated) == 0 {
		return []*Instruction{{
			Element:   rootElement,
			Delay:     delay,
			TotalTime: delay,
		}}
	}
	instrs := make([]*Instruction, len(animated))
	for i, tl := range animated {
		instrs[i] = tl.BuildKeyframes()
	}
	tracer().Debugf("compiled %d timeline(s) for animation", len(instrs))
	return instrs
}

// Compile runs BuildTimelines with a fresh error sink and aggregates
// the collected errors into one.
func Compile(driver QueryDriver, rootElement *html.Node, ast anim.Node,
	startingStyles, finalStyles style.Map, opts BuildOptions,
	subInstructions *ElementInstructionMap) ([]*Instruction, error) {

	var errs []error
	instrs := BuildTimelines(driver, rootElement, ast, startingStyles, finalStyles,
		opts, subInstructions, &errs)
	return instrs, errors.Join(errs...)
}
