package timeline

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"math"
	"sort"

	"golang.org/x/net/html"

	"github.com/swseverance/angular/style"
	"github.com/swseverance/angular/timing"
)

// The smallest time step a timeline can advance by. Consecutive style
// steps without an animate() between them are separated by one frame.
const oneFrameInMilliseconds = 1

// builder is the common surface of TimelineBuilder and its delay
// stretching variant for sub-instructions.
type builder interface {
	ContainsAnimation() bool
	BuildKeyframes() *Instruction
	AllowOnlyTimelineStyles() bool
	SetStyles(tokens []style.Token, easing string, errs *[]error, params map[string]style.Value)
}

// keyframe is a keyframe under construction: the styles collected at
// one absolute time, and the easing into the following frame.
type keyframe struct {
	styles style.Map
	easing string
}

// TimelineBuilder accumulates the keyframes of one element along an
// absolute time axis. A builder starts at startTime and grows by
// forwarding time; every forward step opens a fresh keyframe. Styles
// are staged in pendingStyles and flushed into the current keyframe by
// applyStylesToKeyframe.
//
// Builders that share an element also share a globalStyles map, so a
// fork knows every property any sibling timeline has touched and can
// backfill it into its own keyframes.
type TimelineBuilder struct {
	element   *html.Node
	startTime float64
	duration  float64
	easing    string

	keyframes        map[float64]*keyframe
	times            []float64 // keys of keyframes, in insertion order
	currentKeyframe  *keyframe
	previousKeyframe *keyframe

	pendingStyles style.Map
	localStyles   style.Map // properties this timeline itself has set
	globalStyles  style.Map // shared per element across forks
	backFill      style.Map

	// styleSummary remembers, per property, the latest logical time the
	// property was set and its value then; group merges use it to pick
	// winners.
	styleSummary map[string]styleAtTime

	// currentEmptyStepKeyframe is the keyframe of an animate(duration)
	// empty step, while it is current. Final styles must not be folded
	// into it.
	currentEmptyStepKeyframe *keyframe

	globalLookup map[*html.Node]style.Map
}

type styleAtTime struct {
	time  float64
	value style.Value
}

// NewTimelineBuilder creates a timeline for element starting at
// startTime. Builders created via Fork share their per-element global
// style map through an internal lookup.
func NewTimelineBuilder(element *html.Node, startTime float64) *TimelineBuilder {
	return newTimelineBuilder(element, startTime, make(map[*html.Node]style.Map))
}

func newTimelineBuilder(element *html.Node, startTime float64, lookup map[*html.Node]style.Map) *TimelineBuilder {
	tl := &TimelineBuilder{
		element:   element,
		startTime: startTime,
		keyframes: make(map[float64]*keyframe),
		// a throwaway previous keyframe, so that an easing set by the very
		// first style step has somewhere to go
		previousKeyframe: &keyframe{styles: make(style.Map)},
		pendingStyles:    make(style.Map),
		localStyles:      make(style.Map),
		backFill:         make(style.Map),
		styleSummary:     make(map[string]styleAtTime),
		globalLookup:     lookup,
	}
	global, ok := lookup[element]
	if !ok {
		global = make(style.Map)
		lookup[element] = global
	}
	tl.globalStyles = global
	tl.loadKeyframe()
	return tl
}

// Element returns the element this timeline animates.
func (tl *TimelineBuilder) Element() *html.Node { return tl.element }

// StartTime returns the timeline's absolute start time.
func (tl *TimelineBuilder) StartTime() float64 { return tl.startTime }

// Duration returns the time covered since startTime.
func (tl *TimelineBuilder) Duration() float64 { return tl.duration }

// CurrentTime is the absolute time of the timeline's leading edge.
func (tl *TimelineBuilder) CurrentTime() float64 {
	return tl.startTime + tl.duration
}

// ContainsAnimation reports whether the timeline produced more than a
// single keyframe, i.e. whether anything actually animates.
func (tl *TimelineBuilder) ContainsAnimation() bool {
	return len(tl.times) > 1
}

// hasCurrentStyleProperties reports whether the current keyframe
// carries any styles.
func (tl *TimelineBuilder) hasCurrentStyleProperties() bool {
	return len(tl.currentKeyframe.styles) > 0
}

func (tl *TimelineBuilder) loadKeyframe() {
	if tl.currentKeyframe != nil {
		tl.previousKeyframe = tl.currentKeyframe
	}
	kf, ok := tl.keyframes[tl.duration]
	if !ok {
		kf = &keyframe{styles: make(style.Map)}
		tl.keyframes[tl.duration] = kf
		tl.times = append(tl.times, tl.duration)
	}
	tl.currentKeyframe = kf
}

// ForwardTime moves the leading edge to absolute time t and opens a
// keyframe there. Staged styles are flushed into the keyframe left
// behind first.
func (tl *TimelineBuilder) ForwardTime(t float64) {
	tl.applyStylesToKeyframe()
	tl.duration = t - tl.startTime
	tl.loadKeyframe()
}

// ForwardFrame advances by the minimal frame step. Used to separate two
// adjacent style() steps that are not joined by an animate().
func (tl *TimelineBuilder) ForwardFrame() {
	tl.duration += oneFrameInMilliseconds
	tl.loadKeyframe()
}

// DelayNextStep postpones the following step by delay milliseconds. A
// timeline that has not animated yet absorbs the delay into its start
// time instead of emitting an idle keyframe span.
func (tl *TimelineBuilder) DelayNextStep(delay float64) {
	// A single-keyframe timeline that already staged styles is a
	// pre-style step; its styles must survive the time jump.
	hasPreStyleStep := len(tl.times) == 1 && len(tl.pendingStyles) > 0
	if tl.duration > 0 || hasPreStyleStep {
		tl.ForwardTime(tl.CurrentTime() + delay)
		if hasPreStyleStep {
			tl.SnapshotCurrentStyles()
		}
	} else {
		tl.startTime += delay
	}
}

// Fork spawns a timeline for element starting at currentTime (or at
// atTime when nonzero), flushing this timeline's staged styles first.
// The fork shares the per-element global style map.
func (tl *TimelineBuilder) Fork(element *html.Node, atTime float64) *TimelineBuilder {
	tl.applyStylesToKeyframe()
	if atTime == 0 {
		atTime = tl.CurrentTime()
	}
	return newTimelineBuilder(element, atTime, tl.globalLookup)
}

// SetStyles stages style tokens at the current point of the timeline.
// Wildcard tokens expand to every property known on the element.
// Variables in the values are substituted against params. Properties
// this timeline has never set itself are recorded for backfill, so that
// every rendered keyframe covers them.
func (tl *TimelineBuilder) SetStyles(tokens []style.Token, easing string, errs *[]error, params map[string]style.Value) {
	if easing != "" {
		tl.previousKeyframe.easing = easing
	}
	styles := style.Flatten(tokens, tl.globalStyles)
	for prop, value := range styles {
		val := style.Interpolate(value, params, errs)
		tl.pendingStyles[prop] = val
		if _, mine := tl.localStyles[prop]; !mine {
			if global, known := tl.globalStyles[prop]; known {
				tl.backFill[prop] = global
			} else {
				tl.backFill[prop] = style.Auto
			}
		}
		tl.updateStyle(prop, val)
	}
}

// ApplyEmptyStep handles animate(duration) with no styles: every
// property known on the element animates to its computed value.
func (tl *TimelineBuilder) ApplyEmptyStep(easing string) {
	if easing != "" {
		tl.previousKeyframe.easing = easing
	}
	for prop, value := range tl.globalStyles {
		if value == nil {
			value = style.Auto
		}
		tl.backFill[prop] = value
		tl.currentKeyframe.styles[prop] = style.Auto
	}
	tl.currentEmptyStepKeyframe = tl.currentKeyframe
}

// AllowOnlyTimelineStyles reports whether final styles may still be
// folded into the timeline. An active empty step owns the current
// keyframe exclusively.
func (tl *TimelineBuilder) AllowOnlyTimelineStyles() bool {
	return tl.currentEmptyStepKeyframe != tl.currentKeyframe
}

// applyStylesToKeyframe flushes staged styles into the current
// keyframe, topping keyframes up with properties the timeline has set
// before.
func (tl *TimelineBuilder) applyStylesToKeyframe() {
	if len(tl.pendingStyles) == 0 {
		return
	}
	style.CopyInto(tl.currentKeyframe.styles, tl.pendingStyles)
	for prop, value := range tl.localStyles {
		if _, ok := tl.currentKeyframe.styles[prop]; !ok {
			tl.currentKeyframe.styles[prop] = value
		}
	}
	tl.pendingStyles = make(style.Map)
}

// SnapshotCurrentStyles re-stages every property the timeline has set,
// pinning the current values at the current time.
func (tl *TimelineBuilder) SnapshotCurrentStyles() {
	for prop, value := range tl.localStyles {
		tl.pendingStyles[prop] = value
		tl.updateStyle(prop, value)
	}
}

func (tl *TimelineBuilder) updateStyle(prop string, value style.Value) {
	tl.localStyles[prop] = value
	tl.globalStyles[prop] = value
	tl.styleSummary[prop] = styleAtTime{time: tl.CurrentTime(), value: value}
}

// MergeTimelineCollectedStyles folds another timeline's style summary
// into this one. Per property the write with the latest logical time
// wins; ties keep the value merged first. The source timestamp is
// carried over so that merging several siblings stays order
// independent.
func (tl *TimelineBuilder) MergeTimelineCollectedStyles(other *TimelineBuilder) {
	for prop, otherEntry := range other.styleSummary {
		entry, ok := tl.styleSummary[prop]
		if !ok || otherEntry.time > entry.time {
			tl.localStyles[prop] = otherEntry.value
			tl.globalStyles[prop] = otherEntry.value
			tl.styleSummary[prop] = otherEntry
		}
	}
}

// Properties returns the sorted set of style properties this timeline
// has set.
func (tl *TimelineBuilder) Properties() []string {
	props := make([]string, 0, len(tl.localStyles))
	for prop := range tl.localStyles {
		props = append(props, prop)
	}
	sort.Strings(props)
	return props
}

// BuildKeyframes renders the timeline into an Instruction. Every
// keyframe is completed from the backfill, so all keyframes cover the
// same property set; "!" and "*" placeholder values are collected into
// the instruction's pre/post style property lists.
func (tl *TimelineBuilder) BuildKeyframes() *Instruction {
	tl.applyStylesToKeyframe()
	preProps := make(map[string]bool)
	postProps := make(map[string]bool)
	isEmpty := len(tl.times) == 1 && tl.duration == 0

	finalKeyframes := make([]Keyframe, 0, len(tl.times))
	for _, t := range tl.times {
		kf := tl.keyframes[t]
		finalStyles := tl.backFill.Clone()
		style.CopyInto(finalStyles, kf.styles)
		for prop, value := range finalStyles {
			switch value {
			case style.Pre:
				preProps[prop] = true
			case style.Auto:
				postProps[prop] = true
			}
		}
		offset := 0.0
		if !isEmpty {
			offset = t / tl.duration
		}
		finalKeyframes = append(finalKeyframes, Keyframe{
			Offset: offset,
			Easing: kf.easing,
			Styles: finalStyles,
		})
	}

	return &Instruction{
		Element:        tl.element,
		Keyframes:      finalKeyframes,
		PreStyleProps:  sortedProps(preProps),
		PostStyleProps: sortedProps(postProps),
		Duration:       tl.duration,
		Delay:          tl.startTime,
		TotalTime:      tl.duration + tl.startTime,
		Easing:         tl.easing,
	}
}

func sortedProps(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	props := make([]string, 0, len(set))
	for prop := range set {
		props = append(props, prop)
	}
	sort.Strings(props)
	return props
}

// subTimelineBuilder renders a pre-compiled child instruction into the
// parent's time axis. When the child has to start later than the parent
// timeline allows, the delay is stretched into the keyframe offsets
// instead: the first keyframe is duplicated at offset 0 and all offsets
// are compressed towards 1.
type subTimelineBuilder struct {
	*TimelineBuilder
	timings                 timing.Timing
	instructionKeyframes    []Keyframe
	preStyleProps           []string
	postStyleProps          []string
	stretchStartingKeyframe bool
}

func newSubTimelineBuilder(element *html.Node, keyframes []Keyframe,
	preStyleProps, postStyleProps []string, timings timing.Timing,
	stretchStartingKeyframe bool) *subTimelineBuilder {

	return &subTimelineBuilder{
		TimelineBuilder:         NewTimelineBuilder(element, timings.Delay),
		timings:                 timings,
		instructionKeyframes:    keyframes,
		preStyleProps:           preStyleProps,
		postStyleProps:          postStyleProps,
		stretchStartingKeyframe: stretchStartingKeyframe,
	}
}

func (s *subTimelineBuilder) ContainsAnimation() bool {
	return len(s.instructionKeyframes) > 1
}

func (s *subTimelineBuilder) BuildKeyframes() *Instruction {
	keyframes := s.instructionKeyframes
	tm := s.timings
	if s.stretchStartingKeyframe && tm.Delay > 0 {
		stretched := make([]Keyframe, 0, len(keyframes)+1)
		totalTime := tm.Duration + tm.Delay
		startingGap := tm.Delay / totalTime

		// The first keyframe holds for the delay span: duplicate it at
		// offset 0 and compress every offset towards 1.
		first := keyframes[0]
		stretched = append(stretched, Keyframe{Offset: 0, Easing: first.Easing, Styles: first.Styles})
		stretched = append(stretched, Keyframe{
			Offset: roundOffset(startingGap),
			Easing: first.Easing,
			Styles: first.Styles,
		})
		for i := 1; i < len(keyframes); i++ {
			kf := keyframes[i]
			offset := (tm.Delay + kf.Offset*tm.Duration) / totalTime
			stretched = append(stretched, Keyframe{
				Offset: roundOffset(offset),
				Easing: kf.Easing,
				Styles: kf.Styles,
			})
		}

		keyframes = stretched
		tm = timing.Timing{Duration: totalTime}
		return &Instruction{
			Element:        s.element,
			Keyframes:      keyframes,
			PreStyleProps:  s.preStyleProps,
			PostStyleProps: s.postStyleProps,
			Duration:       tm.Duration,
			Delay:          tm.Delay,
			TotalTime:      tm.Duration + tm.Delay,
			Easing:         tm.Easing,
			Stretched:      true,
		}
	}
	return &Instruction{
		Element:        s.element,
		Keyframes:      keyframes,
		PreStyleProps:  s.preStyleProps,
		PostStyleProps: s.postStyleProps,
		Duration:       tm.Duration,
		Delay:          tm.Delay,
		TotalTime:      tm.Duration + tm.Delay,
		Easing:         tm.Easing,
	}
}

// Stretched offsets are rounded to two decimals so that the rendered
// offsets stay readable and stable across floating point noise.
func roundOffset(offset float64) float64 {
	return math.Round(offset*100) / 100
}
