package timeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"

	"github.com/swseverance/angular/anim"
	"github.com/swseverance/angular/query"
	"github.com/swseverance/angular/style"
	"github.com/swseverance/angular/timing"
)

const fixture = `<html><body>
  <div id="host">
    <span class="item">1</span>
    <span class="item">2</span>
    <span class="item">3</span>
    <span class="item">4</span>
  </div>
</body></html>`

func hostElement(t *testing.T) *html.Node {
	tree, err := query.ParseHTML(fixture)
	if err != nil {
		t.Fatalf("cannot parse fixture: %v", err)
	}
	host := query.First(tree, "#host")
	if host == nil {
		t.Fatal("fixture misses #host")
	}
	return host
}

func compile(t *testing.T, ast anim.Node, opts BuildOptions) []*Instruction {
	host := hostElement(t)
	instrs, err := Compile(query.Driver{}, host, ast, nil, nil, opts, nil)
	if err != nil {
		t.Fatalf("unexpected compile errors: %v", err)
	}
	return instrs
}

func TestSequenceBasic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	instr := instrs[0]
	if instr.Duration != 1000 || instr.Delay != 0 {
		t.Errorf("duration/delay = %v/%v, expected 1000/0", instr.Duration, instr.Delay)
	}
	expected := []Keyframe{
		{Offset: 0, Styles: style.Map{"opacity": 0.0}},
		{Offset: 1, Styles: style.Map{"opacity": 1.0}},
	}
	if diff := cmp.Diff(expected, instr.Keyframes); diff != "" {
		t.Errorf("keyframes mismatch (-want +got):\n%s", diff)
	}
}

func TestLeadingStyleEasing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	// an easing on the very first style() step has no keyframe before it
	// to attach to and is dropped; the animate() easing lands on the
	// keyframe the step eases out of
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}).WithEasing("ease-in"),
		anim.Animate("1s ease-out", anim.Style(style.Map{"opacity": 1.0})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	expected := []Keyframe{
		{Offset: 0, Easing: "ease-out", Styles: style.Map{"opacity": 0.0}},
		{Offset: 1, Styles: style.Map{"opacity": 1.0}},
	}
	if diff := cmp.Diff(expected, instrs[0].Keyframes); diff != "" {
		t.Errorf("keyframes mismatch (-want +got):\n%s", diff)
	}
}

func TestAnimateDelayHoldsStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate("1s 1s", anim.Style(style.Map{"opacity": 1.0})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	expected := []Keyframe{
		{Offset: 0, Styles: style.Map{"opacity": 0.0}},
		{Offset: 0.5, Styles: style.Map{"opacity": 0.0}},
		{Offset: 1, Styles: style.Map{"opacity": 1.0}},
	}
	if diff := cmp.Diff(expected, instrs[0].Keyframes); diff != "" {
		t.Errorf("keyframes mismatch (-want +got):\n%s", diff)
	}
	if instrs[0].Duration != 2000 {
		t.Errorf("duration = %v, expected 2000 (delay folded into the span)", instrs[0].Duration)
	}
}

func TestStyleOnlyAnimationIsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected the empty placeholder instruction, have %d", len(instrs))
	}
	if instrs[0].Duration != 0 || len(instrs[0].Keyframes) != 0 {
		t.Errorf("expected an empty instruction, have %+v", instrs[0])
	}
}

func TestBackfillCompletesKeyframes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})),
		anim.Animate(1000.0, anim.Style(style.Map{"width": "100px"})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	instr := instrs[0]
	for i, kf := range instr.Keyframes {
		if _, ok := kf.Styles["width"]; !ok {
			t.Errorf("keyframe %d misses the backfilled width property", i)
		}
		if _, ok := kf.Styles["opacity"]; !ok {
			t.Errorf("keyframe %d misses the opacity property", i)
		}
	}
	if diff := cmp.Diff([]string{"width"}, instr.PostStyleProps); diff != "" {
		t.Errorf("post style props mismatch (-want +got):\n%s", diff)
	}
	last := instr.Keyframes[len(instr.Keyframes)-1]
	if last.Styles["opacity"] != 1.0 {
		t.Errorf("opacity should carry over into the last keyframe, have %v", last.Styles["opacity"])
	}
}

func TestGroupRunsConcurrently(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Group([]anim.Node{
		anim.Animate(1000.0, anim.Style(style.Map{"width": "100px"})),
		anim.Animate(2000.0, anim.Style(style.Map{"height": "200px"})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instructions, have %d", len(instrs))
	}
	if instrs[0].Duration != 1000 || instrs[1].Duration != 2000 {
		t.Errorf("durations = %v/%v, expected 1000/2000", instrs[0].Duration, instrs[1].Duration)
	}
	if instrs[0].Delay != 0 || instrs[1].Delay != 0 {
		t.Errorf("group branches should start together, delays = %v/%v", instrs[0].Delay, instrs[1].Delay)
	}
}

func TestGroupMergeLatestWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	// branch order reverses time order on purpose: opacity is written at
	// t=10 by the first branch and at t=5 by the second
	ast := anim.Sequence([]anim.Node{
		anim.Group([]anim.Node{
			anim.Animate(10.0, anim.Style(style.Map{"opacity": 1.0})),
			anim.Animate(5.0, anim.Style(style.Map{"opacity": 0.0})),
		}, nil),
		anim.Animate(1000.0, nil),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 3 {
		t.Fatalf("expected 3 instructions, have %d", len(instrs))
	}
	emptyStep := instrs[2]
	if emptyStep.Keyframes[0].Styles["opacity"] != 1.0 {
		t.Errorf("the later write (opacity=1 at t=10) should win the merge, have %v",
			emptyStep.Keyframes[0].Styles["opacity"])
	}
	if diff := cmp.Diff([]string{"opacity"}, emptyStep.PostStyleProps); diff != "" {
		t.Errorf("post style props mismatch (-want +got):\n%s", diff)
	}
}

func TestFinalStylesResolveEmptyStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate(1000.0, nil),
	}, nil)
	instrs, err := Compile(query.Driver{}, host, ast, nil,
		style.Map{"opacity": 1.0}, BuildOptions{}, nil)
	if err != nil {
		t.Fatalf("unexpected compile errors: %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	last := instrs[0].Keyframes[len(instrs[0].Keyframes)-1]
	if last.Styles["opacity"] != 1.0 {
		t.Errorf("final styles should replace the empty step's auto value, have %v", last.Styles["opacity"])
	}
	if len(instrs[0].PostStyleProps) != 0 {
		t.Errorf("no auto values should remain, post props = %v", instrs[0].PostStyleProps)
	}
}

func TestEmptyStepOwnsCurrentKeyframe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	var errs []error
	tl := NewTimelineBuilder(host, 0)
	tl.SetStyles([]style.Token{style.Tok(style.Map{"opacity": 0.0})}, "", &errs, nil)
	if !tl.AllowOnlyTimelineStyles() {
		t.Error("a timeline without an empty step should accept final styles")
	}
	tl.ForwardTime(1000)
	tl.ApplyEmptyStep("")
	if tl.AllowOnlyTimelineStyles() {
		t.Error("an empty step owns its keyframe while it is current")
	}
	// an explicit style for another property still lands on the keyframe
	tl.SetStyles([]style.Token{style.Tok(style.Map{"width": "100px"})}, "", &errs, nil)
	tl.ForwardTime(2000)
	if !tl.AllowOnlyTimelineStyles() {
		t.Error("forwarding past the empty step should release the keyframe")
	}
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	//
	instr := tl.BuildKeyframes()
	if len(instr.Keyframes) != 3 {
		t.Fatalf("expected 3 keyframes, have %d", len(instr.Keyframes))
	}
	mid := instr.Keyframes[1]
	if mid.Styles["opacity"] != style.Auto {
		t.Errorf("the empty step should animate opacity to its computed value, have %v", mid.Styles["opacity"])
	}
	if mid.Styles["width"] != "100px" {
		t.Errorf("an explicit width at the empty step keyframe should survive, have %v", mid.Styles["width"])
	}
}

func TestSequenceDelayOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})),
	}, &anim.Options{Delay: 500.0})
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	if instrs[0].Delay != 500 || instrs[0].Duration != 1000 {
		t.Errorf("delay/duration = %v/%v, expected 500/1000", instrs[0].Delay, instrs[0].Duration)
	}
	if instrs[0].TotalTime != 1500 {
		t.Errorf("total time = %v, expected 1500", instrs[0].TotalTime)
	}
}

func TestKeyframesOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Animate(1000.0, anim.Keyframes(
		anim.Style(style.Map{"opacity": 0.0}).WithOffset(0),
		anim.Style(style.Map{"opacity": 0.5}).WithOffset(0.5),
		anim.Style(style.Map{"opacity": 1.0}).WithOffset(1),
	))
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	expected := []Keyframe{
		{Offset: 0, Styles: style.Map{"opacity": 0.0}},
		{Offset: 0.5, Styles: style.Map{"opacity": 0.5}},
		{Offset: 1, Styles: style.Map{"opacity": 1.0}},
	}
	if diff := cmp.Diff(expected, instrs[0].Keyframes); diff != "" {
		t.Errorf("keyframes mismatch (-want +got):\n%s", diff)
	}
	if instrs[0].Duration != 1000 {
		t.Errorf("duration = %v, expected 1000", instrs[0].Duration)
	}
}

func TestQueryFansOut(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Query("span.item",
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})), nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 4 {
		t.Fatalf("expected one instruction per matched span, have %d", len(instrs))
	}
	seen := map[*html.Node]bool{}
	for _, instr := range instrs {
		if instr.Duration != 1000 || instr.Delay != 0 {
			t.Errorf("duration/delay = %v/%v, expected 1000/0", instr.Duration, instr.Delay)
		}
		seen[instr.Element] = true
	}
	if len(seen) != 4 {
		t.Errorf("instructions should target 4 distinct elements, have %d", len(seen))
	}
}

func TestQueryLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Query("span.item",
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})),
		&anim.QueryOptions{Limit: 2})
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 2 {
		t.Errorf("limit 2 should cap the fan-out, have %d instructions", len(instrs))
	}
}

func TestQueryZeroMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	ast := anim.Query(".missing", anim.Animate(1000.0, nil), nil)
	_, err := Compile(query.Driver{}, host, ast, nil, nil, BuildOptions{}, nil)
	if err == nil {
		t.Fatal("expected a zero-elements error")
	}
	t.Logf("error = %v", err)
	if !strings.Contains(err.Error(), "returned zero elements") {
		t.Errorf("unexpected error: %v", err)
	}
	//
	optional := anim.Query(".missing", anim.Animate(1000.0, nil),
		&anim.QueryOptions{Optional: true})
	if _, err := Compile(query.Driver{}, host, optional, nil, nil, BuildOptions{}, nil); err != nil {
		t.Errorf("optional queries may match nothing, error = %v", err)
	}
}

func TestStaggerFansOut(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Query("span.item",
		anim.Stagger(100.0, anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0}))), nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 4 {
		t.Fatalf("expected 4 instructions, have %d", len(instrs))
	}
	for i, instr := range instrs {
		expected := float64(i) * 100
		if instr.Delay != expected {
			t.Errorf("instruction %d: delay = %v, expected %v", i, instr.Delay, expected)
		}
	}
}

func TestStaggerReversed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Query("span.item",
		anim.Stagger(-100.0, anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0}))), nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 4 {
		t.Fatalf("expected 4 instructions, have %d", len(instrs))
	}
	for i, instr := range instrs {
		expected := float64(3-i) * 100
		if instr.Delay != expected {
			t.Errorf("instruction %d: delay = %v, expected %v", i, instr.Delay, expected)
		}
	}
}

func TestStaggerFullChainsMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Query("span.item",
		anim.Stagger("full", anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0}))), nil)
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 4 {
		t.Fatalf("expected 4 instructions, have %d", len(instrs))
	}
	for i, instr := range instrs {
		expected := float64(i) * 1000
		if instr.Delay != expected {
			t.Errorf("instruction %d: delay = %v, expected %v (end-to-end chaining)", i, instr.Delay, expected)
		}
	}
}

func TestStaggerOutsideQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	ast := anim.Stagger(100.0, anim.Animate(1000.0, nil))
	_, err := Compile(query.Driver{}, host, ast, nil, nil, BuildOptions{}, nil)
	if err == nil || !strings.Contains(err.Error(), "stagger() can only be used inside of query()") {
		t.Errorf("expected the stagger placement error, have %v", err)
	}
}

func TestParamsSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"width": "$from"}),
		anim.Animate("1s $delay", anim.Style(style.Map{"width": "$to"})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{
		Params: map[string]style.Value{
			"$from":  "0px",
			"$to":    "100px",
			"$delay": "500ms",
		},
	})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	instr := instrs[0]
	if instr.Duration != 1500 {
		t.Errorf("duration = %v, expected 1500 (1s plus substituted 500ms delay)", instr.Duration)
	}
	first := instr.Keyframes[0]
	last := instr.Keyframes[len(instr.Keyframes)-1]
	if first.Styles["width"] != "0px" || last.Styles["width"] != "100px" {
		t.Errorf("substituted styles wrong: first = %v, last = %v", first.Styles, last.Styles)
	}
}

func TestParamsUnbound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"width": "$nope"}),
		anim.Animate(1000.0, anim.Style(style.Map{"width": "100px"})),
	}, nil)
	_, err := Compile(query.Driver{}, host, ast, nil, nil, BuildOptions{}, nil)
	if err == nil || !strings.Contains(err.Error(), "please provide a value for the animation param $nope") {
		t.Errorf("expected an unbound-param error, have %v", err)
	}
}

func TestAnimateChildConsumesQueuedInstructions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	childAst := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})),
	}, nil)
	childInstrs, err := Compile(query.Driver{}, host, childAst, nil, nil, BuildOptions{}, nil)
	if err != nil {
		t.Fatalf("cannot compile child animation: %v", err)
	}
	queued := NewElementInstructionMap()
	queued.Append(host, childInstrs)
	//
	instrs, err := Compile(query.Driver{}, host, anim.AnimateChild(nil), nil, nil, BuildOptions{}, queued)
	if err != nil {
		t.Fatalf("unexpected compile errors: %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	if instrs[0].Duration != 1000 {
		t.Errorf("duration = %v, expected 1000", instrs[0].Duration)
	}
	if queued.Has(host) {
		t.Error("queued instructions should be consumed")
	}
}

func TestUseAnimationWithOverrides(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	fade := anim.Animation([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate("$time", anim.Style(style.Map{"opacity": 1.0})),
	}, &anim.Options{Params: map[string]style.Value{"$time": "1s"}})
	//
	ast := anim.UseAnimation(fade, &anim.Options{
		Params: map[string]style.Value{"$time": "2s"},
	})
	instrs := compile(t, ast, BuildOptions{})
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, have %d", len(instrs))
	}
	if instrs[0].Duration != 2000 {
		t.Errorf("duration = %v, expected 2000 (caller params override the defaults)", instrs[0].Duration)
	}
}

func TestSubTimelineStretch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	host := hostElement(t)
	kfs := []Keyframe{
		{Offset: 0, Styles: style.Map{"opacity": 0.0}},
		{Offset: 1, Styles: style.Map{"opacity": 1.0}},
	}
	sub := newSubTimelineBuilder(host, kfs, nil, nil,
		timing.Timing{Duration: 1000, Delay: 1000}, true)
	instr := sub.BuildKeyframes()
	if instr.Duration != 2000 || instr.Delay != 0 {
		t.Errorf("duration/delay = %v/%v, expected 2000/0", instr.Duration, instr.Delay)
	}
	if !instr.Stretched {
		t.Error("the instruction should be flagged as stretched")
	}
	offsets := []float64{}
	for _, kf := range instr.Keyframes {
		offsets = append(offsets, kf.Offset)
	}
	if diff := cmp.Diff([]float64{0, 0.5, 1}, offsets); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(instr.Keyframes[0].Styles, instr.Keyframes[1].Styles); diff != "" {
		t.Errorf("the starting keyframe should hold during the delay span:\n%s", diff)
	}
}

func TestOffsetsAreMonotonic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0}),
		anim.Animate("500ms 250ms", anim.Style(style.Map{"opacity": 0.5})),
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0})),
	}, nil)
	instrs := compile(t, ast, BuildOptions{})
	for _, instr := range instrs {
		prev := -1.0
		for i, kf := range instr.Keyframes {
			if kf.Offset < prev || kf.Offset < 0 || kf.Offset > 1 {
				t.Errorf("keyframe %d: offset %v out of order", i, kf.Offset)
			}
			prev = kf.Offset
		}
	}
}

func TestDeterministicOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.timeline")
	defer teardown()
	//
	ast := anim.Sequence([]anim.Node{
		anim.Style(style.Map{"opacity": 0.0, "width": "0px", "height": "0px"}),
		anim.Animate(1000.0, anim.Style(style.Map{"opacity": 1.0, "width": "50px", "height": "70px"})),
	}, nil)
	first := compile(t, ast, BuildOptions{})
	for i := 0; i < 10; i++ {
		again := compile(t, ast, BuildOptions{})
		if diff := cmp.Diff(first, again,
			cmp.Comparer(func(a, b *html.Node) bool { return true })); diff != "" {
			t.Fatalf("output differs between runs (-first +again):\n%s", diff)
		}
	}
}
