package anim

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/swseverance/angular/style"
)

func TestAnimateEmptyStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	a := Animate(1000.0, nil)
	s, ok := a.Style.(*StyleNode)
	if !ok {
		t.Fatalf("expected a style node, have %T", a.Style)
	}
	if !s.IsEmptyStep {
		t.Error("animate(duration) without styles should carry an empty style step")
	}
}

func TestKeyframesEvenDistribution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	kf := Keyframes(
		Style(style.Map{"opacity": 0.0}),
		Style(style.Map{"opacity": 0.5}),
		Style(style.Map{"opacity": 1.0}),
	)
	offsets := []float64{}
	for _, step := range kf.Steps {
		offsets = append(offsets, step.Offset)
	}
	assert.Equal(t, []float64{0, 0.5, 1}, offsets)
}

func TestKeyframesLiftsOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	kf := Keyframes(
		Style(style.Map{"opacity": 0.0, "offset": 0.0}),
		Style(style.Map{"opacity": 1.0, "offset": 0.25}),
	)
	if kf.Steps[1].Offset != 0.25 {
		t.Errorf("offset = %v, expected 0.25", kf.Steps[1].Offset)
	}
	if _, stillThere := kf.Steps[1].Styles[0].Styles()["offset"]; stillThere {
		t.Error("the offset entry should be lifted out of the style map")
	}
}

func TestQuerySelectorNormalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	cases := []struct {
		selector    string
		normalized  string
		includeSelf bool
	}{
		{"@*", ".ng-trigger", false},
		{"@slide", ".ng-trigger-slide", false},
		{":animating", ".ng-animating", false},
		{":self, .child", ".child", true},
		{"div .inner", "div .inner", false},
	}
	for _, c := range cases {
		q := Query(c.selector, Animate(100.0, nil), nil)
		if q.Selector != c.normalized {
			t.Errorf("query(%q): selector = %q, expected %q", c.selector, q.Selector, c.normalized)
		}
		if q.IncludeSelf != c.includeSelf {
			t.Errorf("query(%q): includeSelf = %v, expected %v", c.selector, q.IncludeSelf, c.includeSelf)
		}
	}
}

func TestQueryOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	q := Query("div", Animate(100.0, nil), &QueryOptions{Optional: true, Limit: -2})
	if !q.Optional || q.Limit != -2 {
		t.Errorf("query options not carried over: %+v", q)
	}
}

func TestTriggerCollectsDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	tr := Trigger("openClose",
		State("open", Style(style.Map{"height": "200px"})),
		State("closed", Style(style.Map{"height": "0px"})),
		Transition("open <=> closed", Animate("300ms", nil), nil),
	)
	if len(tr.States) != 2 || len(tr.Transitions) != 1 {
		t.Errorf("trigger holds %d states and %d transitions", len(tr.States), len(tr.Transitions))
	}
}

func TestResolveStaggerFull(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	var errs []error
	tm := ResolveStaggerTimings("full", &errs)
	if tm.Easing != "full" || tm.Duration != 0 {
		t.Errorf("resolved to %+v", tm)
	}
	tm = ResolveStaggerTimings(-100.0, &errs)
	if tm.Duration != -100 {
		t.Errorf("negative stagger durations must pass, have %+v", tm)
	}
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestDumpSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "anim.dsl")
	defer teardown()
	//
	seq := Sequence([]Node{
		Style(style.Map{"opacity": 0.0}),
		Animate(1000.0, Style(style.Map{"opacity": 1.0})),
	}, nil)
	out := Dump(seq)
	t.Logf("dump:\n%s", out)
	if !strings.Contains(out, "sequence") || !strings.Contains(out, "animate") {
		t.Error("dump should mention the sequence and its animate step")
	}
}
