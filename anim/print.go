package anim

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

	tp "github.com/xlab/treeprint"

	"github.com/swseverance/angular/style"
)

// Dump renders an animation AST as an indented tree; used for debugging
// and in traces.
func Dump(node Node) string {
	tree := tp.New()
	dumpInto(tree, node)
	return tree.String()
}

func dumpInto(branch tp.Tree, node Node) {
	switch n := node.(type) {
	case *StyleNode:
		label := "style " + formatTokens(n.Styles)
		if n.IsEmptyStep {
			label = "style (empty step)"
		}
		if n.Easing != "" {
			label += " easing=" + n.Easing
		}
		branch.AddNode(label)
	case *AnimateNode:
		b := branch.AddBranch(fmt.Sprintf("animate %v", n.Timings))
		dumpInto(b, n.Style)
	case *SequenceNode:
		b := branch.AddBranch("sequence")
		for _, step := range n.Steps {
			dumpInto(b, step)
		}
	case *GroupNode:
		b := branch.AddBranch("group")
		for _, step := range n.Steps {
			dumpInto(b, step)
		}
	case *KeyframesNode:
		b := branch.AddBranch("keyframes")
		for _, step := range n.Steps {
			sb := b.AddBranch(fmt.Sprintf("offset %g", step.Offset))
			dumpInto(sb, step)
		}
	case *QueryNode:
		b := branch.AddBranch(fmt.Sprintf("query %q", n.OriginalSelector))
		dumpInto(b, n.Animation)
	case *StaggerNode:
		b := branch.AddBranch(fmt.Sprintf("stagger %v", n.Timings))
		dumpInto(b, n.Animation)
	case *ReferenceNode:
		b := branch.AddBranch("animation")
		dumpInto(b, n.Animation)
	case *AnimateChildNode:
		branch.AddNode("animateChild")
	case *AnimateRefNode:
		b := branch.AddBranch("useAnimation")
		dumpInto(b, n.Animation)
	case *TriggerNode:
		b := branch.AddBranch(fmt.Sprintf("trigger %q", n.Name))
		for _, s := range n.States {
			dumpInto(b, s)
		}
		for _, t := range n.Transitions {
			dumpInto(b, t)
		}
	case *StateNode:
		b := branch.AddBranch(fmt.Sprintf("state %q", n.Name))
		dumpInto(b, n.Style)
	case *TransitionNode:
		b := branch.AddBranch(fmt.Sprintf("transition %q", n.Expr))
		dumpInto(b, n.Animation)
	}
}

func formatTokens(tokens []style.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token.IsWildcard() {
			parts = append(parts, "*")
			continue
		}
		m := token.Styles()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kv := make([]string, 0, len(keys))
		for _, k := range keys {
			kv = append(kv, fmt.Sprintf("%s:%v", k, m[k]))
		}
		parts = append(parts, "{"+strings.Join(kv, ", ")+"}")
	}
	return strings.Join(parts, " ")
}
