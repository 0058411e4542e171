/*
Package anim defines the animation AST: a closed, discriminated union of
animation operations (style steps, timed animations, sequences, parallel
groups, keyframe interpolations, element queries, staggers, references to
named sub-animations, and trigger/state/transition declarations), plus
the thin, stateless factory functions that construct it.

The AST only describes an animation; compiling it into per-element
keyframe timelines is the job of package timeline. Validation/linting of
an AST is likewise out of scope here: the factories normalize their
input, and the compiler surfaces the semantic errors it discovers while
compiling (unresolved variables, empty query results, bad timing
expressions).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package anim

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to 'anim.dsl'.
func tracer() tracing.Trace {
	return tracing.Select("anim.dsl")
}
