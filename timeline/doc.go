/*
Package timeline compiles an animation AST into flat, per-element
keyframe timelines on an absolute time axis.

The compiler walks the AST with a single visitor. Every element touched
by the animation owns one or more TimelineBuilders; a builder collects
keyframes at absolute times, remembers every style property it has ever
seen on its element (for backfilling into keyframes created later), and
finally renders itself into an Instruction: the element, its keyframes
with relative offsets in [0,1], the properties that must be captured
before (Pre) or after (Post) the animation plays, and the resolved
duration/delay/easing.

Entry point is BuildTimelines (or Compile, which aggregates the error
sink into a single error). Sequences advance one shared timeline,
groups and queries fork child timelines that are merged back by latest
logical time, and staggers fan query matches out along the axis.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package timeline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to 'anim.timeline'.
func tracer() tracing.Trace {
	return tracing.Select("anim.timeline")
}
