package timeline

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"golang.org/x/net/html"

	"github.com/swseverance/angular/style"
)

// Keyframe is one rendered keyframe of an instruction: a style snapshot
// at a relative offset in [0,1], with the easing into the next frame.
type Keyframe struct {
	Offset float64
	Easing string
	Styles style.Map
}

// Instruction is the compiled timeline of one element: the flat list of
// keyframes a player can hand to the rendering engine, plus the style
// properties that have to be captured from the document before
// (PreStyleProps, from "!" placeholders) or after (PostStyleProps, from
// "*" placeholders) the animation runs.
type Instruction struct {
	Element        *html.Node
	Keyframes      []Keyframe
	PreStyleProps  []string
	PostStyleProps []string
	Duration       float64
	Delay          float64
	TotalTime      float64
	Easing         string
	// Stretched is set when a sub-instruction's delay was folded into
	// its keyframe offsets.
	Stretched bool
}

// QueryDriver resolves a CSS selector below an element. multi selects
// between first-match and all-matches semantics. The queried element
// itself is never part of the result.
type QueryDriver interface {
	Query(element *html.Node, selector string, multi bool) []*html.Node
}

// ElementInstructionMap queues pre-compiled child instructions per
// element, to be consumed by animateChild() steps. Consume removes what
// it returns, so each queued instruction plays at most once.
type ElementInstructionMap struct {
	instructions map[*html.Node][]*Instruction
}

// NewElementInstructionMap creates an empty instruction queue.
func NewElementInstructionMap() *ElementInstructionMap {
	return &ElementInstructionMap{instructions: make(map[*html.Node][]*Instruction)}
}

// Consume returns and removes the instructions queued for element.
func (m *ElementInstructionMap) Consume(element *html.Node) []*Instruction {
	instrs := m.instructions[element]
	if instrs != nil {
		delete(m.instructions, element)
	}
	return instrs
}

// Append queues instructions for element.
func (m *ElementInstructionMap) Append(element *html.Node, instrs []*Instruction) {
	m.instructions[element] = append(m.instructions[element], instrs...)
}

// Has reports whether instructions are queued for element.
func (m *ElementInstructionMap) Has(element *html.Node) bool {
	_, ok := m.instructions[element]
	return ok
}

// Clear drops all queued instructions.
func (m *ElementInstructionMap) Clear() {
	m.instructions = make(map[*html.Node][]*Instruction)
}
