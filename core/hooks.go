package core

import (
	"github.com/sarchlab/adhocdec/instr"
	"github.com/sarchlab/akita/v4/sim"
)

// HookPosInstruction marks when an instruction has been applied. The item is
// the instr.Instruction and the detail an InstDetail.
var HookPosInstruction = &sim.HookPos{Name: "Instruction"}

// HookPosFileSwitch marks when another source file becomes active. The item is
// the new file name.
var HookPosFileSwitch = &sim.HookPos{Name: "File Switch"}

// HookPosLineWarning marks a line boundary crossed with fragments left on the
// stack. The item is the LineWarning.
var HookPosLineWarning = &sim.HookPos{Name: "Line Warning"}

// InstDetail describes the effect of one instruction.
type InstDetail struct {
	File        string
	DepthBefore int
	DepthAfter  int
	// Emitted is the text the instruction appended to the active buffer.
	Emitted string
}

// InstTracer logs every hooked event at trace level.
type InstTracer struct{}

// Func logs the event.
func (InstTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosInstruction:
		inst := ctx.Item.(instr.Instruction)
		detail := ctx.Detail.(InstDetail)
		Trace("Inst",
			"File", detail.File,
			"Line", inst.Line,
			"Mnemonic", inst.Mnemonic,
			"Operand", inst.Operand,
			"DepthBefore", detail.DepthBefore,
			"DepthAfter", detail.DepthAfter,
			"Emitted", detail.Emitted,
		)
	case HookPosFileSwitch:
		Trace("FileSwitch", "File", ctx.Item)
	case HookPosLineWarning:
		w := ctx.Item.(LineWarning)
		Trace("LineWarning", "File", w.File, "Line", w.Line, "Depth", len(w.Stack))
	}
}

// KindCounter counts applied instructions per source file and kind.
type KindCounter struct {
	counts map[string]map[instr.Kind]int
	order  []string
}

// NewKindCounter creates an empty KindCounter.
func NewKindCounter() *KindCounter {
	return &KindCounter{
		counts: make(map[string]map[instr.Kind]int),
	}
}

// Func counts the instruction.
func (c *KindCounter) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosInstruction {
		return
	}

	inst := ctx.Item.(instr.Instruction)
	file := ctx.Detail.(InstDetail).File

	perKind, ok := c.counts[file]
	if !ok {
		perKind = make(map[instr.Kind]int)
		c.counts[file] = perKind
		c.order = append(c.order, file)
	}

	perKind[inst.Kind]++
}

// Reset forgets all counts.
func (c *KindCounter) Reset() {
	c.counts = make(map[string]map[instr.Kind]int)
	c.order = nil
}

// Files returns the files that ran at least one instruction, in order of
// first appearance.
func (c *KindCounter) Files() []string {
	return append([]string(nil), c.order...)
}

// Count returns how many instructions of the kind ran in the file.
func (c *KindCounter) Count(file string, kind instr.Kind) int {
	return c.counts[file][kind]
}
