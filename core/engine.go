package core

import (
	"log/slog"

	"github.com/sarchlab/adhocdec/instr"
	"github.com/sarchlab/akita/v4/sim"
)

// Engine reconstructs source text from an Adhoc disassembly listing. It walks
// the listing once, in order, and is not safe for concurrent runs.
type Engine struct {
	sim.HookableBase

	name   string
	logger *slog.Logger
	emu    instEmulator
}

// Name returns the name of the engine.
func (e *Engine) Name() string {
	return e.name
}

// Run consumes the lines of a listing and returns the reconstructed text of
// every source file it names. The second line must carry the original file
// name header.
//
// A *FatalError aborts the run; no result is returned in that case.
func (e *Engine) Run(lines []string) (*Result, error) {
	fileName, err := instr.ParseHeader(lines)
	if err != nil {
		return nil, err
	}

	s := newState(fileName)

	for _, line := range lines {
		inst, ok := instr.ParseLine(line)
		if !ok {
			continue
		}

		if err := e.step(inst, s); err != nil {
			return nil, err
		}
	}

	s.freeze()
	s.stats.OpenArrays = len(s.arrayCounts)

	return &Result{
		Files: s.files,
		Stats: *s.stats,
	}, nil
}

func (e *Engine) step(inst instr.Instruction, s *state) error {
	for _, w := range s.syncLine(inst.Line) {
		e.logger.Warn("line stack not empty",
			"file", w.File, "line", w.Line, "stack", w.Stack)
		e.invoke(HookPosLineWarning, w, nil)
	}

	depthBefore := s.stack.Len()
	textBefore := s.text.Len()

	err := e.emu.RunInst(inst, s)
	if err != nil {
		return &FatalError{
			Err:         err,
			File:        s.fileName,
			Line:        s.line,
			Instruction: inst,
			Buffer:      s.text.String(),
			Stack:       s.stack.Snapshot(),
		}
	}

	s.stats.Instructions++
	s.stats.KindCounts[inst.Kind]++

	if e.NumHooks() == 0 {
		return nil
	}

	if inst.Kind == instr.SourceFile {
		e.invoke(HookPosFileSwitch, s.fileName, nil)
		return nil
	}

	e.invoke(HookPosInstruction, inst, InstDetail{
		File:        s.fileName,
		DepthBefore: depthBefore,
		DepthAfter:  s.stack.Len(),
		Emitted:     s.text.String()[textBefore:],
	})

	return nil
}

func (e *Engine) invoke(pos *sim.HookPos, item, detail interface{}) {
	if e.NumHooks() == 0 {
		return
	}

	e.InvokeHook(sim.HookCtx{
		Domain: e,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}
