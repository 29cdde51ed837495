package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/adhocdec/instr"
)

var (
	// ErrUnknownMnemonic is returned for instructions outside the
	// instruction set.
	ErrUnknownMnemonic = errors.New("unknown instruction")

	// ErrNonNilImport is returned for an IMPORT whose third field is not nil.
	ErrNonNilImport = errors.New("IMPORT instruction with non-nil 3rd parameter")

	// ErrMalformedOperand is returned when an operand lacks the fields its
	// instruction needs.
	ErrMalformedOperand = errors.New("malformed operand")
)

// FatalError aborts a run. It carries the state of the active buffer at the
// point of failure so that the listing can be inspected.
type FatalError struct {
	Err         error
	File        string
	Line        int
	Instruction instr.Instruction
	Buffer      string
	Stack       []string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s:L%d: %s: %v",
		e.File, e.Instruction.Line, e.Instruction.Mnemonic, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func malformed(inst instr.Instruction, format string, args ...any) error {
	return fmt.Errorf("%w: %s %q: %s",
		ErrMalformedOperand, inst.Mnemonic, inst.Operand, fmt.Sprintf(format, args...))
}
