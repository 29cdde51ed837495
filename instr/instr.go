// Package instr parses lines of an Adhoc disassembly listing into
// instructions.
package instr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	instructionPattern = regexp2.MustCompile(
		`\d*\| *(\d*)\| *\d*\| *([^:\-\n]*)(?:[:\-] (.*))?`, regexp2.None)
	leavePattern      = regexp2.MustCompile(`\| LEAVE:.*`, regexp2.None)
	fileHeaderPattern = regexp2.MustCompile(
		`Original File Name: ([^\n]*)`, regexp2.None)
)

// ErrMissingHeader is returned when the listing does not name its original
// source file on the second line.
var ErrMissingHeader = errors.New("missing 'Original File Name' header")

const leaveMnemonic = "LEAVE"

// Instruction is one decoded line of the disassembly.
type Instruction struct {
	// Line is the line of the original source the instruction belongs to.
	Line     int
	Kind     Kind
	Mnemonic string
	// Operand is the text after the mnemonic separator. HasOperand tells an
	// empty operand apart from a missing one.
	Operand    string
	HasOperand bool
	// The raw text of the instruction.
	Raw string
}

func (i Instruction) String() string {
	if !i.HasOperand {
		return fmt.Sprintf("L%d %s", i.Line, i.Mnemonic)
	}

	return fmt.Sprintf("L%d %s: %s", i.Line, i.Mnemonic, i.Operand)
}

// ParseLine turns one listing line into an instruction. The boolean result is
// false for lines that carry no instruction: blank lines, LEAVE markers and
// anything that does not have the `addr| line| n| MNEMONIC[: operand]` shape.
//
// Mnemonics outside the instruction set are returned with Kind Unknown.
func ParseLine(line string) (Instruction, bool) {
	raw := strings.TrimRight(line, "\r\n")
	if raw == "" {
		return Instruction{}, false
	}

	if isLeave, _ := leavePattern.MatchString(raw); isLeave {
		return Instruction{}, false
	}

	m, err := instructionPattern.FindStringMatch(raw)
	if err != nil || m == nil {
		return Instruction{}, false
	}

	lineText := m.GroupByNumber(1).String()
	if lineText == "" {
		return Instruction{}, false
	}

	lineNo, err := strconv.Atoi(lineText)
	if err != nil {
		return Instruction{}, false
	}

	mnemonic := strings.Trim(m.GroupByNumber(2).String(), " \n")
	if mnemonic == "" || mnemonic == leaveMnemonic {
		return Instruction{}, false
	}

	inst := Instruction{
		Line:     lineNo,
		Mnemonic: mnemonic,
		Raw:      raw,
	}
	inst.Kind, _ = Lookup(mnemonic)

	operand := m.GroupByNumber(3)
	if len(operand.Captures) > 0 {
		inst.Operand = operand.String()
		inst.HasOperand = true
	}

	return inst, true
}

// ParseHeader returns the original file name recorded on the second line of
// the listing.
func ParseHeader(lines []string) (string, error) {
	if len(lines) < 2 {
		return "", ErrMissingHeader
	}

	m, err := fileHeaderPattern.FindStringMatch(strings.TrimRight(lines[1], "\r\n"))
	if err != nil {
		return "", fmt.Errorf("failed to match header: %w", err)
	}

	if m == nil {
		return "", ErrMissingHeader
	}

	return m.GroupByNumber(1).String(), nil
}
