package core

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/sarchlab/adhocdec/instr"
)

var setStatePattern = regexp2.MustCompile(`State=\w* \((\d)\)`, regexp2.None)

const (
	stateExit   = 0
	stateReturn = 1
)

type instFunc func(i instEmulator, inst instr.Instruction, s *state) error

// instFuncs is indexed by instr.Kind. Every kind except instr.Unknown must
// have an entry.
var instFuncs = [instr.NumKinds]instFunc{
	instr.SourceFile: instEmulator.runSourceFile,

	instr.Import:          instEmulator.runImport,
	instr.ModuleDefine:    instEmulator.runModuleDefine,
	instr.ClassDefine:     instEmulator.runClassDefine,
	instr.AttributeDefine: instEmulator.runAttributeDefine,
	instr.StaticDefine:    instEmulator.runStaticDefine,
	instr.FunctionDefine:  instEmulator.runFunctionDefine,
	instr.MethodDefine:    instEmulator.runFunctionDefine,
	instr.FunctionConst:   instEmulator.runFunctionConst,
	instr.MethodConst:     instEmulator.runFunctionConst,

	instr.VariableEval:  instEmulator.runVariableEval,
	instr.VariablePush:  instEmulator.runVariablePush,
	instr.AttributeEval: instEmulator.runAttributeEval,
	instr.AttributePush: instEmulator.runAttributePush,
	instr.ElementEval:   instEmulator.runElement,
	instr.ElementPush:   instEmulator.runElement,
	instr.Call:          instEmulator.runCall,

	instr.StringConst: instEmulator.runStringConst,
	instr.SymbolConst: instEmulator.runSymbolConst,
	instr.BoolConst:   instEmulator.runBoolConst,
	instr.IntConst:    instEmulator.runIntConst,
	instr.UIntConst:   instEmulator.runUIntConst,
	instr.FloatConst:  instEmulator.runFloatConst,
	instr.NilConst:    instEmulator.runNilConst,
	instr.VoidConst:   instEmulator.runVoidConst,

	instr.ArrayConst: instEmulator.runArrayConst,
	instr.ArrayPush:  instEmulator.runArrayPush,
	instr.MapConst:   instEmulator.runMapConst,
	instr.MapInsert:  instEmulator.runMapInsert,
	instr.StringPush: instEmulator.runStringPush,
	instr.ListAssign: instEmulator.runListAssign,

	instr.BinaryAssignOperator: instEmulator.runBinaryAssignOperator,
	instr.BinaryOperator:       instEmulator.runBinaryOperator,
	instr.UnaryAssignOperator:  instEmulator.runUnaryAssignOperator,
	instr.UnaryOperator:        instEmulator.runUnaryOperator,
	instr.LogicalOr:            instEmulator.runLogicalOr,
	instr.LogicalAnd:           instEmulator.runLogicalAnd,

	instr.Pop:       instEmulator.runPop,
	instr.AssignPop: instEmulator.runAssignPop,
	instr.Assign:    instEmulator.runAssign,

	instr.JumpIfFalse:    instEmulator.runJumpIfFalse,
	instr.JumpIfTrue:     instEmulator.runJumpIfTrue,
	instr.Jump:           instEmulator.runJump,
	instr.SetState:       instEmulator.runSetState,
	instr.ObjectSelector: instEmulator.runObjectSelector,
	instr.Eval:           instEmulator.runEval,
}

type instEmulator struct {
	logger *slog.Logger
}

// RunInst applies one instruction to the state.
func (i instEmulator) RunInst(inst instr.Instruction, s *state) error {
	var f instFunc
	if inst.Kind > instr.Unknown && inst.Kind < instr.NumKinds {
		f = instFuncs[inst.Kind]
	}

	if f == nil {
		return fmt.Errorf("%w: %s", ErrUnknownMnemonic, inst.Mnemonic)
	}

	return f(i, inst, s)
}

func (i instEmulator) runSourceFile(inst instr.Instruction, s *state) error {
	s.switchFile(inst.Operand)
	return nil
}

/**
 * @description: Emits an import statement.
 * @prototype: IMPORT: path, name=X, Unk3=nil
 */
func (i instEmulator) runImport(inst instr.Instruction, s *state) error {
	fields := instr.Fields(inst.Operand, ",")
	if len(fields) < 3 {
		return malformed(inst, "expected 3 fields, got %d", len(fields))
	}

	modulePath := strings.TrimSpace(fields[0])

	nameParts := strings.Split(fields[1], "=")
	if len(nameParts) < 2 {
		return malformed(inst, "missing module name")
	}
	moduleName := strings.TrimSpace(nameParts[1])

	if strings.TrimSpace(fields[2]) != "Unk3=nil" {
		return fmt.Errorf("%w: %s", ErrNonNilImport, inst.Operand)
	}

	s.emit(fmt.Sprintf("import %s::%s;", modulePath, moduleName))

	return nil
}

func (i instEmulator) runModuleDefine(inst instr.Instruction, s *state) error {
	s.emit(fmt.Sprintf("module %s {", instr.LastField(inst.Operand, ",")))
	return nil
}

/**
 * @description: Emits a class header. The operand names the class and,
 *				after `extends`, the qualified base class.
 * @prototype: CLASS_DEFINE: Name extends a,b,Base
 */
func (i instEmulator) runClassDefine(inst instr.Instruction, s *state) error {
	parts := strings.Split(inst.Operand, "extends")
	className := strings.Trim(parts[0], " ")

	if len(parts) < 2 {
		s.emit(fmt.Sprintf("class %s {", className))
		return nil
	}

	baseName := instr.LastField(parts[1], ",")
	s.emit(fmt.Sprintf("class %s extends %s {", className, baseName))

	return nil
}

func (i instEmulator) runAttributeDefine(inst instr.Instruction, s *state) error {
	name := inst.Operand

	if s.stack.Len() == 0 {
		s.emit(fmt.Sprintf("attribute %s;", name))
		return nil
	}

	val, _ := s.pop()
	if val == "nil" {
		s.emit(fmt.Sprintf("attribute %s;", name))
	} else {
		s.emit(fmt.Sprintf("attribute %s=%s;", name, val))
	}

	return nil
}

func (i instEmulator) runStaticDefine(inst instr.Instruction, s *state) error {
	s.emit(fmt.Sprintf("static %s;", inst.Operand))
	return nil
}

/**
 * @description: Emits a function or method header. Default values of the
 *				arguments were pushed before the definition, first argument
 *				deepest.
 * @prototype: FUNCTION_DEFINE: name(a[0], b[1])
 */
func (i instEmulator) runFunctionDefine(inst instr.Instruction, s *state) error {
	parts := strings.Split(inst.Operand, "(")
	name := parts[0]

	argText := ""
	if len(parts) > 1 {
		argText = strings.Trim(parts[1], ")")
	}

	args, err := i.formatArgs(argText, s)
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("%s %s(%s) {", functionKeyword(inst.Kind), name, args))

	return nil
}

func (i instEmulator) runFunctionConst(inst instr.Instruction, s *state) error {
	args, err := i.formatArgs(strings.Trim(inst.Operand, "()"), s)
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("%s(%s) {", functionKeyword(inst.Kind), args))

	return nil
}

func functionKeyword(kind instr.Kind) string {
	if kind == instr.MethodDefine || kind == instr.MethodConst {
		return "method"
	}

	return "function"
}

// argSuffixLen is the length of the slot suffix the disassembler appends to
// argument names.
const argSuffixLen = 3

func (i instEmulator) formatArgs(argText string, s *state) (string, error) {
	args := strings.Split(argText, ",")
	argCount := len(args)

	formatted := make([]string, 0, argCount)
	for idx, arg := range args {
		if arg == "" {
			continue
		}

		name := strings.Trim(arg, " ")
		if len(name) > argSuffixLen {
			name = name[:len(name)-argSuffixLen]
		} else {
			name = ""
		}

		val, err := s.stack.PopAt(argCount - idx)
		if err != nil {
			return "", fmt.Errorf("argument %q: %w", name, err)
		}

		if val == "nil" {
			formatted = append(formatted, name)
		} else {
			formatted = append(formatted, name+"="+val)
		}
	}

	return strings.Join(formatted, ", "), nil
}

func (i instEmulator) runVariableEval(inst instr.Instruction, s *state) error {
	fields := instr.Fields(strings.TrimSpace(inst.Operand), ",")
	s.push(instr.FieldFromEnd(fields, 2))

	return nil
}

/**
 * @description: Pushes a variable reference. Locals are written `name,`,
 *				statics carry their scope path before the name.
 * @prototype: VARIABLE_PUSH: v,
 */
func (i instEmulator) runVariablePush(inst instr.Instruction, s *state) error {
	fields := instr.Fields(inst.Operand, ",")

	if s.stack.Len() > 0 && len(fields) == 2 {
		s.push(fields[0])
		return nil
	}

	s.push(instr.FieldFromEnd(fields, 2))

	return nil
}

func (i instEmulator) runAttributeEval(inst instr.Instruction, s *state) error {
	base, err := s.pop()
	if err != nil {
		return err
	}

	field := instr.LastField(strings.TrimSpace(inst.Operand), ",")
	s.push(base + "." + field)

	return nil
}

func (i instEmulator) runAttributePush(inst instr.Instruction, s *state) error {
	base, err := s.pop()
	if err != nil {
		return err
	}

	s.push(base + "." + inst.Operand)

	return nil
}

func (i instEmulator) runElement(inst instr.Instruction, s *state) error {
	index, err := s.pop()
	if err != nil {
		return err
	}

	base, err := s.pop()
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("%s[%s]", base, index))

	return nil
}

/**
 * @description: Builds a call expression. The callee sits below the
 *				arguments. Missing fragments are topped up with placeholders
 *				so that the reconstruction can go on.
 * @prototype: CALL: Unk=2
 */
func (i instEmulator) runCall(inst instr.Instruction, s *state) error {
	argCount, err := instr.TrailingInt(inst.Operand, "=")
	if err != nil || argCount < 0 {
		return malformed(inst, "invalid argument count")
	}

	if argCount >= s.stack.Len() {
		missing := 1 + argCount - s.stack.Len()
		for n := 0; n < missing; n++ {
			s.push(UnknownValue)
		}
		s.stats.Placeholders += missing
	}

	callee, err := s.stack.PopAt(argCount + 1)
	if err != nil {
		return err
	}

	args, err := s.popInOrder(argCount)
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", ")))

	return nil
}

func (i instEmulator) runStringConst(inst instr.Instruction, s *state) error {
	s.push(`"` + inst.Operand + `"`)
	return nil
}

func (i instEmulator) runSymbolConst(inst instr.Instruction, s *state) error {
	s.push(`$"` + inst.Operand + `"`)
	return nil
}

func (i instEmulator) runBoolConst(inst instr.Instruction, s *state) error {
	s.push(strings.ToLower(inst.Operand))
	return nil
}

func (i instEmulator) runIntConst(inst instr.Instruction, s *state) error {
	s.push(instr.FirstToken(inst.Operand))
	return nil
}

func (i instEmulator) runUIntConst(inst instr.Instruction, s *state) error {
	s.push(instr.FirstToken(inst.Operand) + "u")
	return nil
}

func (i instEmulator) runFloatConst(inst instr.Instruction, s *state) error {
	s.push(instr.LastField(inst.Operand, "=") + "f")
	return nil
}

func (i instEmulator) runNilConst(inst instr.Instruction, s *state) error {
	s.push("nil")
	return nil
}

func (i instEmulator) runVoidConst(inst instr.Instruction, s *state) error {
	s.push("")
	return nil
}

/**
 * @description: Opens an array literal of N elements. Each open literal
 *				keeps its own counter, so literals may nest.
 * @prototype: ARRAY_CONST: [N]
 */
func (i instEmulator) runArrayConst(inst instr.Instruction, s *state) error {
	count, err := instr.BracketedInt(inst.Operand)
	if err != nil || count < 0 {
		return malformed(inst, "invalid element count")
	}

	if count == 0 {
		s.push("[]")
		return nil
	}

	s.arrayCounts = append(s.arrayCounts, count)
	s.push("[")

	return nil
}

func (i instEmulator) runArrayPush(inst instr.Instruction, s *state) error {
	val, err := s.pop()
	if err != nil {
		return err
	}

	acc := ""
	if s.stack.Len() > 0 {
		acc, _ = s.pop()
	}

	if len(s.arrayCounts) == 0 {
		i.logger.Warn("ARRAY_PUSH outside of an array literal",
			"file", s.fileName, "line", inst.Line)
		s.push(acc + val + ", ")

		return nil
	}

	top := len(s.arrayCounts) - 1
	s.arrayCounts[top]--

	if s.arrayCounts[top] == 0 {
		s.arrayCounts = s.arrayCounts[:top]
		s.push(acc + val + "]")
	} else {
		s.push(acc + val + ", ")
	}

	return nil
}

func (i instEmulator) runMapConst(inst instr.Instruction, s *state) error {
	s.push("[")
	return nil
}

/**
 * @description: Appends a key/value pair to the map literal below them. After
 *				a line boundary with a leftover stack the accumulator is stale,
 *				so a fresh map is started instead.
 */
func (i instEmulator) runMapInsert(inst instr.Instruction, s *state) error {
	val, err := s.pop()
	if err != nil {
		return err
	}

	key, err := s.pop()
	if err != nil {
		return err
	}

	acc := ""
	if s.stack.Len() > 0 {
		acc, _ = s.pop()
	}

	if s.multiLine {
		acc = ""
	}

	s.push(fmt.Sprintf("%s%s: %s,", acc, key, val))

	return nil
}

func (i instEmulator) runStringPush(inst instr.Instruction, s *state) error {
	count, err := instr.TrailingInt(inst.Operand, "=")
	if err != nil || count < 0 {
		return malformed(inst, "invalid item count")
	}

	if count == 0 {
		s.push(`""`)
		return nil
	}

	items, err := s.popInOrder(count)
	if err != nil {
		return err
	}

	s.push("<STRING_PUSH> [" + strings.Join(items, ", ") + "]")

	return nil
}

/**
 * @description: Builds a destructuring assignment. The targets are on top of
 *				the value.
 * @prototype: LIST_ASSIGN: Count=2, ...
 */
func (i instEmulator) runListAssign(inst instr.Instruction, s *state) error {
	count, err := instr.TrailingInt(instr.Fields(inst.Operand, ",")[0], "=")
	if err != nil || count < 0 {
		return malformed(inst, "invalid target count")
	}

	targets, err := s.popInOrder(count)
	if err != nil {
		return err
	}

	val, err := s.pop()
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("[%s] = %s", strings.Join(targets, ", "), val))

	return nil
}

func (i instEmulator) popOperands(s *state) (lhs, rhs string, err error) {
	rhs, err = s.pop()
	if err != nil {
		return "", "", err
	}

	lhs, err = s.pop()
	if err != nil {
		return "", "", err
	}

	return lhs, rhs, nil
}

func (i instEmulator) runBinaryAssignOperator(inst instr.Instruction, s *state) error {
	lhs, rhs, err := i.popOperands(s)
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("%s %s= %s", lhs, operatorToken(inst.Operand), rhs))

	return nil
}

func (i instEmulator) runBinaryOperator(inst instr.Instruction, s *state) error {
	lhs, rhs, err := i.popOperands(s)
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("%s %s %s", lhs, operatorToken(inst.Operand), rhs))

	return nil
}

// operandPlaceholder marks where the operand goes in a unary operator
// template, as in `@++`.
const operandPlaceholder = "@"

func (i instEmulator) runUnaryAssignOperator(inst instr.Instruction, s *state) error {
	operand, err := s.pop()
	if err != nil {
		return err
	}

	template := instr.FirstToken(inst.Operand)
	s.push(strings.ReplaceAll(template, operandPlaceholder, operand))

	return nil
}

func (i instEmulator) runUnaryOperator(inst instr.Instruction, s *state) error {
	operand, err := s.pop()
	if err != nil {
		return err
	}

	template := instr.FirstToken(inst.Operand)
	if strings.Contains(template, operandPlaceholder) {
		s.push(strings.ReplaceAll(template, operandPlaceholder, operand))
	} else {
		s.push(template + operand)
	}

	return nil
}

func (i instEmulator) runLogicalOr(inst instr.Instruction, s *state) error {
	expr, err := s.pop()
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("<condition='%s' || OR>", expr))

	return nil
}

func (i instEmulator) runLogicalAnd(inst instr.Instruction, s *state) error {
	expr, err := s.pop()
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("<condition='%s' && AND>", expr))

	return nil
}

func (i instEmulator) runPop(inst instr.Instruction, s *state) error {
	expr, err := s.pop()
	if err != nil {
		return err
	}

	s.emit(expr + ";")

	return nil
}

// popAssignment pops the assignment target and then its value. The target is
// pushed last.
func (i instEmulator) popAssignment(s *state) (target, val string, err error) {
	target, err = s.pop()
	if err != nil {
		return "", "", err
	}

	return target, s.popOrPlaceholder(MissingValue), nil
}

func (i instEmulator) runAssignPop(inst instr.Instruction, s *state) error {
	target, val, err := i.popAssignment(s)
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("%s = %s;", target, val))

	return nil
}

func (i instEmulator) runAssign(inst instr.Instruction, s *state) error {
	target, val, err := i.popAssignment(s)
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("%s = %s", target, val))

	return nil
}

func (i instEmulator) runJumpIfFalse(inst instr.Instruction, s *state) error {
	cond, err := s.pop()
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("<JUMP_IF_FALSE condition='%s'>", cond))

	return nil
}

func (i instEmulator) runJumpIfTrue(inst instr.Instruction, s *state) error {
	cond, err := s.pop()
	if err != nil {
		return err
	}

	s.emit(fmt.Sprintf("<JUMP_IF_TRUE condition='%s'>", cond))

	return nil
}

func (i instEmulator) runJump(inst instr.Instruction, s *state) error {
	s.emit("<JUMP>")
	return nil
}

/**
 * @description: State 1 returns the top fragment, state 0 leaves through the
 *				exit label. Other states change nothing.
 * @prototype: SET_STATE: State=RETURN (1)
 * @prototype: SET_STATE: State=EXIT (0) [EXIT label]
 */
func (i instEmulator) runSetState(inst instr.Instruction, s *state) error {
	m, err := setStatePattern.FindStringMatch(inst.Operand)
	if err != nil || m == nil {
		i.logger.Warn("SET_STATE without a state value",
			"file", s.fileName, "line", inst.Line, "operand", inst.Operand)
		return nil
	}

	code, _ := strconv.Atoi(m.GroupByNumber(1).String())

	switch code {
	case stateReturn:
		val, err := s.pop()
		if err != nil {
			return err
		}

		if val == "" {
			s.emit("return;")
		} else {
			s.emit("return " + val + ";")
		}
	case stateExit:
		label := strings.Trim(instr.LastField(inst.Operand, "[EXIT "), "] ")
		s.emit(fmt.Sprintf("<EXIT %s>", label))
	}

	return nil
}

func (i instEmulator) runObjectSelector(inst instr.Instruction, s *state) error {
	first, second, err := i.popOperands(s)
	if err != nil {
		return err
	}

	s.push(fmt.Sprintf("object_selector(%s, %s)", first, second))

	return nil
}

func (i instEmulator) runEval(inst instr.Instruction, s *state) error {
	s.emit("<EVAL>")
	return nil
}
