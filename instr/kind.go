package instr

// Kind identifies the mnemonic of an instruction. The set is closed; any
// mnemonic outside it parses as Unknown.
type Kind int

const (
	Unknown Kind = iota

	SourceFile

	// Declarations.
	Import
	ModuleDefine
	ClassDefine
	AttributeDefine
	StaticDefine
	FunctionDefine
	MethodDefine
	FunctionConst
	MethodConst

	// References.
	VariableEval
	VariablePush
	AttributeEval
	AttributePush
	ElementEval
	ElementPush
	Call

	// Literals.
	StringConst
	SymbolConst
	BoolConst
	IntConst
	UIntConst
	FloatConst
	NilConst
	VoidConst

	// Containers.
	ArrayConst
	ArrayPush
	MapConst
	MapInsert
	StringPush
	ListAssign

	// Operators.
	BinaryAssignOperator
	BinaryOperator
	UnaryAssignOperator
	UnaryOperator
	LogicalOr
	LogicalAnd

	// Statements.
	Pop
	AssignPop
	Assign

	// Control markers.
	JumpIfFalse
	JumpIfTrue
	Jump
	SetState
	ObjectSelector
	Eval

	// NumKinds is the number of kinds, Unknown included.
	NumKinds
)

var kindNames = [NumKinds]string{
	Unknown:              "UNKNOWN",
	SourceFile:           "SOURCE_FILE",
	Import:               "IMPORT",
	ModuleDefine:         "MODULE_DEFINE",
	ClassDefine:          "CLASS_DEFINE",
	AttributeDefine:      "ATTRIBUTE_DEFINE",
	StaticDefine:         "STATIC_DEFINE",
	FunctionDefine:       "FUNCTION_DEFINE",
	MethodDefine:         "METHOD_DEFINE",
	FunctionConst:        "FUNCTION_CONST",
	MethodConst:          "METHOD_CONST",
	VariableEval:         "VARIABLE_EVAL",
	VariablePush:         "VARIABLE_PUSH",
	AttributeEval:        "ATTRIBUTE_EVAL",
	AttributePush:        "ATTRIBUTE_PUSH",
	ElementEval:          "ELEMENT_EVAL",
	ElementPush:          "ELEMENT_PUSH",
	Call:                 "CALL",
	StringConst:          "STRING_CONST",
	SymbolConst:          "SYMBOL_CONST",
	BoolConst:            "BOOL_CONST",
	IntConst:             "INT_CONST",
	UIntConst:            "U_INT_CONST",
	FloatConst:           "FLOAT_CONST",
	NilConst:             "NIL_CONST",
	VoidConst:            "VOID_CONST",
	ArrayConst:           "ARRAY_CONST",
	ArrayPush:            "ARRAY_PUSH",
	MapConst:             "MAP_CONST",
	MapInsert:            "MAP_INSERT",
	StringPush:           "STRING_PUSH",
	ListAssign:           "LIST_ASSIGN",
	BinaryAssignOperator: "BINARY_ASSIGN_OPERATOR",
	BinaryOperator:       "BINARY_OPERATOR",
	UnaryAssignOperator:  "UNARY_ASSIGN_OPERATOR",
	UnaryOperator:        "UNARY_OPERATOR",
	LogicalOr:            "LOGICAL_OR",
	LogicalAnd:           "LOGICAL_AND",
	Pop:                  "POP",
	AssignPop:            "ASSIGN_POP",
	Assign:               "ASSIGN",
	JumpIfFalse:          "JUMP_IF_FALSE",
	JumpIfTrue:           "JUMP_IF_TRUE",
	Jump:                 "JUMP",
	SetState:             "SET_STATE",
	ObjectSelector:       "OBJECT_SELECTOR",
	Eval:                 "EVAL",
}

var nameToKind = func() map[string]Kind {
	m := make(map[string]Kind, NumKinds)
	for k := Unknown + 1; k < NumKinds; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// String returns the mnemonic of the kind.
func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return kindNames[Unknown]
	}

	return kindNames[k]
}

// Lookup returns the kind of a mnemonic. The second return value is false
// when the mnemonic is not part of the instruction set.
func Lookup(mnemonic string) (Kind, bool) {
	k, ok := nameToKind[mnemonic]
	return k, ok
}

// Kinds returns every known kind, Unknown excluded, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, NumKinds-1)
	for k := Unknown + 1; k < NumKinds; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}
