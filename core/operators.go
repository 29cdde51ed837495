package core

import "github.com/sarchlab/adhocdec/instr"

// operatorSymbols maps the method names the disassembler prints for operators
// to their source tokens.
var operatorSymbols = map[string]string{
	"__add__":    "+",
	"__sub__":    "-",
	"__mul__":    "*",
	"__div__":    "/",
	"__mod__":    "%",
	"__pow__":    "**",
	"__eq__":     "==",
	"__ne__":     "!=",
	"__lt__":     "<",
	"__le__":     "<=",
	"__gt__":     ">",
	"__ge__":     ">=",
	"__and__":    "&",
	"__or__":     "|",
	"__xor__":    "^",
	"__lshift__": "<<",
	"__rshift__": ">>",
}

// operatorToken returns the source token of a binary operator operand. The
// operand starts with either the token itself or its method name.
func operatorToken(operand string) string {
	token := instr.FirstToken(operand)
	if symbol, ok := operatorSymbols[token]; ok {
		return symbol
	}

	return token
}
